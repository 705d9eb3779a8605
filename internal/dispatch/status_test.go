package dispatch

import (
	"strings"
	"testing"
)

func TestStatusListsBothCounters(t *testing.T) {
	d := newOptionDispatcher()
	d.state.CountRequest(OptionDeepInfra)
	d.state.CountRequest(OptionDeepInfra)
	d.state.CountRequest(OptionGPT4Free)

	got := d.Status("anyone")
	if !strings.Contains(got, "Option 1 → DeepInfra\nTotal Requests: 2") {
		t.Fatalf("missing DeepInfra counter in:\n%s", got)
	}
	if !strings.Contains(got, "Option 2 → g4f + DuckDuckGo\nTotal Requests: 1") {
		t.Fatalf("missing g4f counter in:\n%s", got)
	}
	if strings.Count(got, "Current Model:") != 1 {
		t.Fatalf("expected exactly one Current Model line in:\n%s", got)
	}
	if !strings.HasSuffix(got, "Current Model: Option 1") {
		t.Fatalf("expected global selection reported, got:\n%s", got)
	}
}

func TestStatusOwnerSeesOverride(t *testing.T) {
	d := newOptionDispatcher()
	d.HandleOption(ownerID, "/tryoption 2")

	got := d.Status(ownerID)
	if !strings.HasSuffix(got, "Current Model: Option 2 (temporary for owner)") {
		t.Fatalf("owner should see the override, got:\n%s", got)
	}

	got = d.Status("someone-else")
	if !strings.HasSuffix(got, "Current Model: Option 1") {
		t.Fatalf("non-owner should see the global selection, got:\n%s", got)
	}
}

func TestStatusWithoutConfiguredOwnerHidesOverride(t *testing.T) {
	d := New("", &fakeCompleter{name: "a"}, &fakeCompleter{name: "b"}, &fakeSearcher{}, NewState(OptionDeepInfra))
	d.State().SetOverride(OptionGPT4Free)

	got := d.Status("")
	if !strings.HasSuffix(got, "Current Model: Option 1") {
		t.Fatalf("anonymous caller should never see an owner override, got:\n%s", got)
	}
}

func TestOptionRoundTripLeavesCountersAlone(t *testing.T) {
	d := newOptionDispatcher()

	d.HandleOption(ownerID, "/fixoption 1")
	d.HandleOption(ownerID, "/fixoption 2")

	got := d.Status("anyone")
	if !strings.Contains(got, "Option 1 → DeepInfra\nTotal Requests: 0") {
		t.Fatalf("counters should be untouched by option commands:\n%s", got)
	}
	if !strings.HasSuffix(got, "Current Model: Option 2") {
		t.Fatalf("expected Option 2 after the round trip, got:\n%s", got)
	}
}
