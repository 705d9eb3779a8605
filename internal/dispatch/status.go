package dispatch

import (
	"fmt"
	"strings"
)

// Status renders the usage report. The owner sees their temporary override as
// the current model; everyone else sees the global selection.
func (d *Dispatcher) Status(userID string) string {
	var b strings.Builder
	b.WriteString("📊 Model Status\n\n")
	fmt.Fprintf(&b, "Option 1 → DeepInfra\nTotal Requests: %d\n\n", d.state.Requests(OptionDeepInfra))
	fmt.Fprintf(&b, "Option 2 → g4f + DuckDuckGo\nTotal Requests: %d\n\n", d.state.Requests(OptionGPT4Free))

	if o, ok := d.state.Override(); ok && d.ownerID != "" && userID == d.ownerID {
		fmt.Fprintf(&b, "Current Model: Option %d (temporary for owner)", o)
	} else {
		fmt.Fprintf(&b, "Current Model: Option %d", d.state.Global())
	}
	return b.String()
}
