// Package dispatch routes chat histories to one of two completion backends and
// owns the runtime switches that decide which one is active.
package dispatch

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"modelmux/internal/ai"
	"modelmux/internal/search"
)

const (
	// primaryApology is returned verbatim when the primary backend fails.
	primaryApology = "I'm sorry, I couldn't get a response from DeepInfra right now."

	// emptyHistoryPrompt stands in for the user prompt when there is none.
	emptyHistoryPrompt = "Hello"

	// fallbackTemplate glues the original prompt to the scraped web snippets.
	fallbackTemplate = "%s\n\nUse this web info to answer:\n%s"

	// maxFallbackResults caps how many search snippets feed the retry.
	maxFallbackResults = 3
)

type Dispatcher struct {
	ownerID   string
	primary   ai.Completer
	secondary ai.Completer
	searcher  search.Searcher
	state     *State
}

func New(ownerID string, primary, secondary ai.Completer, searcher search.Searcher, state *State) *Dispatcher {
	return &Dispatcher{
		ownerID:   ownerID,
		primary:   primary,
		secondary: secondary,
		searcher:  searcher,
		state:     state,
	}
}

func (d *Dispatcher) State() *State { return d.state }

// Respond picks a backend for the given caller and returns its answer. Backend
// failures never surface as errors; they degrade to user-facing strings.
func (d *Dispatcher) Respond(ctx context.Context, history []ai.Message, userID string) string {
	option := d.state.Global()
	if userID != "" && userID == d.ownerID {
		if o, ok := d.state.Override(); ok {
			option = o
		}
	}
	reqID := uuid.NewString()
	log.Debug().Str("reqId", reqID).Str("userId", userID).Int("option", int(option)).Int("messages", len(history)).Msg("dispatch")
	if option == OptionGPT4Free {
		return d.respondSecondary(ctx, reqID, history)
	}
	return d.respondPrimary(ctx, reqID, history)
}

func (d *Dispatcher) respondPrimary(ctx context.Context, reqID string, history []ai.Message) string {
	text, err := d.primary.Complete(ctx, history)
	// The request is counted whenever it reached the backend, even when
	// decoding the answer then failed. Deliberate: matches the observed
	// semantics of the counters this replaces.
	if ai.Reached(err) {
		d.state.CountRequest(OptionDeepInfra)
	}
	if err != nil {
		log.Error().Str("reqId", reqID).Err(err).Msg("primary completion failed")
		return primaryApology
	}
	return text
}

func (d *Dispatcher) respondSecondary(ctx context.Context, reqID string, history []ai.Message) string {
	prompt := ai.LastContent(history, emptyHistoryPrompt)

	text, err := d.secondary.Complete(ctx, history)
	if err != nil {
		log.Error().Str("reqId", reqID).Err(err).Msg("secondary completion failed")
		return fmt.Sprintf("Error: %v", err)
	}
	d.state.CountRequest(OptionGPT4Free)

	if !lowConfidence(text) {
		return text
	}

	log.Info().Str("reqId", reqID).Int("len", len(text)).Msg("low-confidence answer, retrying with web context")
	results, err := d.searcher.Search(ctx, prompt)
	if err != nil {
		log.Error().Str("reqId", reqID).Err(err).Msg("web search failed")
		return fmt.Sprintf("Error: %v", err)
	}
	if len(results) > maxFallbackResults {
		results = results[:maxFallbackResults]
	}
	bodies := make([]string, 0, len(results))
	for _, r := range results {
		bodies = append(bodies, r.Body)
	}
	combined := fmt.Sprintf(fallbackTemplate, prompt, strings.Join(bodies, "\n"))

	// The retry replaces the full history with the synthesized prompt and
	// is not counted a second time.
	text, err = d.secondary.Complete(ctx, []ai.Message{{Role: ai.RoleUser, Content: combined}})
	if err != nil {
		log.Error().Str("reqId", reqID).Err(err).Msg("fallback completion failed")
		return fmt.Sprintf("Error: %v", err)
	}
	return text
}

// lowConfidence flags answers worth a search-augmented retry: disclaimers and
// conspicuously short replies. The threshold counts characters, not bytes, so
// multibyte answers are measured the same as ASCII ones.
func lowConfidence(text string) bool {
	return strings.Contains(text, "I don't know") || utf8.RuneCountInString(text) < 20
}
