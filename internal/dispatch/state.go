package dispatch

import "sync"

// Option identifies one of the two configured backends.
type Option int

const (
	OptionDeepInfra Option = 1
	OptionGPT4Free  Option = 2
)

// State holds the runtime model selection and request counters. The values are
// advisory routing hints, but they are still guarded by a mutex so concurrent
// chat and admin traffic cannot corrupt them.
type State struct {
	mu       sync.Mutex
	global   Option
	override Option // 0 when unset, owner-only
	requests map[Option]int
}

func NewState(def Option) *State {
	if def != OptionDeepInfra && def != OptionGPT4Free {
		def = OptionDeepInfra
	}
	return &State{global: def, requests: make(map[Option]int)}
}

func (s *State) Global() Option {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.global
}

// SetGlobal changes the persistent selection and drops any temporary override.
func (s *State) SetGlobal(o Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.global = o
	s.override = 0
}

func (s *State) Override() (Option, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.override, s.override != 0
}

func (s *State) SetOverride(o Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.override = o
}

func (s *State) CountRequest(o Option) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests[o]++
}

func (s *State) Requests(o Option) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests[o]
}
