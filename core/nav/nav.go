// Package nav tracks which dashboard module is active.
package nav

import "sync"

type Module string

const (
	ModuleDashboard   Module = "dashboard"
	ModuleInformation Module = "information"
	ModuleFaqs        Module = "faqs"
	ModuleCalendar    Module = "calendar"
	ModuleLeads       Module = "leads"
	ModuleContatos    Module = "contatos"
	ModuleLogin       Module = "login"
)

var known = map[Module]struct{}{
	ModuleDashboard:   {},
	ModuleInformation: {},
	ModuleFaqs:        {},
	ModuleCalendar:    {},
	ModuleLeads:       {},
	ModuleContatos:    {},
	ModuleLogin:       {},
}

// Resolve maps unrecognized module ids to the dashboard. This policy lives
// here in the consumer helper, not in State, which accepts any id.
func Resolve(m Module) Module {
	if _, ok := known[m]; ok {
		return m
	}
	return ModuleDashboard
}

// State holds the active module id and notifies watchers on change. It
// deliberately does not validate ids against the known set.
type State struct {
	mu          sync.Mutex
	active      Module
	watchers    map[int]func(Module)
	nextWatcher int
}

func NewState() *State {
	return &State{active: ModuleDashboard, watchers: make(map[int]func(Module))}
}

func (s *State) Active() Module {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *State) SetActive(m Module) {
	s.mu.Lock()
	s.active = m
	fns := make([]func(Module), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(m)
	}
}

func (s *State) Watch(fn func(Module)) func() {
	s.mu.Lock()
	id := s.nextWatcher
	s.nextWatcher++
	s.watchers[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.watchers, id)
	}
}
