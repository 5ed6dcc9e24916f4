package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name string
		in   Module
		want Module
	}{
		{name: "known module", in: ModuleLeads, want: ModuleLeads},
		{name: "login", in: ModuleLogin, want: ModuleLogin},
		{name: "unknown module", in: Module("billing"), want: ModuleDashboard},
		{name: "empty", in: Module(""), want: ModuleDashboard},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.in))
		})
	}
}

func TestState(t *testing.T) {
	s := NewState()
	assert.Equal(t, ModuleDashboard, s.Active())

	var seen []Module
	unwatch := s.Watch(func(m Module) { seen = append(seen, m) })

	s.SetActive(ModuleFaqs)
	assert.Equal(t, ModuleFaqs, s.Active())

	// State does not police ids; Resolve does
	s.SetActive(Module("billing"))
	assert.Equal(t, Module("billing"), s.Active())

	assert.Equal(t, []Module{ModuleFaqs, Module("billing")}, seen)

	unwatch()
	s.SetActive(ModuleLeads)
	assert.Len(t, seen, 2)
}
