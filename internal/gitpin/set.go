package gitpin

import "fmt"

// Set is the resolved pins of one run, keyed by pin filename. It keeps
// the declaration order so that the first declared pin is well defined.
type Set struct {
	names []string
	pins  map[string]*ResolvedPin
}

func NewSet() *Set {
	return &Set{pins: make(map[string]*ResolvedPin)}
}

// Add inserts a resolved pin. Pin filenames must be unique.
func (s *Set) Add(name string, pin *ResolvedPin) error {
	if _, ok := s.pins[name]; ok {
		return fmt.Errorf("duplicate pin %q", name)
	}
	s.names = append(s.names, name)
	s.pins[name] = pin
	return nil
}

// Get returns the pin for a filename, if one was resolved.
func (s *Set) Get(name string) (*ResolvedPin, bool) {
	pin, ok := s.pins[name]
	return pin, ok
}

// First returns the first declared pin.
func (s *Set) First() (string, *ResolvedPin, bool) {
	if len(s.names) == 0 {
		return "", nil, false
	}
	name := s.names[0]
	return name, s.pins[name], true
}

// Names returns the pin filenames in declaration order.
func (s *Set) Names() []string {
	names := make([]string, len(s.names))
	copy(names, s.names)
	return names
}

func (s *Set) Len() int {
	return len(s.names)
}
