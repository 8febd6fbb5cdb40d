package pattern

import "sort"

// Library holds immutable patterns keyed by name.
type Library struct {
	patterns map[string]Pattern
}

// NewLibrary creates a library from the given patterns.
// Later patterns with the same name replace earlier ones.
func NewLibrary(patterns ...Pattern) *Library {
	lib := &Library{patterns: make(map[string]Pattern, len(patterns))}
	for _, p := range patterns {
		lib.Add(p)
	}
	return lib
}

// Add stores a copy of the pattern. Nameless patterns are ignored.
func (l *Library) Add(p Pattern) {
	if p.Name == "" {
		return
	}
	if l.patterns == nil {
		l.patterns = make(map[string]Pattern)
	}
	l.patterns[p.Name] = p.Clone()
}

// Get returns a copy of the named pattern.
func (l *Library) Get(name string) (Pattern, bool) {
	if l == nil {
		return Pattern{}, false
	}
	p, ok := l.patterns[name]
	if !ok {
		return Pattern{}, false
	}
	return p.Clone(), true
}

// Has reports whether the library contains the named pattern.
func (l *Library) Has(name string) bool {
	if l == nil {
		return false
	}
	_, ok := l.patterns[name]
	return ok
}

// Remove deletes the named pattern and reports whether it existed.
func (l *Library) Remove(name string) bool {
	if l == nil {
		return false
	}
	if _, ok := l.patterns[name]; !ok {
		return false
	}
	delete(l.patterns, name)
	return true
}

// Names returns all pattern names in sorted order.
func (l *Library) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.patterns))
	for name := range l.patterns {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of patterns.
func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.patterns)
}

// Merge returns a new library containing l's patterns overlaid by other's.
func (l *Library) Merge(other *Library) *Library {
	out := NewLibrary()
	if l != nil {
		for _, p := range l.patterns {
			out.Add(p)
		}
	}
	if other != nil {
		for _, p := range other.patterns {
			out.Add(p)
		}
	}
	return out
}
