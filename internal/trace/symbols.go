package trace

// Symbols is a simple string interner. Id 0 is always the empty string.
// It is not safe for concurrent mutation; loaders fill it before handing it
// to Build and it is read-only afterwards.
type Symbols struct {
	names []string
	ids   map[string]LabelID
}

// Ensure Symbols implements Labels at compile time.
var _ Labels = (*Symbols)(nil)

// NewSymbols returns an interner holding only the empty string.
func NewSymbols() *Symbols {
	return &Symbols{
		names: []string{""},
		ids:   map[string]LabelID{"": 0},
	}
}

// Intern returns the id for name, allocating one on first sight.
func (s *Symbols) Intern(name string) LabelID {
	if id, ok := s.ids[name]; ok {
		return id
	}
	id := LabelID(len(s.names))
	s.names = append(s.names, name)
	s.ids[name] = id
	return id
}

// Lookup returns the string for id, or "" when id is unknown.
func (s *Symbols) Lookup(id LabelID) string {
	if s == nil || int(id) >= len(s.names) {
		return ""
	}
	return s.names[id]
}

// Len returns the number of interned strings including the empty string.
func (s *Symbols) Len() int {
	if s == nil {
		return 0
	}
	return len(s.names)
}
