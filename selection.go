package roast

// Selection tracks the single active layer.
//
// The zero value has nothing selected.
type Selection struct {
	current *Layer
}

// Current returns the selected layer, or nil.
func (s *Selection) Current() *Layer { return s.current }

// Select makes l the selection, clearing the flag on the previous one.
// Selecting nil is the same as Clear.
func (s *Selection) Select(l *Layer) {
	if s.current != nil {
		s.current.selected = false
	}
	s.current = l
	if l != nil {
		l.selected = true
	}
}

// Clear drops the selection.
func (s *Selection) Clear() {
	s.Select(nil)
}

// Apply changes the style of the selected layer. It reports false and does
// nothing when no layer is selected.
func (s *Selection) Apply(opts ...StyleOption) bool {
	if s.current == nil {
		return false
	}
	for _, opt := range opts {
		opt(&s.current.Style)
	}
	return true
}
