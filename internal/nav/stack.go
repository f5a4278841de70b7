package nav

// CollectionStack holds the views below the current one. The current view
// is never on the stack.
type CollectionStack struct {
	views []CollectionView
}

// Push stores a view.
func (s *CollectionStack) Push(v CollectionView) {
	s.views = append(s.views, v)
}

// Pop removes and returns the top view.
func (s *CollectionStack) Pop() (CollectionView, bool) {
	if len(s.views) == 0 {
		return nil, false
	}
	v := s.views[len(s.views)-1]
	s.views[len(s.views)-1] = nil
	s.views = s.views[:len(s.views)-1]
	return v, true
}

// Len returns the number of stacked views.
func (s *CollectionStack) Len() int {
	return len(s.views)
}

// Release frees every stacked view, top first.
func (s *CollectionStack) Release() {
	for {
		v, ok := s.Pop()
		if !ok {
			return
		}
		v.Release()
	}
}
