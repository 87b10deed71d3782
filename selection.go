package idxwatch

// Selection tracks the highlighted row of a view as a position into the
// view slice. NoSelection means nothing is highlighted, which is the only
// possible state over an empty view.
type Selection struct {
	index int
}

const noSelection = -1

// NewSelection starts with nothing selected.
func NewSelection() Selection { return Selection{index: noSelection} }

// Index returns the selected view row, or false when nothing is selected.
func (s Selection) Index() (int, bool) {
	if s.index == noSelection {
		return 0, false
	}
	return s.index, true
}

// Position resolves the selection to a position into the unfiltered
// collection, or false when nothing is selected.
func (s Selection) Position(view []int) (int, bool) {
	if s.index == noSelection || s.index >= len(view) {
		return 0, false
	}
	return view[s.index], true
}

// Up moves the highlight one row up, clamping at the first row. On an
// empty view it stays unselected; otherwise an unselected tracker lands on
// the first row.
func (s *Selection) Up(viewLen int) {
	if viewLen == 0 {
		s.index = noSelection
		return
	}
	if s.index <= 0 {
		s.index = 0
		return
	}
	s.index--
}

// Down moves the highlight one row down, clamping at the last row.
func (s *Selection) Down(viewLen int) {
	if viewLen == 0 {
		s.index = noSelection
		return
	}
	if s.index == noSelection {
		s.index = 0
		return
	}
	if s.index < viewLen-1 {
		s.index++
	}
}

// Clear drops the highlight.
func (s *Selection) Clear() { s.index = noSelection }

// Reanchor re-points the selection after the view was recomputed. The
// tracker follows the underlying collection position it was on: if that
// position survived into the new view the highlight moves with it, even if
// its row changed. A position that was filtered or sorted out of the view
// falls back to the nearest valid row, and an empty view clears the
// selection.
func (s *Selection) Reanchor(oldView, newView []int) {
	if len(newView) == 0 {
		s.index = noSelection
		return
	}
	if s.index == noSelection {
		return
	}
	if s.index < len(oldView) {
		pos := oldView[s.index]
		for row, p := range newView {
			if p == pos {
				s.index = row
				return
			}
		}
	}
	if s.index >= len(newView) {
		s.index = len(newView) - 1
	}
}
