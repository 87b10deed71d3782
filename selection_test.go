package idxwatch

import "testing"

func TestSelectionMovesAndClamps(t *testing.T) {
	s := NewSelection()
	if _, ok := s.Index(); ok {
		t.Fatal("fresh selection must be empty")
	}

	s.Down(3)
	if i, _ := s.Index(); i != 0 {
		t.Errorf("first Down: got %d, want 0", i)
	}
	s.Down(3)
	s.Down(3)
	s.Down(3) // clamp at last row
	if i, _ := s.Index(); i != 2 {
		t.Errorf("Down clamp: got %d, want 2", i)
	}
	s.Up(3)
	s.Up(3)
	s.Up(3) // clamp at first row
	if i, _ := s.Index(); i != 0 {
		t.Errorf("Up clamp: got %d, want 0", i)
	}
}

func TestSelectionEmptyView(t *testing.T) {
	s := NewSelection()
	s.Down(3)
	s.Down(0)
	if _, ok := s.Index(); ok {
		t.Error("moving over an empty view must clear the selection")
	}
	s.Up(0)
	if _, ok := s.Index(); ok {
		t.Error("Up over an empty view must keep the selection clear")
	}
}

func TestSelectionReanchorFollowsItem(t *testing.T) {
	// Row 1 of the old view is collection position 2. After a re-sort that
	// position moved to row 0; the highlight follows it.
	s := NewSelection()
	s.Down(3)
	s.Down(3) // row 1
	oldView := []int{0, 2, 3}
	newView := []int{2, 3, 0}
	s.Reanchor(oldView, newView)
	if i, _ := s.Index(); i != 0 {
		t.Errorf("reanchor: got row %d, want 0", i)
	}
	if pos, _ := s.Position(newView); pos != 2 {
		t.Errorf("reanchor: got position %d, want 2", pos)
	}
}

func TestSelectionReanchorClampsWhenFilteredOut(t *testing.T) {
	s := NewSelection()
	s.Down(4)
	s.Down(4)
	s.Down(4) // row 2, position 5
	s.Reanchor([]int{1, 3, 5, 7}, []int{1, 3})
	if i, _ := s.Index(); i != 1 {
		t.Errorf("clamp to nearest row: got %d, want 1", i)
	}
}

func TestSelectionReanchorEmptyNewView(t *testing.T) {
	s := NewSelection()
	s.Down(2)
	s.Reanchor([]int{0, 1}, nil)
	if _, ok := s.Index(); ok {
		t.Error("empty new view must clear the selection")
	}
}
