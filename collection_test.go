package idxwatch

import (
	"errors"
	"reflect"
	"testing"
)

func threeLists() *CollectionSet[Symbol] {
	return NewCollectionSet([]Collection[Symbol]{
		{Name: "Banking", Items: []Symbol{"BBCA", "BBRI"}},
		{Name: "Tech", Items: []Symbol{"GOTO"}},
		{Name: "Mining", Items: []Symbol{"ANTM", "PTBA"}},
	}, 0)
}

func TestCollectionSetWraparound(t *testing.T) {
	s := NewCollectionSet([]Collection[Symbol]{
		{Name: "A"}, {Name: "B"}, {Name: "C"},
	}, 2)

	s.Next()
	if s.Active() != 0 {
		t.Errorf("Next from last: active = %d, want 0", s.Active())
	}
	s.Prev()
	if s.Active() != 2 {
		t.Errorf("Prev from first: active = %d, want 2", s.Active())
	}
}

func TestCollectionSetRemoveLastFails(t *testing.T) {
	s := NewCollectionSet([]Collection[Symbol]{
		{Name: "Only", Items: []Symbol{"BBCA"}},
	}, 0)

	err := s.Remove()
	if !errors.Is(err, ErrLastCollection) {
		t.Fatalf("Remove on singleton = %v, want ErrLastCollection", err)
	}
	if s.Len() != 1 || s.Active() != 0 || s.Current().Name != "Only" {
		t.Error("a rejected Remove must leave the set unchanged")
	}
	if !reflect.DeepEqual(s.Current().Items, []Symbol{"BBCA"}) {
		t.Error("a rejected Remove must leave the items unchanged")
	}
}

func TestCollectionSetRemoveClampsActive(t *testing.T) {
	s := threeLists()
	s.Next()
	s.Next() // active = 2 (Mining)

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("Len = %d, want 2", s.Len())
	}
	if s.Active() != 1 || s.Current().Name != "Tech" {
		t.Errorf("active after removing last position = %d (%s), want 1 (Tech)",
			s.Active(), s.Current().Name)
	}
}

func TestCollectionSetRemoveMiddleKeepsIndex(t *testing.T) {
	s := threeLists()
	s.Next() // active = 1 (Tech)

	if err := s.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if s.Current().Name != "Mining" {
		t.Errorf("current = %s, want Mining (the successor slides into place)", s.Current().Name)
	}
}

func TestCollectionSetAddActivates(t *testing.T) {
	s := threeLists()
	s.Add("Consumer")

	if s.Len() != 4 {
		t.Fatalf("Len = %d, want 4", s.Len())
	}
	if s.Active() != 3 || s.Current().Name != "Consumer" {
		t.Errorf("Add must activate the new collection, got active=%d %q", s.Active(), s.Current().Name)
	}
	if len(s.Current().Items) != 0 {
		t.Error("a new collection starts empty")
	}
}

func TestCollectionSetRename(t *testing.T) {
	s := threeLists()
	s.Rename("Big Banks")

	if s.Current().Name != "Big Banks" {
		t.Errorf("name = %q, want Big Banks", s.Current().Name)
	}
	if s.Active() != 0 || s.Len() != 3 {
		t.Error("Rename must not affect ordering or the active index")
	}
}

func TestNewCollectionSetDefaults(t *testing.T) {
	s := NewCollectionSet[Symbol](nil, 5)
	if s.Len() != 1 || s.Current().Name != DefaultCollectionName {
		t.Errorf("empty input must yield one %q collection", DefaultCollectionName)
	}

	s = NewCollectionSet([]Collection[Symbol]{{Name: "A"}, {Name: "B"}}, 9)
	if s.Active() != 0 {
		t.Errorf("out-of-range active must clamp to 0, got %d", s.Active())
	}
}
