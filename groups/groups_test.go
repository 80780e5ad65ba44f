package groups

import (
	"reflect"
	"testing"
)

// TestManager_Group tests group creation rules.
func TestManager_Group(t *testing.T) {
	m := NewManager()

	if m.Group([]int{5}) {
		t.Error("single-member group should be rejected")
	}
	if m.Group([]int{5, 5}) {
		t.Error("duplicates collapse to a single member and should be rejected")
	}
	if !m.Group([]int{3, 1, 2}) {
		t.Fatal("valid group rejected")
	}
	if got := m.Groups()[0]; !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("group = %v, want sorted ids", got)
	}
	if m.Group([]int{2, 1, 3}) {
		t.Error("identical group should be rejected")
	}
	if !m.Group([]int{1, 2}) {
		t.Error("a subset is a distinct group and should be accepted")
	}
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

// TestManager_SiblingsOf tests selection extension: the union of the
// groups the layer itself belongs to, with no transitive closure through
// shared members.
func TestManager_SiblingsOf(t *testing.T) {
	m := NewManager()
	m.Group([]int{1, 2})
	m.Group([]int{2, 3})
	m.Group([]int{8, 9})

	if got := m.SiblingsOf(1); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("SiblingsOf(1) = %v, want [1 2] (membership is not transitive)", got)
	}
	if got := m.SiblingsOf(2); !reflect.DeepEqual(got, []int{1, 2, 3}) {
		t.Errorf("SiblingsOf(2) = %v, want union of both containing groups", got)
	}
	if got := m.SiblingsOf(9); !reflect.DeepEqual(got, []int{8, 9}) {
		t.Errorf("SiblingsOf(9) = %v", got)
	}
	if got := m.SiblingsOf(7); !reflect.DeepEqual(got, []int{7}) {
		t.Errorf("SiblingsOf(7) = %v, want just itself", got)
	}
}

// TestManager_Ungroup tests that only fully covered groups dissolve.
func TestManager_Ungroup(t *testing.T) {
	m := NewManager()
	m.Group([]int{1, 2})
	m.Group([]int{3, 4, 5})

	m.Ungroup([]int{1, 2, 3})
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (partially covered group survives)", m.Len())
	}
	if got := m.Groups()[0]; !reflect.DeepEqual(got, []int{3, 4, 5}) {
		t.Errorf("surviving group = %v", got)
	}
}

// TestManager_Tidy tests member pruning after deletions.
func TestManager_Tidy(t *testing.T) {
	m := NewManager()
	m.Group([]int{1, 2, 3})
	m.Group([]int{4, 5})

	m.Tidy(map[int]bool{2: true, 5: true})
	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1 (pair reduced below two dissolves)", m.Len())
	}
	if got := m.Groups()[0]; !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("pruned group = %v, want [1 3]", got)
	}
}

// TestManager_CloneRestore tests snapshot independence.
func TestManager_CloneRestore(t *testing.T) {
	m := NewManager()
	m.Group([]int{1, 2})
	snap := m.Clone()

	m.Group([]int{3, 4})
	m.Tidy(map[int]bool{1: true})

	if snap.Len() != 1 {
		t.Errorf("snapshot Len() = %d, want 1", snap.Len())
	}
	m.Restore(snap)
	if m.Len() != 1 || !reflect.DeepEqual(m.Groups()[0], []int{1, 2}) {
		t.Errorf("restored groups = %v", m.Groups())
	}
}
