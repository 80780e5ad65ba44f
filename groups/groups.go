// Package groups tracks sets of layer ids that select together. Group
// membership extends selection; it never forces co-movement on its own.
package groups

import "sort"

// Manager holds the group list: each group is a set of at least two layer
// ids, stored independently of the layers themselves.
type Manager struct {
	groups [][]int
}

// NewManager creates an empty group manager.
func NewManager() *Manager {
	return &Manager{}
}

// Groups returns the current group list.
func (m *Manager) Groups() [][]int {
	return m.groups
}

// Len returns the number of groups.
func (m *Manager) Len() int {
	return len(m.groups)
}

func normalize(ids []int) []int {
	set := make(map[int]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	out := make([]int, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

func sameSet(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Group merges the given layer ids into a new group. Fewer than two ids, or
// an identical existing group, leave the list untouched and report false.
func (m *Manager) Group(ids []int) bool {
	g := normalize(ids)
	if len(g) < 2 {
		return false
	}
	for _, existing := range m.groups {
		if sameSet(existing, g) {
			return false
		}
	}
	m.groups = append(m.groups, g)
	return true
}

// Ungroup drops every group whose entire membership is covered by the given
// layer ids.
func (m *Manager) Ungroup(ids []int) {
	covered := make(map[int]bool, len(ids))
	for _, id := range ids {
		covered[id] = true
	}
	kept := m.groups[:0]
	for _, g := range m.groups {
		all := true
		for _, id := range g {
			if !covered[id] {
				all = false
				break
			}
		}
		if !all {
			kept = append(kept, g)
		}
	}
	m.groups = kept
}

// SiblingsOf returns the union of all group memberships containing the
// given layer, the layer itself included. It is used to extend a
// single-layer selection to the whole group.
func (m *Manager) SiblingsOf(id int) []int {
	set := map[int]bool{id: true}
	for _, g := range m.groups {
		member := false
		for _, other := range g {
			if other == id {
				member = true
				break
			}
		}
		if member {
			for _, other := range g {
				set[other] = true
			}
		}
	}
	out := make([]int, 0, len(set))
	for other := range set {
		out = append(out, other)
	}
	sort.Ints(out)
	return out
}

// Tidy removes deleted ids from every group, then drops any group left with
// fewer than two members.
func (m *Manager) Tidy(deleted map[int]bool) {
	if len(deleted) == 0 {
		return
	}
	kept := m.groups[:0]
	for _, g := range m.groups {
		survivors := g[:0]
		for _, id := range g {
			if !deleted[id] {
				survivors = append(survivors, id)
			}
		}
		if len(survivors) >= 2 {
			kept = append(kept, survivors)
		}
	}
	m.groups = kept
}

// Clone returns an independent copy of the group list, used by history
// snapshots.
func (m *Manager) Clone() *Manager {
	c := &Manager{groups: make([][]int, len(m.groups))}
	for i, g := range m.groups {
		c.groups[i] = append([]int(nil), g...)
	}
	return c
}

// Restore replaces the group list with a snapshot's copy.
func (m *Manager) Restore(snapshot *Manager) {
	clone := snapshot.Clone()
	m.groups = clone.groups
}
