package sched

// Tag names one piece of shared world state a system touches, typically a
// component type ("position", "sprite") or a singleton resource ("camera").
type Tag string

// Access declares which tags a system reads and writes. Declarations are
// honor-system: the planner trusts them, nothing verifies actual access.
type Access struct {
	Reads  []Tag
	Writes []Tag

	// Precomputed lookup sets for fast pairwise conflict checks.
	readSet  map[Tag]struct{}
	writeSet map[Tag]struct{}
}

// NewAccess builds an Access with its lookup sets prepared.
func NewAccess(reads, writes []Tag) Access {
	a := Access{Reads: reads, Writes: writes}
	a.prepare()
	return a
}

func (a *Access) prepare() {
	a.readSet = make(map[Tag]struct{}, len(a.Reads))
	for _, t := range a.Reads {
		a.readSet[t] = struct{}{}
	}
	a.writeSet = make(map[Tag]struct{}, len(a.Writes))
	for _, t := range a.Writes {
		a.writeSet[t] = struct{}{}
	}
}

func (a *Access) reads(t Tag) bool {
	if a.readSet == nil {
		a.prepare()
	}
	_, ok := a.readSet[t]
	return ok
}

func (a *Access) writes(t Tag) bool {
	if a.writeSet == nil {
		a.prepare()
	}
	_, ok := a.writeSet[t]
	return ok
}

// Conflicts reports whether two access declarations forbid running in the
// same stage: a shared write, or a write on one side overlapping a read on
// the other. Read/read overlap never conflicts. Symmetric.
func (a *Access) Conflicts(other *Access) bool {
	for _, w := range a.Writes {
		if other.writes(w) || other.reads(w) {
			return true
		}
	}
	for _, r := range a.Reads {
		if other.writes(r) {
			return true
		}
	}
	return false
}

// union folds another access declaration into this one. Used for stage
// aggregates during planning; the Reads/Writes slices are kept deduplicated
// so aggregate checks stay linear in distinct tags.
func (a *Access) union(other *Access) {
	for _, r := range other.Reads {
		if !a.reads(r) {
			a.Reads = append(a.Reads, r)
			a.readSet[r] = struct{}{}
		}
	}
	for _, w := range other.Writes {
		if !a.writes(w) {
			a.Writes = append(a.Writes, w)
			a.writeSet[w] = struct{}{}
		}
	}
}
