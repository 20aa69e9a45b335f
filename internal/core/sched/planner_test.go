package sched

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
)

func desc(id string, priority int, reads, writes []Tag) *SystemDescriptor {
	return &SystemDescriptor{
		ID:       id,
		Kind:     KindUpdate,
		Priority: priority,
		Access:   NewAccess(reads, writes),
		Run:      func(_ *ecs.World, _ time.Duration) error { return nil },
	}
}

func stageIDs(p *Plan) [][]string {
	out := make([][]string, len(p.Stages))
	for i := range p.Stages {
		for _, s := range p.Stages[i].Systems {
			out[i] = append(out[i], s.ID)
		}
	}
	return out
}

func TestConflicts_WriteWrite(t *testing.T) {
	a := NewAccess(nil, []Tag{"position"})
	b := NewAccess(nil, []Tag{"position"})
	assert.True(t, a.Conflicts(&b))
	assert.True(t, b.Conflicts(&a))
}

func TestConflicts_WriteRead_BothDirections(t *testing.T) {
	w := NewAccess(nil, []Tag{"position"})
	r := NewAccess([]Tag{"position"}, nil)
	assert.True(t, w.Conflicts(&r))
	assert.True(t, r.Conflicts(&w))
}

func TestConflicts_ReadRead_Never(t *testing.T) {
	a := NewAccess([]Tag{"position", "sprite"}, nil)
	b := NewAccess([]Tag{"position"}, []Tag{"camera"})
	assert.False(t, a.Conflicts(&b))
	assert.False(t, b.Conflicts(&a))
}

func TestConflicts_Disjoint(t *testing.T) {
	a := NewAccess([]Tag{"input"}, []Tag{"velocity"})
	b := NewAccess([]Tag{"sprite"}, []Tag{"animation"})
	assert.False(t, a.Conflicts(&b))
}

// Scenario: a mover writing position followed by a renderer reading it must
// land in two stages, mover first.
func TestBuildPlan_WriterThenReader(t *testing.T) {
	snap := []*SystemDescriptor{
		desc("movement", 10, nil, []Tag{"position"}),
		desc("render", 20, []Tag{"position"}, nil),
	}
	plan, err := BuildPlan(snap, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"movement"}, {"render"}}, stageIDs(plan))
}

// Scenario: two independent writers share a stage; a reader of the first
// writer's output goes after.
func TestBuildPlan_IndependentWritersShareStage(t *testing.T) {
	snap := []*SystemDescriptor{
		desc("a", 10, nil, []Tag{"x"}),
		desc("b", 20, nil, []Tag{"y"}),
		desc("c", 30, []Tag{"x"}, nil),
	}
	plan, err := BuildPlan(snap, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"a", "b"}, {"c"}}, stageIDs(plan))
}

func TestBuildPlan_EmptySnapshot(t *testing.T) {
	plan, err := BuildPlan(nil, 7)
	require.NoError(t, err)
	assert.Empty(t, plan.Stages)
	assert.Equal(t, uint64(7), plan.Generation)
	assert.Equal(t, 0, plan.SystemCount())
}

// First-fit can hop over an intermediate stage: a reader that conflicts
// with nothing in stage 0 lands there even if registered after systems
// that opened stage 1.
func TestBuildPlan_FirstFitReusesEarlierStage(t *testing.T) {
	snap := []*SystemDescriptor{
		desc("writer", 10, nil, []Tag{"x"}),
		desc("dependent", 20, []Tag{"x"}, nil),
		desc("loner", 30, []Tag{"unrelated"}, nil),
	}
	plan, err := BuildPlan(snap, 1)
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"writer", "loner"}, {"dependent"}}, stageIDs(plan))
}

// The priority floor: a descriptor conflicting with a system in a later
// stage must not slip into an open earlier stage, even when nothing in that
// earlier stage conflicts with it.
func TestBuildPlan_PriorityFloorForConflictingPairs(t *testing.T) {
	snap := []*SystemDescriptor{
		desc("a", 10, nil, []Tag{"x"}),
		desc("b", 20, []Tag{"x"}, []Tag{"y"}),
		desc("c", 30, []Tag{"y"}, nil),
	}
	plan, err := BuildPlan(snap, 1)
	require.NoError(t, err)
	// Naive first-fit would drop c into stage 0 (no conflict with a), but
	// c reads what b writes and must run after it.
	assert.Equal(t, [][]string{{"a"}, {"b"}, {"c"}}, stageIDs(plan))
}

func TestBuildPlan_Deterministic(t *testing.T) {
	snap := []*SystemDescriptor{
		desc("input", 0, nil, []Tag{"intent"}),
		desc("movement", 10, []Tag{"intent"}, []Tag{"position"}),
		desc("camera", 20, []Tag{"position"}, []Tag{"camera"}),
		desc("animation", 20, []Tag{"sprite"}, []Tag{"animation"}),
		desc("render", 30, []Tag{"position", "camera", "animation"}, nil),
	}
	first, err := BuildPlan(snap, 1)
	require.NoError(t, err)
	second, err := BuildPlan(snap, 1)
	require.NoError(t, err)
	assert.Equal(t, stageIDs(first), stageIDs(second))
}

// Randomized layering check: every system placed exactly once, no stage
// holds a conflicting pair, and conflicting pairs respect priority order.
func TestBuildPlan_InvariantsHold(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	tags := []Tag{"a", "b", "c", "d", "e", "f"}

	pick := func() []Tag {
		var out []Tag
		for _, tag := range tags {
			if rng.Intn(3) == 0 {
				out = append(out, tag)
			}
		}
		return out
	}

	for trial := 0; trial < 50; trial++ {
		var snap []*SystemDescriptor
		n := 2 + rng.Intn(12)
		for i := 0; i < n; i++ {
			snap = append(snap, desc(fmt.Sprintf("sys%02d", i), rng.Intn(5)*10, pick(), pick()))
		}
		sortSnap := make([]*SystemDescriptor, len(snap))
		copy(sortSnap, snap)
		sort.SliceStable(sortSnap, func(i, j int) bool {
			return sortSnap[i].Priority < sortSnap[j].Priority
		})

		plan, err := BuildPlan(sortSnap, uint64(trial))
		require.NoError(t, err)

		// Each descriptor in exactly one stage.
		seen := map[string]int{}
		stageOf := map[string]int{}
		for i := range plan.Stages {
			for _, d := range plan.Stages[i].Systems {
				seen[d.ID]++
				stageOf[d.ID] = i
			}
		}
		require.Len(t, seen, n)
		for id, count := range seen {
			assert.Equal(t, 1, count, "system %s placed %d times", id, count)
		}

		// No stage is empty, no co-staged conflict.
		for i := range plan.Stages {
			st := plan.Stages[i].Systems
			require.NotEmpty(t, st)
			for x := 0; x < len(st); x++ {
				for y := x + 1; y < len(st); y++ {
					assert.False(t, st[x].Access.Conflicts(&st[y].Access),
						"stage %d co-stages conflicting %s and %s", i, st[x].ID, st[y].ID)
				}
			}
		}

		// Conflicting pairs ordered by priority.
		for x := 0; x < len(sortSnap); x++ {
			for y := 0; y < len(sortSnap); y++ {
				a, b := sortSnap[x], sortSnap[y]
				if a == b || !a.Access.Conflicts(&b.Access) {
					continue
				}
				if a.Priority < b.Priority {
					assert.LessOrEqual(t, stageOf[a.ID], stageOf[b.ID],
						"conflicting %s (prio %d) staged after %s (prio %d)",
						a.ID, a.Priority, b.ID, b.Priority)
				}
			}
		}
	}
}

func TestPlan_Describe(t *testing.T) {
	snap := []*SystemDescriptor{
		desc("movement", 10, nil, []Tag{"position"}),
		desc("render", 20, []Tag{"position"}, nil),
	}
	plan, err := BuildPlan(snap, 3)
	require.NoError(t, err)

	text := plan.Describe()
	assert.Contains(t, text, "2 stages")
	assert.Contains(t, text, "2 systems")
	assert.Contains(t, text, "stage 0: [movement]")
	assert.Contains(t, text, "stage 1: [render]")
}
