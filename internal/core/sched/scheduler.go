package sched

import (
	"fmt"
	"runtime/debug"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/fuddlesworth/pokesharp/internal/core/ecs"
)

// FrameResult reports one frame's outcome. The zero value is success;
// Errors maps failing system IDs to what went wrong.
type FrameResult struct {
	Errors map[string]error
}

func (r *FrameResult) fail(id string, err error) {
	if r.Errors == nil {
		r.Errors = make(map[string]error, 4)
	}
	r.Errors[id] = err
}

// OK reports whether every system in the frame succeeded.
func (r FrameResult) OK() bool { return len(r.Errors) == 0 }

// Err collapses the per-system errors into a single error, nil on success.
// IDs are sorted so the combined message is stable.
func (r FrameResult) Err() error {
	if len(r.Errors) == 0 {
		return nil
	}
	ids := make([]string, 0, len(r.Errors))
	for id := range r.Errors {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var combined error
	for _, id := range ids {
		combined = multierr.Append(combined, r.Errors[id])
	}
	return combined
}

// Scheduler drives one frame at a time over the registered systems. It owns
// the plan lifecycle: registrations mark the plan stale, and the next Tick
// (or an explicit RebuildPlan) rebuilds before executing. Registration may
// happen from any goroutine; Tick runs on the frame goroutine only. The
// staleness flag and the plan pointer are the cross-goroutine state, both
// atomic so a Tick always observes the latest registration.
type Scheduler struct {
	registry *Registry
	log      *zap.Logger
	parallel bool

	plan     atomic.Pointer[Plan]
	stale    atomic.Bool
	rebuilds atomic.Uint64
}

// NewScheduler wires a scheduler to its registry and logging sink. With
// parallel false every frame takes the sequential path: the full snapshot
// in priority order, no staging. Always correct, only slower.
func NewScheduler(registry *Registry, log *zap.Logger, parallel bool) *Scheduler {
	s := &Scheduler{
		registry: registry,
		log:      log,
		parallel: parallel,
	}
	s.stale.Store(true)
	return s
}

// Register adds a system and invalidates the current plan.
func (s *Scheduler) Register(d *SystemDescriptor) error {
	if err := s.registry.Register(d); err != nil {
		return err
	}
	s.stale.Store(true)
	s.log.Debug("plan invalidated",
		zap.String("system", d.ID),
		zap.Stringer("kind", d.Kind),
		zap.Int("priority", d.Priority))
	return nil
}

// Rebuilds returns how many plans this scheduler has built. Stats surface
// for tooling and tests; three registrations followed by one Tick must move
// this by exactly one.
func (s *Scheduler) Rebuilds() uint64 { return s.rebuilds.Load() }

// DescribePlan renders the current plan's stage layout, or a placeholder
// before the first build. Diagnostic only.
func (s *Scheduler) DescribePlan() string {
	p := s.plan.Load()
	if p == nil {
		return "plan: not built"
	}
	return p.Describe()
}

// RebuildPlan forces an immediate rebuild instead of the lazy one on the
// next Tick. A no-op when a plan exists and nothing registered since it was
// built.
func (s *Scheduler) RebuildPlan() {
	if s.plan.Load() != nil && !s.stale.Load() {
		return
	}
	s.rebuild()
}

// rebuild resolves staleness against the current registry snapshot.
// Staleness clears up front, before the snapshot: a registration racing in
// after the snapshot re-marks it and the next Tick picks it up, while a
// registration landing before is already included. Clearing happens even
// when the snapshot is empty, otherwise an empty registry would trigger a
// rebuild attempt every single frame.
func (s *Scheduler) rebuild() {
	s.stale.Store(false)

	snap, gen := s.registry.Snapshot()
	plan, err := BuildPlan(snap, gen)
	if err != nil {
		// Unreachable by construction. Keep the previous plan; the frame
		// must not abort over a planning failure.
		s.log.Error("plan build failed, keeping previous plan", zap.Error(err))
		return
	}
	s.rebuilds.Add(1)

	if len(plan.Stages) == 0 {
		// Recognized degenerate condition: nothing registered. Retain any
		// previous non-empty plan; with none, Tick falls back to the
		// (vacuous) sequential path for this frame.
		s.log.Debug("plan empty, sequential fallback", zap.Uint64("generation", gen))
		return
	}

	s.plan.Store(plan)
	s.log.Info("plan rebuilt",
		zap.Int("stages", len(plan.Stages)),
		zap.Int("systems", plan.SystemCount()),
		zap.Uint64("generation", gen))
}

// Tick executes exactly one frame.
func (s *Scheduler) Tick(w *ecs.World, dt time.Duration) FrameResult {
	if !s.parallel {
		return s.runSequential(w, dt)
	}
	if s.stale.Load() {
		s.rebuild()
	}
	plan := s.plan.Load()
	if plan == nil {
		return s.runSequential(w, dt)
	}
	return s.runPlan(plan, w, dt)
}

// runSequential is the universal fallback: the full priority-sorted
// snapshot, invoked in order on the calling goroutine.
func (s *Scheduler) runSequential(w *ecs.World, dt time.Duration) FrameResult {
	var res FrameResult
	snap, _ := s.registry.Snapshot()
	for _, d := range snap {
		if err := s.invoke(d, w, dt); err != nil {
			res.fail(d.ID, err)
		}
	}
	return res
}

// runPlan executes stages strictly in order. Within a stage every member is
// dispatched concurrently and the frame blocks at a barrier until all of
// them return; that barrier is the only ordering guarantee inside a frame.
// A failing system never cancels already-dispatched siblings, and the next
// stage starts regardless of errors in this one.
func (s *Scheduler) runPlan(p *Plan, w *ecs.World, dt time.Duration) FrameResult {
	var res FrameResult
	for i := range p.Stages {
		st := &p.Stages[i]

		// Singleton stages skip the fan-out. Same behavior, no goroutine.
		if len(st.Systems) == 1 {
			d := st.Systems[0]
			if err := s.invoke(d, w, dt); err != nil {
				res.fail(d.ID, err)
			}
			continue
		}

		errs := make([]error, len(st.Systems))
		var wg sync.WaitGroup
		wg.Add(len(st.Systems))
		for j, d := range st.Systems {
			j, d := j, d
			go func() {
				defer wg.Done()
				errs[j] = s.invoke(d, w, dt)
			}()
		}
		wg.Wait()

		for j, err := range errs {
			if err != nil {
				res.fail(st.Systems[j].ID, err)
			}
		}
	}
	return res
}

// invoke runs a single system, converting returned errors and recovered
// panics into SystemExecutionError. A panicking system must not take down
// its stage siblings or the frame loop.
func (s *Scheduler) invoke(d *SystemDescriptor, w *ecs.World, dt time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &SystemExecutionError{
				ID:    d.ID,
				Cause: fmt.Errorf("panic: %v\n%s", r, debug.Stack()),
			}
		}
		if err != nil {
			s.log.Warn("system error", zap.String("system", d.ID), zap.Error(err))
		}
	}()
	if runErr := d.Run(w, dt); runErr != nil {
		err = &SystemExecutionError{ID: d.ID, Cause: runErr}
	}
	return err
}
