package sched

import "fmt"

// DuplicateIDError is returned by Register when a descriptor reuses an ID
// already present in the registry.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("system %q already registered", e.ID)
}

// SystemExecutionError wraps a failure (returned error or recovered panic)
// from one system's RunFunc during a frame.
type SystemExecutionError struct {
	ID    string
	Cause error
}

func (e *SystemExecutionError) Error() string {
	return fmt.Sprintf("system %q: %v", e.ID, e.Cause)
}

func (e *SystemExecutionError) Unwrap() error { return e.Cause }

// PlanBuildError guards the planner's internal consistency check. The
// greedy planner always has a stage to place a descriptor in, so this
// should be unreachable; the scheduler logs it and keeps the previous plan
// rather than aborting the frame.
type PlanBuildError struct {
	Reason string
}

func (e *PlanBuildError) Error() string {
	return fmt.Sprintf("plan build failed: %s", e.Reason)
}
