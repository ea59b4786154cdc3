package flowtime

import "fmt"

// IllegalTransitionError is returned when Stop, Cont or End is called while
// the task is in a state that does not permit the operation. It is always a
// caller bug; the engine never retries or suppresses it.
type IllegalTransitionError struct {
	Op    string
	State State
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition: cannot %s a task that is %s", e.Op, e.State)
}

// StorageError reports a failed save. Phase names the write that failed so
// partial writes can be diagnosed.
type StorageError struct {
	Description string
	Phase       string
	Err         error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("saving task %q failed during %s: %v", e.Description, e.Phase, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}
