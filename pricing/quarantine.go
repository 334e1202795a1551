package pricing

import (
	"fmt"
)

// ValuationError is a failure of a single derived-field computation.
type ValuationError struct {
	Op  string
	Err error
}

func (e *ValuationError) Error() string {
	if e.Err == nil {
		return e.Op + ": valuation failed"
	}
	return e.Err.Error()
}

func (e *ValuationError) Unwrap() error { return e.Err }

// Result is the outcome of one quarantined computation. Exactly one of
// Value and Err is meaningful.
type Result struct {
	Value float64
	Err   *ValuationError
}

func (r Result) OK() bool { return r.Err == nil }

// Quarantine runs fn and converts both returned errors and panics into a
// Result, so one failing computation can never unwind its caller.
func Quarantine(op string, fn func() (float64, error)) (res Result) {
	defer func() {
		if p := recover(); p != nil {
			res = Result{Err: &ValuationError{Op: op, Err: fmt.Errorf("%v", p)}}
		}
	}()

	v, err := fn()
	if err != nil {
		return Result{Err: &ValuationError{Op: op, Err: err}}
	}
	return Result{Value: v}
}
