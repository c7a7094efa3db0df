package upsert

import "fmt"

// Outcome classifies a single-row insert against the store.
type Outcome int

const (
	OutcomeCreated Outcome = iota + 1
	OutcomeAlreadyExists
	OutcomeFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCreated:
		return "created"
	case OutcomeAlreadyExists:
		return "already_exists"
	case OutcomeFailed:
		return "failed"
	default:
		return fmt.Sprintf("outcome(%d)", int(o))
	}
}

// Result is returned by insert primitives instead of raw driver errors, so
// callers branch on a typed conflict rather than on error text.
type Result struct {
	Outcome Outcome
	Err     error
}

func Created() Result {
	return Result{Outcome: OutcomeCreated}
}

func AlreadyExists(err error) Result {
	return Result{Outcome: OutcomeAlreadyExists, Err: err}
}

func Failed(err error) Result {
	if err == nil {
		err = fmt.Errorf("insert failed")
	}
	return Result{Outcome: OutcomeFailed, Err: err}
}

func (r Result) IsCreated() bool       { return r.Outcome == OutcomeCreated }
func (r Result) IsAlreadyExists() bool { return r.Outcome == OutcomeAlreadyExists }
func (r Result) IsFailed() bool        { return r.Outcome == OutcomeFailed }
