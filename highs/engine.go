package highs

import "context"

// Engine solves an Lp. The Lp is read-only for the engine and the Result
// must be in the units of the stored Lp, that is, with the applied user
// scale still in place.
type Engine interface {
	Solve(ctx context.Context, lp *Lp, opts Options) (*Result, error)
}

// Result is the raw outcome of an engine solve.
type Result struct {
	Status   ModelStatus
	Solution *Solution
	Info     Info
}

// noSolution returns a Result without primal or dual values.
func noSolution(status ModelStatus) *Result {
	return &Result{
		Status:   status,
		Solution: &Solution{Status: status},
		Info:     invalidInfo(),
	}
}
