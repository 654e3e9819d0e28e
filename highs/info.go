package highs

import "math"

// Info is the scalar summary of a solve.
type Info struct {
	ObjectiveFunctionValue float64

	PrimalSolutionStatus SolutionStatus
	DualSolutionStatus   SolutionStatus

	NumPrimalInfeasibilities int
	MaxPrimalInfeasibility   float64
	SumPrimalInfeasibilities float64

	NumDualInfeasibilities int
	MaxDualInfeasibility   float64
	SumDualInfeasibilities float64
}

// invalidInfo is the info of a model that has not been solved.
func invalidInfo() Info {
	return Info{
		NumPrimalInfeasibilities: IllegalInfeasibilityCount,
		MaxPrimalInfeasibility:   IllegalInfeasibilityMeasure(),
		SumPrimalInfeasibilities: IllegalInfeasibilityMeasure(),
		NumDualInfeasibilities:   IllegalInfeasibilityCount,
		MaxDualInfeasibility:     IllegalInfeasibilityMeasure(),
		SumDualInfeasibilities:   IllegalInfeasibilityMeasure(),
	}
}

// rescaled returns info in units shifted by the given exponent deltas.
// Infeasibility counts were assessed against tolerances in the old units,
// so after any change they are reported as IllegalInfeasibilityCount and a
// feasible status is downgraded to infeasible.
func (in Info) rescaled(boundDelta, costDelta int) Info {
	out := in
	out.ObjectiveFunctionValue = math.Ldexp(in.ObjectiveFunctionValue, boundDelta+costDelta)
	out.MaxPrimalInfeasibility = math.Ldexp(in.MaxPrimalInfeasibility, boundDelta)
	out.SumPrimalInfeasibilities = math.Ldexp(in.SumPrimalInfeasibilities, boundDelta)
	out.MaxDualInfeasibility = math.Ldexp(in.MaxDualInfeasibility, costDelta)
	out.SumDualInfeasibilities = math.Ldexp(in.SumDualInfeasibilities, costDelta)
	if boundDelta == 0 && costDelta == 0 {
		return out
	}
	out.NumPrimalInfeasibilities = IllegalInfeasibilityCount
	out.NumDualInfeasibilities = IllegalInfeasibilityCount
	if out.PrimalSolutionStatus == SolutionStatusFeasible {
		out.PrimalSolutionStatus = SolutionStatusInfeasible
	}
	if out.DualSolutionStatus == SolutionStatusFeasible {
		out.DualSolutionStatus = SolutionStatusInfeasible
	}
	return out
}

// infeasibilities accumulates violation magnitudes above a tolerance.
type infeasibilities struct {
	tolerance float64
	num       int
	max       float64
	sum       float64
}

func (f *infeasibilities) add(v float64) {
	if v <= f.tolerance {
		return
	}
	f.num++
	f.sum += v
	f.max = math.Max(f.max, v)
}

func (f *infeasibilities) status() SolutionStatus {
	if f.num == 0 {
		return SolutionStatusFeasible
	}
	return SolutionStatusInfeasible
}

func primalInfeasibility(value, lower, upper float64) float64 {
	return math.Max(0, math.Max(lower-value, value-upper))
}

// dualInfeasibility measures the sign violation of a dual for a value
// within [lower, upper] in a minimization: a positive dual needs the value
// at its lower bound, a negative one at its upper bound.
func dualInfeasibility(dual, value, lower, upper, tolerance float64) float64 {
	atLower := !math.IsInf(lower, -1) && value <= lower+tolerance
	atUpper := !math.IsInf(upper, 1) && value >= upper-tolerance
	switch {
	case dual > 0 && !atLower:
		return dual
	case dual < 0 && !atUpper:
		return -dual
	}
	return 0
}

// assessSolution computes the objective and infeasibility info of sol
// against lp, in lp's units.
func assessSolution(lp *Lp, sol *Solution, opts *Options) Info {
	info := invalidInfo()
	if !sol.ValueValid {
		return info
	}
	info.ObjectiveFunctionValue = lp.ObjectiveValue(sol.ColValues)

	primal := infeasibilities{tolerance: opts.PrimalFeasibilityTolerance}
	for col := 0; col < lp.NumCol; col++ {
		primal.add(primalInfeasibility(sol.ColValues[col], lp.ColLower[col], lp.ColUpper[col]))
	}
	for row := 0; row < lp.NumRow; row++ {
		primal.add(primalInfeasibility(sol.RowValues[row], lp.RowLower[row], lp.RowUpper[row]))
	}
	info.PrimalSolutionStatus = primal.status()
	info.NumPrimalInfeasibilities = primal.num
	info.MaxPrimalInfeasibility = primal.max
	info.SumPrimalInfeasibilities = primal.sum

	if !sol.DualValid {
		info.DualSolutionStatus = SolutionStatusNone
		return info
	}
	sense := float64(lp.Sense)
	tol := opts.PrimalFeasibilityTolerance
	dual := infeasibilities{tolerance: opts.DualFeasibilityTolerance}
	for col := 0; col < lp.NumCol; col++ {
		dual.add(dualInfeasibility(sense*sol.ColDuals[col], sol.ColValues[col],
			lp.ColLower[col], lp.ColUpper[col], tol))
	}
	for row := 0; row < lp.NumRow; row++ {
		dual.add(dualInfeasibility(sense*sol.RowDuals[row], sol.RowValues[row],
			lp.RowLower[row], lp.RowUpper[row], tol))
	}
	info.DualSolutionStatus = dual.status()
	info.NumDualInfeasibilities = dual.num
	info.MaxDualInfeasibility = dual.max
	info.SumDualInfeasibilities = dual.sum
	return info
}
