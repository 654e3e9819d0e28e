package highs

import (
	"context"
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	convexlp "gonum.org/v1/gonum/optimize/convex/lp"

	"github.com/bartolsthoorn/highslp/internal/logging"
)

// SimplexEngine solves continuous models with gonum's dense simplex method.
// It has no presolve and rejects models with integer columns. Every finite
// column and row bound becomes an inequality of the form G·x ≤ h, so it is
// meant for small models.
type SimplexEngine struct{}

// inequality is one row of G: a finite bound of a column or a row.
type inequality struct {
	index int
	isCol bool
	upper bool
}

// Solve implements Engine.
func (SimplexEngine) Solve(ctx context.Context, lp *Lp, opts Options) (*Result, error) {
	const op = "SimplexEngine.Solve"
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if lp.IsMip() {
		return nil, wrapError(op, ErrUnsupported, "integer columns need a MIP engine")
	}

	sense := float64(lp.Sense)
	a := lp.AMatrix.Clone()
	a.ensureColwise()

	rowBounded := make([]bool, lp.NumRow)
	rowHasEntry := make([]bool, lp.NumRow)
	for row := 0; row < lp.NumRow; row++ {
		rowBounded[row] = !math.IsInf(lp.RowLower[row], -1) || !math.IsInf(lp.RowUpper[row], 1)
	}
	for k := 0; k < a.NumNz(); k++ {
		if a.Value[k] != 0 {
			rowHasEntry[a.Index[k]] = true
		}
	}

	// A column enters the simplex when it has a finite bound or an entry in
	// a bounded row. The others are free and unconstrained.
	position := make([]int, lp.NumCol)
	var active []int
	unbounded := false
	for col := 0; col < lp.NumCol; col++ {
		position[col] = -1
		in := !math.IsInf(lp.ColLower[col], -1) || !math.IsInf(lp.ColUpper[col], 1)
		for k := a.Start[col]; k < a.Start[col+1] && !in; k++ {
			in = a.Value[k] != 0 && rowBounded[a.Index[k]]
		}
		if in {
			position[col] = len(active)
			active = append(active, col)
		} else if lp.ColCost[col] != 0 {
			unbounded = true
		}
	}

	tol := opts.PrimalFeasibilityTolerance
	var rows []inequality
	for _, col := range active {
		if !math.IsInf(lp.ColLower[col], -1) {
			rows = append(rows, inequality{index: col, isCol: true})
		}
		if !math.IsInf(lp.ColUpper[col], 1) {
			rows = append(rows, inequality{index: col, isCol: true, upper: true})
		}
	}
	for row := 0; row < lp.NumRow; row++ {
		if !rowBounded[row] {
			continue
		}
		if !rowHasEntry[row] {
			if lp.RowLower[row] > tol || lp.RowUpper[row] < -tol {
				return noSolution(ModelStatusInfeasible), nil
			}
			continue
		}
		if !math.IsInf(lp.RowLower[row], -1) {
			rows = append(rows, inequality{index: row})
		}
		if !math.IsInf(lp.RowUpper[row], 1) {
			rows = append(rows, inequality{index: row, upper: true})
		}
	}

	nVar, nIneq := len(active), len(rows)
	c := make([]float64, nVar)
	for i, col := range active {
		c[i] = sense * lp.ColCost[col]
	}
	h := make([]float64, nIneq)
	var g *mat.Dense
	if nVar > 0 && nIneq > 0 {
		g = mat.NewDense(nIneq, nVar, nil)
		rowOf := make(map[int][]int, nIneq)
		for i, r := range rows {
			sign := -1.0
			if r.upper {
				sign = 1
			}
			if r.isCol {
				g.Set(i, position[r.index], sign)
				h[i] = sign * lp.colBound(r.index, r.upper)
				continue
			}
			h[i] = sign * lp.rowBound(r.index, r.upper)
			rowOf[r.index] = append(rowOf[r.index], i)
		}
		for _, col := range active {
			for k := a.Start[col]; k < a.Start[col+1]; k++ {
				for _, i := range rowOf[a.Index[k]] {
					sign := -1.0
					if rows[i].upper {
						sign = 1
					}
					g.Set(i, position[col], g.At(i, position[col])+sign*a.Value[k])
				}
			}
		}
	}

	x := make([]float64, lp.NumCol)
	if g != nil {
		cNew, aNew, bNew := convexlp.Convert(c, g, h, nil, nil)
		_, xt, err := convexlp.Simplex(cNew, aNew, bNew, opts.DualFeasibilityTolerance, nil)
		switch {
		case errors.Is(err, convexlp.ErrInfeasible):
			return noSolution(ModelStatusInfeasible), nil
		case errors.Is(err, convexlp.ErrUnbounded):
			return noSolution(ModelStatusUnbounded), nil
		case err != nil:
			logging.Log().Info("Simplex failed", "error", err.Error(), "numCol", nVar, "numRow", nIneq)
			return noSolution(ModelStatusSolveError), wrapError(op, err, "simplex")
		}
		for i, col := range active {
			x[col] = xt[i] - xt[nVar+i]
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if unbounded {
		return noSolution(ModelStatusUnbounded), nil
	}

	sol := &Solution{
		Status:     ModelStatusOptimal,
		ValueValid: true,
		ColValues:  x,
		RowValues:  lp.RowActivity(x),
		Objective:  lp.ObjectiveValue(x),
	}
	if y, ok := dualMultipliers(c, g, h, opts.DualFeasibilityTolerance); ok {
		sol.DualValid = true
		sol.RowDuals = make([]float64, lp.NumRow)
		for i, r := range rows {
			if r.isCol {
				continue
			}
			if r.upper {
				sol.RowDuals[r.index] -= y[i]
			} else {
				sol.RowDuals[r.index] += y[i]
			}
		}
		// Reduced costs, computed in the minimization form, then returned to
		// the model's sense.
		sol.ColDuals = make([]float64, lp.NumCol)
		for col := 0; col < lp.NumCol; col++ {
			d := sense * lp.ColCost[col]
			for k := a.Start[col]; k < a.Start[col+1]; k++ {
				d -= a.Value[k] * sol.RowDuals[a.Index[k]]
			}
			sol.ColDuals[col] = sense * d
		}
		for row := range sol.RowDuals {
			sol.RowDuals[row] *= sense
		}
	}

	return &Result{
		Status:   ModelStatusOptimal,
		Solution: sol,
		Info:     assessSolution(lp, sol, &opts),
	}, nil
}

// dualMultipliers solves the dual of min cᵀx s.t. G·x ≤ h, which is
// min hᵀy s.t. Gᵀy = -c, y ≥ 0. gonum needs at least as many columns as
// rows, so ok is false when there are more variables than inequalities or
// the dual cannot be solved.
func dualMultipliers(c []float64, g *mat.Dense, h []float64, tol float64) (y []float64, ok bool) {
	if g == nil {
		return nil, len(c) == 0
	}
	nIneq, nVar := g.Dims()
	if nVar > nIneq {
		return nil, false
	}
	b := make([]float64, nVar)
	for i, v := range c {
		b[i] = -v
	}
	_, y, err := convexlp.Simplex(h, g.T(), b, tol, nil)
	if err != nil {
		logging.Log().V(logging.DEBUG).Info("Dual values not available", "error", err.Error())
		return nil, false
	}
	return y, true
}

func (lp *Lp) colBound(col int, upper bool) float64 {
	if upper {
		return lp.ColUpper[col]
	}
	return lp.ColLower[col]
}

func (lp *Lp) rowBound(row int, upper bool) float64 {
	if upper {
		return lp.RowUpper[row]
	}
	return lp.RowLower[row]
}
