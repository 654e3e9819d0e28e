package highs

import (
	"fmt"
	"slices"

	"go.uber.org/multierr"

	"github.com/bartolsthoorn/highslp/internal/logging"
	"github.com/bartolsthoorn/highslp/internal/metrics"
)

// DimensionsOk reports whether every array of lp is consistent with the
// declared row and column counts, the matrix object is well formed, and an
// active internal scale matches the model. Failures are logged under
// context; lp is never modified.
func (lp *Lp) DimensionsOk(context string) bool {
	failed := lp.dimensionFailures()
	report("DimensionsOk", context, failed)
	return len(failed) == 0
}

// AMatrixOk reports whether the matrix object mirrors the legacy view
// exactly: format, dimensions, starts, indices and values.
func (lp *Lp) AMatrixOk(context string) bool {
	failed := lp.matrixFailures()
	report("AMatrixOk", context, failed)
	return len(failed) == 0
}

// DimensionsAndMatrixOk is DimensionsOk && AMatrixOk. Both checks run so
// that every failure is reported.
func (lp *Lp) DimensionsAndMatrixOk(context string) bool {
	dimensionsOk := lp.DimensionsOk(context)
	matrixOk := lp.AMatrixOk(context)
	return dimensionsOk && matrixOk
}

// Validate returns one error per failed check, combined with multierr.
// Dimension failures wrap ErrDimensions and matrix failures wrap
// ErrMatrixMismatch.
func (lp *Lp) Validate() error {
	var err error
	for _, name := range lp.dimensionFailures() {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrDimensions, name))
	}
	for _, name := range lp.matrixFailures() {
		err = multierr.Append(err, fmt.Errorf("%w: %s", ErrMatrixMismatch, name))
	}
	return err
}

func report(check, context string, failed []string) {
	if len(failed) == 0 {
		return
	}
	for _, name := range failed {
		metrics.ValidationFailures.WithLabelValues(name).Inc()
	}
	logging.Log().Info("Model check not OK", "check", check, "context", context, "failed", failed)
}

func (lp *Lp) dimensionFailures() []string {
	var failed []string
	require := func(name string, ok bool) {
		if !ok {
			failed = append(failed, name)
		}
	}

	numCol, numRow := lp.NumCol, lp.NumRow
	if numCol < 0 || numRow < 0 {
		return []string{"counts"}
	}

	require("colCostSize", len(lp.ColCost) >= numCol)
	require("colLowerSize", len(lp.ColLower) >= numCol)
	require("colUpperSize", len(lp.ColUpper) >= numCol)
	require("rowLowerSize", len(lp.RowLower) >= numRow)
	require("rowUpperSize", len(lp.RowUpper) >= numRow)

	legacyOuter := numCol
	if lp.Format == MatrixFormatRowwise {
		legacyOuter = numRow
	}
	require("aStartSize", len(lp.AStart) >= legacyOuter+1)

	m := &lp.AMatrix
	require("aMatrixNumCol", m.NumCol == numCol)
	require("aMatrixNumRow", m.NumRow == numRow)

	outer := numCol
	if m.Format == MatrixFormatRowwise {
		outer = numRow
	}
	startOk := len(m.Start) >= outer+1
	// An Lp without columns need not have a start array or a format yet.
	if numCol > 0 {
		require("aMatrixStartSize", startOk)
		require("aMatrixFormat", m.Format == MatrixFormatColwise || m.Format == MatrixFormatRowwise)
	}
	if len(m.Start) > 0 {
		require("aMatrixFirstStart", m.Start[0] == 0)
	}
	if startOk {
		ordered := true
		for i := 0; i < outer; i++ {
			if m.Start[i+1] < m.Start[i] {
				ordered = false
				break
			}
		}
		require("aMatrixStartOrder", ordered)

		numNz := m.Start[outer]
		if numNz < 0 {
			require("aMatrixNumNz", false)
		} else {
			require("aMatrixIndexSize", len(m.Index) >= numNz)
			require("aMatrixValueSize", len(m.Value) >= numNz)
		}
	}

	require("integralitySize", len(lp.Integrality) == 0 || len(lp.Integrality) == numCol)
	require("colNamesSize", len(lp.ColNames) == 0 || len(lp.ColNames) >= numCol)
	require("rowNamesSize", len(lp.RowNames) == 0 || len(lp.RowNames) >= numRow)

	require("scaleStrategy", lp.Scale.Strategy.valid())
	if lp.Scale.Strategy != ScaleStrategyOff {
		require("scaleNumCol", lp.Scale.NumCol == numCol)
		require("scaleNumRow", lp.Scale.NumRow == numRow)
		require("scaleColSize", len(lp.Scale.Col) >= numCol)
		require("scaleRowSize", len(lp.Scale.Row) >= numRow)
	}
	return failed
}

func (lp *Lp) matrixFailures() []string {
	var failed []string
	require := func(name string, ok bool) {
		if !ok {
			failed = append(failed, name)
		}
	}
	m := &lp.AMatrix
	require("format", m.Format == lp.Format)
	require("numCol", m.NumCol == lp.NumCol)
	require("numRow", m.NumRow == lp.NumRow)
	require("start", slices.Equal(m.Start, lp.AStart))
	require("index", slices.Equal(m.Index, lp.AIndex))
	require("value", slices.Equal(m.Value, lp.AValue))
	return failed
}
