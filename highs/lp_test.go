package highs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestLp builds the two-column, three-row model used by TestLP.
func newTestLp(t *testing.T) *Lp {
	t.Helper()
	lp := NewLp()
	require.NoError(t, lp.AddRows(
		[]float64{NegInf(), 5, 6},
		[]float64{7, 15, Inf()},
		nil, nil, nil))
	require.NoError(t, lp.AddCols(
		[]float64{1, 1},
		[]float64{0, 1},
		[]float64{4, Inf()},
		[]int{0, 2},
		[]int{1, 2, 0, 1, 2},
		[]float64{1, 3, 1, 2, 2}))
	require.NoError(t, lp.ChangeObjectiveOffset(3))
	return lp
}

func TestNewLpIsEmpty(t *testing.T) {
	lp := NewLp()
	assert.Equal(t, 0, lp.NumCol)
	assert.Equal(t, 0, lp.NumRow)
	assert.Equal(t, Minimize, lp.Sense)
	assert.Equal(t, 0, lp.NumNz())
	assert.Equal(t, []int{0}, lp.AStart)
	assert.True(t, lp.DimensionsAndMatrixOk("empty"))
	assert.NoError(t, lp.Validate())
}

func TestAddColsAndRows(t *testing.T) {
	lp := newTestLp(t)

	assert.Equal(t, 2, lp.NumCol)
	assert.Equal(t, 3, lp.NumRow)
	assert.Equal(t, 5, lp.NumNz())
	assert.Equal(t, MatrixFormatColwise, lp.AMatrix.Format)
	assert.Equal(t, []int{0, 2, 5}, lp.AMatrix.Start)
	assert.Equal(t, []int{1, 2, 0, 1, 2}, lp.AMatrix.Index)
	assert.True(t, lp.AMatrixOk("built"))

	// A row added after the columns lands at the end of each column.
	require.NoError(t, lp.AddRow(0, 10, []int{1, 0}, []float64{4, 5}))
	assert.Equal(t, 4, lp.NumRow)
	assert.Equal(t, []int{0, 3, 7}, lp.AMatrix.Start)
	assert.Equal(t, []int{1, 2, 3, 0, 1, 2, 3}, lp.AMatrix.Index)
	assert.Equal(t, []float64{1, 3, 5, 1, 2, 2, 4}, lp.AMatrix.Value)
	assert.True(t, lp.DimensionsAndMatrixOk("row added"))
}

func TestAddColsErrors(t *testing.T) {
	lp := newTestLp(t)

	err := lp.AddCols([]float64{1}, []float64{0, 0}, []float64{1}, nil, nil, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = lp.AddCol(1, 0, 1, []int{3}, []float64{1})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)

	err = lp.AddCol(1, 0, 1, []int{0}, nil)
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	err = lp.AddRows([]float64{0}, []float64{1}, []int{1}, []int{0}, []float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)

	assert.Equal(t, 2, lp.NumCol, "failed adds must not change the model")
	assert.Equal(t, 3, lp.NumRow)
}

func TestChangeOutOfRange(t *testing.T) {
	lp := newTestLp(t)

	assert.ErrorIs(t, lp.ChangeColCost(2, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, lp.ChangeColBounds(-1, 0, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, lp.ChangeRowBounds(3, 0, 1), ErrIndexOutOfRange)
	assert.ErrorIs(t, lp.ChangeColIntegrality(5, Integer), ErrIndexOutOfRange)
	assert.Error(t, lp.ChangeObjectiveSense(ObjSense(0)))
}

func TestIntegrality(t *testing.T) {
	lp := newTestLp(t)
	assert.False(t, lp.IsMip())

	require.NoError(t, lp.ChangeColIntegrality(0, Continuous))
	assert.Empty(t, lp.Integrality, "continuous columns need no integrality array")

	require.NoError(t, lp.ChangeColIntegrality(1, Integer))
	assert.Equal(t, []VariableType{Continuous, Integer}, lp.Integrality)
	assert.True(t, lp.IsMip())

	require.NoError(t, lp.AddCol(0, 0, 1, nil, nil))
	assert.Len(t, lp.Integrality, 3)
	assert.True(t, lp.DimensionsOk("integrality"))
}

func TestObjectiveValueAndActivity(t *testing.T) {
	lp := newTestLp(t)
	x := []float64{0.5, 2.25}

	assert.InDelta(t, 5.75, lp.ObjectiveValue(x), 1e-12)
	assert.InDeltaSlice(t, []float64{2.25, 5, 6}, lp.RowActivity(x), 1e-12)
}

func TestSetMatrixRowwise(t *testing.T) {
	lp := NewLp()
	require.NoError(t, lp.AddCols([]float64{1, 1}, []float64{0, 0}, []float64{1, 1}, nil, nil, nil))
	require.NoError(t, lp.AddRows([]float64{0, 0}, []float64{1, 1}, nil, nil, nil))

	// [1 2]
	// [0 3]
	require.NoError(t, lp.SetMatrix(MatrixFormatRowwise, []int{0, 2, 3}, []int{0, 1, 1}, []float64{1, 2, 3}))
	assert.Equal(t, MatrixFormatColwise, lp.Format)
	assert.Equal(t, []int{0, 1, 3}, lp.AStart)
	assert.Equal(t, []int{0, 0, 1}, lp.AIndex)
	assert.Equal(t, []float64{1, 2, 3}, lp.AValue)

	err := lp.SetMatrix(MatrixFormatColwise, []int{0, 1}, []int{0}, []float64{1})
	assert.ErrorIs(t, err, ErrDimensionMismatch)
	err = lp.SetMatrix(MatrixFormatColwise, []int{0, 1, 2}, []int{0, 2}, []float64{1, 1})
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestCloneIsDeep(t *testing.T) {
	lp := newTestLp(t)
	require.NoError(t, lp.SetColNames([]string{"x", "y"}))
	c := lp.Clone()
	require.True(t, c.Equal(lp))

	c.ColCost[0] = 9
	c.AMatrix.Value[0] = 9
	c.ColNames[0] = "z"
	assert.Equal(t, 1.0, lp.ColCost[0])
	assert.Equal(t, 1.0, lp.AMatrix.Value[0])
	assert.Equal(t, "x", lp.ColNames[0])
}

func TestCloneKeepsLegacyAliasing(t *testing.T) {
	lp := newTestLp(t)
	c := lp.Clone()

	c.AStart[1] = 1
	assert.Equal(t, 1, c.AMatrix.Start[1], "clone legacy view detached from its matrix")
	assert.Equal(t, 2, lp.AStart[1], "clone shares storage with the original")
	assert.True(t, c.AMatrixOk("in place edit"))

	lp.AValue = []float64{1, 3, 1, 2, 7}
	drifted := lp.Clone()
	assert.False(t, drifted.AMatrixOk("drifted clone"))
	drifted.AValue[0] = 5
	assert.Equal(t, 1.0, lp.AValue[0])
}

func TestClear(t *testing.T) {
	lp := newTestLp(t)
	require.NoError(t, lp.ChangeObjectiveSense(Maximize))
	require.NoError(t, lp.SetUserBoundScale(2))

	lp.Clear()
	assert.True(t, lp.Equal(NewLp()))
	assert.True(t, lp.UserScale().IsZero())
}

func TestNames(t *testing.T) {
	lp := newTestLp(t)
	assert.ErrorIs(t, lp.SetColNames([]string{"x"}), ErrDimensionMismatch)
	require.NoError(t, lp.SetRowNames([]string{"a", "b", "c"}))

	require.NoError(t, lp.AddRow(0, 1, nil, nil))
	assert.Equal(t, []string{"a", "b", "c", ""}, lp.RowNames)
}
