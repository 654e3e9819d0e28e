package highs

import (
	"slices"
)

// Lp is the canonical in-memory representation of an LP or MIP:
//
//	Minimize (or Maximize): ColCost · x + Offset
//	Subject to:             RowLower ≤ A·x ≤ RowUpper
//	And:                    ColLower ≤ x ≤ ColUpper
//
// The constraint matrix lives in AMatrix. AStart, AIndex, AValue and
// Format are the legacy flat view of the same data; every mutator re-syncs
// them, and AMatrixOk reports when they have drifted. The legacy slices
// share storage with AMatrix, so an element assigned in place changes both
// views; drift only appears once a legacy slice itself is reassigned.
//
// Stored costs, bounds and offset are in user-scaled units: every value
// written through a mutator is multiplied by the active user scale factor
// (see SetUserBoundScale and SetUserCostScale).
//
// An Lp is not safe for concurrent use.
type Lp struct {
	NumCol int
	NumRow int

	ColCost  []float64
	ColLower []float64
	ColUpper []float64
	RowLower []float64
	RowUpper []float64

	// Legacy view of AMatrix.
	Format MatrixFormat
	AStart []int
	AIndex []int
	AValue []float64

	AMatrix SparseMatrix

	Sense     ObjSense
	Offset    float64
	ModelName string
	ColNames  []string
	RowNames  []string

	// Integrality is either empty or has NumCol entries.
	Integrality []VariableType

	Scale SimplexScale

	userScale UserScale
}

// NewLp returns an empty model.
func NewLp() *Lp {
	lp := &Lp{}
	lp.Clear()
	return lp
}

// Clear resets lp to the empty model, including its internal scale and its
// user scale exponents.
func (lp *Lp) Clear() {
	*lp = Lp{
		Sense: Minimize,
		Scale: defaultSimplexScale(),
	}
	lp.AMatrix.Clear()
	lp.syncLegacy()
}

// Clone returns a deep copy of lp. A legacy slice that shares storage with
// AMatrix shares it with the copy's AMatrix too; one that was reassigned is
// copied as stored, so a drifted copy stays drifted.
func (lp *Lp) Clone() *Lp {
	c := *lp
	c.ColCost = slices.Clone(lp.ColCost)
	c.ColLower = slices.Clone(lp.ColLower)
	c.ColUpper = slices.Clone(lp.ColUpper)
	c.RowLower = slices.Clone(lp.RowLower)
	c.RowUpper = slices.Clone(lp.RowUpper)
	c.AMatrix = lp.AMatrix.Clone()
	c.AStart = cloneLegacy(lp.AStart, lp.AMatrix.Start, c.AMatrix.Start)
	c.AIndex = cloneLegacy(lp.AIndex, lp.AMatrix.Index, c.AMatrix.Index)
	c.AValue = cloneLegacy(lp.AValue, lp.AMatrix.Value, c.AMatrix.Value)
	c.ColNames = slices.Clone(lp.ColNames)
	c.RowNames = slices.Clone(lp.RowNames)
	c.Integrality = slices.Clone(lp.Integrality)
	c.Scale = lp.Scale.clone()
	return &c
}

// cloneLegacy returns cloned when legacy aliases canonical, otherwise a copy
// of legacy.
func cloneLegacy[T any](legacy, canonical, cloned []T) []T {
	if len(legacy) == len(canonical) && cap(legacy) == cap(canonical) &&
		(len(legacy) == 0 || &legacy[0] == &canonical[0]) {
		if legacy == nil {
			return nil
		}
		return cloned
	}
	return slices.Clone(legacy)
}

// syncLegacy points the legacy view at the canonical matrix.
func (lp *Lp) syncLegacy() {
	lp.Format = lp.AMatrix.Format
	lp.AStart = lp.AMatrix.Start
	lp.AIndex = lp.AMatrix.Index
	lp.AValue = lp.AMatrix.Value
}

// IsMip reports whether any column is non-continuous.
func (lp *Lp) IsMip() bool {
	for _, t := range lp.Integrality {
		if t != Continuous {
			return true
		}
	}
	return false
}

// NumNz returns the number of constraint matrix nonzeros.
func (lp *Lp) NumNz() int {
	return lp.AMatrix.NumNz()
}

// ObjectiveValue returns Offset + ColCost·x. x must have at least NumCol
// entries.
func (lp *Lp) ObjectiveValue(x []float64) float64 {
	value := lp.Offset
	for col := 0; col < lp.NumCol; col++ {
		value += lp.ColCost[col] * x[col]
	}
	return value
}

// RowActivity returns A·x.
func (lp *Lp) RowActivity(x []float64) []float64 {
	return lp.AMatrix.Product(x)
}

// AddCol adds one column. index and value give its entries by row.
// cost, lower and upper are in user units.
func (lp *Lp) AddCol(cost, lower, upper float64, index []int, value []float64) error {
	return lp.addCols("AddCol", []float64{cost}, []float64{lower}, []float64{upper},
		[]int{0}, index, value)
}

// AddCols adds len(costs) columns in compressed column form: start has one
// entry per column, start[0] is 0 and the last column ends at len(index).
// start may be nil when there are no entries.
func (lp *Lp) AddCols(costs, lower, upper []float64, start, index []int, value []float64) error {
	return lp.addCols("AddCols", costs, lower, upper, start, index, value)
}

func (lp *Lp) addCols(op string, costs, lower, upper []float64, start, index []int, value []float64) error {
	num := len(costs)
	if len(lower) != num || len(upper) != num {
		return wrapError(op, ErrDimensionMismatch, "%d costs, %d lower, %d upper", num, len(lower), len(upper))
	}
	if num == 0 {
		return nil
	}
	if err := checkCompressed(op, num, lp.NumRow, start, index, value); err != nil {
		return err
	}
	if start == nil {
		start = make([]int, num)
	}

	scaledCost := make([]float64, num)
	scaledLower := make([]float64, num)
	scaledUpper := make([]float64, num)
	for i := 0; i < num; i++ {
		var err error
		if scaledCost[i], err = lp.userCost(op, costs[i]); err != nil {
			return err
		}
		if scaledLower[i], err = lp.userBound(op, lower[i]); err != nil {
			return err
		}
		if scaledUpper[i], err = lp.userBound(op, upper[i]); err != nil {
			return err
		}
	}

	lp.ColCost = append(lp.ColCost[:lp.NumCol], scaledCost...)
	lp.ColLower = append(lp.ColLower[:lp.NumCol], scaledLower...)
	lp.ColUpper = append(lp.ColUpper[:lp.NumCol], scaledUpper...)
	if len(lp.Integrality) > 0 {
		lp.Integrality = append(lp.Integrality, make([]VariableType, num)...)
	}
	if len(lp.ColNames) > 0 {
		lp.ColNames = append(lp.ColNames, make([]string, num)...)
	}
	lp.AMatrix.NumRow = lp.NumRow
	lp.AMatrix.addCols(num, start, index, value)
	lp.NumCol += num
	lp.Scale.growCols(num)
	lp.syncLegacy()
	return nil
}

// AddRow adds one row. index and value give its entries by column.
// lower and upper are in user units.
func (lp *Lp) AddRow(lower, upper float64, index []int, value []float64) error {
	return lp.addRows("AddRow", []float64{lower}, []float64{upper}, []int{0}, index, value)
}

// AddRows adds len(lower) rows in compressed row form, with the same start
// convention as AddCols.
func (lp *Lp) AddRows(lower, upper []float64, start, index []int, value []float64) error {
	return lp.addRows("AddRows", lower, upper, start, index, value)
}

func (lp *Lp) addRows(op string, lower, upper []float64, start, index []int, value []float64) error {
	num := len(lower)
	if len(upper) != num {
		return wrapError(op, ErrDimensionMismatch, "%d lower, %d upper", num, len(upper))
	}
	if num == 0 {
		return nil
	}
	if err := checkCompressed(op, num, lp.NumCol, start, index, value); err != nil {
		return err
	}
	if start == nil {
		start = make([]int, num)
	}

	scaledLower := make([]float64, num)
	scaledUpper := make([]float64, num)
	for i := 0; i < num; i++ {
		var err error
		if scaledLower[i], err = lp.userBound(op, lower[i]); err != nil {
			return err
		}
		if scaledUpper[i], err = lp.userBound(op, upper[i]); err != nil {
			return err
		}
	}

	lp.RowLower = append(lp.RowLower[:lp.NumRow], scaledLower...)
	lp.RowUpper = append(lp.RowUpper[:lp.NumRow], scaledUpper...)
	if len(lp.RowNames) > 0 {
		lp.RowNames = append(lp.RowNames, make([]string, num)...)
	}
	lp.AMatrix.NumCol = lp.NumCol
	lp.AMatrix.addRows(num, start, index, value)
	lp.NumRow += num
	lp.Scale.growRows(num)
	lp.syncLegacy()
	return nil
}

// checkCompressed validates a compressed block of num vectors whose inner
// indices must lie in [0, dim).
func checkCompressed(op string, num, dim int, start, index []int, value []float64) error {
	if len(index) != len(value) {
		return wrapError(op, ErrDimensionMismatch, "%d indices, %d values", len(index), len(value))
	}
	if start == nil {
		if len(index) > 0 {
			return wrapError(op, ErrDimensionMismatch, "entries given without starts")
		}
		return nil
	}
	if len(start) != num {
		return wrapError(op, ErrDimensionMismatch, "%d starts for %d vectors", len(start), num)
	}
	if start[0] != 0 {
		return wrapError(op, ErrDimensionMismatch, "first start is %d", start[0])
	}
	for i := 1; i < num; i++ {
		if start[i] < start[i-1] || start[i] > len(index) {
			return wrapError(op, ErrDimensionMismatch, "start %d is %d", i, start[i])
		}
	}
	for k, i := range index {
		if i < 0 || i >= dim {
			return wrapError(op, ErrIndexOutOfRange, "entry %d has index %d, dimension %d", k, i, dim)
		}
	}
	return nil
}

// ChangeColCost sets the cost of col, given in user units.
func (lp *Lp) ChangeColCost(col int, cost float64) error {
	if col < 0 || col >= lp.NumCol {
		return wrapError("ChangeColCost", ErrIndexOutOfRange, "column %d of %d", col, lp.NumCol)
	}
	scaled, err := lp.userCost("ChangeColCost", cost)
	if err != nil {
		return err
	}
	lp.ColCost[col] = scaled
	return nil
}

// ChangeColBounds sets the bounds of col, given in user units.
func (lp *Lp) ChangeColBounds(col int, lower, upper float64) error {
	if col < 0 || col >= lp.NumCol {
		return wrapError("ChangeColBounds", ErrIndexOutOfRange, "column %d of %d", col, lp.NumCol)
	}
	l, err := lp.userBound("ChangeColBounds", lower)
	if err != nil {
		return err
	}
	u, err := lp.userBound("ChangeColBounds", upper)
	if err != nil {
		return err
	}
	lp.ColLower[col], lp.ColUpper[col] = l, u
	return nil
}

// ChangeRowBounds sets the bounds of row, given in user units.
func (lp *Lp) ChangeRowBounds(row int, lower, upper float64) error {
	if row < 0 || row >= lp.NumRow {
		return wrapError("ChangeRowBounds", ErrIndexOutOfRange, "row %d of %d", row, lp.NumRow)
	}
	l, err := lp.userBound("ChangeRowBounds", lower)
	if err != nil {
		return err
	}
	u, err := lp.userBound("ChangeRowBounds", upper)
	if err != nil {
		return err
	}
	lp.RowLower[row], lp.RowUpper[row] = l, u
	return nil
}

// ChangeColIntegrality sets the type of col. The first non-continuous
// column materializes the Integrality array.
func (lp *Lp) ChangeColIntegrality(col int, t VariableType) error {
	if col < 0 || col >= lp.NumCol {
		return wrapError("ChangeColIntegrality", ErrIndexOutOfRange, "column %d of %d", col, lp.NumCol)
	}
	if !t.valid() {
		return newErrorMsg("ChangeColIntegrality", "unknown variable type")
	}
	if len(lp.Integrality) == 0 {
		if t == Continuous {
			return nil
		}
		lp.Integrality = make([]VariableType, lp.NumCol)
	}
	lp.Integrality[col] = t
	return nil
}

// ChangeObjectiveSense sets the optimization direction.
func (lp *Lp) ChangeObjectiveSense(sense ObjSense) error {
	if sense != Minimize && sense != Maximize {
		return newErrorMsg("ChangeObjectiveSense", "unknown sense")
	}
	lp.Sense = sense
	return nil
}

// ChangeObjectiveOffset sets the objective constant, given in user units.
func (lp *Lp) ChangeObjectiveOffset(offset float64) error {
	scaled, err := lp.userOffset("ChangeObjectiveOffset", offset)
	if err != nil {
		return err
	}
	lp.Offset = scaled
	return nil
}

// SetMatrix replaces the constraint matrix. The data is copied and stored
// column-wise.
func (lp *Lp) SetMatrix(format MatrixFormat, start, index []int, value []float64) error {
	const op = "SetMatrix"
	outer, inner := lp.NumCol, lp.NumRow
	switch format {
	case MatrixFormatColwise:
	case MatrixFormatRowwise:
		outer, inner = lp.NumRow, lp.NumCol
	default:
		return newErrorMsg(op, "matrix format must be column-wise or row-wise")
	}
	if len(start) != outer+1 {
		return wrapError(op, ErrDimensionMismatch, "%d starts for %d vectors", len(start), outer)
	}
	numNz := start[outer]
	if numNz < 0 || numNz > len(index) || numNz > len(value) {
		return wrapError(op, ErrDimensionMismatch, "%d nonzeros declared, %d indices and %d values given",
			numNz, len(index), len(value))
	}
	if outer == 0 && numNz != 0 {
		return wrapError(op, ErrDimensionMismatch, "nonzeros declared for an empty matrix")
	}
	if outer > 0 {
		if err := checkCompressed(op, outer, inner, start[:outer], index[:numNz], value[:numNz]); err != nil {
			return err
		}
	}

	m := SparseMatrix{
		Format: format,
		NumCol: lp.NumCol,
		NumRow: lp.NumRow,
		Start:  slices.Clone(start),
		Index:  slices.Clone(index[:numNz]),
		Value:  slices.Clone(value[:numNz]),
	}
	m.ensureColwise()
	lp.AMatrix = m
	lp.syncLegacy()
	return nil
}

// SetColNames sets all column names; names must have NumCol entries.
func (lp *Lp) SetColNames(names []string) error {
	if len(names) != lp.NumCol {
		return wrapError("SetColNames", ErrDimensionMismatch, "%d names for %d columns", len(names), lp.NumCol)
	}
	lp.ColNames = slices.Clone(names)
	return nil
}

// SetRowNames sets all row names; names must have NumRow entries.
func (lp *Lp) SetRowNames(names []string) error {
	if len(names) != lp.NumRow {
		return wrapError("SetRowNames", ErrDimensionMismatch, "%d names for %d rows", len(names), lp.NumRow)
	}
	lp.RowNames = slices.Clone(names)
	return nil
}
