package highs

import (
	"slices"

	"github.com/bartolsthoorn/highslp/internal/logging"
)

// EqualButForNames reports whether lp and other agree exactly on every
// member other than column and row names. Floats are compared with ==, so
// NaN entries never compare equal.
func (lp *Lp) EqualButForNames(other *Lp) bool {
	equal := lp.NumCol == other.NumCol
	equal = lp.NumRow == other.NumRow && equal
	equal = lp.Sense == other.Sense && equal
	equal = lp.Offset == other.Offset && equal
	equal = lp.ModelName == other.ModelName && equal
	equal = slices.Equal(lp.ColCost, other.ColCost) && equal
	equal = slices.Equal(lp.ColUpper, other.ColUpper) && equal
	equal = slices.Equal(lp.ColLower, other.ColLower) && equal
	equal = slices.Equal(lp.RowUpper, other.RowUpper) && equal
	equal = slices.Equal(lp.RowLower, other.RowLower) && equal
	equal = slices.Equal(lp.Integrality, other.Integrality) && equal

	equal = lp.Format == other.Format && equal
	equal = slices.Equal(lp.AStart, other.AStart) && equal
	equal = slices.Equal(lp.AIndex, other.AIndex) && equal
	equal = slices.Equal(lp.AValue, other.AValue) && equal

	equal = lp.AMatrix.Format == other.AMatrix.Format && equal
	equal = lp.AMatrix.NumCol == other.AMatrix.NumCol && equal
	equal = lp.AMatrix.NumRow == other.AMatrix.NumRow && equal
	equal = slices.Equal(lp.AMatrix.Start, other.AMatrix.Start) && equal
	equal = slices.Equal(lp.AMatrix.Index, other.AMatrix.Index) && equal
	equal = slices.Equal(lp.AMatrix.Value, other.AMatrix.Value) && equal

	equal = lp.Scale.Strategy == other.Scale.Strategy && equal
	equal = lp.Scale.HasScaling == other.Scale.HasScaling && equal
	equal = lp.Scale.NumCol == other.Scale.NumCol && equal
	equal = lp.Scale.NumRow == other.Scale.NumRow && equal
	equal = lp.Scale.Cost == other.Scale.Cost && equal
	equal = slices.Equal(lp.Scale.Col, other.Scale.Col) && equal
	equal = slices.Equal(lp.Scale.Row, other.Scale.Row) && equal

	equal = lp.userScale == other.userScale && equal
	return equal
}

// Equal is EqualButForNames plus equality of the column and row names.
func (lp *Lp) Equal(other *Lp) bool {
	equal := lp.EqualButForNames(other)
	equal = slices.Equal(lp.RowNames, other.RowNames) && equal
	equal = slices.Equal(lp.ColNames, other.ColNames) && equal
	return equal
}

// EqualScale compares only the per-column and per-row internal scale
// factors of lp with scale, logging a mismatch under context.
func (lp *Lp) EqualScale(context string, scale *SimplexScale) bool {
	equal := slices.Equal(lp.Scale.Col, scale.Col)
	equal = slices.Equal(lp.Scale.Row, scale.Row) && equal
	if !equal {
		logging.Log().Info("Internal scale not equal", "context", context)
	}
	return equal
}
