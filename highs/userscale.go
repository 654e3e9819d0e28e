package highs

import (
	"math"

	"github.com/bartolsthoorn/highslp/internal/logging"
	"github.com/bartolsthoorn/highslp/internal/metrics"
)

// Range of user scale exponents for which 2^e is finite and non-zero.
const (
	MinUserScaleExponent = -1074
	MaxUserScaleExponent = 1023
)

// UserScale records the user scale exponents currently applied to an Lp.
// Bounds and primal values are scaled by 2^BoundExponent; costs, duals and
// dual infeasibilities by 2^CostExponent.
type UserScale struct {
	BoundExponent int
	CostExponent  int
}

// BoundFactor returns 2^BoundExponent.
func (u UserScale) BoundFactor() float64 {
	return math.Ldexp(1, u.BoundExponent)
}

// CostFactor returns 2^CostExponent.
func (u UserScale) CostFactor() float64 {
	return math.Ldexp(1, u.CostExponent)
}

// IsZero reports whether no scaling is applied.
func (u UserScale) IsZero() bool {
	return u.BoundExponent == 0 && u.CostExponent == 0
}

// UserScale returns the exponents applied to the stored values.
func (lp *Lp) UserScale() UserScale {
	return lp.userScale
}

func checkUserScaleExponent(op string, exponent int) error {
	if exponent < MinUserScaleExponent || exponent > MaxUserScaleExponent {
		return wrapError(op, ErrUserScaleRange, "exponent %d not in [%d, %d]",
			exponent, MinUserScaleExponent, MaxUserScaleExponent)
	}
	return nil
}

// scaleFinite multiplies v by 2^exponent. Infinities and NaN pass through.
// The error is ErrUserScaleOverflow when a finite v overflows and
// ErrUserScaleInexact when it underflows into lost bits, so that scaling
// back by -exponent always restores v.
func scaleFinite(v float64, exponent int) (float64, error) {
	if math.IsInf(v, 0) || math.IsNaN(v) || v == 0 || exponent == 0 {
		return v, nil
	}
	scaled := math.Ldexp(v, exponent)
	if math.IsInf(scaled, 0) {
		return v, ErrUserScaleOverflow
	}
	if math.Ldexp(scaled, -exponent) != v {
		return v, ErrUserScaleInexact
	}
	return scaled, nil
}

func canScale(values []float64, exponent int) error {
	for _, v := range values {
		if _, err := scaleFinite(v, exponent); err != nil {
			return err
		}
	}
	return nil
}

func applyScale(values []float64, exponent int) {
	for i, v := range values {
		values[i], _ = scaleFinite(v, exponent)
	}
}

func (lp *Lp) boundValues() [][]float64 {
	return [][]float64{lp.ColLower, lp.ColUpper, lp.RowLower, lp.RowUpper}
}

// checkUserScale reports whether moving the stored values by the given
// exponent deltas is exact.
func (lp *Lp) checkUserScale(op string, boundDelta, costDelta int) error {
	if boundDelta != 0 {
		for _, values := range lp.boundValues() {
			if err := canScale(values, boundDelta); err != nil {
				return wrapError(op, err, "bounds under exponent delta %d", boundDelta)
			}
		}
	}
	if costDelta != 0 {
		if err := canScale(lp.ColCost, costDelta); err != nil {
			return wrapError(op, err, "costs under exponent delta %d", costDelta)
		}
	}
	if _, err := scaleFinite(lp.Offset, boundDelta+costDelta); err != nil {
		return wrapError(op, err, "offset under exponent delta %d", boundDelta+costDelta)
	}
	return nil
}

// applyUserScale moves the stored values to scale. It must follow a
// successful checkUserScale.
func (lp *Lp) applyUserScale(scale UserScale) {
	previous := lp.userScale
	boundDelta := scale.BoundExponent - previous.BoundExponent
	costDelta := scale.CostExponent - previous.CostExponent
	if boundDelta != 0 {
		for _, values := range lp.boundValues() {
			applyScale(values, boundDelta)
		}
		metrics.UserScaleChanges.WithLabelValues("bound").Inc()
		logging.Log().V(logging.DEBUG).Info("User bound scale applied",
			"from", previous.BoundExponent, "to", scale.BoundExponent, "numCol", lp.NumCol, "numRow", lp.NumRow)
	}
	if costDelta != 0 {
		applyScale(lp.ColCost, costDelta)
		metrics.UserScaleChanges.WithLabelValues("cost").Inc()
		logging.Log().V(logging.DEBUG).Info("User cost scale applied",
			"from", previous.CostExponent, "to", scale.CostExponent, "numCol", lp.NumCol)
	}
	lp.Offset, _ = scaleFinite(lp.Offset, boundDelta+costDelta)
	lp.userScale = scale
}

// SetUserBoundScale rescales every finite column and row bound so that the
// stored bounds are the user's bounds times 2^exponent, whatever exponent
// was applied before. The offset follows, since it is in objective units.
// Nothing is changed when an error is returned.
func (lp *Lp) SetUserBoundScale(exponent int) error {
	scale := lp.userScale
	scale.BoundExponent = exponent
	return lp.setUserScale("SetUserBoundScale", scale)
}

// SetUserCostScale rescales every column cost so that the stored costs are
// the user's costs times 2^exponent, whatever exponent was applied before.
// The offset follows. Nothing is changed when an error is returned.
func (lp *Lp) SetUserCostScale(exponent int) error {
	scale := lp.userScale
	scale.CostExponent = exponent
	return lp.setUserScale("SetUserCostScale", scale)
}

// SetUserScale applies both exponents, all or nothing.
func (lp *Lp) SetUserScale(scale UserScale) error {
	return lp.setUserScale("SetUserScale", scale)
}

func (lp *Lp) setUserScale(op string, scale UserScale) error {
	if err := checkUserScaleExponent(op, scale.BoundExponent); err != nil {
		return err
	}
	if err := checkUserScaleExponent(op, scale.CostExponent); err != nil {
		return err
	}
	if scale == lp.userScale {
		return nil
	}
	err := lp.checkUserScale(op,
		scale.BoundExponent-lp.userScale.BoundExponent,
		scale.CostExponent-lp.userScale.CostExponent)
	if err != nil {
		return err
	}
	lp.applyUserScale(scale)
	return nil
}

// userBound converts a bound given in user units to stored units.
func (lp *Lp) userBound(op string, v float64) (float64, error) {
	scaled, err := scaleFinite(v, lp.userScale.BoundExponent)
	if err != nil {
		return 0, wrapError(op, err, "bound %g under exponent %d", v, lp.userScale.BoundExponent)
	}
	return scaled, nil
}

// userCost converts a cost given in user units to stored units.
func (lp *Lp) userCost(op string, v float64) (float64, error) {
	scaled, err := scaleFinite(v, lp.userScale.CostExponent)
	if err != nil {
		return 0, wrapError(op, err, "cost %g under exponent %d", v, lp.userScale.CostExponent)
	}
	return scaled, nil
}

// userOffset converts an objective constant given in user units to stored
// units.
func (lp *Lp) userOffset(op string, v float64) (float64, error) {
	exponent := lp.userScale.BoundExponent + lp.userScale.CostExponent
	scaled, err := scaleFinite(v, exponent)
	if err != nil {
		return 0, wrapError(op, err, "offset %g under exponent %d", v, exponent)
	}
	return scaled, nil
}
