package highs

import (
	"math"
)

// Option names understood by Options and Solver.
const (
	OptionOutputFlag                 = "output_flag"
	OptionTimeLimit                  = "time_limit"
	OptionMIPAbsGap                  = "mip_abs_gap"
	OptionMIPRelGap                  = "mip_rel_gap"
	OptionPresolve                   = "presolve"
	OptionPrimalFeasibilityTolerance = "primal_feasibility_tolerance"
	OptionDualFeasibilityTolerance   = "dual_feasibility_tolerance"
	OptionUserBoundScale             = "user_bound_scale"
	OptionUserCostScale              = "user_cost_scale"
)

// Options holds the solver configuration.
type Options struct {
	OutputFlag bool
	// TimeLimit is in seconds; +Inf disables it.
	TimeLimit float64
	MIPAbsGap float64
	MIPRelGap float64
	// Presolve is "off", "choose" or "on".
	Presolve string

	PrimalFeasibilityTolerance float64
	DualFeasibilityTolerance   float64

	// User scale exponents; factors are powers of two.
	UserBoundScale int
	UserCostScale  int
}

// DefaultOptions returns the option defaults.
func DefaultOptions() Options {
	return Options{
		TimeLimit:                  math.Inf(1),
		MIPAbsGap:                  1e-6,
		MIPRelGap:                  1e-4,
		Presolve:                   "choose",
		PrimalFeasibilityTolerance: 1e-7,
		DualFeasibilityTolerance:   1e-7,
	}
}

// UserScale returns the requested user scale exponents.
func (o *Options) UserScale() UserScale {
	return UserScale{BoundExponent: o.UserBoundScale, CostExponent: o.UserCostScale}
}

func unknownOption(op, name, kind string) error {
	return wrapError(op, ErrUnknownOption, "no %s option %q", kind, name)
}

// SetBoolOption sets a boolean option by name.
func (o *Options) SetBoolOption(name string, value bool) error {
	switch name {
	case OptionOutputFlag:
		o.OutputFlag = value
	default:
		return unknownOption("SetBoolOption", name, "bool")
	}
	return nil
}

// SetIntOption sets an integer option by name. User scale exponents are
// range checked.
func (o *Options) SetIntOption(name string, value int) error {
	const op = "SetIntOption"
	switch name {
	case OptionUserBoundScale:
		if err := checkUserScaleExponent(op, value); err != nil {
			return err
		}
		o.UserBoundScale = value
	case OptionUserCostScale:
		if err := checkUserScaleExponent(op, value); err != nil {
			return err
		}
		o.UserCostScale = value
	default:
		return unknownOption(op, name, "int")
	}
	return nil
}

// SetFloatOption sets a floating-point option by name.
func (o *Options) SetFloatOption(name string, value float64) error {
	const op = "SetFloatOption"
	if math.IsNaN(value) || value < 0 {
		return newErrorMsg(op, "value must be non-negative")
	}
	switch name {
	case OptionTimeLimit:
		o.TimeLimit = value
	case OptionMIPAbsGap:
		o.MIPAbsGap = value
	case OptionMIPRelGap:
		o.MIPRelGap = value
	case OptionPrimalFeasibilityTolerance:
		o.PrimalFeasibilityTolerance = value
	case OptionDualFeasibilityTolerance:
		o.DualFeasibilityTolerance = value
	default:
		return unknownOption(op, name, "float")
	}
	return nil
}

// SetStringOption sets a string option by name.
func (o *Options) SetStringOption(name, value string) error {
	const op = "SetStringOption"
	switch name {
	case OptionPresolve:
		switch value {
		case "off", "choose", "on":
			o.Presolve = value
		default:
			return newErrorMsg(op, "presolve must be off, choose or on")
		}
	default:
		return unknownOption(op, name, "string")
	}
	return nil
}

// GetBoolOption returns the value of a boolean option.
func (o *Options) GetBoolOption(name string) (bool, error) {
	switch name {
	case OptionOutputFlag:
		return o.OutputFlag, nil
	}
	return false, unknownOption("GetBoolOption", name, "bool")
}

// GetIntOption returns the value of an integer option.
func (o *Options) GetIntOption(name string) (int, error) {
	switch name {
	case OptionUserBoundScale:
		return o.UserBoundScale, nil
	case OptionUserCostScale:
		return o.UserCostScale, nil
	}
	return 0, unknownOption("GetIntOption", name, "int")
}

// GetFloatOption returns the value of a floating-point option.
func (o *Options) GetFloatOption(name string) (float64, error) {
	switch name {
	case OptionTimeLimit:
		return o.TimeLimit, nil
	case OptionMIPAbsGap:
		return o.MIPAbsGap, nil
	case OptionMIPRelGap:
		return o.MIPRelGap, nil
	case OptionPrimalFeasibilityTolerance:
		return o.PrimalFeasibilityTolerance, nil
	case OptionDualFeasibilityTolerance:
		return o.DualFeasibilityTolerance, nil
	}
	return 0, unknownOption("GetFloatOption", name, "float")
}

// GetStringOption returns the value of a string option.
func (o *Options) GetStringOption(name string) (string, error) {
	switch name {
	case OptionPresolve:
		return o.Presolve, nil
	}
	return "", unknownOption("GetStringOption", name, "string")
}
