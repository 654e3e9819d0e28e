package highs

import (
	"context"
	"math"

	"github.com/go-logr/logr"
)

// Model represents a high-level optimization model.
// It provides a convenient way to define LP and MIP problems
// without dealing with the low-level solver API directly.
//
// The model solves problems of the form:
//
//	Minimize (or Maximize): ColCosts · x + Offset
//	Subject to:             RowLower ≤ A·x ≤ RowUpper
//	And:                    ColLower ≤ x ≤ ColUpper
//
// Where A is the constraint matrix specified by ConstMatrix.
type Model struct {
	// Name becomes the Lp's model name.
	Name string

	// Maximize indicates whether to maximize (true) or minimize (false).
	Maximize bool

	// Offset is a constant added to the objective function.
	Offset float64

	// ColCosts are the objective function coefficients for each variable.
	ColCosts []float64

	// ColLower are the lower bounds for each variable.
	// If empty or shorter than the number of variables, defaults to -∞.
	ColLower []float64

	// ColUpper are the upper bounds for each variable.
	// If empty or shorter than the number of variables, defaults to +∞.
	ColUpper []float64

	// RowLower are the lower bounds for each constraint.
	// Use NegInf() for no lower bound.
	RowLower []float64

	// RowUpper are the upper bounds for each constraint.
	// Use Inf() for no upper bound.
	RowUpper []float64

	// ConstMatrix defines the constraint matrix as a list of non-zero entries.
	// Each entry specifies (row, column, value).
	ConstMatrix []Nonzero

	// VarTypes specifies the type of each variable (continuous, integer, etc.).
	// If empty, all variables are treated as continuous.
	VarTypes []VariableType

	// ColNames and RowNames are optional; when set they must name every
	// variable and constraint.
	ColNames []string
	RowNames []string
}

// AddDenseRow adds a constraint to the model using a dense coefficient vector.
// Zero coefficients are automatically filtered out.
//
// Example:
//
//	model.AddDenseRow(1.0, []float64{1.0, 2.0, 0.0, 3.0}, 10.0)
//	// Adds constraint: 1.0 <= x0 + 2*x1 + 3*x3 <= 10.0
func (m *Model) AddDenseRow(lower float64, coeffs []float64, upper float64) {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)

	for col, val := range coeffs {
		if val != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{
				Row: row,
				Col: col,
				Val: val,
			})
		}
	}
}

// AddSparseRow adds a constraint using sparse coefficient representation.
//
// Example:
//
//	model.AddSparseRow(1.0, []int{0, 1, 3}, []float64{1.0, 2.0, 3.0}, 10.0)
//	// Adds constraint: 1.0 <= x0 + 2*x1 + 3*x3 <= 10.0
func (m *Model) AddSparseRow(lower float64, cols []int, vals []float64, upper float64) {
	row := len(m.RowLower)
	m.RowLower = append(m.RowLower, lower)
	m.RowUpper = append(m.RowUpper, upper)

	for i, col := range cols {
		if vals[i] != 0.0 {
			m.ConstMatrix = append(m.ConstMatrix, Nonzero{
				Row: row,
				Col: col,
				Val: vals[i],
			})
		}
	}
}

// AddEqRow adds an equality constraint: sum(coeffs * x) = rhs.
func (m *Model) AddEqRow(coeffs []float64, rhs float64) {
	m.AddDenseRow(rhs, coeffs, rhs)
}

// AddLeRow adds a less-than-or-equal constraint: sum(coeffs * x) <= rhs.
func (m *Model) AddLeRow(coeffs []float64, rhs float64) {
	m.AddDenseRow(math.Inf(-1), coeffs, rhs)
}

// AddGeRow adds a greater-than-or-equal constraint: sum(coeffs * x) >= rhs.
func (m *Model) AddGeRow(coeffs []float64, rhs float64) {
	m.AddDenseRow(rhs, coeffs, math.Inf(1))
}

// NumVars returns the number of variables in the model.
func (m *Model) NumVars() int {
	_, maxCol := maxRowCol(m.ConstMatrix)
	for _, n := range []int{len(m.ColCosts), len(m.ColLower), len(m.ColUpper), len(m.VarTypes)} {
		if n > maxCol+1 {
			return n
		}
	}
	return maxCol + 1
}

// NumConstraints returns the number of constraints in the model.
func (m *Model) NumConstraints() int {
	maxRow, _ := maxRowCol(m.ConstMatrix)
	if len(m.RowLower) > maxRow+1 {
		return len(m.RowLower)
	}
	if len(m.RowUpper) > maxRow+1 {
		return len(m.RowUpper)
	}
	return maxRow + 1
}

// Lp builds the canonical Lp of the model, with defaults filled in and the
// constraint matrix stored column-wise.
func (m *Model) Lp() (*Lp, error) {
	numCol := m.NumVars()
	numRow := m.NumConstraints()

	// Prepare column data with defaults
	colCosts, err := expandSlice(numCol, m.ColCosts, 0.0)
	if err != nil {
		return nil, newErrorMsg("Lp", "inconsistent ColCosts length")
	}
	colLower, err := expandSlice(numCol, m.ColLower, math.Inf(-1))
	if err != nil {
		return nil, newErrorMsg("Lp", "inconsistent ColLower length")
	}
	colUpper, err := expandSlice(numCol, m.ColUpper, math.Inf(1))
	if err != nil {
		return nil, newErrorMsg("Lp", "inconsistent ColUpper length")
	}

	// Prepare row data with defaults
	rowLower, err := expandSlice(numRow, m.RowLower, math.Inf(-1))
	if err != nil {
		return nil, newErrorMsg("Lp", "inconsistent RowLower length")
	}
	rowUpper, err := expandSlice(numRow, m.RowUpper, math.Inf(1))
	if err != nil {
		return nil, newErrorMsg("Lp", "inconsistent RowUpper length")
	}

	aStart, aIndex, aValue, err := nonzerosToCSC(m.ConstMatrix, numCol)
	if err != nil {
		return nil, err
	}

	lp := NewLp()
	lp.ModelName = m.Name
	// Rows first, so that the columns' row indices are in range.
	if err := lp.AddRows(rowLower, rowUpper, nil, nil, nil); err != nil {
		return nil, err
	}
	if err := lp.AddCols(colCosts, colLower, colUpper, aStart[:numCol], aIndex, aValue); err != nil {
		return nil, err
	}
	if len(m.VarTypes) > numCol {
		return nil, newErrorMsg("Lp", "inconsistent VarTypes length")
	}
	for col, t := range m.VarTypes {
		if err := lp.ChangeColIntegrality(col, t); err != nil {
			return nil, err
		}
	}
	if m.Maximize {
		lp.Sense = Maximize
	}
	lp.Offset = m.Offset
	if len(m.ColNames) > 0 {
		if err := lp.SetColNames(m.ColNames); err != nil {
			return nil, err
		}
	}
	if len(m.RowNames) > 0 {
		if err := lp.SetRowNames(m.RowNames); err != nil {
			return nil, err
		}
	}
	return lp, nil
}

// Solve builds and solves the model, returning the solution.
//
// Options can be set using SolveOptions:
//
//	solution, err := model.Solve(
//		highs.WithTimeLimit(60),
//		highs.WithUserCostScale(-3),
//		highs.WithOutput(false),
//	)
func (m *Model) Solve(opts ...SolveOption) (*Solution, error) {
	return m.SolveContext(context.Background(), opts...)
}

// SolveContext is Solve under ctx.
func (m *Model) SolveContext(ctx context.Context, opts ...SolveOption) (*Solution, error) {
	solver, err := NewSolver(opts...)
	if err != nil {
		return nil, err
	}
	if err := solver.PassModel(m); err != nil {
		return nil, err
	}
	return solver.RunContext(ctx)
}

// SolveOption configures the solver behavior.
type SolveOption func(*solveConfig)

type solveConfig struct {
	output         *bool
	timeLimit      *float64
	mipAbsGap      *float64
	mipRelGap      *float64
	presolve       *string
	userBoundScale *int
	userCostScale  *int
	extraBool      map[string]bool
	extraInt       map[string]int
	extraFloat     map[string]float64
	extraString    map[string]string

	engine Engine
	logger *logr.Logger
}

func defaultSolveConfig() *solveConfig {
	return &solveConfig{
		extraBool:   make(map[string]bool),
		extraInt:    make(map[string]int),
		extraFloat:  make(map[string]float64),
		extraString: make(map[string]string),
	}
}

func (c *solveConfig) apply(s *Solver) error {
	if c.output != nil {
		if err := s.SetBoolOption(OptionOutputFlag, *c.output); err != nil {
			return err
		}
	}
	if c.timeLimit != nil {
		if err := s.SetFloatOption(OptionTimeLimit, *c.timeLimit); err != nil {
			return err
		}
	}
	if c.mipAbsGap != nil {
		if err := s.SetFloatOption(OptionMIPAbsGap, *c.mipAbsGap); err != nil {
			return err
		}
	}
	if c.mipRelGap != nil {
		if err := s.SetFloatOption(OptionMIPRelGap, *c.mipRelGap); err != nil {
			return err
		}
	}
	if c.presolve != nil {
		if err := s.SetStringOption(OptionPresolve, *c.presolve); err != nil {
			return err
		}
	}
	if c.userBoundScale != nil {
		if err := s.SetIntOption(OptionUserBoundScale, *c.userBoundScale); err != nil {
			return err
		}
	}
	if c.userCostScale != nil {
		if err := s.SetIntOption(OptionUserCostScale, *c.userCostScale); err != nil {
			return err
		}
	}
	for k, v := range c.extraBool {
		if err := s.SetBoolOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraInt {
		if err := s.SetIntOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraFloat {
		if err := s.SetFloatOption(k, v); err != nil {
			return err
		}
	}
	for k, v := range c.extraString {
		if err := s.SetStringOption(k, v); err != nil {
			return err
		}
	}
	return nil
}

// WithOutput enables or disables solver output.
func WithOutput(enabled bool) SolveOption {
	return func(c *solveConfig) {
		c.output = &enabled
	}
}

// WithTimeLimit sets the time limit in seconds.
func WithTimeLimit(seconds float64) SolveOption {
	return func(c *solveConfig) {
		c.timeLimit = &seconds
	}
}

// WithMIPAbsGap sets the absolute MIP gap tolerance.
func WithMIPAbsGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipAbsGap = &gap
	}
}

// WithMIPRelGap sets the relative MIP gap tolerance.
func WithMIPRelGap(gap float64) SolveOption {
	return func(c *solveConfig) {
		c.mipRelGap = &gap
	}
}

// WithPresolve sets the presolve mode ("off", "choose", "on").
func WithPresolve(mode string) SolveOption {
	return func(c *solveConfig) {
		c.presolve = &mode
	}
}

// WithUserBoundScale scales bounds and primal values by 2^exponent.
func WithUserBoundScale(exponent int) SolveOption {
	return func(c *solveConfig) {
		c.userBoundScale = &exponent
	}
}

// WithUserCostScale scales costs and dual values by 2^exponent.
func WithUserCostScale(exponent int) SolveOption {
	return func(c *solveConfig) {
		c.userCostScale = &exponent
	}
}

// WithEngine selects the engine that solves the model.
func WithEngine(e Engine) SolveOption {
	return func(c *solveConfig) {
		c.engine = e
	}
}

// WithLogger sets the session logger. The default is logging.Log().
func WithLogger(l logr.Logger) SolveOption {
	return func(c *solveConfig) {
		c.logger = &l
	}
}

// WithBoolOption sets a custom boolean option.
func WithBoolOption(name string, value bool) SolveOption {
	return func(c *solveConfig) {
		c.extraBool[name] = value
	}
}

// WithIntOption sets a custom integer option.
func WithIntOption(name string, value int) SolveOption {
	return func(c *solveConfig) {
		c.extraInt[name] = value
	}
}

// WithFloatOption sets a custom floating-point option.
func WithFloatOption(name string, value float64) SolveOption {
	return func(c *solveConfig) {
		c.extraFloat[name] = value
	}
}

// WithStringOption sets a custom string option.
func WithStringOption(name, value string) SolveOption {
	return func(c *solveConfig) {
		c.extraString[name] = value
	}
}
