package highs

import (
	"context"
	"errors"
	"math"
	"slices"
	"time"

	"github.com/go-logr/logr"

	"github.com/bartolsthoorn/highslp/internal/logging"
	"github.com/bartolsthoorn/highslp/internal/metrics"
)

// Solver is a solve session. It owns one Lp in user-scaled units, the
// options, an Engine and the raw result of the last run.
//
// Solution, Info and ModelStatus report the raw result in the units of the
// current user scale: primal values by the bound factor, duals by the cost
// factor and the objective by both, relative to the exponents the model
// was solved under. Changing a user scale option after a run keeps the
// result; any other change to the model discards it.
//
// A Solver is not safe for concurrent use.
type Solver struct {
	lp      *Lp
	options Options
	engine  Engine
	log     logr.Logger

	result      *Result
	solvedScale UserScale
}

// NewSolver creates a session with an empty model. The default engine is
// SimplexEngine.
func NewSolver(opts ...SolveOption) (*Solver, error) {
	cfg := defaultSolveConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	s := &Solver{
		lp:      NewLp(),
		options: DefaultOptions(),
		engine:  cfg.engine,
		log:     logging.Log(),
	}
	if s.engine == nil {
		s.engine = SimplexEngine{}
	}
	if cfg.logger != nil {
		s.log = *cfg.logger
	}
	if err := cfg.apply(s); err != nil {
		return nil, err
	}
	return s, nil
}

// Clear resets the model, the result and the options.
func (s *Solver) Clear() error {
	s.lp.Clear()
	s.options = DefaultOptions()
	s.result = nil
	return nil
}

// ClearModel removes all variables and constraints but keeps options. The
// user scale options carry over to the empty model.
func (s *Solver) ClearModel() error {
	s.lp.Clear()
	s.result = nil
	return s.lp.SetUserScale(s.options.UserScale())
}

// ClearSolver discards the result but keeps the model.
func (s *Solver) ClearSolver() error {
	s.result = nil
	return nil
}

// Infinity returns the value used to represent infinite bounds.
func (s *Solver) Infinity() float64 {
	return math.Inf(1)
}

// NumCol returns the number of columns (variables) in the model.
func (s *Solver) NumCol() int {
	return s.lp.NumCol
}

// NumRow returns the number of rows (constraints) in the model.
func (s *Solver) NumRow() int {
	return s.lp.NumRow
}

// NumNonzero returns the number of non-zero entries in the constraint matrix.
func (s *Solver) NumNonzero() int {
	return s.lp.NumNz()
}

// Lp returns the model held by the session, in user-scaled units. It must
// not be modified.
func (s *Solver) Lp() *Lp {
	return s.lp
}

// Options returns a copy of the current options.
func (s *Solver) Options() Options {
	return s.options
}

// invalidate discards the result after a model change.
func (s *Solver) invalidate(err error) error {
	if err == nil {
		s.result = nil
	}
	return err
}

// SetBoolOption sets a boolean option.
func (s *Solver) SetBoolOption(name string, value bool) error {
	return s.options.SetBoolOption(name, value)
}

// SetIntOption sets an integer option. Setting user_bound_scale or
// user_cost_scale rescales the model first; the option only changes when
// that succeeds.
func (s *Solver) SetIntOption(name string, value int) error {
	switch name {
	case OptionUserBoundScale:
		if err := s.lp.SetUserBoundScale(value); err != nil {
			return err
		}
	case OptionUserCostScale:
		if err := s.lp.SetUserCostScale(value); err != nil {
			return err
		}
	}
	return s.options.SetIntOption(name, value)
}

// SetFloatOption sets a floating-point option.
func (s *Solver) SetFloatOption(name string, value float64) error {
	return s.options.SetFloatOption(name, value)
}

// SetStringOption sets a string option.
func (s *Solver) SetStringOption(name, value string) error {
	return s.options.SetStringOption(name, value)
}

// GetBoolOption returns the value of a boolean option.
func (s *Solver) GetBoolOption(name string) (bool, error) {
	return s.options.GetBoolOption(name)
}

// GetIntOption returns the value of an integer option.
func (s *Solver) GetIntOption(name string) (int, error) {
	return s.options.GetIntOption(name)
}

// GetFloatOption returns the value of a floating-point option.
func (s *Solver) GetFloatOption(name string) (float64, error) {
	return s.options.GetFloatOption(name)
}

// GetStringOption returns the value of a string option.
func (s *Solver) GetStringOption(name string) (string, error) {
	return s.options.GetStringOption(name)
}

// SetMaximize sets whether to maximize (true) or minimize (false).
func (s *Solver) SetMaximize(maximize bool) error {
	sense := Minimize
	if maximize {
		sense = Maximize
	}
	return s.invalidate(s.lp.ChangeObjectiveSense(sense))
}

// SetObjectiveOffset sets a constant offset for the objective function.
func (s *Solver) SetObjectiveOffset(offset float64) error {
	return s.invalidate(s.lp.ChangeObjectiveOffset(offset))
}

// AddVar adds a single variable with the given bounds and zero cost.
func (s *Solver) AddVar(lower, upper float64) error {
	return s.invalidate(s.lp.AddCol(0, lower, upper, nil, nil))
}

// AddVars adds multiple variables with the given bounds and zero cost.
func (s *Solver) AddVars(lower, upper []float64) error {
	if len(lower) != len(upper) {
		return newErrorMsg("AddVars", "lower and upper bounds must have same length")
	}
	return s.invalidate(s.lp.AddCols(make([]float64, len(lower)), lower, upper, nil, nil, nil))
}

// AddRow adds a constraint with the given bounds and coefficients.
// The index and value slices define the sparse row coefficients.
func (s *Solver) AddRow(lower, upper float64, index []int, value []float64) error {
	return s.invalidate(s.lp.AddRow(lower, upper, index, value))
}

// AddRows adds multiple constraints in compressed sparse row format.
func (s *Solver) AddRows(lower, upper []float64, starts, index []int, value []float64) error {
	return s.invalidate(s.lp.AddRows(lower, upper, starts, index, value))
}

// SetColCost sets the objective coefficient for a column.
func (s *Solver) SetColCost(col int, cost float64) error {
	return s.invalidate(s.lp.ChangeColCost(col, cost))
}

// SetColCosts sets the objective coefficients of the first len(costs)
// columns. Either all costs change or none.
func (s *Solver) SetColCosts(costs []float64) error {
	if len(costs) > s.lp.NumCol {
		return wrapError("SetColCosts", ErrIndexOutOfRange, "%d costs for %d columns", len(costs), s.lp.NumCol)
	}
	saved := slices.Clone(s.lp.ColCost)
	for col, cost := range costs {
		if err := s.lp.ChangeColCost(col, cost); err != nil {
			s.lp.ColCost = saved
			return err
		}
	}
	return s.invalidate(nil)
}

// SetColBounds sets the bounds for a column.
func (s *Solver) SetColBounds(col int, lower, upper float64) error {
	return s.invalidate(s.lp.ChangeColBounds(col, lower, upper))
}

// SetRowBounds sets the bounds for a row.
func (s *Solver) SetRowBounds(row int, lower, upper float64) error {
	return s.invalidate(s.lp.ChangeRowBounds(row, lower, upper))
}

// SetColIntegrality sets the variable type for a column.
func (s *Solver) SetColIntegrality(col int, varType VariableType) error {
	return s.invalidate(s.lp.ChangeColIntegrality(col, varType))
}

// SetIntegrality sets the variable types of the first len(varTypes)
// columns.
func (s *Solver) SetIntegrality(varTypes []VariableType) error {
	if len(varTypes) > s.lp.NumCol {
		return wrapError("SetIntegrality", ErrIndexOutOfRange, "%d types for %d columns", len(varTypes), s.lp.NumCol)
	}
	saved := slices.Clone(s.lp.Integrality)
	for col, t := range varTypes {
		if err := s.lp.ChangeColIntegrality(col, t); err != nil {
			s.lp.Integrality = saved
			return err
		}
	}
	return s.invalidate(nil)
}

// PassModel replaces the session's model with m.
func (s *Solver) PassModel(m *Model) error {
	lp, err := m.Lp()
	if err != nil {
		return err
	}
	return s.PassLp(lp)
}

// PassLp replaces the session's model with a copy of lp. Any user scale
// lp carries is undone before the session's user scale is applied, so the
// stored model is always lp's user units times the session's factors.
func (s *Solver) PassLp(lp *Lp) error {
	const op = "PassLp"
	if !lp.DimensionsAndMatrixOk(op) {
		return wrapError(op, ErrInvalidModel, "%v", lp.Validate())
	}
	c := lp.Clone()
	if err := c.SetUserScale(UserScale{}); err != nil {
		return err
	}
	if err := c.SetUserScale(s.options.UserScale()); err != nil {
		return err
	}
	s.lp = c
	s.result = nil
	return nil
}

// Run solves the model and returns the reported solution.
func (s *Solver) Run() (*Solution, error) {
	return s.RunContext(context.Background())
}

// RunContext solves the model under ctx. A finite time_limit is applied as
// a deadline; running out of time is reported as ModelStatusTimeLimit, not
// as an error. An inconsistent model is refused with ErrInvalidModel and
// never reaches the engine.
func (s *Solver) RunContext(ctx context.Context) (*Solution, error) {
	const op = "Run"
	s.result = nil
	if !s.lp.DimensionsAndMatrixOk(op) {
		return nil, wrapError(op, ErrInvalidModel, "%v", s.lp.Validate())
	}

	solveCtx := ctx
	if limit := s.options.TimeLimit; limit < math.MaxInt64/float64(time.Second) {
		var cancel context.CancelFunc
		solveCtx, cancel = context.WithTimeout(ctx, time.Duration(limit*float64(time.Second)))
		defer cancel()
	}

	start := time.Now()
	res, err := s.engine.Solve(solveCtx, s.lp, s.options)
	if err != nil {
		if !errors.Is(err, context.DeadlineExceeded) || ctx.Err() != nil {
			metrics.Solves.WithLabelValues(ModelStatusSolveError.String()).Inc()
			return nil, wrapError(op, err, "engine")
		}
		res = noSolution(ModelStatusTimeLimit)
	}
	if res.Solution == nil {
		res.Solution = &Solution{Status: res.Status}
	}

	s.result = res
	s.solvedScale = s.lp.UserScale()
	metrics.Solves.WithLabelValues(res.Status.String()).Inc()

	log := s.log.V(logging.DEBUG)
	if s.options.OutputFlag {
		log = s.log
	}
	log.Info("Solve finished", "status", res.Status.String(),
		"objective", res.Info.ObjectiveFunctionValue,
		"numCol", s.lp.NumCol, "numRow", s.lp.NumRow,
		"elapsed", time.Since(start))
	return s.Solution(), nil
}

// scaleDelta returns how far the current user scale has moved since the
// last run.
func (s *Solver) scaleDelta() (boundDelta, costDelta int) {
	now := s.lp.UserScale()
	return now.BoundExponent - s.solvedScale.BoundExponent, now.CostExponent - s.solvedScale.CostExponent
}

// ModelStatus returns the status of the last run. It is ModelStatusNotSet
// before any run and after a user scale change, since the status was
// established in other units.
func (s *Solver) ModelStatus() ModelStatus {
	if s.result == nil {
		return ModelStatusNotSet
	}
	if b, c := s.scaleDelta(); b != 0 || c != 0 {
		return ModelStatusNotSet
	}
	return s.result.Status
}

// Solution returns the last result in the current user units. The raw
// result is not modified, so repeated calls give the same answer.
func (s *Solver) Solution() *Solution {
	if s.result == nil {
		return &Solution{Status: ModelStatusNotSet}
	}
	sol := s.result.Solution.rescaled(s.scaleDelta())
	sol.Status = s.ModelStatus()
	return sol
}

// Info returns the last run's info in the current user units. After a user
// scale change the infeasibility counts read IllegalInfeasibilityCount.
func (s *Solver) Info() Info {
	if s.result == nil {
		return invalidInfo()
	}
	return s.result.Info.rescaled(s.scaleDelta())
}

// GetIntInfo returns an integer info value by name.
func (s *Solver) GetIntInfo(name string) (int, error) {
	info := s.Info()
	switch name {
	case "primal_solution_status":
		return int(info.PrimalSolutionStatus), nil
	case "dual_solution_status":
		return int(info.DualSolutionStatus), nil
	case "num_primal_infeasibilities":
		return info.NumPrimalInfeasibilities, nil
	case "num_dual_infeasibilities":
		return info.NumDualInfeasibilities, nil
	}
	return 0, newErrorMsg("GetIntInfo", "no int info "+name)
}

// GetFloatInfo returns a floating-point info value by name.
func (s *Solver) GetFloatInfo(name string) (float64, error) {
	info := s.Info()
	switch name {
	case "objective_function_value":
		return info.ObjectiveFunctionValue, nil
	case "max_primal_infeasibility":
		return info.MaxPrimalInfeasibility, nil
	case "sum_primal_infeasibilities":
		return info.SumPrimalInfeasibilities, nil
	case "max_dual_infeasibility":
		return info.MaxDualInfeasibility, nil
	case "sum_dual_infeasibilities":
		return info.SumDualInfeasibilities, nil
	}
	return 0, newErrorMsg("GetFloatInfo", "no float info "+name)
}
