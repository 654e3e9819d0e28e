package highs

import (
	"context"
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/bartolsthoorn/highslp/internal/metrics"
)

// fakeEngine returns a copy of a fixed result and counts its calls.
type fakeEngine struct {
	calls  int
	result Result
	err    error
}

func (f *fakeEngine) Solve(ctx context.Context, lp *Lp, opts Options) (*Result, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	res := f.result
	res.Solution = f.result.Solution.rescaled(0, 0)
	return &res, nil
}

// exampleModel is the model of TestLP, optimal at x = (0.5, 2.25) with
// objective 5.75 and row duals (0, 0.25, 0.25).
func exampleModel() *Model {
	return &Model{
		Offset:   3.0,
		ColCosts: []float64{1.0, 1.0},
		ColLower: []float64{0.0, 1.0},
		ColUpper: []float64{4.0, Inf()},
		ConstMatrix: []Nonzero{
			{0, 1, 1.0},
			{1, 0, 1.0},
			{1, 1, 2.0},
			{2, 0, 3.0},
			{2, 1, 2.0},
		},
		RowLower: []float64{NegInf(), 5.0, 6.0},
		RowUpper: []float64{7.0, 15.0, Inf()},
	}
}

func expectSlice(actual, expected []float64) {
	GinkgoHelper()
	Expect(actual).To(HaveLen(len(expected)))
	for i := range expected {
		Expect(actual[i]).To(BeNumerically("~", expected[i], 1e-6), "entry %d", i)
	}
}

var _ = Describe("Solver", func() {
	var solver *Solver

	BeforeEach(func() {
		var err error
		solver, err = NewSolver(WithOutput(false))
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.PassModel(exampleModel())).To(Succeed())
	})

	Context("before any run", func() {
		It("should report no status", func() {
			Expect(solver.ModelStatus()).To(Equal(ModelStatusNotSet))
			Expect(solver.Solution().Status).To(Equal(ModelStatusNotSet))
			Expect(solver.Info().NumPrimalInfeasibilities).To(Equal(IllegalInfeasibilityCount))
		})

		It("should describe the model", func() {
			Expect(solver.NumCol()).To(Equal(2))
			Expect(solver.NumRow()).To(Equal(3))
			Expect(solver.NumNonzero()).To(Equal(5))
			Expect(math.IsInf(solver.Infinity(), 1)).To(BeTrue())
		})
	})

	Context("after an optimal run", func() {
		BeforeEach(func() {
			sol, err := solver.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(sol.Status).To(Equal(ModelStatusOptimal))
		})

		It("should report a feasible primal and dual solution", func() {
			info := solver.Info()
			Expect(info.PrimalSolutionStatus).To(Equal(SolutionStatusFeasible))
			Expect(info.DualSolutionStatus).To(Equal(SolutionStatusFeasible))
			Expect(info.NumPrimalInfeasibilities).To(Equal(0))
			Expect(info.NumDualInfeasibilities).To(Equal(0))

			n, err := solver.GetIntInfo("num_primal_infeasibilities")
			Expect(err).NotTo(HaveOccurred())
			Expect(n).To(Equal(0))
			obj, err := solver.GetFloatInfo("objective_function_value")
			Expect(err).NotTo(HaveOccurred())
			Expect(obj).To(BeNumerically("~", 5.75, 1e-6))

			_, err = solver.GetIntInfo("simplex_iteration_count")
			Expect(err).To(HaveOccurred())
			_, err = solver.GetFloatInfo("mip_gap")
			Expect(err).To(HaveOccurred())
		})

		It("should rescale the result to a new user scale", func() {
			Expect(solver.SetIntOption(OptionUserCostScale, 2)).To(Succeed())
			Expect(solver.SetIntOption(OptionUserBoundScale, 3)).To(Succeed())

			sol := solver.Solution()
			expectSlice(sol.ColValues, []float64{4, 18})
			expectSlice(sol.RowValues, []float64{18, 40, 48})
			expectSlice(sol.RowDuals, []float64{0, 1, 1})
			expectSlice(sol.ColDuals, []float64{0, 0})
			Expect(sol.Objective).To(BeNumerically("~", 5.75*32, 1e-6))
			Expect(solver.Info().ObjectiveFunctionValue).To(BeNumerically("~", 5.75*32, 1e-6))
		})

		It("should withdraw the status and counts after a scale change", func() {
			Expect(solver.SetIntOption(OptionUserBoundScale, -1)).To(Succeed())

			Expect(solver.ModelStatus()).To(Equal(ModelStatusNotSet))
			Expect(solver.Solution().Status).To(Equal(ModelStatusNotSet))
			info := solver.Info()
			Expect(info.NumPrimalInfeasibilities).To(Equal(IllegalInfeasibilityCount))
			Expect(info.NumDualInfeasibilities).To(Equal(IllegalInfeasibilityCount))
			Expect(info.PrimalSolutionStatus).To(Equal(SolutionStatusInfeasible))
			Expect(info.DualSolutionStatus).To(Equal(SolutionStatusInfeasible))
		})

		It("should restore the status when the scale returns", func() {
			Expect(solver.SetIntOption(OptionUserBoundScale, 4)).To(Succeed())
			Expect(solver.SetIntOption(OptionUserBoundScale, 0)).To(Succeed())

			Expect(solver.ModelStatus()).To(Equal(ModelStatusOptimal))
			Expect(solver.Info().NumPrimalInfeasibilities).To(Equal(0))
			expectSlice(solver.Solution().ColValues, []float64{0.5, 2.25})
		})

		It("should match a fresh solve of the scaled model", func() {
			Expect(solver.SetIntOption(OptionUserCostScale, 2)).To(Succeed())
			Expect(solver.SetIntOption(OptionUserBoundScale, 3)).To(Succeed())
			reported := solver.Solution()

			resolved, err := solver.Run()
			Expect(err).NotTo(HaveOccurred())
			Expect(resolved.Status).To(Equal(ModelStatusOptimal))
			expectSlice(resolved.ColValues, reported.ColValues)
			expectSlice(resolved.RowDuals, reported.RowDuals)
			Expect(resolved.Objective).To(BeNumerically("~", reported.Objective, 1e-6))
		})

		It("should discard the result when the model changes", func() {
			Expect(solver.SetColCost(0, 2)).To(Succeed())
			Expect(solver.ModelStatus()).To(Equal(ModelStatusNotSet))
			Expect(solver.Solution().ColValues).To(BeNil())
		})

		It("should keep the result when a model change fails", func() {
			Expect(solver.SetColCost(7, 2)).NotTo(Succeed())
			Expect(solver.ModelStatus()).To(Equal(ModelStatusOptimal))
		})

		It("should discard the result on ClearSolver", func() {
			Expect(solver.ClearSolver()).To(Succeed())
			Expect(solver.ModelStatus()).To(Equal(ModelStatusNotSet))
			Expect(solver.NumCol()).To(Equal(2))
		})
	})

	Context("user scale options", func() {
		It("should store new values in scaled units", func() {
			Expect(solver.SetIntOption(OptionUserBoundScale, 1)).To(Succeed())
			Expect(solver.Lp().ColUpper[0]).To(Equal(8.0))

			Expect(solver.SetColBounds(0, 0, 3)).To(Succeed())
			Expect(solver.Lp().ColUpper[0]).To(Equal(6.0))

			v, err := solver.GetIntOption(OptionUserBoundScale)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(1))
		})

		It("should leave the option unchanged when scaling overflows", func() {
			Expect(solver.SetColBounds(0, 0, 1e300)).To(Succeed())
			err := solver.SetIntOption(OptionUserBoundScale, 100)
			Expect(errors.Is(err, ErrUserScaleOverflow)).To(BeTrue())

			v, err := solver.GetIntOption(OptionUserBoundScale)
			Expect(err).NotTo(HaveOccurred())
			Expect(v).To(Equal(0))
			Expect(solver.Lp().ColUpper[0]).To(Equal(1e300))
		})

		It("should reject exponents out of range", func() {
			err := solver.SetIntOption(OptionUserCostScale, MaxUserScaleExponent+1)
			Expect(errors.Is(err, ErrUserScaleRange)).To(BeTrue())
		})

		It("should unscale a passed Lp before applying its own scale", func() {
			lp := NewLp()
			Expect(lp.SetUserBoundScale(2)).To(Succeed())
			Expect(lp.AddCol(1, 0, 4, nil, nil)).To(Succeed())
			Expect(lp.ColUpper[0]).To(Equal(16.0))

			Expect(solver.SetIntOption(OptionUserBoundScale, 1)).To(Succeed())
			Expect(solver.PassLp(lp)).To(Succeed())
			Expect(solver.Lp().ColUpper[0]).To(Equal(8.0))
			Expect(solver.Lp().UserScale()).To(Equal(UserScale{BoundExponent: 1}))
			Expect(lp.ColUpper[0]).To(Equal(16.0), "the caller's Lp is copied")
		})

		It("should carry the scale over ClearModel but not Clear", func() {
			Expect(solver.SetIntOption(OptionUserBoundScale, 2)).To(Succeed())
			Expect(solver.ClearModel()).To(Succeed())
			Expect(solver.NumCol()).To(Equal(0))
			Expect(solver.AddVar(0, 1)).To(Succeed())
			Expect(solver.Lp().ColUpper[0]).To(Equal(4.0))

			Expect(solver.Clear()).To(Succeed())
			Expect(solver.AddVar(0, 1)).To(Succeed())
			Expect(solver.Lp().ColUpper[0]).To(Equal(1.0))
		})
	})

	Context("options", func() {
		It("should reject unknown names", func() {
			Expect(errors.Is(solver.SetIntOption("threads", 4), ErrUnknownOption)).To(BeTrue())
			Expect(errors.Is(solver.SetBoolOption("log_to_console", true), ErrUnknownOption)).To(BeTrue())
			_, err := solver.GetFloatOption("bogus")
			Expect(errors.Is(err, ErrUnknownOption)).To(BeTrue())
		})

		It("should reject invalid values", func() {
			Expect(solver.SetFloatOption(OptionTimeLimit, -1)).NotTo(Succeed())
			Expect(solver.SetFloatOption(OptionMIPRelGap, math.NaN())).NotTo(Succeed())
			Expect(solver.SetStringOption(OptionPresolve, "maybe")).NotTo(Succeed())
			Expect(solver.Options()).To(Equal(DefaultOptions()))
		})

		It("should round-trip values", func() {
			Expect(solver.SetStringOption(OptionPresolve, "off")).To(Succeed())
			Expect(solver.SetFloatOption(OptionTimeLimit, 2.5)).To(Succeed())
			Expect(solver.SetBoolOption(OptionOutputFlag, true)).To(Succeed())

			presolve, _ := solver.GetStringOption(OptionPresolve)
			limit, _ := solver.GetFloatOption(OptionTimeLimit)
			output, _ := solver.GetBoolOption(OptionOutputFlag)
			Expect(presolve).To(Equal("off"))
			Expect(limit).To(Equal(2.5))
			Expect(output).To(BeTrue())
		})
	})
})

var _ = Describe("Solver with a fake engine", func() {
	var (
		engine *fakeEngine
		solver *Solver
	)

	BeforeEach(func() {
		engine = &fakeEngine{result: Result{
			Status: ModelStatusOptimal,
			Solution: &Solution{
				Status:     ModelStatusOptimal,
				ValueValid: true,
				DualValid:  true,
				ColValues:  []float64{1, 2},
				ColDuals:   []float64{0.5, 0},
				RowValues:  []float64{3},
				RowDuals:   []float64{-1},
				Objective:  10,
			},
			Info: Info{ObjectiveFunctionValue: 10},
		}}
		var err error
		solver, err = NewSolver(WithEngine(engine))
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.AddVars([]float64{0, 0}, []float64{5, 5})).To(Succeed())
		Expect(solver.AddRow(0, 10, []int{0, 1}, []float64{1, 1})).To(Succeed())
	})

	It("should report the same solution on every call", func() {
		_, err := solver.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(solver.SetIntOption(OptionUserBoundScale, 1)).To(Succeed())
		Expect(solver.SetIntOption(OptionUserCostScale, -1)).To(Succeed())

		first := solver.Solution()
		second := solver.Solution()
		Expect(first).To(Equal(second))
		Expect(first.ColValues).To(Equal([]float64{2, 4}))
		Expect(first.ColDuals).To(Equal([]float64{0.25, 0}))
		Expect(first.RowDuals).To(Equal([]float64{-0.5}))
		Expect(first.Objective).To(Equal(10.0))

		first.ColValues[0] = 99
		Expect(solver.Solution().ColValues[0]).To(Equal(2.0))
		Expect(engine.calls).To(Equal(1))
	})

	It("should refuse an inconsistent model without calling the engine", func() {
		solver.Lp().AStart = []int{0, 1, 3}
		_, err := solver.Run()
		Expect(errors.Is(err, ErrInvalidModel)).To(BeTrue())
		Expect(engine.calls).To(Equal(0))
		Expect(solver.ModelStatus()).To(Equal(ModelStatusNotSet))
	})

	It("should return engine errors", func() {
		engine.err = errors.New("boom")
		_, err := solver.Run()
		Expect(err).To(MatchError(ContainSubstring("boom")))
		Expect(solver.ModelStatus()).To(Equal(ModelStatusNotSet))
	})

	It("should return cancellation as an error", func() {
		engine.err = context.Canceled
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := solver.RunContext(ctx)
		Expect(errors.Is(err, context.Canceled)).To(BeTrue())
	})

	It("should count solves by status", func() {
		counter := metrics.Solves.WithLabelValues(ModelStatusOptimal.String())
		before := counterValue(GinkgoT(), counter)
		_, err := solver.Run()
		Expect(err).NotTo(HaveOccurred())
		Expect(counterValue(GinkgoT(), counter)).To(Equal(before + 1))
	})

	It("should roll back a failed batch of costs", func() {
		Expect(solver.SetIntOption(OptionUserCostScale, 1000)).To(Succeed())
		err := solver.SetColCosts([]float64{1, math.MaxFloat64})
		Expect(errors.Is(err, ErrUserScaleOverflow)).To(BeTrue())
		Expect(solver.Lp().ColCost).To(Equal([]float64{0, 0}))

		err = solver.SetColCosts([]float64{1, 2, 3})
		Expect(errors.Is(err, ErrIndexOutOfRange)).To(BeTrue())
	})
})
