// Package highs holds the model layer of the HiGHS linear optimization
// solver: the canonical Lp entity, its consistency checks, model comparison
// and user scaling, plus a solve session that reports results in user
// units.
//
// HiGHS solves linear programming (LP) and mixed-integer programming (MIP)
// problems. Solving is delegated to an Engine: SimplexEngine is a pure-Go
// LP engine built on gonum, and NativeEngine (build tag highs_cgo) links
// the HiGHS C library through pkg-config.
//
// # High-Level API Example
//
// The high-level API uses the Model struct to define optimization problems:
//
//	model := highs.Model{
//		ColCosts:  []float64{1.0, 1.0},
//		ColLower:  []float64{0.0, 0.0},
//		ColUpper:  []float64{10.0, 10.0},
//	}
//	model.AddDenseRow(1.0, []float64{1.0, 1.0}, 5.0) // 1 <= x + y <= 5
//
//	solution, err := model.Solve()
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println("Optimal values:", solution.ColValues)
//
// # Low-Level API Example
//
// The low-level API builds the model in a session:
//
//	solver, err := highs.NewSolver()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	solver.SetIntOption("user_cost_scale", -4)
//	// ... add variables and constraints
//	solution, err := solver.Run()
//
// # User Scale
//
// The user_bound_scale and user_cost_scale options multiply bounds and
// costs by powers of two. The stored model always equals the user's input
// times the current factors, whatever order options and edits came in.
// Reported primal values carry the bound factor, duals the cost factor and
// the objective both.
package highs
