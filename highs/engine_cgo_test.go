//go:build highs_cgo

package highs

import (
	"math"
	"testing"
)

// TestMIP tests a mixed-integer programming problem.
func TestMIP(t *testing.T) {
	model := Model{
		Maximize: true,
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
		VarTypes: []VariableType{Integer, Integer},
	}

	sol, err := model.Solve(WithOutput(false), WithEngine(NativeEngine{}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}

	if !almostEqual(sol.ColValues[0], 4.0, 0.01) {
		t.Errorf("x0 = %f, expected 4.0", sol.ColValues[0])
	}
	if !almostEqual(sol.ColValues[1], 5.0, 0.01) {
		t.Errorf("x1 = %f, expected 5.0", sol.ColValues[1])
	}
	if !almostEqual(sol.Objective, 12.0, 0.01) {
		t.Errorf("Objective = %f, expected 12.0", sol.Objective)
	}
}

// TestDiceProblem tests the dice MIP example.
// What is the maximum total face value of three dice A, B, C such that
// A - B = 2(B - C) where B > C?
func TestDiceProblem(t *testing.T) {
	model := Model{
		Maximize: true,
		VarTypes: []VariableType{Integer, Integer, Integer},
		ColCosts: []float64{1.0, 1.0, 1.0}, // Maximize A + B + C
		ColLower: []float64{1.0, 1.0, 1.0}, // Dice show at least 1
		ColUpper: []float64{6.0, 6.0, 6.0}, // Dice show at most 6
	}
	// A - 3B + 2C = 0 (from A - B = 2(B - C))
	model.AddDenseRow(0.0, []float64{1.0, -3.0, 2.0}, 0.0)
	// B - C >= 1 (B > C, so at least 1 difference)
	model.AddDenseRow(1.0, []float64{0.0, 1.0, -1.0}, math.Inf(1))

	sol, err := model.Solve(WithOutput(false), WithEngine(NativeEngine{}))
	if err != nil {
		t.Fatalf("Solve failed: %v", err)
	}

	if !sol.IsOptimal() {
		t.Fatalf("Expected optimal, got %s", sol.Status)
	}

	// Expected: A=6, B=4, C=3, total=13
	if !almostEqual(sol.ColValues[0], 6.0, 0.01) {
		t.Errorf("A = %f, expected 6.0", sol.ColValues[0])
	}
	if !almostEqual(sol.ColValues[1], 4.0, 0.01) {
		t.Errorf("B = %f, expected 4.0", sol.ColValues[1])
	}
	if !almostEqual(sol.ColValues[2], 3.0, 0.01) {
		t.Errorf("C = %f, expected 3.0", sol.ColValues[2])
	}
	if !almostEqual(sol.Objective, 13.0, 0.01) {
		t.Errorf("Objective = %f, expected 13.0", sol.Objective)
	}
}

// TestNativeMatchesSimplex solves one LP with both engines under a user
// scale.
func TestNativeMatchesSimplex(t *testing.T) {
	model := Model{
		ColCosts: []float64{1.0, 1.0},
		ColLower: []float64{0.0, 0.0},
		ColUpper: []float64{10.0, 10.0},
	}
	model.AddDenseRow(5.0, []float64{1.0, 2.0}, 15.0)

	opts := []SolveOption{WithOutput(false), WithUserBoundScale(3), WithUserCostScale(-2)}
	native, err := model.Solve(append(opts, WithEngine(NativeEngine{}))...)
	if err != nil {
		t.Fatalf("native Solve failed: %v", err)
	}
	simplex, err := model.Solve(opts...)
	if err != nil {
		t.Fatalf("simplex Solve failed: %v", err)
	}
	if !almostEqual(native.Objective, simplex.Objective, 1e-6) {
		t.Errorf("Objective = %f (native) vs %f (simplex)", native.Objective, simplex.Objective)
	}
	for i := range native.ColValues {
		if !almostEqual(native.ColValues[i], simplex.ColValues[i], 1e-6) {
			t.Errorf("x%d = %f (native) vs %f (simplex)", i, native.ColValues[i], simplex.ColValues[i])
		}
	}
}
