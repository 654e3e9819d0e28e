package highs

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var lpCmpOpts = []cmp.Option{cmp.AllowUnexported(Lp{}), cmpopts.EquateEmpty()}

func TestEqualIdenticalBuilds(t *testing.T) {
	a, b := newTestLp(t), newTestLp(t)
	if !a.Equal(b) || !b.Equal(a) {
		t.Errorf("identical builds differ:\n%s", cmp.Diff(a, b, lpCmpOpts...))
	}
	if !a.Equal(a) {
		t.Error("model not equal to itself")
	}
}

func TestEqualButForNames(t *testing.T) {
	a, b := newTestLp(t), newTestLp(t)
	if err := a.SetColNames([]string{"x", "y"}); err != nil {
		t.Fatal(err)
	}
	if err := b.SetColNames([]string{"u", "v"}); err != nil {
		t.Fatal(err)
	}
	if a.Equal(b) {
		t.Error("Equal ignored column names")
	}
	if !a.EqualButForNames(b) {
		t.Errorf("EqualButForNames compared names:\n%s", cmp.Diff(a, b, lpCmpOpts...))
	}
}

func TestEqualDetectsDifferences(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(t *testing.T, lp *Lp)
	}{
		{"cost", func(t *testing.T, lp *Lp) { lp.ColCost[1] = 2 }},
		{"row bound", func(t *testing.T, lp *Lp) { lp.RowUpper[0] = 8 }},
		{"sense", func(t *testing.T, lp *Lp) { lp.Sense = Maximize }},
		{"offset", func(t *testing.T, lp *Lp) { lp.Offset = 0 }},
		{"model name", func(t *testing.T, lp *Lp) { lp.ModelName = "m" }},
		{"legacy value", func(t *testing.T, lp *Lp) {
			lp.AValue = []float64{1, 3, 1, 2, 7}
		}},
		{"integrality", func(t *testing.T, lp *Lp) {
			if err := lp.ChangeColIntegrality(0, Integer); err != nil {
				t.Fatal(err)
			}
		}},
		{"internal scale", func(t *testing.T, lp *Lp) { lp.Scale.Cost = 2 }},
		{"user scale", func(t *testing.T, lp *Lp) {
			if err := lp.SetUserCostScale(1); err != nil {
				t.Fatal(err)
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := newTestLp(t), newTestLp(t)
			tt.mutate(t, b)
			if a.EqualButForNames(b) {
				t.Errorf("difference in %s not detected", tt.name)
			}
			if cmp.Equal(a, b, lpCmpOpts...) {
				t.Errorf("cmp agrees with EqualButForNames on %s", tt.name)
			}
		})
	}
}

func TestEqualNaN(t *testing.T) {
	a, b := newTestLp(t), newTestLp(t)
	a.ColCost[0] = math.NaN()
	b.ColCost[0] = math.NaN()
	if a.Equal(b) {
		t.Error("NaN costs compared equal")
	}
}

func TestEqualScale(t *testing.T) {
	lp := newTestLp(t)
	lp.Scale = SimplexScale{
		Strategy: ScaleStrategyChoose,
		NumCol:   2,
		NumRow:   3,
		Cost:     1,
		Col:      []float64{1, 2},
		Row:      []float64{4, 1, 0.5},
	}

	other := lp.Scale.clone()
	other.Cost = 8
	other.Strategy = ScaleStrategyOff
	if !lp.EqualScale("factors only", &other) {
		t.Error("EqualScale compared more than the factors")
	}

	other.Row[2] = 0.25
	if lp.EqualScale("row factor", &other) {
		t.Error("EqualScale missed a row factor")
	}
}
