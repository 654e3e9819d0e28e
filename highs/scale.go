package highs

import "slices"

// ScaleStrategy selects the internal conditioning scale computed by a
// solve engine. It is unrelated to the user scale.
type ScaleStrategy int

const (
	ScaleStrategyOff ScaleStrategy = iota
	ScaleStrategyChoose
	ScaleStrategyEquilibration
	ScaleStrategyForcedEquilibration
	ScaleStrategyMaxValue015
	ScaleStrategyMaxValue0157
)

func (s ScaleStrategy) valid() bool {
	return s >= ScaleStrategyOff && s <= ScaleStrategyMaxValue0157
}

// SimplexScale holds internal per-column and per-row conditioning factors.
// When Strategy is not ScaleStrategyOff, NumCol and NumRow must match the
// Lp and Col and Row must cover them.
type SimplexScale struct {
	Strategy   ScaleStrategy
	HasScaling bool
	NumCol     int
	NumRow     int
	Cost       float64
	Col        []float64
	Row        []float64
}

func defaultSimplexScale() SimplexScale {
	return SimplexScale{Strategy: ScaleStrategyOff, Cost: 1}
}

// Clear restores the default, inactive scale.
func (s *SimplexScale) Clear() {
	*s = defaultSimplexScale()
}

func (s *SimplexScale) clone() SimplexScale {
	c := *s
	c.Col = slices.Clone(s.Col)
	c.Row = slices.Clone(s.Row)
	return c
}

// growCols extends an active scale with neutral factors for num new columns.
func (s *SimplexScale) growCols(num int) {
	if s.Strategy == ScaleStrategyOff {
		return
	}
	s.NumCol += num
	for i := 0; i < num; i++ {
		s.Col = append(s.Col, 1)
	}
}

// growRows extends an active scale with neutral factors for num new rows.
func (s *SimplexScale) growRows(num int) {
	if s.Strategy == ScaleStrategyOff {
		return
	}
	s.NumRow += num
	for i := 0; i < num; i++ {
		s.Row = append(s.Row, 1)
	}
}
