package highs

import (
	"cmp"
	"math"
	"slices"
)

// Inf returns positive infinity, suitable for unbounded variable bounds.
func Inf() float64 {
	return math.Inf(1)
}

// NegInf returns negative infinity, suitable for unbounded variable bounds.
func NegInf() float64 {
	return math.Inf(-1)
}

// nonzerosToCSC converts a slice of Nonzero elements to compressed sparse
// column format with numCol+1 starts. Duplicate entries keep the last value.
func nonzerosToCSC(nz []Nonzero, numCol int) (start, index []int, value []float64, err error) {
	// Sort by column, then by row
	sorted := slices.Clone(nz)
	slices.SortStableFunc(sorted, func(a, b Nonzero) int {
		if a.Col != b.Col {
			return cmp.Compare(a.Col, b.Col)
		}
		return cmp.Compare(a.Row, b.Row)
	})

	// Validate and deduplicate
	filtered := make([]Nonzero, 0, len(sorted))
	for _, n := range sorted {
		if n.Row < 0 || n.Col < 0 {
			return nil, nil, nil, newErrorMsg("nonzerosToCSC", "negative row or column index")
		}
		if n.Col >= numCol {
			return nil, nil, nil, newErrorMsg("nonzerosToCSC", "column index out of range")
		}
		// Merge duplicates (keep last value)
		if len(filtered) > 0 && filtered[len(filtered)-1].Row == n.Row && filtered[len(filtered)-1].Col == n.Col {
			filtered[len(filtered)-1].Val = n.Val
		} else {
			filtered = append(filtered, n)
		}
	}

	// Build CSC format
	start = make([]int, numCol+1)
	index = make([]int, len(filtered))
	value = make([]float64, len(filtered))
	for i, n := range filtered {
		start[n.Col+1]++
		index[i] = n.Row
		value[i] = n.Val
	}
	for col := 0; col < numCol; col++ {
		start[col+1] += start[col]
	}

	return start, index, value, nil
}

// expandSlice expands a slice to length n if it's empty, filling with fillValue.
// Returns the original slice if it already has length n.
// Returns an error if the slice has a non-zero length that differs from n.
func expandSlice(n int, slice []float64, fillValue float64) ([]float64, error) {
	if len(slice) == n {
		return slice, nil
	}
	if len(slice) == 0 {
		result := make([]float64, n)
		for i := range result {
			result[i] = fillValue
		}
		return result, nil
	}
	return nil, newErrorMsg("expandSlice", "inconsistent slice length")
}

// maxRowCol finds the maximum row and column indices from a slice of nonzeros.
func maxRowCol(nz []Nonzero) (maxRow, maxCol int) {
	maxRow, maxCol = -1, -1
	for _, n := range nz {
		if n.Row > maxRow {
			maxRow = n.Row
		}
		if n.Col > maxCol {
			maxCol = n.Col
		}
	}
	return maxRow, maxCol
}
