package highs

import (
	"slices"

	"gonum.org/v1/gonum/mat"
)

// SparseMatrix is a compressed sparse matrix. For MatrixFormatColwise
// (and the empty MatrixFormatNone) Start has NumCol+1 entries and Index
// holds row indices; for MatrixFormatRowwise Start has NumRow+1 entries
// and Index holds column indices.
type SparseMatrix struct {
	Format MatrixFormat
	NumCol int
	NumRow int
	Start  []int
	Index  []int
	Value  []float64
}

// outerDim is the number of compressed vectors.
func (m *SparseMatrix) outerDim() int {
	if m.Format == MatrixFormatRowwise {
		return m.NumRow
	}
	return m.NumCol
}

// NumNz returns the declared number of nonzeros, or 0 when Start is too
// short to declare one.
func (m *SparseMatrix) NumNz() int {
	outer := m.outerDim()
	if outer < 0 || len(m.Start) < outer+1 {
		return 0
	}
	return m.Start[outer]
}

// Clear resets m to the empty, format-less matrix. Start keeps its single
// zero entry so that the empty matrix is well formed.
func (m *SparseMatrix) Clear() {
	*m = SparseMatrix{Start: []int{0}}
}

// Clone returns a deep copy of m.
func (m *SparseMatrix) Clone() SparseMatrix {
	return SparseMatrix{
		Format: m.Format,
		NumCol: m.NumCol,
		NumRow: m.NumRow,
		Start:  slices.Clone(m.Start),
		Index:  slices.Clone(m.Index),
		Value:  slices.Clone(m.Value),
	}
}

// ensureColwise converts m to column-wise storage in place. An empty
// matrix becomes an empty column-wise one with a full start array.
func (m *SparseMatrix) ensureColwise() {
	switch m.Format {
	case MatrixFormatColwise:
		return
	case MatrixFormatNone:
		m.Format = MatrixFormatColwise
		if len(m.Start) < m.NumCol+1 {
			m.Start = make([]int, m.NumCol+1)
		}
		return
	}

	// Transpose row-wise storage.
	numNz := m.NumNz()
	start := make([]int, m.NumCol+1)
	for k := 0; k < numNz; k++ {
		start[m.Index[k]+1]++
	}
	for col := 0; col < m.NumCol; col++ {
		start[col+1] += start[col]
	}
	next := slices.Clone(start[:m.NumCol])
	index := make([]int, numNz)
	value := make([]float64, numNz)
	for row := 0; row < m.NumRow; row++ {
		for k := m.Start[row]; k < m.Start[row+1]; k++ {
			col := m.Index[k]
			index[next[col]] = row
			value[next[col]] = m.Value[k]
			next[col]++
		}
	}
	m.Format = MatrixFormatColwise
	m.Start, m.Index, m.Value = start, index, value
}

// addCols appends num columns given in compressed column form. start has
// num entries; the last column ends at len(index). Row indices must
// already be checked against NumRow.
func (m *SparseMatrix) addCols(num int, start, index []int, value []float64) {
	m.ensureColwise()
	base := m.NumNz()
	m.Start = m.Start[:m.NumCol+1]
	m.Index = m.Index[:base]
	m.Value = m.Value[:base]
	for i := 0; i < num; i++ {
		end := len(index)
		if i+1 < num {
			end = start[i+1]
		}
		m.Index = append(m.Index, index[start[i]:end]...)
		m.Value = append(m.Value, value[start[i]:end]...)
		m.Start = append(m.Start, base+end)
	}
	m.NumCol += num
}

// addRows appends num rows given in compressed row form. start has num
// entries; the last row ends at len(index). Column indices must already be
// checked against NumCol.
func (m *SparseMatrix) addRows(num int, start, index []int, value []float64) {
	m.ensureColwise()
	if len(index) == 0 {
		m.NumRow += num
		return
	}

	// Count new entries per column, then merge into fresh arrays.
	extra := make([]int, m.NumCol)
	for _, col := range index {
		extra[col]++
	}
	numNz := m.NumNz()
	newStart := make([]int, m.NumCol+1)
	for col := 0; col < m.NumCol; col++ {
		newStart[col+1] = newStart[col] + (m.Start[col+1] - m.Start[col]) + extra[col]
	}
	newIndex := make([]int, numNz+len(index))
	newValue := make([]float64, numNz+len(index))
	next := make([]int, m.NumCol)
	for col := 0; col < m.NumCol; col++ {
		n := copy(newIndex[newStart[col]:], m.Index[m.Start[col]:m.Start[col+1]])
		copy(newValue[newStart[col]:], m.Value[m.Start[col]:m.Start[col+1]])
		next[col] = newStart[col] + n
	}
	for i := 0; i < num; i++ {
		end := len(index)
		if i+1 < num {
			end = start[i+1]
		}
		for k := start[i]; k < end; k++ {
			col := index[k]
			newIndex[next[col]] = m.NumRow + i
			newValue[next[col]] = value[k]
			next[col]++
		}
	}
	m.Start, m.Index, m.Value = newStart, newIndex, newValue
	m.NumRow += num
}

// Product returns A·x. x must have at least NumCol entries.
func (m *SparseMatrix) Product(x []float64) []float64 {
	result := make([]float64, m.NumRow)
	switch m.Format {
	case MatrixFormatColwise:
		for col := 0; col < m.NumCol; col++ {
			for k := m.Start[col]; k < m.Start[col+1]; k++ {
				result[m.Index[k]] += m.Value[k] * x[col]
			}
		}
	case MatrixFormatRowwise:
		for row := 0; row < m.NumRow; row++ {
			for k := m.Start[row]; k < m.Start[row+1]; k++ {
				result[row] += m.Value[k] * x[m.Index[k]]
			}
		}
	}
	return result
}

// Dense returns the matrix as a gonum dense matrix, or nil when either
// dimension is zero.
func (m *SparseMatrix) Dense() *mat.Dense {
	if m.NumRow == 0 || m.NumCol == 0 {
		return nil
	}
	d := mat.NewDense(m.NumRow, m.NumCol, nil)
	switch m.Format {
	case MatrixFormatColwise:
		for col := 0; col < m.NumCol; col++ {
			for k := m.Start[col]; k < m.Start[col+1]; k++ {
				d.Set(m.Index[k], col, d.At(m.Index[k], col)+m.Value[k])
			}
		}
	case MatrixFormatRowwise:
		for row := 0; row < m.NumRow; row++ {
			for k := m.Start[row]; k < m.Start[row+1]; k++ {
				d.Set(row, m.Index[k], d.At(row, m.Index[k])+m.Value[k])
			}
		}
	}
	return d
}
