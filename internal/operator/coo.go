package operator

import (
	"slices"
)

// Entry is one stored value of a sparse matrix.
type Entry struct {
	Row, Col int
	Value    float64
}

// COO is the assembly form: an unordered list of entries where duplicates add.
type COO struct {
	rows, cols int
	entries    []Entry
}

// NewCOO takes ownership of entries.
func NewCOO(rows, cols int, entries []Entry) *COO {
	return &COO{rows: rows, cols: cols, entries: entries}
}

func (c *COO) Dims() (int, int) { return c.rows, c.cols }

// Len is the number of stored entries, duplicates included.
func (c *COO) Len() int { return len(c.entries) }

// ToCSR sorts the entries, sums duplicates and drops explicit zeros.
func (c *COO) ToCSR() *CSR {
	es := make([]Entry, len(c.entries))
	copy(es, c.entries)
	slices.SortFunc(es, func(a, b Entry) int {
		if a.Row != b.Row {
			return a.Row - b.Row
		}
		return a.Col - b.Col
	})

	m := &CSR{
		rows:   c.rows,
		cols:   c.cols,
		indptr: make([]int, c.rows+1),
		ind:    make([]int, 0, len(es)),
		data:   make([]float64, 0, len(es)),
	}
	for i := 0; i < len(es); {
		e := es[i]
		v := e.Value
		j := i + 1
		for j < len(es) && es[j].Row == e.Row && es[j].Col == e.Col {
			v += es[j].Value
			j++
		}
		i = j
		if v == 0 {
			continue
		}
		m.ind = append(m.ind, e.Col)
		m.data = append(m.data, v)
		m.indptr[e.Row+1]++
	}
	for r := 0; r < c.rows; r++ {
		m.indptr[r+1] += m.indptr[r]
	}
	return m
}
