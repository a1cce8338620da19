package nlp

import "sort"

// ProjectSimplex overwrites v with its Euclidean projection onto the
// probability simplex {v : sum v = 1, v >= 0}.
func ProjectSimplex(v []float64) {
	n := len(v)
	if n == 0 {
		return
	}
	if n == 1 {
		v[0] = 1
		return
	}

	sorted := make([]float64, n)
	copy(sorted, v)
	sort.Sort(sort.Reverse(sort.Float64Slice(sorted)))

	// Largest k with sorted[k-1] - (cumsum_k - 1)/k > 0
	theta := 0.0
	cumsum := 0.0
	for k := 1; k <= n; k++ {
		cumsum += sorted[k-1]
		t := (cumsum - 1) / float64(k)
		if sorted[k-1]-t > 0 {
			theta = t
		} else {
			break
		}
	}

	for i := range v {
		v[i] -= theta
		if v[i] < 0 {
			v[i] = 0
		}
	}
}

// ColumnSimplexProjector builds a Project function for an allocation vector
// laid out row-major as x[i*nGoods+j]: each good's column is projected onto
// the simplex over the agents allowed to receive it. fixed[i*nGoods+j] == true
// pins x[i][j] at zero. A column with every agent fixed is left all-zero; the
// caller must reject such programs up front.
func ColumnSimplexProjector(nAgents, nGoods int, fixed []bool) func(x []float64) {
	return func(x []float64) {
		column := make([]float64, 0, nAgents)
		rows := make([]int, 0, nAgents)
		for j := 0; j < nGoods; j++ {
			column = column[:0]
			rows = rows[:0]
			for i := 0; i < nAgents; i++ {
				idx := i*nGoods + j
				if fixed != nil && fixed[idx] {
					x[idx] = 0
					continue
				}
				column = append(column, x[idx])
				rows = append(rows, i)
			}
			if len(column) == 0 {
				continue
			}
			ProjectSimplex(column)
			for k, i := range rows {
				x[i*nGoods+j] = column[k]
			}
		}
	}
}
