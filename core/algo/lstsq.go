package algo

import (
	"errors"
	"math"
)

// ErrSingular is returned when the normal equations of a least squares
// problem have no unique solution.
var ErrSingular = errors.New("singular normal equations")

// LeastSquares solves the weighted least squares problem for a design matrix
// a (one row per observation, one column per parameter), observations y and
// inverse-variance weights w. It forms the normal equations and solves them
// with Gaussian elimination and partial pivoting; the parameter counts here
// are tiny (two for the step model, three for the harmonic model).
func LeastSquares(a [][]float64, y, w []float64) ([]float64, error) {
	if len(a) == 0 || len(a) != len(y) || len(y) != len(w) {
		return nil, errors.New("mismatched least squares inputs")
	}
	m := len(a[0])

	ata := make([][]float64, m)
	aty := make([]float64, m)
	for i := range ata {
		ata[i] = make([]float64, m)
	}
	for r, row := range a {
		wr := w[r]
		for i := range m {
			aty[i] += row[i] * y[r] * wr
			for j := i; j < m; j++ {
				ata[i][j] += row[i] * row[j] * wr
			}
		}
	}
	for i := range m {
		for j := range i {
			ata[i][j] = ata[j][i]
		}
	}

	return solve(ata, aty)
}

// solve performs in-place Gaussian elimination with partial pivoting.
func solve(a [][]float64, b []float64) ([]float64, error) {
	n := len(b)
	for col := range n {
		pivot := col
		for r := col + 1; r < n; r++ {
			if math.Abs(a[r][col]) > math.Abs(a[pivot][col]) {
				pivot = r
			}
		}
		if a[pivot][col] == 0 {
			return nil, ErrSingular
		}
		a[col], a[pivot] = a[pivot], a[col]
		b[col], b[pivot] = b[pivot], b[col]

		for r := col + 1; r < n; r++ {
			f := a[r][col] / a[col][col]
			for c := col; c < n; c++ {
				a[r][c] -= f * a[col][c]
			}
			b[r] -= f * b[col]
		}
	}

	x := make([]float64, n)
	for r := n - 1; r >= 0; r-- {
		sum := b[r]
		for c := r + 1; c < n; c++ {
			sum -= a[r][c] * x[c]
		}
		x[r] = sum / a[r][r]
	}
	return x, nil
}
