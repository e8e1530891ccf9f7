package fk20

import (
	"slices"

	"github.com/consensys/gnark-crypto/ecc/bls12-381/fr"
)

// toeplitzMatrix is a matrix where each descending diagonal from left to
// right is constant.
//
// The matrix is fully determined by its first row and its first column, so
// only those are stored. The entry at (i, j) is col[i-j] if i >= j and
// row[j-i] otherwise.
type toeplitzMatrix struct {
	row []fr.Element
	col []fr.Element
}

func newToeplitz(row, col []fr.Element) toeplitzMatrix {
	if !row[0].Equal(&col[0]) {
		panic("the first entry of the row must equal the first entry of the column")
	}

	return toeplitzMatrix{
		row: row,
		col: col,
	}
}

// circulantMatrix is a special case of a Toeplitz matrix where each row
// is a cyclic rotation of the first row.
//
// Multiplying a circulant matrix by a vector is a cyclic convolution, so
// it can be done with FFTs over a domain of the same size as the row.
type circulantMatrix struct {
	row []fr.Element
}

// embedCirculant embeds the n x n Toeplitz matrix into a 2n x 2n
// circulant matrix.
//
// The first column of the circulant matrix is
// [col_0, ..., col_{n-1}, 0, row_{n-1}, ..., row_1].
// Multiplying the circulant matrix by a vector padded with n zeroes and
// taking the first n entries of the result gives the Toeplitz
// matrix-vector product.
func (t toeplitzMatrix) embedCirculant() circulantMatrix {
	colLen := len(t.col)

	row := make([]fr.Element, 0, colLen*2)
	row = append(row, t.col...)
	row = append(row, fr.Element{})

	reversedRow := slices.Clone(t.row[1:])
	slices.Reverse(reversedRow)
	row = append(row, reversedRow...)

	return circulantMatrix{row: row}
}
