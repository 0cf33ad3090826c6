/*
 * xyz.go, part of goqe.
 *
 * Copyright 2024 The goqe authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pw

import (
	"fmt"
	"io"
	"strings"
)

// XYZString renders the final configuration of an Output as extended XYZ:
// the atom count, a comment line carrying the 9 cell scalars and the column
// layout, then one line per atom. It needs both the cell vectors and a
// position block to have appeared in the log; otherwise it returns a CError
// with the MissingData message.
func XYZString(O *Output) (string, error) {
	if O.Cell == nil {
		return "", CError{MissingData, "no cell vectors in the output", nil}
	}
	if O.NAtoms() == 0 || O.Coords == nil {
		return "", CError{MissingData, "no atomic positions in the output", nil}
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d\n", O.NAtoms())
	fmt.Fprintf(&b, "Lattice=\"%.6f %.6f %.6f %.6f %.6f %.6f %.6f %.6f %.6f\" Properties=species:S:1:pos:R:3\n",
		O.Cell.At(0, 0), O.Cell.At(0, 1), O.Cell.At(0, 2),
		O.Cell.At(1, 0), O.Cell.At(1, 1), O.Cell.At(1, 2),
		O.Cell.At(2, 0), O.Cell.At(2, 1), O.Cell.At(2, 2))
	for i := 0; i < O.NAtoms(); i++ {
		fmt.Fprintf(&b, "%s %.6f %.6f %.6f\n", O.Types[i],
			O.Coords.At(i, 0), O.Coords.At(i, 1), O.Coords.At(i, 2))
	}
	return b.String(), nil
}

// WriteXYZ writes the extended-XYZ text of O to w.
func WriteXYZ(O *Output, w io.Writer) error {
	s, err := XYZString(O)
	if err != nil {
		return errDecorate(err, "WriteXYZ")
	}
	_, err = io.WriteString(w, s)
	return err
}
