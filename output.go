/*
 * output.go, part of goqe.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Output holds the values scraped from a pw.x output log. Coords and Forces
// are Nx3 matrices with one row per atom, in the order the atoms appear in
// the log; Cell is 3x3 with the cell vectors as rows. For a relaxation the
// log prints several sets of positions, forces and cell vectors: only the
// last of each survives here. The series slices instead keep one entry per
// occurrence, so they carry the whole SCF iteration history.
//
// Units: Energies and EFermi in eV, Forces in eV/Angstrom, Cell in Angstrom,
// magnetizations in Bohr magnetons. Coords are in whatever units the log's
// ATOMIC_POSITIONS blocks use.
//
// An Output is built once, at the end of a scan, and is only read afterwards.
type Output struct {
	Types  []string
	Coords *mat.Dense
	Forces *mat.Dense
	Cell   *mat.Dense

	Energies         []float64
	Magnetization    []float64
	AbsMagnetization []float64

	EFermi    float64
	HasEFermi bool

	JobDone bool
}

// NAtoms returns the number of atoms in the final configuration, 0 if no
// position block was seen.
func (O *Output) NAtoms() int { return len(O.Types) }

// The blocks the output scanner can be in the middle of.
type logState int

const (
	logIdle logState = iota
	logCell
	logForces
	logPositions
)

// outAccum gathers everything during a scan; ParseOutput turns it into an
// Output only once the whole log has been read without error.
type outAccum struct {
	a0     float64 //lattice parameter, Angstrom. 0 until seen.
	natoms int     //0 until "number of atoms/cell" is seen.

	types  []string
	coords []float64
	forces []float64
	cell   []float64

	energies, magn, absmagn []float64
	efermi                  float64
	hasEFermi               bool
	jobdone                 bool
}

// ParseOutput scrapes a pw.x output log into an Output. The markers it
// recognizes can appear any number of times and in any order, with two
// provisos: the force and position blocks need the atom count, printed
// earlier in any pw.x log as "number of atoms/cell", and the crystal-axes
// block needs the lattice parameter; hitting a block before its context is
// a CError with the MissingContext message. Magnetization values that fail
// to parse are skipped, since pw.x formats that field unreliably across
// versions; every other malformed line in a block of known length is a
// ParseError.
func ParseOutput(r io.Reader) (*Output, error) {
	acc := new(outAccum)
	state := logIdle
	var row, nline int
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
	for scanner.Scan() {
		nline++
		l := strings.Fields(scanner.Text())
		switch state {
		case logCell:
			if len(l) == 0 {
				continue
			}
			if len(l) < 6 {
				return nil, ParseError{Line: nline, Reason: "crystal axis line too short"}
			}
			for k := 0; k < 3; k++ {
				v, err := atof(l[3+k], nline)
				if err != nil {
					return nil, err
				}
				acc.cell[row*3+k] = v * acc.a0
			}
			row++
			if row == 3 {
				state = logIdle
			}
		case logForces:
			if len(l) == 0 {
				continue
			}
			if len(l) < 9 {
				return nil, ParseError{Line: nline, Reason: "force line too short"}
			}
			for k := 0; k < 3; k++ {
				v, err := atof(l[6+k], nline)
				if err != nil {
					return nil, err
				}
				acc.forces[row*3+k] = v * Ry2Ev / Bohr2A
			}
			row++
			if row == acc.natoms {
				state = logIdle
			}
		case logPositions:
			if len(l) == 0 {
				continue
			}
			if len(l) < 4 {
				return nil, ParseError{Line: nline, Reason: "atomic position line too short"}
			}
			acc.types[row] = l[0]
			for k := 0; k < 3; k++ {
				v, err := atof(l[1+k], nline)
				if err != nil {
					return nil, err
				}
				acc.coords[row*3+k] = v
			}
			row++
			if row == acc.natoms {
				state = logIdle
			}
		case logIdle:
			if len(l) == 0 {
				continue
			}
			var err error
			state, row, err = acc.marker(l, nline)
			if err != nil {
				return nil, err
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state != logIdle {
		return nil, ParseError{Line: nline, Reason: "output ended inside a block"}
	}
	out := &Output{
		Types:            acc.types,
		Energies:         acc.energies,
		Magnetization:    acc.magn,
		AbsMagnetization: acc.absmagn,
		EFermi:           acc.efermi,
		HasEFermi:        acc.hasEFermi,
		JobDone:          acc.jobdone,
	}
	if acc.coords != nil {
		out.Coords = mat.NewDense(acc.natoms, 3, acc.coords)
	}
	if acc.forces != nil {
		out.Forces = mat.NewDense(acc.natoms, 3, acc.forces)
	}
	if acc.cell != nil {
		out.Cell = mat.NewDense(3, 3, acc.cell)
	}
	return out, nil
}

// marker matches one idle-state line against the recognized markers and
// returns the state the scanner moves to. Unmatched lines are the normal
// case: a pw.x log is mostly narrative text.
func (acc *outAccum) marker(l []string, nline int) (logState, int, error) {
	switch {
	case len(l) >= 5 && l[0] == "!":
		v, err := atof(l[4], nline)
		if err != nil {
			return logIdle, 0, err
		}
		acc.energies = append(acc.energies, v*Ry2Ev)
	case len(l) >= 5 && eqFold3(l, "the", "fermi", "energy"):
		v, err := atof(l[4], nline)
		if err != nil {
			return logIdle, 0, err
		}
		acc.efermi = v
		acc.hasEFermi = true
	case len(l) >= 4 && l[1] == "magnetization":
		//pw.x overflows this field now and then: parse what parses,
		//skip the rest.
		if v, ok := atofLoose(l[3]); ok {
			switch l[0] {
			case "total":
				acc.magn = append(acc.magn, v)
			case "absolute":
				acc.absmagn = append(acc.absmagn, v)
			}
		}
	case len(l) >= 5 && eqFold2(l, "lattice", "parameter"):
		v, err := atof(l[4], nline)
		if err != nil {
			return logIdle, 0, err
		}
		acc.a0 = v * Bohr2A
	case len(l) >= 5 && eqFold3(l, "number", "of", "atoms/cell"):
		n, err := atoi(l[4], nline)
		if err != nil {
			return logIdle, 0, err
		}
		acc.natoms = n
	case len(l) >= 2 && eqFold2(l, "crystal", "axes:"):
		if acc.a0 == 0 {
			return logIdle, 0, CError{MissingContext, "crystal axes before the lattice parameter", nil}
		}
		acc.cell = make([]float64, 9)
		return logCell, 0, nil
	case len(l) >= 7 && eqFold4(l, "forces", "acting", "on", "atoms"):
		if acc.natoms == 0 {
			return logIdle, 0, CError{MissingContext, "force block before the atom count", nil}
		}
		acc.forces = make([]float64, acc.natoms*3)
		return logForces, 0, nil
	case strings.EqualFold(l[0], "atomic_positions"):
		if acc.natoms == 0 {
			return logIdle, 0, CError{MissingContext, "position block before the atom count", nil}
		}
		acc.types = make([]string, acc.natoms)
		acc.coords = make([]float64, acc.natoms*3)
		return logPositions, 0, nil
	case len(l) >= 5 && strings.EqualFold(l[3], "terminated"):
		acc.jobdone = true
	}
	return logIdle, 0, nil
}

func eqFold2(l []string, a, b string) bool {
	return strings.EqualFold(l[0], a) && strings.EqualFold(l[1], b)
}

func eqFold3(l []string, a, b, c string) bool {
	return eqFold2(l, a, b) && strings.EqualFold(l[2], c)
}

func eqFold4(l []string, a, b, c, d string) bool {
	return eqFold3(l, a, b, c) && strings.EqualFold(l[3], d)
}

// atofLoose is the best-effort counterpart of atof, for the fields where a
// failed conversion means "skip", not "abort".
func atofLoose(tok string) (float64, bool) {
	v, err := strconv.ParseFloat(tok, 64)
	return v, err == nil
}

// String gives a short human-readable summary, handy when poking at runs
// interactively.
func (O *Output) String() string {
	done := "not terminated"
	if O.JobDone {
		done = "terminated"
	}
	e := "no energy"
	if len(O.Energies) > 0 {
		e = fmt.Sprintf("E=%.4f eV after %d iterations", O.Energies[len(O.Energies)-1], len(O.Energies))
	}
	return fmt.Sprintf("pw.x output: %d atoms, %s, %s", O.NAtoms(), e, done)
}
