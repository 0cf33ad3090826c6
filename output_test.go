/*
 * output_test.go, part of goqe.
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
	"math"
	"strings"
	"testing"
)

func close(a, b float64) bool {
	return math.Abs(a-b) < 1e-8
}

func TestReadOutput(Te *testing.T) {
	out, err := ReadOutput("test/h2.out")
	if err != nil {
		Te.Fatal(err)
	}
	if len(out.Energies) != 2 || !close(out.Energies[0], -2.0*Ry2Ev) || !close(out.Energies[1], -2.2*Ry2Ev) {
		Te.Errorf("bad energy series: %v", out.Energies)
	}
	//the second total magnetization in the fixture is overflowed stars and
	//must be skipped, not fail the scan.
	if len(out.Magnetization) != 1 || !close(out.Magnetization[0], 0.0) {
		Te.Errorf("bad magnetization series: %v", out.Magnetization)
	}
	if len(out.AbsMagnetization) != 2 || !close(out.AbsMagnetization[1], 0.20) {
		Te.Errorf("bad absolute magnetization series: %v", out.AbsMagnetization)
	}
	if !out.HasEFermi || !close(out.EFermi, -5.0) {
		Te.Errorf("bad Fermi energy: %v %v", out.EFermi, out.HasEFermi)
	}
	if out.NAtoms() != 2 || out.Types[0] != "H" {
		Te.Fatalf("bad atom types: %v", out.Types)
	}
	if !close(out.Coords.At(1, 2), 0.74) {
		Te.Errorf("bad coordinates: %v", out.Coords.RawMatrix().Data)
	}
	if !close(out.Forces.At(0, 2), -0.1*Ry2Ev/Bohr2A) || !close(out.Forces.At(1, 2), 0.1*Ry2Ev/Bohr2A) {
		Te.Errorf("bad forces: %v", out.Forces.RawMatrix().Data)
	}
	a0 := 1.8897 * Bohr2A
	if out.Cell == nil || !close(out.Cell.At(0, 0), a0) || !close(out.Cell.At(2, 2), a0) || !close(out.Cell.At(0, 1), 0) {
		Te.Errorf("bad cell vectors: %v", out.Cell)
	}
	if !out.JobDone {
		Te.Error("termination marker missed")
	}
}

// Every "!" line contributes one entry to the energy series, converted from
// Rydberg to eV.
func TestEnergySeries(Te *testing.T) {
	log := strings.Repeat("!    total energy              =      -1.0 Ry\n", 3)
	out, err := ParseOutput(strings.NewReader(log))
	if err != nil {
		Te.Fatal(err)
	}
	if len(out.Energies) != 3 {
		Te.Fatalf("expected 3 energies, got %d", len(out.Energies))
	}
	for _, e := range out.Energies {
		if !close(e, -13.605) {
			Te.Errorf("bad conversion: %v", e)
		}
	}
}

func TestFermiEnergy(Te *testing.T) {
	out, err := ParseOutput(strings.NewReader("the fermi energy is 5.0000 ev\n"))
	if err != nil {
		Te.Fatal(err)
	}
	if !out.HasEFermi || !close(out.EFermi, 5.0) {
		Te.Errorf("bad Fermi energy: %v %v", out.EFermi, out.HasEFermi)
	}
}

// A force or position block before "number of atoms/cell" cannot be sized
// and must be refused.
func TestBlockBeforeAtomCount(Te *testing.T) {
	logs := []string{
		"     Forces acting on atoms (cartesian axes, Ry/au):\n",
		"ATOMIC_POSITIONS (angstrom)\n",
	}
	for _, log := range logs {
		_, err := ParseOutput(strings.NewReader(log))
		cerr, ok := err.(CError)
		if !ok || cerr.Message() != MissingContext {
			Te.Errorf("expected a MissingContext error, got %v", err)
		}
	}
}

func TestAxesBeforeLatticeParameter(Te *testing.T) {
	_, err := ParseOutput(strings.NewReader("crystal axes: (cart. coord. in units of alat)\n"))
	cerr, ok := err.(CError)
	if !ok || cerr.Message() != MissingContext {
		Te.Errorf("expected a MissingContext error, got %v", err)
	}
}

func TestTruncatedPositionBlock(Te *testing.T) {
	log := `number of atoms/cell = 2
ATOMIC_POSITIONS (angstrom)
H   0.0   0.0   0.0
`
	if _, err := ParseOutput(strings.NewReader(log)); err == nil {
		Te.Error("truncated position block scanned without error")
	}
}

// Later snapshots replace earlier ones; only the last survives.
func TestLastSnapshotWins(Te *testing.T) {
	log := `number of atoms/cell = 1
ATOMIC_POSITIONS (angstrom)
H   0.0   0.0   0.0
ATOMIC_POSITIONS (angstrom)
H   0.0   0.0   0.5
`
	out, err := ParseOutput(strings.NewReader(log))
	if err != nil {
		Te.Fatal(err)
	}
	if !close(out.Coords.At(0, 2), 0.5) {
		Te.Errorf("earlier snapshot survived: %v", out.Coords.RawMatrix().Data)
	}
}
