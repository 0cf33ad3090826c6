/*
 * plot_test.go, part of goqe.
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

package pwplot

import (
	"os"
	"path/filepath"
	"testing"

	pw "github.com/imirzade/goqe"
)

func TestConvergence(Te *testing.T) {
	out := &pw.Output{
		Energies:         []float64{-27.0, -29.5, -29.9, -29.93},
		Magnetization:    []float64{0.1, 0.05, 0.02},
		AbsMagnetization: []float64{0.3, 0.2, 0.15},
	}
	name := filepath.Join(Te.TempDir(), "conv")
	if err := Convergence(out, "H2 relaxation", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Errorf("plot not written: %v", err)
	}
	name = filepath.Join(Te.TempDir(), "magn")
	if err := Magnetization(out, "H2 relaxation", name); err != nil {
		Te.Fatal(err)
	}
	if _, err := os.Stat(name + ".png"); err != nil {
		Te.Errorf("plot not written: %v", err)
	}
}

func TestEmptySeries(Te *testing.T) {
	if err := Convergence(&pw.Output{}, "", "nope"); err == nil {
		Te.Error("plotting an empty energy series should fail")
	}
	if err := Magnetization(&pw.Output{}, "", "nope"); err == nil {
		Te.Error("plotting empty magnetization series should fail")
	}
}
