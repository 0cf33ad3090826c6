/*
 * plot.go, part of goqe.
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

/*Package pwplot plots the iteration series of a pw.x run: total energy and
magnetizations against the SCF step, one PNG per call. */
package pwplot

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	pw "github.com/imirzade/goqe"
)

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "SCF step"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func seriesXYs(series []float64) plotter.XYs {
	pts := make(plotter.XYs, len(series))
	for i, v := range series {
		pts[i].X = float64(i + 1)
		pts[i].Y = v
	}
	return pts
}

// Convergence plots the total energy of every SCF iteration in out against
// the iteration number, saving the plot as plotname.png. It fails if the
// output carries no energies at all.
func Convergence(out *pw.Output, title, plotname string) error {
	if len(out.Energies) == 0 {
		return fmt.Errorf("no energy series in the output")
	}
	p := basicPlot(title, "Total energy (eV)")
	line, points, err := plotter.NewLinePoints(seriesXYs(out.Energies))
	if err != nil {
		return err
	}
	line.Color = color.RGBA{R: 196, A: 255}
	points.GlyphStyle.Color = color.RGBA{R: 196, A: 255}
	p.Add(line, points)
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}

// Magnetization plots the total and absolute magnetization series of out,
// saving the plot as plotname.png. Either series may be shorter than the
// other, or empty; it fails only if both are.
func Magnetization(out *pw.Output, title, plotname string) error {
	if len(out.Magnetization) == 0 && len(out.AbsMagnetization) == 0 {
		return fmt.Errorf("no magnetization series in the output")
	}
	p := basicPlot(title, "Magnetization (Bohr magnetons)")
	if len(out.Magnetization) > 0 {
		line, err := plotter.NewLine(seriesXYs(out.Magnetization))
		if err != nil {
			return err
		}
		line.Color = color.RGBA{B: 196, A: 255}
		p.Add(line)
		p.Legend.Add("total", line)
	}
	if len(out.AbsMagnetization) > 0 {
		line, err := plotter.NewLine(seriesXYs(out.AbsMagnetization))
		if err != nil {
			return err
		}
		line.Color = color.RGBA{R: 196, A: 255}
		p.Add(line)
		p.Legend.Add("absolute", line)
	}
	return p.Save(12*vg.Centimeter, 8*vg.Centimeter, fmt.Sprintf("%s.png", plotname))
}
