/*
 * propplot.go, part of deltachem.
 *
 * Copyright 2023 The deltachem developers
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

//Package propplot draws quick diagnostic plots of predicted property
//distributions over a batch.
package propplot

import (
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	chem "github.com/deltachem/deltachem"
)

// Histogram plots the distribution of a scalar property over a batch
// result and saves it to filename (the extension selects the format, e.g.
// .png or .pdf). Failure sentinels are skipped; vector properties are
// flattened so per-atom charges and per-bond orders can be inspected too.
func Histogram(res chem.BatchResult, prop chem.Property, bins int, filename string) error {
	col, ok := res[prop]
	if !ok {
		return chem.NewError("propplot: property %q not in result", prop)
	}
	vals := make(plotter.Values, 0, len(col))
	for _, v := range col {
		if !v.OK() {
			continue
		}
		if v.IsVector() {
			for _, f := range v.Floats() {
				vals = append(vals, f)
			}
			continue
		}
		vals = append(vals, v.Float())
	}
	if len(vals) == 0 {
		return chem.NewError("propplot: no delivered values for %q", prop)
	}
	if bins <= 0 {
		bins = 20
	}
	p := plot.New()
	p.Title.Text = string(prop)
	p.X.Label.Text = string(prop)
	p.Y.Label.Text = "count"
	h, err := plotter.NewHist(vals, bins)
	if err != nil {
		return chem.NewError("propplot: %v", err)
	}
	p.Add(h)
	if err := p.Save(5*vg.Inch, 4*vg.Inch, filename); err != nil {
		return chem.NewError("propplot: %v", err)
	}
	return nil
}
