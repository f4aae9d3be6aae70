/*
 * propplot_test.go, part of deltachem.
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

package propplot

import (
	"os"
	"path/filepath"
	"testing"

	chem "github.com/deltachem/deltachem"
)

func TestHistogram(Te *testing.T) {
	res := chem.BatchResult{
		chem.EGap: []chem.Value{
			chem.NewScalar(0.25), chem.NewScalar(0.31), chem.Failure, chem.NewScalar(0.28),
		},
		chem.MullikenCharges: []chem.Value{
			chem.NewVector([]float64{-0.4, 0.2, 0.2}), chem.Failure,
		},
	}
	dir := Te.TempDir()
	for _, prop := range []chem.Property{chem.EGap, chem.MullikenCharges} {
		name := filepath.Join(dir, string(prop)+".png")
		if err := Histogram(res, prop, 10, name); err != nil {
			Te.Fatal(err)
		}
		if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
			Te.Errorf("no plot written for %q", prop)
		}
	}
}

func TestHistogramErrors(Te *testing.T) {
	res := chem.BatchResult{chem.EForm: []chem.Value{chem.Failure}}
	name := filepath.Join(Te.TempDir(), "x.png")
	if err := Histogram(res, chem.EHomo, 10, name); err == nil {
		Te.Error("expected an error for a property missing from the result")
	}
	if err := Histogram(res, chem.EForm, 10, name); err == nil {
		Te.Error("expected an error when every value is a failure sentinel")
	}
}
