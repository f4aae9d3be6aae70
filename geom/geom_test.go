/*
 * geom_test.go, part of deltachem.
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

package geom

import (
	"testing"

	chem "github.com/deltachem/deltachem"
	"github.com/deltachem/deltachem/v3"
)

// TestOpenBabel runs the real obabel binary when available.
func TestOpenBabel(Te *testing.T) {
	O := NewOpenBabel()
	if !O.Available() {
		Te.Skip("obabel binary not in PATH")
	}
	//methanol heavy atoms only, flat
	coords, err := v3.NewMatrix([]float64{
		0.0, 0.0, 0.0,
		1.4, 0.0, 0.0,
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := chem.NewMolecule([]*chem.Atom{
		{Symbol: "C", Z: 6},
		{Symbol: "O", Z: 8},
	}, coords)
	if err != nil {
		Te.Fatal(err)
	}
	mol.Name = "methanol"
	mol.Bonds = []*chem.Bond{{A: 0, B: 1, Order: 1}}

	withH, err := O.AddHydrogens(mol)
	if err != nil {
		Te.Fatal(err)
	}
	if !withH.HasHydrogens() {
		Te.Error("expected explicit hydrogens after completion")
	}
	if withH.Name != "methanol" {
		Te.Error("the name should survive the round trip")
	}
	if mol.Len() != 2 {
		Te.Error("the input molecule was modified")
	}

	embedded, err := O.Embed3D(withH)
	if err != nil {
		Te.Fatal(err)
	}
	if !embedded.Has3D() {
		Te.Error("expected a 3D conformation after embedding")
	}
}
