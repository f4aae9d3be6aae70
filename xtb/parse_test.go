/*
 * parse_test.go, part of deltachem.
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

package xtb

import (
	"math"
	"strings"
	"testing"

	chem "github.com/deltachem/deltachem"
	"github.com/deltachem/deltachem/v3"
)

func water(Te *testing.T) *chem.Molecule {
	coords, err := v3.NewMatrix([]float64{
		0.000, 0.000, 0.119,
		0.000, 0.763, -0.477,
		0.000, -0.763, -0.477,
	})
	if err != nil {
		Te.Fatal(err)
	}
	mol, err := chem.NewMolecule([]*chem.Atom{
		{Symbol: "O", Z: 8},
		{Symbol: "H", Z: 1},
		{Symbol: "H", Z: 1},
	}, coords)
	if err != nil {
		Te.Fatal(err)
	}
	mol.Name = "water"
	mol.Dim = 3
	return mol
}

const waterJSON = `{
  "total energy": -5.070544,
  "HOMO-LUMO gap/eV": 14.474,
  "orbital energies/eV": [-18.7, -15.2, -13.5, -12.1, 2.37, 5.9],
  "fractional occupation": [2.0, 2.0, 2.0, 2.0, 0.0, 0.0],
  "number of unpaired electrons": 0,
  "dipole": [0.0, 0.0, 0.885],
  "partial charges": [-0.56, 0.28, 0.28]
}`

func TestReadJSON(Te *testing.T) {
	mol := water(Te)
	res, err := ReadJSON(strings.NewReader(waterJSON), mol)
	if err != nil {
		Te.Fatal(err)
	}
	atomic, err := mol.AtomicEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	if got, want := res[chem.EForm].Float(), -5.070544-atomic; math.Abs(got-want) > 1e-9 {
		Te.Errorf("E_form: got %v, want %v", got, want)
	}
	if got, want := res[chem.EHomo].Float(), -12.1*chem.EV2Hartree; math.Abs(got-want) > 1e-9 {
		Te.Errorf("E_homo: got %v, want %v", got, want)
	}
	if got, want := res[chem.ELumo].Float(), 2.37*chem.EV2Hartree; math.Abs(got-want) > 1e-9 {
		Te.Errorf("E_lumo: got %v, want %v", got, want)
	}
	if got, want := res[chem.EGap].Float(), 14.474*chem.EV2Hartree; math.Abs(got-want) > 1e-9 {
		Te.Errorf("E_gap: got %v, want %v", got, want)
	}
	if got, want := res[chem.DipoleMoment].Float(), 0.885*chem.AU2Debye; math.Abs(got-want) > 1e-9 {
		Te.Errorf("dipole: got %v, want %v", got, want)
	}
	charges := res[chem.MullikenCharges].Floats()
	if len(charges) != 3 || charges[0] != -0.56 {
		Te.Errorf("charges: got %v", charges)
	}
}

func TestReadJSONUnpaired(Te *testing.T) {
	radical := strings.Replace(waterJSON, `"number of unpaired electrons": 0`,
		`"number of unpaired electrons": 1`, 1)
	if _, err := ReadJSON(strings.NewReader(radical), water(Te)); err == nil {
		Te.Error("expected an error for unpaired electrons")
	}
}

func TestReadJSONChargeMismatch(Te *testing.T) {
	short := strings.Replace(waterJSON, `[-0.56, 0.28, 0.28]`, `[-0.56, 0.28]`, 1)
	if _, err := ReadJSON(strings.NewReader(short), water(Te)); err == nil {
		Te.Error("expected an error for a charge/atom count mismatch")
	}
}

func TestReadWBOAssignsBonds(Te *testing.T) {
	mol := water(Te)
	wbo, err := ReadWBO(strings.NewReader("   2   1   0.912\n   1   3   0.911\n"), mol)
	if err != nil {
		Te.Fatal(err)
	}
	if len(mol.Bonds) != 2 {
		Te.Fatalf("expected 2 bonds assigned from the wbo file, got %d", len(mol.Bonds))
	}
	//canonical order: (0,1) before (0,2)
	v := wbo.Floats()
	if math.Abs(v[0]-0.912) > 1e-12 || math.Abs(v[1]-0.911) > 1e-12 {
		Te.Errorf("wbo vector misaligned: %v", v)
	}
}

func TestReadWBOAligned(Te *testing.T) {
	mol := water(Te)
	if err := chem.PerceiveBonds(mol); err != nil {
		Te.Fatal(err)
	}
	//only one of the two bonds is listed; the other must get zero
	wbo, err := ReadWBO(strings.NewReader("1 2 0.9\n"), mol)
	if err != nil {
		Te.Fatal(err)
	}
	v := wbo.Floats()
	if len(v) != 2 || v[0] != 0.9 || v[1] != 0 {
		Te.Errorf("wbo alignment wrong: %v", v)
	}
}

func TestReadWBOMalformed(Te *testing.T) {
	mol := water(Te)
	if _, err := ReadWBO(strings.NewReader("1 4 0.9\n"), mol); err == nil {
		Te.Error("expected an error for out-of-range indexes")
	}
	if _, err := ReadWBO(strings.NewReader("a b c\n"), mol); err == nil {
		Te.Error("expected an error for a malformed line")
	}
}

// TestCompute runs the real xtb binary when available.
func TestCompute(Te *testing.T) {
	O := NewHandle()
	if !O.Available() {
		Te.Skip("xtb binary not in PATH")
	}
	res, _, err := O.Compute(water(Te), false)
	if err != nil {
		Te.Fatal(err)
	}
	if !res[chem.EForm].OK() || res[chem.EForm].Float() >= 0 {
		Te.Error("expected a negative formation energy for water")
	}
}
