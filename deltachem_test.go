/*
 * deltachem_test.go, part of deltachem.
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

package deltachem

import (
	"bytes"
	"encoding/json"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/deltachem/deltachem/v3"
)

func water(Te *testing.T) *Molecule {
	coords, err := v3.NewMatrix([]float64{
		0.000, 0.000, 0.119,
		0.000, 0.763, -0.477,
		0.000, -0.763, -0.477,
	})
	if err != nil {
		Te.Fatal(err)
	}
	atoms := []*Atom{
		{Symbol: "O", Z: 8},
		{Symbol: "H", Z: 1},
		{Symbol: "H", Z: 1},
	}
	mol, err := NewMolecule(atoms, coords)
	if err != nil {
		Te.Fatal(err)
	}
	mol.Name = "water"
	mol.Dim = 3
	return mol
}

func TestMoleculeCopy(Te *testing.T) {
	mol := water(Te)
	cp := mol.Copy()
	cp.Coords.Set(0, 2, 99.0)
	cp.Atoms[0].Symbol = "N"
	cp.SetCharge(1)
	if mol.Coords.At(0, 2) != 0.119 {
		Te.Error("copy shares coordinates with the original")
	}
	if mol.Atom(0).Symbol != "O" {
		Te.Error("copy shares atoms with the original")
	}
	if mol.Charge() != 0 {
		Te.Error("copy shares charge with the original")
	}
}

func TestHas3D(Te *testing.T) {
	mol := water(Te)
	if !mol.Has3D() {
		Te.Error("water should have a 3D conformation")
	}
	flat := mol.Copy()
	flat.Dim = 2
	if flat.Has3D() {
		Te.Error("a molecule declared 2D should not count as 3D")
	}
	degenerate := mol.Copy()
	degenerate.Coords = v3.Zeros(3)
	degenerate.Dim = 0
	if degenerate.Has3D() {
		Te.Error("all-zero coordinates should not count as 3D")
	}
}

func TestHasHydrogens(Te *testing.T) {
	mol := water(Te)
	if !mol.HasHydrogens() {
		Te.Error("water has hydrogens")
	}
	heavy, err := NewMolecule([]*Atom{{Symbol: "O", Z: 8}}, v3.Zeros(1))
	if err != nil {
		Te.Fatal(err)
	}
	if heavy.HasHydrogens() {
		Te.Error("a bare oxygen has no hydrogens")
	}
}

func TestPerceiveBonds(Te *testing.T) {
	mol := water(Te)
	if err := PerceiveBonds(mol); err != nil {
		Te.Fatal(err)
	}
	if len(mol.Bonds) != 2 {
		Te.Fatalf("water should get 2 bonds, got %d", len(mol.Bonds))
	}
	for _, b := range mol.Bonds {
		if b.A != 0 {
			Te.Errorf("every bond in water involves the oxygen, got %d-%d", b.A, b.B)
		}
	}
}

func TestAtomicEnergy(Te *testing.T) {
	mol := water(Te)
	e, err := mol.AtomicEnergy()
	if err != nil {
		Te.Fatal(err)
	}
	want := atomEnergiesXTB["O"] + 2*atomEnergiesXTB["H"]
	if math.Abs(e-want) > 1e-12 {
		Te.Errorf("atomic energy: got %v, want %v", e, want)
	}
	bad, err := NewMolecule([]*Atom{{Symbol: "Xx"}}, v3.Zeros(1))
	if err != nil {
		Te.Fatal(err)
	}
	if _, err := bad.AtomicEnergy(); err == nil {
		Te.Error("expected an error for an element without a reference energy")
	}
}

func TestXYZIO(Te *testing.T) {
	mol := water(Te)
	name := filepath.Join(Te.TempDir(), "water.xyz")
	if err := XYZWrite(name, mol); err != nil {
		Te.Fatal(err)
	}
	back, err := XYZRead(name)
	if err != nil {
		Te.Fatal(err)
	}
	if back.Len() != 3 || back.Atom(0).Symbol != "O" || back.Name != "water" {
		Te.Errorf("XYZ round trip lost data: %d atoms, %q", back.Len(), back.Name)
	}
	if math.Abs(back.Coords.At(1, 1)-0.763) > 1e-5 {
		Te.Errorf("XYZ round trip lost precision: %v", back.Coords.At(1, 1))
	}
}

func TestSDFIO(Te *testing.T) {
	mol := water(Te)
	if err := PerceiveBonds(mol); err != nil {
		Te.Fatal(err)
	}
	mol.SetCharge(-1)
	var buf bytes.Buffer
	if err := SDFWriteTo(&buf, mol); err != nil {
		Te.Fatal(err)
	}
	mols, err := SDFReadFrom(&buf)
	if err != nil {
		Te.Fatal(err)
	}
	if len(mols) != 1 {
		Te.Fatalf("expected 1 molecule, got %d", len(mols))
	}
	back := mols[0]
	if back.Len() != 3 || len(back.Bonds) != 2 {
		Te.Errorf("SDF round trip lost structure: %d atoms, %d bonds", back.Len(), len(back.Bonds))
	}
	if back.Charge() != -1 {
		Te.Errorf("SDF round trip lost the charge: %d", back.Charge())
	}
	if !back.Has3D() {
		Te.Error("SDF round trip lost the 3D flag")
	}
}

func TestSDFRead2DFlag(Te *testing.T) {
	sdf := "flat\n  sometool 2D\n\n" +
		"  1  0  0  0  0  0  0  0  0  0999 V2000\n" +
		"    0.0000    0.0000    0.0000 C   0  0  0  0  0  0  0  0  0  0  0  0\n" +
		"M  END\n$$$$\n"
	mols, err := SDFReadFrom(strings.NewReader(sdf))
	if err != nil {
		Te.Fatal(err)
	}
	if mols[0].Dim != 2 {
		Te.Errorf("expected the 2D flag to be honored, got Dim=%d", mols[0].Dim)
	}
}

func TestValueJSON(Te *testing.T) {
	res := BatchResult{
		EForm:           []Value{NewScalar(-1.5), Failure},
		MullikenCharges: []Value{NewVector([]float64{0.1, -0.1}), Failure},
	}
	b, err := json.Marshal(res)
	if err != nil {
		Te.Fatal(err)
	}
	var back BatchResult
	if err := json.Unmarshal(b, &back); err != nil {
		Te.Fatal(err)
	}
	if !back[EForm][0].OK() || back[EForm][0].Float() != -1.5 {
		Te.Error("scalar value lost in JSON round trip")
	}
	if back[EForm][1].OK() {
		Te.Error("failure sentinel lost in JSON round trip")
	}
	if !back[MullikenCharges][0].IsVector() || len(back[MullikenCharges][0].Floats()) != 2 {
		Te.Error("vector value lost in JSON round trip")
	}
}

func TestPropertyKinds(Te *testing.T) {
	if !MullikenCharges.Atomwise() || !WibergBonds.Bondwise() {
		Te.Error("vector property kinds misreported")
	}
	for _, p := range []Property{EForm, EHomo, ELumo, EGap, DipoleMoment} {
		if !p.Scalar() {
			Te.Errorf("%q should be scalar", p)
		}
	}
	if Property("E_whatever").Valid() {
		Te.Error("unknown key reported as valid")
	}
}
