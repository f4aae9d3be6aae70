/*
 * parse.go, part of deltachem.
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
	"bufio"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/floats"

	chem "github.com/deltachem/deltachem"
)

// output mirrors the fields of xtbout.json this library consumes.
type output struct {
	TotalEnergy    float64   `json:"total energy"`
	GapEV          float64   `json:"HOMO-LUMO gap/eV"`
	OrbEnergiesEV  []float64 `json:"orbital energies/eV"`
	Occupations    []float64 `json:"fractional occupation"`
	Unpaired       int       `json:"number of unpaired electrons"`
	Dipole         []float64 `json:"dipole"`
	PartialCharges []float64 `json:"partial charges"`
}

// ReadJSON parses an xtbout.json stream and derives the scalar and
// per-atom baseline properties for mol: E_form (total energy minus the
// atomic reference energies), E_homo, E_lumo and E_gap in Hartree, the
// dipole magnitude in Debye and the Mulliken partial charges.
func ReadJSON(r io.Reader, mol *chem.Molecule) (chem.Result, error) {
	var data output
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, chem.NewError("xtb: malformed JSON output: %v", err)
	}
	homo, lumo, err := homoLumo(&data)
	if err != nil {
		return nil, err
	}
	atomic, err := mol.AtomicEnergy()
	if err != nil {
		return nil, err
	}
	if len(data.PartialCharges) != mol.Len() {
		return nil, chem.NewError("xtb: %d partial charges for %d atoms", len(data.PartialCharges), mol.Len())
	}
	res := chem.Result{
		chem.EForm:           chem.NewScalar(data.TotalEnergy - atomic), //already in Hartree
		chem.EHomo:           chem.NewScalar(homo * chem.EV2Hartree),
		chem.ELumo:           chem.NewScalar(lumo * chem.EV2Hartree),
		chem.EGap:            chem.NewScalar(data.GapEV * chem.EV2Hartree),
		chem.DipoleMoment:    chem.NewScalar(floats.Norm(data.Dipole, 2) * chem.AU2Debye),
		chem.MullikenCharges: chem.NewVector(data.PartialCharges),
	}
	return res, nil
}

// homoLumo extracts the HOMO and LUMO energies in eV from the orbital
// energies and fractional occupations. Unpaired electrons are not
// supported.
func homoLumo(data *output) (float64, float64, error) {
	if data.Unpaired != 0 {
		return 0, 0, chem.NewError("xtb: unpaired electrons are not supported")
	}
	occupied := 0
	for _, f := range data.Occupations {
		//accounting for occasional very small occupations
		if f > 1e-6 {
			occupied++
		}
	}
	if occupied == 0 || occupied >= len(data.OrbEnergiesEV) {
		return 0, 0, chem.NewError("xtb: can't locate frontier orbitals (%d occupied of %d)", occupied, len(data.OrbEnergiesEV))
	}
	return data.OrbEnergiesEV[occupied-1], data.OrbEnergiesEV[occupied], nil
}

// ReadWBO parses an xtb "wbo" file, whose lines hold two 1-based atom
// indexes and a Wiberg bond order. The result is a per-bond vector aligned
// with mol.Bonds; bonds the engine did not list (orders below its print
// threshold) get zero. If mol carries no bond graph, one is assigned to it
// from the pairs in the file, in canonical (A, B) order.
func ReadWBO(r io.Reader, mol *chem.Molecule) (chem.Value, error) {
	type pair struct{ a, b int }
	orders := make(map[pair]float64)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 3 {
			continue
		}
		a, err1 := strconv.Atoi(fields[0])
		b, err2 := strconv.Atoi(fields[1])
		o, err3 := strconv.ParseFloat(fields[2], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return chem.Failure, chem.NewError("xtb: malformed wbo line %q", scanner.Text())
		}
		if a > b {
			a, b = b, a
		}
		if a < 1 || b > mol.Len() {
			return chem.Failure, chem.NewError("xtb: wbo indexes %d-%d out of range for %d atoms", a, b, mol.Len())
		}
		orders[pair{a - 1, b - 1}] = o
	}
	if err := scanner.Err(); err != nil {
		return chem.Failure, chem.NewError("xtb: reading wbo file: %v", err)
	}
	if len(mol.Bonds) == 0 {
		bonds := make([]*chem.Bond, 0, len(orders))
		for p := range orders {
			bonds = append(bonds, &chem.Bond{A: p.a, B: p.b, Order: 1})
		}
		chem.SortBonds(bonds)
		mol.Bonds = bonds
	}
	wbo := make([]float64, len(mol.Bonds))
	for i, bond := range mol.Bonds {
		wbo[i] = orders[pair{bond.A, bond.B}]
	}
	return chem.NewVector(wbo), nil
}
