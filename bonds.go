/*
 * bonds.go, part of deltachem.
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

import "sort"

//bondTol is the tolerance added to the sum of covalent radii when deciding
//whether two atoms are bonded.
const bondTol = 0.45 //Angstrom

//PerceiveBonds assigns single bonds to the molecule based on interatomic
//distances and covalent radii. Existing bonds are replaced. Bond orders are
//set to 1; callers that need real orders should supply them from the input
//file or from a quantum-chemistry calculation. It returns an error if the
//molecule has no coordinates or contains an element without a tabulated
//covalent radius.
func PerceiveBonds(M *Molecule) error {
	if M.Coords == nil {
		return NewError("deltachem: PerceiveBonds needs coordinates")
	}
	bonds := make([]*Bond, 0, M.Len())
	for i := 0; i < M.Len(); i++ {
		ri, ok := symbolCovrad[M.Atom(i).Symbol]
		if !ok {
			return NewError("deltachem: no covalent radius for atom %d (%s)", i, M.Atom(i).Symbol)
		}
		for j := i + 1; j < M.Len(); j++ {
			rj, ok := symbolCovrad[M.Atom(j).Symbol]
			if !ok {
				return NewError("deltachem: no covalent radius for atom %d (%s)", j, M.Atom(j).Symbol)
			}
			if M.Coords.Dist(i, j) <= ri+rj+bondTol {
				bonds = append(bonds, &Bond{A: i, B: j, Order: 1})
			}
		}
	}
	SortBonds(bonds)
	M.Bonds = bonds
	return nil
}

//SortBonds sorts bonds in place by (A, B), the canonical order used to
//align per-bond property vectors.
func SortBonds(bonds []*Bond) {
	sort.Slice(bonds, func(i, j int) bool {
		if bonds[i].A != bonds[j].A {
			return bonds[i].A < bonds[j].A
		}
		return bonds[i].B < bonds[j].B
	})
}
