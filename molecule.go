/*
 * molecule.go, part of deltachem.
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
	"github.com/deltachem/deltachem/v3"
)

//Atom contains the information for one atom, except for the coordinates,
//which are kept in a separate matrix.
type Atom struct {
	Symbol string
	Z      int //atomic number
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("attempted to copy a nil atom")
	}
	at := new(Atom)
	at.Symbol = A.Symbol
	at.Z = A.Z
	return at
}

//Bond represents a chemical bond between the atoms with indexes A and B,
//with A < B. Order is the formal bond order (1, 2, 3; aromatic bonds
//are stored as 4, as in the SDF convention).
type Bond struct {
	A, B  int
	Order int
}

//Molecule contains the atoms, coordinates and bond graph for one molecule.
//Coordinates are a Nx3 matrix index-aligned with Atoms. Dim records the
//dimensionality declared by the source file (0 when unknown); a molecule
//with Dim == 2 is treated as lacking a 3D conformation even if its
//coordinates are not degenerate.
type Molecule struct {
	Name     string
	Atoms    []*Atom
	Coords   *v3.Matrix
	Bonds    []*Bond
	Dim      int
	charge   int
	unpaired int
}

//NewMolecule builds a molecule from atoms and coordinates. It returns an
//error if atoms is empty or the coordinates don't match the atoms.
func NewMolecule(atoms []*Atom, coords *v3.Matrix) (*Molecule, error) {
	if len(atoms) == 0 {
		return nil, NewError("deltachem: molecule needs at least one atom")
	}
	if coords != nil && coords.NVecs() != len(atoms) {
		return nil, NewError("deltachem: %d atoms but %d coordinates", len(atoms), coords.NVecs())
	}
	M := new(Molecule)
	M.Atoms = atoms
	M.Coords = coords
	return M, nil
}

//Len returns the number of atoms in the molecule.
func (M *Molecule) Len() int { return len(M.Atoms) }

//Atom returns the Atom corresponding to the index i. Panics if out of range.
func (M *Molecule) Atom(i int) *Atom {
	if i >= M.Len() {
		panic(ErrAtomOutOfRange)
	}
	return M.Atoms[i]
}

//Charge gets the total charge of the molecule.
func (M *Molecule) Charge() int { return M.charge }

//SetCharge sets the total charge of the molecule to i.
func (M *Molecule) SetCharge(i int) { M.charge = i }

//Unpaired gets the number of unpaired electrons in the molecule.
func (M *Molecule) Unpaired() int { return M.unpaired }

//SetUnpaired sets the number of unpaired electrons in the molecule to i.
func (M *Molecule) SetUnpaired(i int) { M.unpaired = i }

//Multi returns the multiplicity of the molecule.
func (M *Molecule) Multi() int { return M.unpaired + 1 }

//Copy returns a deep copy of the molecule. The original is never shared
//with the copy, so the pipeline can normalize and re-coordinate working
//copies without mutating the caller's molecules.
func (M *Molecule) Copy() *Molecule {
	if M == nil {
		panic(ErrNilMolecule)
	}
	mol := new(Molecule)
	mol.Name = M.Name
	mol.Dim = M.Dim
	mol.charge = M.charge
	mol.unpaired = M.unpaired
	mol.Atoms = make([]*Atom, M.Len())
	for i, at := range M.Atoms {
		mol.Atoms[i] = at.Copy()
	}
	if M.Coords != nil {
		mol.Coords = M.Coords.Copy()
	}
	if M.Bonds != nil {
		mol.Bonds = make([]*Bond, len(M.Bonds))
		for i, b := range M.Bonds {
			mol.Bonds[i] = &Bond{A: b.A, B: b.B, Order: b.Order}
		}
	}
	return mol
}

//Corrupted checks whether the molecule is internally inconsistent, i.e.
//the coordinates don't match the number of atoms or a bond references an
//atom out of range.
func (M *Molecule) Corrupted() error {
	if M.Coords != nil && M.Coords.NVecs() != M.Len() {
		return NewError("deltachem: inconsistent coordinates/atoms: atoms %d, coords %d", M.Len(), M.Coords.NVecs())
	}
	for _, b := range M.Bonds {
		if b.A >= M.Len() || b.B >= M.Len() || b.A < 0 || b.B < 0 {
			return NewError("deltachem: bond %d-%d out of range for %d atoms", b.A, b.B, M.Len())
		}
	}
	return nil
}

//HasHydrogens reports whether the molecule contains any explicit
//hydrogen atom.
func (M *Molecule) HasHydrogens() bool {
	for _, at := range M.Atoms {
		if at.Z == 1 {
			return true
		}
	}
	return false
}

//Has3D reports whether the molecule carries a usable 3D conformation.
//A molecule declared 2D by its source, with nil coordinates, or with all
//coordinates at the origin does not. Single atoms always do.
func (M *Molecule) Has3D() bool {
	if M.Coords == nil || M.Dim == 2 {
		return false
	}
	if M.Len() == 1 {
		return true
	}
	for i := 0; i < M.Coords.NVecs(); i++ {
		r := M.Coords.Row(i)
		if r[0] != 0 || r[1] != 0 || r[2] != 0 {
			return true
		}
	}
	return false
}

//AtomicEnergy returns the sum of the semi-empirical atomic reference
//energies for the atoms in the molecule, in Hartree. It returns an error
//if any element lacks a tabulated reference energy.
func (M *Molecule) AtomicEnergy() (float64, error) {
	var sum float64
	for i, at := range M.Atoms {
		e, ok := atomEnergiesXTB[at.Symbol]
		if !ok {
			return 0, NewError("deltachem: no reference atomic energy for atom %d (%s)", i, at.Symbol)
		}
		sum += e
	}
	return sum, nil
}
