/*
 * xyz.go, part of deltachem.
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
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/deltachem/deltachem/v3"
)

//XYZRead reads an XYZ formatted file and returns the molecule it contains.
func XYZRead(xyzname string) (*Molecule, error) {
	f, err := os.Open(xyzname)
	if err != nil {
		return nil, errDecorate(err, "XYZRead")
	}
	defer f.Close()
	mol, err := XYZReadFrom(f)
	if err != nil {
		return nil, errDecorate(err, "XYZRead: "+xyzname)
	}
	return mol, nil
}

//XYZReadFrom reads one XYZ formatted molecule from r.
func XYZReadFrom(r io.Reader) (*Molecule, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		return nil, NewError("deltachem: empty XYZ input")
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return nil, NewError("deltachem: malformed XYZ atom count: %v", err)
	}
	var name string
	if scanner.Scan() {
		name = strings.TrimSpace(scanner.Text())
	}
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !scanner.Scan() {
			return nil, NewError("deltachem: XYZ input truncated at atom %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, NewError("deltachem: malformed XYZ line for atom %d", i)
		}
		at := &Atom{Symbol: fields[0], Z: SymbolToZ(fields[0])}
		atoms = append(atoms, at)
		for j := 1; j < 4; j++ {
			c, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, NewError("deltachem: malformed XYZ coordinate for atom %d: %v", i, err)
			}
			coords = append(coords, c)
		}
	}
	mat, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, errDecorate(err, "XYZReadFrom")
	}
	mol, err := NewMolecule(atoms, mat)
	if err != nil {
		return nil, errDecorate(err, "XYZReadFrom")
	}
	mol.Name = name
	mol.Dim = 3
	return mol, nil
}

//XYZWrite writes the molecule M to the file xyzname, in XYZ format.
func XYZWrite(xyzname string, M *Molecule) error {
	f, err := os.Create(xyzname)
	if err != nil {
		return errDecorate(err, "XYZWrite")
	}
	defer f.Close()
	if err := XYZWriteTo(f, M); err != nil {
		return errDecorate(err, "XYZWrite: "+xyzname)
	}
	return nil
}

//XYZWriteTo writes the molecule M to w, in XYZ format.
func XYZWriteTo(w io.Writer, M *Molecule) error {
	if M == nil || M.Coords == nil {
		return NewError("deltachem: can't write a molecule without coordinates")
	}
	if err := M.Corrupted(); err != nil {
		return errDecorate(err, "XYZWriteTo")
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "%d\n%s\n", M.Len(), M.Name)
	for i := 0; i < M.Len(); i++ {
		r := M.Coords.Row(i)
		fmt.Fprintf(bw, "%-3s %12.6f %12.6f %12.6f\n", M.Atom(i).Symbol, r[0], r[1], r[2])
	}
	return bw.Flush()
}
