/*
 * sdf.go, part of deltachem.
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

//SDFRead reads an SDF/MOL (V2000) file and returns every molecule in it.
//Drug-like datasets usually come in this format, with an explicit bond
//graph that the Wiberg bond orders are later aligned against.
func SDFRead(sdfname string) ([]*Molecule, error) {
	f, err := os.Open(sdfname)
	if err != nil {
		return nil, errDecorate(err, "SDFRead")
	}
	defer f.Close()
	mols, err := SDFReadFrom(f)
	if err != nil {
		return nil, errDecorate(err, "SDFRead: "+sdfname)
	}
	return mols, nil
}

//SDFReadFrom reads V2000 molecules from r until EOF. Records are separated
//by "$$$$" lines, as in a multi-molecule SDF file.
func SDFReadFrom(r io.Reader) ([]*Molecule, error) {
	scanner := bufio.NewScanner(r)
	var mols []*Molecule
	for {
		mol, err := sdfReadOne(scanner)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("SDFReadFrom: molecule %d", len(mols)))
		}
		mols = append(mols, mol)
	}
	if len(mols) == 0 {
		return nil, NewError("deltachem: no molecules in SDF input")
	}
	return mols, nil
}

func sdfReadOne(scanner *bufio.Scanner) (*Molecule, error) {
	//header block: name, program line, comment
	var header [3]string
	for i := 0; i < 3; i++ {
		if !scanner.Scan() {
			return nil, io.EOF
		}
		header[i] = scanner.Text()
	}
	if !scanner.Scan() {
		return nil, NewError("deltachem: SDF input truncated at counts line")
	}
	counts := scanner.Text()
	if len(counts) < 6 {
		return nil, NewError("deltachem: malformed SDF counts line %q", counts)
	}
	natoms, err := strconv.Atoi(strings.TrimSpace(counts[0:3]))
	if err != nil {
		return nil, NewError("deltachem: malformed SDF atom count: %v", err)
	}
	nbonds, err := strconv.Atoi(strings.TrimSpace(counts[3:6]))
	if err != nil {
		return nil, NewError("deltachem: malformed SDF bond count: %v", err)
	}
	atoms := make([]*Atom, 0, natoms)
	coords := make([]float64, 0, natoms*3)
	for i := 0; i < natoms; i++ {
		if !scanner.Scan() {
			return nil, NewError("deltachem: SDF input truncated at atom %d", i)
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) < 4 {
			return nil, NewError("deltachem: malformed SDF atom line %d", i)
		}
		for j := 0; j < 3; j++ {
			c, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return nil, NewError("deltachem: malformed SDF coordinate for atom %d: %v", i, err)
			}
			coords = append(coords, c)
		}
		atoms = append(atoms, &Atom{Symbol: fields[3], Z: SymbolToZ(fields[3])})
	}
	bonds := make([]*Bond, 0, nbonds)
	for i := 0; i < nbonds; i++ {
		if !scanner.Scan() {
			return nil, NewError("deltachem: SDF input truncated at bond %d", i)
		}
		line := scanner.Text()
		if len(line) < 9 {
			return nil, NewError("deltachem: malformed SDF bond line %d", i)
		}
		a, err1 := strconv.Atoi(strings.TrimSpace(line[0:3]))
		b, err2 := strconv.Atoi(strings.TrimSpace(line[3:6]))
		order, err3 := strconv.Atoi(strings.TrimSpace(line[6:9]))
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, NewError("deltachem: malformed SDF bond line %d", i)
		}
		if a > b {
			a, b = b, a
		}
		bonds = append(bonds, &Bond{A: a - 1, B: b - 1, Order: order}) //SDF is 1-based
	}
	SortBonds(bonds)
	charge := 0
	//properties block up to M  END, then data items up to $$$$
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "M  CHG") {
			fields := strings.Fields(line)
			//M  CHG n (atom chg)*n : the total charge is the sum of the entries
			for k := 4; k < len(fields); k += 2 {
				c, err := strconv.Atoi(fields[k])
				if err == nil {
					charge += c
				}
			}
		}
		if strings.HasPrefix(line, "M  END") {
			break
		}
	}
	for scanner.Scan() {
		if strings.HasPrefix(scanner.Text(), "$$$$") {
			break
		}
	}
	mat, err := v3.NewMatrix(coords)
	if err != nil {
		return nil, err
	}
	mol, err := NewMolecule(atoms, mat)
	if err != nil {
		return nil, err
	}
	mol.Name = strings.TrimSpace(header[0])
	mol.Bonds = bonds
	mol.SetCharge(charge)
	mol.Dim = 3
	//Open Babel and friends mark flat structures in the program line
	if strings.Contains(header[1], "2D") {
		mol.Dim = 2
	}
	return mol, nil
}

//SDFWrite writes the given molecules to sdfname as a multi-molecule
//V2000 SDF file.
func SDFWrite(sdfname string, mols ...*Molecule) error {
	f, err := os.Create(sdfname)
	if err != nil {
		return errDecorate(err, "SDFWrite")
	}
	defer f.Close()
	if err := SDFWriteTo(f, mols...); err != nil {
		return errDecorate(err, "SDFWrite: "+sdfname)
	}
	return nil
}

//SDFWriteTo writes the given molecules to w as a multi-molecule V2000
//SDF file.
func SDFWriteTo(w io.Writer, mols ...*Molecule) error {
	bw := bufio.NewWriter(w)
	for _, M := range mols {
		if M == nil || M.Coords == nil {
			return NewError("deltachem: can't write a molecule without coordinates")
		}
		if err := M.Corrupted(); err != nil {
			return errDecorate(err, "SDFWriteTo")
		}
		fmt.Fprintf(bw, "%s\n  deltachem          3D\n\n", M.Name)
		fmt.Fprintf(bw, "%3d%3d  0  0  0  0  0  0  0  0999 V2000\n", M.Len(), len(M.Bonds))
		for i := 0; i < M.Len(); i++ {
			r := M.Coords.Row(i)
			fmt.Fprintf(bw, "%10.4f%10.4f%10.4f %-3s 0  0  0  0  0  0  0  0  0  0  0  0\n", r[0], r[1], r[2], M.Atom(i).Symbol)
		}
		for _, b := range M.Bonds {
			fmt.Fprintf(bw, "%3d%3d%3d  0  0  0  0\n", b.A+1, b.B+1, b.Order)
		}
		if M.Charge() != 0 {
			//the charge is attributed to the first atom; good enough to
			//round-trip the total charge the engine needs
			fmt.Fprintf(bw, "M  CHG  1   1 %3d\n", M.Charge())
		}
		fmt.Fprintf(bw, "M  END\n$$$$\n")
	}
	return bw.Flush()
}
