/*
 * xtb.go, part of deltachem.
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
//In order to use this package you need the xtb program, which must be
//obtained from Prof. Stefan Grimme's group. Please cite the xtb
//references if you use it.

//Package xtb computes the semi-empirical GFN2-xTB baseline properties that
//delta-learning models correct. Each Compute call runs the external xtb
//binary once per molecule, in a private temporary directory, and parses the
//JSON and Wiberg bond order files it writes. One run serves every property.
package xtb

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	chem "github.com/deltachem/deltachem"
)

// Handle runs xtb calculations. The zero value is not usable; get one
// from NewHandle. A Handle is safe for sequential reuse across molecules;
// every run gets its own scratch directory.
type Handle struct {
	command string
	nCPU    int
}

// NewHandle returns a Handle with default settings.
func NewHandle() *Handle {
	O := new(Handle)
	O.SetDefaults()
	return O
}

// SetDefaults sets the command to "xtb" and the number of CPUs to half
// the logical cores of the machine.
func (O *Handle) SetDefaults() {
	O.command = "xtb"
	O.nCPU = runtime.NumCPU() / 2
	if O.nCPU < 1 {
		O.nCPU = 1
	}
}

// SetCommand sets the path of the xtb executable.
func (O *Handle) SetCommand(name string) { O.command = name }

// Command returns the path of the xtb executable.
func (O *Handle) Command() string { return O.command }

// SetnCPU sets the number of CPUs xtb is allowed to use.
func (O *Handle) SetnCPU(cpu int) { O.nCPU = cpu }

// Available reports whether the xtb executable can be found.
func (O *Handle) Available() bool {
	_, err := exec.LookPath(O.command)
	return err == nil
}

// Compute runs a GFN2-xTB single point (or optimization, if optimize is
// set) for mol and returns every baseline property: E_form, E_homo,
// E_lumo, E_gap in Hartree, the dipole moment magnitude in Debye, Mulliken
// partial charges and Wiberg bond orders. When optimize is set the second
// return value holds a copy of mol with the optimized coordinates;
// otherwise it is nil.
//
// Failure of the engine for this molecule (non-convergence, unsupported
// species, malformed structure) is returned as an error and affects this
// molecule only; the Handle remains usable.
func (O *Handle) Compute(mol *chem.Molecule, optimize bool) (chem.Result, *chem.Molecule, error) {
	if mol == nil || mol.Coords == nil {
		return nil, nil, chem.NewError("xtb: molecule without coordinates")
	}
	dir, err := os.MkdirTemp("", "xtb")
	if err != nil {
		return nil, nil, chem.NewError("xtb: can't create scratch directory: %v", err)
	}
	defer os.RemoveAll(dir)
	input := filepath.Join(dir, "mol.xyz")
	if err := chem.XYZWrite(input, mol); err != nil {
		return nil, nil, chem.NewError("xtb: can't write input: %v", err)
	}
	args := []string{
		"mol.xyz", "--json",
		"--chrg", fmt.Sprintf("%d", mol.Charge()),
		"--uhf", fmt.Sprintf("%d", mol.Unpaired()),
		"--parallel", fmt.Sprintf("%d", O.nCPU),
	}
	if optimize {
		args = append(args, "--opt")
	}
	logfile, err := os.Create(filepath.Join(dir, "xtb.log"))
	if err != nil {
		return nil, nil, chem.NewError("xtb: %v", err)
	}
	defer logfile.Close()
	cmd := exec.Command(O.command, args...)
	cmd.Dir = dir
	cmd.Stdout = logfile
	cmd.Stderr = logfile
	if err := cmd.Run(); err != nil {
		return nil, nil, chem.NewError("xtb: calculation failed for %q: %v", mol.Name, err)
	}
	res, err := readOutputDir(dir, mol)
	if err != nil {
		return nil, nil, err
	}
	var optmol *chem.Molecule
	if optimize {
		opt, err := chem.XYZRead(filepath.Join(dir, "xtbopt.xyz"))
		if err != nil {
			return nil, nil, chem.NewError("xtb: no optimized geometry for %q: %v", mol.Name, err)
		}
		if opt.Len() != mol.Len() {
			return nil, nil, chem.NewError("xtb: optimized geometry for %q has %d atoms, want %d", mol.Name, opt.Len(), mol.Len())
		}
		optmol = mol.Copy()
		optmol.Coords = opt.Coords
	}
	return res, optmol, nil
}

// readOutputDir parses xtbout.json and the wbo file from a finished run.
func readOutputDir(dir string, mol *chem.Molecule) (chem.Result, error) {
	jf, err := os.Open(filepath.Join(dir, "xtbout.json"))
	if err != nil {
		return nil, chem.NewError("xtb: no JSON output: %v", err)
	}
	defer jf.Close()
	res, err := ReadJSON(jf, mol)
	if err != nil {
		return nil, err
	}
	wf, err := os.Open(filepath.Join(dir, "wbo"))
	if err != nil {
		//xtb omits the file for single atoms; an empty bond order
		//vector is the right answer there
		res[chem.WibergBonds] = chem.NewVector(make([]float64, len(mol.Bonds)))
		return res, nil
	}
	defer wf.Close()
	wbo, err := ReadWBO(wf, mol)
	if err != nil {
		return nil, err
	}
	res[chem.WibergBonds] = wbo
	return res, nil
}
