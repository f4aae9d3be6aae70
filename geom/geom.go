/*
 * geom.go, part of deltachem.
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

//Package geom wraps the external structure-preparation collaborators:
//force-field 3D embedding and valence completion with explicit hydrogens.
//The default implementation shells out to Open Babel; any other program
//can be used through the Embedder interface.
package geom

import (
	"bytes"
	"os/exec"

	chem "github.com/deltachem/deltachem"
)

// Embedder prepares molecules for a quantum-chemistry calculation. Both
// methods return a new molecule and never modify their argument.
type Embedder interface {
	//Embed3D generates a 3D conformation for the molecule.
	Embed3D(mol *chem.Molecule) (*chem.Molecule, error)

	//AddHydrogens completes the valences of the molecule with explicit
	//hydrogen atoms.
	AddHydrogens(mol *chem.Molecule) (*chem.Molecule, error)
}

// OpenBabel runs the obabel program over pipes to embed and protonate
// molecules. The executable must be in the PATH, or set through Command.
type OpenBabel struct {
	Command    string
	ForceField string //used by --gen3d; obabel's default when empty
}

// NewOpenBabel returns an OpenBabel handle with default settings.
func NewOpenBabel() *OpenBabel {
	return &OpenBabel{Command: "obabel"}
}

// Available reports whether the obabel executable can be found.
func (O *OpenBabel) Available() bool {
	_, err := exec.LookPath(O.command())
	return err == nil
}

func (O *OpenBabel) command() string {
	if O.Command == "" {
		return "obabel"
	}
	return O.Command
}

// Embed3D implements Embedder using obabel --gen3d.
func (O *OpenBabel) Embed3D(mol *chem.Molecule) (*chem.Molecule, error) {
	args := []string{"-isdf", "-osdf", "--gen3d"}
	if O.ForceField != "" {
		args = append(args, "--ff", O.ForceField)
	}
	out, err := O.filter(mol, args)
	if err != nil {
		return nil, err
	}
	out.Dim = 3
	return out, nil
}

// AddHydrogens implements Embedder using obabel -h.
func (O *OpenBabel) AddHydrogens(mol *chem.Molecule) (*chem.Molecule, error) {
	return O.filter(mol, []string{"-isdf", "-osdf", "-h"})
}

// filter writes mol to obabel's stdin as SDF, runs it with the given
// arguments and parses the SDF it prints back.
func (O *OpenBabel) filter(mol *chem.Molecule, args []string) (*chem.Molecule, error) {
	var in, out, stderr bytes.Buffer
	if err := chem.SDFWriteTo(&in, mol); err != nil {
		return nil, err
	}
	cmd := exec.Command(O.command(), args...)
	cmd.Stdin = &in
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, chem.NewError("geom: %s failed: %v: %s", O.command(), err, stderr.String())
	}
	mols, err := chem.SDFReadFrom(&out)
	if err != nil {
		return nil, chem.NewError("geom: can't parse %s output: %v", O.command(), err)
	}
	res := mols[0]
	res.Name = mol.Name
	res.SetCharge(mol.Charge())
	res.SetUnpaired(mol.Unpaired())
	return res, nil
}
