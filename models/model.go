/*
 * model.go, part of deltachem.
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

package models

import (
	"bytes"
	"encoding/json"
	"os/exec"

	chem "github.com/deltachem/deltachem"
)

// Raw is the forward-pass output for one molecule, before de-normalization.
// Scalar properties hold a single element; per-atom and per-bond properties
// hold one element per atom or bond.
type Raw map[chem.Property][]float64

// Model is the opaque trained-predictor collaborator. Forward computes raw
// outputs for a batch of molecules, one Raw per input, in input order.
// An error means the batched call as a whole failed; the caller degrades
// to per-molecule invocations to isolate the offending input.
type Model interface {
	Spec() *Spec
	Forward(batch []*chem.Molecule) ([]Raw, error)
}

// Provider instantiates the Model serving a Spec. It is how trained
// weights, whatever executes them, reach the calculator.
type Provider interface {
	Model(s *Spec) (Model, error)
}

// ModelFunc adapts a plain function to the Model interface.
type ModelFunc struct {
	S *Spec
	F func(batch []*chem.Molecule) ([]Raw, error)
}

func (m *ModelFunc) Spec() *Spec { return m.S }

func (m *ModelFunc) Forward(batch []*chem.Molecule) ([]Raw, error) {
	return m.F(batch)
}

// ProviderFunc adapts a plain function to the Provider interface.
type ProviderFunc func(s *Spec) (Model, error)

func (f ProviderFunc) Model(s *Spec) (Model, error) { return f(s) }

// ExecProvider serves every spec through an external runner process, the
// way this library drives its quantum-chemistry engines: one process
// invocation per forward call, a JSON request on stdin and a JSON response
// on stdout. The runner is expected to host the actual network weights.
type ExecProvider struct {
	Command string
	Args    []string
}

// Model implements Provider.
func (p *ExecProvider) Model(s *Spec) (Model, error) {
	if p.Command == "" {
		return nil, chem.NewError("models: ExecProvider without a command")
	}
	return &execModel{spec: s, command: p.Command, args: p.Args}, nil
}

type execModel struct {
	spec    *Spec
	command string
	args    []string
}

// execRequest is the JSON document written to the runner's stdin.
type execRequest struct {
	Model     string         `json:"model"`
	Molecules []execMolecule `json:"molecules"`
}

type execMolecule struct {
	Name    string      `json:"name,omitempty"`
	Symbols []string    `json:"symbols"`
	Coords  [][]float64 `json:"coords"`
	Bonds   [][2]int    `json:"bonds,omitempty"`
	Charge  int         `json:"charge"`
}

// execResponse is the JSON document read from the runner's stdout.
type execResponse struct {
	Outputs []Raw  `json:"outputs"`
	Error   string `json:"error,omitempty"`
}

func (m *execModel) Spec() *Spec { return m.spec }

func (m *execModel) Forward(batch []*chem.Molecule) ([]Raw, error) {
	req := execRequest{Model: m.spec.Name}
	for _, mol := range batch {
		em := execMolecule{Name: mol.Name, Charge: mol.Charge()}
		for i := 0; i < mol.Len(); i++ {
			em.Symbols = append(em.Symbols, mol.Atom(i).Symbol)
			em.Coords = append(em.Coords, mol.Coords.Row(i))
		}
		for _, b := range mol.Bonds {
			em.Bonds = append(em.Bonds, [2]int{b.A, b.B})
		}
		req.Molecules = append(req.Molecules, em)
	}
	var in, out, stderr bytes.Buffer
	if err := json.NewEncoder(&in).Encode(&req); err != nil {
		return nil, chem.NewError("models: can't encode request: %v", err)
	}
	cmd := exec.Command(m.command, m.args...)
	cmd.Stdin = &in
	cmd.Stdout = &out
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		return nil, chem.NewError("models: %s failed: %v: %s", m.command, err, stderr.String())
	}
	var resp execResponse
	if err := json.NewDecoder(&out).Decode(&resp); err != nil {
		return nil, chem.NewError("models: can't decode %s response: %v", m.command, err)
	}
	if resp.Error != "" {
		return nil, chem.NewError("models: %s: %s", m.command, resp.Error)
	}
	if len(resp.Outputs) != len(batch) {
		return nil, chem.NewError("models: %s returned %d outputs for %d molecules", m.command, len(resp.Outputs), len(batch))
	}
	return resp.Outputs, nil
}
