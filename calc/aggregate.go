/*
 * aggregate.go, part of deltachem.
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

package calc

import (
	chem "github.com/deltachem/deltachem"
)

// aggregate assembles the final batch result: for every requested property
// and molecule index, the failure sentinel for failed molecules, the model
// value for absolute outputs, or baseline plus correction for delta
// outputs. Vector properties are checked atom-by-atom / bond-by-bond
// against the molecule; a length mismatch for a molecule that was not
// marked failed means the pipeline itself is broken and is returned as a
// fatal error, never coerced into a per-molecule failure.
func aggregate(props []chem.Property, work []*chem.Molecule, baseline []chem.Result, outs *modelOutputs, failed []bool) (chem.BatchResult, error) {
	results := make(chem.BatchResult, len(props))
	for _, p := range props {
		vals := make([]chem.Value, len(work))
		for i := range work {
			if failed[i] {
				vals[i] = chem.Failure
				continue
			}
			mv := outs.values[p][i]
			if !mv.OK() {
				return nil, consistency("missing model output", p, i)
			}
			if err := checkLength(p, mv, work[i]); err != nil {
				return nil, err
			}
			if !outs.correction[p] {
				vals[i] = mv
				continue
			}
			if baseline == nil || baseline[i] == nil {
				return nil, consistency("missing baseline result", p, i)
			}
			bv, ok := baseline[i][p]
			if !ok || !bv.OK() {
				return nil, consistency("missing baseline value", p, i)
			}
			if p.Scalar() {
				vals[i] = chem.NewScalar(bv.Float() + mv.Float())
				continue
			}
			b, m := bv.Floats(), mv.Floats()
			if len(b) != len(m) {
				return nil, consistency("baseline/correction length mismatch", p, i)
			}
			sum := make([]float64, len(m))
			for j := range m {
				sum[j] = b[j] + m[j]
			}
			vals[i] = chem.NewVector(sum)
		}
		results[p] = vals
	}
	return results, nil
}

// checkLength verifies that a vector value matches the molecule's own
// atom or bond count.
func checkLength(p chem.Property, v chem.Value, mol *chem.Molecule) error {
	if p.Scalar() {
		return nil
	}
	want := mol.Len()
	if p.Bondwise() {
		want = len(mol.Bonds)
	}
	if len(v.Floats()) != want {
		return chem.NewError("calc: internal inconsistency: %q has %d elements for %q, want %d",
			p, len(v.Floats()), mol.Name, want)
	}
	return nil
}

func consistency(what string, p chem.Property, i int) error {
	return chem.NewError("calc: internal inconsistency: %s for %q, molecule %d", what, p, i)
}
