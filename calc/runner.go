/*
 * runner.go, part of deltachem.
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
	"go.uber.org/zap"

	chem "github.com/deltachem/deltachem"
	"github.com/deltachem/deltachem/models"
)

// modelOutputs holds the de-normalized model values for every property of
// the plan, index-aligned with the original batch (failed positions keep
// the failure sentinel as a gap), plus a tag telling the aggregator
// whether each property's values are corrections or absolute.
type modelOutputs struct {
	values     map[chem.Property][]chem.Value
	correction map[chem.Property]bool
}

// runModels dispatches the eligible molecules through every model of the
// plan. Each model sees one batched forward call; if that call fails, the
// runner degrades to per-molecule invocations so a single bad input only
// takes itself down. De-normalization happens here, exactly once, from the
// statistics stored in each spec.
func (c *Calculator) runModels(work []*chem.Molecule, failed []bool) (*modelOutputs, error) {
	out := &modelOutputs{
		values:     make(map[chem.Property][]chem.Value, len(c.plan.Props)),
		correction: make(map[chem.Property]bool, len(c.plan.Props)),
	}
	for _, p := range c.plan.Props {
		out.values[p] = make([]chem.Value, len(work))
	}
	for _, spec := range c.plan.Specs {
		model, err := c.provider.Model(spec)
		if err != nil {
			return nil, errConfig(spec.Name, err)
		}
		for _, p := range spec.Properties {
			if _, wanted := out.values[p]; wanted {
				out.correction[p] = spec.Mode == models.Delta
			}
		}
		idx := make([]int, 0, len(work))
		batch := make([]*chem.Molecule, 0, len(work))
		for i, m := range work {
			if !failed[i] {
				idx = append(idx, i)
				batch = append(batch, m)
			}
		}
		if len(idx) == 0 {
			continue
		}
		raws, err := model.Forward(batch)
		if err != nil || len(raws) != len(batch) {
			//degrade to per-molecule retries so one bad input doesn't
			//sink the whole sub-batch
			c.log.Warn("batched forward pass failed, retrying per molecule",
				zap.String("model", spec.Name), zap.Error(err))
			raws = make([]models.Raw, len(batch))
			for k, i := range idx {
				one, err := model.Forward(batch[k : k+1])
				if err != nil || len(one) != 1 {
					failed[i] = true
					c.log.Warn("forward pass failed",
						zap.String("model", spec.Name),
						zap.Int("molecule", i),
						zap.String("name", batch[k].Name),
						zap.Error(err))
					continue
				}
				raws[k] = one[0]
			}
		}
		for k, i := range idx {
			if raws[k] == nil {
				continue //failed the per-molecule retry
			}
			for _, p := range spec.Properties {
				if _, wanted := out.values[p]; !wanted {
					//a multi-task model may produce more than the plan asked for
					continue
				}
				vals, ok := raws[k][p]
				if !ok {
					return nil, chem.NewError("calc: model %q did not produce %q for molecule %d", spec.Name, p, i)
				}
				if p.Scalar() {
					if len(vals) != 1 {
						return nil, chem.NewError("calc: model %q produced %d values for scalar %q", spec.Name, len(vals), p)
					}
					out.values[p][i] = chem.NewScalar(spec.Denormalize(p, vals[0]))
					continue
				}
				phys := make([]float64, len(vals))
				for j, v := range vals {
					phys[j] = spec.Denormalize(p, v)
				}
				out.values[p][i] = chem.NewVector(phys)
			}
		}
	}
	return out, nil
}

func errConfig(model string, err error) error {
	return chem.NewError("calc: can't load model %q: %v", model, err)
}
