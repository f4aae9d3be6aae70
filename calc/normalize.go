/*
 * normalize.go, part of deltachem.
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
)

// Change records what normalization did to one molecule. Diagnostics only;
// nothing downstream branches on it.
type Change struct {
	AddedHydrogens bool
	Embedded3D     bool
}

// normalize produces the working copies every later stage operates on.
// The caller's molecules are never touched. A molecule whose preparation
// fails (embedding non-convergence, disconnected fragments, unusable
// structure) is marked failed and excluded from all downstream stages;
// the rest of the batch proceeds.
func (c *Calculator) normalize(mols []*chem.Molecule) ([]*chem.Molecule, []Change, []bool) {
	work := make([]*chem.Molecule, len(mols))
	changes := make([]Change, len(mols))
	failed := make([]bool, len(mols))
	needBonds := hasProp(c.plan.Props, chem.WibergBonds)
	for i, mol := range mols {
		if mol == nil || mol.Len() == 0 {
			failed[i] = true
			c.log.Warn("empty molecule in batch", zap.Int("molecule", i))
			continue
		}
		m := mol.Copy()
		if err := m.Corrupted(); err != nil {
			failed[i] = true
			c.log.Warn("corrupted molecule", zap.Int("molecule", i), zap.String("name", m.Name), zap.Error(err))
			continue
		}
		if c.opts.AddH && !m.HasHydrogens() {
			withH, err := c.embedder.AddHydrogens(m)
			if err != nil {
				failed[i] = true
				c.log.Warn("hydrogen completion failed", zap.Int("molecule", i), zap.String("name", m.Name), zap.Error(err))
				continue
			}
			m = withH
			changes[i].AddedHydrogens = true
		}
		if !m.Has3D() {
			if !c.opts.Force3D {
				failed[i] = true
				c.log.Warn("molecule has no 3D conformation and Force3D is off",
					zap.Int("molecule", i), zap.String("name", m.Name))
				continue
			}
			embedded, err := c.embedder.Embed3D(m)
			if err != nil {
				failed[i] = true
				c.log.Warn("3D embedding failed", zap.Int("molecule", i), zap.String("name", m.Name), zap.Error(err))
				continue
			}
			m = embedded
			changes[i].Embedded3D = true
		}
		//the Wiberg bond order vector is aligned against the bond graph,
		//so one has to exist before any model or engine runs
		if needBonds && len(m.Bonds) == 0 {
			if err := chem.PerceiveBonds(m); err != nil {
				failed[i] = true
				c.log.Warn("bond perception failed", zap.Int("molecule", i), zap.String("name", m.Name), zap.Error(err))
				continue
			}
		}
		work[i] = m
		c.log.Debug("normalized molecule",
			zap.Int("molecule", i),
			zap.String("name", m.Name),
			zap.Bool("added_hydrogens", changes[i].AddedHydrogens),
			zap.Bool("embedded_3d", changes[i].Embedded3D))
	}
	return work, changes, failed
}
