/*
 * resolve.go, part of deltachem.
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
	"github.com/deltachem/deltachem/models"
)

// Plan is the resolved, deduplicated set of model specs needed to satisfy
// a requested property set, plus the properties it delivers. It is minimal:
// no spec appears unless at least one of its properties was requested, and
// a multi-task spec appears once however many of its properties were asked
// for. Resolution depends only on the configuration, never on batch
// content, so a Plan is computed once per calculator.
type Plan struct {
	Specs []*models.Spec
	Props []chem.Property
}

// Resolve builds the task plan for either a requested property set or an
// explicit model list. Exactly one of tasks and modelNames may be
// non-empty; supplying both is a configuration error. An empty tasks set
// means every known property. When model names are given, the covered
// properties are inferred from each spec's declared outputs, which keeps
// both entry points consistent.
func Resolve(reg *models.Registry, tasks []chem.Property, modelNames []string, mode models.Mode) (*Plan, error) {
	if len(tasks) > 0 && len(modelNames) > 0 {
		return nil, chem.NewError("calc: tasks and models are mutually exclusive")
	}
	if len(modelNames) > 0 {
		return resolveModels(reg, modelNames, mode)
	}
	if len(tasks) == 0 {
		tasks = chem.AllProperties()
	}
	return resolveTasks(reg, tasks, mode)
}

func resolveTasks(reg *models.Registry, tasks []chem.Property, mode models.Mode) (*Plan, error) {
	plan := new(Plan)
	for _, p := range tasks {
		if !p.Valid() {
			return nil, chem.NewError("calc: unknown property key %q", p)
		}
		if hasProp(plan.Props, p) {
			continue
		}
		owner, err := reg.Owner(p, mode)
		if err != nil {
			return nil, err
		}
		plan.Props = append(plan.Props, p)
		if !hasSpec(plan.Specs, owner) {
			plan.Specs = append(plan.Specs, owner)
		}
	}
	return plan, nil
}

func resolveModels(reg *models.Registry, names []string, mode models.Mode) (*Plan, error) {
	plan := new(Plan)
	for _, name := range names {
		s, err := reg.Spec(name)
		if err != nil {
			return nil, err
		}
		if s.Mode != mode {
			return nil, chem.NewError("calc: model %q is a %s model, calculator mode is %s", name, s.Mode, mode)
		}
		if hasSpec(plan.Specs, s) {
			continue
		}
		plan.Specs = append(plan.Specs, s)
		for _, p := range s.Properties {
			if !hasProp(plan.Props, p) {
				plan.Props = append(plan.Props, p)
			}
		}
	}
	return plan, nil
}

func hasProp(props []chem.Property, p chem.Property) bool {
	for _, q := range props {
		if p == q {
			return true
		}
	}
	return false
}

func hasSpec(specs []*models.Spec, s *models.Spec) bool {
	for _, t := range specs {
		if t.Name == s.Name {
			return true
		}
	}
	return false
}
