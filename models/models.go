/*
 * models.go, part of deltachem.
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

//Package models describes the trained property predictors the calc package
//dispatches to. A Spec declares what a checkpoint produces (its property
//set, delta or direct mode, and per-property normalization statistics);
//the Model interface is the opaque forward-pass collaborator that serves
//a Spec. The network architectures and weights themselves are external:
//this package only knows how to describe, group and de-normalize them.
package models

import (
	chem "github.com/deltachem/deltachem"
)

// Mode tells whether a model predicts a correction to the semi-empirical
// baseline (delta) or the property itself (direct).
type Mode string

const (
	Delta  Mode = "delta"
	Direct Mode = "direct"
)

// Stats holds the normalization statistics for one property. A model's raw
// output is mapped back to physical units as raw*Scale + Mean, exactly
// once, by the model runner.
type Stats struct {
	Mean  float64 `json:"mean"`
	Scale float64 `json:"scale"`
}

// Spec describes one loadable predictor. Several properties may share one
// Spec (a multi-task model); a property belongs to exactly one Spec per
// mode within a Registry.
type Spec struct {
	Name       string                  `json:"name"`
	Mode       Mode                    `json:"mode"`
	Properties []chem.Property         `json:"properties"`
	Norm       map[chem.Property]Stats `json:"norm,omitempty"`
}

// Covers reports whether the spec produces property p.
func (s *Spec) Covers(p chem.Property) bool {
	for _, q := range s.Properties {
		if p == q {
			return true
		}
	}
	return false
}

// Denormalize maps a raw network output for property p to physical units.
// Properties without stored statistics pass through unchanged.
func (s *Spec) Denormalize(p chem.Property, raw float64) float64 {
	st, ok := s.Norm[p]
	if !ok {
		return raw
	}
	return raw*st.Scale + st.Mean
}

// Validate checks the spec for the invariants the resolver relies on.
func (s *Spec) Validate() error {
	if s.Name == "" {
		return chem.NewError("models: spec without a name")
	}
	if s.Mode != Delta && s.Mode != Direct {
		return chem.NewError("models: spec %q has unknown mode %q", s.Name, s.Mode)
	}
	if len(s.Properties) == 0 {
		return chem.NewError("models: spec %q covers no properties", s.Name)
	}
	for _, p := range s.Properties {
		if !p.Valid() {
			return chem.NewError("models: spec %q covers unknown property %q", s.Name, p)
		}
	}
	return nil
}

// Registry is an ordered collection of Specs. Order matters: when more
// than one spec could serve a property in a given mode, the earliest
// registered one owns it.
type Registry struct {
	specs []*Spec
}

// NewRegistry builds a registry from the given specs, in order.
func NewRegistry(specs ...*Spec) (*Registry, error) {
	r := &Registry{}
	for _, s := range specs {
		if err := r.Add(s); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Add validates the spec and appends it to the registry.
func (r *Registry) Add(s *Spec) error {
	if err := s.Validate(); err != nil {
		return err
	}
	r.specs = append(r.specs, s)
	return nil
}

// Specs returns the registered specs in registration order. The returned
// slice must not be modified.
func (r *Registry) Specs() []*Spec { return r.specs }

// Owner returns the spec that serves property p in the given mode: the
// earliest registered spec covering it.
func (r *Registry) Owner(p chem.Property, mode Mode) (*Spec, error) {
	for _, s := range r.specs {
		if s.Mode == mode && s.Covers(p) {
			return s, nil
		}
	}
	return nil, chem.NewError("models: no registered %s model covers %q", mode, p)
}

// Spec returns the registered spec with the given name.
func (r *Registry) Spec(name string) (*Spec, error) {
	for _, s := range r.specs {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, chem.NewError("models: no registered model named %q", name)
}

// Default returns a registry mirroring the published checkpoint set: per
// mode, a multi-task orbital/dipole model, a single-task formation-energy
// model, a partial-charge model and a bond-order model. The normalization
// statistics are those the checkpoints were trained with; delta models
// predict corrections, which are kept close to zero-mean by construction.
func Default() *Registry {
	specs := []*Spec{}
	for _, mode := range []Mode{Delta, Direct} {
		norm := map[chem.Property]Stats{
			chem.EHomo:        {Mean: 0.0, Scale: 0.0055},
			chem.ELumo:        {Mean: 0.0, Scale: 0.0074},
			chem.EGap:         {Mean: 0.0, Scale: 0.0097},
			chem.DipoleMoment: {Mean: 0.0, Scale: 0.3493},
		}
		if mode == Direct {
			norm = map[chem.Property]Stats{
				chem.EHomo:        {Mean: -0.3723, Scale: 0.0263},
				chem.ELumo:        {Mean: -0.0890, Scale: 0.0452},
				chem.EGap:         {Mean: 0.2833, Scale: 0.0571},
				chem.DipoleMoment: {Mean: 2.6224, Scale: 1.4166},
			}
		}
		eform := map[chem.Property]Stats{chem.EForm: {Mean: 0.0, Scale: 0.0168}}
		if mode == Direct {
			eform = map[chem.Property]Stats{chem.EForm: {Mean: -4.2429, Scale: 1.7966}}
		}
		specs = append(specs,
			&Spec{
				Name:       "multitask_" + string(mode),
				Mode:       mode,
				Properties: []chem.Property{chem.EHomo, chem.ELumo, chem.EGap, chem.DipoleMoment},
				Norm:       norm,
			},
			&Spec{
				Name:       "single_energy_" + string(mode),
				Mode:       mode,
				Properties: []chem.Property{chem.EForm},
				Norm:       eform,
			},
			&Spec{
				Name:       "charges_" + string(mode),
				Mode:       mode,
				Properties: []chem.Property{chem.MullikenCharges},
			},
			&Spec{
				Name:       "wbo_" + string(mode),
				Mode:       mode,
				Properties: []chem.Property{chem.WibergBonds},
			},
		)
	}
	r, err := NewRegistry(specs...)
	if err != nil {
		panic(err) //the built-in specs are valid by construction
	}
	return r
}
