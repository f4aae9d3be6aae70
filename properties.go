/*
 * properties.go, part of deltachem.
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
	"encoding/json"
	"fmt"
)

// Property identifies one of the quantum-mechanical properties this library
// can predict. Energies are in Hartree, the dipole moment magnitude in Debye.
type Property string

const (
	//EForm is the formation energy, i.e. the total energy minus the sum of
	//the atomic reference energies.
	EForm Property = "E_form"
	//EHomo is the energy of the highest occupied molecular orbital.
	EHomo Property = "E_homo"
	//ELumo is the energy of the lowest unoccupied molecular orbital.
	ELumo Property = "E_lumo"
	//EGap is the HOMO-LUMO gap.
	EGap Property = "E_gap"
	//DipoleMoment is the magnitude of the molecular dipole moment, in Debye.
	DipoleMoment Property = "dipole"
	//MullikenCharges are the per-atom partial charges.
	MullikenCharges Property = "charges"
	//WibergBonds are the per-bond Wiberg bond orders.
	WibergBonds Property = "wbo"
)

// AllProperties returns every Property this library knows about, in a fixed
// order. The returned slice is owned by the caller.
func AllProperties() []Property {
	return []Property{EForm, EHomo, ELumo, EGap, DipoleMoment, MullikenCharges, WibergBonds}
}

// Valid reports whether p is one of the recognized property keys.
func (p Property) Valid() bool {
	for _, q := range AllProperties() {
		if p == q {
			return true
		}
	}
	return false
}

// Atomwise reports whether p is a per-atom vector property.
func (p Property) Atomwise() bool { return p == MullikenCharges }

// Bondwise reports whether p is a per-bond vector property.
func (p Property) Bondwise() bool { return p == WibergBonds }

// Scalar reports whether p is a single per-molecule scalar.
func (p Property) Scalar() bool { return !p.Atomwise() && !p.Bondwise() }

// Value is a property value for one molecule: either a scalar, a vector
// (per-atom or per-bond), or the failure sentinel. The zero Value is the
// failure sentinel, which marks "no result" for a molecule/property pair
// as opposed to a valid zero.
type Value struct {
	scalar float64
	vector []float64
	ok     bool
}

// Failure is the failure sentinel.
var Failure = Value{}

// NewScalar returns a valid scalar Value.
func NewScalar(v float64) Value { return Value{scalar: v, ok: true} }

// NewVector returns a valid vector Value. The slice is not copied.
func NewVector(v []float64) Value { return Value{vector: v, ok: true} }

// OK reports whether v holds a delivered value, as opposed to the
// failure sentinel.
func (v Value) OK() bool { return v.ok }

// IsVector reports whether v holds a vector.
func (v Value) IsVector() bool { return v.ok && v.vector != nil }

// Float returns the scalar held by v. It panics on the failure sentinel
// or on a vector Value.
func (v Value) Float() float64 {
	if !v.ok || v.vector != nil {
		panic("deltachem: Value.Float called on a non-scalar value")
	}
	return v.scalar
}

// Floats returns the vector held by v. It panics on the failure sentinel
// or on a scalar Value.
func (v Value) Floats() []float64 {
	if !v.IsVector() {
		panic("deltachem: Value.Floats called on a non-vector value")
	}
	return v.vector
}

// MarshalJSON encodes the failure sentinel as null, scalars as numbers
// and vectors as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.ok {
		return []byte("null"), nil
	}
	if v.vector != nil {
		return json.Marshal(v.vector)
	}
	return json.Marshal(v.scalar)
}

// UnmarshalJSON is the inverse of MarshalJSON.
func (v *Value) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*v = Failure
		return nil
	}
	var s float64
	if err := json.Unmarshal(b, &s); err == nil {
		*v = NewScalar(s)
		return nil
	}
	var vec []float64
	if err := json.Unmarshal(b, &vec); err != nil {
		return fmt.Errorf("deltachem: can't unmarshal %q into a Value", string(b))
	}
	*v = NewVector(vec)
	return nil
}

// Result maps properties to their values for a single molecule.
type Result map[Property]Value

// BatchResult maps each requested property to an ordered sequence of
// per-molecule values, index-aligned with the input batch. Every requested
// property has an entry for every input molecule, with the failure sentinel
// standing in for molecules that failed at any stage.
type BatchResult map[Property][]Value
