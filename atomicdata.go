/*
 * atomicdata.go, part of deltachem.
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

//Unit conversion factors.
const (
	//EV2Hartree converts electronvolt to Hartree.
	EV2Hartree = 0.0367492929
	//AU2Debye converts an atomic-unit dipole moment to Debye.
	AU2Debye = 2.5417464519
	//H2Kcal converts Hartree to kcal/mol.
	H2Kcal = 627.509
)

//A map for assigning atomic numbers to element symbols.
//Just the elements found in drug-like molecules are present.
var symbol2Z = map[string]int{
	"H": 1, "B": 5, "C": 6, "N": 7, "O": 8, "F": 9,
	"Si": 14, "P": 15, "S": 16, "Cl": 17,
	"Br": 35, "I": 53,
}

var z2Symbol = map[int]string{}

func init() {
	for s, z := range symbol2Z {
		z2Symbol[z] = s
	}
}

//SymbolToZ returns the atomic number for an element symbol, or 0 if the
//element is not supported.
func SymbolToZ(symbol string) int { return symbol2Z[symbol] }

//ZToSymbol returns the element symbol for an atomic number, or the empty
//string if the element is not supported.
func ZToSymbol(z int) string { return z2Symbol[z] }

//A map for assigning mass to elements.
var symbolMass = map[string]float64{
	"H":  1.008,
	"B":  10.81,
	"C":  12.01,
	"N":  14.01,
	"O":  16.00,
	"F":  18.998,
	"Si": 28.08,
	"P":  30.97,
	"S":  32.06,
	"Cl": 35.45,
	"Br": 79.904,
	"I":  126.90,
}

//Mass returns the atomic mass of an element, or 0 if unknown.
func Mass(symbol string) float64 { return symbolMass[symbol] }

//A map for assigning covalent radii to elements, in Angstrom.
//Values from Cordero et al., 2008 (DOI:10.1039/B801115J).
var symbolCovrad = map[string]float64{
	"H":  0.31,
	"B":  0.84,
	"C":  0.76, //the sp3 radius
	"N":  0.71,
	"O":  0.66,
	"F":  0.57,
	"Si": 1.11,
	"P":  1.07,
	"S":  1.05,
	"Cl": 1.02,
	"Br": 1.20,
	"I":  1.39,
}

//GFN2-xTB atomic reference energies, in Hartree. The formation energy of
//a molecule is its total GFN2-xTB energy minus the sum of these values
//over its atoms.
var atomEnergiesXTB = map[string]float64{
	"H":  -0.393482763936,
	"B":  -0.952436614164,
	"C":  -1.793296371365,
	"N":  -2.605824161279,
	"O":  -3.767606950376,
	"F":  -4.619339964238,
	"Si": -1.569609938455,
	"P":  -2.377807088085,
	"S":  -3.146456870402,
	"Cl": -4.482525134961,
	"Br": -4.048339371234,
	"I":  -3.779630263390,
}
