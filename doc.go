/*
 * doc.go, part of deltachem.
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

//Package deltachem provides molecule structures, atomic data and file I/O
//for predicting quantum-mechanical properties of drug-like molecules with
//delta-learning: a cheap semi-empirical baseline plus a learned correction.
//The orchestration of baseline runs and learned models lives in the calc
//subpackage; this package holds the data model shared by every stage.
package deltachem
