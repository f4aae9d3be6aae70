/*
 * errors.go, part of deltachem.
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

import "fmt"

// Error is the interface for errors that all packages in this library implement.
// The Decorate method allows adding information to the error as it is passed up
// the call stack, without changing its type or wrapping it around something else.
// Each element of the decoration slice should be a function name in the calling
// stack, optionally followed by extra information: "FunctionName: extra info".
type Error interface {
	error
	Decorate(string) []string
}

// CError is the concrete Error used by this package ("C" for "chem").
type CError struct {
	msg  string
	deco []string
}

func (err *CError) Error() string { return err.msg }

// Decorate adds the dec string to the decoration slice of the error,
// and returns the resulting slice. An empty dec only returns the slice.
func (err *CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// NewError builds a CError with a formatted message, in the style of fmt.Errorf.
func NewError(format string, a ...interface{}) *CError {
	return &CError{msg: fmt.Sprintf(format, a...)}
}

// errDecorate asserts that err implements Error and decorates it with the
// caller's name before returning it. Plain errors are promoted to *CError.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		err2 = &CError{msg: err.Error()}
	}
	err2.Decorate(caller)
	return err2
}

// PanicMsg is a message used for panics. It satisfies the error interface,
// but for recoverable errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNilMolecule     = PanicMsg("deltachem: nil molecule")
	ErrNotXx3Matrix    = PanicMsg("deltachem: coordinates should have 3 columns")
	ErrAtomOutOfRange  = PanicMsg("deltachem: requested atom out of range")
	ErrCoordsMismatch  = PanicMsg("deltachem: coordinates don't match the number of atoms")
	ErrUnknownProperty = PanicMsg("deltachem: unknown property key")
)
