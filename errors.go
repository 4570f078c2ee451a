/*
 * errors.go, part of bbtab.
 *
 * Copyright 2024 The bbtab developers
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

package bbtab

import "fmt"

//Error is the interface the errors of this library and its subpackages
//implement. The Decorate method adds information (normally the name of the
//function passing the error up) without changing the error's type, and
//returns the current decoration slice. Passing the empty string just reads
//the slice back.
type Error interface {
	error
	Decorate(string) []string
}

//StreamError is the interface for errors found while reading a raw
//coordinate stream. It carries the name of the offending file.
type StreamError interface {
	Error
	FileName() string
	Critical() bool
}

//LastFrameError is implemented by the harmless error a stream reader
//returns when the stream simply ended. Its extra method does nothing; it
//only exists so the normal termination can be told apart in a type switch.
type LastFrameError interface {
	StreamError
	NormalLastFrameTermination()
}

//errDecorate asserts that err implements Error and decorates it with the
//caller's name before returning it. Calling it with any other error is a
//bug, and panics.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//EmptyCatalogError means the raw stream contained no tracked atom at all:
//the upstream selection matched nothing, so there is no table to build.
type EmptyCatalogError struct {
	deco []string
}

func (E *EmptyCatalogError) Error() string {
	return "no tracked atoms found in the coordinate stream"
}

func (E *EmptyCatalogError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//DuplicateRecordError means the stream presented two different coordinate
//triples for the same (frame, atom) pair. That can only happen when the
//extraction was corrupted or run twice into the same file, so the input as a
//whole cannot be trusted.
type DuplicateRecordError struct {
	Frame int
	Atom  AtomID
	deco  []string
}

func (E *DuplicateRecordError) Error() string {
	return fmt.Sprintf("conflicting coordinates for atom %s in frame %d", E.Atom, E.Frame)
}

func (E *DuplicateRecordError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//MissingCoordinateError means a (frame, atom) pair required by the frame
//range and the catalog never appeared in the stream, i.e. the input is
//truncated or misaligned. Skipping the atom instead would shift every later
//column of that row, so this is always fatal.
type MissingCoordinateError struct {
	Frame int
	Atom  AtomID
	deco  []string
}

func (E *MissingCoordinateError) Error() string {
	return fmt.Sprintf("no coordinates for atom %s in frame %d", E.Atom, E.Frame)
}

func (E *MissingCoordinateError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}
