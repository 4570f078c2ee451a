/*
 * crd.go, part of bbtab.
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

//Package crd reads the raw per-atom, per-frame coordinate dump produced by
//the external trajectory converter.
//
//Format contract with the converter, documented here and nowhere else: the
//dump is plain text, one record per line, seven whitespace-separated fields
//
//	name chain resid frame x y z
//
//where name is the atom name (C, CA or N for a backbone selection), chain
//the chain identifier, resid the residue number, frame the 1-based frame
//number, and x, y, z the coordinates as the converter printed them. Which
//atoms appear at all is the converter's selection; this package does not
//filter. Blank lines and lines starting with # are skipped. A dump whose
//name ends in .gz, .zst or .zz is transparently decompressed with gzip,
//zstd or deflate.
package crd

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/bbtab/bbtab"
)

//Reader reads one coordinate dump sequentially. Get one from New, call Next
//until it returns a bbtab.LastFrameError, then Close.
type Reader struct {
	f        *os.File
	z        io.ReadCloser //nil when the dump is not compressed
	h        *bufio.Reader
	filename string
	line     int //lines read so far, for error reporting
	readable bool
}

//zstd.Decoder doesn't implement io.ReadCloser, as its Close returns
//nothing, so we wrap it.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//New opens the named coordinate dump for reading, decompressing it on the
//fly if the name ends in a compression extension.
func New(name string) (*Reader, error) {
	R := new(Reader)
	R.filename = name
	var err error
	R.f, err = os.Open(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	switch {
	case strings.HasSuffix(name, ".gz"):
		var z io.ReadCloser
		z, err = gzip.NewReader(bufio.NewReader(R.f))
		if err != nil {
			R.f.Close()
			return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
		}
		R.z = z
		R.h = bufio.NewReader(z)
	case strings.HasSuffix(name, ".zst"):
		var d *zstd.Decoder
		d, err = zstd.NewReader(bufio.NewReader(R.f))
		if err != nil {
			R.f.Close()
			return nil, Error{WrongFormat + ": " + err.Error(), name, []string{"New"}, true}
		}
		R.z = zstdql{d.Close, d}
		R.h = bufio.NewReader(d)
	case strings.HasSuffix(name, ".zz"):
		R.z = flate.NewReader(bufio.NewReader(R.f))
		R.h = bufio.NewReader(R.z)
	default:
		R.h = bufio.NewReader(R.f)
	}
	R.readable = true
	return R, nil
}

//Readable returns true if the Reader is ready to be read from. It doesn't
//guarantee that there is anything left to read.
func (R *Reader) Readable() bool {
	return R.readable
}

//Next returns the next coordinate record of the dump. When the dump is
//exhausted it closes the Reader and returns an error implementing
//bbtab.LastFrameError, which signals normal termination, not a problem.
func (R *Reader) Next() (*bbtab.Record, error) {
	if !R.readable {
		return nil, Error{StreamUnIni, R.filename, []string{"Next"}, true}
	}
	for {
		str, err := R.h.ReadString('\n')
		if err != nil && err != io.EOF {
			return nil, Error{err.Error(), R.filename, []string{"Next"}, true}
		}
		if err == io.EOF && strings.TrimSpace(str) == "" {
			R.Close()
			return nil, newlastFrameError(R.filename, "Next")
		}
		R.line++
		if s := strings.TrimSpace(str); s == "" || strings.HasPrefix(s, "#") {
			if err == io.EOF {
				R.Close()
				return nil, newlastFrameError(R.filename, "Next")
			}
			continue
		}
		rec, perr := parseRecord(str)
		if perr != nil {
			return nil, Error{fmt.Sprintf("line %d: %s", R.line, perr.Error()), R.filename, []string{"Next"}, true}
		}
		return rec, nil
	}
}

//ReadAll reads every remaining record of the dump and closes the Reader.
func (R *Reader) ReadAll() ([]*bbtab.Record, error) {
	var recs []*bbtab.Record
	for {
		rec, err := R.Next()
		if err != nil {
			if _, ok := err.(bbtab.LastFrameError); ok {
				return recs, nil
			}
			return nil, errDecorate(err, "ReadAll")
		}
		recs = append(recs, rec)
	}
}

//Close closes the Reader and marks it as unreadable.
func (R *Reader) Close() {
	if !R.readable {
		return
	}
	if R.z != nil {
		R.z.Close()
	}
	R.f.Close()
	R.readable = false
}

//parseRecord parses one record line into a bbtab.Record. The coordinate
//fields are kept verbatim next to their parsed values.
func parseRecord(line string) (*bbtab.Record, error) {
	f := strings.Fields(line)
	if len(f) != 7 {
		return nil, fmt.Errorf("%d fields, want 7 (name chain resid frame x y z)", len(f))
	}
	rec := new(bbtab.Record)
	rec.Atom.Name = f[0]
	rec.Atom.Chain = f[1]
	var err error
	rec.Atom.ResID, err = strconv.Atoi(f[2])
	if err != nil {
		return nil, fmt.Errorf("can't parse residue number %q: %s", f[2], err.Error())
	}
	rec.Frame, err = strconv.Atoi(f[3])
	if err != nil {
		return nil, fmt.Errorf("can't parse frame number %q: %s", f[3], err.Error())
	}
	if rec.Frame < 1 {
		return nil, fmt.Errorf("frame number %d, frames are numbered from 1", rec.Frame)
	}
	coords := [3]*float64{&rec.X, &rec.Y, &rec.Z}
	raw := [3]*string{&rec.XS, &rec.YS, &rec.ZS}
	for i, v := range f[4:7] {
		*coords[i], err = strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("can't parse coordinate %q: %s", v, err.Error())
		}
		*raw[i] = v
	}
	return rec, nil
}

//Errors

//errDecorate asserts that err implements bbtab.Error and decorates it with
//the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(bbtab.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for coordinate-dump errors. It fulfills
//bbtab.Error and bbtab.StreamError.
type Error struct {
	message  string
	filename string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("coordinate dump %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error. Even though the receiver is
//not a pointer, deco is a slice, hence a pointer itself, so the added
//information survives the call.
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the dump the failing Reader was associated to.
func (err Error) FileName() string { return err.filename }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	StreamUnIni  = "Reader uninitialized or already closed"
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the coordinate dump"
)

//lastFrameError implements bbtab.LastFrameError.
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
