/*
 * pipeline.go, part of bbtab.
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

import (
	"compress/gzip"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//RecordSource is the interface for anything that can hand out raw
//coordinate records one at a time, normally a crd.Reader. Next returns an
//error implementing LastFrameError when the stream is exhausted.
type RecordSource interface {
	Next() (*Record, error)
}

//State is the stage a Pipeline is in.
type State string

const (
	StateInit       State = "INIT"
	StateCatalog    State = "CATALOG_BUILT"
	StateIndexed    State = "INDEXED"
	StateAssembling State = "ASSEMBLING"
	StateDone       State = "DONE"
	StateFailed     State = "FAILED"
)

//Pipeline builds one table from one raw coordinate stream: it catalogs the
//atoms, indexes the stream by (frame, atom), assembles one row per frame of
//the configured range and writes the result to Out. A Pipeline is good for
//exactly one Run; separate runs writing to separate paths need no
//coordination at all.
type Pipeline struct {
	Start int    //first frame of the table, normally 1
	End   int    //last frame, inclusive
	Out   string //canonical output path; .gz or .zst compress the table

	//Quiet turns off the progress lines written to the standard logger.
	Quiet bool

	state  State
	reason error

	cat Catalog
	ix  *FrameIndex
}

//NewPipeline returns a Pipeline for the given frame range writing to out.
func NewPipeline(start, end int, out string) *Pipeline {
	return &Pipeline{Start: start, End: end, Out: out, state: StateInit}
}

//State returns the stage the Pipeline is in, StateDone or StateFailed once
//Run has returned.
func (P *Pipeline) State() State {
	return P.state
}

//Reason returns the error that moved the Pipeline to StateFailed, or nil.
func (P *Pipeline) Reason() error {
	return P.reason
}

//Catalog returns the atom catalog of the run, or nil before the catalog has
//been built.
func (P *Pipeline) Catalog() Catalog {
	return P.cat
}

//Index returns the (frame, atom) index of the run, or nil before the stream
//has been indexed. Together with Catalog it gives access to the per-frame
//coordinate matrices after a run.
func (P *Pipeline) Index() *FrameIndex {
	return P.ix
}

//fail records the error and the terminal state, and passes the error up
//verbatim. None of the pipeline errors is retried: the input is a static
//file, so reading it again cannot end differently.
func (P *Pipeline) fail(err error) error {
	P.state = StateFailed
	P.reason = err
	return err
}

//Run drains src, builds the table and writes it to P.Out. The table is
//written to a temporary file in the destination directory and renamed to
//P.Out only once it is complete, so a file at the canonical path is always
//a whole table, never the leftovers of a failed run.
func (P *Pipeline) Run(src RecordSource) error {
	if P.state != StateInit {
		return fmt.Errorf("pipeline already ran (state %s)", P.state)
	}
	if P.Start < 1 || P.End < P.Start {
		return P.fail(fmt.Errorf("bad frame range %d-%d", P.Start, P.End))
	}
	cb := NewCatalogBuilder()
	ix := NewFrameIndex()
	for {
		rec, err := src.Next()
		if err != nil {
			if _, ok := err.(LastFrameError); ok {
				break
			}
			return P.fail(err)
		}
		cb.Add(rec)
		if err := ix.Add(rec); err != nil {
			return P.fail(err)
		}
	}
	cat, err := cb.Catalog()
	if err != nil {
		return P.fail(errDecorate(err, "Run"))
	}
	P.cat = cat
	P.state = StateCatalog
	P.ix = ix
	P.state = StateIndexed
	if !P.Quiet {
		log.Printf("indexed %d records, %d tracked atoms, %d frames seen", ix.Len(), len(cat), ix.Frames())
	}

	P.state = StateAssembling
	dir := filepath.Dir(P.Out)
	tmp, err := os.CreateTemp(dir, filepath.Base(P.Out)+".tmp*")
	if err != nil {
		return P.fail(err)
	}
	w, closer, err := outWriter(tmp, P.Out)
	if err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return P.fail(err)
	}
	if err := WriteTable(w, cat, ix, P.Start, P.End); err != nil {
		closer()
		tmp.Close()
		os.Remove(tmp.Name())
		return P.fail(err)
	}
	if err := closer(); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return P.fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return P.fail(err)
	}
	if err := os.Rename(tmp.Name(), P.Out); err != nil {
		os.Remove(tmp.Name())
		return P.fail(err)
	}
	P.state = StateDone
	if !P.Quiet {
		log.Printf("wrote %s: %d frames, %d columns", P.Out, P.End-P.Start+1, 3*len(cat)+1)
	}
	return nil
}

//outWriter wraps f in the compression codec the output name asks for, if
//any, and returns the writer plus a function that finishes the codec. The
//file itself is left open for the caller to close.
func outWriter(f *os.File, name string) (io.Writer, func() error, error) {
	switch {
	case strings.HasSuffix(name, ".gz"):
		z := gzip.NewWriter(f)
		return z, z.Close, nil
	case strings.HasSuffix(name, ".zst"):
		z, err := zstd.NewWriter(f)
		if err != nil {
			return nil, nil, err
		}
		return z, z.Close, nil
	}
	return f, func() error { return nil }, nil
}

//OutName derives the canonical output file name for one (system, length)
//pair, e.g. villin_100ns_final_formatted.dat. compress may be empty, "gz"
//or "zst".
func OutName(system, length, compress string) string {
	name := fmt.Sprintf("%s_%s_final_formatted.dat", system, length)
	if compress != "" {
		name += "." + compress
	}
	return name
}
