/*
 * index.go, part of bbtab.
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
	"gonum.org/v1/gonum/mat"
)

//frameAtom is the lookup key of a FrameIndex.
type frameAtom struct {
	frame int
	atom  AtomID
}

//FrameIndex maps every (frame, atom) pair of a raw stream to its coordinate
//record. It is filled in a single pass over the stream and makes no
//assumption about the order in which the converter emitted the records:
//frame-major, atom-major and shuffled input all index the same.
type FrameIndex struct {
	recs   map[frameAtom]*Record
	frames int //highest frame number seen
}

func NewFrameIndex() *FrameIndex {
	return &FrameIndex{recs: make(map[frameAtom]*Record)}
}

//Add indexes one record. A record that repeats an already indexed
//(frame, atom) pair with the exact same coordinate text is ignored, so
//feeding the same stream twice is harmless. If the coordinates differ the
//input is ambiguous and Add returns a DuplicateRecordError naming the pair.
func (ix *FrameIndex) Add(rec *Record) error {
	k := frameAtom{rec.Frame, rec.Atom}
	if old, ok := ix.recs[k]; ok {
		if old.sameCoords(rec) {
			return nil
		}
		return &DuplicateRecordError{Frame: rec.Frame, Atom: rec.Atom, deco: []string{"Add"}}
	}
	ix.recs[k] = rec
	if rec.Frame > ix.frames {
		ix.frames = rec.Frame
	}
	return nil
}

//Coord returns the record for one (frame, atom) pair, or false if the pair
//never appeared in the stream.
func (ix *FrameIndex) Coord(frame int, atom AtomID) (*Record, bool) {
	r, ok := ix.recs[frameAtom{frame, atom}]
	return r, ok
}

//Frames returns the highest frame number seen so far.
func (ix *FrameIndex) Frames() int {
	return ix.frames
}

//Len returns the number of (frame, atom) pairs indexed.
func (ix *FrameIndex) Len() int {
	return len(ix.recs)
}

//FrameDense returns the coordinates of one frame as a len(cat)x3 Dense
//matrix, rows in catalog order. It returns a MissingCoordinateError if any
//atom of the catalog has no coordinates in the frame.
func (ix *FrameIndex) FrameDense(frame int, cat Catalog) (*mat.Dense, error) {
	coords := mat.NewDense(len(cat), 3, nil)
	for i, at := range cat {
		r, ok := ix.Coord(frame, at)
		if !ok {
			return nil, &MissingCoordinateError{Frame: frame, Atom: at, deco: []string{"FrameDense"}}
		}
		coords.Set(i, 0, r.X)
		coords.Set(i, 1, r.Y)
		coords.Set(i, 2, r.Z)
	}
	return coords, nil
}

//IndexRecords indexes a full record slice in one call.
func IndexRecords(recs []*Record) (*FrameIndex, error) {
	ix := NewFrameIndex()
	for _, v := range recs {
		if err := ix.Add(v); err != nil {
			return nil, errDecorate(err, "IndexRecords")
		}
	}
	return ix, nil
}
