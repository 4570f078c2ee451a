/*
 * table.go, part of bbtab.
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
	"bufio"
	"fmt"
	"io"
	"strings"
)

//Header returns the header fields of a table with the given catalog: the
//literal "Frame" followed by the -X, -Y and -Z columns of each atom, in
//catalog order. Data columns are emitted in exactly the same order, so a
//header suffix and its column can never disagree.
func Header(cat Catalog) []string {
	h := make([]string, 0, 3*len(cat)+1)
	h = append(h, "Frame")
	for _, at := range cat {
		h = append(h, at.String()+"-X", at.String()+"-Y", at.String()+"-Z")
	}
	return h
}

//Row returns the fields of the data row for one frame: the frame number
//prefixed with the literal "Frame", then the X, Y and Z of each catalog atom
//in catalog order. The coordinate fields are the exact text the converter
//printed. A catalog atom with no coordinates in the frame yields a
//MissingCoordinateError naming the pair.
func Row(ix *FrameIndex, cat Catalog, frame int) ([]string, error) {
	row := make([]string, 0, 3*len(cat)+1)
	row = append(row, fmt.Sprintf("Frame%d", frame))
	for _, at := range cat {
		r, ok := ix.Coord(frame, at)
		if !ok {
			return nil, &MissingCoordinateError{Frame: frame, Atom: at, deco: []string{"Row"}}
		}
		row = append(row, r.XS, r.YS, r.ZS)
	}
	return row, nil
}

//WriteTable assembles the table for frames start through end, inclusive and
//ascending, and writes it to w: the header line first, then one line per
//frame. Fields are joined by a single space, lines end in a single newline,
//and each row is written as soon as it is assembled, so no more than one row
//is ever held in memory. Any missing (frame, atom) pair aborts the write.
func WriteTable(w io.Writer, cat Catalog, ix *FrameIndex, start, end int) error {
	if len(cat) == 0 {
		return &EmptyCatalogError{deco: []string{"WriteTable"}}
	}
	if start < 1 || end < start {
		return fmt.Errorf("bad frame range %d-%d", start, end)
	}
	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString(strings.Join(Header(cat), " ") + "\n"); err != nil {
		return err
	}
	for frame := start; frame <= end; frame++ {
		row, err := Row(ix, cat, frame)
		if err != nil {
			return errDecorate(err, "WriteTable")
		}
		if _, err := bw.WriteString(strings.Join(row, " ") + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
