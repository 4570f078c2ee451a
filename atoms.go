/*
 * atoms.go, part of bbtab.
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
	"fmt"
	"sort"
)

//AtomID labels one tracked atom across every frame of a trajectory. Two
//records carrying the same three fields always refer to the same physical
//atom; comparison is exact, never fuzzy.
type AtomID struct {
	Chain string //chain identifier as the converter printed it
	ResID int    //residue number within the chain
	Name  string //atom name (C, CA, N for a backbone selection)
}

//String returns the rendering of the identifier used in table headers and
//in error messages, chain, residue and name joined by underscores.
func (A AtomID) String() string {
	return fmt.Sprintf("%s_%d_%s", A.Chain, A.ResID, A.Name)
}

//less orders identifiers by the composite (chain, residue number, name) key.
//The residue number is compared numerically, not as text, so residue 10
//sorts after residue 9.
func (A AtomID) less(B AtomID) bool {
	if A.Chain != B.Chain {
		return A.Chain < B.Chain
	}
	if A.ResID != B.ResID {
		return A.ResID < B.ResID
	}
	return A.Name < B.Name
}

//Record is one raw coordinate record, one atom in one frame, as produced by
//the external trajectory converter. The coordinates are kept both parsed and
//as the exact text the converter printed, so tables reproduce the upstream
//representation without any reformatting. A Record is never modified after
//it has been read.
type Record struct {
	Atom  AtomID
	Frame int //1-based frame number
	X     float64
	Y     float64
	Z     float64
	//The textual fields the floats above were parsed from.
	XS string
	YS string
	ZS string
}

//sameCoords returns true if both records carry the exact same coordinate
//text. Two prints of the same number (say, 1.5 and 1.50) do not count as the
//same coordinates: a mismatch there means the input was produced by more
//than one extraction run, which is reason enough to distrust it.
func (R *Record) sameCoords(S *Record) bool {
	return R.XS == S.XS && R.YS == S.YS && R.ZS == S.ZS
}

//Catalog is the deduplicated sequence of every distinct atom seen in a raw
//stream, sorted by the (chain, residue number, name) composite key. It
//defines the column order of every table built from the stream.
type Catalog []AtomID

//CatalogBuilder accumulates atom identifiers one record at a time. The zero
//value is not usable, get one from NewCatalogBuilder.
type CatalogBuilder struct {
	seen map[AtomID]bool
}

func NewCatalogBuilder() *CatalogBuilder {
	return &CatalogBuilder{seen: make(map[AtomID]bool)}
}

//Add registers the atom of one record. Duplicates are simply ignored.
func (C *CatalogBuilder) Add(rec *Record) {
	C.seen[rec.Atom] = true
}

//Catalog returns the sorted catalog of every atom added so far. The sort is
//an explicit one on the composite key, so the map iteration order can never
//leak into the column order. It returns an EmptyCatalogError if no atom was
//ever added, as a table with zero columns means the upstream selection
//matched nothing.
func (C *CatalogBuilder) Catalog() (Catalog, error) {
	if len(C.seen) == 0 {
		return nil, new(EmptyCatalogError)
	}
	cat := make(Catalog, 0, len(C.seen))
	for at := range C.seen {
		cat = append(cat, at)
	}
	sort.Slice(cat, func(i, j int) bool { return cat[i].less(cat[j]) })
	return cat, nil
}

//BuildCatalog builds the catalog for a full record slice in one call.
func BuildCatalog(recs []*Record) (Catalog, error) {
	b := NewCatalogBuilder()
	for _, v := range recs {
		b.Add(v)
	}
	cat, err := b.Catalog()
	if err != nil {
		return nil, errDecorate(err, "BuildCatalog")
	}
	return cat, nil
}
