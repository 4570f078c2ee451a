/*
 * atoms_test.go, part of bbtab.
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
	"math/rand"
	"testing"
)

//rec builds a record with the raw coordinate text derived from nothing in
//particular; the catalog only cares about the identifier.
func rec(name, chain string, resid, frame int, x, y, z string) *Record {
	r := &Record{Atom: AtomID{Chain: chain, ResID: resid, Name: name}, Frame: frame}
	r.XS, r.YS, r.ZS = x, y, z
	return r
}

func TestCatalogOrder(Te *testing.T) {
	recs := []*Record{
		rec("N", "A", 10, 1, "1", "2", "3"),
		rec("CA", "A", 2, 1, "4", "5", "6"),
		rec("C", "B", 1, 1, "7", "8", "9"),
		rec("CA", "A", 10, 1, "1", "1", "1"),
		rec("C", "A", 2, 1, "2", "2", "2"),
	}
	cat, err := BuildCatalog(recs)
	if err != nil {
		Te.Fatal(err)
	}
	want := []string{"A_2_C", "A_2_CA", "A_10_CA", "A_10_N", "B_1_C"}
	if len(cat) != len(want) {
		Te.Fatalf("catalog has %d atoms, want %d", len(cat), len(want))
	}
	for i, v := range cat {
		if v.String() != want[i] {
			Te.Errorf("catalog[%d] = %s, want %s", i, v, want[i])
		}
	}
}

//Residue 10 must sort after residue 9, which a plain textual sort of the
//rendered identifier would get wrong.
func TestCatalogNumericResidues(Te *testing.T) {
	recs := []*Record{
		rec("CA", "A", 10, 1, "0", "0", "0"),
		rec("CA", "A", 9, 1, "0", "0", "0"),
	}
	cat, err := BuildCatalog(recs)
	if err != nil {
		Te.Fatal(err)
	}
	if cat[0].ResID != 9 || cat[1].ResID != 10 {
		Te.Errorf("residues sorted as %v", cat)
	}
}

func TestCatalogDeduplicates(Te *testing.T) {
	recs := []*Record{
		rec("CA", "A", 1, 1, "0", "0", "0"),
		rec("CA", "A", 1, 2, "1", "1", "1"),
		rec("CA", "A", 1, 3, "2", "2", "2"),
	}
	cat, err := BuildCatalog(recs)
	if err != nil {
		Te.Fatal(err)
	}
	if len(cat) != 1 {
		Te.Errorf("catalog has %d atoms, want 1", len(cat))
	}
}

//Shuffling the arrival order of the records must not change the catalog.
func TestCatalogDeterminism(Te *testing.T) {
	var recs []*Record
	for res := 1; res <= 30; res++ {
		for _, name := range []string{"N", "CA", "C"} {
			recs = append(recs, rec(name, "A", res, 1, "0", "0", "0"))
		}
	}
	ref, err := BuildCatalog(recs)
	if err != nil {
		Te.Fatal(err)
	}
	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		rng.Shuffle(len(recs), func(i, j int) { recs[i], recs[j] = recs[j], recs[i] })
		cat, err := BuildCatalog(recs)
		if err != nil {
			Te.Fatal(err)
		}
		for i := range cat {
			if cat[i] != ref[i] {
				Te.Fatalf("trial %d: catalog[%d] = %s, want %s", trial, i, cat[i], ref[i])
			}
		}
	}
}

func TestEmptyCatalog(Te *testing.T) {
	_, err := BuildCatalog(nil)
	if err == nil {
		Te.Fatal("expected an error for an empty stream")
	}
	if _, ok := err.(*EmptyCatalogError); !ok {
		Te.Errorf("got %T, want *EmptyCatalogError", err)
	}
}
