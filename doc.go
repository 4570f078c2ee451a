/*
 * doc.go, part of bbtab.
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

/*
Package bbtab turns per-atom, per-frame backbone coordinates extracted from a
molecular dynamics trajectory into one wide table: one row per frame, three
columns (X, Y, Z) per tracked atom, in a deterministic atom order.

	**bbtab capabilities**

    Builds a deduplicated, deterministically ordered catalog of the tracked
	atoms found in a raw coordinate stream. The catalog order defines the
	column order of every table produced from the same input, so results
	from repeated runs are diffable.

    Indexes the raw stream by (frame, atom) in a single pass, regardless of
	the order in which the upstream converter emitted the records.

    Assembles one row per frame over a configured frame range, refusing to
	produce a table when any (frame, atom) pair is missing or ambiguous.
	A missing pair would silently shift every column after it, so it is
	treated as a hard failure, never as a warning.

    Writes the finished table atomically: the canonical output name only
	ever names a complete table.

The raw stream itself is read by the bbtab/traj/crd subpackage; run
configuration lives in bbtab/cfg and the command line interface in
cmd/bbtab.
*/
package bbtab
