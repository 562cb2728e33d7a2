// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "github.com/go-uca/gocollate/internal/colltab"

// Entry is one record of the temporary table (spec §4C): a code-point
// sequence together with the collation elements currently assigned to
// it. Entries are kept in an order-preserving sequence container rather
// than the prev/next-linked records of the teacher's own (stubbed)
// builder, since this engine needs genuine positional insert and
// lower/upper_bound search, not just append-time bookkeeping.
type Entry struct {
	CPs []rune
	CEs []colltab.CE
}

func cloneCEs(ces []colltab.CE) []colltab.CE {
	return append([]colltab.CE(nil), ces...)
}

func cloneCPs(cps []rune) []rune {
	return append([]rune(nil), cps...)
}

// lessCEs implements the "less" relation on CE sequences named in spec
// §4D: lexicographic order at quaternary strength, forward L2, case
// bits retained. It compares levels directly instead of first building
// a byte-encoded sort key, since the temp table only ever needs a
// total order, not a serialized representation.
func lessCEs(a, b []colltab.CE) bool {
	if c := compareLevel(a, b, colltab.Primary); c != 0 {
		return c < 0
	}
	if c := compareLevel(a, b, colltab.Secondary); c != 0 {
		return c < 0
	}
	if c := compareTertiary(a, b); c != 0 {
		return c < 0
	}
	if c := compareLevel(a, b, colltab.Quaternary); c != 0 {
		return c < 0
	}
	return len(a) < len(b)
}

func compareLevel(a, b []colltab.CE, l colltab.Level) int {
	ai, bi := 0, 0
	for {
		var av, bv uint32
		for ai < len(a) {
			if w := a[ai].At(l); w != 0 {
				av = w
				break
			}
			ai++
		}
		for bi < len(b) {
			if w := b[bi].At(l); w != 0 {
				bv = w
				break
			}
			bi++
		}
		if av == 0 && bv == 0 {
			return 0
		}
		if av != bv {
			if av < bv {
				return -1
			}
			return 1
		}
		ai++
		bi++
	}
}

// compareTertiary compares at the tertiary level with case bits
// retained as the high-order part of the comparison, matching the
// byte layout mergeCaseTertiary would produce (case bits are the more
// significant half of the packed byte).
func compareTertiary(a, b []colltab.CE) int {
	ai, bi := 0, 0
	for {
		var av, bv uint16
		var ac, bc colltab.CaseBits
		for ai < len(a) {
			if t := a[ai].Tertiary(); t != 0 {
				av, ac = t, a[ai].CaseBits()
				break
			}
			ai++
		}
		for bi < len(b) {
			if t := b[bi].Tertiary(); t != 0 {
				bv, bc = t, b[bi].CaseBits()
				break
			}
			bi++
		}
		if av == 0 && bv == 0 {
			return 0
		}
		aw := uint32(ac)<<16 | uint32(av)
		bw := uint32(bc)<<16 | uint32(bv)
		if aw != bw {
			if aw < bw {
				return -1
			}
			return 1
		}
		ai++
		bi++
	}
}

// strengthBoundary returns the index one past the last CE in ces whose
// own strength reaches down to s, i.e. the truncation point spec
// §4F.1 step 2 and step 5 both describe as "the last CE at strength >=
// S". Elem.Strength reports a CE's most significant nonzero level, and
// Level numbers run from Primary=0 (most significant) to
// Identical=4 (least), so "at least as significant as s" is
// Strength() <= s, not >=: an ordinary letter CE has Strength() ==
// Primary regardless of what its secondary or tertiary weights are,
// so a tertiary-strength relation against a plain-letter anchor must
// still see that CE as qualifying. It returns 0 if no such CE exists,
// which happens only when every CE in ces is less significant than s (e.g. a
// combining-mark-only anchor under a primary-strength relation).
func strengthBoundary(ces []colltab.CE, s colltab.Level) int {
	for i := len(ces) - 1; i >= 0; i-- {
		if ces[i].Strength() <= s {
			return i + 1
		}
	}
	return 0
}
