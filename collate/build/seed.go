// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"sync"

	"github.com/go-uca/gocollate/internal/colltab"
)

// seedEntry is one hand-curated default-table row: a code-point
// sequence and the weights assigned to it, expressed at the level of
// primary/secondary/tertiary/case rather than a raw Elem, for
// readability.
type seedEntry struct {
	cps       []rune
	primary   uint32
	secondary uint16
	tertiary  uint16
	caseBits  colltab.CaseBits
}

func simpleCE(primary uint32, secondary uint16, tertiary uint16, c colltab.CaseBits) colltab.CE {
	return colltab.CE{Elem: colltab.NewElem(primary, secondary, tertiary, c, 0)}
}

// seedGroups defines the reorder-group catalog for the default table:
// a small illustrative set (not the full DUCET script list), enough to
// exercise reorder and variable-weighting against real script
// categories. Lead bytes are assigned low, leaving the 0x07-0xFD range
// free for a fuller table and 0xFE reserved for implicit weights.
func seedGroups() []colltab.ReorderGroup {
	return []colltab.ReorderGroup{
		{Name: "punctuation", FirstPrimary: 0x02000000, LastPrimary: 0x03000000, Compressible: true, Simple: true},
		{Name: "digit", FirstPrimary: 0x03000000, LastPrimary: 0x04000000, Compressible: true, Simple: true},
		{Name: "latin", FirstPrimary: 0x04000000, LastPrimary: 0x05000000, Compressible: false, Simple: true},
		{Name: "thai", FirstPrimary: 0x05000000, LastPrimary: 0x06000000, Compressible: false, Simple: true},
		{Name: "bengali", FirstPrimary: 0x06000000, LastPrimary: 0x07000000, Compressible: false, Simple: true},
	}
}

// seedEntries is the default table's actual collation data: ASCII
// space and a handful of punctuation characters in the variable range,
// digits 0-9, the Latin letters with case pairs sharing a primary
// weight and split at the tertiary level, a German sharp s sorting
// after "z", two combining-accent entries (diaeresis and acute) that
// Latin-1 letters such as ä, ö and ć fall through to once NFD
// decomposes them to base letter + combining mark, one Thai code point
// and two Bengali vowel signs, so reorder groups exist for more than
// one script.
func seedEntries() []seedEntry {
	var out []seedEntry

	punct := []rune{' ', '-', ',', ';', ':', '!', '?', '.'}
	for i, r := range punct {
		out = append(out, seedEntry{[]rune{r}, 0x02000000 + uint32(i+1)*0x10000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone})
	}

	for d := rune('0'); d <= '9'; d++ {
		out = append(out, seedEntry{[]rune{d}, 0x03000000 + uint32(d-'0'+1)*0x10000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone})
	}

	for i, lo := 0, rune('a'); lo <= 'z'; i, lo = i+1, lo+1 {
		up := lo - ('a' - 'A')
		primary := 0x04000000 + uint32(i+1)*0x10000
		out = append(out, seedEntry{[]rune{lo}, primary, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseLower})
		out = append(out, seedEntry{[]rune{up}, primary, colltab.DefaultSecondary, colltab.DefaultTertiary + 4, colltab.CaseUpper})
	}

	// ß does not decompose under NFD; it sorts as its own letter, one
	// past "z", rather than as a doubled "s" (real DUCET tailorings
	// disagree on this too; German phonebook order expands it to "ss"
	// at a tailoring level, not in the default table).
	out = append(out, seedEntry{[]rune{'ß'}, 0x04000000 + 27*0x10000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone})

	// U+0308 COMBINING DIAERESIS is what ä and ö decompose to (as base
	// letter + this mark) under NFD; one ignorable-primary entry here
	// is what makes "ä" and "ö" collate correctly without the table
	// needing an entry for every precomposed letter+diaeresis pair.
	out = append(out, seedEntry{[]rune{'̈'}, 0, 0x25, colltab.DefaultTertiary, colltab.CaseNone})

	// U+0301 COMBINING ACUTE ACCENT, decomposition target of ć and
	// friends; a distinct secondary weight from the diaeresis keeps
	// the two marks distinguishable above the primary level.
	out = append(out, seedEntry{[]rune{'́'}, 0, 0x30, colltab.DefaultTertiary, colltab.CaseNone})

	// Thai SARA AE, U+0E41.
	out = append(out, seedEntry{[]rune{'แ'}, 0x05000000 + 1*0x10000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone})

	// Bengali vowel signs E and AA, U+09C7 and U+09BE; see
	// seedMultiCEEntries for the contraction they also participate in.
	out = append(out, seedEntry{[]rune{'ে'}, 0x06000000 + 1*0x10000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone})
	out = append(out, seedEntry{[]rune{'া'}, 0x06000000 + 2*0x10000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone})

	return out
}

// seedMultiCEEntries are trie entries whose CE range holds more than
// one element, or whose key is longer than one code point: a
// contraction ("ch", sorting between "c" and "d"), an expansion (Æ,
// sorting as if it were "ae"), and a second contraction (the Bengali
// vowel-sign pair ে+া) that exists specifically so a suppress event
// has a multi-code-point, script-appropriate contraction to remove
// (spec §4F.4); all are added directly to the pool in buildDefault
// since seedEntry only models the common one-key-one-CE case.
func seedMultiCEEntries() map[string][]colltab.CE {
	var cPrimary uint32 = 0x04000000 + 3*0x10000
	var aPrimary uint32 = 0x04000000 + 1*0x10000
	var ePrimary uint32 = 0x04000000 + 5*0x10000
	var bengaliContractionPrimary uint32 = 0x06000000 + 3*0x10000
	return map[string][]colltab.CE{
		"ch": {simpleCE(cPrimary+0x8000, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseLower)},
		"Æ": {
			simpleCE(aPrimary, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseUpper),
			simpleCE(ePrimary, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseUpper),
		},
		"ো": {simpleCE(bengaliContractionPrimary, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone)},
	}
}

// Default returns the module's small built-in collation table, built
// once and cached. It is deliberately not the full Unicode Default
// Collation Element Table: reproducing that multi-megabyte table
// requires either network access to the Unicode Character Database or
// a code generator consuming it, neither available here. What is built
// instead exercises every mechanism (contractions, expansions, the
// variable range, reorder groups, case-pair tertiary weights, a
// combining mark that only carries a secondary weight) a real
// DUCET-backed table would, at a scale small enough to hand-verify,
// plus the specific code points spec.md §8's worked examples name:
// ß, the diaeresis and acute accent combining marks, Thai SARA AE,
// and a Bengali vowel-sign contraction.
func Default() *colltab.Table {
	defaultOnce.Do(func() {
		defaultTable = buildDefault()
	})
	return defaultTable
}

var (
	defaultOnce  sync.Once
	defaultTable *colltab.Table
)

func buildDefault() *colltab.Table {
	t := colltab.NewTable()
	t.ReorderGroups = seedGroups()

	implicitCE := colltab.CE{Elem: colltab.NewElem(uint32(colltab.ImplicitLeadByte)<<24, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone, 0)}
	trailingCE := colltab.CE{Elem: colltab.NewElem(0xFFFFFFFF, colltab.DefaultSecondary, colltab.DefaultTertiary, colltab.CaseNone, 0)}
	t.Logical[colltab.LogFirstImplicit] = []colltab.CE{implicitCE}
	t.Logical[colltab.LogFirstTrailing] = []colltab.CE{trailingCE}
	t.Logical[colltab.LogFirstTertiaryIgnorable] = []colltab.CE{{}}
	t.Logical[colltab.LogLastTertiaryIgnorable] = []colltab.CE{{}}

	entries := seedEntries()
	for _, se := range entries {
		ce := simpleCE(se.primary, se.secondary, se.tertiary, se.caseBits)
		start := len(t.Pool)
		t.Pool = append(t.Pool, ce)
		t.Trie.InsertOrAssign(se.cps, colltab.CERange{Start: start, End: len(t.Pool)})

		// Classified by the CE's own strength, the same convention
		// Engine.updateLogical uses at tailoring time: a primary-bearing
		// CE is variable or regular, and an ignorable combining mark
		// (primary 0, secondary nonzero) is a primary-ignorable, not a
		// "regular" entry with a primary weight of zero.
		switch ce.Strength() {
		case colltab.Primary:
			if se.primary >= 0x02000000 && se.primary < 0x03000000 {
				extendBound(t, colltab.LogFirstVariable, colltab.LogLastVariable, ce)
			} else {
				extendBound(t, colltab.LogFirstRegular, colltab.LogLastRegular, ce)
			}
		case colltab.Secondary:
			extendBound(t, colltab.LogFirstPrimaryIgnorable, colltab.LogLastPrimaryIgnorable, ce)
		case colltab.Tertiary:
			extendBound(t, colltab.LogFirstSecondaryIgnorable, colltab.LogLastSecondaryIgnorable, ce)
		default:
			extendBound(t, colltab.LogFirstTertiaryIgnorable, colltab.LogLastTertiaryIgnorable, ce)
		}
	}

	for key, ces := range seedMultiCEEntries() {
		start := len(t.Pool)
		t.Pool = append(t.Pool, ces...)
		t.Trie.InsertOrAssign([]rune(key), colltab.CERange{Start: start, End: len(t.Pool)})
		extendBound(t, colltab.LogFirstRegular, colltab.LogLastRegular, ces[0])
	}
	return t
}

func extendBound(t *colltab.Table, firstPos, lastPos int, ce colltab.CE) {
	ces := []colltab.CE{ce}
	if t.Logical[firstPos] == nil || lessCEs(ces, t.Logical[firstPos]) {
		t.Logical[firstPos] = ces
	}
	if t.Logical[lastPos] == nil || lessCEs(t.Logical[lastPos], ces) {
		t.Logical[lastPos] = ces
	}
}
