// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"sort"

	"github.com/go-uca/gocollate/internal/colltab"
)

// TempTable is the sequence container spec §4C describes: positional
// insert/erase/replace, lower_bound/upper_bound by the CE less-relation
// (entry.go's lessCEs), and random-access iteration. It is backed by a
// plain slice; insert and erase are O(n), which is acceptable for a
// build-time-only structure processing on the order of tens of
// thousands of rules, trading asymptotic optimality for the simplicity
// of using Go's stdlib sort.Search directly for the bound queries.
type TempTable struct {
	entries []*Entry
}

// NewTempTable returns an empty temp table.
func NewTempTable() *TempTable { return &TempTable{} }

// Len reports the number of entries.
func (tt *TempTable) Len() int { return len(tt.entries) }

// At returns the entry at position i.
func (tt *TempTable) At(i int) *Entry { return tt.entries[i] }

// LowerBound returns the index of the first entry whose CEs are not
// less than ces.
func (tt *TempTable) LowerBound(ces []colltab.CE) int {
	return sort.Search(len(tt.entries), func(i int) bool {
		return !lessCEs(tt.entries[i].CEs, ces)
	})
}

// UpperBound returns the index of the first entry whose CEs sort
// strictly greater than ces.
func (tt *TempTable) UpperBound(ces []colltab.CE) int {
	return sort.Search(len(tt.entries), func(i int) bool {
		return lessCEs(ces, tt.entries[i].CEs)
	})
}

// Insert places e at position pos, shifting later entries back.
func (tt *TempTable) Insert(pos int, e *Entry) {
	tt.entries = append(tt.entries, nil)
	copy(tt.entries[pos+1:], tt.entries[pos:])
	tt.entries[pos] = e
}

// Erase removes the entry at pos.
func (tt *TempTable) Erase(pos int) {
	copy(tt.entries[pos:], tt.entries[pos+1:])
	tt.entries = tt.entries[:len(tt.entries)-1]
}

// Replace overwrites the entry at pos in place, without moving it.
// Used by the re-bump step (spec §4F.1 step 6), which advances entries
// to new CEs one at a time without changing their relative position.
func (tt *TempTable) Replace(pos int, e *Entry) {
	tt.entries[pos] = e
}

// Find returns the index of the entry with the given code-point
// sequence, or -1.
func (tt *TempTable) Find(cps []rune) int {
	for i, e := range tt.entries {
		if runesEqual(e.CPs, cps) {
			return i
		}
	}
	return -1
}

func runesEqual(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
