// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collate

import (
	"sort"

	"golang.org/x/text/unicode/norm"

	"github.com/go-uca/gocollate/internal/colltab"
)

// nfdNormalizer adapts golang.org/x/text/unicode/norm to the
// colltab.Normalizer interface the CE generator needs. Full NFD
// conversion of a string or rune slice is done directly against
// norm.NFD below; this type only supplies the per-rune canonical class
// lookup the generator needs while walking already-decomposed input.
type nfdNormalizer struct{}

func (nfdNormalizer) CanonicalClass(r rune) uint8 {
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// toNFD normalizes cps to NFD, the to_nfd boundary named in spec §6:
// everything downstream of this call assumes canonically decomposed
// input.
func toNFD(cps []rune) []rune {
	return []rune(norm.NFD.String(string(cps)))
}

// CollationElements runs the full generator pipeline (spec §4D) over
// cps, normalizing to NFD first, and returns the resulting CE stream.
func CollationElements(cps []rune, t *colltab.Table) []colltab.CE {
	ces, _ := collationElements(cps, t)
	return ces
}

func collationElements(cps []rune, t *colltab.Table) (ces []colltab.CE, nfd []rune) {
	nfd = toNFD(cps)
	g := colltab.Generator{Table: t, Norm: nfdNormalizer{}}
	g.SetInput(nfd)
	return g.All(), nfd
}

// SortKey returns the byte-comparable sort key for cps at table t under
// flags f (spec §4E, §6). Each call allocates a fresh Buffer; callers
// generating many keys should use a Collator instead to reuse one.
func SortKey(cps []rune, t *colltab.Table, f Flags) []byte {
	var buf Buffer
	ces, nfd := collationElements(cps, t)
	return keyFromCEs(&buf, ces, nfd, f)
}

// Collator binds a table to a set of comparison flags, the shape
// callers use to sort or compare many strings consistently (spec §6
// external interface). The zero value is not usable; construct with
// NewCollator.
type Collator struct {
	Table *colltab.Table
	Flags Flags
}

// NewCollator returns a Collator over t using t's own recorded
// settings. Locale selection is out of scope (spec Non-goals); callers
// needing different behavior build it via Tailor or by adjusting
// c.Flags directly.
func NewCollator(t *colltab.Table) *Collator {
	return &Collator{Table: t, Flags: FlagsFromTable(t)}
}

// Key returns the sort key for cps, appending into buf so repeated
// calls reuse its backing array.
func (c *Collator) Key(buf *Buffer, cps []rune) []byte {
	buf.Reset()
	ces, nfd := collationElements(cps, c.Table)
	return keyFromCEs(buf, ces, nfd, c.Flags)
}

// KeyString is Key for a string input.
func (c *Collator) KeyString(buf *Buffer, s string) []byte {
	return c.Key(buf, []rune(s))
}

// Compare returns -1, 0 or +1 comparing a and b under c's table and
// flags.
func (c *Collator) Compare(a, b []rune) int {
	return Compare(a, b, c.Table, c.Flags)
}

// CompareString is Compare for string inputs.
func (c *Collator) CompareString(a, b string) int {
	return Compare([]rune(a), []rune(b), c.Table, c.Flags)
}

// Sort sorts a slice of strings in place according to c.
func (c *Collator) Sort(strs []string) {
	sort.Slice(strs, func(i, j int) bool {
		return c.CompareString(strs[i], strs[j]) < 0
	})
}
