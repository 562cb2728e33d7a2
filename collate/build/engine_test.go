// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import (
	"testing"

	"github.com/go-uca/gocollate/internal/colltab"
)

func TestSuppressRemovesContractionButKeepsStarter(t *testing.T) {
	tbl, err := Tailor(Default(), []Event{SuppressEvent{CP: 'c'}})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := tbl.Trie.Find([]rune("ch")); ok {
		t.Error("suppress(c) should remove the ch contraction")
	}
	if _, ok := tbl.Trie.Find([]rune("c")); !ok {
		t.Error("suppress(c) should keep the single-code-point entry for c")
	}
}

func TestRelationAfterInsertsNewPrimarySortingAfterAnchor(t *testing.T) {
	events := []Event{
		ResetEvent{Anchor: AnchorSequence([]rune("z"))},
		RelationEvent{Strength: colltab.Primary, CPs: []rune{0x1234}},
	}
	tbl, err := Tailor(Default(), events)
	if err != nil {
		t.Fatal(err)
	}
	rng, ok := tbl.Trie.Find([]rune{0x1234})
	if !ok {
		t.Fatal("new rule was not inserted into the trie")
	}
	newCE := tbl.Pool[rng.Start]
	zRng, _ := tbl.Trie.Find([]rune("z"))
	zCE := tbl.Pool[zRng.Start]
	if newCE.L1 <= zCE.L1 {
		t.Errorf("new primary %#x should sort after z's primary %#x", newCE.L1, zCE.L1)
	}
	if newCE.LeadByte() != zCE.LeadByte() {
		t.Errorf("a primary-after relation should stay in the same reorder group: got lead byte %#x, want %#x", newCE.LeadByte(), zCE.LeadByte())
	}
}

func TestReorderSwapsLeadBytes(t *testing.T) {
	e := NewEngine(Default())
	if err := e.Reorder([]string{"digit", "punctuation", "latin"}); err != nil {
		t.Fatal(err)
	}
	punctLead := e.Table.SimpleReorder[leadByteOf(0x02000000)]
	digitLead := e.Table.SimpleReorder[leadByteOf(0x03000000)]
	if digitLead >= punctLead {
		t.Errorf("digit group (lead %d) should now sort before punctuation (lead %d)", digitLead, punctLead)
	}
}

// TestBeforeThenAfterAreMonotonicAroundTheAnchor exercises anchor.go's
// applyBefore (the S5 path, spec §4F.1 step 2) together with a plain
// "after" relation against the same anchor, and checks the four
// primaries involved land in the order the rules describe: the
// before-insertion strictly precedes the anchor, which strictly
// precedes the after-insertion, which strictly precedes the anchor's
// original successor.
func TestBeforeThenAfterAreMonotonicAroundTheAnchor(t *testing.T) {
	events := []Event{
		ResetEvent{Anchor: AnchorSequence([]rune("b")), Before: true, BeforeStrength: colltab.Primary},
		RelationEvent{Strength: colltab.Primary, CPs: []rune{0x2460}},
		ResetEvent{Anchor: AnchorSequence([]rune("b"))},
		RelationEvent{Strength: colltab.Primary, CPs: []rune{0x2461}},
	}
	tbl, err := Tailor(Default(), events)
	if err != nil {
		t.Fatal(err)
	}

	primaryOf := func(cps []rune) uint32 {
		rng, ok := tbl.Trie.Find(cps)
		if !ok {
			t.Fatalf("rule for %U was not inserted into the trie", cps)
		}
		return tbl.Pool[rng.Start].L1
	}

	before := primaryOf([]rune{0x2460})
	anchor := primaryOf([]rune("b"))
	after := primaryOf([]rune{0x2461})
	successor := primaryOf([]rune("c"))

	if !(before < anchor && anchor < after && after < successor) {
		t.Errorf("before/after placement not monotonic: before=%#x anchor=%#x after=%#x successor(c)=%#x", before, anchor, after, successor)
	}
}

func TestLessCEsOrdersByPrimaryThenSecondary(t *testing.T) {
	a := []colltab.CE{{Elem: colltab.NewElem(1, 5, 0, colltab.CaseNone, 0)}}
	b := []colltab.CE{{Elem: colltab.NewElem(1, 9, 0, colltab.CaseNone, 0)}}
	if !lessCEs(a, b) {
		t.Error("a should sort before b: same primary, lower secondary")
	}
	if lessCEs(b, a) {
		t.Error("b should not sort before a")
	}
}
