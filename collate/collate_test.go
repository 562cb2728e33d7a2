// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collate_test

import (
	"testing"

	"github.com/go-uca/gocollate/collate"
	"github.com/go-uca/gocollate/collate/build"
	"github.com/go-uca/gocollate/internal/colltab"
)

func TestCompareOrdersPunctuationAndDigitsBeforeLetters(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl)

	if collate.Compare([]rune(" "), []rune("a"), tbl, f) >= 0 {
		t.Error("space should sort before a letter")
	}
	if collate.Compare([]rune("5"), []rune("a"), tbl, f) >= 0 {
		t.Error("a digit should sort before a letter")
	}
	if collate.Compare([]rune("a"), []rune("b"), tbl, f) >= 0 {
		t.Error("a should sort before b")
	}
}

func TestCompareIsCaseInsensitiveAtTertiaryStrengthBelow(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl)
	f.Strength = 1 // secondary: ignore case differences entirely

	if c := collate.Compare([]rune("a"), []rune("A"), tbl, f); c != 0 {
		t.Errorf("Compare(a, A) at secondary strength = %d, want 0", c)
	}
}

func TestCompareDistinguishesCaseAtTertiary(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl)

	if c := collate.Compare([]rune("a"), []rune("A"), tbl, f); c == 0 {
		t.Error("Compare(a, A) at tertiary strength should distinguish case")
	}
}

func TestContractionSortsBetweenItsNeighbors(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl)

	if collate.Compare([]rune("c"), []rune("ch"), tbl, f) >= 0 {
		t.Error("c should sort before the ch contraction")
	}
	if collate.Compare([]rune("ch"), []rune("d"), tbl, f) >= 0 {
		t.Error("the ch contraction should sort before d")
	}
}

func TestSortKeyDeterministic(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl)
	a := collate.SortKey([]rune("hello"), tbl, f)
	b := collate.SortKey([]rune("hello"), tbl, f)
	if len(a) == 0 {
		t.Fatal("empty sort key for non-empty input")
	}
	if string(a) != string(b) {
		t.Error("SortKey is not deterministic for identical input")
	}
}

func TestCollatorSort(t *testing.T) {
	c := collate.NewCollator(collate.DefaultTable())
	strs := []string{"banana", "Apple", "cherry", "apple"}
	c.Sort(strs)
	for i := 1; i < len(strs); i++ {
		if c.CompareString(strs[i-1], strs[i]) > 0 {
			t.Errorf("Sort produced out-of-order result: %v", strs)
			break
		}
	}
}

// The following are the six end-to-end scenarios named in spec.md §8.

func TestScenarioS1DefaultPrimaryOrdering(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl)
	f.Strength = colltab.Primary

	if c := collate.Compare([]rune("Grossist"), []rune("Größe"), tbl, f); c >= 0 {
		t.Errorf(`Compare("Grossist","Größe") at primary strength = %d, want < 0`, c)
	}
	if c := collate.Compare([]rune("Tone"), []rune("Ton"), tbl, f); c <= 0 {
		t.Errorf(`Compare("Tone","Ton") at primary strength = %d, want > 0`, c)
	}
}

func TestScenarioS2GermanPhonebookTertiaryTailoring(t *testing.T) {
	events := []build.Event{
		build.ResetEvent{Anchor: build.AnchorSequence([]rune("ae"))},
		build.RelationEvent{Strength: colltab.Tertiary, CPs: []rune("ä")},
	}
	tbl, err := collate.Tailor(collate.DefaultTable(), events)
	if err != nil {
		t.Fatal(err)
	}

	f := collate.FlagsFromTable(tbl) // default strength is tertiary
	if c := collate.Compare([]rune("ä"), []rune("ae"), tbl, f); c <= 0 {
		t.Errorf(`Compare("ä","ae") at tertiary strength = %d, want > 0`, c)
	}

	f.Strength = colltab.Primary
	if c := collate.Compare([]rune("ä"), []rune("ae"), tbl, f); c != 0 {
		t.Errorf(`Compare("ä","ae") at primary strength = %d, want 0`, c)
	}
}

func TestScenarioS3ThaiCanonicalEquivalenceAcrossSaraAe(t *testing.T) {
	tbl := collate.DefaultTable()
	f := collate.FlagsFromTable(tbl) // default strength is tertiary

	precomposed := []rune("แć")
	decomposed := []rune("แć")
	if c := collate.Compare(precomposed, decomposed, tbl, f); c != 0 {
		t.Errorf("Compare(%q, %q) at tertiary strength = %d, want 0 (canonically equivalent)", string(precomposed), string(decomposed), c)
	}
}

func TestScenarioS4ReorderPutsDigitsBeforeLatin(t *testing.T) {
	events := []build.Event{
		build.ReorderEvent{Groups: []string{"digit", "latin", "punctuation", "thai", "bengali"}},
	}
	tbl, err := collate.Tailor(collate.DefaultTable(), events)
	if err != nil {
		t.Fatal(err)
	}

	var digitPrimaries, latinPrimaries []uint32
	for d := rune('0'); d <= '9'; d++ {
		ces := collate.CollationElements([]rune{d}, tbl)
		digitPrimaries = append(digitPrimaries, ces[0].L1)
	}
	for lo := rune('a'); lo <= 'z'; lo++ {
		ces := collate.CollationElements([]rune{lo}, tbl)
		latinPrimaries = append(latinPrimaries, ces[0].L1)
	}

	for _, x := range digitPrimaries {
		for _, y := range latinPrimaries {
			if x >= y {
				t.Fatalf("after [reorder digit Latn], digit primary %#x should be < latin primary %#x", x, y)
			}
		}
	}
}

func TestScenarioS5BeforeRelationPlacesImmediatelyBeforeAnchor(t *testing.T) {
	events := []build.Event{
		build.ResetEvent{Anchor: build.AnchorSequence([]rune("a")), Before: true, BeforeStrength: colltab.Primary},
		build.RelationEvent{Strength: colltab.Primary, CPs: []rune("x")},
	}
	tbl, err := collate.Tailor(collate.DefaultTable(), events)
	if err != nil {
		t.Fatal(err)
	}

	f := collate.FlagsFromTable(tbl)
	f.Strength = colltab.Primary

	if c := collate.Compare([]rune("x"), []rune("a"), tbl, f); c >= 0 {
		t.Errorf(`Compare("x","a") at primary strength = %d, want < 0`, c)
	}
	if c := collate.Compare([]rune("9"), []rune("x"), tbl, f); c >= 0 {
		t.Errorf(`Compare("9","x") at primary strength = %d, want < 0 (x sorts between 9 and a)`, c)
	}
}

func TestScenarioS6SuppressRemovesBengaliContraction(t *testing.T) {
	base := collate.DefaultTable()
	contraction := []rune{'ে', 'া'}

	if ces := collate.CollationElements(contraction, base); len(ces) != 1 {
		t.Fatalf("default table: got %d CEs for the ে+া contraction, want 1 (it should fire)", len(ces))
	}

	tailored, err := collate.Tailor(base, []build.Event{build.SuppressEvent{CP: 'ে'}})
	if err != nil {
		t.Fatal(err)
	}
	if ces := collate.CollationElements(contraction, tailored); len(ces) != 2 {
		t.Errorf("after suppressContractions(ে): got %d CEs for ে+া, want 2 (the contraction should no longer fire)", len(ces))
	}
}
