// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

import "testing"

type fakeNorm struct {
	ccc map[rune]uint8
}

func (f fakeNorm) CanonicalClass(r rune) uint8 { return f.ccc[r] }

func newTestTable() *Table {
	t := NewTable()
	add := func(seq string, ce CE) {
		start := len(t.Pool)
		t.Pool = append(t.Pool, ce)
		t.Trie.InsertOrAssign([]rune(seq), CERange{start, len(t.Pool)})
	}
	add("a", CE{Elem: NewElem(0x04010000, DefaultSecondary, DefaultTertiary, CaseLower, 0)})
	add("b", CE{Elem: NewElem(0x04020000, DefaultSecondary, DefaultTertiary, CaseLower, 0)})
	add("ch", CE{Elem: NewElem(0x04030000, DefaultSecondary, DefaultTertiary, CaseLower, 0)})
	add("c", CE{Elem: NewElem(0x04040000, DefaultSecondary, DefaultTertiary, CaseLower, 0)})
	return t
}

func TestGeneratorPlainMatch(t *testing.T) {
	tbl := newTestTable()
	g := Generator{Table: tbl, Norm: fakeNorm{}}
	g.SetInput([]rune("ab"))
	ces := g.All()
	if len(ces) != 2 {
		t.Fatalf("got %d CEs, want 2", len(ces))
	}
	if ces[0].L1 != 0x04010000 || ces[1].L1 != 0x04020000 {
		t.Errorf("unexpected primaries: %#x, %#x", ces[0].L1, ces[1].L1)
	}
}

func TestGeneratorPrefersContraction(t *testing.T) {
	tbl := newTestTable()
	g := Generator{Table: tbl, Norm: fakeNorm{}}
	g.SetInput([]rune("ch"))
	ces := g.All()
	if len(ces) != 1 || ces[0].L1 != 0x04030000 {
		t.Fatalf("got %+v, want a single CE for the ch contraction", ces)
	}
}

func TestGeneratorFallsBackPastFailedContraction(t *testing.T) {
	tbl := newTestTable()
	g := Generator{Table: tbl, Norm: fakeNorm{}}
	g.SetInput([]rune("cx"))
	ces := g.All()
	if len(ces) != 2 {
		t.Fatalf("got %d CEs, want 2 (c, then implicit for x)", len(ces))
	}
	if ces[0].L1 != 0x04040000 {
		t.Errorf("first CE primary = %#x, want plain c", ces[0].L1)
	}
}

func TestGeneratorImplicitForUnassigned(t *testing.T) {
	tbl := newTestTable()
	g := Generator{Table: tbl, Norm: fakeNorm{}}
	g.SetInput([]rune{0x4E2D})
	ces := g.All()
	if len(ces) != 1 {
		t.Fatalf("got %d CEs, want 1", len(ces))
	}
	if ces[0].LeadByte() != ImplicitLeadByte {
		t.Errorf("LeadByte() = %#x, want %#x", ces[0].LeadByte(), ImplicitLeadByte)
	}
}
