// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

import "testing"

func TestTrieFindAndLongestMatch(t *testing.T) {
	tr := NewTrie()
	tr.InsertOrAssign([]rune{'c'}, CERange{0, 1})
	tr.InsertOrAssign([]rune{'c', 'h'}, CERange{1, 2})

	if _, ok := tr.Find([]rune{'c'}); !ok {
		t.Fatal("Find(c) failed")
	}
	if _, ok := tr.Find([]rune{'c', 'h', 'x'}); ok {
		t.Fatal("Find(chx) should fail")
	}

	m := tr.LongestMatch([]rune{'c', 'h', 'x'})
	if !m.IsFinal || m.Matched != 2 {
		t.Fatalf("LongestMatch(chx) = %+v, want Matched=2 IsFinal=true", m)
	}

	m = tr.LongestMatch([]rune{'c', 'x'})
	if !m.IsFinal || m.Matched != 1 {
		t.Fatalf("LongestMatch(cx) = %+v, want Matched=1 IsFinal=true", m)
	}

	m = tr.LongestMatch([]rune{'z'})
	if m.IsFinal {
		t.Fatalf("LongestMatch(z) = %+v, want IsFinal=false", m)
	}
}

func TestTrieEraseSubtreeRemovesKeyAndDescendants(t *testing.T) {
	tr := NewTrie()
	tr.InsertOrAssign([]rune{'c'}, CERange{0, 1})
	tr.InsertOrAssign([]rune{'c', 'h'}, CERange{1, 2})
	tr.InsertOrAssign([]rune{'c', 'h', 'h'}, CERange{2, 3})

	tr.EraseSubtree([]rune{'c'})
	if _, ok := tr.Find([]rune{'c'}); ok {
		t.Fatal("EraseSubtree(c) should also remove c itself")
	}
	if _, ok := tr.Find([]rune{'c', 'h'}); ok {
		t.Fatal("EraseSubtree(c) should remove descendants")
	}
}

func TestTrieCloneIsIndependent(t *testing.T) {
	tr := NewTrie()
	tr.InsertOrAssign([]rune{'a'}, CERange{0, 1})

	clone := tr.Clone()
	clone.InsertOrAssign([]rune{'b'}, CERange{1, 2})

	if _, ok := tr.Find([]rune{'b'}); ok {
		t.Fatal("mutating the clone affected the original")
	}
	if _, ok := clone.Find([]rune{'a'}); !ok {
		t.Fatal("clone lost an entry present before cloning")
	}
}

func TestTrieWalk(t *testing.T) {
	tr := NewTrie()
	want := map[string]CERange{
		"a":  {0, 1},
		"ab": {1, 2},
		"b":  {2, 3},
	}
	for k, r := range want {
		tr.InsertOrAssign([]rune(k), r)
	}
	got := map[string]CERange{}
	tr.Walk(func(seq []rune, r CERange) {
		got[string(seq)] = r
	})
	if len(got) != len(want) {
		t.Fatalf("Walk visited %d keys, want %d", len(got), len(want))
	}
	for k, r := range want {
		if got[k] != r {
			t.Errorf("Walk[%q] = %+v, want %+v", k, got[k], r)
		}
	}
}
