// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

import (
	"bytes"
	"testing"
)

func TestWriteToReadFromRoundTrip(t *testing.T) {
	src := newTestTable()
	src.ReorderGroups = []ReorderGroup{
		{Name: "latin", FirstPrimary: 0x04000000, LastPrimary: 0x05000000, Compressible: false, Simple: true},
	}
	src.Logical[LogFirstRegular] = []CE{{Elem: NewElem(0x04010000, DefaultSecondary, DefaultTertiary, CaseLower, 0)}}

	var buf bytes.Buffer
	n, err := src.WriteTo(&buf)
	if err != nil {
		t.Fatalf("WriteTo: %v", err)
	}
	if n != int64(buf.Len()) {
		t.Errorf("WriteTo returned %d, but wrote %d bytes", n, buf.Len())
	}

	dst := NewTable()
	if _, err := dst.ReadFrom(&buf); err != nil {
		t.Fatalf("ReadFrom: %v", err)
	}

	if len(dst.Pool) != len(src.Pool) {
		t.Fatalf("Pool length = %d, want %d", len(dst.Pool), len(src.Pool))
	}
	for i := range src.Pool {
		if dst.Pool[i] != src.Pool[i] {
			t.Errorf("Pool[%d] = %+v, want %+v", i, dst.Pool[i], src.Pool[i])
		}
	}

	for _, seq := range [][]rune{[]rune("a"), []rune("b"), []rune("ch"), []rune("c")} {
		wantRng, wantOK := src.Trie.Find(seq)
		gotRng, gotOK := dst.Trie.Find(seq)
		if wantOK != gotOK || wantRng != gotRng {
			t.Errorf("Trie.Find(%q) = %+v, %v; want %+v, %v", string(seq), gotRng, gotOK, wantRng, wantOK)
		}
	}

	if len(dst.ReorderGroups) != 1 || dst.ReorderGroups[0].Name != "latin" {
		t.Errorf("ReorderGroups not round-tripped: %+v", dst.ReorderGroups)
	}
	if dst.SimpleReorder != src.SimpleReorder {
		t.Error("SimpleReorder not round-tripped")
	}
	if dst.Settings != src.Settings {
		t.Errorf("Settings = %+v, want %+v", dst.Settings, src.Settings)
	}
	if len(dst.Logical[LogFirstRegular]) != 1 || dst.Logical[LogFirstRegular][0].L1 != 0x04010000 {
		t.Errorf("Logical[LogFirstRegular] not round-tripped: %+v", dst.Logical[LogFirstRegular])
	}
	if dst.ImplicitLeadByte != src.ImplicitLeadByte {
		t.Errorf("ImplicitLeadByte = %#x, want %#x", dst.ImplicitLeadByte, src.ImplicitLeadByte)
	}
}
