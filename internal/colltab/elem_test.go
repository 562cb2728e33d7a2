// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

import "testing"

func TestNewElemRoundtrip(t *testing.T) {
	e := NewElem(0x04010000, 0x0020, 0x02, CaseLower, 0)
	if e.L1 != 0x04010000 {
		t.Errorf("L1 = %#x, want %#x", e.L1, 0x04010000)
	}
	if e.Tertiary() != 0x02 {
		t.Errorf("Tertiary() = %d, want 2", e.Tertiary())
	}
	if e.CaseBits() != CaseLower {
		t.Errorf("CaseBits() = %v, want %v", e.CaseBits(), CaseLower)
	}
}

func TestNewElemPanicsOnOversizedTertiary(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for oversized tertiary weight")
		}
	}()
	NewElem(0, 0, 0xFF, CaseNone, 0)
}

func TestWithTertiaryPreservesCaseBits(t *testing.T) {
	e := NewElem(0, 0, 1, CaseUpper, 0)
	e = e.WithTertiary(5)
	if e.Tertiary() != 5 {
		t.Errorf("Tertiary() = %d, want 5", e.Tertiary())
	}
	if e.CaseBits() != CaseUpper {
		t.Errorf("CaseBits() = %v, want %v", e.CaseBits(), CaseUpper)
	}
}

func TestIsIgnorable(t *testing.T) {
	if !(Elem{}.IsIgnorable()) {
		t.Error("zero Elem should be ignorable")
	}
	if NewElem(1, 0, 0, CaseNone, 0).IsIgnorable() {
		t.Error("Elem with nonzero primary should not be ignorable")
	}
}

func TestStrength(t *testing.T) {
	cases := []struct {
		e    Elem
		want Level
	}{
		{NewElem(1, 1, 1, CaseNone, 1), Primary},
		{NewElem(0, 1, 1, CaseNone, 1), Secondary},
		{NewElem(0, 0, 1, CaseNone, 1), Tertiary},
		{NewElem(0, 0, 0, CaseNone, 1), Quaternary},
		{Elem{}, Identical},
	}
	for _, c := range cases {
		if got := c.e.Strength(); got != c.want {
			t.Errorf("Strength() = %v, want %v", got, c.want)
		}
	}
}

func TestWithLeadByte(t *testing.T) {
	e := NewElem(0x04010203, 0, 0, CaseNone, 0)
	e = e.WithLeadByte(0x07)
	if got := e.LeadByte(); got != 0x07 {
		t.Errorf("LeadByte() = %#x, want 0x07", got)
	}
	if e.L1&0x00FFFFFF != 0x010203 {
		t.Errorf("WithLeadByte changed the non-lead bytes: %#x", e.L1)
	}
}
