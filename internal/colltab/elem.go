// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package colltab holds the data structures and algorithms that turn a
// stream of code points into a stream of collation elements, and that
// hold the immutable tables those algorithms run against.
//
// It implements component A (collation data), component B (the trie
// store) and component D (the collation-element generator, UCA pipeline
// step S2) of the collation core. The tailoring engine that mutates a
// table (component F) lives in collate/build; it depends on this
// package, never the other way around.
package colltab

import "fmt"

// Level identifies the collation comparison level.
//
// The primary level corresponds to the basic sorting of text, the
// secondary level to accents and related linguistic elements, the
// tertiary level to casing, and the quaternary level is derived from the
// other levels by the various algorithms for handling variable elements.
type Level int

const (
	Primary Level = iota
	Secondary
	Tertiary
	Quaternary
	Identical

	NumLevels
)

func (l Level) String() string {
	switch l {
	case Primary:
		return "primary"
	case Secondary:
		return "secondary"
	case Tertiary:
		return "tertiary"
	case Quaternary:
		return "quaternary"
	case Identical:
		return "identical"
	}
	return fmt.Sprintf("colltab.Level(%d)", int(l))
}

// CaseBits classifies the case of the rune(s) a collation element was
// derived from. It occupies a dedicated bit field within L3.
type CaseBits uint8

const (
	CaseNone CaseBits = iota
	CaseLower
	CaseUpper
	CaseMixed
)

const (
	// DefaultSecondary and DefaultTertiary are the "common" weights used
	// to fill WF1 gaps (a level must not be zero while a higher level is
	// non-zero) and as the baseline a tailoring increments away from.
	DefaultSecondary uint16 = 0x20
	DefaultTertiary  uint16 = 0x02

	tertiaryBits  = 6
	tertiaryMask  = uint16(1<<tertiaryBits - 1)
	caseBitsShift = tertiaryBits

	// MaxQuaternary is the quaternary weight assigned by the "shifted"
	// variable-weighting policy to non-ignorable collation elements that
	// follow a variable one.
	MaxQuaternary uint32 = 0xFFFF
)

// Elem is the 4-tuple of weights emitted for one or more code points, as
// defined by spec §3: primary (L1), secondary (L2), tertiary (L3,
// including a case-bits sub-field) and quaternary (L4).
type Elem struct {
	L1 uint32
	L2 uint16
	L3 uint16 // low tertiaryBits bits: tertiary weight; remaining high bits: CaseBits
	L4 uint32
}

// NewElem builds an Elem from its logical components. It panics if
// tertiary does not fit in the bits reserved for it; this indicates a
// programmer error (a malformed collation data table), not a runtime
// condition callers are expected to recover from.
func NewElem(primary uint32, secondary uint16, tertiary uint16, caseBits CaseBits, quaternary uint32) Elem {
	if tertiary > uint16(tertiaryMask) {
		panic(fmt.Sprintf("colltab: tertiary weight %#x does not fit in %d bits", tertiary, tertiaryBits))
	}
	return Elem{
		L1: primary,
		L2: secondary,
		L3: tertiary | uint16(caseBits)<<caseBitsShift,
		L4: quaternary,
	}
}

// Tertiary returns the tertiary weight, with the case bits masked out.
func (e Elem) Tertiary() uint16 { return e.L3 & tertiaryMask }

// CaseBits returns the case classification carried in L3.
func (e Elem) CaseBits() CaseBits { return CaseBits(e.L3 >> caseBitsShift) }

// WithCaseBits returns a copy of e with its case bits replaced.
func (e Elem) WithCaseBits(c CaseBits) Elem {
	e.L3 = e.Tertiary() | uint16(c)<<caseBitsShift
	return e
}

// WithTertiary returns a copy of e with its tertiary weight replaced,
// preserving the case bits.
func (e Elem) WithTertiary(t uint16) Elem {
	e.L3 = (t & tertiaryMask) | uint16(e.CaseBits())<<caseBitsShift
	return e
}

// IsIgnorable reports whether e carries no weight at any level, i.e. is
// "completely ignorable" per spec §3.
func (e Elem) IsIgnorable() bool {
	return e.L1 == 0 && e.L2 == 0 && e.Tertiary() == 0 && e.L4 == 0
}

// Strength returns the highest level at which e carries a nonzero
// weight, per the definition of CE strength in spec §3.
func (e Elem) Strength() Level {
	switch {
	case e.L1 != 0:
		return Primary
	case e.L2 != 0:
		return Secondary
	case e.Tertiary() != 0:
		return Tertiary
	case e.L4 != 0:
		return Quaternary
	default:
		return Identical
	}
}

// At returns the weight of e at level l, widened to uint32 for uniform
// comparison regardless of the level's native width.
func (e Elem) At(l Level) uint32 {
	switch l {
	case Primary:
		return e.L1
	case Secondary:
		return uint32(e.L2)
	case Tertiary:
		return uint32(e.Tertiary())
	case Quaternary:
		return e.L4
	}
	return 0
}

// LeadByte returns the top byte of L1, which encodes the reorder group
// a collation element belongs to.
func (e Elem) LeadByte() byte {
	return byte(e.L1 >> 24)
}

// WithLeadByte returns a copy of e with the top byte of L1 replaced,
// used by the reorder directive (spec §4F.3) and by the S2 reorder step
// (spec §4D step 4).
func (e Elem) WithLeadByte(b byte) Elem {
	e.L1 = uint32(b)<<24 | (e.L1 & 0x00FFFFFF)
	return e
}

// CE pairs an Elem with the canonical combining class of the rune(s) it
// was generated from. The CCC is not part of the logical weight 4-tuple
// (spec §3), but the generator needs it, alongside each element, to
// detect and reorder discontiguous combining sequences (spec §4D step
// 2) and to recognize non-normalized input (spec testable property 3).
type CE struct {
	Elem
	CCC uint8
}

// Common returns the designated "common" (default) weight for level l,
// used to fill WF1 gaps. Primary and quaternary have no single common
// weight; only secondary and tertiary do.
func Common(l Level) uint32 {
	switch l {
	case Secondary:
		return uint32(DefaultSecondary)
	case Tertiary:
		return uint32(DefaultTertiary)
	}
	return 0
}
