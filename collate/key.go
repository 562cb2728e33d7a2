// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collate

import (
	"bytes"

	"github.com/go-uca/gocollate/internal/colltab"
)

// Flags selects the per-call options named in spec §6: strength,
// case-level, case-first, L2 order, variable-weighting and
// trim-trailing-zeroes. A zero Flags is not meaningful on its own; use
// FlagsFromTable to seed one from a table's recorded settings, then
// override individual fields.
//
// Variable only selects how quaternary weights are written into the
// key (ShiftedTrimmed trims trailing maximum quaternary weights). Which
// collation elements are shifted or blanked is decided while the CEs
// are generated, by the table's own Settings.Variable, not by Flags.
type Flags struct {
	Strength  colltab.Level
	Variable  colltab.VariableWeighting
	L2Order   colltab.L2Order
	CaseLevel bool
	CaseFirst colltab.CaseFirst
}

// FlagsFromTable returns the Flags implied by a table's own settings,
// the behavior callers get if they don't override anything.
func FlagsFromTable(t *colltab.Table) Flags {
	return Flags{
		Strength:  t.Settings.Strength,
		Variable:  t.Settings.Variable,
		L2Order:   t.Settings.L2Order,
		CaseLevel: t.Settings.CaseLevel,
		CaseFirst: t.Settings.CaseFirst,
	}
}

// Buffer holds keys generated by Collator.Key and Collator.KeyString,
// amortizing allocation across calls, exactly as the teacher's
// collate.Buffer does.
type Buffer struct {
	buf [4096]byte
	key []byte
}

func (b *Buffer) init() {
	if b.key == nil {
		b.key = b.buf[:0]
	}
}

// Reset clears previously generated keys from the buffer.
func (b *Buffer) Reset() { b.key = b.key[:0] }

func appendPrimary(key []byte, p uint32) []byte {
	return append(key, byte(p>>24), byte(p>>16), byte(p>>8), byte(p))
}

// runs splits ces into consecutive groups, each starting at a CE with a
// nonzero primary (a leading run with only ignorables, if any, sorts
// first and is its own group). Used to implement "backward" (French)
// secondary ordering within each primary run, per spec §4E step 1 L2.
func runs(ces []colltab.CE) [][]colltab.CE {
	var out [][]colltab.CE
	start := 0
	for i := 1; i < len(ces); i++ {
		if ces[i].L1 != 0 {
			out = append(out, ces[start:i])
			start = i
		}
	}
	out = append(out, ces[start:])
	return out
}

// keyFromCEs implements the sort-key builder (spec §4E). It appends to
// buf.key and returns the slice covering just the newly appended bytes.
// nfd is the NFD-normalized input the CEs were derived from; it is only
// consulted when f.Strength is Identical.
func keyFromCEs(buf *Buffer, ces []colltab.CE, nfd []rune, f Flags) []byte {
	buf.init()
	kn := len(buf.key)

	// L1: all four bytes of each CE's L1, big-endian (fixed width),
	// skipping CEs with L1 == 0.
	for _, ce := range ces {
		if ce.L1 != 0 {
			buf.key = appendPrimary(buf.key, ce.L1)
		}
	}

	if colltab.Secondary <= f.Strength {
		buf.key = append(buf.key, 0)
		if f.L2Order == colltab.Forward {
			for _, ce := range ces {
				if ce.L2 != 0 {
					buf.key = append(buf.key, byte(ce.L2>>8), byte(ce.L2))
				}
			}
		} else {
			for _, run := range runs(ces) {
				for i := len(run) - 1; i >= 0; i-- {
					if w := run[i].L2; w != 0 {
						buf.key = append(buf.key, byte(w>>8), byte(w))
					}
				}
			}
		}
	} else if f.CaseLevel {
		buf.key = append(buf.key, 0)
	}

	if f.CaseLevel {
		buf.key = append(buf.key, 0)
		for _, ce := range ces {
			cb := ce.CaseBits()
			if f.CaseFirst == colltab.CaseFirstUpper {
				cb = flipCase(cb)
			}
			if cb != colltab.CaseNone {
				buf.key = append(buf.key, byte(cb))
			}
		}
	}

	if colltab.Tertiary <= f.Strength {
		buf.key = append(buf.key, 0)
		for _, ce := range ces {
			t := ce.Tertiary()
			if t == 0 {
				continue
			}
			cb := ce.CaseBits()
			if f.CaseFirst == colltab.CaseFirstUpper && !f.CaseLevel {
				cb = flipCase(cb)
			}
			buf.key = append(buf.key, mergeCaseTertiary(t, cb))
		}

		if colltab.Quaternary <= f.Strength {
			buf.key = append(buf.key, 0)
			switch f.Variable {
			case colltab.Shifted, colltab.ShiftedTrimmed:
				lastNonTrivial := len(buf.key)
				for _, ce := range ces {
					switch {
					case ce.L4 == colltab.MaxQuaternary:
						buf.key = append(buf.key, 0xFF)
					case ce.L4 != 0:
						buf.key = appendPrimary(buf.key, ce.L4)
						lastNonTrivial = len(buf.key)
					}
				}
				if f.Variable == colltab.ShiftedTrimmed {
					buf.key = buf.key[:lastNonTrivial]
				}
			default:
				for _, ce := range ces {
					if ce.L4 != 0 {
						buf.key = appendPrimary(buf.key, ce.L4)
					}
				}
			}
		}
	}

	if f.Strength == colltab.Identical {
		buf.key = append(buf.key, 0)
		for _, r := range nfd {
			buf.key = append(buf.key, byte(r>>24), byte(r>>16), byte(r>>8), byte(r))
		}
	}

	return buf.key[kn:]
}

// mergeCaseTertiary packs a tertiary weight and a case classification
// into a single byte, matching the "case bits live in a sub-field of
// L3" data model of spec §3: the top two bits carry the case
// classification, the rest the tertiary weight.
func mergeCaseTertiary(t uint16, c colltab.CaseBits) byte {
	return byte(t) | byte(c)<<6
}

func flipCase(c colltab.CaseBits) colltab.CaseBits {
	switch c {
	case colltab.CaseUpper:
		return colltab.CaseLower
	case colltab.CaseLower:
		return colltab.CaseUpper
	default:
		return c
	}
}

// Compare returns -1, 0 or +1 comparing the sort keys of a and b at the
// given strength, equivalent to bytes.Compare(SortKey(a,...),
// SortKey(b,...)) (spec §6 compare()).
func Compare(a, b []rune, t *colltab.Table, f Flags) int {
	return bytes.Compare(SortKey(a, t, f), SortKey(b, t, f))
}
