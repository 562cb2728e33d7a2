// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package build implements the tailoring engine (spec §4F): it takes a
// base collation table plus a stream of reset/relation/suppress/setting
// /reorder events and produces a new table reflecting them. It is the
// one part of this module with no direct teacher analogue to adapt —
// the teacher repo's own AddTailoring was an unimplemented stub — so it
// is built directly from the specification, using the surrounding
// packages' data structures (colltab.Table, colltab.Trie,
// colltab.Generator) the way the teacher's builder.go and order.go
// fragments use theirs.
package build

import (
	"golang.org/x/text/unicode/norm"

	"github.com/go-uca/gocollate/internal/colltab"
)

type buildNormalizer struct{}

func (buildNormalizer) CanonicalClass(r rune) uint8 {
	return norm.NFD.PropertiesString(string(r)).CCC()
}

// Engine applies tailoring events to a cloned table. It owns the temp
// table and the current reset anchor for the duration of one build;
// neither survives past Tailor returning (spec §5, "owned exclusively
// by the builder").
type Engine struct {
	Table *colltab.Table
	Temp  *TempTable

	anchorCPs []rune
	anchorCEs []colltab.CE
}

// NewEngine clones base (the single clone-on-write point, spec §5) and
// seeds the temp table from its existing trie entries so that
// subsequent lower_bound/upper_bound queries see the full, already
// tailored order.
func NewEngine(base *colltab.Table) *Engine {
	t := base.Clone()
	e := &Engine{Table: t, Temp: NewTempTable()}

	type seeded struct {
		cps []rune
		rng colltab.CERange
	}
	var all []seeded
	t.Trie.Walk(func(cps []rune, rng colltab.CERange) {
		all = append(all, seeded{cps, rng})
	})
	entries := make([]*Entry, len(all))
	for i, s := range all {
		entries[i] = &Entry{CPs: s.cps, CEs: cloneCEs(t.Pool[s.rng.Start:s.rng.End])}
	}
	insertionSort(entries)
	e.Temp.entries = entries
	return e
}

func insertionSort(entries []*Entry) {
	for i := 1; i < len(entries); i++ {
		for j := i; j > 0 && lessCEs(entries[j].CEs, entries[j-1].CEs); j-- {
			entries[j], entries[j-1] = entries[j-1], entries[j]
		}
	}
}

// generate runs the CE generator (spec §4D) on cps against the
// engine's current table, after NFD-normalizing it.
func (e *Engine) generate(cps []rune) ([]colltab.CE, error) {
	if len(cps) == 0 {
		return []colltab.CE{{}}, nil
	}
	g := colltab.Generator{Table: e.Table, Norm: buildNormalizer{}}
	g.SetInput(toNFD(cps))
	return g.All(), nil
}

// toNFD normalizes cps the same way the CE generator normalizes real
// input text. Trie keys built from raw rule text must go through the
// same normalization, or a rule written against a precomposed
// character (e.g. "ä") would insert an entry the generator, which
// only ever probes the trie with NFD-normalized text, can never reach.
func toNFD(cps []rune) []rune {
	if len(cps) == 0 {
		return cps
	}
	return []rune(norm.NFD.String(string(cps)))
}

// Relation implements spec §4F.1 steps 3-8 (step 1 and the "before"
// adjustment of step 2 are handled by Reset, which computes and stores
// the anchor this method starts from).
func (e *Engine) Relation(strength colltab.Level, cps, prefix, extension []rune) error {
	if e.anchorCEs == nil {
		return &InvalidInput{Msg: "relation event with no preceding reset"}
	}

	key := toNFD(append(cloneCPs(prefix), cps...))

	relCEs, err := e.generate(cps)
	if err != nil {
		return err
	}
	modified := donateCaseBits(e.anchorCEs, relCEs)

	if len(extension) > 0 {
		extCEs, err := e.generate(extension)
		if err != nil {
			return err
		}
		modified = append(modified, extCEs...)
	}

	ruleName := string(key)
	if strength != colltab.Identical {
		modified, err = e.bump(modified, strength, ruleName)
		if err != nil {
			return err
		}
	}

	pos := e.Temp.UpperBound(modified)
	if pos < e.Temp.Len() && !lessCEs(modified, e.Temp.At(pos).CEs) {
		if err := e.rebumpFrom(pos, strength, ruleName); err != nil {
			return err
		}
	}

	if idx := e.Temp.Find(key); idx >= 0 {
		e.Temp.Erase(idx)
		if idx < pos {
			pos--
		}
		e.Table.Trie.Erase(key)
	}

	start := len(e.Table.Pool)
	e.Table.Pool = append(e.Table.Pool, modified...)
	rng := colltab.CERange{Start: start, End: len(e.Table.Pool)}
	e.Table.Trie.InsertOrAssign(key, rng)
	e.Temp.Insert(pos, &Entry{CPs: cloneCPs(key), CEs: modified})

	e.updateLogical(modified)
	e.anchorCEs = modified
	e.anchorCPs = cloneCPs(key)
	return nil
}

// bump implements spec §4F.1 step 5.
func (e *Engine) bump(ces []colltab.CE, s colltab.Level, rule string) ([]colltab.CE, error) {
	idx := strengthBoundary(ces, s)
	if idx == 0 {
		return nil, &TailoringWellFormednessViolation{Rule: rule, Why: "no collation element at or above the relation strength"}
	}
	out := cloneCEs(ces[:idx])
	last := len(out) - 1
	ce := out[last]

	n, protectLead := byteWidth(s)
	w := ce.At(s)
	if protectLead {
		w &= 0x00FFFFFF
	}
	nw, overflow := zeroByteFirstIncrement(w, n)
	if overflow {
		return nil, &TailoringOverflow{Rule: rule, Level: s.String()}
	}

	// WF2 only bounds secondary and tertiary weights (spec §4F.1 step
	// 5): a bumped secondary must exceed the highest secondary already
	// seen under the same primary, and a bumped tertiary must exceed the
	// highest tertiary already seen under the same (primary, secondary).
	// If it does not, it is reset to that maximum and incremented again.
	if s == colltab.Secondary || s == colltab.Tertiary {
		if ceil := e.wf2Ceiling(ce, s); ceil > 0 && nw <= ceil {
			nw, overflow = zeroByteFirstIncrement(ceil, n)
			if overflow {
				return nil, &TailoringWellFormednessViolation{Rule: rule, Why: "no " + s.String() + " weight above the current maximum"}
			}
		}
	}

	out[last] = setLevel(ce, s, nw, protectLead)
	out[last] = fillWF1(out[last], s)
	return out, nil
}

// byteWidth reports how many low bytes of a level's weight participate
// in zero-byte-first incrementing, and whether the top byte (a
// primary's lead byte, which identifies its reorder group) is
// protected from the increment.
func byteWidth(s colltab.Level) (n int, protectLead bool) {
	switch s {
	case colltab.Primary:
		return 3, true
	case colltab.Secondary:
		return 2, false
	case colltab.Tertiary:
		return 1, false
	default:
		return 3, false
	}
}

func setLevel(ce colltab.CE, s colltab.Level, w uint32, protectLead bool) colltab.CE {
	switch s {
	case colltab.Primary:
		lead := ce.L1 & 0xFF000000
		if protectLead {
			ce.Elem.L1 = lead | (w & 0x00FFFFFF)
		} else {
			ce.Elem.L1 = w
		}
	case colltab.Secondary:
		ce.Elem.L2 = uint16(w)
	case colltab.Tertiary:
		ce.Elem = ce.Elem.WithTertiary(uint16(w))
	case colltab.Quaternary:
		ce.Elem.L4 = w
	}
	return ce
}

// wf2Ceiling returns the tailoring-state maximum for level s scoped to
// ce's coarser levels (spec §4F.1 step 5: "last_secondary_in_primary",
// "last_tertiary_in_secondary"): the largest weight at s already
// assigned anywhere sharing ce's primary (for s == Secondary) or ce's
// primary and secondary (for s == Tertiary). It scans the temp table
// directly rather than maintaining running maxima per bucket, since a
// build runs once and the table is the authority on what has been
// assigned. Values are masked the same way bump masks w/nw, so the
// comparison in bump stays scale-consistent.
func (e *Engine) wf2Ceiling(ce colltab.CE, s colltab.Level) uint32 {
	n, _ := byteWidth(s)
	mask := func(w uint32) uint32 {
		if n >= 4 {
			return w
		}
		return w & ((1 << (8 * uint(n))) - 1)
	}

	var max uint32
	for i := 0; i < e.Temp.Len(); i++ {
		for _, cand := range e.Temp.At(i).CEs {
			if cand.L1 != ce.L1 {
				continue
			}
			if s == colltab.Tertiary && cand.L2 != ce.L2 {
				continue
			}
			if w := mask(cand.At(s)); w > max {
				max = w
			}
		}
	}
	return max
}

// fillWF1 enforces spec §4F.1 step 5's WF1 clause: a level must not be
// zero while a coarser (more significant) level is non-zero.
func fillWF1(ce colltab.CE, bumped colltab.Level) colltab.CE {
	if bumped >= colltab.Secondary && ce.L2 == 0 {
		ce.Elem.L2 = colltab.DefaultSecondary
	}
	if bumped >= colltab.Tertiary && ce.Tertiary() == 0 {
		ce.Elem = ce.Elem.WithTertiary(colltab.DefaultTertiary)
	}
	return ce
}

// rebumpFrom implements spec §4F.1 step 6's re-bump: entries at or
// after pos are each incremented at strength s until strict order is
// restored, stopping at the end of the current reorder group.
func (e *Engine) rebumpFrom(pos int, s colltab.Level, rule string) error {
	groupEnd := e.groupEndAfter(pos)
	for i := pos; i < e.Temp.Len() && i < groupEnd; i++ {
		cur := e.Temp.At(i)
		bumped, err := e.bump(cur.CEs, s, rule)
		if err != nil {
			return err
		}
		if i+1 < e.Temp.Len() && !lessCEs(bumped, e.Temp.At(i+1).CEs) {
			e.Temp.Replace(i, &Entry{CPs: cur.CPs, CEs: bumped})
			e.reinsertTrie(cur.CPs, bumped)
			continue
		}
		e.Temp.Replace(i, &Entry{CPs: cur.CPs, CEs: bumped})
		e.reinsertTrie(cur.CPs, bumped)
		return nil
	}
	return nil
}

func (e *Engine) reinsertTrie(cps []rune, ces []colltab.CE) {
	start := len(e.Table.Pool)
	e.Table.Pool = append(e.Table.Pool, ces...)
	e.Table.Trie.InsertOrAssign(cps, colltab.CERange{Start: start, End: len(e.Table.Pool)})
}

// groupEndAfter returns the temp-table index one past the last entry
// sharing the reorder group of the entry at pos, the stopping point
// re-bumping must respect (spec §4F.1 step 6).
func (e *Engine) groupEndAfter(pos int) int {
	if pos >= e.Temp.Len() {
		return pos
	}
	lead := leadByteOf(firstAt(e.Temp.At(pos).CEs, colltab.Primary))
	i := pos
	for i < e.Temp.Len() && leadByteOf(firstAt(e.Temp.At(i).CEs, colltab.Primary)) == lead {
		i++
	}
	return i
}

// Suppress implements spec §4F.4: every descendant key of length > 1 is
// removed, but the single-code-point entry for cp itself is preserved.
func (e *Engine) Suppress(cp rune) {
	rng, had := e.Table.Trie.Find([]rune{cp})
	e.Table.Trie.EraseSubtree([]rune{cp})
	if had {
		e.Table.Trie.InsertOrAssign([]rune{cp}, rng)
	}
	for i := 0; i < e.Temp.Len(); {
		cps := e.Temp.At(i).CPs
		if len(cps) > 1 && cps[0] == cp {
			e.Temp.Erase(i)
			continue
		}
		i++
	}
}

// ApplySettings records the table-wide settings event (spec §4F
// "strength(S), variable_weighting(W), l2_order(O), case_level(C),
// case_first(F)").
func (e *Engine) ApplySettings(s SettingEvent) {
	if s.Strength != nil {
		e.Table.Settings.Strength = *s.Strength
	}
	if s.Variable != nil {
		e.Table.Settings.Variable = *s.Variable
	}
	if s.L2Order != nil {
		e.Table.Settings.L2Order = *s.L2Order
	}
	if s.CaseLevel != nil {
		e.Table.Settings.CaseLevel = *s.CaseLevel
	}
	if s.CaseFirst != nil {
		e.Table.Settings.CaseFirst = *s.CaseFirst
	}
}

// Seal finalizes the build and returns the tailored table.
func (e *Engine) Seal() *colltab.Table {
	return e.Table
}
