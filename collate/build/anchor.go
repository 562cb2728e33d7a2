// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "github.com/go-uca/gocollate/internal/colltab"

// Anchor names the reset target for a run of relations (spec §4F,
// reset event): either an explicit code-point sequence or one of the
// table's logical positions.
type Anchor struct {
	CPs     []rune
	Logical int // -1 when CPs is used instead
}

// AnchorSequence anchors on an explicit code-point sequence.
func AnchorSequence(cps []rune) Anchor { return Anchor{CPs: cps, Logical: -1} }

// AnchorLogical anchors on a symbolic logical position, one of the
// colltab.Log* constants.
func AnchorLogical(pos int) Anchor { return Anchor{Logical: pos} }

func (a Anchor) isLogical() bool { return a.Logical >= 0 }

// Reset implements spec §4F, the reset event, including the "before"
// adjustment of §4F.1 step 2.
func (e *Engine) Reset(a Anchor, before bool, beforeStrength colltab.Level) error {
	var ces []colltab.CE
	var err error
	if a.isLogical() {
		ces, err = e.logicalCEs(a.Logical)
	} else {
		ces, err = e.generate(a.CPs)
	}
	if err != nil {
		return err
	}

	if before {
		ces, err = e.applyBefore(ces, beforeStrength)
		if err != nil {
			return err
		}
	}

	e.anchorCEs = ces
	if a.isLogical() {
		e.anchorCPs = nil
	} else {
		e.anchorCPs = cloneCPs(a.CPs)
	}
	return nil
}

// applyBefore implements spec §4F.1 step 2.
func (e *Engine) applyBefore(anchor []colltab.CE, s colltab.Level) ([]colltab.CE, error) {
	idx := strengthBoundary(anchor, s)
	var truncated []colltab.CE
	if idx == 0 {
		truncated = []colltab.CE{{}}
	} else {
		truncated = cloneCEs(anchor[:idx])
	}

	pos := e.Temp.LowerBound(truncated)
	// Step backward to the previous entry whose first CE differs at
	// level s or above.
	for pos > 0 {
		pos--
		prev := e.Temp.At(pos)
		if len(prev.CEs) == 0 {
			continue
		}
		differs := false
		for l := colltab.Primary; l <= s; l++ {
			if prev.CEs[0].At(l) != firstAt(truncated, l) {
				differs = true
				break
			}
		}
		if differs {
			wasFirstVariable := e.isVariablePrimary(firstAt(truncated, colltab.Primary)) && firstAt(truncated, colltab.Primary) != 0
			if wasFirstVariable && prev.CEs[0].L1 != 0 && !e.isVariablePrimary(prev.CEs[0].L1) && prev.CEs[0].L1 < firstAt(truncated, colltab.Primary) {
				fixed := cloneCEs(prev.CEs)
				fixed[0].Elem = fixed[0].Elem.WithLeadByte(leadByteOf(firstAt(truncated, colltab.Primary)))
				return fixed, nil
			}
			return cloneCEs(prev.CEs), nil
		}
	}
	return nil, &BeforeRelationUnanchorable{Rule: "reset before"}
}

func firstAt(ces []colltab.CE, l colltab.Level) uint32 {
	for _, c := range ces {
		if w := c.At(l); w != 0 {
			return w
		}
	}
	return 0
}

// donateCaseBits implements spec §4F.1 step 3: the relation CEs donate
// their case bits to the (possibly before-adjusted) anchor CEs.
func donateCaseBits(anchor, relation []colltab.CE) []colltab.CE {
	out := cloneCEs(anchor)
	primaries := primaryIndices(out)
	relPrimaries := primaryIndices(relation)

	n := len(relPrimaries)
	m := len(primaries)
	k := n
	if m < k {
		k = m
	}
	for i := 0; i < k-1; i++ {
		out[primaries[i]].Elem = out[primaries[i]].WithCaseBits(relation[relPrimaries[i]].CaseBits())
	}
	if k > 0 {
		last := relation[relPrimaries[k-1]].CaseBits()
		for i := k; i < n; i++ {
			last = combineCaseBits(last, relation[relPrimaries[i]].CaseBits())
		}
		out[primaries[k-1]].Elem = out[primaries[k-1]].WithCaseBits(last)
	}

	for i := range out {
		switch out[i].Strength() {
		case colltab.Secondary:
			out[i].Elem = out[i].WithCaseBits(colltab.CaseNone)
		case colltab.Tertiary:
			out[i].Elem = out[i].WithCaseBits(colltab.CaseUpper)
		case colltab.Quaternary:
			out[i].Elem = out[i].WithCaseBits(colltab.CaseLower)
		}
	}
	return out
}

func primaryIndices(ces []colltab.CE) []int {
	var idx []int
	for i, c := range ces {
		if c.L1 != 0 {
			idx = append(idx, i)
		}
	}
	if len(idx) == 0 {
		return []int{0}
	}
	return idx
}

func combineCaseBits(a, b colltab.CaseBits) colltab.CaseBits {
	if a == b {
		return a
	}
	return colltab.CaseMixed
}
