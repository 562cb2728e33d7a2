// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "github.com/go-uca/gocollate/internal/colltab"

// updateLogical implements spec §4F.2: after a relation is applied, the
// new CEs may extend one of the logical-position pairs, chosen by the
// strength of the first CE (the convention this package follows for
// "the strength of a CE sequence": the strength of its first element).
func (e *Engine) updateLogical(ces []colltab.CE) {
	if len(ces) == 0 {
		return
	}
	switch ces[0].Strength() {
	case colltab.Primary:
		if e.isVariablePrimary(ces[0].L1) {
			e.extendLogical(colltab.LogFirstVariable, colltab.LogLastVariable, ces)
		} else {
			e.extendLogical(colltab.LogFirstRegular, colltab.LogLastRegular, ces)
		}
	case colltab.Secondary:
		e.extendLogical(colltab.LogFirstPrimaryIgnorable, colltab.LogLastPrimaryIgnorable, ces)
	case colltab.Tertiary:
		e.extendLogical(colltab.LogFirstSecondaryIgnorable, colltab.LogLastSecondaryIgnorable, ces)
	default:
		e.extendLogical(colltab.LogFirstTertiaryIgnorable, colltab.LogLastTertiaryIgnorable, ces)
	}
}

func (e *Engine) extendLogical(firstPos, lastPos int, ces []colltab.CE) {
	t := e.Table
	if t.Logical[firstPos] == nil || lessCEs(ces, t.Logical[firstPos]) {
		t.Logical[firstPos] = cloneCEs(ces)
	}
	if t.Logical[lastPos] == nil || lessCEs(t.Logical[lastPos], ces) {
		t.Logical[lastPos] = cloneCEs(ces)
	}
}

func (e *Engine) isVariablePrimary(l1 uint32) bool {
	t := e.Table
	lo := firstNonzeroL1(t.Logical[colltab.LogFirstVariable])
	hi := firstNonzeroL1(t.Logical[colltab.LogLastVariable])
	if lo == 0 && hi == 0 {
		return false
	}
	return l1 >= lo && l1 <= hi
}

func firstNonzeroL1(ces []colltab.CE) uint32 {
	for _, c := range ces {
		if c.L1 != 0 {
			return c.L1
		}
	}
	return 0
}

// logicalCEs resolves a symbolic logical-position id to its current CE
// sequence.
func (e *Engine) logicalCEs(pos int) ([]colltab.CE, error) {
	if pos < 0 || pos >= colltab.NumLogicalPositions {
		return nil, &InvalidInput{Msg: "reset: unknown logical position"}
	}
	ces := e.Table.Logical[pos]
	if ces == nil {
		return []colltab.CE{{}}, nil // a single completely-ignorable CE
	}
	return cloneCEs(ces), nil
}
