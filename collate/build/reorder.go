// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "github.com/go-uca/gocollate/internal/colltab"

func leadByteOf(primary uint32) byte { return byte(primary >> 24) }

func maskLead(primary uint32) uint32 { return primary & 0x00FFFFFF }

func findGroup(groups []colltab.ReorderGroup, name string) (colltab.ReorderGroup, bool) {
	for _, g := range groups {
		if g.Name == name {
			return g, true
		}
	}
	return colltab.ReorderGroup{}, false
}

// Reorder implements the reorder directive (spec §4F.3): it reassigns
// lead bytes to the named groups in the given order and rewrites every
// CE in the table's pool accordingly.
func (e *Engine) Reorder(names []string) error {
	t := e.Table
	groups := make([]colltab.ReorderGroup, 0, len(names))
	for _, n := range names {
		g, ok := findGroup(t.ReorderGroups, n)
		if !ok {
			return &InvalidInput{Msg: "reorder: unknown group " + n}
		}
		groups = append(groups, g)
	}

	var simple [256]byte
	for i := range simple {
		simple[i] = byte(i)
	}
	var nonSimple []colltab.NonSimpleRange

	var curLead byte
	var prevGroup colltab.ReorderGroup
	first := true
	for _, g := range groups {
		compress := false
		if !first && g.Compressible && prevGroup.Compressible {
			prevLastIncl := prevGroup.LastPrimary - 1
			prevSingleByte := leadByteOf(prevGroup.FirstPrimary) == leadByteOf(prevLastIncl)
			if prevSingleByte && maskLead(g.FirstPrimary) >= maskLead(prevLastIncl) {
				compress = true
			}
		}
		if !compress {
			curLead++
		}
		if curLead >= colltab.ImplicitLeadByte {
			return &TailoringOverflow{Rule: "reorder", Level: "primary lead byte"}
		}

		if g.Simple {
			lo := leadByteOf(g.FirstPrimary)
			hi := leadByteOf(g.LastPrimary - 1)
			for b := int(lo); b <= int(hi); b++ {
				simple[b] = curLead
			}
		} else {
			nonSimple = append(nonSimple, colltab.NonSimpleRange{
				FirstCE: g.FirstPrimary, LastCE: g.LastPrimary, NewLeadByte: curLead,
			})
		}
		prevGroup = g
		first = false
	}

	t.SimpleReorder = simple
	t.NonSimpleReorder = nonSimple

	newLeadByte := func(primary uint32) (byte, bool) {
		for _, r := range nonSimple {
			if primary >= r.FirstCE && primary < r.LastCE {
				return r.NewLeadByte, true
			}
		}
		lead := leadByteOf(primary)
		nb := simple[lead]
		return nb, nb != lead
	}

	for i, ce := range t.Pool {
		if ce.L1 == 0 {
			continue
		}
		if nb, changed := newLeadByte(ce.L1); changed {
			t.Pool[i].Elem = ce.Elem.WithLeadByte(nb)
		}
	}
	for lvl := range t.Logical {
		for i, ce := range t.Logical[lvl] {
			if ce.L1 == 0 {
				continue
			}
			if nb, changed := newLeadByte(ce.L1); changed {
				t.Logical[lvl][i].Elem = ce.Elem.WithLeadByte(nb)
			}
		}
	}
	return nil
}
