// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "github.com/go-uca/gocollate/internal/colltab"

// Event is one tailoring instruction, as emitted by a rule parser (an
// external collaborator this package does not implement; spec §4F
// treats the event stream itself as the interface). Callers who already
// have parsed events can drive a build with Tailor; callers assembling
// a table programmatically can call the corresponding Engine method
// directly instead, since Engine's methods are exported in their own
// right.
type Event interface {
	apply(e *Engine) error
}

// ResetEvent sets the anchor for subsequent relations.
type ResetEvent struct {
	Anchor         Anchor
	Before         bool
	BeforeStrength colltab.Level
}

func (ev ResetEvent) apply(e *Engine) error {
	return e.Reset(ev.Anchor, ev.Before, ev.BeforeStrength)
}

// RelationEvent places CPs at Strength relative to the current anchor.
type RelationEvent struct {
	Strength  colltab.Level
	CPs       []rune
	Prefix    []rune
	Extension []rune
}

func (ev RelationEvent) apply(e *Engine) error {
	return e.Relation(ev.Strength, ev.CPs, ev.Prefix, ev.Extension)
}

// SuppressEvent removes contractions starting at CP.
type SuppressEvent struct {
	CP rune
}

func (ev SuppressEvent) apply(e *Engine) error {
	e.Suppress(ev.CP)
	return nil
}

// ReorderEvent reassigns lead bytes to the named groups, in order.
type ReorderEvent struct {
	Groups []string
}

func (ev ReorderEvent) apply(e *Engine) error {
	return e.Reorder(ev.Groups)
}

// SettingEvent records table-wide options. Nil fields leave the current
// setting unchanged.
type SettingEvent struct {
	Strength  *colltab.Level
	Variable  *colltab.VariableWeighting
	L2Order   *colltab.L2Order
	CaseLevel *bool
	CaseFirst *colltab.CaseFirst
}

func (ev SettingEvent) apply(e *Engine) error {
	e.ApplySettings(ev)
	return nil
}

// Tailor applies events to base in order, returning the resulting
// table. base is left untouched (Engine clones it).
func Tailor(base *colltab.Table, events []Event) (*colltab.Table, error) {
	e := NewEngine(base)
	for _, ev := range events {
		if err := ev.apply(e); err != nil {
			return nil, err
		}
	}
	return e.Seal(), nil
}
