// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

import "fmt"

// ParseError reports a malformed event handed to the engine by its
// caller (normally a rule-syntax parser, which is an external
// collaborator this package does not implement).
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return "collate/build: parse error: " + e.Msg }

// TailoringOverflow reports that incrementing a weight during the bump
// step (spec §4F.1 step 5) would carry out of its level's lead byte.
type TailoringOverflow struct {
	Rule  string
	Level string
}

func (e *TailoringOverflow) Error() string {
	return fmt.Sprintf("collate/build: rule %q overflows the %s level", e.Rule, e.Level)
}

// TailoringWellFormednessViolation reports that applying a relation
// would leave the table unable to satisfy WF1 or WF2 (spec §4F.1 step
// 5) even after the one permitted re-bump-to-maximum retry.
type TailoringWellFormednessViolation struct {
	Rule string
	Why  string
}

func (e *TailoringWellFormednessViolation) Error() string {
	return fmt.Sprintf("collate/build: rule %q violates well-formedness: %s", e.Rule, e.Why)
}

// BeforeRelationUnanchorable reports that a reset's "before" flag
// (spec §4F.1 step 2) could not locate a previous temp-table entry to
// anchor against, for example a "before" on the very first entry of the
// temp table (the backward search is not limited to one reorder group).
type BeforeRelationUnanchorable struct {
	Rule string
}

func (e *BeforeRelationUnanchorable) Error() string {
	return fmt.Sprintf("collate/build: rule %q: no entry precedes this anchor to place \"before\" relative to", e.Rule)
}

// InvalidInput reports a malformed event payload unrelated to parsing,
// such as reset() naming a logical position that does not exist, or
// reorder() naming an unknown group.
type InvalidInput struct {
	Msg string
}

func (e *InvalidInput) Error() string { return "collate/build: " + e.Msg }
