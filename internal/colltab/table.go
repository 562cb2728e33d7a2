// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

// ReorderGroup is a contiguous range [FirstPrimary, LastPrimary) in L1
// space, identified by a script/category name (spec §3 "Reorder
// group"). Groups are kept in a table's default (DUCET) order; the
// tailoring engine's reorder directive (spec §4F.3) walks them in a
// caller-given order and reassigns lead bytes.
type ReorderGroup struct {
	Name         string
	FirstPrimary uint32
	LastPrimary  uint32 // exclusive
	Compressible bool
	// Simple groups occupy a whole lead byte range by themselves;
	// non-simple groups share a lead byte with others and are
	// distinguished by the NonSimpleReorder ranges instead.
	Simple bool
}

func (g ReorderGroup) contains(primary uint32) bool {
	return primary >= g.FirstPrimary && primary < g.LastPrimary
}

// NonSimpleRange records that every CE whose primary falls in
// [FirstCE, LastCE) should have its lead byte rewritten to NewLeadByte,
// overriding whatever the 256-entry SimpleReorder map would otherwise
// say (spec §4F.3 step 4).
type NonSimpleRange struct {
	FirstCE, LastCE uint32
	NewLeadByte     byte
}

func (r NonSimpleRange) contains(primary uint32) bool {
	return primary >= r.FirstCE && primary < r.LastCE
}

// VariableWeighting selects how CEs in the table's variable range (the
// punctuation/symbol range between FirstVariable and LastVariable) are
// treated when building a sort key (spec §4D step 5, §4E).
type VariableWeighting int

const (
	NonIgnorable VariableWeighting = iota
	Blanked
	Shifted
	ShiftedTrimmed
)

// L2Order selects whether secondary weights are emitted in forward
// (default) or backward ("French") order within each primary run.
type L2Order int

const (
	Forward L2Order = iota
	Backward
)

// CaseFirst controls whether uppercase or lowercase sorts first when
// comparing at the tertiary level.
type CaseFirst int

const (
	CaseFirstOff CaseFirst = iota
	CaseFirstUpper
	CaseFirstLower
)

// Settings holds the table-wide options a tailoring can record (spec
// §4F "strength(S), variable_weighting(W), l2_order(O), case_level(C),
// case_first(F)").
type Settings struct {
	Strength  Level
	Variable  VariableWeighting
	L2Order   L2Order
	CaseLevel bool
	CaseFirst CaseFirst
}

// DefaultSettings returns the settings used when a table does not
// override them: tertiary strength, non-ignorable variable weighting,
// forward secondary order, no case level, no case-first preference.
func DefaultSettings() Settings {
	return Settings{Strength: Tertiary, Variable: NonIgnorable, L2Order: Forward, CaseLevel: false, CaseFirst: CaseFirstOff}
}

// Logical position indices, spec §3 "Logical position": eleven (here,
// twelve, matching spec's own enumerated list which names one more
// entry than its summary count) named CE sequences used as symbolic
// reset targets in tailoring rules.
const (
	LogFirstTertiaryIgnorable = iota
	LogLastTertiaryIgnorable
	LogFirstSecondaryIgnorable
	LogLastSecondaryIgnorable
	LogFirstPrimaryIgnorable
	LogLastPrimaryIgnorable
	LogFirstVariable
	LogLastVariable
	LogFirstRegular
	LogLastRegular
	LogFirstImplicit
	LogFirstTrailing

	NumLogicalPositions
)

// Table holds all collation data for a given collation ordering (spec
// §3 "Collation table"). It is shared by value semantics: a *Table is a
// handle to immutable data once sealed, and cloning (for the start of a
// tailoring build) is the Trie's Clone plus a shallow copy of the
// remaining slices.
type Table struct {
	Pool []CE // shared collation-element pool; trie ranges index into this
	Trie *Trie

	ReorderGroups    []ReorderGroup // default order
	NonSimpleReorder []NonSimpleRange
	SimpleReorder    [256]byte // identity until a reorder directive changes it

	Settings Settings
	Logical  [NumLogicalPositions][]CE

	ImplicitLeadByte byte
}

// NewTable returns an empty, sealed-shape table with an identity
// SimpleReorder map and default settings. Builders populate Pool and
// Trie and then adjust Settings/ReorderGroups before use.
func NewTable() *Table {
	t := &Table{
		Trie:             NewTrie(),
		Settings:         DefaultSettings(),
		ImplicitLeadByte: ImplicitLeadByte,
	}
	for i := range t.SimpleReorder {
		t.SimpleReorder[i] = byte(i)
	}
	return t
}

// Clone returns a table that can be mutated (by collate/build) without
// affecting t. This is the single clone-on-write point named in spec §5.
func (t *Table) Clone() *Table {
	c := *t
	c.Trie = t.Trie.Clone()
	c.Pool = append([]CE(nil), t.Pool...)
	c.ReorderGroups = append([]ReorderGroup(nil), t.ReorderGroups...)
	c.NonSimpleReorder = append([]NonSimpleRange(nil), t.NonSimpleReorder...)
	for i := range t.Logical {
		c.Logical[i] = append([]CE(nil), t.Logical[i]...)
	}
	return &c
}

// reorderedLeadByte applies the S2 "reorder lead byte" step (spec §4D
// step 4) to a single primary weight: non-simple ranges win over the
// 256-entry simple map.
func (t *Table) reorderedLeadByte(primary uint32) byte {
	for _, r := range t.NonSimpleReorder {
		if r.contains(primary) {
			return r.NewLeadByte
		}
	}
	lead := byte(primary >> 24)
	return t.SimpleReorder[lead]
}

func (t *Table) applyReorder(ce CE) CE {
	if ce.L1 == 0 {
		return ce
	}
	newLead := t.reorderedLeadByte(ce.L1)
	if newLead == byte(ce.L1>>24) {
		return ce
	}
	ce.Elem = ce.Elem.WithLeadByte(newLead)
	return ce
}

// isVariable reports whether a CE's primary falls in the table's
// variable range, i.e. between the first and last "variable" logical
// positions (spec §4D step 5).
func (t *Table) isVariable(ce CE) bool {
	if ce.L1 == 0 {
		return false
	}
	lo := logicalPrimary(t.Logical[LogFirstVariable])
	hi := logicalPrimary(t.Logical[LogLastVariable])
	if lo == 0 && hi == 0 {
		return false
	}
	return ce.L1 >= lo && ce.L1 <= hi
}

func logicalPrimary(ces []CE) uint32 {
	for _, ce := range ces {
		if ce.L1 != 0 {
			return ce.L1
		}
	}
	return 0
}

// applyVariableWeighting implements spec §4D step 5 over a run of CEs
// produced for one generator step (one matched key's worth of
// elements). It mutates ces in place and returns it.
func (t *Table) applyVariableWeighting(ces []CE, afterVariable bool) (out []CE, stillAfterVariable bool) {
	switch t.Settings.Variable {
	case NonIgnorable:
		return ces, false
	case Blanked:
		for i, ce := range ces {
			if t.isVariable(ce) || (afterVariable && ce.IsIgnorable()) {
				ces[i] = CE{CCC: ce.CCC}
				afterVariable = true
			} else {
				afterVariable = false
			}
		}
		return ces, afterVariable
	case Shifted, ShiftedTrimmed:
		for i, ce := range ces {
			switch {
			case t.isVariable(ce):
				w := ce.L1
				ces[i] = CE{Elem: NewElem(0, 0, 0, CaseNone, w), CCC: ce.CCC}
				afterVariable = true
			case ce.IsIgnorable():
				if afterVariable {
					ces[i] = CE{Elem: NewElem(0, 0, 0, CaseNone, 0), CCC: ce.CCC}
				}
			default:
				if afterVariable {
					ces[i] = CE{Elem: NewElem(ce.L1, ce.L2, ce.Tertiary(), ce.CaseBits(), MaxQuaternary), CCC: ce.CCC}
				}
				afterVariable = false
			}
		}
		return ces, afterVariable
	}
	return ces, afterVariable
}
