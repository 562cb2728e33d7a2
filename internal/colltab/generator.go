// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

// Normalizer supplies the one piece of normalization data the generator
// needs internally: the canonical combining class of a code point, used
// to detect non-starters for discontiguous-contraction matching (spec
// §4D step 2) and to reorder CEs that arrive out of canonical order
// (spec testable property 3). Full NFD/NFC conversion itself happens
// upstream of the generator, in the collate package, via the external
// golang.org/x/text/unicode/norm collaborator named in spec §6.
type Normalizer interface {
	CanonicalClass(r rune) uint8
}

// maxSpliceLookahead bounds how many trailing non-starters the
// discontiguous-contraction search will examine after a match, mirroring
// the cutoff the teacher's Iter.doNorm applies (maxCombiningCharacters)
// to keep a single step's cost bounded regardless of how long a run of
// combining marks is.
const maxSpliceLookahead = 8

// step produces the CEs for one matched key starting at cps[idx], plus
// how many elements of cps were consumed. It implements spec §4D steps
// 1-3: longest trie match, canonical-closure extension across
// non-starters, and derived weights for code points with no table
// entry.
func (t *Table) step(cps []rune, idx int, nf Normalizer) (ces []CE, consumed int) {
	rest := cps[idx:]
	m := t.Trie.LongestMatch(rest)
	if !m.IsFinal {
		return ImplicitCE(cps[idx]), 1
	}
	k := m.Matched
	rng, _ := t.Trie.NodeHasValue(m.Node)
	key := append([]rune(nil), cps[idx:idx+k]...)

	var trailing []CE // CEs for non-starters that could not be spliced into the key
	skipped := 0
	for skipped < maxSpliceLookahead {
		j := idx + k + len(trailing)
		if j >= len(cps) {
			break
		}
		ccc := nf.CanonicalClass(cps[j])
		if ccc == 0 {
			break // next starter: discontiguous search stops here
		}
		// Once a non-starter is spliced into the key it is part of the
		// base, not an intervening mark any more, so only the marks
		// still sitting in trailing (not yet spliced) can block a later
		// candidate from reaching the base.
		if blockedByTrailing(trailing, ccc) {
			break
		}
		trial := make([]rune, 0, len(key)+1)
		trial = append(trial, key...)
		trial = append(trial, cps[j])
		if r2, ok := t.Trie.Find(trial); ok {
			// Splice: the non-starter at j becomes part of the key
			// instead of generating its own CE. Any non-starters
			// collected as "trailing" so far were between the old and
			// new match boundary and keep their own CEs, emitted
			// immediately after the (now longer) match, preserving
			// their relative order.
			key = trial
			k++
			rng = r2
			skipped = 0
			continue
		}
		trailing = append(trailing, t.singleRuneCE(cps[j], nf))
		skipped++
	}

	out := make([]CE, 0, rng.Len()+len(trailing))
	out = append(out, t.Pool[rng.Start:rng.End]...)
	out = append(out, trailing...)
	return out, k + len(trailing)
}

// blockedByTrailing implements the UCA blocking rule: a later non-starter
// with combining class target may only interact with the base if every
// non-starter collected so far that was not itself spliced into the base
// (i.e. still sitting in trailing) has a strictly lower combining class.
func blockedByTrailing(trailing []CE, target uint8) bool {
	for _, ce := range trailing {
		if ce.CCC >= target {
			return true
		}
	}
	return false
}

func (t *Table) singleRuneCE(r rune, nf Normalizer) CE {
	if rng, ok := t.Trie.Find([]rune{r}); ok {
		if rng.Len() > 0 {
			ce := t.Pool[rng.Start]
			ce.CCC = nf.CanonicalClass(r)
			return ce
		}
	}
	ce := ImplicitCE(r)[0]
	ce.CCC = nf.CanonicalClass(r)
	return ce
}

// AppendNext appends the CEs for the next matched key in cps[idx:] to w,
// applying the reorder and variable-weighting steps (spec §4D steps
// 4-5), and returns the grown slice plus the number of elements of cps
// consumed.
func (t *Table) AppendNext(w []CE, cps []rune, idx int, nf Normalizer, afterVariable bool) (res []CE, consumed int, stillAfterVariable bool) {
	ces, n := t.step(cps, idx, nf)
	for i, ce := range ces {
		ces[i] = t.applyReorder(ce)
	}
	ces, afterVariable = t.applyVariableWeighting(ces, afterVariable)
	return append(w, ces...), n, afterVariable
}

const maxCombiningCharacters = 30

// Generator produces, for a full code-point sequence, the ordered CE
// stream the sort-key builder consumes (spec §4D). It is single-
// threaded and cooperative: Next appends a burst of CEs and returns;
// the caller advances by calling Next again. It is restartable from any
// position where no contraction is mid-flight, matching the suspension
// model described in spec §4D "Suspension / ordering".
type Generator struct {
	Table *Table
	Norm  Normalizer

	CEs []CE
	N   int // number of CEs in CEs that are final for this round

	cps []rune
	pos int

	afterVariable bool
	prevCCC       uint8
	pStarter      int
}

// SetInput resets the generator to produce CEs for cps. cps must
// already be NFD-normalized by the caller (spec §6 to_nfd boundary).
func (g *Generator) SetInput(cps []rune) {
	g.cps = cps
	g.pos = 0
	g.CEs = g.CEs[:0]
	g.N = 0
	g.afterVariable = false
	g.prevCCC = 0
	g.pStarter = 0
}

func (g *Generator) done() bool { return g.pos >= len(g.cps) }

// Next appends CEs to g.CEs until it adds one with CCC == 0, mirroring
// the teacher's Iter.Next: the CCC values of collation elements double
// as a signal that the input was not perfectly normalized and need
// reordering to restore canonical order (spec testable property 3).
func (g *Generator) Next() bool {
	for !g.done() {
		p0 := len(g.CEs)
		var consumed int
		g.CEs, consumed, g.afterVariable = g.Table.AppendNext(g.CEs, g.cps, g.pos, g.Norm, g.afterVariable)
		g.pos += consumed
		last := len(g.CEs) - 1
		if ccc := g.CEs[last].CCC; ccc == 0 {
			g.N = len(g.CEs)
			g.pStarter = last
			g.prevCCC = 0
			return true
		} else if p0 < last && g.CEs[p0].CCC == 0 {
			for p0++; p0 < last && g.CEs[p0].CCC == 0; p0++ {
			}
			g.N = p0
			g.pStarter = p0 - 1
			g.prevCCC = ccc
			return true
		} else if ccc < g.prevCCC {
			g.doNorm(p0, ccc)
		} else {
			g.prevCCC = ccc
		}
	}
	if len(g.CEs) != g.N {
		g.N = len(g.CEs)
		return true
	}
	return false
}

// doNorm reorders the collation elements in g.CEs so that a block with
// a lower CCC that arrived after a block with a higher CCC is moved in
// front of it, restoring the order NFD-normalized input would have
// produced. It assumes blocks added by one AppendNext call either start
// and end with the same CCC or start with CCC == 0 (guaranteed by the
// generator only ever emitting a full matched key's CEs as one block).
func (g *Generator) doNorm(p int, ccc uint8) {
	if p-g.pStarter > maxCombiningCharacters {
		g.prevCCC = g.CEs[len(g.CEs)-1].CCC
		g.pStarter = len(g.CEs) - 1
		return
	}
	n := len(g.CEs)
	k := p
	for p--; p > g.pStarter && ccc < g.CEs[p-1].CCC; p-- {
	}
	g.CEs = append(g.CEs, g.CEs[p:k]...)
	copy(g.CEs[p:], g.CEs[k:])
	g.CEs = g.CEs[:n]
}

// All drains the generator, returning every CE for the input.
func (g *Generator) All() []CE {
	for g.Next() {
	}
	return g.CEs
}
