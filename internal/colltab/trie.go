// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

// CERange is a half-open range [Start, End) of indices into a Table's CE
// pool. It is the "value" half of a trie entry (spec §3): a code-point
// sequence maps to a contiguous run of collation elements, which covers
// both the single-element case (End == Start+1) and expansions
// (End > Start+1).
type CERange struct {
	Start, End int
}

// Len reports the number of collation elements in the range.
func (r CERange) Len() int { return r.End - r.Start }

// trieNode is one node of the prefix trie described in spec §4B. The
// same structure serves as the mutable build-time trie and, once a
// table is sealed, as the read-only runtime trie: sealing never
// changes the representation, it just stops mutating it.
type trieNode struct {
	children map[rune]*trieNode
	value    *CERange
}

func newTrieNode() *trieNode {
	return &trieNode{}
}

func (n *trieNode) child(r rune) *trieNode {
	if n.children == nil {
		return nil
	}
	return n.children[r]
}

func (n *trieNode) ensureChild(r rune) *trieNode {
	if n.children == nil {
		n.children = make(map[rune]*trieNode)
	}
	c, ok := n.children[r]
	if !ok {
		c = newTrieNode()
		n.children[r] = c
	}
	return c
}

// Trie is an ordered prefix map from code-point sequences to CE ranges.
// It supports exact and longest-match lookup in O(k) for a key of length
// k, independent of the number of entries in the trie, and the mutation
// operations the tailoring engine (collate/build) needs to realize
// reset/relation/suppress rules.
type Trie struct {
	root *trieNode
	size int // number of keys with an assigned value
}

// NewTrie returns an empty trie.
func NewTrie() *Trie {
	return &Trie{root: newTrieNode()}
}

// Len reports the number of keys currently mapped to a value.
func (t *Trie) Len() int { return t.size }

// Find performs an exact lookup.
func (t *Trie) Find(seq []rune) (CERange, bool) {
	n := t.root
	for _, r := range seq {
		n = n.child(r)
		if n == nil {
			return CERange{}, false
		}
	}
	if n.value == nil {
		return CERange{}, false
	}
	return *n.value, true
}

// MatchResult is the outcome of a LongestMatch probe.
type MatchResult struct {
	// Matched is the length of the longest prefix of the probed
	// sequence that is a stored key, or 0 if none is. How much further
	// a value-less path in the trie continues is not reported.
	Matched int
	// IsFinal reports whether a value is stored at the matched prefix.
	IsFinal bool
	// Node is the trie node reached after consuming Matched elements
	// when IsFinal is true; it can be handed to Extend to continue
	// probing incrementally. When IsFinal is false it is the node for
	// the probe's first element, or the root if there is none.
	Node *trieNode
}

// LongestMatch returns how many leading elements of seq match any
// stored prefix, and whether a value is present at the longest such
// prefix that has one. It does not require the longest matching prefix
// and the longest value-bearing prefix to coincide: a contraction
// "abc" and a shorter entry "ab" can coexist, and a probe of "abx" will
// report Matched=2 (IsFinal=true, value of "ab") even though "a" also
// matches a node with no value attached.
func (t *Trie) LongestMatch(seq []rune) MatchResult {
	n := t.root
	best := MatchResult{Node: n}
	for i, r := range seq {
		next := n.child(r)
		if next == nil {
			break
		}
		n = next
		if n.value != nil {
			best = MatchResult{Matched: i + 1, IsFinal: true, Node: n}
		} else if !best.IsFinal && best.Matched == i {
			// Until a value is found, keep tracking progress so a
			// caller doing incremental Extend calls can tell how deep
			// it has walked; once one is found, Node stays on it.
			best.Node = n
		}
	}
	return best
}

// Extend steps one element deeper from node, for incremental probing on
// streaming input. It returns the child node and whether that edge
// exists.
func (t *Trie) Extend(node *trieNode, cp rune) (*trieNode, bool) {
	c := node.child(cp)
	return c, c != nil
}

// NodeHasValue reports whether node itself is the end of a stored key.
func (t *Trie) NodeHasValue(node *trieNode) (CERange, bool) {
	if node == nil || node.value == nil {
		return CERange{}, false
	}
	return *node.value, true
}

// Root returns the trie's root node, the starting point for Extend.
func (t *Trie) Root() *trieNode { return t.root }

// InsertOrAssign is an idempotent upsert: it creates any missing path
// nodes and assigns (or overwrites) the value at seq.
func (t *Trie) InsertOrAssign(seq []rune, v CERange) {
	n := t.root
	for _, r := range seq {
		n = n.ensureChild(r)
	}
	if n.value == nil {
		t.size++
	}
	val := v
	n.value = &val
}

// EraseSubtree removes seq and every longer sequence that has seq as a
// prefix. It is used by the tailoring engine's suppress rule (spec
// §4F.4). It reports whether anything was removed.
func (t *Trie) EraseSubtree(seq []rune) bool {
	n := t.root
	for _, r := range seq {
		n = n.child(r)
		if n == nil {
			return false
		}
	}
	removed := n.value != nil || len(n.children) > 0
	t.size -= countValues(n)
	*n = trieNode{}
	return removed
}

func countValues(n *trieNode) int {
	c := 0
	if n.value != nil {
		c++
	}
	for _, ch := range n.children {
		c += countValues(ch)
	}
	return c
}

// NextKeyElements enumerates the set of code points that continue some
// stored key starting at node, in no particular order. The CE
// generator's canonical-closure handling does not call it; it probes
// the trie for each candidate longer key with Find instead.
func (t *Trie) NextKeyElements(node *trieNode) []rune {
	if node == nil || len(node.children) == 0 {
		return nil
	}
	out := make([]rune, 0, len(node.children))
	for r := range node.children {
		out = append(out, r)
	}
	return out
}

// Erase removes the value at seq, if any, without touching longer keys
// that share it as a prefix. Used when a tailoring replaces an existing
// entry and the old (cps, CEs) pair needs to be dropped from the temp
// table and trie before the new one is inserted (spec §4F.1 step 7).
func (t *Trie) Erase(seq []rune) bool {
	n := t.root
	for _, r := range seq {
		n = n.child(r)
		if n == nil {
			return false
		}
	}
	if n.value == nil {
		return false
	}
	n.value = nil
	t.size--
	return true
}

// Walk calls fn once for every stored key, in an unspecified order,
// passing the code-point sequence and the CE range it maps to. Used by
// the tailoring engine to seed its temp table from an existing sealed
// table before applying new rules (spec §4F, "the temp table is the
// single source of truth for order").
func (t *Trie) Walk(fn func(seq []rune, r CERange)) {
	var walk func(n *trieNode, prefix []rune)
	walk = func(n *trieNode, prefix []rune) {
		if n.value != nil {
			seq := make([]rune, len(prefix))
			copy(seq, prefix)
			fn(seq, *n.value)
		}
		for r, c := range n.children {
			walk(c, append(prefix, r))
		}
	}
	walk(t.root, nil)
}

// Clone returns a deep copy of t. Mutating the clone never affects t.
//
// The spec models this as an O(1) value-handle clone backed by shared
// immutable storage; our map-based node representation cannot share
// structure that cheaply without a persistent-tree rewrite, so Clone is
// a single O(n) deep copy instead. It is called exactly once per
// tailoring build (spec §5 "clone-on-write... exactly once"), so the
// asymptotic difference does not change the engine's complexity class,
// only its constant factor.
func (t *Trie) Clone() *Trie {
	return &Trie{root: cloneNode(t.root), size: t.size}
}

func cloneNode(n *trieNode) *trieNode {
	if n == nil {
		return nil
	}
	c := &trieNode{}
	if n.value != nil {
		v := *n.value
		c.value = &v
	}
	if n.children != nil {
		c.children = make(map[rune]*trieNode, len(n.children))
		for r, ch := range n.children {
			c.children[r] = cloneNode(ch)
		}
	}
	return c
}
