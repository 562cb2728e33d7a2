// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package colltab

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// ucolMagic identifies the on-disk table format (spec §6, "Persisted
// state"). It is this module's own format, not a UCA-standard one: the
// UCA defines the in-memory weight model, not a wire encoding, so there
// is no external format to interoperate with here.
var ucolMagic = [8]byte{'U', 'C', 'O', 'L', 'v', '1', 0, 0}

// WriteTo serializes t in the UCOLv1 format, implementing io.WriterTo.
// It is the counterpart to ReadFrom and to Seal: Seal hands callers an
// in-memory table, WriteTo lets that table be persisted and reloaded
// without repeating a tailoring build.
func (t *Table) WriteTo(w io.Writer) (int64, error) {
	bw := bufio.NewWriter(w)
	cw := &countingWriter{w: bw}

	if _, err := cw.Write(ucolMagic[:]); err != nil {
		return cw.n, err
	}
	if err := writeUint32(cw, uint32(len(t.Pool))); err != nil {
		return cw.n, err
	}
	for _, ce := range t.Pool {
		if err := writeCE(cw, ce); err != nil {
			return cw.n, err
		}
	}

	var pairs []trieKV
	t.Trie.Walk(func(seq []rune, rng CERange) {
		pairs = append(pairs, trieKV{seq: append([]rune(nil), seq...), rng: rng})
	})
	if err := writeUint32(cw, uint32(len(pairs))); err != nil {
		return cw.n, err
	}
	for _, p := range pairs {
		if err := writeUint32(cw, uint32(len(p.seq))); err != nil {
			return cw.n, err
		}
		for _, r := range p.seq {
			if err := writeUint32(cw, uint32(r)); err != nil {
				return cw.n, err
			}
		}
		if err := writeUint32(cw, uint32(p.rng.Start)); err != nil {
			return cw.n, err
		}
		if err := writeUint32(cw, uint32(p.rng.End)); err != nil {
			return cw.n, err
		}
	}

	if err := writeUint32(cw, uint32(len(t.ReorderGroups))); err != nil {
		return cw.n, err
	}
	for _, g := range t.ReorderGroups {
		if err := writeString(cw, g.Name); err != nil {
			return cw.n, err
		}
		if err := writeUint32(cw, g.FirstPrimary); err != nil {
			return cw.n, err
		}
		if err := writeUint32(cw, g.LastPrimary); err != nil {
			return cw.n, err
		}
		if err := writeBool(cw, g.Compressible); err != nil {
			return cw.n, err
		}
		if err := writeBool(cw, g.Simple); err != nil {
			return cw.n, err
		}
	}

	if err := writeUint32(cw, uint32(len(t.NonSimpleReorder))); err != nil {
		return cw.n, err
	}
	for _, r := range t.NonSimpleReorder {
		if err := writeUint32(cw, r.FirstCE); err != nil {
			return cw.n, err
		}
		if err := writeUint32(cw, r.LastCE); err != nil {
			return cw.n, err
		}
		if _, err := cw.Write([]byte{r.NewLeadByte}); err != nil {
			return cw.n, err
		}
	}

	if _, err := cw.Write(t.SimpleReorder[:]); err != nil {
		return cw.n, err
	}

	if err := writeSettings(cw, t.Settings); err != nil {
		return cw.n, err
	}

	for i := range t.Logical {
		if err := writeUint32(cw, uint32(len(t.Logical[i]))); err != nil {
			return cw.n, err
		}
		for _, ce := range t.Logical[i] {
			if err := writeCE(cw, ce); err != nil {
				return cw.n, err
			}
		}
	}

	if _, err := cw.Write([]byte{t.ImplicitLeadByte}); err != nil {
		return cw.n, err
	}

	return cw.n, bw.Flush()
}

// ReadFrom replaces t's contents with a table previously written by
// WriteTo, implementing io.ReaderFrom. The receiver's existing contents
// are discarded; a caller wanting to keep the original should read into
// a fresh Table instead.
func (t *Table) ReadFrom(r io.Reader) (int64, error) {
	cr := &countingReader{r: bufio.NewReader(r)}

	var magic [8]byte
	if _, err := io.ReadFull(cr, magic[:]); err != nil {
		return cr.n, err
	}
	if magic != ucolMagic {
		return cr.n, fmt.Errorf("colltab: not a UCOLv1 table (bad magic)")
	}

	poolLen, err := readUint32(cr)
	if err != nil {
		return cr.n, err
	}
	pool := make([]CE, poolLen)
	for i := range pool {
		ce, err := readCE(cr)
		if err != nil {
			return cr.n, err
		}
		pool[i] = ce
	}

	trie := NewTrie()
	pairCount, err := readUint32(cr)
	if err != nil {
		return cr.n, err
	}
	for i := uint32(0); i < pairCount; i++ {
		seqLen, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		seq := make([]rune, seqLen)
		for j := range seq {
			v, err := readUint32(cr)
			if err != nil {
				return cr.n, err
			}
			seq[j] = rune(v)
		}
		start, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		end, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		trie.InsertOrAssign(seq, CERange{Start: int(start), End: int(end)})
	}

	groupCount, err := readUint32(cr)
	if err != nil {
		return cr.n, err
	}
	groups := make([]ReorderGroup, groupCount)
	for i := range groups {
		name, err := readString(cr)
		if err != nil {
			return cr.n, err
		}
		first, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		last, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		compressible, err := readBool(cr)
		if err != nil {
			return cr.n, err
		}
		simple, err := readBool(cr)
		if err != nil {
			return cr.n, err
		}
		groups[i] = ReorderGroup{Name: name, FirstPrimary: first, LastPrimary: last, Compressible: compressible, Simple: simple}
	}

	nonSimpleCount, err := readUint32(cr)
	if err != nil {
		return cr.n, err
	}
	nonSimple := make([]NonSimpleRange, nonSimpleCount)
	for i := range nonSimple {
		first, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		last, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		var b [1]byte
		if _, err := io.ReadFull(cr, b[:]); err != nil {
			return cr.n, err
		}
		nonSimple[i] = NonSimpleRange{FirstCE: first, LastCE: last, NewLeadByte: b[0]}
	}

	var simpleReorder [256]byte
	if _, err := io.ReadFull(cr, simpleReorder[:]); err != nil {
		return cr.n, err
	}

	settings, err := readSettings(cr)
	if err != nil {
		return cr.n, err
	}

	var logical [NumLogicalPositions][]CE
	for i := range logical {
		n, err := readUint32(cr)
		if err != nil {
			return cr.n, err
		}
		ces := make([]CE, n)
		for j := range ces {
			ce, err := readCE(cr)
			if err != nil {
				return cr.n, err
			}
			ces[j] = ce
		}
		logical[i] = ces
	}

	var leadByte [1]byte
	if _, err := io.ReadFull(cr, leadByte[:]); err != nil {
		return cr.n, err
	}

	t.Pool = pool
	t.Trie = trie
	t.ReorderGroups = groups
	t.NonSimpleReorder = nonSimple
	t.SimpleReorder = simpleReorder
	t.Settings = settings
	t.Logical = logical
	t.ImplicitLeadByte = leadByte[0]
	return cr.n, nil
}

type trieKV struct {
	seq []rune
	rng CERange
}

func writeCE(w io.Writer, ce CE) error {
	if err := writeUint32(w, ce.L1); err != nil {
		return err
	}
	if err := writeUint16(w, ce.L2); err != nil {
		return err
	}
	if err := writeUint16(w, ce.L3); err != nil {
		return err
	}
	if err := writeUint32(w, ce.L4); err != nil {
		return err
	}
	_, err := w.Write([]byte{ce.CCC})
	return err
}

func readCE(r io.Reader) (CE, error) {
	l1, err := readUint32(r)
	if err != nil {
		return CE{}, err
	}
	l2, err := readUint16(r)
	if err != nil {
		return CE{}, err
	}
	l3, err := readUint16(r)
	if err != nil {
		return CE{}, err
	}
	l4, err := readUint32(r)
	if err != nil {
		return CE{}, err
	}
	var ccc [1]byte
	if _, err := io.ReadFull(r, ccc[:]); err != nil {
		return CE{}, err
	}
	return CE{Elem: Elem{L1: l1, L2: l2, L3: l3, L4: l4}, CCC: ccc[0]}, nil
}

func writeSettings(w io.Writer, s Settings) error {
	if err := writeUint32(w, uint32(s.Strength)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(s.Variable)); err != nil {
		return err
	}
	if err := writeUint32(w, uint32(s.L2Order)); err != nil {
		return err
	}
	if err := writeBool(w, s.CaseLevel); err != nil {
		return err
	}
	return writeUint32(w, uint32(s.CaseFirst))
}

func readSettings(r io.Reader) (Settings, error) {
	strength, err := readUint32(r)
	if err != nil {
		return Settings{}, err
	}
	variable, err := readUint32(r)
	if err != nil {
		return Settings{}, err
	}
	l2order, err := readUint32(r)
	if err != nil {
		return Settings{}, err
	}
	caseLevel, err := readBool(r)
	if err != nil {
		return Settings{}, err
	}
	caseFirst, err := readUint32(r)
	if err != nil {
		return Settings{}, err
	}
	return Settings{
		Strength:  Level(strength),
		Variable:  VariableWeighting(variable),
		L2Order:   L2Order(l2order),
		CaseLevel: caseLevel,
		CaseFirst: CaseFirst(caseFirst),
	}, nil
}

func writeUint32(w io.Writer, v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint32(r io.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b[:]), nil
}

func writeUint16(w io.Writer, v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	_, err := w.Write(b[:])
	return err
}

func readUint16(r io.Reader) (uint16, error) {
	var b [2]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b[:]), nil
}

func writeBool(w io.Writer, v bool) error {
	b := byte(0)
	if v {
		b = 1
	}
	_, err := w.Write([]byte{b})
	return err
}

func readBool(r io.Reader) (bool, error) {
	var b [1]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return false, err
	}
	return b[0] != 0, nil
}

func writeString(w io.Writer, s string) error {
	if err := writeUint32(w, uint32(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

func readString(r io.Reader) (string, error) {
	n, err := readUint32(r)
	if err != nil {
		return "", err
	}
	b := make([]byte, n)
	if _, err := io.ReadFull(r, b); err != nil {
		return "", err
	}
	return string(b), nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
