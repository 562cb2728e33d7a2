// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package build

// zeroByteFirstIncrement implements spec §4F.1 step 5's "zero-byte-first
// incrementing": within the low n bytes of w, find the least
// significant byte that is zero and set it to 1; if none is zero, add 1
// to the low byte and propagate the carry. It reports overflow if the
// carry would propagate past the n bytes considered (for a primary
// weight, the lead byte is excluded from n and any carry into it is
// reported as overflow instead of silently changing the reorder group).
func zeroByteFirstIncrement(w uint32, n int) (next uint32, overflow bool) {
	b := make([]byte, n)
	for i := 0; i < n; i++ {
		b[n-1-i] = byte(w >> (8 * i))
	}
	for i := n - 1; i >= 0; i-- {
		if b[i] == 0 {
			b[i] = 1
			return bytesToUint32(b), false
		}
	}
	carry := 1
	for i := n - 1; i >= 0 && carry > 0; i-- {
		sum := int(b[i]) + carry
		b[i] = byte(sum)
		carry = sum >> 8
	}
	return bytesToUint32(b), carry > 0
}

func bytesToUint32(b []byte) uint32 {
	var w uint32
	for _, x := range b {
		w = w<<8 | uint32(x)
	}
	return w
}
