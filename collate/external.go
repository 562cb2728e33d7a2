// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package collate

import (
	"github.com/go-uca/gocollate/collate/build"
	"github.com/go-uca/gocollate/internal/colltab"
)

// DefaultTable returns the module's built-in collation table (spec §6
// external interface). The table is shared and must not be mutated;
// tailor a copy with Tailor instead.
func DefaultTable() *colltab.Table {
	return build.Default()
}

// Tailor applies a sequence of tailoring events to base and returns the
// resulting table, leaving base untouched.
func Tailor(base *colltab.Table, events []build.Event) (*colltab.Table, error) {
	return build.Tailor(base, events)
}
