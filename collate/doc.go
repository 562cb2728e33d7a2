// Copyright 2024 The Go-UCA Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package collate implements the Unicode Collation Algorithm sort-key
// and compare path (UTS #10): it turns code points into collation
// elements via internal/colltab and those elements into byte-comparable
// sort keys (spec component E, pipeline step S3).
//
// Building or modifying a collation table is the job of the sibling
// collate/build package; this package only consumes an already-sealed
// *colltab.Table.
package collate
