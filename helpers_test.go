// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package oneseismic

import (
	"github.com/yngve793/oneseismic/internal/geometry"
	"github.com/yngve793/oneseismic/internal/message"
)

// lines builds the line numbers for axis d of an n-line survey. The
// formula (d+1)*100 + i keeps the numbers distinct per axis so tests can
// tell them apart in headers.
func lines(d, n int) []int {
	xs := make([]int, n)
	for i := range xs {
		xs[i] = (d+1)*100 + i
	}
	return xs
}

func testManifest(
	cube, fragment geometry.Shape, attrs ...message.AttributeDesc,
) message.Manifest {
	return message.Manifest{
		FormatVersion: 1,
		LineLabels:    []string{"inline", "crossline", "depth"},
		LineNumbers: [][]int{
			lines(0, cube[0]),
			lines(1, cube[1]),
			lines(2, cube[2]),
		},
		FragmentXs: fragment[0],
		FragmentYs: fragment[1],
		FragmentZs: fragment[2],
		Attributes: attrs,
	}
}

func testAttribute(typ string, cube, fragment geometry.Shape) message.AttributeDesc {
	return message.AttributeDesc{
		Type: typ,
		LineNumbers: [][]int{
			lines(0, cube[0]),
			lines(1, cube[1]),
			lines(2, cube[2]),
		},
		FragmentXs: fragment[0],
		FragmentYs: fragment[1],
		FragmentZs: fragment[2],
	}
}

func testQuery(function string, m message.Manifest, attrs []string) message.Query {
	return message.Query{
		Pid:             "test-pid",
		Guid:            "test-guid",
		StorageEndpoint: "https://storage.example.com",
		Manifest:        m,
		Function:        function,
		Attributes:      attrs,
	}
}
