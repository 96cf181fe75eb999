// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package geometry implements the grid-volume translation layer: the pure
// mapping between global cube coordinates, fragment IDs, fragment-local
// coordinates and per-axis fragment indices.
//
// A survey cube of shape (C0, C1, C2) is stored as a regular grid of
// fixed-size sub-cubes ("fragments") of shape (F0, F1, F2). A fragment is
// identified by its (i, j, k) position on that grid. All functions in this
// package are pure and total within their documented preconditions;
// out-of-range input is a programmer error, not a runtime condition.
package geometry

// Shape is the extent of a volume along each of the three axes.
type Shape [3]int

// Point is a global, zero-based cube coordinate, or a fragment-local
// coordinate when produced by Volume.ToLocal.
type Point [3]int

// ID identifies a fragment by its position on the fragment grid. IDs order
// lexicographically on the triple.
type ID [3]int

// Compare returns -1, 0, or +1 according to the lexicographic order of a
// and b.
func (a ID) Compare(b ID) int {
	for d := 0; d < 3; d++ {
		switch {
		case a[d] < b[d]:
			return -1
		case a[d] > b[d]:
			return +1
		}
	}
	return 0
}

// Index is the 1-dimensional local index within a fragment of this shape
// along axis d, for a global index idx along that axis.
func (s Shape) Index(d, idx int) int {
	return idx % s[d]
}

// Volume translates between the coordinate systems of a cube and its
// fragment grid. The zero value is not useful; construct with New.
type Volume struct {
	cube     Shape
	fragment Shape
}

// New builds a Volume from a cube shape and a fragment shape. All fragment
// extents must be positive.
func New(cube, fragment Shape) Volume {
	return Volume{cube: cube, fragment: fragment}
}

// CubeShape returns the extent of the cube along each axis.
func (v Volume) CubeShape() Shape {
	return v.cube
}

// FragmentShape returns the extent of a single fragment along each axis.
func (v Volume) FragmentShape() Shape {
	return v.fragment
}

// FragmentCount returns the number of fragments along axis d. The last
// fragment may be partial, hence the rounding up.
func (v Volume) FragmentCount(d int) int {
	return (v.cube[d] + v.fragment[d] - 1) / v.fragment[d]
}

// FragID returns the ID of the fragment containing the cube point p.
func (v Volume) FragID(p Point) ID {
	return ID{
		p[0] / v.fragment[0],
		p[1] / v.fragment[1],
		p[2] / v.fragment[2],
	}
}

// ToLocal translates the cube point p into the coordinate system of its
// containing fragment.
func (v Volume) ToLocal(p Point) Point {
	return Point{
		p[0] % v.fragment[0],
		p[1] % v.fragment[1],
		p[2] % v.fragment[2],
	}
}

// Slice returns the IDs of all fragments on the 2-dimensional face obtained
// by fixing axis d at the global index idx, in lexicographic order. A cube
// with zero extent along one of the free axes yields an empty slice.
func (v Volume) Slice(d, idx int) []ID {
	// The two free axes, in ascending order. With the fixed component
	// constant, nesting the outer axis outside the inner one enumerates the
	// IDs in lexicographic order directly.
	d0, d1 := 0, 1
	switch d {
	case 0:
		d0, d1 = 1, 2
	case 1:
		d0, d1 = 0, 2
	}

	k := idx / v.fragment[d]
	ids := make([]ID, 0, v.FragmentCount(d0)*v.FragmentCount(d1))
	for i := 0; i < v.FragmentCount(d0); i++ {
		for j := 0; j < v.FragmentCount(d1); j++ {
			var id ID
			id[d] = k
			id[d0] = i
			id[d1] = j
			ids = append(ids, id)
		}
	}
	return ids
}
