// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package message defines the typed model of the scheduler's inputs and
// outputs: the survey manifest, the per-shape query documents, the
// fragment-job ("task") records handed to workers, and the process header
// that describes the overall response to clients.
//
// Queries arrive as JSON; tasks and headers leave as MessagePack. The
// MessagePack side is load-bearing: clients stream the response and rely on
// the exact record framing described in taskset.go.
package message

import (
	"slices"

	"github.com/yngve793/oneseismic/internal/geometry"
)

// Manifest describes a single survey: the label and line numbers of each of
// the three axes, the shape of the stored fragments, and the auxiliary
// attribute surfaces recorded for the survey.
//
// Line-number lists are dense indexings: the i-th entry is the line number
// for cube-index i along that axis. The cube shape is therefore implied by
// the lengths of the lists.
type Manifest struct {
	FormatVersion int             `json:"format-version"`
	LineLabels    []string        `json:"line-labels"`
	LineNumbers   [][]int         `json:"line-numbers"`
	FragmentXs    int             `json:"fragment-xs"`
	FragmentYs    int             `json:"fragment-ys"`
	FragmentZs    int             `json:"fragment-zs"`
	Attributes    []AttributeDesc `json:"attr"`
}

// AttributeDesc describes one auxiliary surface, e.g. the cdpx/cdpy UTM
// coordinates. Attributes may be partitioned differently from the data
// cube, so each carries its own line numbers and fragment shape.
type AttributeDesc struct {
	Type        string  `json:"type"`
	LineNumbers [][]int `json:"line-numbers"`
	FragmentXs  int     `json:"fragment-xs"`
	FragmentYs  int     `json:"fragment-ys"`
	FragmentZs  int     `json:"fragment-zs"`
}

// CubeShape returns the extent of the survey cube along each axis.
func (m *Manifest) CubeShape() geometry.Shape {
	return geometry.Shape{
		len(m.LineNumbers[0]),
		len(m.LineNumbers[1]),
		len(m.LineNumbers[2]),
	}
}

// FragmentShape returns the shape of the fragments the cube is stored as.
func (m *Manifest) FragmentShape() geometry.Shape {
	return geometry.Shape{m.FragmentXs, m.FragmentYs, m.FragmentZs}
}

// Attribute looks up the descriptor for the attribute type attr, e.g.
// "cdpx". The second return is false when the survey does not record it.
func (m *Manifest) Attribute(attr string) (*AttributeDesc, bool) {
	for i := range m.Attributes {
		if m.Attributes[i].Type == attr {
			return &m.Attributes[i], true
		}
	}
	return nil, false
}

// CubeShape returns the extent of the attribute surface along each axis.
// Attributes are 2-dimensional surfaces stored as depth-1 volumes, so the
// last extent is usually 1.
func (a *AttributeDesc) CubeShape() geometry.Shape {
	return geometry.Shape{
		len(a.LineNumbers[0]),
		len(a.LineNumbers[1]),
		len(a.LineNumbers[2]),
	}
}

// FragmentShape returns the shape of the fragments the attribute is stored
// as.
func (a *AttributeDesc) FragmentShape() geometry.Shape {
	return geometry.Shape{a.FragmentXs, a.FragmentYs, a.FragmentZs}
}

// Query holds the fields common to every query shape. Guid and
// StorageEndpoint are carried verbatim onto every task so that workers know
// what store to read; the scheduler itself never interprets them.
type Query struct {
	Pid             string   `json:"pid"`
	Guid            string   `json:"guid"`
	StorageEndpoint string   `json:"storage-endpoint"`
	Manifest        Manifest `json:"manifest"`
	Function        string   `json:"function"`
	Attributes      []string `json:"attributes"`
}

// SliceQuery requests the 2-dimensional face of the cube obtained by fixing
// axis Dim at the cube index Idx.
type SliceQuery struct {
	Query
	Dim int `json:"dim"`
	Idx int `json:"idx"`
}

// CurtainQuery requests a vertical sheet through the cube. Dim0s and Dim1s
// are parallel arrays; element i denotes the cube point
// (Dim0s[i], Dim1s[i], 0), the top of a vertical column.
type CurtainQuery struct {
	Query
	Dim0s []int `json:"dim0s"`
	Dim1s []int `json:"dim1s"`
}

// NormalizeAttributes rewrites the requested attribute list into its
// canonical form: the shorthand "cdp" expands to "cdpx" and "cdpy", and the
// result is sorted and de-duplicated. Attributes the manifest does not
// record are kept; the planners drop them silently.
func (q *Query) NormalizeAttributes() {
	attrs := make([]string, 0, len(q.Attributes)*2)
	for _, attr := range q.Attributes {
		if attr == "cdp" {
			attrs = append(attrs, "cdpx", "cdpy")
		} else {
			attrs = append(attrs, attr)
		}
	}
	slices.Sort(attrs)
	q.Attributes = slices.Compact(attrs)
}
