// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package oneseismic

import (
	"math"
	"slices"

	"github.com/yngve793/oneseismic/internal/geometry"
	"github.com/yngve793/oneseismic/internal/message"
)

// curtainPlanner plans queries for a vertical sheet through the cube: one
// trace per input (x, y) pair, each trace spanning the full depth of the
// cube.
type curtainPlanner struct {
	message.CurtainQuery
}

type curtainJob struct {
	task *message.CurtainTask
	// all is the complete singles list; task.Singles is the currently
	// windowed view of it.
	all []message.Single
}

func newCurtainJob(t *message.CurtainTask) *curtainJob {
	return &curtainJob{task: t, all: t.Singles}
}

func (j *curtainJob) size() int { return len(j.all) }

func (j *curtainJob) window(lo, hi int) { j.task.Singles = j.all[lo:hi] }

func (j *curtainJob) pack() ([]byte, error) { return j.task.Pack() }

func (p *curtainPlanner) normalize() {
	p.NormalizeAttributes()
}

// top returns the cube point at the surface of trace i. The input is two
// parallel arrays; element i maps to the coordinate (dim0s[i], dim1s[i], 0),
// which identifies the containing fragment ID and its z-axis column.
func (p *curtainPlanner) top(i int) geometry.Point {
	return geometry.Point{p.Dim0s[i], p.Dim1s[i], 0}
}

// find locates the single for the fragment id in the sorted singles list.
func find(singles []message.Single, id geometry.ID) (int, bool) {
	return slices.BinarySearchFunc(singles, id,
		func(s message.Single, id geometry.ID) int {
			return s.ID.Compare(id)
		})
}

func (p *curtainPlanner) plan() []job {
	vol := geometry.New(p.Manifest.CubeShape(), p.Manifest.FragmentShape())
	zfrags := vol.FragmentCount(2)

	// Guess the number of coordinates per fragment. A reasonable assumption
	// is a plane going through a fragment, with a little bit of margin. Not
	// pre-reserving is perfectly fine, but guessing well saves a bunch of
	// re-allocations in the average case, and the singles are short-lived
	// enough that overestimating slightly is not a problem.
	fshape := vol.FragmentShape()
	approx := int(math.Ceil(float64(max(fshape[0], fshape[1])) * 1.2))

	data := &message.CurtainTask{Task: message.NewDataTask(&p.Query)}

	// Pre-allocate the bins by scanning the input. All fragments in the
	// column (z-axis) are generated from the x/y pair, as many pairs will
	// end up in the same bin. This is effectively
	//
	//	bins = set([fragmentid(x, y, z) for z in zheight for (x, y) in input])
	//
	// but without any intermediary structures. The bins stay sorted
	// lexicographically by fragment ID throughout.
	for i := range p.Dim0s {
		fid := vol.FragID(p.top(i))
		pos, ok := find(data.Singles, fid)
		if !ok {
			column := make([]message.Single, zfrags)
			for z := range column {
				column[z] = message.Single{
					ID:          geometry.ID{fid[0], fid[1], z},
					Coordinates: make([][2]int, 0, approx),
					Offset:      i,
				}
			}
			data.Singles = slices.Insert(data.Singles, pos, column...)
		}
	}

	// Traverse the x/y coordinates and put them in the correct bins. The
	// same local (x, y) is mirrored across every depth fragment in the
	// column.
	for i := range p.Dim0s {
		top := p.top(i)
		lid := vol.ToLocal(top)
		pos, _ := find(data.Singles, vol.FragID(top))
		for z := 0; z < zfrags; z++ {
			s := &data.Singles[pos+z]
			s.Coordinates = append(s.Coordinates, [2]int{lid[0], lid[1]})
		}
	}

	jobs := []job{newCurtainJob(data)}

	for _, attr := range p.Attributes {
		// It's perfectly common for queries to request attributes that
		// aren't recorded for a survey - in this case, silently drop it.
		desc, ok := p.Manifest.Attribute(attr)
		if !ok {
			continue
		}

		// The attributes may be partitioned differently, so build a fresh
		// volume from the descriptor. Surfaces are depth-1, so there is no
		// z-column to mirror into; a single bin per x/y fragment will do.
		avol := geometry.New(desc.CubeShape(), desc.FragmentShape())
		t := &message.CurtainTask{Task: message.NewAttributeTask(&p.Query, desc)}

		for i := range p.Dim0s {
			top := p.top(i)
			fid := avol.FragID(top)
			lid := avol.ToLocal(top)
			pos, ok := find(t.Singles, fid)
			if !ok {
				t.Singles = slices.Insert(t.Singles, pos, message.Single{
					ID:     fid,
					Offset: i,
				})
			}
			s := &t.Singles[pos]
			s.Coordinates = append(s.Coordinates, [2]int{lid[0], lid[1]})
		}

		jobs = append(jobs, newCurtainJob(t))
	}

	return jobs
}

func (p *curtainPlanner) header(nbundles int) *message.ProcessHeader {
	mdims := p.Manifest.LineNumbers
	zaxis := mdims[len(mdims)-1]

	h := &message.ProcessHeader{
		Pid:        p.Pid,
		Function:   p.Function,
		Nbundles:   nbundles,
		Ndims:      len(mdims),
		Labels:     p.Manifest.LineLabels,
		Attributes: append([]string{"data"}, p.Attributes...),
	}

	h.Index = append(h.Index, len(p.Dim0s), len(p.Dim1s), len(zaxis))
	for _, x := range p.Dim0s {
		h.Index = append(h.Index, mdims[0][x])
	}
	for _, y := range p.Dim1s {
		h.Index = append(h.Index, mdims[1][y])
	}
	h.Index = append(h.Index, zaxis...)

	// The curtain is already pretty constrained in its output shapes since
	// it can only query "vertically": data is one trace per input pair, and
	// the attributes are always 1D.
	h.Shapes = append(h.Shapes, 2, h.Index[1], h.Index[2])
	for range p.Attributes {
		h.Shapes = append(h.Shapes, 1, h.Index[0])
	}

	return h
}
