// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package oneseismic

import (
	"github.com/yngve793/oneseismic/internal/geometry"
	"github.com/yngve793/oneseismic/internal/message"
)

// slicePlanner plans queries for a 2-dimensional face of the cube: fix one
// axis at a cube index and read every fragment the face passes through.
type slicePlanner struct {
	message.SliceQuery
}

type sliceJob struct {
	task *message.SliceTask
	// all is the complete fragment-ID list; task.IDs is the currently
	// windowed view of it.
	all []geometry.ID
}

func newSliceJob(t *message.SliceTask) *sliceJob {
	return &sliceJob{task: t, all: t.IDs}
}

func (j *sliceJob) size() int { return len(j.all) }

func (j *sliceJob) window(lo, hi int) { j.task.IDs = j.all[lo:hi] }

func (j *sliceJob) pack() ([]byte, error) { return j.task.Pack() }

func (p *slicePlanner) normalize() {
	p.NormalizeAttributes()
}

func (p *slicePlanner) plan() []job {
	vol := geometry.New(p.Manifest.CubeShape(), p.Manifest.FragmentShape())

	data := &message.SliceTask{
		Task: message.NewDataTask(&p.Query),
		Dim:  p.Dim,
		Idx:  vol.FragmentShape().Index(p.Dim, p.Idx),
		IDs:  vol.Slice(p.Dim, p.Idx),
	}
	jobs := []job{newSliceJob(data)}

	for _, attr := range p.Attributes {
		// It's perfectly common for queries to request attributes that
		// aren't recorded for a survey - in this case, silently drop it.
		desc, ok := p.Manifest.Attribute(attr)
		if !ok {
			continue
		}

		// The attributes may be partitioned differently, so build a fresh
		// volume from the descriptor.
		avol := geometry.New(desc.CubeShape(), desc.FragmentShape())

		// Attributes are really 2D surfaces (depth = 1), but stored as 3D
		// volumes to make querying them trivial. When requesting attributes
		// for z-slices the index will almost always not be 0, the only
		// valid z-index in the surface. Modulus moves the index back into
		// the grid, and is a no-op for any index in a valid dimension.
		idx := p.Idx % avol.CubeShape()[p.Dim]

		t := &message.SliceTask{
			Task: message.NewAttributeTask(&p.Query, desc),
			Dim:  p.Dim,
			Idx:  avol.FragmentShape().Index(p.Dim, idx),
			IDs:  avol.Slice(p.Dim, idx),
		}
		jobs = append(jobs, newSliceJob(t))
	}

	return jobs
}

func (p *slicePlanner) header(nbundles int) *message.ProcessHeader {
	mdims := p.Manifest.LineNumbers

	h := &message.ProcessHeader{
		Pid:        p.Pid,
		Function:   p.Function,
		Nbundles:   nbundles,
		Ndims:      len(mdims),
		Labels:     p.Manifest.LineLabels,
		Attributes: append([]string{"data"}, p.Attributes...),
	}

	// Build the (line number) index of the output. The queried direction is
	// also included, collapsed to length 1, so that users can infer what
	// line was queried and the direction of the output.
	for i := range mdims {
		if i != p.Dim {
			h.Index = append(h.Index, len(mdims[i]))
		} else {
			h.Index = append(h.Index, 1)
		}
	}
	for i := range mdims {
		if i != p.Dim {
			h.Index = append(h.Index, mdims[i]...)
		} else {
			h.Index = append(h.Index, mdims[i][p.Idx])
		}
	}

	// Record the shapes of the output. The first attribute is always 'data'
	// and its shape always matches that of the index. One of the dimensions
	// is 1, so users with numpy probably want to squeeze the array before
	// use; how to handle the 1-dimensions is left to them.
	h.Shapes = append(h.Shapes, h.Ndims)
	h.Shapes = append(h.Shapes, h.Index[:h.Ndims]...)

	for range p.Attributes {
		h.Shapes = append(h.Shapes, h.Ndims)
		h.Shapes = append(h.Shapes, h.Index[:h.Ndims]...)
		// If the query is vertical (in/crossline) then the attributes
		// should all be 1D arrays, one per trace. When it is a time/depth
		// slice the output is a field and the attributes are 2D. This maps
		// the attribute shapes from/to:
		//
		// dim0: [1, N, M] -> [1, N, 1]
		// dim1: [N, 1, M] -> [N, 1, 1]
		// dim2: [N, M, 1] -> [N, M, 1]
		h.Shapes[len(h.Shapes)-1] = 1
	}

	return h
}
