// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package message

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/yngve793/oneseismic/internal/geometry"
)

// Task is the part of a fragment-job common to every query shape: the query
// identity, the volume being read (data or one attribute) and its shapes.
// Workers reconstruct the geometry from Shape and CubeShape without access
// to the manifest.
type Task struct {
	Pid             string         `msgpack:"pid"`
	Guid            string         `msgpack:"guid"`
	StorageEndpoint string         `msgpack:"storage-endpoint"`
	Function        string         `msgpack:"function"`
	Attribute       string         `msgpack:"attribute"`
	Shape           geometry.Shape `msgpack:"shape"`
	CubeShape       geometry.Shape `msgpack:"cube-shape"`
}

// NewDataTask derives the common task fields for a job on the survey data
// cube.
func NewDataTask(q *Query) Task {
	return Task{
		Pid:             q.Pid,
		Guid:            q.Guid,
		StorageEndpoint: q.StorageEndpoint,
		Function:        q.Function,
		Attribute:       "data",
		Shape:           q.Manifest.FragmentShape(),
		CubeShape:       q.Manifest.CubeShape(),
	}
}

// NewAttributeTask derives the common task fields for a job on the
// attribute surface described by desc.
func NewAttributeTask(q *Query, desc *AttributeDesc) Task {
	return Task{
		Pid:             q.Pid,
		Guid:            q.Guid,
		StorageEndpoint: q.StorageEndpoint,
		Function:        q.Function,
		Attribute:       desc.Type,
		Shape:           desc.FragmentShape(),
		CubeShape:       desc.CubeShape(),
	}
}

// SliceTask is one fragment-job of a slice plan: read the fragments in IDs
// and extract the plane at the fragment-local index Idx along axis Dim.
type SliceTask struct {
	Task
	Dim int           `msgpack:"dim"`
	Idx int           `msgpack:"idx"`
	IDs []geometry.ID `msgpack:"ids"`
}

// Single is one fragment's worth of curtain extraction: the fragment to
// read and the local (x, y) trace positions to pull out of it. Offset is
// the input-array index at which the fragment was first touched; client
// side assembly uses it to place the traces.
type Single struct {
	ID          geometry.ID `msgpack:"id"`
	Coordinates [][2]int    `msgpack:"coordinates"`
	Offset      int         `msgpack:"offset"`
}

// CurtainTask is one fragment-job of a curtain plan.
type CurtainTask struct {
	Task
	Singles []Single `msgpack:"singles"`
}

// Pack serializes the task to its wire form.
func (t *SliceTask) Pack() ([]byte, error) {
	return msgpack.Marshal(t)
}

// Pack serializes the task to its wire form.
func (t *CurtainTask) Pack() ([]byte, error) {
	return msgpack.Marshal(t)
}

// UnpackSliceTask is the inverse of SliceTask.Pack.
func UnpackSliceTask(b []byte) (*SliceTask, error) {
	t := new(SliceTask)
	if err := msgpack.Unmarshal(b, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UnpackCurtainTask is the inverse of CurtainTask.Pack.
func UnpackCurtainTask(b []byte) (*CurtainTask, error) {
	t := new(CurtainTask)
	if err := msgpack.Unmarshal(b, t); err != nil {
		return nil, err
	}
	return t, nil
}
