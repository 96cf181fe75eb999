// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

// Package oneseismic implements the request-planning core of the seismic
// volume query service.
//
// Surveys are stored as a regular grid of fixed-size sub-cubes
// ("fragments") on blob storage. Clients issue high-level queries ("give me
// inline 742", "extract a vertical curtain through these coordinates") and
// a fleet of workers each read one or more fragments and return partial
// results that are reassembled on the client.
//
// Planning a query means:
//
//  1. parse the incoming request
//  2. build all task descriptions (fragment ID + what to extract from the
//     fragment)
//  3. split the set of tasks into units of work
//
// I/O, the sending of work to the worker fleet, is outside this scope. The
// high-level algorithm is largely independent of the task description, so
// each query shape implements the small planner capability set and the
// schedule driver is shared between all of them. Adding a new shape means
// adding a new planner, not a new pipeline.
package oneseismic

import (
	"encoding/json"

	"github.com/cockroachdb/errors"

	"github.com/yngve793/oneseismic/internal/message"
)

// The error kinds surfaced by Plan. Match with errors.Is; the concrete
// errors carry human-readable context on top of these marks.
var (
	// ErrBadDocument means the query document could not be parsed, or its
	// manifest has an unsupported format-version.
	ErrBadDocument = errors.New("oneseismic: bad document")
	// ErrUnknownFunction means the document's function is not one of the
	// known query shapes.
	ErrUnknownFunction = errors.New("oneseismic: unknown function")
	// ErrLogic means a violated precondition, e.g. task size < 1. It
	// indicates a caller bug, not a malformed document.
	ErrLogic = errors.New("oneseismic: logic error")
)

// planner is the capability set one query shape implements: normalize the
// decoded query, build its fragment-jobs, and describe the output to the
// client. The schedule driver is generic over this set.
type planner interface {
	normalize()
	plan() []job
	header(nbundles int) *message.ProcessHeader
}

// job is one fragment-job as seen by the partitioner. The primary list
// (fragment IDs for slice, singles for curtain) is windowed in place and
// the job re-packed once per window.
type job interface {
	size() int
	window(lo, hi int)
	pack() ([]byte, error)
}

// Plan builds the taskset for one query document: the serialized, bundled
// fragment-jobs followed by the process header envelope, every record
// terminated by a 0x00 delimiter.
//
// Plan performs no I/O and keeps no state between calls; concurrent calls
// on independent documents are safe. On failure the taskset is never
// partially observable: the return is either a complete taskset or nil and
// an error marked with one of the kinds above.
func Plan(doc []byte, taskSize int) ([]byte, error) {
	var probe struct {
		Function string `json:"function"`
		Manifest struct {
			FormatVersion int `json:"format-version"`
		} `json:"manifest"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return nil, errors.Mark(
			errors.Wrap(err, "oneseismic: parsing query document"),
			ErrBadDocument,
		)
	}
	// Only format-version 1 exists today, but the gate is what allows
	// multiple document versions to coexist while storage migrates between
	// representations. Dispatch here on the version when that day comes.
	if v := probe.Manifest.FormatVersion; v != 1 {
		return nil, errors.Mark(
			errors.Newf("oneseismic: unsupported format-version; expected 1, was %d", v),
			ErrBadDocument,
		)
	}

	var p planner
	switch probe.Function {
	case "slice":
		q := new(slicePlanner)
		if err := json.Unmarshal(doc, &q.SliceQuery); err != nil {
			return nil, errors.Mark(
				errors.Wrap(err, "oneseismic: decoding slice query"),
				ErrBadDocument,
			)
		}
		p = q
	case "curtain":
		q := new(curtainPlanner)
		if err := json.Unmarshal(doc, &q.CurtainQuery); err != nil {
			return nil, errors.Mark(
				errors.Wrap(err, "oneseismic: decoding curtain query"),
				ErrBadDocument,
			)
		}
		p = q
	default:
		return nil, errors.Mark(
			errors.Newf("oneseismic: no handler for function %q", probe.Function),
			ErrUnknownFunction,
		)
	}

	return schedule(p, taskSize)
}

// schedule runs the shared pipeline: normalize, plan, partition, and
// finally append the header envelope as the taskset's last record.
func schedule(p planner, taskSize int) ([]byte, error) {
	p.normalize()
	taskset, nbundles, err := partition(p.plan(), taskSize)
	if err != nil {
		return nil, err
	}
	envelope, err := p.header(nbundles).PackWithEnvelope()
	if err != nil {
		return nil, err
	}
	taskset = append(taskset, envelope...)
	taskset = append(taskset, 0x00)
	return taskset, nil
}
