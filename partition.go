// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package oneseismic

import (
	"bytes"

	"github.com/cockroachdb/errors"
)

// taskCount returns the number of task-size'd bundles needed to process
// a job whose primary list has n entries. A job with an empty primary list needs no bundles at all; that is
// the legal empty plan, not an error.
func taskCount(n, taskSize int) (int, error) {
	c := (n + taskSize - 1) / taskSize
	if n > 0 && c <= 0 {
		return 0, errors.Mark(
			errors.New("oneseismic: task-count <= 0; probably integer overflow"),
			ErrLogic,
		)
	}
	return c, nil
}

// partition splits every job's primary list into windows of at most
// taskSize entries, packs one bundle per window, and concatenates the
// bundles into a \0-separated blob. The last bundle is terminated with a \0
// too. The packed records may themselves contain 0x00 bytes (a MessagePack
// zero integer is a single 0x00), so the record count is not the number of
// 0x00 bytes; readers find the record boundaries by measuring the packed
// values, as message.SplitTaskset does. While a vector-of-blobs would be the more obvious interface, the flat
// form makes processing the set of bundles slightly easier, saves a few
// allocations, and signals that the output is a bag of bytes.
//
// The jobs are windowed in place, in job order, so concatenating the
// windows of one job's bundles reproduces its original primary list.
func partition(jobs []job, taskSize int) (taskset []byte, nbundles int, err error) {
	if taskSize < 1 {
		return nil, 0, errors.Mark(
			errors.Newf("oneseismic: task_size (= %d) < 1", taskSize),
			ErrLogic,
		)
	}

	var buf bytes.Buffer
	for _, j := range jobs {
		n, err := taskCount(j.size(), taskSize)
		if err != nil {
			return nil, 0, err
		}
		for t := 0; t < n; t++ {
			lo := t * taskSize
			hi := min(lo+taskSize, j.size())
			j.window(lo, hi)
			packed, err := j.pack()
			if err != nil {
				return nil, 0, err
			}
			buf.Write(packed)
			buf.WriteByte(0x00)
		}
		nbundles += n
	}
	return buf.Bytes(), nbundles, nil
}
