// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"encoding/json"
	"log"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/yngve793/oneseismic"
)

var planCmd = &cobra.Command{
	Use:   "plan [--task-size N] [--out DIR] <doc.json> [doc.json ...]",
	Short: "build tasksets from query documents",
	Long: `
Build the taskset for each query document: the bundled fragment-jobs plus
the process header, as consumed by the worker fleet and the client.

Documents without a pid are assigned a fresh one. Each taskset is written
to <pid>.taskset under the output directory; with a single document and
--out -, the taskset goes to stdout.
`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPlan,
}

func runPlan(cmd *cobra.Command, args []string) error {
	if outDir == "-" && len(args) > 1 {
		return errors.New("--out - requires exactly one document")
	}

	var g errgroup.Group
	for _, path := range args {
		path := path
		g.Go(func() error {
			doc, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			doc, pid, err := ensurePid(doc)
			if err != nil {
				return errors.Wrapf(err, "%s", path)
			}
			taskset, err := oneseismic.Plan(doc, taskSize)
			if err != nil {
				return errors.Wrapf(err, "%s", path)
			}
			if outDir == "-" {
				_, err := os.Stdout.Write(taskset)
				return err
			}
			out := filepath.Join(outDir, pid+".taskset")
			if err := os.WriteFile(out, taskset, 0o644); err != nil {
				return err
			}
			log.Printf("%s: %d bytes -> %s", path, len(taskset), out)
			return nil
		})
	}
	return g.Wait()
}

// ensurePid assigns a fresh pid to documents that come without one, and
// reports the pid in effect.
func ensurePid(doc []byte) ([]byte, string, error) {
	var probe struct {
		Pid string `json:"pid"`
	}
	if err := json.Unmarshal(doc, &probe); err != nil {
		return nil, "", err
	}
	if probe.Pid != "" {
		return doc, probe.Pid, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(doc, &fields); err != nil {
		return nil, "", err
	}
	pid := uuid.New().String()
	raw, err := json.Marshal(pid)
	if err != nil {
		return nil, "", err
	}
	fields["pid"] = raw
	doc, err = json.Marshal(fields)
	if err != nil {
		return nil, "", err
	}
	return doc, pid, nil
}
