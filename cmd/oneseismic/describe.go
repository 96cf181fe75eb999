// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/yngve793/oneseismic/internal/message"
)

var describeCmd = &cobra.Command{
	Use:   "describe <taskset>",
	Short: "print the contents of a taskset",
	Long: `
Split a taskset into its bundles and header envelope and print a summary:
the process header fields, and one row per bundle with the volume it reads
and the amount of work it carries.
`,
	Args: cobra.ExactArgs(1),
	RunE: runDescribe,
}

func runDescribe(cmd *cobra.Command, args []string) error {
	taskset, err := os.ReadFile(args[0])
	if err != nil {
		return err
	}
	bundles, envelope, err := message.SplitTaskset(taskset)
	if err != nil {
		return err
	}
	head, nbundles, err := message.UnpackEnvelope(envelope)
	if err != nil {
		return err
	}

	fmt.Printf("pid:        %s\n", head.Pid)
	fmt.Printf("function:   %s\n", head.Function)
	fmt.Printf("nbundles:   %d (%d in taskset)\n", head.Nbundles, nbundles)
	fmt.Printf("labels:     %s\n", strings.Join(head.Labels, ", "))
	fmt.Printf("attributes: %s\n", strings.Join(head.Attributes, ", "))
	fmt.Printf("index:      %v\n", head.Index[:head.Ndims])
	fmt.Printf("shapes:     %v\n", head.Shapes)
	fmt.Println()

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"#", "attribute", "extract", "fragments", "traces"})
	for i, bundle := range bundles {
		row, err := bundleRow(head.Function, i, bundle)
		if err != nil {
			return err
		}
		table.Append(row)
	}
	table.Render()
	return nil
}

func bundleRow(function string, i int, bundle []byte) ([]string, error) {
	switch function {
	case "slice":
		t, err := message.UnpackSliceTask(bundle)
		if err != nil {
			return nil, err
		}
		return []string{
			strconv.Itoa(i),
			t.Attribute,
			fmt.Sprintf("dim=%d idx=%d", t.Dim, t.Idx),
			strconv.Itoa(len(t.IDs)),
			"",
		}, nil
	case "curtain":
		t, err := message.UnpackCurtainTask(bundle)
		if err != nil {
			return nil, err
		}
		traces := 0
		for _, s := range t.Singles {
			traces += len(s.Coordinates)
		}
		return []string{
			strconv.Itoa(i),
			t.Attribute,
			fmt.Sprintf("%d singles", len(t.Singles)),
			strconv.Itoa(len(t.Singles)),
			strconv.Itoa(traces),
		}, nil
	default:
		return nil, errors.Newf("no handler for function %q", function)
	}
}
