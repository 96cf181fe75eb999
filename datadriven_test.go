// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package oneseismic

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/cockroachdb/datadriven"

	"github.com/yngve793/oneseismic/internal/geometry"
	"github.com/yngve793/oneseismic/internal/message"
)

// The datadriven planner tests describe surveys with a compact directive
// syntax instead of full JSON documents:
//
//	plan dim=0 idx=3 cube=(4,4,4) fragment=(2,2,2) attributes=(cdp)
//	attr cdpx cube=(4,4,1) fragment=(4,4,1)
//	----
//	...
//
// Line numbers are synthesized with the same (d+1)*100 + i formula as the
// unit tests, so axis 0 numbers start at 100, axis 1 at 200, axis 2 at 300.

func ddArg(t *testing.T, d *datadriven.TestData, key string) []string {
	t.Helper()
	for _, a := range d.CmdArgs {
		if a.Key == key {
			return a.Vals
		}
	}
	return nil
}

func ddInt(t *testing.T, d *datadriven.TestData, key string) int {
	t.Helper()
	vals := ddArg(t, d, key)
	if len(vals) != 1 {
		d.Fatalf(t, "expected %s=<int>", key)
	}
	n, err := strconv.Atoi(vals[0])
	if err != nil {
		d.Fatalf(t, "%s: %v", key, err)
	}
	return n
}

func ddIntList(t *testing.T, d *datadriven.TestData, key string) []int {
	t.Helper()
	vals := ddArg(t, d, key)
	ns := make([]int, len(vals))
	for i, v := range vals {
		n, err := strconv.Atoi(v)
		if err != nil {
			d.Fatalf(t, "%s: %v", key, err)
		}
		ns[i] = n
	}
	return ns
}

func ddShape(t *testing.T, d *datadriven.TestData, key string) geometry.Shape {
	t.Helper()
	ns := ddIntList(t, d, key)
	if len(ns) != 3 {
		d.Fatalf(t, "expected %s=(x,y,z)", key)
	}
	return geometry.Shape{ns[0], ns[1], ns[2]}
}

// parseShape parses the "(x,y,z)" form used by attr lines in the input
// section.
func parseShape(t *testing.T, d *datadriven.TestData, s string) geometry.Shape {
	t.Helper()
	s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		d.Fatalf(t, "expected (x,y,z), got %q", s)
	}
	var shape geometry.Shape
	for i, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			d.Fatalf(t, "%q: %v", s, err)
		}
		shape[i] = n
	}
	return shape
}

func ddManifest(t *testing.T, d *datadriven.TestData) message.Manifest {
	t.Helper()
	m := testManifest(ddShape(t, d, "cube"), ddShape(t, d, "fragment"))
	for _, line := range strings.Split(d.Input, "\n") {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if fields[0] != "attr" || len(fields) != 4 {
			d.Fatalf(t, "expected 'attr <type> cube=(x,y,z) fragment=(x,y,z)', got %q", line)
		}
		cube := parseShape(t, d, strings.TrimPrefix(fields[2], "cube="))
		fragment := parseShape(t, d, strings.TrimPrefix(fields[3], "fragment="))
		m.Attributes = append(m.Attributes, testAttribute(fields[1], cube, fragment))
	}
	return m
}

func ddAttrList(t *testing.T, d *datadriven.TestData) []string {
	t.Helper()
	return ddArg(t, d, "attributes")
}

func ddIDs(ids []geometry.ID) string {
	var sb strings.Builder
	for _, id := range ids {
		fmt.Fprintf(&sb, " (%d,%d,%d)", id[0], id[1], id[2])
	}
	return sb.String()
}

func ddCoordinates(coords [][2]int) string {
	var sb strings.Builder
	for _, c := range coords {
		fmt.Fprintf(&sb, " (%d,%d)", c[0], c[1])
	}
	return sb.String()
}

func ddHeader(h *message.ProcessHeader) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "pid=%s function=%s nbundles=%d ndims=%d\n",
		h.Pid, h.Function, h.Nbundles, h.Ndims)
	fmt.Fprintf(&sb, "labels: %v\n", h.Labels)
	fmt.Fprintf(&sb, "attributes: %v\n", h.Attributes)
	fmt.Fprintf(&sb, "index: %v\n", h.Index)
	fmt.Fprintf(&sb, "shapes: %v\n", h.Shapes)
	return sb.String()
}
