// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package oneseismic

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/require"

	"github.com/yngve793/oneseismic/internal/geometry"
	"github.com/yngve793/oneseismic/internal/message"
)

func mustMarshal(t *testing.T, v interface{}) []byte {
	t.Helper()
	doc, err := json.Marshal(v)
	require.NoError(t, err)
	return doc
}

func TestPlanBadJSON(t *testing.T) {
	_, err := Plan([]byte("{not json"), 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBadDocument))
}

func TestPlanBadFormatVersion(t *testing.T) {
	m := testManifest(geometry.Shape{4, 4, 4}, geometry.Shape{2, 2, 2})
	m.FormatVersion = 2
	doc := mustMarshal(t, message.SliceQuery{
		Query: testQuery("slice", m, nil),
		Dim:   0,
		Idx:   1,
	})
	_, err := Plan(doc, 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrBadDocument))
	require.Contains(t, err.Error(), "format-version")
}

func TestPlanUnknownFunction(t *testing.T) {
	m := testManifest(geometry.Shape{4, 4, 4}, geometry.Shape{2, 2, 2})
	doc := mustMarshal(t, testQuery("horizon", m, nil))
	_, err := Plan(doc, 10)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnknownFunction))
}

func TestPlanBadTaskSize(t *testing.T) {
	m := testManifest(geometry.Shape{4, 4, 4}, geometry.Shape{2, 2, 2})
	doc := mustMarshal(t, message.SliceQuery{
		Query: testQuery("slice", m, nil),
		Dim:   0,
		Idx:   1,
	})
	_, err := Plan(doc, 0)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLogic))
}

func TestPlanSliceTaskset(t *testing.T) {
	m := testManifest(geometry.Shape{4, 4, 4}, geometry.Shape{2, 2, 2})
	doc := mustMarshal(t, message.SliceQuery{
		Query: testQuery("slice", m, nil),
		Dim:   0,
		Idx:   3,
	})

	// 4 fragments on the face, task size 3: bundles of 3 and 1.
	taskset, err := Plan(doc, 3)
	require.NoError(t, err)

	bundles, envelope, err := message.SplitTaskset(taskset)
	require.NoError(t, err)
	require.Len(t, bundles, 2)

	head, nbundles, err := message.UnpackEnvelope(envelope)
	require.NoError(t, err)
	require.Equal(t, 2, head.Nbundles)
	require.Equal(t, len(bundles), nbundles)
	require.Equal(t, "test-pid", head.Pid)
	require.Equal(t, "slice", head.Function)

	var ids []geometry.ID
	for _, bundle := range bundles {
		task, err := message.UnpackSliceTask(bundle)
		require.NoError(t, err)
		require.Equal(t, "test-pid", task.Pid)
		require.Equal(t, "test-guid", task.Guid)
		require.Equal(t, "https://storage.example.com", task.StorageEndpoint)
		require.Equal(t, "data", task.Attribute)
		require.Equal(t, 1, task.Idx)
		ids = append(ids, task.IDs...)
	}
	require.Equal(t,
		[]geometry.ID{{1, 0, 0}, {1, 0, 1}, {1, 1, 0}, {1, 1, 1}},
		ids,
	)
}

func TestPlanCurtainTaskset(t *testing.T) {
	m := testManifest(geometry.Shape{8, 8, 4}, geometry.Shape{4, 4, 2})
	doc := mustMarshal(t, message.CurtainQuery{
		Query: testQuery("curtain", m, nil),
		Dim0s: []int{1, 5},
		Dim1s: []int{1, 1},
	})

	taskset, err := Plan(doc, 3)
	require.NoError(t, err)

	bundles, envelope, err := message.SplitTaskset(taskset)
	require.NoError(t, err)
	// 4 singles, task size 3: bundles of 3 and 1.
	require.Len(t, bundles, 2)

	head, _, err := message.UnpackEnvelope(envelope)
	require.NoError(t, err)
	require.Equal(t, "curtain", head.Function)
	require.Equal(t, 2, head.Nbundles)

	var singles []message.Single
	for _, bundle := range bundles {
		task, err := message.UnpackCurtainTask(bundle)
		require.NoError(t, err)
		singles = append(singles, task.Singles...)
	}
	require.Len(t, singles, 4)
	want := []geometry.ID{{0, 0, 0}, {0, 0, 1}, {1, 0, 0}, {1, 0, 1}}
	for i, s := range singles {
		require.Equal(t, want[i], s.ID)
		require.Equal(t, [][2]int{{1, 1}}, s.Coordinates)
	}
}

func TestPlanNormalizesAttributes(t *testing.T) {
	acube := geometry.Shape{4, 4, 1}
	m := testManifest(
		geometry.Shape{4, 4, 8}, geometry.Shape{4, 4, 4},
		testAttribute("cdpx", acube, acube),
		testAttribute("cdpy", acube, acube),
	)
	doc := mustMarshal(t, message.SliceQuery{
		Query: testQuery("slice", m, []string{"cdp", "cdpx", "cdp"}),
		Dim:   2,
		Idx:   5,
	})

	taskset, err := Plan(doc, 10)
	require.NoError(t, err)

	bundles, envelope, err := message.SplitTaskset(taskset)
	require.NoError(t, err)
	// One data bundle plus one per attribute surface.
	require.Len(t, bundles, 3)

	head, _, err := message.UnpackEnvelope(envelope)
	require.NoError(t, err)
	require.Equal(t, []string{"data", "cdpx", "cdpy"}, head.Attributes)
}

// The taskset is all-or-nothing: errors surface before any bytes do.
func TestPlanErrorsReturnNoBytes(t *testing.T) {
	m := testManifest(geometry.Shape{4, 4, 4}, geometry.Shape{2, 2, 2})
	doc := mustMarshal(t, message.SliceQuery{
		Query: testQuery("slice", m, nil),
		Dim:   0,
		Idx:   1,
	})
	taskset, err := Plan(doc, -1)
	require.Error(t, err)
	require.Nil(t, taskset)
}
