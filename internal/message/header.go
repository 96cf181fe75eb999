// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package message

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"github.com/vmihailenco/msgpack/v5"
)

// ProcessHeader describes the number of bundles a plan was split into and
// advises the client on how to parse the response.
//
// The index is context sensitive; its content depends on the shape queried.
// It is laid out linearly: the first Ndims entries are the per-axis sizes
// of the output, followed by the per-axis index values (line numbers)
// flattened in axis order. Conceptually:
//
//	{
//	 ndims: 2
//	 index: [3 5 [n1 n2 n3] [m1 m2 m3 m4 m5]]
//	}
//
// While slightly less intuitive than nested arrays, the flat layout makes
// parsing and serializing a lot simpler in many otherwise clumsy cases.
//
// Shapes encodes the output shape of "data" and of every attribute, each as
// a rank followed by that many extents, concatenated.
type ProcessHeader struct {
	Pid        string   `msgpack:"pid"`
	Function   string   `msgpack:"function"`
	Nbundles   int      `msgpack:"nbundles"`
	Ndims      int      `msgpack:"ndims"`
	Index      []int    `msgpack:"index"`
	Labels     []string `msgpack:"labels"`
	Attributes []string `msgpack:"attributes"`
	Shapes     []int    `msgpack:"shapes"`
}

// PackWithEnvelope serializes the header wrapped in the response envelope.
//
// The response message format is designed so that clients can choose to
// buffer and parse the message in one go, or stream it. The message *as a
// whole* must therefore be a valid MessagePack value, not just a
// by-convention concatenation of independent records. As a value the whole
// response is
//
//	[header, [bundle1, bundle2, ...]]
//
// which in bytes is
//
//	array(2) <header> array(nbundles) <bundle1> <bundle2> ...
//
// where array(k) is an array type tag and length. This function emits the
// two array tags and the header; the bundles precede this record in the
// taskset and streaming readers allocate exactly Nbundles slots from the
// inner tag.
func (h *ProcessHeader) PackWithEnvelope() ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.EncodeArrayLen(2); err != nil {
		return nil, err
	}
	if err := enc.Encode(h); err != nil {
		return nil, err
	}
	if err := enc.EncodeArrayLen(h.Nbundles); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UnpackEnvelope is the inverse of PackWithEnvelope: it decodes the header
// record and returns it along with the bundle count promised by the inner
// array tag.
func UnpackEnvelope(b []byte) (*ProcessHeader, int, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(b))
	n, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, 0, err
	}
	if n != 2 {
		return nil, 0, errors.Newf("envelope: expected outer array(2), got array(%d)", n)
	}
	h := new(ProcessHeader)
	if err := dec.Decode(h); err != nil {
		return nil, 0, err
	}
	nbundles, err := dec.DecodeArrayLen()
	if err != nil {
		return nil, 0, err
	}
	return h, nbundles, nil
}
