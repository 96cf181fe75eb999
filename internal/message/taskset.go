// Copyright 2026 The Oneseismic-Go Authors. All rights reserved. Use of
// this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package message

import (
	"encoding/binary"

	"github.com/cockroachdb/errors"
)

// A taskset is a flat byte blob of bundle records followed by the header
// envelope, each record terminated by a single 0x00 delimiter. The bundles
// are complete MessagePack maps, so the reader can recover the record
// boundaries by measuring one value at a time; the envelope is recognized
// by its leading array(2) tag, which no bundle starts with.

// SplitTaskset splits a taskset blob into its bundle records and the
// trailing header envelope. The returned slices alias b.
func SplitTaskset(b []byte) (bundles [][]byte, envelope []byte, err error) {
	off := 0
	for off < len(b) {
		if b[off] == 0x92 {
			// array(2): the envelope. The inner bundle array is a length
			// tag only, so measure the outer tag, the header value, and the
			// inner tag.
			n, err := envelopeLen(b[off:])
			if err != nil {
				return nil, nil, err
			}
			envelope = b[off : off+n]
			off += n
			if off >= len(b) || b[off] != 0x00 {
				return nil, nil, errors.New("taskset: envelope not null-terminated")
			}
			if off+1 != len(b) {
				return nil, nil, errors.New("taskset: trailing bytes after envelope")
			}
			return bundles, envelope, nil
		}

		n, err := valueLen(b[off:])
		if err != nil {
			return nil, nil, err
		}
		bundles = append(bundles, b[off:off+n])
		off += n
		if off >= len(b) || b[off] != 0x00 {
			return nil, nil, errors.New("taskset: bundle not null-terminated")
		}
		off++
	}
	return nil, nil, errors.New("taskset: missing header envelope")
}

func envelopeLen(b []byte) (int, error) {
	// Skip the array(2) tag, then the header map.
	n, err := valueLen(b[1:])
	if err != nil {
		return 0, err
	}
	off := 1 + n
	// The inner array tag carries a length but no elements; only the tag
	// bytes belong to this record.
	if off >= len(b) {
		return 0, errors.New("taskset: truncated envelope")
	}
	switch c := b[off]; {
	case c >= 0x90 && c <= 0x9f:
		return off + 1, nil
	case c == 0xdc:
		return off + 3, nil
	case c == 0xdd:
		return off + 5, nil
	default:
		return 0, errors.Newf("taskset: expected array tag in envelope, got 0x%02x", c)
	}
}

// valueLen measures the encoded length of the single MessagePack value at
// the start of b. It understands the subset of tags the scheduler emits
// (and the client may emit back): nil, bool, ints, floats, str, bin, array
// and map.
func valueLen(b []byte) (int, error) {
	if len(b) == 0 {
		return 0, errors.New("taskset: truncated value")
	}

	elems := func(off, n int) (int, error) {
		for i := 0; i < n; i++ {
			if off > len(b) {
				return 0, errors.New("taskset: truncated value")
			}
			m, err := valueLen(b[off:])
			if err != nil {
				return 0, err
			}
			off += m
		}
		return off, nil
	}

	c := b[0]
	switch {
	case c <= 0x7f || c >= 0xe0: // fixint
		return 1, nil
	case c >= 0x80 && c <= 0x8f: // fixmap
		return elems(1, 2*int(c&0x0f))
	case c >= 0x90 && c <= 0x9f: // fixarray
		return elems(1, int(c&0x0f))
	case c >= 0xa0 && c <= 0xbf: // fixstr
		return 1 + int(c&0x1f), nil
	}

	need := func(n int) error {
		if len(b) < n {
			return errors.New("taskset: truncated value")
		}
		return nil
	}

	switch c {
	case 0xc0, 0xc2, 0xc3: // nil, false, true
		return 1, nil
	case 0xcc, 0xd0: // uint8, int8
		return 2, nil
	case 0xcd, 0xd1: // uint16, int16
		return 3, nil
	case 0xce, 0xd2, 0xca: // uint32, int32, float32
		return 5, nil
	case 0xcf, 0xd3, 0xcb: // uint64, int64, float64
		return 9, nil
	case 0xc4, 0xd9: // bin8, str8
		if err := need(2); err != nil {
			return 0, err
		}
		return 2 + int(b[1]), nil
	case 0xc5, 0xda: // bin16, str16
		if err := need(3); err != nil {
			return 0, err
		}
		return 3 + int(binary.BigEndian.Uint16(b[1:])), nil
	case 0xc6, 0xdb: // bin32, str32
		if err := need(5); err != nil {
			return 0, err
		}
		return 5 + int(binary.BigEndian.Uint32(b[1:])), nil
	case 0xdc: // array16
		if err := need(3); err != nil {
			return 0, err
		}
		return elems(3, int(binary.BigEndian.Uint16(b[1:])))
	case 0xdd: // array32
		if err := need(5); err != nil {
			return 0, err
		}
		return elems(5, int(binary.BigEndian.Uint32(b[1:])))
	case 0xde: // map16
		if err := need(3); err != nil {
			return 0, err
		}
		return elems(3, 2*int(binary.BigEndian.Uint16(b[1:])))
	case 0xdf: // map32
		if err := need(5); err != nil {
			return 0, err
		}
		return elems(5, 2*int(binary.BigEndian.Uint32(b[1:])))
	}
	return 0, errors.Newf("taskset: unsupported type tag 0x%02x", c)
}
