// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRankSelect(t *testing.T) {
	r := FromSlice([]uint32{10, 20, 70000, 70010})

	assert.Equal(t, 1, r.Rank(10))
	assert.Equal(t, 1, r.Rank(15))
	assert.Equal(t, 0, r.Rank(5))
	assert.Equal(t, 4, r.Rank(70010))

	v, err := r.Select(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(10), v)

	v, err = r.Select(3)
	assert.NoError(t, err)
	assert.Equal(t, uint32(70010), v)

	_, err = r.Select(4)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestRangeAndReversed(t *testing.T) {
	r := FromSlice([]uint32{3, 1, 70000, 2})

	var forward []uint32
	r.Range(func(v uint32) bool {
		forward = append(forward, v)
		return true
	})
	assert.Equal(t, []uint32{1, 2, 3, 70000}, forward)

	var backward []uint32
	r.Reversed(func(v uint32) bool {
		backward = append(backward, v)
		return true
	})
	assert.Equal(t, []uint32{70000, 3, 2, 1}, backward)
}

func TestRangeEarlyStop(t *testing.T) {
	r := FromSlice([]uint32{1, 2, 3, 4, 5})
	var seen []uint32
	r.Range(func(v uint32) bool {
		seen = append(seen, v)
		return v < 3
	})
	assert.Equal(t, []uint32{1, 2, 3}, seen)
}

func TestAllBackwardIterSeq(t *testing.T) {
	r := FromSlice([]uint32{1, 2, 3})
	var got []uint32
	for v := range r.All() {
		got = append(got, v)
	}
	assert.Equal(t, []uint32{1, 2, 3}, got)

	got = nil
	for v := range r.Backward() {
		got = append(got, v)
	}
	assert.Equal(t, []uint32{3, 2, 1}, got)
}
