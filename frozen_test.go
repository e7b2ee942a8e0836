// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func buildMixedStateBitmap() *Bitmap {
	r := New()
	// POSITIVE block.
	r.Add(1)
	r.Add(2)
	r.Add(3)
	// DENSE block, high key 1.
	for i := uint32(0); i < thresholdLow+100; i++ {
		r.Add((1 << 16) + i*2)
	}
	// INVERTED block, high key 2.
	for i := uint32(0); i < universe; i++ {
		r.Add((2 << 16) + i)
	}
	for i := uint32(0); i < 50; i++ {
		r.Discard((2 << 16) + i)
	}
	return r
}

func TestFreezeAttachRoundTrip(t *testing.T) {
	r := buildMixedStateBitmap()
	f := Freeze(r)

	assert.Equal(t, r.Len(), f.Len())
	r.Range(func(v uint32) bool {
		assert.True(t, f.Contains(v))
		return true
	})

	reopened, err := Attach(f.Bytes())
	assert.NoError(t, err)
	assert.Equal(t, r.Len(), reopened.Len())
}

func TestFrozenThaw(t *testing.T) {
	r := buildMixedStateBitmap()
	f := Freeze(r)
	thawed := f.Thaw()
	assert.True(t, r.Equals(thawed))

	thawed.Add(999999)
	assert.False(t, r.Equals(thawed))
}

func TestFrozenRankSelectMinMax(t *testing.T) {
	r := FromSlice([]uint32{10, 20, 30, 70000})
	f := Freeze(r)

	min, ok := f.Min()
	assert.True(t, ok)
	assert.Equal(t, uint32(10), min)

	max, ok := f.Max()
	assert.True(t, ok)
	assert.Equal(t, uint32(70000), max)

	assert.Equal(t, r.Rank(20), f.Rank(20))

	v, err := f.Select(1)
	assert.NoError(t, err)
	assert.Equal(t, uint32(20), v)
}

func TestAttachRejectsMalformedImage(t *testing.T) {
	_, err := Attach([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrMalformedImage)

	bad := make([]byte, 64)
	bad[0] = 1 // size = 1 but no valid header/buffer follows
	_, err = Attach(bad)
	assert.ErrorIs(t, err, ErrMalformedImage)
}

func TestFrozenReadOnly(t *testing.T) {
	f := Freeze(FromSlice([]uint32{1, 2, 3}))
	assert.ErrorIs(t, f.Add(4), ErrReadOnly)
	assert.ErrorIs(t, f.Discard(1), ErrReadOnly)
}
