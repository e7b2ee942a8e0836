// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCodecRoundTrip(t *testing.T) {
	original := FromSlice([]uint32{1, 2, 3, 70000, 4294967295})
	for i := uint32(0); i < thresholdLow+10; i++ {
		original.Add(1_000_000 + i*2)
	}

	data, err := original.ToBytes()
	assert.NoError(t, err)

	decoded, err := FromBytes(data)
	assert.NoError(t, err)
	assert.Equal(t, original.ToSlice(), decoded.ToSlice())
	assert.Equal(t, original.Len(), decoded.Len())
}

func TestCodecRoundTripEmpty(t *testing.T) {
	data, err := New().ToBytes()
	assert.NoError(t, err)

	decoded, err := FromBytes(data)
	assert.NoError(t, err)
	assert.True(t, decoded.IsEmpty())
}

func TestCodecRejectsBadMagic(t *testing.T) {
	_, err := FromBytes([]byte{0, 0, 0, 0})
	assert.ErrorIs(t, err, ErrMalformedImage)
}

func TestCodecLargeRoundTrip(t *testing.T) {
	r := New()
	for i := uint32(0); i < 200_000; i += 3 {
		r.Add(i)
	}
	data, err := r.ToBytes()
	assert.NoError(t, err)

	decoded, err := FromBytes(data)
	assert.NoError(t, err)
	assert.True(t, r.Equals(decoded))
}
