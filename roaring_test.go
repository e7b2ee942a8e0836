// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapAddContainsRemove(t *testing.T) {
	r := New()
	assert.True(t, r.IsEmpty())

	assert.True(t, r.Add(1))
	assert.True(t, r.Add(70000))
	assert.False(t, r.Add(1))
	assert.Equal(t, 2, r.Len())

	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(70000))
	assert.False(t, r.Contains(2))

	assert.NoError(t, r.Remove(1))
	assert.ErrorIs(t, r.Remove(1), ErrNotPresent)
	assert.Equal(t, 1, r.Len())
}

func TestBitmapSpansMultipleBlocks(t *testing.T) {
	r := New()
	r.Add(0)
	r.Add(1 << 16)
	r.Add(2 << 16)
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []uint16{0, 1, 2}, r.keys)
}

func TestBitmapEmptyBlockIsDropped(t *testing.T) {
	r := New()
	r.Add(5)
	r.Remove(5)
	assert.Equal(t, 0, len(r.keys))
	assert.Equal(t, 0, len(r.blocks))
}

func TestBitmapMinMaxPop(t *testing.T) {
	r := FromSlice([]uint32{5, 70000, 10, 1})
	min, ok := r.Min()
	assert.True(t, ok)
	assert.Equal(t, uint32(1), min)

	max, ok := r.Max()
	assert.True(t, ok)
	assert.Equal(t, uint32(70000), max)

	v, err := r.Pop()
	assert.NoError(t, err)
	assert.Equal(t, uint32(70000), v)
	assert.Equal(t, 3, r.Len())

	empty := New()
	_, err = empty.Pop()
	assert.ErrorIs(t, err, ErrEmpty)
}

func TestFromSliceDedupsAndSorts(t *testing.T) {
	r := FromSlice([]uint32{3, 1, 2, 1, 3})
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, []uint32{1, 2, 3}, r.ToSlice())
}

func TestFromSeq(t *testing.T) {
	values := []uint32{5, 10, 15}
	r := FromSeq(func(yield func(uint32) bool) {
		for _, v := range values {
			if !yield(v) {
				return
			}
		}
	})
	assert.Equal(t, values, r.ToSlice())
}

func TestClone(t *testing.T) {
	r := FromSlice([]uint32{1, 2, 3})
	c := r.Clone()
	c.Add(4)
	assert.False(t, r.Contains(4))
	assert.True(t, c.Contains(4))
}

func TestClear(t *testing.T) {
	r := FromSlice([]uint32{1, 2, 3})
	r.Clear()
	assert.True(t, r.IsEmpty())
	assert.Equal(t, 0, r.Len())
}

func TestInitRange(t *testing.T) {
	r := InitRange(5, 10, 1)
	assert.Equal(t, []uint32{5, 6, 7, 8, 9}, r.ToSlice())

	stepped := InitRange(0, 10, 2)
	assert.Equal(t, []uint32{0, 2, 4, 6, 8}, stepped.ToSlice())

	crossBlock := InitRange(65530, 65540, 1)
	assert.Equal(t, 10, crossBlock.Len())
	assert.True(t, crossBlock.Contains(65530))
	assert.True(t, crossBlock.Contains(65539))
}

func TestInitRangeEmpty(t *testing.T) {
	r := InitRange(10, 10, 1)
	assert.True(t, r.IsEmpty())
	r2 := InitRange(10, 5, 1)
	assert.True(t, r2.IsEmpty())
}

func TestLargeDenseBlockRoundtrip(t *testing.T) {
	r := New()
	for i := uint32(0); i < universe; i++ {
		if i%2 == 0 {
			r.Add(i)
		}
	}
	assert.Equal(t, universe/2, r.Len())
	assert.True(t, r.Contains(0))
	assert.False(t, r.Contains(1))
	assert.Equal(t, stateDense, r.blocks[0].state)
}
