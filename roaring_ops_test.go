// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitmapSetOps(t *testing.T) {
	a := FromSlice([]uint32{1, 2, 3, 70000, 70001})
	b := FromSlice([]uint32{2, 3, 4, 70001, 70002})

	assert.Equal(t, []uint32{2, 3, 70001}, a.Intersection(b).ToSlice())
	assert.Equal(t, []uint32{1, 2, 3, 4, 70000, 70001, 70002}, a.Union(b).ToSlice())
	assert.Equal(t, []uint32{1, 70000}, a.Difference(b).ToSlice())
	assert.Equal(t, []uint32{1, 4, 70000, 70002}, a.SymmetricDifference(b).ToSlice())
}

func TestBitmapSetOpsInPlace(t *testing.T) {
	a := FromSlice([]uint32{1, 2, 3, 70000})
	b := FromSlice([]uint32{2, 3, 4, 70000})

	want := a.Clone().Intersection(b).ToSlice()
	a.IntersectionInPlace(b)
	assert.Equal(t, want, a.ToSlice())

	a2 := FromSlice([]uint32{1, 2, 3})
	b2 := FromSlice([]uint32{3, 4, 5})
	wantDiff := a2.Clone().Difference(b2).ToSlice()
	a2.DifferenceInPlace(b2)
	assert.Equal(t, wantDiff, a2.ToSlice())
}

func TestRangeExample(t *testing.T) {
	a := InitRange(0, 10, 1)
	b := InitRange(5, 15, 1)
	assert.Equal(t, []uint32{5, 6, 7, 8, 9}, a.Intersection(b).ToSlice())
}

func TestEvenOddDisjointAndUnion(t *testing.T) {
	even := New()
	odd := New()
	for i := uint32(0); i < 100; i++ {
		if i%2 == 0 {
			even.Add(i)
		} else {
			odd.Add(i)
		}
	}
	assert.True(t, even.IsDisjoint(odd))
	assert.Equal(t, 0, even.IntersectionLen(odd))

	all := even.Union(odd)
	assert.Equal(t, 100, all.Len())
	assert.Equal(t, InitRange(0, 100, 1).ToSlice(), all.ToSlice())

	assert.InDelta(t, 1.0, even.JaccardDistance(odd), 1e-9)
}

func TestSubsetSupersetEquals(t *testing.T) {
	small := FromSlice([]uint32{1, 2, 3})
	big := FromSlice([]uint32{1, 2, 3, 4, 5})

	assert.True(t, small.IsSubset(big))
	assert.True(t, big.IsSuperset(small))
	assert.False(t, big.IsSubset(small))

	clone := big.Clone()
	assert.True(t, big.Equals(clone))
	clone.Add(6)
	assert.False(t, big.Equals(clone))
}

func TestClampAndFlipRange(t *testing.T) {
	r := InitRange(0, 20, 1)
	r.Clamp(5, 10)
	assert.Equal(t, []uint32{5, 6, 7, 8, 9}, r.ToSlice())

	r2 := FromSlice([]uint32{1, 3, 5})
	r2.FlipRange(0, 6)
	assert.Equal(t, []uint32{0, 2, 4}, r2.ToSlice())
}

func TestIntersectionOfAndUnionOf(t *testing.T) {
	a := FromSlice([]uint32{1, 2, 3, 4})
	b := FromSlice([]uint32{2, 3, 4, 5})
	c := FromSlice([]uint32{3, 4, 5, 6})

	assert.Equal(t, []uint32{3, 4}, IntersectionOf(a, b, c).ToSlice())
	assert.Equal(t, []uint32{1, 2, 3, 4, 5, 6}, UnionOf(a, b, c).ToSlice())

	assert.True(t, IntersectionOf().IsEmpty())
	assert.True(t, UnionOf().IsEmpty())
}
