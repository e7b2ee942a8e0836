// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "container/heap"

// IntersectionOf intersects every bitmap in the list, smallest (by block
// count, a cheap proxy for cardinality) first so each fold shrinks the
// working set as fast as possible. Returns an empty Bitmap for an empty
// argument list.
func IntersectionOf(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return New()
	}
	ordered := append([]*Bitmap(nil), bitmaps...)
	sortBySize(ordered)

	acc := ordered[0].Clone()
	for _, b := range ordered[1:] {
		if acc.IsEmpty() {
			break
		}
		acc = acc.Intersection(b)
	}
	return acc
}

// UnionOf unions every bitmap in the list, repeatedly merging the two
// smallest remaining bitmaps so no large intermediate result is rebuilt
// from scratch on every fold.
func UnionOf(bitmaps ...*Bitmap) *Bitmap {
	if len(bitmaps) == 0 {
		return New()
	}
	if len(bitmaps) == 1 {
		return bitmaps[0].Clone()
	}

	pq := make(sizeHeap, len(bitmaps))
	for i, b := range bitmaps {
		pq[i] = b.Clone()
	}
	heap.Init(&pq)

	for len(pq) > 1 {
		a := heap.Pop(&pq).(*Bitmap)
		b := heap.Pop(&pq).(*Bitmap)
		heap.Push(&pq, a.Union(b))
	}
	return pq[0]
}

// sortBySize orders bitmaps ascending by block count in place (insertion
// sort: the argument lists this operates on are small in practice).
func sortBySize(bitmaps []*Bitmap) {
	for i := 1; i < len(bitmaps); i++ {
		for j := i; j > 0 && len(bitmaps[j].blocks) < len(bitmaps[j-1].blocks); j-- {
			bitmaps[j], bitmaps[j-1] = bitmaps[j-1], bitmaps[j]
		}
	}
}

// sizeHeap is a container/heap.Interface over bitmaps ordered by block
// count, used by UnionOf to always merge the two cheapest operands next.
type sizeHeap []*Bitmap

func (h sizeHeap) Len() int            { return len(h) }
func (h sizeHeap) Less(i, j int) bool  { return len(h[i].blocks) < len(h[j].blocks) }
func (h sizeHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sizeHeap) Push(x interface{}) { *h = append(*h, x.(*Bitmap)) }
func (h *sizeHeap) Pop() interface{} {
	old := *h
	n := len(old)
	v := old[n-1]
	*h = old[:n-1]
	return v
}
