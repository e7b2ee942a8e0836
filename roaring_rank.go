// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "iter"

// Rank returns the number of members <= v.
func (r *Bitmap) Rank(v uint32) int {
	hi, lo := splitKey(v)
	idx, found := r.findKey(hi)
	limit := idx
	if found {
		limit = idx + 1
	}

	total := 0
	for i := 0; i < limit-1; i++ {
		total += r.blocks[i].cardinality()
	}
	if found {
		total += r.blocks[idx].rank(lo)
	} else if idx > 0 {
		total += r.blocks[idx-1].cardinality()
	}
	return total
}

// Select returns the i-th smallest member (0-based), or ErrOutOfRange if i
// is beyond the bitmap's cardinality.
func (r *Bitmap) Select(i int) (uint32, error) {
	if i < 0 {
		return 0, ErrOutOfRange
	}
	remaining := i
	for k, b := range r.blocks {
		n := b.cardinality()
		if remaining < n {
			lo, err := b.selectAt(remaining)
			if err != nil {
				return 0, err
			}
			return joinKey(r.keys[k], lo), nil
		}
		remaining -= n
	}
	return 0, ErrOutOfRange
}

// Range calls fn for every member in ascending order, stopping early if fn
// returns false.
func (r *Bitmap) Range(fn func(uint32) bool) {
	for k, b := range r.blocks {
		hi := r.keys[k]
		stop := false
		b.forEach(func(lo uint16) bool {
			if !fn(joinKey(hi, lo)) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}

// Reversed calls fn for every member in descending order, stopping early if
// fn returns false.
func (r *Bitmap) Reversed(fn func(uint32) bool) {
	for k := len(r.blocks) - 1; k >= 0; k-- {
		hi := r.keys[k]
		stop := false
		r.blocks[k].forEachBackward(func(lo uint16) bool {
			if !fn(joinKey(hi, lo)) {
				stop = true
				return false
			}
			return true
		})
		if stop {
			return
		}
	}
}

// All returns an ascending iterator over every member, for use with range
// expressions (for v := range r.All()).
func (r *Bitmap) All() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		r.Range(yield)
	}
}

// Backward returns a descending iterator over every member.
func (r *Bitmap) Backward() iter.Seq[uint32] {
	return func(yield func(uint32) bool) {
		r.Reversed(yield)
	}
}

// ToSlice materializes every member into a sorted slice.
func (r *Bitmap) ToSlice() []uint32 {
	out := make([]uint32, 0, r.Len())
	r.Range(func(v uint32) bool {
		out = append(out, v)
		return true
	})
	return out
}
