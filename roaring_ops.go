// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// This file merges two Bitmaps' key arrays with the same two-pointer walk
// as array16.go's union16/intersect16, except each matching key pair is
// resolved by dispatching into block_ops.go instead of a scalar comparison,
// and a key present on only one side is handled per operator: copied for
// union/xor, dropped for intersect, and for sub copied only when it is r's.

// Intersection returns a new Bitmap containing the members present in both
// r and other.
func (r *Bitmap) Intersection(other *Bitmap) *Bitmap {
	out := New()
	i, j := 0, 0
	for i < len(r.keys) && j < len(other.keys) {
		switch {
		case r.keys[i] == other.keys[j]:
			if res := blockAnd(r.blocks[i], other.blocks[j]); res != nil {
				out.keys = append(out.keys, r.keys[i])
				out.blocks = append(out.blocks, res)
			}
			i++
			j++
		case r.keys[i] < other.keys[j]:
			i++
		default:
			j++
		}
	}
	return out
}

// Union returns a new Bitmap containing the members present in either r or
// other.
func (r *Bitmap) Union(other *Bitmap) *Bitmap {
	out := New()
	i, j := 0, 0
	for i < len(r.keys) && j < len(other.keys) {
		switch {
		case r.keys[i] == other.keys[j]:
			if res := blockOr(r.blocks[i], other.blocks[j]); res != nil {
				out.keys = append(out.keys, r.keys[i])
				out.blocks = append(out.blocks, res)
			}
			i++
			j++
		case r.keys[i] < other.keys[j]:
			out.keys = append(out.keys, r.keys[i])
			out.blocks = append(out.blocks, r.blocks[i].clone())
			i++
		default:
			out.keys = append(out.keys, other.keys[j])
			out.blocks = append(out.blocks, other.blocks[j].clone())
			j++
		}
	}
	out.keys = append(out.keys, r.keys[i:]...)
	for ; i < len(r.blocks); i++ {
		out.blocks = append(out.blocks, r.blocks[i].clone())
	}
	out.keys = append(out.keys, other.keys[j:]...)
	for ; j < len(other.blocks); j++ {
		out.blocks = append(out.blocks, other.blocks[j].clone())
	}
	return out
}

// Difference returns a new Bitmap containing the members of r not present
// in other.
func (r *Bitmap) Difference(other *Bitmap) *Bitmap {
	out := New()
	i, j := 0, 0
	for i < len(r.keys) && j < len(other.keys) {
		switch {
		case r.keys[i] == other.keys[j]:
			if res := blockSub(r.blocks[i], other.blocks[j]); res != nil {
				out.keys = append(out.keys, r.keys[i])
				out.blocks = append(out.blocks, res)
			}
			i++
			j++
		case r.keys[i] < other.keys[j]:
			out.keys = append(out.keys, r.keys[i])
			out.blocks = append(out.blocks, r.blocks[i].clone())
			i++
		default:
			j++
		}
	}
	out.keys = append(out.keys, r.keys[i:]...)
	for ; i < len(r.blocks); i++ {
		out.blocks = append(out.blocks, r.blocks[i].clone())
	}
	return out
}

// SymmetricDifference returns a new Bitmap containing the members present
// in exactly one of r, other.
func (r *Bitmap) SymmetricDifference(other *Bitmap) *Bitmap {
	out := New()
	i, j := 0, 0
	for i < len(r.keys) && j < len(other.keys) {
		switch {
		case r.keys[i] == other.keys[j]:
			if res := blockXor(r.blocks[i], other.blocks[j]); res != nil {
				out.keys = append(out.keys, r.keys[i])
				out.blocks = append(out.blocks, res)
			}
			i++
			j++
		case r.keys[i] < other.keys[j]:
			out.keys = append(out.keys, r.keys[i])
			out.blocks = append(out.blocks, r.blocks[i].clone())
			i++
		default:
			out.keys = append(out.keys, other.keys[j])
			out.blocks = append(out.blocks, other.blocks[j].clone())
			j++
		}
	}
	out.keys = append(out.keys, r.keys[i:]...)
	for ; i < len(r.blocks); i++ {
		out.blocks = append(out.blocks, r.blocks[i].clone())
	}
	out.keys = append(out.keys, other.keys[j:]...)
	for ; j < len(other.blocks); j++ {
		out.blocks = append(out.blocks, other.blocks[j].clone())
	}
	return out
}

// IntersectionInPlace replaces r's contents with r ∩ other.
func (r *Bitmap) IntersectionInPlace(other *Bitmap) {
	keys := r.keys[:0]
	blocks := r.blocks[:0]
	i, j := 0, 0
	for i < len(r.keys) && j < len(other.keys) {
		switch {
		case r.keys[i] == other.keys[j]:
			if r.blocks[i].andInPlace(other.blocks[j]) {
				keys = append(keys, r.keys[i])
				blocks = append(blocks, r.blocks[i])
			}
			i++
			j++
		case r.keys[i] < other.keys[j]:
			i++
		default:
			j++
		}
	}
	r.keys = keys
	r.blocks = blocks
}

// UnionInPlace merges other's members into r.
func (r *Bitmap) UnionInPlace(other *Bitmap) {
	*r = *r.Union(other)
}

// DifferenceInPlace removes other's members from r.
func (r *Bitmap) DifferenceInPlace(other *Bitmap) {
	keys := r.keys[:0]
	blocks := r.blocks[:0]
	i, j := 0, 0
	for i < len(r.keys) && j < len(other.keys) {
		switch {
		case r.keys[i] == other.keys[j]:
			if r.blocks[i].subInPlace(other.blocks[j]) {
				keys = append(keys, r.keys[i])
				blocks = append(blocks, r.blocks[i])
			}
			i++
			j++
		case r.keys[i] < other.keys[j]:
			keys = append(keys, r.keys[i])
			blocks = append(blocks, r.blocks[i])
			i++
		default:
			j++
		}
	}
	for ; i < len(r.blocks); i++ {
		keys = append(keys, r.keys[i])
		blocks = append(blocks, r.blocks[i])
	}
	r.keys = keys
	r.blocks = blocks
}

// SymmetricDifferenceInPlace replaces r's contents with r Δ other.
func (r *Bitmap) SymmetricDifferenceInPlace(other *Bitmap) {
	*r = *r.SymmetricDifference(other)
}
