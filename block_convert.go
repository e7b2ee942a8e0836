// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "github.com/kelindar/bitmap"

// This file holds the constructors that turn a raw present/absent array or
// a raw dense bitmap into a correctly-converted *block, applying the
// §4.2 policy up front instead of building a naively-typed block and
// calling convert() afterwards. Used throughout block_ops.go so every
// binary operation ends in a well-formed result without a second pass.

// blockFromPresent builds a block whose present set is exactly the given
// sorted, deduplicated values. Returns nil for an empty set (callers drop
// the block from their key/data arrays in that case).
func blockFromPresent(present []uint16) *block {
	card := len(present)
	switch {
	case card == 0:
		return nil
	case card < thresholdLow:
		arr := make([]uint16, card)
		copy(arr, present)
		return &block{state: statePositive, arr: arr, card: uint32(card)}
	case card > thresholdHigh:
		return &block{state: stateInverted, arr: gapsOf(present), card: uint32(card)}
	default:
		return &block{state: stateDense, dense: denseFromPresent(present), card: uint32(card)}
	}
}

// blockFromAbsent builds a block whose present set is the complement (within
// the 65536-element universe) of the given sorted, deduplicated absent
// values. Returns nil if that complement is empty.
func blockFromAbsent(absent []uint16) *block {
	card := universe - len(absent)
	switch {
	case card <= 0:
		return nil
	case card < thresholdLow:
		return &block{state: statePositive, arr: gapsOf(absent), card: uint32(card)}
	case card > thresholdHigh:
		arr := make([]uint16, len(absent))
		copy(arr, absent)
		return &block{state: stateInverted, arr: arr, card: uint32(card)}
	default:
		return &block{state: stateDense, dense: denseFromAbsent(absent), card: uint32(card)}
	}
}

// blockFromDense builds a block from a fully-populated dense bitmap,
// demoting it to POSITIVE or INVERTED if its cardinality warrants it.
// Returns nil if the bitmap is empty. Takes ownership of d.
func blockFromDense(d bitmap.Bitmap) *block {
	card := popcountSlice(d)
	switch {
	case card == 0:
		return nil
	case card < thresholdLow:
		return &block{state: statePositive, arr: extractSetBits(d), card: uint32(card)}
	case card > thresholdHigh:
		return &block{state: stateInverted, arr: extractUnsetBits(d), card: uint32(card)}
	default:
		return &block{state: stateDense, dense: d, card: uint32(card)}
	}
}

// blockClamp returns a block containing present(src) restricted to the
// closed low-value range [loLo, loHi], or nil if that intersection is
// empty. Used by Bitmap.Clamp on at most the first/last block it touches.
func blockClamp(src *block, loLo, loHi uint16) *block {
	if loLo > loHi {
		return nil
	}
	switch src.state {
	case statePositive:
		lo, _ := binarySearch16(src.arr, loLo)
		hi, ok := binarySearch16(src.arr, loHi)
		if ok {
			hi++
		}
		if lo >= hi {
			return nil
		}
		return blockFromPresent(src.arr[lo:hi])
	case stateInverted:
		present := make([]uint16, 0, int(loHi)-int(loLo)+1)
		for v := int(loLo); v <= int(loHi); v++ {
			if _, ok := binarySearch16(src.arr, uint16(v)); !ok {
				present = append(present, uint16(v))
			}
		}
		return blockFromPresent(present)
	default: // stateDense
		present := make([]uint16, 0, int(loHi)-int(loLo)+1)
		for v := int(loLo); v <= int(loHi); v++ {
			if src.dense.Contains(uint32(v)) {
				present = append(present, uint16(v))
			}
		}
		return blockFromPresent(present)
	}
}

// gapsOf returns the values in [0, 65536) that are NOT present in sorted,
// which must be sorted and deduplicated. Applying it to a present array
// yields the absent values and vice versa.
func gapsOf(sorted []uint16) []uint16 {
	out := make([]uint16, 0, universe-len(sorted))
	prev := -1
	for _, v := range sorted {
		for g := prev + 1; g < int(v); g++ {
			out = append(out, uint16(g))
		}
		prev = int(v)
	}
	for g := prev + 1; g < universe; g++ {
		out = append(out, uint16(g))
	}
	return out
}

// newDense returns a zeroed DENSE buffer.
func newDense() bitmap.Bitmap {
	return make(bitmap.Bitmap, denseWords)
}

// allOnesDense returns a DENSE buffer with every bit set.
func allOnesDense() bitmap.Bitmap {
	d := make(bitmap.Bitmap, denseWords)
	for i := range d {
		d[i] = ^uint64(0)
	}
	return d
}

// denseFromPresent builds a DENSE buffer containing exactly the given
// present values.
func denseFromPresent(present []uint16) bitmap.Bitmap {
	d := newDense()
	for _, v := range present {
		d.Set(uint32(v))
	}
	return d
}

// denseFromAbsent builds a DENSE buffer containing every value except the
// given absent ones.
func denseFromAbsent(absent []uint16) bitmap.Bitmap {
	d := allOnesDense()
	for _, v := range absent {
		d.Remove(uint32(v))
	}
	return d
}

// cloneDense returns an independent copy of a DENSE buffer.
func cloneDense(d bitmap.Bitmap) bitmap.Bitmap {
	out := make(bitmap.Bitmap, len(d))
	copy(out, d)
	return out
}

// complementDense returns a new DENSE buffer with every bit flipped.
func complementDense(d bitmap.Bitmap) bitmap.Bitmap {
	out := make(bitmap.Bitmap, len(d))
	for i, w := range d {
		out[i] = ^w
	}
	return out
}

// extractSetBits materializes the sorted array of set bit indices in d,
// walking each word's set bits via trailing-zero-count/clear-lowest-bit.
func extractSetBits(d bitmap.Bitmap) []uint16 {
	out := make([]uint16, 0, 64)
	for wi, w := range d {
		base := uint16(wi * 64)
		for w != 0 {
			bit := ctz64(w)
			out = append(out, base+uint16(bit))
			w &= w - 1
		}
	}
	return out
}

// extractUnsetBits materializes the sorted array of unset bit indices in d.
func extractUnsetBits(d bitmap.Bitmap) []uint16 {
	out := make([]uint16, 0, 64)
	for wi, w := range d {
		base := uint16(wi * 64)
		nw := ^w
		for nw != 0 {
			bit := ctz64(nw)
			out = append(out, base+uint16(bit))
			nw &= nw - 1
		}
	}
	return out
}

// rankDense returns the number of set bits at or below lo.
func rankDense(d bitmap.Bitmap, lo uint16) int {
	wIdx := int(lo) / 64
	bitIdx := uint(lo) % 64

	count := 0
	for i := 0; i < wIdx; i++ {
		count += popcount64(d[i])
	}

	var mask uint64
	if bitIdx == 63 {
		mask = ^uint64(0)
	} else {
		mask = (uint64(1) << (bitIdx + 1)) - 1
	}
	count += popcount64(d[wIdx] & mask)
	return count
}

// selectDense returns the i-th (0-based) set bit index in d.
func selectDense(d bitmap.Bitmap, i int) (uint16, error) {
	remaining := i
	for wi, w := range d {
		n := popcount64(w)
		if remaining >= n {
			remaining -= n
			continue
		}
		for w != 0 {
			bit := ctz64(w)
			if remaining == 0 {
				return uint16(wi*64 + bit), nil
			}
			remaining--
			w &= w - 1
		}
	}
	return 0, ErrOutOfRange
}

// andDense writes a ∩ b into a new DENSE buffer, via a.Clone followed by
// the kelindar/bitmap library's own in-place And.
func andDense(a, b bitmap.Bitmap) bitmap.Bitmap {
	out := a.Clone(nil)
	out.And(b)
	return out
}

// orDense writes a ∪ b into a new DENSE buffer, via a.Clone followed by
// the kelindar/bitmap library's own in-place Or.
func orDense(a, b bitmap.Bitmap) bitmap.Bitmap {
	out := a.Clone(nil)
	out.Or(b)
	return out
}

// xorDense writes a Δ b into a new DENSE buffer.
func xorDense(a, b bitmap.Bitmap) bitmap.Bitmap {
	out := make(bitmap.Bitmap, len(a))
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// subDense writes a \ b into a new DENSE buffer.
func subDense(a, b bitmap.Bitmap) bitmap.Bitmap {
	out := make(bitmap.Bitmap, len(a))
	for i := range out {
		out[i] = a[i] &^ b[i]
	}
	return out
}

// andLenDense returns |a ∩ b| without materializing the result.
func andLenDense(a, b bitmap.Bitmap) int {
	count := 0
	for i := range a {
		count += popcount64(a[i] & b[i])
	}
	return count
}

// orLenDense returns |a ∪ b| without materializing the result.
func orLenDense(a, b bitmap.Bitmap) int {
	count := 0
	for i := range a {
		count += popcount64(a[i] | b[i])
	}
	return count
}

// isSubsetDense reports whether every bit set in a is also set in b.
func isSubsetDense(a, b bitmap.Bitmap) bool {
	for i := range a {
		if a[i]&^b[i] != 0 {
			return false
		}
	}
	return true
}

// isDisjointDense reports whether a and b share no set bit.
func isDisjointDense(a, b bitmap.Bitmap) bool {
	for i := range a {
		if a[i]&b[i] != 0 {
			return false
		}
	}
	return true
}
