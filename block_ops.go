// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "github.com/kelindar/bitmap"

// This file dispatches the four binary operators (and/or/xor/sub) across
// the nine (state × state) pairs a block pair can be in. Each cell is
// derived from one of three identities over present(X) = universe \
// absent(X) for an INVERTED block X — see SPEC_FULL.md §4.2 — rather than
// written as an independent ad hoc routine per pair, so the nine cases
// read as one algebra applied three times (AND/OR/SUB) plus one identity
// reused verbatim for XOR.

// blockAnd returns present(a) ∩ present(b) as a new block, or nil if empty.
func blockAnd(a, b *block) *block {
	switch a.state {
	case stateDense:
		switch b.state {
		case stateDense:
			return blockFromDense(andDense(a.dense, b.dense))
		case statePositive:
			out := make([]uint16, 0, len(b.arr))
			for _, v := range b.arr {
				if a.dense.Contains(uint32(v)) {
					out = append(out, v)
				}
			}
			return blockFromPresent(out)
		default: // stateInverted
			d := cloneDense(a.dense)
			for _, v := range b.arr {
				d.Remove(uint32(v))
			}
			return blockFromDense(d)
		}
	case statePositive:
		switch b.state {
		case stateDense:
			out := make([]uint16, 0, len(a.arr))
			for _, v := range a.arr {
				if b.dense.Contains(uint32(v)) {
					out = append(out, v)
				}
			}
			return blockFromPresent(out)
		case statePositive:
			return blockFromPresent(intersect16(nil, a.arr, b.arr))
		default: // stateInverted
			return blockFromPresent(difference16(nil, a.arr, b.arr))
		}
	default: // stateInverted
		switch b.state {
		case stateDense:
			d := cloneDense(b.dense)
			for _, v := range a.arr {
				d.Remove(uint32(v))
			}
			return blockFromDense(d)
		case statePositive:
			return blockFromPresent(difference16(nil, b.arr, a.arr))
		default: // stateInverted
			return blockFromAbsent(union16(nil, a.arr, b.arr))
		}
	}
}

// blockOr returns present(a) ∪ present(b) as a new block, or nil if empty.
func blockOr(a, b *block) *block {
	switch a.state {
	case stateDense:
		switch b.state {
		case stateDense:
			return blockFromDense(orDense(a.dense, b.dense))
		case statePositive:
			d := cloneDense(a.dense)
			for _, v := range b.arr {
				d.Set(uint32(v))
			}
			return blockFromDense(d)
		default: // stateInverted
			out := make([]uint16, 0, len(b.arr))
			for _, v := range b.arr {
				if !a.dense.Contains(uint32(v)) {
					out = append(out, v)
				}
			}
			return blockFromAbsent(out)
		}
	case statePositive:
		switch b.state {
		case stateDense:
			d := cloneDense(b.dense)
			for _, v := range a.arr {
				d.Set(uint32(v))
			}
			return blockFromDense(d)
		case statePositive:
			return blockFromPresent(union16(nil, a.arr, b.arr))
		default: // stateInverted
			return blockFromAbsent(difference16(nil, b.arr, a.arr))
		}
	default: // stateInverted
		switch b.state {
		case stateDense:
			out := make([]uint16, 0, len(a.arr))
			for _, v := range a.arr {
				if !b.dense.Contains(uint32(v)) {
					out = append(out, v)
				}
			}
			return blockFromAbsent(out)
		case statePositive:
			return blockFromAbsent(difference16(nil, a.arr, b.arr))
		default: // stateInverted
			return blockFromAbsent(intersect16(nil, a.arr, b.arr))
		}
	}
}

// blockXor returns present(a) Δ present(b) as a new block, or nil if empty.
// Per spec.md §4.2, a mixed pair converts its non-dense side to DENSE and
// falls through to the dense/dense case; dense/positive instead toggles
// each of the (few) positive values directly against a cloned dense buffer,
// which is the in-place equivalent of materializing the positive side and
// XOR-ing — cheaper, same result. Both INVERTED pairings reduce to a plain
// array xor on the absent arrays, since the universe cancels out of a
// symmetric difference of two complements.
func blockXor(a, b *block) *block {
	switch a.state {
	case stateDense:
		switch b.state {
		case stateDense:
			return blockFromDense(xorDense(a.dense, b.dense))
		case statePositive:
			d := cloneDense(a.dense)
			for _, v := range b.arr {
				toggle(d, v)
			}
			return blockFromDense(d)
		default: // stateInverted
			return blockFromDense(xorDense(a.dense, denseFromAbsent(b.arr)))
		}
	case statePositive:
		switch b.state {
		case stateDense:
			d := cloneDense(b.dense)
			for _, v := range a.arr {
				toggle(d, v)
			}
			return blockFromDense(d)
		case statePositive:
			return blockFromPresent(xor16(nil, a.arr, b.arr))
		default: // stateInverted: present(A) Δ (U\absent(B)) == U \ (a Δ b)
			return blockFromAbsent(xor16(nil, a.arr, b.arr))
		}
	default: // stateInverted
		switch b.state {
		case stateDense:
			return blockFromDense(xorDense(denseFromAbsent(a.arr), b.dense))
		case statePositive:
			return blockFromAbsent(xor16(nil, a.arr, b.arr))
		default: // stateInverted: (U\a)Δ(U\b) == aΔb
			return blockFromPresent(xor16(nil, a.arr, b.arr))
		}
	}
}

// blockSub returns present(a) \ present(b) as a new block, or nil if empty.
func blockSub(a, b *block) *block {
	switch a.state {
	case stateDense:
		switch b.state {
		case stateDense:
			return blockFromDense(subDense(a.dense, b.dense))
		case statePositive:
			d := cloneDense(a.dense)
			for _, v := range b.arr {
				d.Remove(uint32(v))
			}
			return blockFromDense(d)
		default: // stateInverted: present(A) ∩ absent(B), and absent(B) is small
			out := make([]uint16, 0, len(b.arr))
			for _, v := range b.arr {
				if a.dense.Contains(uint32(v)) {
					out = append(out, v)
				}
			}
			return blockFromPresent(out)
		}
	case statePositive:
		switch b.state {
		case stateDense:
			out := make([]uint16, 0, len(a.arr))
			for _, v := range a.arr {
				if !b.dense.Contains(uint32(v)) {
					out = append(out, v)
				}
			}
			return blockFromPresent(out)
		case statePositive:
			return blockFromPresent(difference16(nil, a.arr, b.arr))
		default: // stateInverted
			return blockFromPresent(intersect16(nil, a.arr, b.arr))
		}
	default: // stateInverted
		switch b.state {
		case stateDense:
			d := complementDense(b.dense)
			for _, v := range a.arr {
				d.Remove(uint32(v))
			}
			return blockFromDense(d)
		case statePositive:
			return blockFromAbsent(union16(nil, a.arr, b.arr))
		default: // stateInverted: (U\a)\(U\b) == b\a
			return blockFromPresent(difference16(nil, b.arr, a.arr))
		}
	}
}

// toggle flips bit v of a dense buffer: removes it if present, sets it
// otherwise.
func toggle(d bitmap.Bitmap, v uint16) {
	if d.Contains(uint32(v)) {
		d.Remove(uint32(v))
	} else {
		d.Set(uint32(v))
	}
}

// replaceWith rebinds a's fields to res (the result of a producing op,
// which never aliases a or b's storage), turning a producing operator into
// its in-place counterpart. Reports whether a is non-empty afterwards.
func (a *block) replaceWith(res *block) bool {
	if res == nil {
		a.state = statePositive
		a.dense = nil
		a.arr = a.arr[:0]
		a.card = 0
		return false
	}
	*a = *res
	return true
}

func (a *block) andInPlace(b *block) bool { return a.replaceWith(blockAnd(a, b)) }
func (a *block) orInPlace(b *block) bool  { return a.replaceWith(blockOr(a, b)) }
func (a *block) xorInPlace(b *block) bool { return a.replaceWith(blockXor(a, b)) }
func (a *block) subInPlace(b *block) bool { return a.replaceWith(blockSub(a, b)) }

// andLen returns |present(a) ∩ present(b)| without materializing the result.
func andLen(a, b *block) int {
	switch a.state {
	case stateDense:
		switch b.state {
		case stateDense:
			return andLenDense(a.dense, b.dense)
		case statePositive:
			return countContained(b.arr, a)
		default: // stateInverted: |present(a)| - |present(a) ∩ absent(b)|
			return a.cardinality() - countContained(b.arr, a)
		}
	case statePositive:
		switch b.state {
		case stateDense:
			return countContained(a.arr, b)
		case statePositive:
			return intersectLen16(a.arr, b.arr)
		default: // stateInverted
			return differenceLen16(a.arr, b.arr)
		}
	default: // stateInverted
		switch b.state {
		case stateDense: // |present(b)| - |absent(a) ∩ present(b)|
			return b.cardinality() - countContained(a.arr, b)
		case statePositive:
			return differenceLen16(b.arr, a.arr)
		default: // stateInverted: |present(a) ∩ present(b)| = universe - |absentA ∪ absentB|
			return universe - unionLen16(a.arr, b.arr)
		}
	}
}

// countContained returns how many values of vals satisfy blk.contains.
func countContained(vals []uint16, blk *block) int {
	count := 0
	for _, v := range vals {
		if blk.contains(v) {
			count++
		}
	}
	return count
}

// orLen returns |present(a) ∪ present(b)| without materializing the result.
func orLen(a, b *block) int {
	return a.cardinality() + b.cardinality() - andLen(a, b)
}

// andOrLen returns both the AND and OR cardinalities in one pass over the
// (cheaper) AND computation.
func andOrLen(a, b *block) (and, or int) {
	and = andLen(a, b)
	or = a.cardinality() + b.cardinality() - and
	return
}

// isSubset reports whether every element of a is also in b, short-circuiting
// on the cardinality mismatch spec.md §4.2 calls out before doing any
// per-element work.
func isSubset(a, b *block) bool {
	if a.card > b.card {
		return false
	}
	return andLen(a, b) == int(a.card)
}

// isDisjoint reports whether a and b share no element.
func isDisjoint(a, b *block) bool {
	return andLen(a, b) == 0
}

// forEach calls fn for every present low-value in ascending order, stopping
// early if fn returns false.
func (b *block) forEach(fn func(uint16) bool) {
	switch b.state {
	case stateDense:
		for wi, w := range b.dense {
			base := uint16(wi * 64)
			for w != 0 {
				bit := ctz64(w)
				if !fn(base + uint16(bit)) {
					return
				}
				w &= w - 1
			}
		}
	case statePositive:
		for _, v := range b.arr {
			if !fn(v) {
				return
			}
		}
	default: // stateInverted
		next := 0
		for v := 0; v < universe; v++ {
			if next < len(b.arr) && int(b.arr[next]) == v {
				next++
				continue
			}
			if !fn(uint16(v)) {
				return
			}
		}
	}
}

// forEachBackward calls fn for every present low-value in descending order.
func (b *block) forEachBackward(fn func(uint16) bool) {
	switch b.state {
	case stateDense:
		for wi := len(b.dense) - 1; wi >= 0; wi-- {
			w := b.dense[wi]
			base := wi * 64
			for w != 0 {
				bit := 63 - clz64(w)
				if !fn(uint16(base + bit)) {
					return
				}
				w &^= uint64(1) << uint(bit)
			}
		}
	case statePositive:
		for i := len(b.arr) - 1; i >= 0; i-- {
			if !fn(b.arr[i]) {
				return
			}
		}
	default: // stateInverted
		next := len(b.arr) - 1
		for v := universe - 1; v >= 0; v-- {
			if next >= 0 && int(b.arr[next]) == v {
				next--
				continue
			}
			if !fn(uint16(v)) {
				return
			}
		}
	}
}
