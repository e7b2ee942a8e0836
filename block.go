// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "github.com/kelindar/bitmap"

const (
	// universe is the number of distinct low values a block can hold.
	universe = 1 << 16

	// thresholdLow is M from spec.md §4.2: a POSITIVE array must have
	// fewer than this many elements; a DENSE block demotes to POSITIVE
	// once its cardinality drops below it.
	thresholdLow = 4096

	// thresholdHigh is N-M: an INVERTED array's absent count must be
	// fewer than thresholdLow, i.e. its cardinality must exceed this.
	thresholdHigh = universe - thresholdLow

	// denseWords is the word count of a DENSE block's backing bitmap
	// (65536 bits / 64 bits per word).
	denseWords = universe / 64
)

// blockState is the representation a block's buffer is currently in.
type blockState uint8

const (
	stateDense blockState = iota
	statePositive
	stateInverted
)

func (s blockState) String() string {
	switch s {
	case stateDense:
		return "dense"
	case statePositive:
		return "positive"
	case stateInverted:
		return "inverted"
	default:
		return "invalid"
	}
}

// block is the subset of a bitmap's elements that share one 16-bit high
// key. It is never kept with cardinality zero — an empty block is removed
// from its owning Bitmap's keys/blocks arrays instead.
//
// dense is valid (and exactly denseWords long) only when state ==
// stateDense; arr holds the present values when state == statePositive and
// the absent values when state == stateInverted.
type block struct {
	state blockState
	card  uint32
	dense bitmap.Bitmap
	arr   []uint16
}

// newBlock returns an empty block in its initial state: POSITIVE with a
// small starting capacity, per spec.md §4.2's state machine.
func newBlock() *block {
	return &block{state: statePositive, arr: make([]uint16, 0, 4)}
}

// cardinality returns the number of elements present in the block.
func (b *block) cardinality() int {
	return int(b.card)
}

// size returns the number of bytes needed to serialize the block's buffer.
func (b *block) size() int {
	if b.state == stateDense {
		return denseWords * 8
	}
	return len(b.arr) * 2
}

// contains reports whether lo is a member of the block.
func (b *block) contains(lo uint16) bool {
	switch b.state {
	case stateDense:
		return b.dense.Contains(uint32(lo))
	case statePositive:
		_, ok := binarySearch16(b.arr, lo)
		return ok
	default: // stateInverted
		_, ok := binarySearch16(b.arr, lo)
		return !ok
	}
}

// add inserts lo, reports whether it was not already a member, and
// converts the block's representation if the mutation crossed a threshold.
func (b *block) add(lo uint16) bool {
	switch b.state {
	case stateDense:
		if b.dense.Contains(uint32(lo)) {
			return false
		}
		b.dense.Set(uint32(lo))
		b.card++
	case statePositive:
		idx, ok := binarySearch16(b.arr, lo)
		if ok {
			return false
		}
		b.arr = insertAt(b.arr, idx, lo)
		b.card++
	default: // stateInverted
		idx, ok := binarySearch16(b.arr, lo)
		if !ok {
			return false // already present (not in the absent list)
		}
		b.arr = removeAt(b.arr, idx)
		b.card++
	}
	b.convert()
	return true
}

// discard removes lo, reports whether it was a member, and converts the
// block's representation if the mutation crossed a threshold.
func (b *block) discard(lo uint16) bool {
	switch b.state {
	case stateDense:
		if !b.dense.Contains(uint32(lo)) {
			return false
		}
		b.dense.Remove(uint32(lo))
		b.card--
	case statePositive:
		idx, ok := binarySearch16(b.arr, lo)
		if !ok {
			return false
		}
		b.arr = removeAt(b.arr, idx)
		b.card--
	default: // stateInverted
		idx, ok := binarySearch16(b.arr, lo)
		if ok {
			return false // already absent
		}
		b.arr = insertAt(b.arr, idx, lo)
		b.card--
	}
	b.convert()
	return true
}

// pop removes and returns the largest present element.
func (b *block) pop() (uint16, bool) {
	if b.card == 0 {
		return 0, false
	}

	switch b.state {
	case stateDense:
		v, ok := b.dense.Max()
		if !ok {
			return 0, false
		}
		b.discard(uint16(v))
		return uint16(v), true
	case statePositive:
		v := b.arr[len(b.arr)-1]
		b.discard(v)
		return v, true
	default: // stateInverted
		hi := uint16(universe - 1)
		for {
			if idx, ok := binarySearch16(b.arr, hi); !ok {
				_ = idx
				break
			}
			hi--
		}
		b.discard(hi)
		return hi, true
	}
}

// rank returns the number of members <= lo.
func (b *block) rank(lo uint16) int {
	switch b.state {
	case stateDense:
		return rankDense(b.dense, lo)
	case statePositive:
		idx, ok := binarySearch16(b.arr, lo)
		if ok {
			return idx + 1
		}
		return idx
	default: // stateInverted
		idx, ok := binarySearch16(b.arr, lo)
		absentLE := idx
		if ok {
			absentLE = idx + 1
		}
		return int(lo) + 1 - absentLE
	}
}

// selectAt returns the i-th smallest present element (0-based).
func (b *block) selectAt(i int) (uint16, error) {
	if i < 0 || i >= b.cardinality() {
		return 0, ErrOutOfRange
	}

	switch b.state {
	case stateDense:
		return selectDense(b.dense, i)
	case statePositive:
		return b.arr[i], nil
	default: // stateInverted
		pos := uint32(0)
		remaining := i
		for _, av := range b.arr {
			if uint32(av) > pos {
				run := int(uint32(av) - pos)
				if remaining < run {
					return uint16(pos + uint32(remaining)), nil
				}
				remaining -= run
			}
			pos = uint32(av) + 1
		}
		return uint16(pos + uint32(remaining)), nil
	}
}

// min returns the smallest present element.
func (b *block) min() (uint16, bool) {
	if b.card == 0 {
		return 0, false
	}
	switch b.state {
	case stateDense:
		v, ok := b.dense.Min()
		return uint16(v), ok
	case statePositive:
		return b.arr[0], true
	default:
		v, _ := b.selectAt(0)
		return v, true
	}
}

// max returns the largest present element.
func (b *block) max() (uint16, bool) {
	if b.card == 0 {
		return 0, false
	}
	switch b.state {
	case stateDense:
		v, ok := b.dense.Max()
		return uint16(v), ok
	case statePositive:
		return b.arr[len(b.arr)-1], true
	default:
		v, _ := b.selectAt(b.cardinality() - 1)
		return v, true
	}
}

// clone returns an independent copy of the block.
func (b *block) clone() *block {
	out := &block{state: b.state, card: b.card}
	if b.state == stateDense {
		out.dense = make(bitmap.Bitmap, len(b.dense))
		copy(out.dense, b.dense)
		return out
	}
	out.arr = make([]uint16, len(b.arr), cap(b.arr))
	copy(out.arr, b.arr)
	return out
}

// convert applies the §4.2 conversion policy, moving the block into the
// representation appropriate for its current cardinality.
func (b *block) convert() {
	switch b.state {
	case stateDense:
		switch {
		case b.card < thresholdLow:
			b.toPositive()
		case b.card > thresholdHigh:
			b.toInverted()
		}
	case statePositive:
		if b.card >= thresholdLow {
			b.toDense()
		}
	case stateInverted:
		if b.card <= thresholdHigh {
			b.toDense()
		}
	}
}

// toDense converts the block to the DENSE representation in place.
func (b *block) toDense() {
	switch b.state {
	case stateDense:
		return
	case statePositive:
		b.dense = denseFromPresent(b.arr)
	case stateInverted:
		b.dense = denseFromAbsent(b.arr)
	}
	b.state = stateDense
	b.arr = nil
}

// toPositive converts the block to the POSITIVE representation in place.
// Only a DENSE source may convert directly; going INVERTED -> POSITIVE
// without passing through DENSE is an internal invariant violation (the
// state machine in spec.md §4.2 has no direct edge between them).
func (b *block) toPositive() {
	switch b.state {
	case statePositive:
		return
	case stateDense:
		b.arr = extractSetBits(b.dense)
		b.dense = nil
	case stateInverted:
		panic("roaring: cannot convert INVERTED block directly to POSITIVE")
	}
	b.state = statePositive
}

// toInverted converts the block to the INVERTED representation in place.
// Only a DENSE source may convert directly, symmetric to toPositive.
func (b *block) toInverted() {
	switch b.state {
	case stateInverted:
		return
	case stateDense:
		b.arr = extractUnsetBits(b.dense)
		b.dense = nil
	case statePositive:
		panic("roaring: cannot convert POSITIVE block directly to INVERTED")
	}
	b.state = stateInverted
}

// ---------------------------------------- array growth ----------------------------------------

// insertAt inserts v at idx, growing the backing array per the amortized
// policy from spec.md §4.2: doubling below 1024 elements, 1.25x above.
func insertAt(a []uint16, idx int, v uint16) []uint16 {
	a = growArray(a, len(a)+1)
	a = a[:len(a)+1]
	copy(a[idx+1:], a[idx:len(a)-1])
	a[idx] = v
	return a
}

// removeAt deletes the element at idx, shrinking the backing array once
// its capacity exceeds twice what's needed.
func removeAt(a []uint16, idx int) []uint16 {
	copy(a[idx:], a[idx+1:])
	a = a[:len(a)-1]
	return shrinkArray(a)
}

// growArray ensures a has capacity for `need` elements, reallocating with
// the §4.2 growth policy if not.
func growArray(a []uint16, need int) []uint16 {
	if cap(a) >= need {
		return a
	}

	var newCap int
	switch {
	case cap(a) < 1024:
		newCap = cap(a) * 2
	default:
		newCap = cap(a) + cap(a)/4
	}
	if newCap < need {
		newCap = need
	}
	if newCap < 4 {
		newCap = 4
	}

	out := make([]uint16, len(a), newCap)
	copy(out, a)
	return out
}

// shrinkArray reallocates a to len(a)+4 capacity once the current capacity
// exceeds twice the length, per spec.md §4.2's "shrunk only when current
// capacity exceeds 2k" rule.
func shrinkArray(a []uint16) []uint16 {
	if cap(a) <= 2*len(a) {
		return a
	}
	out := make([]uint16, len(a), len(a)+4)
	copy(out, a)
	return out
}
