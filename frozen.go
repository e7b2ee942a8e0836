// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"encoding/binary"
	"fmt"
	"unsafe"
)

// Frozen is a read-only view over a byte buffer laid out so it can be
// attached in place (no decode pass) from a file mapped with mmap, or from
// any other []byte a caller already owns. The layout is:
//
//	uint32                size
//	uint16[size]           keys            (little-endian)
//	... padding to a 32-byte boundary ...
//	frozenHeader[size]     headers         (16 bytes each, see below)
//	... padding to a 32-byte boundary ...
//	block buffers          concatenated, each individually padded to 32 bytes
//
// Each frozenHeader is: state(1B) cardinality(4B) capacity(2B)
// bufferOffset(8B) pad(1B), for 16 bytes total. bufferOffset is measured
// from the start of the image. capacity is the element count stored in the
// block's buffer: the array length for POSITIVE/INVERTED, unused (zero)
// for DENSE, whose buffer is always exactly denseWords 64-bit words.
//
// This image is specific to this package's encoding of present/absent
// arrays and block state, not a wire format shared with other Roaring
// Bitmap implementations — see the package doc comment.
type Frozen struct {
	data    []byte
	size    uint32
	keys    []uint16
	headers []frozenHeader
}

type frozenHeader struct {
	state        blockState
	cardinality  uint32
	capacity     uint16
	bufferOffset uint64
}

const (
	frozenAlign      = 32
	frozenHeaderSize = 16
)

func alignUp(n int) int {
	return (n + frozenAlign - 1) &^ (frozenAlign - 1)
}

// Freeze serializes r into the frozen image format and attaches a Frozen
// view over the freshly built buffer.
func Freeze(r *Bitmap) *Frozen {
	size := len(r.keys)

	keysStart := 4
	keysEnd := keysStart + size*2
	headersStart := alignUp(keysEnd)
	headersEnd := headersStart + size*frozenHeaderSize
	buffersStart := alignUp(headersEnd)

	bufOffsets := make([]int, size)
	total := buffersStart
	for i, b := range r.blocks {
		bufOffsets[i] = total
		total = alignUp(total + b.size())
	}

	data := make([]byte, total)
	binary.LittleEndian.PutUint32(data[0:4], uint32(size))
	for i, k := range r.keys {
		binary.LittleEndian.PutUint16(data[keysStart+i*2:], k)
	}

	for i, b := range r.blocks {
		h := data[headersStart+i*frozenHeaderSize:]
		h[0] = byte(b.state)
		binary.LittleEndian.PutUint32(h[1:5], b.card)
		switch b.state {
		case stateDense:
			binary.LittleEndian.PutUint16(h[5:7], 0)
		default:
			binary.LittleEndian.PutUint16(h[5:7], uint16(len(b.arr)))
		}
		binary.LittleEndian.PutUint64(h[7:15], uint64(bufOffsets[i]))

		buf := data[bufOffsets[i]:]
		switch b.state {
		case stateDense:
			for wi, w := range b.dense {
				binary.LittleEndian.PutUint64(buf[wi*8:], w)
			}
		default:
			for ai, v := range b.arr {
				binary.LittleEndian.PutUint16(buf[ai*2:], v)
			}
		}
	}

	f, err := Attach(data)
	if err != nil {
		// Freeze builds a well-formed image itself; a validation failure
		// here means this function has a bug, not that the caller passed
		// bad data.
		panic(fmt.Sprintf("roaring: Freeze produced an invalid image: %v", err))
	}
	return f
}

// Attach validates data as a frozen image and wraps it without copying the
// block buffers. Returns ErrMalformedImage if any header field is
// inconsistent with the buffer's length.
func Attach(data []byte) (*Frozen, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("roaring: image shorter than size field: %w", ErrMalformedImage)
	}
	size := binary.LittleEndian.Uint32(data[0:4])

	keysStart := 4
	keysEnd := keysStart + int(size)*2
	headersStart := alignUp(keysEnd)
	headersEnd := headersStart + int(size)*frozenHeaderSize
	buffersStart := alignUp(headersEnd)
	if len(data) < buffersStart {
		return nil, fmt.Errorf("roaring: image too short for %d blocks: %w", size, ErrMalformedImage)
	}

	keys := make([]uint16, size)
	for i := range keys {
		keys[i] = binary.LittleEndian.Uint16(data[keysStart+i*2:])
	}
	for i := 1; i < len(keys); i++ {
		if keys[i] <= keys[i-1] {
			return nil, fmt.Errorf("roaring: keys not strictly increasing: %w", ErrMalformedImage)
		}
	}

	headers := make([]frozenHeader, size)
	for i := range headers {
		h := data[headersStart+i*frozenHeaderSize:]
		state := blockState(h[0])
		if state > stateInverted {
			return nil, fmt.Errorf("roaring: block %d has invalid state %d: %w", i, state, ErrMalformedImage)
		}
		card := binary.LittleEndian.Uint32(h[1:5])
		capacity := binary.LittleEndian.Uint16(h[5:7])
		offset := binary.LittleEndian.Uint64(h[7:15])

		switch state {
		case stateDense:
			if card < thresholdLow || card > thresholdHigh {
				return nil, fmt.Errorf("roaring: block %d has DENSE cardinality %d out of range: %w", i, card, ErrMalformedImage)
			}
			if offset+uint64(denseWords*8) > uint64(len(data)) {
				return nil, fmt.Errorf("roaring: block %d buffer out of bounds: %w", i, ErrMalformedImage)
			}
		case statePositive:
			if card == 0 || card >= thresholdLow || int(capacity) != int(card) {
				return nil, fmt.Errorf("roaring: block %d has POSITIVE cardinality %d inconsistent with capacity %d: %w", i, card, capacity, ErrMalformedImage)
			}
			if offset+uint64(capacity)*2 > uint64(len(data)) {
				return nil, fmt.Errorf("roaring: block %d buffer out of bounds: %w", i, ErrMalformedImage)
			}
		default: // stateInverted
			if card <= thresholdHigh || int(capacity) != universe-int(card) {
				return nil, fmt.Errorf("roaring: block %d has INVERTED cardinality %d inconsistent with capacity %d: %w", i, card, capacity, ErrMalformedImage)
			}
			if offset+uint64(capacity)*2 > uint64(len(data)) {
				return nil, fmt.Errorf("roaring: block %d buffer out of bounds: %w", i, ErrMalformedImage)
			}
		}
		headers[i] = frozenHeader{state: state, cardinality: card, capacity: capacity, bufferOffset: offset}
	}

	return &Frozen{data: data, size: size, keys: keys, headers: headers}, nil
}

// Bytes returns the raw image backing f, suitable for writing to a file
// that a later process can Attach directly.
func (f *Frozen) Bytes() []byte {
	return f.data
}

// Len returns the total number of members.
func (f *Frozen) Len() int {
	total := 0
	for _, h := range f.headers {
		total += int(h.cardinality)
	}
	return total
}

// denseWordsAt reinterprets the block buffer at header i as []uint64
// without copying. Valid only for a DENSE block.
func (f *Frozen) denseWordsAt(i int) []uint64 {
	h := f.headers[i]
	ptr := unsafe.Pointer(&f.data[h.bufferOffset])
	return unsafe.Slice((*uint64)(ptr), denseWords)
}

// arrAt reinterprets the block buffer at header i as []uint16 without
// copying. Valid only for a POSITIVE or INVERTED block.
func (f *Frozen) arrAt(i int) []uint16 {
	h := f.headers[i]
	ptr := unsafe.Pointer(&f.data[h.bufferOffset])
	return unsafe.Slice((*uint16)(ptr), int(h.capacity))
}

// blockViewAt returns a *block sharing the frozen buffer's storage, for
// reuse of block.go's read-only logic (contains/rank/selectAt/min/max).
// The returned block must never be mutated.
func (f *Frozen) blockViewAt(i int) *block {
	h := f.headers[i]
	b := &block{state: h.state, card: h.cardinality}
	switch h.state {
	case stateDense:
		b.dense = f.denseWordsAt(i)
	default:
		b.arr = f.arrAt(i)
	}
	return b
}

func (f *Frozen) findKey(hi uint16) (idx int, found bool) {
	return binarySearch16(f.keys, hi)
}

// Contains reports whether v is a member.
func (f *Frozen) Contains(v uint32) bool {
	hi, lo := splitKey(v)
	idx, found := f.findKey(hi)
	if !found {
		return false
	}
	return f.blockViewAt(idx).contains(lo)
}

// Rank returns the number of members <= v.
func (f *Frozen) Rank(v uint32) int {
	hi, lo := splitKey(v)
	idx, found := f.findKey(hi)
	limit := idx
	if found {
		limit = idx + 1
	}
	total := 0
	for i := 0; i < limit-1; i++ {
		total += int(f.headers[i].cardinality)
	}
	if found {
		total += f.blockViewAt(idx).rank(lo)
	} else if idx > 0 {
		total += int(f.headers[idx-1].cardinality)
	}
	return total
}

// Select returns the i-th smallest member (0-based).
func (f *Frozen) Select(i int) (uint32, error) {
	if i < 0 {
		return 0, ErrOutOfRange
	}
	remaining := i
	for k, h := range f.headers {
		n := int(h.cardinality)
		if remaining < n {
			lo, err := f.blockViewAt(k).selectAt(remaining)
			if err != nil {
				return 0, err
			}
			return joinKey(f.keys[k], lo), nil
		}
		remaining -= n
	}
	return 0, ErrOutOfRange
}

// Min returns the smallest member.
func (f *Frozen) Min() (uint32, bool) {
	if len(f.headers) == 0 {
		return 0, false
	}
	lo, _ := f.blockViewAt(0).min()
	return joinKey(f.keys[0], lo), true
}

// Max returns the largest member.
func (f *Frozen) Max() (uint32, bool) {
	if len(f.headers) == 0 {
		return 0, false
	}
	last := len(f.headers) - 1
	lo, _ := f.blockViewAt(last).max()
	return joinKey(f.keys[last], lo), true
}

// Range calls fn for every member in ascending order.
func (f *Frozen) Range(fn func(uint32) bool) {
	for k := range f.headers {
		hi := f.keys[k]
		stop := false
		f.blockViewAt(k).forEach(func(lo uint16) bool {
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

// Thaw copies f into a fresh, independent, mutable Bitmap.
func (f *Frozen) Thaw() *Bitmap {
	r := &Bitmap{
		keys:   make([]uint16, len(f.keys)),
		blocks: make([]*block, len(f.headers)),
	}
	copy(r.keys, f.keys)
	for i := range f.headers {
		r.blocks[i] = f.blockViewAt(i).clone()
	}
	return r
}

// Add always fails with ErrReadOnly: a Frozen image is read-only.
func (f *Frozen) Add(uint32) error { return ErrReadOnly }

// Discard always fails: a Frozen image is read-only.
func (f *Frozen) Discard(uint32) error { return ErrReadOnly }
