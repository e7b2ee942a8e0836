// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"encoding/binary"
	"fmt"
	"sort"
)

// MultiBitmap groups several frozen images into one contiguous byte region,
// so a caller holding many related bitmaps (e.g. one per shard or one per
// day) can mmap a single file instead of one per bitmap. The layout is:
//
//	uint32                count
//	uint32[count]          childOffset
//	uint32[count]          childSize
//	... padding to a 32-byte boundary ...
//	child images           concatenated, each a valid Frozen image
type MultiBitmap struct {
	data     []byte
	children []*Frozen
}

// BuildMultiBitmap freezes each bitmap and packs the results into one
// MultiBitmap image.
func BuildMultiBitmap(bitmaps ...*Bitmap) *MultiBitmap {
	count := len(bitmaps)
	images := make([][]byte, count)
	for i, b := range bitmaps {
		images[i] = Freeze(b).Bytes()
	}

	headerSize := 4 + count*8
	childrenStart := alignUp(headerSize)

	offsets := make([]int, count)
	total := childrenStart
	for i, img := range images {
		offsets[i] = total
		total += len(img)
	}

	data := make([]byte, total)
	binary.LittleEndian.PutUint32(data[0:4], uint32(count))
	for i, img := range images {
		binary.LittleEndian.PutUint32(data[4+i*4:], uint32(offsets[i]))
		binary.LittleEndian.PutUint32(data[4+count*4+i*4:], uint32(len(img)))
		copy(data[offsets[i]:], img)
	}

	m, err := AttachMulti(data)
	if err != nil {
		panic(fmt.Sprintf("roaring: BuildMultiBitmap produced an invalid image: %v", err))
	}
	return m
}

// AttachMulti validates data as a multi-bitmap image and attaches each
// child without copying its buffer.
func AttachMulti(data []byte) (*MultiBitmap, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("roaring: multi-bitmap image shorter than count field: %w", ErrMalformedImage)
	}
	count := binary.LittleEndian.Uint32(data[0:4])

	headerSize := 4 + int(count)*8
	if len(data) < headerSize {
		return nil, fmt.Errorf("roaring: multi-bitmap image too short for %d children: %w", count, ErrMalformedImage)
	}

	children := make([]*Frozen, count)
	for i := range children {
		offset := binary.LittleEndian.Uint32(data[4+i*4:])
		size := binary.LittleEndian.Uint32(data[4+int(count)*4+i*4:])
		if uint64(offset)+uint64(size) > uint64(len(data)) {
			return nil, fmt.Errorf("roaring: child %d out of bounds: %w", i, ErrMalformedImage)
		}
		f, err := Attach(data[offset : offset+size])
		if err != nil {
			return nil, fmt.Errorf("roaring: child %d: %w", i, err)
		}
		children[i] = f
	}

	return &MultiBitmap{data: data, children: children}, nil
}

// Bytes returns the raw image backing m.
func (m *MultiBitmap) Bytes() []byte {
	return m.data
}

// Len returns the number of bitmaps packed into m.
func (m *MultiBitmap) Len() int {
	return len(m.children)
}

// At returns the i-th packed bitmap as a read-only Frozen view.
func (m *MultiBitmap) At(i int) (*Frozen, error) {
	if i < 0 || i >= len(m.children) {
		return nil, ErrOutOfRange
	}
	return m.children[i], nil
}

// keyBlock pairs a high key with the block holding its low values, used to
// thread a running intersection across Frozen children without ever
// collapsing a whole child into a *Bitmap.
type keyBlock struct {
	key uint16
	blk *block
}

// frozenKeyBlocks returns f's (key, block) pairs as blockViewAt-backed
// blocks sharing f's mapped buffers, not copies of them.
func frozenKeyBlocks(f *Frozen) []keyBlock {
	out := make([]keyBlock, len(f.keys))
	for i, k := range f.keys {
		out[i] = keyBlock{key: k, blk: f.blockViewAt(i)}
	}
	return out
}

// intersectKeyBlocks folds f into the running intersection acc via the
// same two-pointer key-array merge roaring_query.go's IntersectionLen
// uses, dispatching matched keys into blockAnd.
func intersectKeyBlocks(acc []keyBlock, f *Frozen) []keyBlock {
	out := make([]keyBlock, 0, len(acc))
	i, j := 0, 0
	for i < len(acc) && j < len(f.keys) {
		switch {
		case acc[i].key == f.keys[j]:
			if res := blockAnd(acc[i].blk, f.blockViewAt(j)); res != nil {
				out = append(out, keyBlock{key: acc[i].key, blk: res})
			}
			i++
			j++
		case acc[i].key < f.keys[j]:
			i++
		default:
			j++
		}
	}
	return out
}

func keyBlocksLen(kbs []keyBlock) int {
	total := 0
	for _, kb := range kbs {
		total += kb.blk.cardinality()
	}
	return total
}

// IntersectionLenAt returns the cardinality of the intersection of the
// bitmaps at the given indices, computed entirely against the mapped data:
// every source block is a blockViewAt-backed view over its Frozen's
// buffer, never a Thaw'd copy. Children are visited smallest-cardinality-
// first so the running intersection shrinks as fast as possible.
func (m *MultiBitmap) IntersectionLenAt(indices ...int) (int, error) {
	if len(indices) == 0 {
		return 0, nil
	}
	frozens := make([]*Frozen, len(indices))
	for i, idx := range indices {
		f, err := m.At(idx)
		if err != nil {
			return 0, err
		}
		frozens[i] = f
	}
	sort.Slice(frozens, func(i, j int) bool { return frozens[i].Len() < frozens[j].Len() })

	acc := frozenKeyBlocks(frozens[0])
	for _, f := range frozens[1:] {
		if len(acc) == 0 {
			break
		}
		acc = intersectKeyBlocks(acc, f)
	}
	return keyBlocksLen(acc), nil
}
