// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// This is the plain mutable round-trip format: every block's buffer is
// written out verbatim (dense as 1024 uint64 words, array states as their
// []uint16), with no alignment padding and no mmap-safety guarantees. The
// non-portable, attach-in-place image lives in frozen.go; this one exists
// purely to get a *Bitmap back out of an io.Writer/io.Reader cheaply.

var codecMagic = [4]byte{'r', 'o', 'a', 'r'}

// WriteTo serializes r, implementing io.WriterTo.
func (r *Bitmap) WriteTo(w io.Writer) (int64, error) {
	var written int64

	n, err := w.Write(codecMagic[:])
	written += int64(n)
	if err != nil {
		return written, err
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(r.keys))); err != nil {
		return written, err
	}
	written += 4

	if err := binary.Write(w, binary.LittleEndian, r.keys); err != nil {
		return written, err
	}
	written += int64(len(r.keys)) * 2

	for _, b := range r.blocks {
		if err := binary.Write(w, binary.LittleEndian, uint8(b.state)); err != nil {
			return written, err
		}
		written++
		if err := binary.Write(w, binary.LittleEndian, b.card); err != nil {
			return written, err
		}
		written += 4

		switch b.state {
		case stateDense:
			if err := binary.Write(w, binary.LittleEndian, []uint64(b.dense)); err != nil {
				return written, err
			}
			written += int64(denseWords) * 8
		default:
			if err := binary.Write(w, binary.LittleEndian, uint32(len(b.arr))); err != nil {
				return written, err
			}
			written += 4
			if err := binary.Write(w, binary.LittleEndian, b.arr); err != nil {
				return written, err
			}
			written += int64(len(b.arr)) * 2
		}
	}
	return written, nil
}

// ReadFrom replaces r's contents with a Bitmap decoded from reader,
// implementing io.ReaderFrom. Returns ErrMalformedImage if the stream's
// header or any block's state byte is invalid.
func (r *Bitmap) ReadFrom(reader io.Reader) (int64, error) {
	var read int64

	var magic [4]byte
	n, err := io.ReadFull(reader, magic[:])
	read += int64(n)
	if err != nil {
		return read, err
	}
	if magic != codecMagic {
		return read, fmt.Errorf("roaring: bad codec header: %w", ErrMalformedImage)
	}

	var numKeys uint32
	if err := binary.Read(reader, binary.LittleEndian, &numKeys); err != nil {
		return read, err
	}
	read += 4

	keys := make([]uint16, numKeys)
	if err := binary.Read(reader, binary.LittleEndian, keys); err != nil {
		return read, err
	}
	read += int64(numKeys) * 2

	blocks := make([]*block, numKeys)
	for i := range blocks {
		var stateByte uint8
		if err := binary.Read(reader, binary.LittleEndian, &stateByte); err != nil {
			return read, err
		}
		read++
		if stateByte > uint8(stateInverted) {
			return read, fmt.Errorf("roaring: bad block state %d: %w", stateByte, ErrMalformedImage)
		}

		var card uint32
		if err := binary.Read(reader, binary.LittleEndian, &card); err != nil {
			return read, err
		}
		read += 4

		b := &block{state: blockState(stateByte), card: card}
		switch b.state {
		case stateDense:
			b.dense = newDense()
			if err := binary.Read(reader, binary.LittleEndian, []uint64(b.dense)); err != nil {
				return read, err
			}
			read += int64(denseWords) * 8
		default:
			var arrLen uint32
			if err := binary.Read(reader, binary.LittleEndian, &arrLen); err != nil {
				return read, err
			}
			read += 4
			b.arr = make([]uint16, arrLen)
			if err := binary.Read(reader, binary.LittleEndian, b.arr); err != nil {
				return read, err
			}
			read += int64(arrLen) * 2
		}
		blocks[i] = b
	}

	r.keys = keys
	r.blocks = blocks
	return read, nil
}

// ToBytes serializes r into a freshly allocated byte slice.
func (r *Bitmap) ToBytes() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := r.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// FromBytes decodes a Bitmap previously produced by ToBytes.
func FromBytes(data []byte) (*Bitmap, error) {
	r := New()
	if _, err := r.ReadFrom(bytes.NewReader(data)); err != nil {
		return nil, err
	}
	return r, nil
}
