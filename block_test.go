// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBlockAddDiscardContains(t *testing.T) {
	b := newBlock()
	assert.Equal(t, statePositive, b.state)

	assert.True(t, b.add(10))
	assert.False(t, b.add(10))
	assert.True(t, b.contains(10))
	assert.False(t, b.contains(11))
	assert.Equal(t, 1, b.cardinality())

	assert.True(t, b.discard(10))
	assert.False(t, b.discard(10))
	assert.Equal(t, 0, b.cardinality())
}

func TestBlockConvertsToDenseAndBack(t *testing.T) {
	b := newBlock()
	for i := uint16(0); i < thresholdLow; i++ {
		b.add(i)
	}
	assert.Equal(t, stateDense, b.state)
	assert.Equal(t, int(thresholdLow), b.cardinality())

	for i := uint16(0); i < 10; i++ {
		b.discard(i)
	}
	assert.Equal(t, statePositive, b.state)
	assert.Equal(t, int(thresholdLow)-10, b.cardinality())
}

func TestBlockConvertsToInvertedAndBack(t *testing.T) {
	b := newBlock()
	for i := 0; i < universe; i++ {
		b.add(uint16(i))
	}
	assert.Equal(t, stateInverted, b.state)
	assert.Equal(t, universe, b.cardinality())

	for i := 0; i < 10000; i++ {
		b.discard(uint16(i))
	}
	assert.Equal(t, stateDense, b.state)
	assert.Equal(t, universe-10000, b.cardinality())
}

func TestBlockDirectConversionPanics(t *testing.T) {
	b := &block{state: stateInverted, arr: []uint16{1, 2, 3}, card: universe - 3}
	assert.Panics(t, func() { b.toPositive() })

	p := &block{state: statePositive, arr: []uint16{1, 2, 3}, card: 3}
	assert.Panics(t, func() { p.toInverted() })
}

func TestBlockRankSelect(t *testing.T) {
	for _, state := range []string{"positive", "dense", "inverted"} {
		var b *block
		switch state {
		case "positive":
			b = blockFromPresent([]uint16{2, 4, 6, 8})
		case "dense":
			present := make([]uint16, 0, thresholdLow+10)
			for i := uint16(0); i < thresholdLow+10; i++ {
				present = append(present, i*2)
			}
			b = blockFromPresent(present)
		case "inverted":
			present := make([]uint16, 0, thresholdHigh+10)
			for i := 0; i < thresholdHigh+10; i++ {
				present = append(present, uint16(i))
			}
			b = blockFromPresent(present)
		}

		if state == "positive" {
			assert.Equal(t, 2, b.rank(4), state)
			assert.Equal(t, 0, b.rank(1), state)
			v, err := b.selectAt(1)
			assert.NoError(t, err, state)
			assert.Equal(t, uint16(4), v, state)
		}
		_, err := b.selectAt(b.cardinality())
		assert.ErrorIs(t, err, ErrOutOfRange, state)
	}
}

func TestBlockMinMaxPop(t *testing.T) {
	b := blockFromPresent([]uint16{5, 10, 15})
	min, ok := b.min()
	assert.True(t, ok)
	assert.Equal(t, uint16(5), min)

	max, ok := b.max()
	assert.True(t, ok)
	assert.Equal(t, uint16(15), max)

	v, ok := b.pop()
	assert.True(t, ok)
	assert.Equal(t, uint16(15), v)
	assert.Equal(t, 2, b.cardinality())
}

func TestBlockClone(t *testing.T) {
	b := blockFromPresent([]uint16{1, 2, 3})
	c := b.clone()
	c.add(4)
	assert.False(t, b.contains(4))
	assert.True(t, c.contains(4))
}
