// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// Clamp restricts r in place to the half-open range [start, stop), dropping
// any member outside it. Per spec.md §4.3, only the first and last blocks
// overlapping the range are rebuilt via blockClamp; blocks fully inside
// [start, stop) are kept unchanged and blocks fully outside are dropped.
func (r *Bitmap) Clamp(start, stop uint32) {
	if stop <= start {
		r.Clear()
		return
	}
	hiStart, loStart := splitKey(start)
	hiStop, loStop := splitKey(stop - 1) // inclusive last value

	keys := make([]uint16, 0, len(r.keys))
	blocks := make([]*block, 0, len(r.blocks))
	for i, hi := range r.keys {
		switch {
		case hi < hiStart || hi > hiStop:
			continue // fully outside the range
		case hi == hiStart && hi == hiStop:
			if b := blockClamp(r.blocks[i], loStart, loStop); b != nil {
				keys = append(keys, hi)
				blocks = append(blocks, b)
			}
		case hi == hiStart:
			if b := blockClamp(r.blocks[i], loStart, universe-1); b != nil {
				keys = append(keys, hi)
				blocks = append(blocks, b)
			}
		case hi == hiStop:
			if b := blockClamp(r.blocks[i], 0, loStop); b != nil {
				keys = append(keys, hi)
				blocks = append(blocks, b)
			}
		default: // fully inside the range, kept as-is
			keys = append(keys, hi)
			blocks = append(blocks, r.blocks[i])
		}
	}
	r.keys = keys
	r.blocks = blocks
}

// FlipRange toggles membership for every value in the half-open range
// [start, stop): values inside the range are removed if present and added
// if absent, values outside are untouched.
func (r *Bitmap) FlipRange(start, stop uint32) {
	if stop <= start {
		return
	}
	r.SymmetricDifferenceInPlace(rangeBitmap(start, stop))
}
