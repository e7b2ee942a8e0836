// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

// This file holds the primitives over sorted, strictly-increasing []uint16
// slices that back POSITIVE and INVERTED blocks: binary/galloping search
// and the two-pointer merge family (intersect/union/difference/xor), plus
// cardinality-only variants that never materialize a result. The dispatch
// style (binary phase to narrow the window, then a small unrolled linear
// scan) is grounded on the teacher's find16 in roaring_sort.go.

// gallopThreshold is how much larger one side must be before a galloping
// search against it beats a plain two-pointer merge.
const gallopThreshold = 64

// binarySearch16 returns the index of target in a and true if present, or
// the index at which target would be inserted to keep a sorted and false
// if absent. The insertion point is returned as a plain non-negative index
// with a separate found flag, rather than encoded as a negative number.
func binarySearch16(a []uint16, target uint16) (idx int, found bool) {
	n := len(a)
	switch {
	case n == 0:
		return 0, false
	case target <= a[0]:
		return 0, target == a[0]
	case target > a[n-1]:
		return n, false
	}

	lo, hi := 0, n
	for hi-lo > 16 {
		mid := (lo + hi) >> 1
		if a[mid] < target {
			lo = mid + 1
		} else {
			hi = mid
		}
	}

	i := lo
	for ; i+3 < hi; i += 4 {
		switch {
		case a[i] >= target:
			return i, a[i] == target
		case a[i+1] >= target:
			return i + 1, a[i+1] == target
		case a[i+2] >= target:
			return i + 2, a[i+2] == target
		case a[i+3] >= target:
			return i + 3, a[i+3] == target
		}
	}
	for ; i < hi; i++ {
		if a[i] >= target {
			return i, a[i] == target
		}
	}
	return hi, hi < n && a[hi] == target
}

// advance16 performs a galloping search for min starting at a[pos:], doubling
// the span until it brackets min and then bisecting within it. Returns the
// index of the first element >= min.
func advance16(a []uint16, pos int, min uint16) int {
	if pos >= len(a) || a[pos] >= min {
		return pos
	}

	step := 1
	prev := pos
	cur := pos
	for cur < len(a) && a[cur] < min {
		prev = cur
		cur += step
		step <<= 1
	}
	if cur > len(a) {
		cur = len(a)
	}

	idx, _ := binarySearch16(a[prev:cur], min)
	return prev + idx
}

// intersect16 writes a ∩ b into dst (reusing its backing array) and returns
// the result. Gallops against the larger side once the size ratio exceeds
// gallopThreshold, otherwise runs a plain two-pointer merge.
func intersect16(dst, a, b []uint16) []uint16 {
	dst = dst[:0]
	if len(a) == 0 || len(b) == 0 {
		return dst
	}
	if len(a) > len(b)*gallopThreshold {
		return gallopIntersect16(dst, b, a)
	}
	if len(b) > len(a)*gallopThreshold {
		return gallopIntersect16(dst, a, b)
	}

	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			dst = append(dst, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return dst
}

// gallopIntersect16 intersects small (galloped against large) into dst.
func gallopIntersect16(dst, small, large []uint16) []uint16 {
	pos := 0
	for _, v := range small {
		pos = advance16(large, pos, v)
		if pos < len(large) && large[pos] == v {
			dst = append(dst, v)
		}
	}
	return dst
}

// intersectLen16 returns |a ∩ b| without allocating.
func intersectLen16(a, b []uint16) int {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	count := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			count++
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return count
}

// union16 writes a ∪ b (each equal value emitted once) into dst.
func union16(dst, a, b []uint16) []uint16 {
	dst = dst[:0]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			dst = append(dst, a[i])
			i++
			j++
		case a[i] < b[j]:
			dst = append(dst, a[i])
			i++
		default:
			dst = append(dst, b[j])
			j++
		}
	}
	dst = append(dst, a[i:]...)
	dst = append(dst, b[j:]...)
	return dst
}

// unionLen16 returns |a ∪ b| without allocating.
func unionLen16(a, b []uint16) int {
	return len(a) + len(b) - intersectLen16(a, b)
}

// difference16 writes a \ b into dst.
func difference16(dst, a, b []uint16) []uint16 {
	dst = dst[:0]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			dst = append(dst, a[i])
			i++
		default:
			j++
		}
	}
	dst = append(dst, a[i:]...)
	return dst
}

// differenceLen16 returns |a \ b| without allocating.
func differenceLen16(a, b []uint16) int {
	count := 0
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			count++
			i++
		default:
			j++
		}
	}
	return count + (len(a) - i)
}

// xor16 writes the elements present in exactly one of a, b into dst.
func xor16(dst, a, b []uint16) []uint16 {
	dst = dst[:0]
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			dst = append(dst, a[i])
			i++
		default:
			dst = append(dst, b[j])
			j++
		}
	}
	dst = append(dst, a[i:]...)
	dst = append(dst, b[j:]...)
	return dst
}

// symmetricDifferenceLen16 counts |a\b| and |b\a| in one pass.
func symmetricDifferenceLen16(a, b []uint16) (aMinusB, bMinusA int) {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			i++
			j++
		case a[i] < b[j]:
			aMinusB++
			i++
		default:
			bMinusA++
			j++
		}
	}
	aMinusB += len(a) - i
	bMinusA += len(b) - j
	return
}

// isSubset16 returns true iff every element of a is in b.
func isSubset16(a, b []uint16) bool {
	if len(a) > len(b) {
		return false
	}
	j := 0
	for _, v := range a {
		j = advance16(b, j, v)
		if j >= len(b) || b[j] != v {
			return false
		}
	}
	return true
}

// isDisjoint16 returns true iff a and b share no element.
func isDisjoint16(a, b []uint16) bool {
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			return false
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return true
}
