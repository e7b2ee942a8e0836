// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

package roaring

import "errors"

// Sentinel error kinds. All user-driven failures resolve to one of these
// and are checked with errors.Is; internal invariant violations panic
// instead, since they can only be caused by a bug in this package.
var (
	// ErrOutOfRange is returned by Select when the requested index is not
	// less than the number of elements present.
	ErrOutOfRange = errors.New("roaring: index out of range")

	// ErrNotPresent is returned by Remove when the element is not a
	// member. Discard covers the idempotent case and never returns it.
	ErrNotPresent = errors.New("roaring: element not present")

	// ErrEmpty is returned by Pop when the bitmap has no members.
	ErrEmpty = errors.New("roaring: bitmap is empty")

	// ErrReadOnly is returned by any mutating call on a Frozen bitmap.
	ErrReadOnly = errors.New("roaring: bitmap is read-only")

	// ErrOutOfMemory names the allocation-failure error kind. No function
	// in this package returns it: a failed allocation in Go aborts the
	// process instead of returning an error.
	ErrOutOfMemory = errors.New("roaring: out of memory")

	// ErrMalformedImage is returned when attaching to a byte region whose
	// header or block table fails validation.
	ErrMalformedImage = errors.New("roaring: malformed image")
)
