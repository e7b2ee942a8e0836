// Copyright (c) Roman Atachiants and contributors. All rights reserved.
// Licensed under the MIT license. See LICENSE file in the project root

// Package roaring implements a compressed bitmap for sets of uint32 values,
// in the spirit of the Roaring Bitmap format: elements are split into a
// 16-bit high key and a 16-bit low value, and each high key addresses a
// block that holds up to 65536 low values in whichever of three
// representations is smallest — a dense 65536-bit bitmap, a sorted array of
// present values, or a sorted array of absent values.
//
// The package does not aim for wire compatibility with other Roaring
// Bitmap implementations; see Frozen for the on-disk layout this package
// actually uses.
package roaring
