// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/tex

package tex

const (
	maxInt32 = int(^uint32(0) >> 1)
)

// i32FromInt converts an int to an int32.
func i32FromInt(n int) (int32, error) {
	if n < 0 || n > maxInt32 {
		return 0, ErrSizeOverflow
	}

	return int32(n), nil
}

// b32 converts a bool into the 0/1 int32 used by TEX flags.
func b32(v bool) int32 {
	if v {
		return 1
	}

	return 0
}
