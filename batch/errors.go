// Copyright 2026 The glidex Authors
// SPDX-License-Identifier: BSD-3-Clause

package batch

import "errors"

// Sentinel errors for the batch package.
var (
	// ErrBatchListFull is returned when a frame produces more batches than
	// the accumulator was sized for.
	ErrBatchListFull = errors.New("batch: per-frame batch list is full")
)
