// #region <editor-fold desc="Preamble">
// Copyright (c) 2022 Teal.Finance contributors
//
// This file is part of Teal.Finance/B32x, a tolerant Base32 decoder and server.
// Teal.Finance/B32x is free software: you can redistribute it
// and/or modify it under the terms of the GNU Lesser General Public License
// either version 3 or any later version, at the licensee’s option.
// SPDX-License-Identifier: LGPL-3.0-or-later
//
// Teal.Finance/B32x is distributed WITHOUT ANY WARRANTY.
// For more details, see the LICENSE file (alongside the source files)
// or online at <https://www.gnu.org/licenses/lgpl-3.0.html>
// #endregion </editor-fold>

// Package iec formats byte sizes with the binary prefixes
// KiB, MiB, GiB... of ISO/IEC 80000-13.
package iec

import "strconv"

const unit = 1024

// Convert formats the size using the largest fitting binary prefix,
// with one decimal: 1536 gives "1.5 KiB".
func Convert(size int) string {
	if size < unit {
		return strconv.Itoa(size) + " B"
	}

	div, exp := unit, 0
	for n := size / unit; n >= unit && exp < 5; n /= unit {
		div *= unit
		exp++
	}

	v := float64(size) / float64(div)
	return strconv.FormatFloat(v, 'f', 1, 64) + " " + "KMGTPE"[exp:exp+1] + "iB"
}
