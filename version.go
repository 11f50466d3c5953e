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

package b32x

import (
	"strings"

	"github.com/carlmjohnson/versioninfo"
)

// V is set using the following link flag `-ldflags`:
//
//	v="$(git describe --tags --always --broken)"
//	go build -ldflags="-X 'github.com/teal-finance/b32x.V=$v'" ./cmd/b32x
//
//nolint:gochecknoglobals // This is set at build time
var V string

// Version format is "Program-1.2.3".
// If the program argument is empty, the format is "v1.2.3".
// Without V set at build time, Version uses the main module version.
func Version(program string) string {
	version := V
	if version == "" {
		version = versioninfo.Short()
		if version == "" {
			version = "undefined-version"
		}
	}

	if program == "" {
		return version
	}

	return program + "-" + strings.TrimPrefix(version, "v")
}
