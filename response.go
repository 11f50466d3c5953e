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

//go:generate go run github.com/mailru/easyjson/easyjson -no_std_marshalers response.go

//easyjson:json
type decodeResponse struct {
	Hex       string        `json:"hex"`
	Base64    string        `json:"base64"`
	Text      string        `json:"text"`
	ValidUTF8 bool          `json:"valid_utf8"`
	Stats     statsResponse `json:"stats"`
}

//easyjson:json
type statsResponse struct {
	Symbols       int `json:"symbols"`
	Skipped       int `json:"skipped"`
	Padding       int `json:"padding"`
	Bytes         int `json:"bytes"`
	Size          int `json:"size"`
	DiscardedBits int `json:"discarded_bits"`
}

//easyjson:json
type alphabetResponse struct {
	Symbols     string            `json:"symbols"`
	Padding     string            `json:"padding"`
	Aliases     map[string]string `json:"aliases"`
	CaseFolding bool              `json:"case_folding"`
	ZeroTail    bool              `json:"zero_tail"`
}
