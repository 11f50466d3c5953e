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

package b32

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyInput       = errors.New("empty Base32 input")
	ErrInvalidCharacter = errors.New("invalid Base32 character")
	ErrMisplacedPadding = errors.New("padding before the end of Base32 input")
)

// Kind classifies the errors returned by DecodeStrict.
type Kind int

const (
	InvalidCharacter Kind = iota + 1
	EmptyInput
	MisplacedPadding
)

func (k Kind) String() string {
	switch k {
	case InvalidCharacter:
		return "InvalidCharacter"
	case EmptyInput:
		return "EmptyInput"
	case MisplacedPadding:
		return "MisplacedPadding"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Err returns the sentinel error of the kind.
func (k Kind) Err() error {
	switch k {
	case InvalidCharacter:
		return ErrInvalidCharacter
	case EmptyInput:
		return ErrEmptyInput
	case MisplacedPadding:
		return ErrMisplacedPadding
	}
	return nil
}

// DecodeError is returned by DecodeStrict.
// Offset is the byte index of Char within the input string.
type DecodeError struct {
	Kind   Kind
	Offset int
	Char   rune
}

func (e *DecodeError) Error() string {
	if e.Kind == EmptyInput {
		return ErrEmptyInput.Error()
	}
	return fmt.Sprintf("%v %q at offset %d", e.Kind.Err(), e.Char, e.Offset)
}

func (e *DecodeError) Unwrap() error { return e.Kind.Err() }

// DecodeStrict rejects the input Decode would silently fix
// (see Validate). On success, the result is the same as Decode.
func (d *Decoder) DecodeStrict(str string) ([]byte, error) {
	if err := d.Validate(str); err != nil {
		return nil, err
	}
	return d.Decode(str), nil
}

// Validate returns a *DecodeError when str is empty (or padding only),
// contains a character outside the alphabet,
// or has a padding followed by other characters.
func (d *Decoder) Validate(str string) error {
	end := len(strings.TrimRight(str, string(Padding)))
	if end == 0 {
		return &DecodeError{Kind: EmptyInput, Offset: 0, Char: 0}
	}

	for i, r := range str[:end] {
		if r == Padding {
			return &DecodeError{Kind: MisplacedPadding, Offset: i, Char: r}
		}
		if _, ok := d.value(r); !ok {
			return &DecodeError{Kind: InvalidCharacter, Offset: i, Char: r}
		}
	}

	return nil
}
