/*
 * errors.go, part of goqe.
 *
 * Copyright 2024 The goqe authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package pw

import "fmt"

// Error is the interface all errors returned by this package implement. The
// Decorate method allows to add and retrieve info from the error, without
// changing its type or wrapping it around something else. The decorate slice
// should contain a list of the functions in the calling stack, plus, for each
// function, any relevant information, or nothing.
type Error interface {
	Error() string
	Decorate(string) []string
}

// Messages for the errors of this package that carry no line number. Which
// of these an error carries can be recovered with the Message method of
// CError, so the kinds can be told apart without string-matching the full
// error text.
const (
	MissingSection = "Card found before the namelist value that sets its length"
	MissingContext = "Output block found before the value that sets its length"
	MissingData    = "Output lacks the data needed to write coordinates"
	Crashed        = "pw.x left a CRASH file in the working directory"
	NotRunning     = "Unable to run the pw.x command"
)

// CError is the concrete error type for failures without positional context.
type CError struct {
	message string
	detail  string
	deco    []string
}

func (err CError) Error() string {
	if err.detail == "" {
		return err.message
	}
	return fmt.Sprintf("%s: %s", err.message, err.detail)
}

// Message returns the message constant identifying the kind of failure.
func (err CError) Message() string { return err.message }

func (err CError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// ParseError reports a malformed or unexpected line, with its position in
// the text being parsed. A ParseError aborts the whole parse: no partial
// Input or Output is ever returned with it.
type ParseError struct {
	Line   int
	Reason string
	deco   []string
}

func (err ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", err.Line, err.Reason)
}

func (err ParseError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

// errDecorate adds the caller to the decoration slice of err, if err
// implements the Error interface of this package.
func errDecorate(err error, caller string) error {
	err2, ok := err.(Error)
	if !ok {
		return err
	}
	err2.Decorate(caller)
	return err2
}
