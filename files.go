/*
 * files.go, part of goqe.
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

import (
	"compress/gzip"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
)

//File-level wrappers around the text codecs. Output logs can be large, so
//the ones stored on disk may be compressed; the compressor is picked from
//the file extension (.gz for gzip, .zst or .zstd for z-standard, anything
//else is plain text), both when writing and when reading back.

// ReadInput parses the pw.x input deck in the named file.
func ReadInput(name string) (*Input, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	inp, err := ParseInput(f)
	if err != nil {
		return nil, errDecorate(err, "ReadInput: "+name)
	}
	return inp, nil
}

// WriteInput writes the canonical deck text of I to the named file,
// overwriting it if it exists.
func WriteInput(I *Input, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return I.Write(f)
}

// ReadOutput parses the pw.x output log in the named file, decompressing it
// first if the name says it is compressed.
func ReadOutput(name string) (*Output, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var r io.Reader = f
	switch {
	case strings.HasSuffix(name, ".gz"):
		g, err := gzip.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer g.Close()
		r = g
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		z, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer z.Close()
		r = z
	}
	out, err := ParseOutput(r)
	if err != nil {
		return nil, errDecorate(err, "ReadOutput: "+name)
	}
	return out, nil
}

// SaveOutput stores a captured pw.x output text in the named file,
// compressed or not according to the extension.
func SaveOutput(text, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	var w io.WriteCloser
	switch {
	case strings.HasSuffix(name, ".gz"):
		w = gzip.NewWriter(f)
	case strings.HasSuffix(name, ".zst"), strings.HasSuffix(name, ".zstd"):
		w, err = zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
		if err != nil {
			return err
		}
	default:
		_, err = io.WriteString(f, text)
		return err
	}
	if _, err = io.WriteString(w, text); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

// XYZWrite writes the final configuration of O as an extended-XYZ file with
// the given name.
func XYZWrite(O *Output, name string) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return WriteXYZ(O, f)
}
