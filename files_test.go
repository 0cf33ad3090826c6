/*
 * files_test.go, part of goqe.
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
	"os"
	"path/filepath"
	"testing"
)

// A stored log must scan the same whether it was compressed or not.
func TestCompressedOutputs(Te *testing.T) {
	raw, err := os.ReadFile("test/h2.out")
	if err != nil {
		Te.Fatal(err)
	}
	plain, err := ReadOutput("test/h2.out")
	if err != nil {
		Te.Fatal(err)
	}
	dir := Te.TempDir()
	for _, name := range []string{"h2.out", "h2.out.gz", "h2.out.zst"} {
		stored := filepath.Join(dir, name)
		if err := SaveOutput(string(raw), stored); err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		out, err := ReadOutput(stored)
		if err != nil {
			Te.Fatalf("%s: %v", name, err)
		}
		if len(out.Energies) != len(plain.Energies) || out.NAtoms() != plain.NAtoms() {
			Te.Errorf("%s scanned differently from the plain log", name)
		}
	}
	//the compressed copies should actually be compressed
	big, _ := os.Stat(filepath.Join(dir, "h2.out"))
	small, _ := os.Stat(filepath.Join(dir, "h2.out.gz"))
	if small.Size() >= big.Size() {
		Te.Errorf("gzip copy not smaller: %d vs %d", small.Size(), big.Size())
	}
}

func TestWriteReadInput(Te *testing.T) {
	inp, err := ReadInput("test/h2.inp")
	if err != nil {
		Te.Fatal(err)
	}
	name := filepath.Join(Te.TempDir(), "h2.inp")
	if err := WriteInput(inp, name); err != nil {
		Te.Fatal(err)
	}
	again, err := ReadInput(name)
	if err != nil {
		Te.Fatal(err)
	}
	sameInput(Te, inp, again)
}

func TestXYZWriteFile(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "final.xyz")
	if err := XYZWrite(testOutput(), name); err != nil {
		Te.Fatal(err)
	}
	text, err := os.ReadFile(name)
	if err != nil {
		Te.Fatal(err)
	}
	if len(text) == 0 {
		Te.Error("empty coordinate file")
	}
}
