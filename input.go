/*
 * input.go, part of goqe.
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
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Namelist holds the key = value assignments of one Fortran namelist.
// Values are kept as the verbatim literals found in the deck ('true', 28.0,
// 'cold'...), with no semantic interpretation, so a deck survives a
// read/build cycle unchanged. Keys keep their insertion order, which is the
// order they are written out in.
type Namelist struct {
	keys []string
	vals map[string]string
}

func NewNamelist() *Namelist {
	return &Namelist{vals: make(map[string]string)}
}

// Set adds or replaces a parameter. Replacing keeps the original position
// of the key.
func (N *Namelist) Set(key, value string) {
	if k, ok := N.key(key); ok {
		N.vals[k] = value
		return
	}
	N.keys = append(N.keys, key)
	N.vals[key] = value
}

// Get returns the verbatim literal for key. Namelist keys are matched
// case-insensitively, as Fortran does.
func (N *Namelist) Get(key string) (string, bool) {
	k, ok := N.key(key)
	if !ok {
		return "", false
	}
	return N.vals[k], true
}

// Keys returns the parameter names in insertion order.
func (N *Namelist) Keys() []string { return N.keys }

func (N *Namelist) Len() int { return len(N.keys) }

func (N *Namelist) key(key string) (string, bool) {
	for _, k := range N.keys {
		if strings.EqualFold(k, key) {
			return k, true
		}
	}
	return "", false
}

// Species associates one atomic species label with its mass and its
// pseudopotential file.
type Species struct {
	Label  string
	Mass   float64
	Pseudo string
}

// Atom is one line of the ATOMIC_POSITIONS card. IfPos, if present, must
// have 3 elements: the 0/1 factors multiplying each force component.
type Atom struct {
	Type    string
	X, Y, Z float64
	IfPos   []int
}

// KPoint is one explicitly listed K vector with its weight.
type KPoint struct {
	Kx, Ky, Kz, W float64
}

// KPoints describes the K_POINTS card. Type is the tag after the card
// keyword: "gamma" and "automatic" (compared case-insensitively) select
// those grids; any other tag means an explicit list in the units named by
// the tag itself (tpiba, crystal...). Nk and Sk are only meaningful for
// "automatic", List only for the explicit forms.
type KPoints struct {
	Type string
	Nk   [3]int
	Sk   [3]int
	List []KPoint
}

// Input represents a full pw.x input deck. The five namelists are always
// non-nil. CellVectors is a 3x3 matrix with the cell vectors as rows, and
// must be present exactly when ibrav is 0.
type Input struct {
	Control   *Namelist
	System    *Namelist
	Electrons *Namelist
	Ions      *Namelist
	Cell      *Namelist

	Species []Species
	Atoms   []Atom

	CellVectors    *mat.Dense
	PositionsUnits string
	CellUnits      string

	KPoints KPoints
}

func NewInput() *Input {
	return &Input{
		Control:   NewNamelist(),
		System:    NewNamelist(),
		Electrons: NewNamelist(),
		Ions:      NewNamelist(),
		Cell:      NewNamelist(),
	}
}

// The states of the deck parser. Only deckIdle can end a parse: anything
// else at EOF means a truncated card.
type deckState int

const (
	deckIdle deckState = iota
	deckNamelist
	deckCellParameters
	deckSpecies
	deckPositions
	deckKAutomatic
	deckKExplicit
)

// ParseInput reads a pw.x input deck into an Input. The &SYSTEM namelist
// must appear before the ATOMIC_SPECIES and ATOMIC_POSITIONS cards, since
// those take their lengths from ntyp and nat; a deck violating this returns
// a CError with the MissingSection message. Any malformed line returns a
// ParseError carrying the line number. Nothing is ever skipped silently.
func ParseInput(r io.Reader) (*Input, error) {
	inp := NewInput()
	state := deckIdle
	var section *Namelist
	var row, count, target, nline int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		nline++
		l := strings.Fields(scanner.Text())
		if len(l) == 0 {
			continue
		}
		switch state {
		case deckIdle:
			switch head := strings.ToLower(l[0]); head {
			case "&control", "&system", "&electrons", "&ions", "&cell":
				section = inp.namelist(head)
				state = deckNamelist
			case "cell_parameters":
				if len(l) > 1 {
					inp.CellUnits = l[1]
				}
				inp.CellVectors = mat.NewDense(3, 3, nil)
				row = 0
				state = deckCellParameters
			case "atomic_species":
				n, err := inp.systemCount("ntyp", "ATOMIC_SPECIES", nline)
				if err != nil {
					return nil, err
				}
				count, target = 0, n
				if target > 0 {
					state = deckSpecies
				}
			case "atomic_positions":
				if len(l) > 1 {
					inp.PositionsUnits = l[1]
				}
				n, err := inp.systemCount("nat", "ATOMIC_POSITIONS", nline)
				if err != nil {
					return nil, err
				}
				count, target = 0, n
				if target > 0 {
					state = deckPositions
				}
			case "k_points":
				if len(l) < 2 {
					return nil, ParseError{Line: nline, Reason: "K_POINTS without a variant tag"}
				}
				inp.KPoints.Type = l[1]
				switch strings.ToLower(l[1]) {
				case "gamma":
					//consumes no lines
				case "automatic":
					state = deckKAutomatic
				default:
					row = -1 //the count line is still pending
					state = deckKExplicit
				}
			default:
				return nil, ParseError{Line: nline, Reason: fmt.Sprintf("unrecognized directive %q", l[0])}
			}
		case deckNamelist:
			if l[0] == "/" {
				state = deckIdle
				continue
			}
			if len(l) < 3 {
				return nil, ParseError{Line: nline, Reason: "malformed namelist assignment"}
			}
			section.Set(l[0], strings.TrimSuffix(l[2], ","))
		case deckCellParameters:
			if len(l) < 3 {
				return nil, ParseError{Line: nline, Reason: "cell vector with less than 3 components"}
			}
			for k := 0; k < 3; k++ {
				v, err := atof(l[k], nline)
				if err != nil {
					return nil, err
				}
				inp.CellVectors.Set(row, k, v)
			}
			row++
			if row == 3 {
				state = deckIdle
			}
		case deckSpecies:
			if len(l) < 3 {
				return nil, ParseError{Line: nline, Reason: "ATOMIC_SPECIES line needs label, mass and pseudopotential"}
			}
			mass, err := atof(l[1], nline)
			if err != nil {
				return nil, err
			}
			inp.Species = append(inp.Species, Species{Label: l[0], Mass: mass, Pseudo: l[2]})
			count++
			if count == target {
				state = deckIdle
			}
		case deckPositions:
			if len(l) < 4 {
				return nil, ParseError{Line: nline, Reason: "ATOMIC_POSITIONS line needs a label and 3 coordinates"}
			}
			a := Atom{Type: l[0]}
			var err error
			if a.X, err = atof(l[1], nline); err != nil {
				return nil, err
			}
			if a.Y, err = atof(l[2], nline); err != nil {
				return nil, err
			}
			if a.Z, err = atof(l[3], nline); err != nil {
				return nil, err
			}
			if len(l) >= 7 {
				a.IfPos = make([]int, 3)
				for k := 0; k < 3; k++ {
					if a.IfPos[k], err = atoi(l[4+k], nline); err != nil {
						return nil, err
					}
				}
			}
			inp.Atoms = append(inp.Atoms, a)
			count++
			if count == target {
				state = deckIdle
			}
		case deckKAutomatic:
			if len(l) < 6 {
				return nil, ParseError{Line: nline, Reason: "automatic K grid needs 6 integers"}
			}
			for k := 0; k < 3; k++ {
				var err error
				if inp.KPoints.Nk[k], err = atoi(l[k], nline); err != nil {
					return nil, err
				}
				if inp.KPoints.Sk[k], err = atoi(l[3+k], nline); err != nil {
					return nil, err
				}
			}
			state = deckIdle
		case deckKExplicit:
			if row < 0 {
				n, err := atoi(l[0], nline)
				if err != nil {
					return nil, err
				}
				row, target = 0, n
				if target <= 0 {
					state = deckIdle
				}
				continue
			}
			if len(l) < 4 {
				return nil, ParseError{Line: nline, Reason: "K point line needs 3 components and a weight"}
			}
			var kp KPoint
			var err error
			if kp.Kx, err = atof(l[0], nline); err != nil {
				return nil, err
			}
			if kp.Ky, err = atof(l[1], nline); err != nil {
				return nil, err
			}
			if kp.Kz, err = atof(l[2], nline); err != nil {
				return nil, err
			}
			if kp.W, err = atof(l[3], nline); err != nil {
				return nil, err
			}
			inp.KPoints.List = append(inp.KPoints.List, kp)
			row++
			if row == target {
				state = deckIdle
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if state != deckIdle {
		return nil, ParseError{Line: nline, Reason: "input ended inside a section"}
	}
	return inp, nil
}

func (I *Input) namelist(head string) *Namelist {
	switch head {
	case "&control":
		return I.Control
	case "&system":
		return I.System
	case "&electrons":
		return I.Electrons
	case "&ions":
		return I.Ions
	}
	return I.Cell
}

// systemCount returns a card length declared in &SYSTEM (nat or ntyp).
// The namelist value missing is a MissingSection error: the cards cannot be
// parsed before the namelist that sizes them.
func (I *Input) systemCount(key, card string, line int) (int, error) {
	v, ok := I.System.Get(key)
	if !ok {
		return 0, CError{MissingSection, fmt.Sprintf("%s needs %s from &SYSTEM", card, key), nil}
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, ParseError{Line: line, Reason: fmt.Sprintf("%s is not an integer: %q", key, v)}
	}
	return n, nil
}

// Ibrav returns the lattice code from &SYSTEM, or -1 if absent or not an
// integer.
func (I *Input) Ibrav() int {
	v, ok := I.System.Get("ibrav")
	if !ok {
		return -1
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return -1
	}
	return n
}

// VariableCell is true when the calculation kind lets the cell change, which
// is when pw.x reads the &CELL namelist.
func (I *Input) VariableCell() bool {
	v, ok := I.Control.Get("calculation")
	if !ok {
		return false
	}
	switch strings.ToLower(strings.Trim(v, "'\"")) {
	case "vc-relax", "vc-md":
		return true
	}
	return false
}

// String builds the canonical text of the deck. It cannot fail: nat and
// ntyp are recomputed from the Atoms and Species lists whatever the stored
// values say, the &CELL namelist is only written for variable-cell
// calculations, and the CELL_PARAMETERS card only when ibrav is 0. The
// result parses back into an Input structurally equal to I.
func (I *Input) String() string {
	var deck strings.Builder
	recount := map[string]string{
		"nat":  strconv.Itoa(len(I.Atoms)),
		"ntyp": strconv.Itoa(len(I.Species)),
	}
	writeNamelist(&deck, "CONTROL", I.Control, nil)
	writeNamelist(&deck, "SYSTEM", I.System, recount)
	writeNamelist(&deck, "ELECTRONS", I.Electrons, nil)
	writeNamelist(&deck, "IONS", I.Ions, nil)
	if I.VariableCell() {
		writeNamelist(&deck, "CELL", I.Cell, nil)
	}
	deck.WriteString("ATOMIC_SPECIES\n")
	for _, s := range I.Species {
		fmt.Fprintf(&deck, "%s   %s   %s\n", s.Label, ftoa(s.Mass), s.Pseudo)
	}
	if I.Ibrav() == 0 && I.CellVectors != nil {
		deck.WriteString(cardHeader("CELL_PARAMETERS", I.CellUnits))
		for i := 0; i < 3; i++ {
			fmt.Fprintf(&deck, "%s   %s   %s\n", ftoa(I.CellVectors.At(i, 0)),
				ftoa(I.CellVectors.At(i, 1)), ftoa(I.CellVectors.At(i, 2)))
		}
	}
	deck.WriteString(cardHeader("ATOMIC_POSITIONS", I.PositionsUnits))
	for _, a := range I.Atoms {
		fmt.Fprintf(&deck, "%s   %s   %s   %s", a.Type, ftoa(a.X), ftoa(a.Y), ftoa(a.Z))
		if len(a.IfPos) == 3 {
			fmt.Fprintf(&deck, "   %d   %d   %d", a.IfPos[0], a.IfPos[1], a.IfPos[2])
		}
		deck.WriteString("\n")
	}
	if I.KPoints.Type != "" {
		deck.WriteString(cardHeader("K_POINTS", I.KPoints.Type))
		switch strings.ToLower(I.KPoints.Type) {
		case "gamma":
			//the card is just the header
		case "automatic":
			fmt.Fprintf(&deck, "%d   %d   %d   %d   %d   %d\n",
				I.KPoints.Nk[0], I.KPoints.Nk[1], I.KPoints.Nk[2],
				I.KPoints.Sk[0], I.KPoints.Sk[1], I.KPoints.Sk[2])
		default:
			fmt.Fprintf(&deck, "%d\n", len(I.KPoints.List))
			for _, kp := range I.KPoints.List {
				fmt.Fprintf(&deck, "%s   %s   %s   %s\n",
					ftoa(kp.Kx), ftoa(kp.Ky), ftoa(kp.Kz), ftoa(kp.W))
			}
		}
	}
	return deck.String()
}

// Write writes the canonical deck text to w.
func (I *Input) Write(w io.Writer) error {
	_, err := io.WriteString(w, I.String())
	return err
}

// writeNamelist writes one namelist block. The values in override replace
// (or, if the key is absent, extend) the stored ones; the stored key order
// is kept.
func writeNamelist(deck *strings.Builder, name string, section *Namelist, override map[string]string) {
	fmt.Fprintf(deck, "&%s\n", name)
	used := make(map[string]bool)
	for _, k := range section.Keys() {
		v := section.vals[k]
		if o, ok := override[strings.ToLower(k)]; ok {
			v = o
			used[strings.ToLower(k)] = true
		}
		fmt.Fprintf(deck, "%s = %s,\n", k, v)
	}
	//Stable emission order for the overrides themselves.
	for _, k := range []string{"nat", "ntyp"} {
		if o, ok := override[k]; ok && !used[k] {
			fmt.Fprintf(deck, "%s = %s,\n", k, o)
		}
	}
	deck.WriteString("/\n")
}

func cardHeader(name, tag string) string {
	if tag == "" {
		return name + "\n"
	}
	return name + " " + tag + "\n"
}

// ftoa formats a float with the shortest representation that parses back to
// the same value, which is what keeps the serialize/parse round trip exact.
func ftoa(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// atof is the strict float parse used everywhere a number is mandatory.
func atof(tok string, line int) (float64, error) {
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return 0, ParseError{Line: line, Reason: fmt.Sprintf("expected a number, got %q", tok)}
	}
	return v, nil
}

func atoi(tok string, line int) (int, error) {
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, ParseError{Line: line, Reason: fmt.Sprintf("expected an integer, got %q", tok)}
	}
	return v, nil
}
