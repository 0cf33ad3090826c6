/*
 * run.go, part of goqe.
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
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// CrashFile is the sentinel file pw.x leaves in the working directory when
// it aborts. Its presence after a run, not the exit status, is what tells a
// crashed run apart; removing it between runs is the caller's job (see
// PW.ClearCrash).
const CrashFile = "CRASH"

// PW runs the pw.x program. The zero value runs "pw.x" in the current
// directory; SetCommand accepts a full command line ("mpirun -np 4 pw.x"),
// split on whitespace.
type PW struct {
	command string
	workdir string
}

func NewPW() *PW {
	return &PW{command: "pw.x"}
}

func (O *PW) SetCommand(cmdline string) {
	O.command = cmdline
}

// SetWorkDir sets the directory the calculation runs in, where pw.x reads
// its pseudopotentials and leaves its scratch and CRASH files.
func (O *PW) SetWorkDir(dir string) {
	O.workdir = dir
}

// Run feeds the deck text to pw.x through its standard input, blocks until
// it exits, and returns whatever it wrote to standard output. The captured
// output is returned even on failure, since pw.x reports its problems there.
// A CRASH file in the working directory after the run means a crashed
// calculation whatever the output says: that is a CError with the Crashed
// message.
func (O *PW) Run(input string) (string, error) {
	command := O.command
	if command == "" {
		command = "pw.x"
	}
	args := strings.Fields(command)
	if len(args) == 0 {
		return "", CError{NotRunning, "empty command line", nil}
	}
	cmd := exec.Command(args[0], args[1:]...)
	cmd.Dir = O.workdir
	cmd.Stdin = strings.NewReader(input)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	runErr := cmd.Run()
	if O.Crashed() {
		return stdout.String(), CError{Crashed, command, nil}
	}
	if runErr != nil {
		return stdout.String(), CError{NotRunning, command + ": " + runErr.Error(), nil}
	}
	return stdout.String(), nil
}

// Crashed reports whether the working directory holds a CRASH file.
func (O *PW) Crashed() bool {
	_, err := os.Stat(filepath.Join(O.dir(), CrashFile))
	return err == nil
}

// ClearCrash removes a leftover CRASH file, if any.
func (O *PW) ClearCrash() error {
	err := os.Remove(filepath.Join(O.dir(), CrashFile))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (O *PW) dir() string {
	if O.workdir == "" {
		return "."
	}
	return O.workdir
}

// RunAndParse builds the deck for I, runs pw.x on it and scrapes the
// captured output. If outfile is given (non-empty), the raw output is also
// stored there, compressed or not according to its extension; if coordfile
// is also given, the final configuration is written there as extended XYZ.
// The raw output is stored even when the run crashed, since the log is the
// only place to look for the reason.
func (O *PW) RunAndParse(I *Input, outfile, coordfile string) (*Output, error) {
	captured, runErr := O.Run(I.String())
	if outfile != "" && captured != "" {
		if err := SaveOutput(captured, outfile); err != nil {
			return nil, err
		}
	}
	if runErr != nil {
		return nil, runErr
	}
	out, err := ParseOutput(strings.NewReader(captured))
	if err != nil {
		return nil, errDecorate(err, "RunAndParse")
	}
	if coordfile != "" {
		if err := XYZWrite(out, coordfile); err != nil {
			return nil, err
		}
	}
	return out, nil
}
