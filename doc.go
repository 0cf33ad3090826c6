/*
 * doc.go, part of goqe.
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

/*Package pw reads and writes the input and output of the pw.x program of the
Quantum ESPRESSO package, and can drive pw.x itself.

Please check https://www.quantum-espresso.org/Doc/INPUT_PW.html for a
complete description of the pw.x input format.


	**goqe capabilities**

    Reads pw.x input decks (the five namelists plus the ATOMIC_SPECIES,
	CELL_PARAMETERS, ATOMIC_POSITIONS and K_POINTS cards) into an Input
	object, keeping the namelist values as the verbatim Fortran literals
	found in the file.

    Builds canonical pw.x input decks from an Input object. nat and ntyp
	are always recomputed from the atom and species lists, so a deck built
	from an Input is consistent even if the object was edited by hand.

    Runs pw.x feeding it the deck through its standard input, captures its
	standard output, and detects crashed runs through the CRASH file pw.x
	leaves behind.

    Scrapes a pw.x output log into an Output object: total energy per SCF
	iteration, magnetizations, Fermi energy, and the last set of cell
	vectors, atomic positions and forces, converted to eV and Angstrom.

    Writes the final configuration as an extended-XYZ file.

    Stored output logs can be compressed with gzip or z-standard, and are
	decompressed transparently when read back.

The subpackage pwplot plots the convergence series of an Output.
*/
package pw
