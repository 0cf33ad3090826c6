/*
 * conversion.go, part of goqe.
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

//This provides the conversion factors between the atomic units used
//internally by pw.x and the units exposed by this library.

//Conversions
const (
	Ry2Ev  = 13.605 //Rydberg 2 eV
	Ev2Ry  = 1 / 13.605
	Bohr2A = 0.529177 //Bohr 2 Angstrom
	A2Bohr = 1 / 0.529177
)
