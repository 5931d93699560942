// Copyright (C) 2024-2026, AnaxMapper
//
// This file is part of TopoForge program.
//
// TopoForge is free software: you can redistribute it
// and/or modify it under the terms of GNU General Public License
// as published by the Free Software Foundation, either version 2 of
// the License, or (at your option) any later version.
//
// TopoForge is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with TopoForge.  If not, see <https://www.gnu.org/licenses/>.

// Command line parsing. Compact single-letter switches, with values glued on
// via '=' rather than passed as separate arguments, except for -o
package main

import (
	"os"
	"strconv"
)

func (c *ProgramConfig) FromCommandLine() bool {
	files := make([]string, 0)
	args := os.Args[1:]
	outputModifier := false
	for _, arg := range args {
		if len(arg) < 1 {
			break
		}

		if arg[0] != '-' && !outputModifier {
			files = append(files, arg)
			if len(files) > 1 {
				// No logic for concatenating multiple layers into one exists
				Log.Error("This program doesn't support specifying more than one input file - aborting.\n")
				return false
			}
			c.InputFileName = files[0]
			continue
		}

		if outputModifier {
			c.OutputFileName = arg
			outputModifier = false
			continue
		}

		if len(arg) < 2 {
			continue
		}
		switch arg[1] {
		case 'a':
			{
				val, ok := readStringValue("a", arg[2:])
				if !ok {
					return false
				}
				switch val {
				case "poly", "polygonize":
					c.Tool = TOOL_POLYGONIZE
				case "dissolve":
					c.Tool = TOOL_DISSOLVE
				case "clip":
					c.Tool = TOOL_CLIP
				case "merge", "mergelines":
					c.Tool = TOOL_MERGELINES
				default:
					Log.Error("Unknown tool '%s' for -a= (expected poly, dissolve, clip or merge).\n", val)
					return false
				}
			}
		case 'f':
			{
				val, ok := readStringValue("f", arg[2:])
				if !ok {
					return false
				}
				c.DissolveField = val
			}
		case 'c':
			{
				val, ok := readStringValue("c", arg[2:])
				if !ok {
					return false
				}
				c.ClipFileName = val
			}
		case 's':
			{
				val, ok := readStringValue("s", arg[2:])
				if !ok {
					return false
				}
				snap, err := strconv.ParseFloat(val, 64)
				if err != nil || snap < 0 {
					Log.Error("Couldn't parse '-s=%s' as a non-negative snap distance.\n", val)
					return false
				}
				if snap > 0 {
					c.Snap = snap
				}
			}
		case 'r':
			{
				val, ok := readStringValue("r", arg[2:])
				if !ok {
					return false
				}
				dec, err := strconv.Atoi(val)
				if err != nil || dec < 0 || dec > 15 {
					Log.Error("Couldn't parse '-r=%s' as a decimal count in [0;15].\n", val)
					return false
				}
				c.RoundDecimals = dec
			}
		case 't':
			{
				val, ok := readStringValue("t", arg[2:])
				if !ok {
					return false
				}
				cnt, err := strconv.Atoi(val)
				if err != nil || cnt < 0 {
					Log.Error("Couldn't parse '-t=%s' as a thread count.\n", val)
					return false
				}
				c.Threads = int16(cnt)
			}
		case 'k':
			{
				enabled, rest := isEnabled([]byte(arg)[2:])
				c.KeepFreeHoles = enabled
				if len(rest) > 0 {
					Log.Error("Syntax error: -k parameter is followed by garbage; expected -k, -k+ or -k-, no other variants allowed.\n")
					return false
				}
			}
		case 'v':
			{
				// -v adds one verbosity level per 'v', so -vv is level 2
				c.VerbosityLevel++
				for _, ch := range arg[2:] {
					if ch != 'v' {
						Log.Error("Syntax error: only 'v' characters may follow -v.\n")
						return false
					}
					c.VerbosityLevel++
				}
			}
		case 'p':
			{
				val, ok := readStringValue("p", arg[2:])
				if !ok {
					return false
				}
				c.Profile = true
				c.ProfilePath = val
			}
		case 'o':
			{
				if len(arg) > 2 {
					Log.Error("Syntax error: -o takes the output file as the next argument.\n")
					return false
				}
				outputModifier = true
			}
		default:
			{
				Log.Error("Unknown option '%s'.\n", arg)
				return false
			}
		}
	}
	if outputModifier {
		Log.Error("Option -o was not followed by the output file name.\n")
		return false
	}
	return true
}

// a=<value> - everything after '=' verbatim
func readStringValue(prefix string, arg string) (string, bool) {
	if len(arg) < 2 || arg[0] != '=' {
		Log.Error("Syntax error: expected -%s=<value>.\n", prefix)
		return "", false
	}
	return arg[1:], true
}

func isEnabled(arg []byte) (bool, []byte) {
	if len(arg) == 0 {
		return true, arg
	}
	if arg[0] == '+' {
		return true, arg[1:]
	} else if arg[0] == '-' {
		return false, arg[1:]
	} else {
		return true, arg
	}
}
