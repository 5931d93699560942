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

package main

import (
	"math"
	"os"
)

const VERSION = "0.33"

/*
-a= Algorithm (tool) to run on the input layer
	poly	Rebuild polygons from the line network (default)
	dissolve	Merge polygons that share a value of the -f= field
	clip	Clip input against the layer given with -c=
	merge	Join polylines end-to-end through degree-2 connections

-f= Attribute field to dissolve on (dissolve only). When omitted, all
	features are dissolved into one group.

-c= Clip layer file (clip only). Same formats as the input layer.

-s= Snap tolerance: maximum distance at which two coordinates are treated
	as the same point. Defaults to the smallest representable positive
	double, i.e. only coordinates made exactly equal by rounding coalesce.

-r= Number of decimal places vertex coordinates are rounded to after
	splitting (default 11). 0 disables rounding.

-t= Number of worker threads for independent reconstruction passes
	(defaults to number of cores available, capped)

-k Keep counter-clockwise rings that no exterior ring contains as their own
	standalone polygons instead of discarding them (default: discarded)

-v Add verbosity to text output. Use multiple times for increased verbosity.

-p= Write CPU profile to the given path

-o Output file (required). Format inferred from the extension:
	.shp, .geojson or .json
*/

const ( // reconstruction tools, ProgramConfig.Tool
	TOOL_POLYGONIZE = iota
	TOOL_DISSOLVE
	TOOL_CLIP
	TOOL_MERGELINES
)

const ( // duplicate polyline policy in segment preparation
	DUP_KEEP_FIRST = iota // keep first occurrence, drop the duplicate
	DUP_DROP_BOTH         // shared boundaries vanish entirely (dissolve)
)

const ( // what happens to a hole ring no exterior ring contains
	HOLE_FREE_DISCARD = iota
	HOLE_FREE_KEEP // retained as its own negative-space polygon
)

const ( // which containing exterior ring a hole ring is attached to
	ATTACH_FIRST_MATCH = iota
	ATTACH_SMALLEST // the smallest-area containing exterior (dissolve)
)

const ( // where a reconstructed polygon's attribute record comes from
	ATTR_MAJORITY  = iota // feature that contributed the majority of the boundary
	ATTR_MIN_INDEX        // feature with the minimum source index (clip)
	ATTR_GROUP            // the pass-wide group record (dissolve)
)

type ProgramConfig struct {
	InputFileName  string
	OutputFileName string
	ClipFileName   string
	Tool           int
	DissolveField  string
	Snap           float64
	RoundDecimals  int
	Threads        int16 // number of workers for passes. 0 means "auto"
	VerbosityLevel int
	KeepFreeHoles  bool
	Profile        bool
	ProfilePath    string
}

var config *ProgramConfig // global variable that will be accessed from other threads too

// Configure must be called before config is legitimately accessed. It prints
// the banner, initializes defaults and parses the command line.
func Configure() {
	Log.Printf("TopoForge ver %s\n", VERSION)
	Log.Printf("Copyright (c) 2024 AnaxMapper\n")
	Log.Printf("Planar topology reconstruction for vector layers, distributed under the\n")
	Log.Printf("terms of GNU General Public License v2.\n")
	Log.Printf("\n")
	// Initialize with defaults
	config = &(ProgramConfig{
		Tool: TOOL_POLYGONIZE,
		// Snap is deliberately the smallest denormal there is: after rounding,
		// vertices that are meant to coincide compare exactly equal, so a
		// bigger default would only ever merge junctions the user didn't ask
		// to merge
		Snap:           math.SmallestNonzeroFloat64,
		RoundDecimals:  11,
		Threads:        0,
		VerbosityLevel: 0,
		KeepFreeHoles:  false,
		Profile:        false,
		ProfilePath:    "",
	})
	// Proceed to parse command line
	if !(config.FromCommandLine()) {
		Log.Printf("\n")
		os.Exit(1)
	}

	// If input file name was not passed, print help
	if config.InputFileName == "" {
		PrintHelp()
		os.Exit(0)
	}
}

func PrintHelp() {
	Log.Printf("Usage: topoforge {-options} input.{shp|geojson} -o output.{shp|geojson}\n")
	Log.Printf("\n")
	Log.Printf("-x+ turn on option -x- turn off option\n")
	Log.Printf("\n")
	Log.Printf("-a= Algorithm (tool) to run on the input layer\n")
	Log.Printf("	poly	Rebuild polygons from the line network (default)\n")
	Log.Printf("	dissolve	Merge polygons that share a value of the -f= field\n")
	Log.Printf("	clip	Clip input against the layer given with -c=\n")
	Log.Printf("	merge	Join polylines end-to-end through degree-2 connections\n")
	Log.Printf("\n")
	Log.Printf("-f= Attribute field to dissolve on (dissolve only)\n")
	Log.Printf("-c= Clip layer file (clip only)\n")
	Log.Printf("-s= Snap tolerance (default: smallest representable positive double)\n")
	Log.Printf("-r= Decimal places for coordinate rounding (default 11, 0 = off)\n")
	Log.Printf("-t= Number of worker threads (default: number of cores, capped)\n")
	Log.Printf("-k Keep unattached hole rings as standalone polygons\n")
	Log.Printf("-v Add verbosity to text output. Use multiple times for more.\n")
	Log.Printf("-p= Write CPU profile to the given path\n")
	Log.Printf("-o Output file (required)\n")
}
