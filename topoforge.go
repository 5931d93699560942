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

// -- This file is where the program entry is.
// TopoForge rebuilds polygon topology from vector line work: it snaps
// endpoints into a shared node graph, prunes arcs that can't bound an area,
// traces faces by always taking the rightmost turn, and pairs the resulting
// exterior rings with their holes. The polygonize, dissolve and clip tools
// are all that same engine fed different line selections; mergelines only
// uses the endpoint matching part.
package main

import (
	"os"
	"path/filepath"
	"runtime/pprof"
	"time"
)

func main() {
	timeStart := time.Now()

	// before config can be legitimately accessed, must call Configure()
	Configure()

	if config.Profile {
		f, err := os.Create(config.ProfilePath)
		if err != nil {
			Log.Printf("Could not create CPU profile: %s", err.Error())
		} else {
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				Log.Printf("Could not start CPU profile: %s", err.Error())
			} else {
				defer pprof.StopCPUProfile()
			}
		}
	}

	if config.InputFileName == "" {
		Log.Error("You must specify an input file.\n")
		os.Exit(1)
	}
	if config.OutputFileName == "" {
		Log.Error("You must specify an output file (-o <file>).\n")
		os.Exit(1)
	}
	config.InputFileName, _ = filepath.Abs(config.InputFileName)
	config.OutputFileName, _ = filepath.Abs(config.OutputFileName)
	// Overwriting the input mid-run would corrupt it long before the tool
	// fails, so refuse the arrangement outright. Same path is the obvious
	// case, but hardlinks and symlinks map distinct names to one file too
	f1, err1 := os.Stat(config.InputFileName)
	f2, err2 := os.Stat(config.OutputFileName)
	if err1 == nil && err2 == nil && os.SameFile(f1, f2) {
		Log.Error("You cannot specify output file that maps to the same input file (whether via same path and name, or hardlinks, or symlinks)\n")
		os.Exit(1)
	}
	if config.Tool == TOOL_CLIP && config.ClipFileName == "" {
		Log.Error("The clip tool requires a clip layer (-c=<file>).\n")
		os.Exit(1)
	}

	input, err := ReadVectorLayer(config.InputFileName)
	if err != nil {
		Log.Error("An error has occured while trying to read %s: %s\n",
			config.InputFileName, err)
		os.Exit(1)
	}
	Log.Printf("Read %d features from %s\n", len(input.Features), config.InputFileName)

	var output *VecLayer
	switch config.Tool {
	case TOOL_POLYGONIZE:
		output, err = RunPolygonize(input)
	case TOOL_DISSOLVE:
		output, err = RunDissolve(input)
	case TOOL_CLIP:
		var clipLayer *VecLayer
		clipLayer, err = ReadVectorLayer(config.ClipFileName)
		if err == nil {
			Log.Printf("Read %d features from %s\n", len(clipLayer.Features),
				config.ClipFileName)
			output, err = RunClip(input, clipLayer)
		}
	case TOOL_MERGELINES:
		output, err = RunMergeLines(input)
	default:
		Log.Panic("Unknown tool id %d\n", config.Tool)
	}
	if err != nil {
		Log.Error("Tool failed: %s\n", err)
		Log.Flush()
		os.Exit(1)
	}

	err = WriteVectorLayer(config.OutputFileName, output)
	if err != nil {
		Log.Error("An error has occured while trying to write %s: %s\n",
			config.OutputFileName, err)
		os.Exit(1)
	}
	Log.Printf("Wrote %d features to %s\n", len(output.Features), config.OutputFileName)
	Log.Printf("Total time: %s\n", time.Since(timeStart))
	Log.Flush()
	Log.Sync()
}
