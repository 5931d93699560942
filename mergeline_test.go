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
	"testing"

	"github.com/paulmach/orb"
)

func lineLayer(lines ...orb.LineString) *VecLayer {
	layer := &VecLayer{Name: "lines"}
	for _, ls := range lines {
		layer.Features = append(layer.Features, &VecFeature{Geom: ls})
	}
	return layer
}

func TestMergeLinesChain(t *testing.T) {
	defer resetTestConfig()
	out, err := RunMergeLines(lineLayer(
		orb.LineString{pt(0, 0), pt(1, 0)},
		orb.LineString{pt(1, 0), pt(2, 0)},
		orb.LineString{pt(2, 0), pt(3, 1)},
	))
	if err != nil {
		t.Fatalf("RunMergeLines: %v", err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("Expected 1 merged line, got %d", len(out.Features))
	}
	ls := out.Features[0].Geom.(orb.LineString)
	if len(ls) != 4 {
		t.Fatalf("Expected 4 vertices, got %v", ls)
	}
	if ls[0] != pt(0, 0) || ls[3] != pt(3, 1) {
		t.Errorf("Chain endpoints wrong: %v", ls)
	}
}

func TestMergeLinesReversedPiece(t *testing.T) {
	defer resetTestConfig()
	// the second piece runs the other way; merging must flip it
	out, err := RunMergeLines(lineLayer(
		orb.LineString{pt(0, 0), pt(1, 0)},
		orb.LineString{pt(2, 0), pt(1, 0)},
	))
	if err != nil {
		t.Fatalf("RunMergeLines: %v", err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("Expected 1 merged line, got %d", len(out.Features))
	}
	ls := out.Features[0].Geom.(orb.LineString)
	if len(ls) != 3 {
		t.Fatalf("Expected 3 vertices, got %v", ls)
	}
}

func TestMergeLinesJunctionStops(t *testing.T) {
	defer resetTestConfig()
	// three lines meet at (1,0): a junction, nothing may merge across it
	out, err := RunMergeLines(lineLayer(
		orb.LineString{pt(0, 0), pt(1, 0)},
		orb.LineString{pt(1, 0), pt(2, 0)},
		orb.LineString{pt(1, 0), pt(1, 1)},
	))
	if err != nil {
		t.Fatalf("RunMergeLines: %v", err)
	}
	if len(out.Features) != 3 {
		t.Errorf("Expected all 3 lines untouched, got %d", len(out.Features))
	}
}

func TestMergeLinesLoop(t *testing.T) {
	defer resetTestConfig()
	out, err := RunMergeLines(lineLayer(
		orb.LineString{pt(0, 0), pt(1, 0)},
		orb.LineString{pt(1, 0), pt(0.5, 1)},
		orb.LineString{pt(0.5, 1), pt(0, 0)},
	))
	if err != nil {
		t.Fatalf("RunMergeLines: %v", err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("Expected 1 closed line, got %d", len(out.Features))
	}
	ls := out.Features[0].Geom.(orb.LineString)
	if len(ls) != 4 {
		t.Fatalf("Expected 4 vertices, got %v", ls)
	}
	if ls[0] != ls[3] {
		t.Errorf("Loop must come back closed, got %v", ls)
	}
}

func TestMergeLinesNearCoincidentEndpoints(t *testing.T) {
	defer resetTestConfig()
	config.RoundDecimals = 6
	// endpoints differ below the rounding grid and must fuse
	out, err := RunMergeLines(lineLayer(
		orb.LineString{pt(0, 0), pt(1, 0)},
		orb.LineString{pt(1.0000000001, 0), pt(2, 0)},
	))
	if err != nil {
		t.Fatalf("RunMergeLines: %v", err)
	}
	if len(out.Features) != 1 {
		t.Errorf("Expected endpoints to fuse on the grid, got %d lines",
			len(out.Features))
	}
}
