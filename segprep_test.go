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

func TestSplitPolylinesCross(t *testing.T) {
	lines := []*Polyline{
		pl(0, pt(0, 1), pt(2, 1)),
		pl(1, pt(1, 0), pt(1, 2)),
	}
	split := SplitPolylines(lines)
	if len(split) != 2 {
		t.Fatalf("Expected 2 polylines, got %d", len(split))
	}
	for i, p := range split {
		if len(p.Points) != 3 {
			t.Errorf("Line %d: expected a vertex added at the crossing, got %v",
				i, p.Points)
		} else if p.Points[1] != pt(1, 1) {
			t.Errorf("Line %d: expected cut at (1,1), got %v", i, p.Points[1])
		}
	}
	// inputs must not have been touched
	if len(lines[0].Points) != 2 || len(lines[1].Points) != 2 {
		t.Errorf("SplitPolylines must work on copies, inputs were modified")
	}
}

func TestSplitPolylinesEndpointTouch(t *testing.T) {
	// lines meeting at an endpoint only; no cut should be added
	lines := []*Polyline{
		pl(0, pt(0, 0), pt(1, 1)),
		pl(1, pt(1, 1), pt(2, 0)),
	}
	split := SplitPolylines(lines)
	for i, p := range split {
		if len(p.Points) != 2 {
			t.Errorf("Line %d: endpoint touch must not produce a cut, got %v",
				i, p.Points)
		}
	}
}

func TestSplitPolylinesMultipleCuts(t *testing.T) {
	lines := []*Polyline{
		pl(0, pt(0, 1), pt(4, 1)),
		pl(1, pt(1, 0), pt(1, 2)),
		pl(2, pt(3, 0), pt(3, 2)),
	}
	split := SplitPolylines(lines)
	// cuts on the long line must come back in parameter order
	got := split[0].Points
	want := []orb.Point{pt(0, 1), pt(1, 1), pt(3, 1), pt(4, 1)}
	if len(got) != len(want) {
		t.Fatalf("Expected %d vertices, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vertex %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestPrepareSegmentsRounding(t *testing.T) {
	lines := []*Polyline{
		pl(0, pt(0.10000000001, 0), pt(1, 0)),
	}
	segs := PrepareSegments(lines, 5, DUP_KEEP_FIRST, nil)
	if len(segs) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segs))
	}
	if segs[0].Points[0] != pt(0.1, 0) {
		t.Errorf("Expected first vertex rounded to (0.1,0), got %v", segs[0].Points[0])
	}
}

func TestPrepareSegmentsCollapseAndDrop(t *testing.T) {
	lines := []*Polyline{
		// consecutive duplicates after rounding collapse to one vertex each
		pl(0, pt(0, 0), pt(1e-13, 1e-13), pt(1, 1)),
		// degenerates to a single point and must be dropped
		pl(1, pt(5, 5), pt(5+1e-13, 5)),
	}
	segs := PrepareSegments(lines, 11, DUP_KEEP_FIRST, nil)
	if len(segs) != 1 {
		t.Fatalf("Expected 1 surviving segment, got %d", len(segs))
	}
	if len(segs[0].Points) != 2 {
		t.Errorf("Expected collapsed segment of 2 vertices, got %v", segs[0].Points)
	}
}

func TestDedupKeepFirst(t *testing.T) {
	lines := []*Polyline{
		pl(0, pt(0, 0), pt(1, 1)),
		pl(1, pt(1, 1), pt(0, 0)), // same geometry, reversed
		pl(2, pt(0, 0), pt(2, 0)),
	}
	segs := PrepareSegments(lines, 11, DUP_KEEP_FIRST, nil)
	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	if segs[0].Source != 0 {
		t.Errorf("The first occurrence must be the one kept, got source %d",
			segs[0].Source)
	}
}

func TestDedupDropBoth(t *testing.T) {
	lines := []*Polyline{
		pl(0, pt(0, 0), pt(1, 1)),
		pl(1, pt(1, 1), pt(0, 0)),
		pl(2, pt(0, 0), pt(2, 0)),
	}
	segs := PrepareSegments(lines, 11, DUP_DROP_BOTH, nil)
	if len(segs) != 1 {
		t.Fatalf("Expected only the unpaired segment to survive, got %d", len(segs))
	}
	if segs[0].Source != 2 {
		t.Errorf("Expected the unpaired segment, got source %d", segs[0].Source)
	}
}
