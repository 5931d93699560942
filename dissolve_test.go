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

func zoneLayer(zones ...string) *VecLayer {
	layer := &VecLayer{Name: "zones", Fields: []string{"ZONE"}}
	for i, z := range zones {
		layer.Features = append(layer.Features, &VecFeature{
			Geom:  orb.Polygon{squareRing(float64(i), 0, 1)},
			Attrs: AttrRecord{"ZONE": z},
		})
	}
	return layer
}

func TestDissolveSharedEdge(t *testing.T) {
	defer resetTestConfig()
	config.DissolveField = "ZONE"
	out, err := RunDissolve(zoneLayer("A", "A"))
	if err != nil {
		t.Fatalf("RunDissolve: %v", err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("Expected 1 merged polygon, got %d", len(out.Features))
	}
	poly, ok := out.Features[0].Geom.(orb.Polygon)
	if !ok {
		t.Fatalf("Expected a polygon, got %T", out.Features[0].Geom)
	}
	if ringArea(poly[0]) != 2 {
		t.Errorf("Expected merged area 2, got %v", ringArea(poly[0]))
	}
	// the vertices where the shared edge met the outline are collinear on
	// the merged boundary and must be gone
	if len(poly[0]) != 5 {
		t.Errorf("Expected a clean 4-corner rectangle, got %v", poly[0])
	}
	if out.Features[0].Attrs["ZONE"] != "A" {
		t.Errorf("Merged polygon must carry the group value, got %v",
			out.Features[0].Attrs)
	}
}

func TestDissolveDistinctValues(t *testing.T) {
	defer resetTestConfig()
	config.DissolveField = "ZONE"
	out, err := RunDissolve(zoneLayer("A", "B"))
	if err != nil {
		t.Fatalf("RunDissolve: %v", err)
	}
	if len(out.Features) != 2 {
		t.Fatalf("Expected 2 polygons for 2 groups, got %d", len(out.Features))
	}
	for _, f := range out.Features {
		poly := f.Geom.(orb.Polygon)
		if ringArea(poly[0]) != 1 {
			t.Errorf("Group %v: expected area 1, got %v", f.Attrs["ZONE"],
				ringArea(poly[0]))
		}
	}
}

func TestDissolveDominoRow(t *testing.T) {
	defer resetTestConfig()
	config.DissolveField = "ZONE"
	// five squares in a row, alternating groups
	out, err := RunDissolve(zoneLayer("A", "A", "B", "A", "B"))
	if err != nil {
		t.Fatalf("RunDissolve: %v", err)
	}
	// group A: a 2x1 rectangle and a lone square; group B: two lone squares
	if len(out.Features) != 4 {
		t.Fatalf("Expected 4 polygons, got %d", len(out.Features))
	}
	total := 0.0
	for _, f := range out.Features {
		total += ringArea(f.Geom.(orb.Polygon)[0])
	}
	if total != 5 {
		t.Errorf("Expected total area 5, got %v", total)
	}
}

func TestDissolveNoField(t *testing.T) {
	defer resetTestConfig()
	config.DissolveField = ""
	out, err := RunDissolve(zoneLayer("A", "B"))
	if err != nil {
		t.Fatalf("RunDissolve: %v", err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("Without a field everything dissolves into one polygon, got %d",
			len(out.Features))
	}
	if ringArea(out.Features[0].Geom.(orb.Polygon)[0]) != 2 {
		t.Errorf("Expected area 2")
	}
}

func TestDissolveUnknownField(t *testing.T) {
	defer resetTestConfig()
	config.DissolveField = "NOSUCH"
	if _, err := RunDissolve(zoneLayer("A")); err == nil {
		t.Errorf("Expected an error for an unknown dissolve field")
	}
}

func TestDissolveDonutSurvives(t *testing.T) {
	defer resetTestConfig()
	config.DissolveField = ""
	layer := &VecLayer{
		Name: "donut",
		Features: []*VecFeature{{
			Geom: orb.Polygon{
				squareRing(0, 0, 4),
				reverseRing(squareRing(1, 1, 2)),
			},
			Attrs: AttrRecord{},
		}},
	}
	out, err := RunDissolve(layer)
	if err != nil {
		t.Fatalf("RunDissolve: %v", err)
	}
	if len(out.Features) != 1 {
		t.Fatalf("Expected the donut back, got %d features", len(out.Features))
	}
	poly := out.Features[0].Geom.(orb.Polygon)
	if len(poly) != 2 {
		t.Fatalf("Expected the hole to survive, got %d rings", len(poly))
	}
	if ringArea(poly[0]) != 16 || ringArea(poly[1]) != 4 {
		t.Errorf("Donut dimensions changed: outer %v, hole %v",
			ringArea(poly[0]), ringArea(poly[1]))
	}
}
