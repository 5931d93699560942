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
	"testing"

	"github.com/paulmach/orb"
)

func TestHeadingBetweenRanksClockwise(t *testing.T) {
	// arriving at the origin travelling east; back vector points west
	at := pt(0, 0)
	back := pt(-1, 0)
	north := headingBetween(at, back, at, pt(0, 1))
	east := headingBetween(at, back, at, pt(1, 0))
	south := headingBetween(at, back, at, pt(0, -1))
	eps := 1e-12
	if math.Abs(north-math.Pi/2) > eps {
		t.Errorf("Left turn: expected pi/2, got %v", north)
	}
	if math.Abs(east-math.Pi) > eps {
		t.Errorf("Straight ahead: expected pi, got %v", east)
	}
	if math.Abs(south-3*math.Pi/2) > eps {
		t.Errorf("Right turn: expected 3*pi/2, got %v", south)
	}
	// rightmost-turn traversal depends on exactly this ordering
	if !(south > east && east > north) {
		t.Errorf("Expected south > east > north, got %v %v %v", south, east, north)
	}
}

func TestHeadingBetweenDegenerate(t *testing.T) {
	at := pt(0, 0)
	if !math.IsNaN(headingBetween(at, at, at, pt(1, 0))) {
		t.Errorf("Zero-length back vector must yield NaN")
	}
	if !math.IsNaN(headingBetween(at, pt(1, 0), at, at)) {
		t.Errorf("Zero-length forward vector must yield NaN")
	}
}

func TestSegIntersection(t *testing.T) {
	p, ok := segIntersection(pt(0, 0), pt(2, 2), pt(0, 2), pt(2, 0))
	if !ok || p != pt(1, 1) {
		t.Errorf("Expected crossing at (1,1), got %v ok=%v", p, ok)
	}
	// endpoint touch counts
	p, ok = segIntersection(pt(0, 0), pt(1, 1), pt(1, 1), pt(2, 0))
	if !ok || p != pt(1, 1) {
		t.Errorf("Expected endpoint touch at (1,1), got %v ok=%v", p, ok)
	}
	if _, ok = segIntersection(pt(0, 0), pt(2, 2), pt(3, 3), pt(5, 5)); ok {
		t.Errorf("Collinear segments must not intersect here")
	}
	if _, ok = segIntersection(pt(0, 0), pt(1, 0), pt(0, 1), pt(1, 1)); ok {
		t.Errorf("Parallel segments must not intersect")
	}
	if _, ok = segIntersection(pt(0, 0), pt(1, 0), pt(2, 1), pt(2, -1)); ok {
		t.Errorf("Segments whose lines cross beyond their ends must not intersect")
	}
}

func TestPointInRing(t *testing.T) {
	ring := squareRing(0, 0, 2)
	if !pointInRing(pt(1, 1), ring) {
		t.Errorf("Center must be inside")
	}
	if pointInRing(pt(3, 1), ring) {
		t.Errorf("Point beyond the right edge must be outside")
	}
	if pointInRing(pt(-0.5, -0.5), ring) {
		t.Errorf("Point below the corner must be outside")
	}
}

func TestPointInPolygonTolHoles(t *testing.T) {
	poly := orb.Polygon{
		squareRing(0, 0, 4),
		reverseRing(squareRing(1, 1, 2)),
	}
	tol := 1e-9
	if !pointInPolygonTol(pt(0.5, 0.5), poly, tol) {
		t.Errorf("Point between outer boundary and hole must be inside")
	}
	if pointInPolygonTol(pt(2, 2), poly, tol) {
		t.Errorf("Point inside the hole must be outside the polygon")
	}
	if !pointInPolygonTol(pt(0, 2), poly, tol) {
		t.Errorf("Point on the outer boundary must count as inside")
	}
	if !pointInPolygonTol(pt(1, 2), poly, tol) {
		t.Errorf("Point on the hole boundary must count as inside")
	}
}

func TestRemoveCollinear(t *testing.T) {
	ring := orb.Ring{
		pt(0, 0), pt(0, 1), pt(0, 2), pt(1, 2), pt(2, 2), pt(2, 0), pt(1, 0), pt(0, 0),
	}
	got := removeCollinear(ring)
	want := orb.Ring{pt(0, 0), pt(0, 2), pt(2, 2), pt(2, 0), pt(0, 0)}
	if len(got) != len(want) {
		t.Fatalf("Expected %d vertices, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Vertex %d: expected %v, got %v", i, want[i], got[i])
		}
	}
	if ringArea(got) != ringArea(ring) {
		t.Errorf("Simplification must not change the area")
	}
}

func TestCloseRing(t *testing.T) {
	open := orb.Ring{pt(0, 0), pt(0, 1), pt(1, 1), pt(1, 0)}
	closed := closeRing(open, 1e-9)
	if closed[0] != closed[len(closed)-1] {
		t.Errorf("Ring must end where it starts, got %v", closed)
	}
	// a nearly-closing last vertex is merged, not duplicated
	dirty := orb.Ring{pt(0, 0), pt(0, 1), pt(1, 1), pt(1, 0), pt(1e-12, -1e-12)}
	closed = closeRing(dirty, 1e-9)
	if closed[0] != closed[len(closed)-1] {
		t.Errorf("Nearly closed ring must close exactly, got %v", closed)
	}
	if len(closed) != 5 {
		t.Errorf("Expected 5 vertices after merging the closing one, got %d", len(closed))
	}
}

func TestRingInteriorPoint(t *testing.T) {
	ring := squareRing(0, 0, 2)
	ip := ringInteriorPoint(ring)
	if !pointInRing(ip, ring) {
		t.Errorf("Interior point %v not inside its own ring", ip)
	}
	// chevron whose first vertex triple has its centroid above the notch,
	// outside the ring; a later triple must be used instead
	chevron := orb.Ring{
		pt(0, 3), pt(2, 1), pt(4, 3), pt(4, 0), pt(0, 0), pt(0, 3),
	}
	ip = ringInteriorPoint(chevron)
	if !pointInRing(ip, chevron) {
		t.Errorf("Interior point %v not inside the chevron", ip)
	}
}

func TestPolygonInteriorPoint(t *testing.T) {
	square := orb.Polygon{squareRing(0, 0, 4)}
	if ip := polygonInteriorPoint(square); ip != pt(2, 2) {
		t.Errorf("Expected (2,2) for the plain square, got %v", ip)
	}
	// for a centered hole every vertex-triple centroid of the outer ring
	// lands inside the hole; the scanline sample must land in the annulus
	donut := orb.Polygon{squareRing(0, 0, 4), reverseRing(squareRing(1, 1, 2))}
	ip := polygonInteriorPoint(donut)
	if ip != pt(0.5, 2) {
		t.Errorf("Expected (0.5,2) for the donut, got %v", ip)
	}
	if !pointInPolygonTol(ip, donut, 0) {
		t.Errorf("Sample %v is not inside the donut's covered region", ip)
	}
}

func TestRoundTo(t *testing.T) {
	scale := pow10(3)
	if roundTo(1.23456, scale) != 1.235 {
		t.Errorf("Expected 1.235, got %v", roundTo(1.23456, scale))
	}
	if roundTo(-1.23456, scale) != -1.235 {
		t.Errorf("Expected -1.235, got %v", roundTo(-1.23456, scale))
	}
}
