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

// Small geometric primitives consumed by the reconstruction engine. Anything
// heavier (orientation, bounds, areas) comes from orb
package main

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// nearlyEqual is the only point equality the program uses: all inputs may
// carry floating-point noise from upstream intersection arithmetic, so exact
// comparison is reserved for coordinates already rounded to the same grid
func nearlyEqual(a, b orb.Point, tol float64) bool {
	if a == b {
		return true
	}
	return planar.Distance(a, b) <= tol
}

func pow10(decimals int) float64 {
	p := 1.0
	for i := 0; i < decimals; i++ {
		p *= 10.0
	}
	return p
}

func roundTo(v float64, scale float64) float64 {
	return math.Round(v*scale) / scale
}

func roundPoint(p orb.Point, scale float64) orb.Point {
	return orb.Point{roundTo(p[0], scale), roundTo(p[1], scale)}
}

func cross(ox, oy, ax, ay, bx, by float64) float64 {
	return (ax-ox)*(by-oy) - (ay-oy)*(bx-ox)
}

// headingBetween ranks departure choices at a junction: the angle, over a full
// turn [0, 2*pi), from the backward vector of the edge arriving at a node to
// the forward vector of a candidate departing edge, increasing with clockwise
// deflection. at/back belong to the arriving edge, candAt/candNext to the
// candidate. Returns NaN when either direction is degenerate; such candidates
// must be skipped by the caller.
func headingBetween(at, back, candAt, candNext orb.Point) float64 {
	bx, by := back[0]-at[0], back[1]-at[1]
	fx, fy := candNext[0]-candAt[0], candNext[1]-candAt[1]
	if (bx == 0 && by == 0) || (fx == 0 && fy == 0) {
		return math.NaN()
	}
	a := math.Atan2(by, bx) - math.Atan2(fy, fx)
	for a < 0 {
		a += 2 * math.Pi
	}
	for a >= 2*math.Pi {
		a -= 2 * math.Pi
	}
	return a
}

// segIntersection returns the intersection point of segments a-b and c-d,
// including endpoint touches. Parallel and collinear pairs yield no point:
// coincident geometry is the duplicate remover's job, not the splitter's.
func segIntersection(a, b, c, d orb.Point) (orb.Point, bool) {
	rx, ry := b[0]-a[0], b[1]-a[1]
	sx, sy := d[0]-c[0], d[1]-c[1]
	denom := rx*sy - ry*sx
	if denom == 0 {
		return orb.Point{}, false
	}
	qpx, qpy := c[0]-a[0], c[1]-a[1]
	t := (qpx*sy - qpy*sx) / denom
	u := (qpx*ry - qpy*rx) / denom
	if t < 0 || t > 1 || u < 0 || u > 1 {
		return orb.Point{}, false
	}
	return orb.Point{a[0] + t*rx, a[1] + t*ry}, true
}

// pointInRing is an even-odd (crossing number) membership test against the
// ring's outline. Points exactly on the boundary land on either side of it
// depending on floating-point luck; use pointInRingTol when that matters.
func pointInRing(pt orb.Point, ring orb.Ring) bool {
	n := len(ring)
	if n < 3 {
		return false
	}
	inside := false
	x, y := pt[0], pt[1]
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		xi, yi := ring[i][0], ring[i][1]
		xj, yj := ring[j][0], ring[j][1]
		if (yi > y) != (yj > y) {
			if x < (xj-xi)*(y-yi)/(yj-yi)+xi {
				inside = !inside
			}
		}
	}
	return inside
}

// distToSegment is the distance from pt to the closed segment a-b
func distToSegment(pt, a, b orb.Point) float64 {
	abx, aby := b[0]-a[0], b[1]-a[1]
	apx, apy := pt[0]-a[0], pt[1]-a[1]
	denom := abx*abx + aby*aby
	if denom == 0 {
		return planar.Distance(pt, a)
	}
	t := (apx*abx + apy*aby) / denom
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	return planar.Distance(pt, orb.Point{a[0] + t*abx, a[1] + t*aby})
}

func pointOnRingBoundary(pt orb.Point, ring orb.Ring, tol float64) bool {
	for i := 0; i+1 < len(ring); i++ {
		if distToSegment(pt, ring[i], ring[i+1]) <= tol {
			return true
		}
	}
	return false
}

func pointInRingTol(pt orb.Point, ring orb.Ring, tol float64) bool {
	return pointInRing(pt, ring) || pointOnRingBoundary(pt, ring, tol)
}

// pointInPolygonTol tests membership against a polygon with holes: inside (or
// on) the outer ring, and not strictly interior to any hole
func pointInPolygonTol(pt orb.Point, poly orb.Polygon, tol float64) bool {
	if len(poly) == 0 {
		return false
	}
	if !pointInRingTol(pt, poly[0], tol) {
		return false
	}
	for i := 1; i < len(poly); i++ {
		if pointInRing(pt, poly[i]) && !pointOnRingBoundary(pt, poly[i], tol) {
			return false
		}
	}
	return true
}

func insideAnyPolygon(pt orb.Point, polys []orb.Polygon, tol float64) bool {
	for _, poly := range polys {
		if pointInPolygonTol(pt, poly, tol) {
			return true
		}
	}
	return false
}

// boundContainsBound is inclusive on all four sides
func boundContainsBound(outer, inner orb.Bound) bool {
	return outer.Min[0] <= inner.Min[0] && outer.Min[1] <= inner.Min[1] &&
		outer.Max[0] >= inner.Max[0] && outer.Max[1] >= inner.Max[1]
}

func collinear(a, b, c orb.Point) bool {
	return cross(a[0], a[1], b[0], b[1], c[0], c[1]) == 0
}

// ringInteriorPoint derives a point provably inside the ring: the centroid of
// the first non-collinear triple of consecutive vertices that passes the
// membership test, falling back to a vertex if none qualifies.
func ringInteriorPoint(ring orb.Ring) orb.Point {
	n := len(ring)
	if n > 0 && ring[0] == ring[n-1] {
		n-- // ignore the closing vertex so triples wrap cleanly
	}
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]
		c := ring[(i+2)%n]
		if collinear(a, b, c) {
			continue
		}
		cand := orb.Point{(a[0] + b[0] + c[0]) / 3, (a[1] + b[1] + c[1]) / 3}
		if pointInRing(cand, ring) {
			return cand
		}
	}
	return ring[0]
}

// polygonInteriorPoint derives a point strictly inside the polygon's covered
// region with holes respected, which ringInteriorPoint cannot guarantee (its
// sample only avoids the exterior ring, not the holes). A horizontal scanline
// is placed strictly between two vertex levels near the vertical middle, so
// every crossing it records is a proper edge crossing; the midpoint of the
// widest covered span under even-odd alternation lies inside the region.
func polygonInteriorPoint(poly orb.Polygon) orb.Point {
	if len(poly) == 0 || len(poly[0]) == 0 {
		return orb.Point{}
	}
	levels := make([]float64, 0, len(poly[0]))
	for _, ring := range poly {
		n := len(ring)
		if n > 1 && ring[0] == ring[n-1] {
			n--
		}
		for i := 0; i < n; i++ {
			levels = append(levels, ring[i][1])
		}
	}
	sort.Float64s(levels)
	lo, hi := levels[0], levels[len(levels)-1]
	if lo == hi {
		// all vertices on one horizontal line; no interior to speak of
		return poly[0][0]
	}
	midY := (lo + hi) / 2
	for i := 0; i+1 < len(levels); i++ {
		if levels[i] <= midY && levels[i] < levels[i+1] {
			lo, hi = levels[i], levels[i+1]
		}
	}
	y := (lo + hi) / 2

	var xs []float64
	for _, ring := range poly {
		for i := 0; i+1 < len(ring); i++ {
			a, b := ring[i], ring[i+1]
			if (a[1]-y)*(b[1]-y) >= 0 {
				continue
			}
			xs = append(xs, a[0]+(y-a[1])*(b[0]-a[0])/(b[1]-a[1]))
		}
	}
	sort.Float64s(xs)
	if len(xs) < 2 {
		return ringInteriorPoint(poly[0])
	}
	best, bestW := 0, -1.0
	for i := 0; i+1 < len(xs); i += 2 {
		if w := xs[i+1] - xs[i]; w > bestW {
			best, bestW = i, w
		}
	}
	return orb.Point{(xs[best] + xs[best+1]) / 2, y}
}

// removeCollinear drops vertices that lie exactly on the straight line between
// their neighbors. The closing vertex is maintained.
func removeCollinear(ring orb.Ring) orb.Ring {
	n := len(ring)
	if n < 5 || ring[0] != ring[n-1] {
		return ring
	}
	open := ring[:n-1] // without the closing vertex
	kept := make(orb.Ring, 0, len(open))
	for i := 0; i < len(open); i++ {
		prev := open[(i+len(open)-1)%len(open)]
		next := open[(i+1)%len(open)]
		if collinear(prev, open[i], next) {
			continue
		}
		kept = append(kept, open[i])
	}
	if len(kept) < 3 {
		return ring
	}
	return append(kept, kept[0])
}

func reverseRing(r orb.Ring) orb.Ring {
	out := make(orb.Ring, len(r))
	for i, p := range r {
		out[len(r)-1-i] = p
	}
	return out
}

// closeRing guarantees ring[0] == ring[len-1] exactly: a near-duplicate final
// vertex is merged onto the first vertex, anything else gets the start vertex
// appended
func closeRing(r orb.Ring, tol float64) orb.Ring {
	if len(r) == 0 {
		return r
	}
	first, last := r[0], r[len(r)-1]
	if first == last {
		return r
	}
	if nearlyEqual(first, last, tol) {
		r[len(r)-1] = first
		return r
	}
	return append(r, first)
}
