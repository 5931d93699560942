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

// Hole resolution: counter-clockwise rings become holes of the exterior ring
// that contains them, found by bounding-box containment plus a point-in-
// polygon test on an interior point of the hole
package main

import (
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// resolvedExterior pairs a candidate exterior ring with the polygon being
// assembled around it
type resolvedExterior struct {
	ring tracedRing
	poly *PolygonFeature
}

// ResolveHoles attaches every hole ring to a containing exterior. attach
// selects between first-match and smallest-containing-area; freePolicy says
// what happens to hole rings nothing contains: the true exterior hull of a
// network is discarded, but a caller may choose to retain such rings as their
// own negative-space polygons.
func ResolveHoles(exteriors []resolvedExterior, holes []tracedRing,
	attach int, freePolicy int, mlog *MiniLogger) []*PolygonFeature {
	out := make([]*PolygonFeature, 0, len(exteriors))
	for _, e := range exteriors {
		out = append(out, e.poly)
	}
	for _, h := range holes {
		hb := h.pts.Bound()
		ip := ringInteriorPoint(h.pts)
		bestIdx := -1
		bestArea := 0.0
		for i, e := range exteriors {
			// a ring never becomes a hole of the face cut from the very same
			// segments (that is its own mirror image, e.g. the hull of a
			// lone square)
			if sameSegSets(h.segsUsed, e.ring.segsUsed) {
				continue
			}
			ext := e.poly.Exterior()
			if !boundContainsBound(ext.Bound(), hb) {
				continue
			}
			// tested against the outer boundary only; holes the exterior
			// already has don't disqualify it
			if !pointInRing(ip, ext) {
				continue
			}
			if attach == ATTACH_FIRST_MATCH {
				bestIdx = i
				break
			}
			a := math.Abs(planar.Area(ext))
			if bestIdx == -1 || a < bestArea {
				bestIdx = i
				bestArea = a
			}
		}
		if bestIdx >= 0 {
			exteriors[bestIdx].poly.AddHole(h.pts)
			continue
		}
		if h.island && freePolicy == HOLE_FREE_KEEP {
			// an island loop drawn counter-clockwise, with nothing around it:
			// keep it, rewound to the exterior convention
			out = append(out, &PolygonFeature{
				Rings:  []orb.Ring{reverseRing(h.pts)},
				Attrs:  h.attrs,
				Source: h.source,
			})
			continue
		}
		mlog.Verbose(2, "Hole resolution: no containing exterior ring, dropping a ring of %d vertices\n",
			len(h.pts))
	}
	return out
}

func sameSegSets(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
