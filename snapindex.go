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

// Tolerance-based endpoint matching, the only spatial index contract the
// engine consumes: insert(point, payload) and "all payloads within radius".
// The balancing underneath is orb's quadtree, not ours
package main

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/quadtree"
)

// endnodePointer carries an endnode id through the quadtree. seq is the
// insertion order, so that equidistant matches come back in a deterministic,
// first-inserted-first order regardless of tree layout.
type endnodePointer struct {
	pt   orb.Point
	node int
	seq  int
}

func (e *endnodePointer) Point() orb.Point {
	return e.pt
}

type snapMatch struct {
	dist float64
	node int
	seq  int
}

type snapIndex struct {
	qt  *quadtree.Quadtree
	seq int
}

// newSnapIndex creates an index able to hold points within bound. The bound
// must cover every point that will ever be inserted; pad is extra slack for
// snap-distance queries at the edges.
func newSnapIndex(bound orb.Bound, pad float64) *snapIndex {
	padded := orb.Bound{
		Min: orb.Point{bound.Min[0] - pad, bound.Min[1] - pad},
		Max: orb.Point{bound.Max[0] + pad, bound.Max[1] + pad},
	}
	return &snapIndex{qt: quadtree.New(padded)}
}

func (si *snapIndex) insert(pt orb.Point, node int) {
	si.seq++
	if err := si.qt.Add(&endnodePointer{pt: pt, node: node, seq: si.seq}); err != nil {
		// Only possible if the bound passed to newSnapIndex was wrong, which
		// is a programmer error, not bad input
		Log.Panic("Spatial index rejected point (%v): %s\n", pt, err.Error())
	}
}

// withinRadius returns every inserted payload within radius of pt, closest
// first, insertion order on exact distance ties
func (si *snapIndex) withinRadius(pt orb.Point, radius float64) []snapMatch {
	b := orb.Bound{
		Min: orb.Point{pt[0] - radius, pt[1] - radius},
		Max: orb.Point{pt[0] + radius, pt[1] + radius},
	}
	ptrs := si.qt.InBound(nil, b)
	matches := make([]snapMatch, 0, len(ptrs))
	for _, p := range ptrs {
		ep := p.(*endnodePointer)
		d := planar.Distance(pt, ep.pt)
		if d <= radius {
			matches = append(matches, snapMatch{dist: d, node: ep.node, seq: ep.seq})
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].dist != matches[j].dist {
			return matches[i].dist < matches[j].dist
		}
		return matches[i].seq < matches[j].seq
	})
	return matches
}
