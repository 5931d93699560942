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

// The endnode graph: every segment owns two directed endnodes, endnodes that
// coincide within the snap distance are linked, and every link carries the
// turning angle recorded at build time. All state is pass-local; a graph is
// built fresh for each reconstruction pass and thrown away with it
package main

import (
	"math"

	"github.com/paulmach/orb"
)

// Endnode ids are packed as segment*2 + side. Always go through these helpers
// instead of unrolling the arithmetic at call sites.
func startNode(seg int) int {
	return seg << 1
}

func endNode(seg int) int {
	return seg<<1 | 1
}

func otherEnd(node int) int {
	return node ^ 1
}

func owningSegment(node int) int {
	return node >> 1
}

func isStartNode(node int) bool {
	return node&1 == 0
}

// adjEntry links an endnode to a neighbor endnode that sits at (nearly) the
// same location, with the heading recorded once at build time. Entries are
// only ever removed (by the pruner), never re-derived mid-traversal.
type adjEntry struct {
	node    int
	heading float64
}

type TopoGraph struct {
	segs []*Polyline
	snap float64
	// adjacency lists, one per endnode
	adj [][]adjEntry
	// per segment: cannot lie on any cycle. Set by the builder for isolated
	// segments and by the pruner for dangling arcs
	acyclic []bool
	// per segment: a loop closed onto itself with no neighbors; its own face
	selfClosed []bool
	// per segment: how many faces it has been assigned to so far (max two:
	// the ring to its left and the ring to its right)
	faced []uint8
	// scratch for reachability searches and face walks. Stamping with a
	// generation counter avoids clearing the array between searches
	stamp []int
	gen   int
	queue *RingU32
	mlog  *MiniLogger
}

// nodePoint is the physical location of an endnode
func (g *TopoGraph) nodePoint(node int) orb.Point {
	seg := g.segs[owningSegment(node)]
	if isStartNode(node) {
		return seg.FirstPoint()
	}
	return seg.LastPoint()
}

// nodeInnerPoint is the vertex adjacent to the endnode inside its own
// segment; nodeInnerPoint - nodePoint is the backward vector of an edge
// arriving at the node
func (g *TopoGraph) nodeInnerPoint(node int) orb.Point {
	seg := g.segs[owningSegment(node)]
	if isStartNode(node) {
		return seg.Points[1]
	}
	return seg.Points[len(seg.Points)-2]
}

// BuildTopoGraph inserts every segment's endpoints into the spatial index,
// then records, per endnode, every other segment's endnode within the snap
// distance together with its heading. The step is purely local per endnode.
func BuildTopoGraph(segs []*Polyline, snap float64, mlog *MiniLogger) *TopoGraph {
	numNodes := len(segs) * 2
	g := &TopoGraph{
		segs:       segs,
		snap:       snap,
		adj:        make([][]adjEntry, numNodes),
		acyclic:    make([]bool, len(segs)),
		selfClosed: make([]bool, len(segs)),
		faced:      make([]uint8, len(segs)),
		stamp:      make([]int, numNodes),
		mlog:       mlog,
	}
	if len(segs) == 0 {
		return g
	}
	g.queue = CreateRingU32(uint32(numNodes))

	bound := orb.Bound{Min: segs[0].FirstPoint(), Max: segs[0].FirstPoint()}
	for _, s := range segs {
		bound = bound.Extend(s.FirstPoint())
		bound = bound.Extend(s.LastPoint())
	}
	si := newSnapIndex(bound, snap+1)
	for i := range segs {
		si.insert(segs[i].FirstPoint(), startNode(i))
		si.insert(segs[i].LastPoint(), endNode(i))
	}

	for n := 0; n < numNodes; n++ {
		at := g.nodePoint(n)
		back := g.nodeInnerPoint(n)
		own := owningSegment(n)
		for _, m := range si.withinRadius(at, snap) {
			if owningSegment(m.node) == own {
				continue
			}
			h := headingBetween(at, back, g.nodePoint(m.node), g.nodeInnerPoint(m.node))
			if math.IsNaN(h) {
				g.mlog.Verbose(2, "Graph builder: skipped degenerate heading at segment %d\n", own)
				continue
			}
			g.adj[n] = append(g.adj[n], adjEntry{node: m.node, heading: h})
		}
	}

	for i := range segs {
		if len(g.adj[startNode(i)]) == 0 || len(g.adj[endNode(i)]) == 0 {
			// an endnode matched by nothing (or, when the segment closes onto
			// itself, only by its own other end) makes the segment acyclic
			g.acyclic[i] = true
			if len(g.adj[startNode(i)]) == 0 && len(g.adj[endNode(i)]) == 0 &&
				segs[i].IsRing(snap) {
				g.selfClosed[i] = true
			}
		}
	}
	return g
}

// degree returns the number of recorded neighbors of an endnode
func (g *TopoGraph) degree(node int) int {
	return len(g.adj[node])
}
