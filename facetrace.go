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

// Face extraction by rightmost-turn traversal: always take the most clockwise
// available turn, and the walk traces the boundary of the face immediately
// adjacent to the arrival edge. Every segment bounds at most two faces, one
// per direction it is walked in. Termination: every walk either emits a ring
// (which consumes face budget) or fails fast, walks are started at most twice
// per segment, and the graph is finite
package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// tracedRing is one closed ring assembled from one or more segments, with the
// sorted set of contributing segment indices kept as the de-duplication key
type tracedRing struct {
	pts      orb.Ring
	segsUsed []int
	cw       bool
	island   bool // a single self-closed segment, not reached by traversal
	// filled in after extraction, before hole resolution
	attrs  AttrRecord
	source int
}

// ExtractFaces emits every distinct simple closed ring implied by the pruned
// graph: clockwise rings as exterior boundary candidates, counter-clockwise
// rings as hole/hull candidates.
func (g *TopoGraph) ExtractFaces() (exteriors []tracedRing, holes []tracedRing) {
	seen := make(map[string]bool)

	// Loops closed onto themselves are their own faces and are never walked.
	// Degenerate ones (down to two vertices) are still emitted; they are
	// somebody's data, not ours to censor.
	for s := range g.segs {
		if !g.selfClosed[s] {
			continue
		}
		ring := closeRing(append(orb.Ring{}, g.segs[s].Points...), g.snap)
		g.faced[s] = 2
		tr := tracedRing{
			pts:      ring,
			segsUsed: []int{s},
			cw:       ring.Orientation() == orb.CW,
			island:   true,
		}
		key := faceDedupKey(tr.segsUsed, tr.cw)
		if seen[key] {
			continue
		}
		seen[key] = true
		if tr.cw {
			exteriors = append(exteriors, tr)
		} else {
			holes = append(holes, tr)
		}
	}

	for s := range g.segs {
		if g.acyclic[s] {
			continue
		}
		if g.faced[s] < 2 {
			g.traceFrom(s, endNode(s), seen, &exteriors, &holes)
		}
		if g.faced[s] < 2 {
			// mirror direction recovers the face on the opposite side
			g.traceFrom(s, startNode(s), seen, &exteriors, &holes)
		}
	}
	return exteriors, holes
}

func (g *TopoGraph) traceFrom(s int, from int, seen map[string]bool,
	exteriors, holes *[]tracedRing) {
	path, ok := g.walkFace(s, from)
	if !ok {
		// not fatal: the walk is abandoned and no ring is emitted
		g.mlog.Verbose(1, "Face walk from segment %d abandoned: no continuation towards the far endnode\n", s)
		return
	}
	ring := g.assembleRing(s, from, path)

	segsUsed := make([]int, 0, len(path)+1)
	segsUsed = append(segsUsed, s)
	for _, m := range path {
		segsUsed = append(segsUsed, owningSegment(m))
	}
	sort.Ints(segsUsed)
	segsUsed = uniqueInts(segsUsed)

	cw := ring.Orientation() == orb.CW
	key := faceDedupKey(segsUsed, cw)
	if seen[key] {
		return
	}
	seen[key] = true

	// a closed ring needs more than 3 vertices (counting the closing one) to
	// enclose anything
	if len(ring) <= 3 {
		return
	}
	for _, t := range segsUsed {
		g.faced[t]++
	}
	tr := tracedRing{pts: ring, segsUsed: segsUsed, cw: cw}
	if cw {
		*exteriors = append(*exteriors, tr)
	} else {
		*holes = append(*holes, tr)
	}
}

// walkFace starts at one of segment s's endnodes and keeps taking the
// neighbor with the maximum recorded heading until it finds s's other endnode
// among the current node's neighbors. The returned path holds the chosen
// neighbor endnodes in walk order, excluding the closing target.
//
// Note the scan over neighbors breaks out the moment it sees the exact target
// node, even if a later neighbor carries a larger heading. That can pick a
// non-maximal turn in some branches; it is longstanding behavior that
// single-hop loops (e.g. a two-segment polygon) rely on, so it stays. Pinned
// by TestWalkFaceTargetShortCircuit.
func (g *TopoGraph) walkFace(s int, from int) ([]int, bool) {
	target := otherEnd(from)
	g.gen++
	g.stamp[from] = g.gen
	cur := from
	path := make([]int, 0, 8)
	// the walk can visit each endnode at most once, so adj length bounds it
	for steps := 0; steps <= len(g.adj); steps++ {
		entries := g.adj[cur]
		if len(entries) == 0 {
			return nil, false
		}
		choice := -1
		if len(entries) == 1 {
			if entries[0].node == target {
				return path, true
			}
			if g.stamp[otherEnd(entries[0].node)] == g.gen {
				return nil, false
			}
			choice = 0
		} else {
			best := -1
			bestHeading := 0.0
			targetHit := false
			for i, e := range entries {
				if e.node == target {
					targetHit = true
					break
				}
				if g.stamp[otherEnd(e.node)] == g.gen {
					continue
				}
				// strict comparison: on exact heading ties the first one seen
				// in scan order wins
				if best == -1 || e.heading > bestHeading {
					best = i
					bestHeading = e.heading
				}
			}
			if targetHit {
				return path, true
			}
			if best == -1 {
				return nil, false
			}
			choice = best
		}
		m := entries[choice].node
		w := otherEnd(m)
		g.stamp[w] = g.gen
		path = append(path, m)
		cur = w
	}
	return nil, false
}

// assembleRing concatenates the vertex runs of the walked segments in the
// direction each was actually traversed, dropping the duplicate shared vertex
// between consecutive segments, and closes the ring.
func (g *TopoGraph) assembleRing(s int, from int, path []int) orb.Ring {
	ring := make(orb.Ring, 0, 16)
	ring = appendSegPoints(ring, g.segs[s], from == endNode(s), false)
	for _, m := range path {
		t := owningSegment(m)
		ring = appendSegPoints(ring, g.segs[t], isStartNode(m), true)
	}
	return closeRing(ring, g.snap)
}

func appendSegPoints(dst orb.Ring, seg *Polyline, forward bool, skipFirst bool) orb.Ring {
	n := len(seg.Points)
	for i := 0; i < n; i++ {
		if skipFirst && i == 0 {
			continue
		}
		if forward {
			dst = append(dst, seg.Points[i])
		} else {
			dst = append(dst, seg.Points[n-1-i])
		}
	}
	return dst
}

func uniqueInts(sorted []int) []int {
	out := sorted[:0]
	for i, v := range sorted {
		if i > 0 && v == sorted[i-1] {
			continue
		}
		out = append(out, v)
	}
	return out
}

func faceDedupKey(segsUsed []int, cw bool) string {
	var sb strings.Builder
	if cw {
		sb.WriteString("x:")
	} else {
		sb.WriteString("h:")
	}
	for i, s := range segsUsed {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(s))
	}
	return sb.String()
}
