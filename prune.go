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

// Dangling-arc pruning: a segment that cannot reach its own other endnode
// without travelling over itself lies on no cycle and must never be seen by
// the face traversal. Removing one dangling arc can expose another, so the
// scan repeats until it converges
package main

// PruneDanglingArcs marks every segment that is not part of any cycle as
// acyclic and then scrubs all adjacency entries that reference acyclic
// segments, from both directions. After this the graph contains only endnodes
// of degree >= 1 on confirmed cycles.
func (g *TopoGraph) PruneDanglingArcs() {
	if len(g.segs) == 0 {
		return
	}
	pruned := 0
	for changed := true; changed; {
		changed = false
		for s := range g.segs {
			if g.acyclic[s] {
				continue
			}
			if !g.canReachOtherEnd(s) {
				g.acyclic[s] = true
				pruned++
				changed = true
			}
		}
	}
	if pruned > 0 {
		g.mlog.Verbose(1, "Pruned %d dangling arc(s)\n", pruned)
	}

	for n := range g.adj {
		if g.acyclic[owningSegment(n)] {
			g.adj[n] = nil
			continue
		}
		out := g.adj[n][:0]
		for _, e := range g.adj[n] {
			if !g.acyclic[owningSegment(e.node)] {
				out = append(out, e)
			}
		}
		g.adj[n] = out
	}
}

// canReachOtherEnd runs a breadth-first search from the segment's start
// endnode towards its end endnode, following adjacency links but never
// travelling over the segment itself
func (g *TopoGraph) canReachOtherEnd(s int) bool {
	target := endNode(s)
	g.gen++
	g.queue.Reset()
	g.stamp[startNode(s)] = g.gen
	g.queue.Enqueue(uint32(startNode(s)))
	for !g.queue.Empty() {
		v := int(g.queue.Dequeue())
		for _, e := range g.adj[v] {
			t := owningSegment(e.node)
			if t == s {
				if e.node == target {
					return true
				}
				continue
			}
			if g.acyclic[t] {
				continue
			}
			w := otherEnd(e.node)
			if g.stamp[w] == g.gen {
				continue
			}
			g.stamp[w] = g.gen
			g.queue.Enqueue(uint32(w))
		}
	}
	return false
}
