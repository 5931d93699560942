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
	"strconv"

	"github.com/paulmach/orb"
)

// lineEnd addresses one endpoint of one polyline, front or back
type lineEnd struct {
	line  int
	front bool
}

// MergeLines: fuse polylines that meet end to end into single longer
// polylines. Merging only happens across locations where exactly two line
// ends meet; junctions of three or more ends, and loose ends, terminate a
// chain. Locations are matched on the rounding grid, so near-coincident
// endpoints within the grid resolution count as the same place.
func RunMergeLines(input *VecLayer) (*VecLayer, error) {
	var lines []*Polyline
	for i, feat := range input.Features {
		lines = append(lines, featurePolylines(feat, i)...)
	}
	scale := pow10(config.RoundDecimals)
	kept := lines[:0]
	for _, p := range lines {
		q := roundLine(p, scale)
		if q != nil {
			kept = append(kept, q)
		}
	}
	lines = kept
	Log.Verbose(1, "MergeLines: %d usable polylines.\n", len(lines))

	ends := make(map[string][]lineEnd)
	for i, p := range lines {
		ends[pointGridKey(p.FirstPoint())] = append(ends[pointGridKey(p.FirstPoint())],
			lineEnd{line: i, front: true})
		ends[pointGridKey(p.LastPoint())] = append(ends[pointGridKey(p.LastPoint())],
			lineEnd{line: i, front: false})
	}

	visited := make([]bool, len(lines))
	out := &VecLayer{Name: input.Name, Fields: input.Fields}
	for i := range lines {
		if visited[i] {
			continue
		}
		chain := growChain(lines, ends, visited, i)
		out.Features = append(out.Features, &VecFeature{
			Geom:  orb.LineString(chain),
			Attrs: lines[i].Attrs,
		})
	}
	Log.Printf("MergeLines: %d polylines merged into %d.\n", len(lines), len(out.Features))
	return out, nil
}

// growChain assembles the maximal merged polyline through line i. It first
// extends past i's back end, then flips the partial chain and extends past
// the front end the same way, so both directions share one loop.
func growChain(lines []*Polyline, ends map[string][]lineEnd, visited []bool, i int) []orb.Point {
	visited[i] = true
	chain := make([]orb.Point, len(lines[i].Points))
	copy(chain, lines[i].Points)
	for dir := 0; dir < 2; dir++ {
		for {
			tip := chain[len(chain)-1]
			next, ok := soleContinuation(lines, ends, visited, tip)
			if !ok {
				break
			}
			visited[next.line] = true
			pts := lines[next.line].Points
			if !next.front {
				pts = reversePoints(pts)
			}
			// the continuation starts at the shared location
			chain = append(chain, pts[1:]...)
		}
		chain = reversePoints(chain)
	}
	return chain
}

// soleContinuation reports the single unvisited line end at the given
// location, but only when exactly two line ends meet there. Anything else is
// a junction or a terminus and the chain must stop.
func soleContinuation(lines []*Polyline, ends map[string][]lineEnd, visited []bool,
	at orb.Point) (lineEnd, bool) {
	here := ends[pointGridKey(at)]
	if len(here) != 2 {
		return lineEnd{}, false
	}
	for _, e := range here {
		if !visited[e.line] {
			return e, true
		}
	}
	return lineEnd{}, false
}

func roundLine(p *Polyline, scale float64) *Polyline {
	q := p.Clone()
	for i := range q.Points {
		q.Points[i] = roundPoint(q.Points[i], scale)
	}
	// collapse vertices the rounding fused together
	w := 1
	for i := 1; i < len(q.Points); i++ {
		if q.Points[i] != q.Points[w-1] {
			q.Points[w] = q.Points[i]
			w++
		}
	}
	q.Points = q.Points[:w]
	if len(q.Points) < 2 {
		return nil
	}
	return q
}

func pointGridKey(p orb.Point) string {
	return strconv.FormatFloat(p[0], 'g', 17, 64) + "," +
		strconv.FormatFloat(p[1], 'g', 17, 64)
}

func reversePoints(pts []orb.Point) []orb.Point {
	for a, b := 0, len(pts)-1; a < b; a, b = a+1, b-1 {
		pts[a], pts[b] = pts[b], pts[a]
	}
	return pts
}
