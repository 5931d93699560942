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

// Segment preparation: pairwise intersection splitting, coordinate rounding,
// and removal of degenerate and duplicate line work. Everything downstream
// assumes vertices that are meant to coincide compare exactly equal after
// this stage (within the snap distance at worst)
package main

import (
	"sort"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

type edgeCut struct {
	t  float64
	pt orb.Point
}

// SplitPolylines returns clones of lines with a vertex inserted into both
// polylines at every pairwise geometric intersection. Inputs are never
// mutated. Collinear overlaps insert nothing; coincident line work is dealt
// with by duplicate removal instead.
func SplitPolylines(lines []*Polyline) []*Polyline {
	work := make([]*Polyline, len(lines))
	bounds := make([]orb.Bound, len(lines))
	for i, l := range lines {
		work[i] = l.Clone()
		bounds[i] = l.Bound()
	}
	cuts := make([]map[int][]edgeCut, len(work))
	for i := 0; i < len(work); i++ {
		for j := i + 1; j < len(work); j++ {
			if !bounds[i].Intersects(bounds[j]) {
				continue
			}
			splitPair(work, cuts, i, j)
		}
	}
	for i := range work {
		if cuts[i] != nil {
			work[i] = rebuildWithCuts(work[i], cuts[i])
		}
	}
	return work
}

func splitPair(work []*Polyline, cuts []map[int][]edgeCut, i, j int) {
	ipts := work[i].Points
	jpts := work[j].Points
	for a := 0; a+1 < len(ipts); a++ {
		a1, a2 := ipts[a], ipts[a+1]
		for b := 0; b+1 < len(jpts); b++ {
			b1, b2 := jpts[b], jpts[b+1]
			if !edgeBoxesOverlap(a1, a2, b1, b2) {
				continue
			}
			pt, ok := segIntersection(a1, a2, b1, b2)
			if !ok {
				continue
			}
			addCut(cuts, i, a, a1, a2, pt)
			addCut(cuts, j, b, b1, b2, pt)
		}
	}
}

func edgeBoxesOverlap(a1, a2, b1, b2 orb.Point) bool {
	axmin, axmax := minMax(a1[0], a2[0])
	bxmin, bxmax := minMax(b1[0], b2[0])
	if axmax < bxmin || bxmax < axmin {
		return false
	}
	aymin, aymax := minMax(a1[1], a2[1])
	bymin, bymax := minMax(b1[1], b2[1])
	return aymax >= bymin && bymax >= aymin
}

func minMax(a, b float64) (float64, float64) {
	if a < b {
		return a, b
	}
	return b, a
}

// addCut records pt as a split position on the edge from
// work[line].Points[edge], unless it coincides with one of the edge's own
// endpoints (those are vertices already)
func addCut(cuts []map[int][]edgeCut, line int, edge int, e1, e2 orb.Point, pt orb.Point) {
	if pt == e1 || pt == e2 {
		return
	}
	t := paramAlongEdge(e1, e2, pt)
	if cuts[line] == nil {
		cuts[line] = make(map[int][]edgeCut)
	}
	cuts[line][edge] = append(cuts[line][edge], edgeCut{t: t, pt: pt})
}

func paramAlongEdge(e1, e2, pt orb.Point) float64 {
	dx, dy := e2[0]-e1[0], e2[1]-e1[1]
	if dx*dx >= dy*dy {
		if dx == 0 {
			return 0
		}
		return (pt[0] - e1[0]) / dx
	}
	return (pt[1] - e1[1]) / dy
}

func rebuildWithCuts(p *Polyline, cuts map[int][]edgeCut) *Polyline {
	pts := make([]orb.Point, 0, len(p.Points)+len(cuts))
	for e := 0; e+1 < len(p.Points); e++ {
		pts = append(pts, p.Points[e])
		ecuts := cuts[e]
		if len(ecuts) == 0 {
			continue
		}
		sort.Slice(ecuts, func(a, b int) bool {
			return ecuts[a].t < ecuts[b].t
		})
		for _, c := range ecuts {
			if c.pt != pts[len(pts)-1] {
				pts = append(pts, c.pt)
			}
		}
	}
	pts = append(pts, p.Points[len(p.Points)-1])
	p.Points = pts
	return p
}

// PrepareSegments runs the whole preparation stage: split all polylines at
// their pairwise intersections, round every vertex to decimals places (0
// disables rounding), collapse zero-length sub-segments, drop polylines
// reduced below two vertices, and remove duplicate polylines (same vertex
// sequence, possibly reversed) according to dupPolicy. At most one duplicate
// per pair is assumed; triple-overlapping identical lines are not handled.
func PrepareSegments(lines []*Polyline, decimals int, dupPolicy int, mlog *MiniLogger) []*Polyline {
	work := SplitPolylines(lines)

	if decimals > 0 {
		scale := pow10(decimals)
		for _, l := range work {
			for i := range l.Points {
				l.Points[i] = roundPoint(l.Points[i], scale)
			}
		}
	}

	kept := make([]*Polyline, 0, len(work))
	degenerate := 0
	for _, l := range work {
		pts := l.Points[:0]
		for _, pt := range l.Points {
			if len(pts) > 0 && pt == pts[len(pts)-1] {
				continue
			}
			pts = append(pts, pt)
		}
		l.Points = pts
		if len(l.Points) < 2 {
			degenerate++
			continue
		}
		kept = append(kept, l)
	}
	if degenerate > 0 {
		mlog.Verbose(2, "Segment preparation: dropped %d degenerate polyline(s)\n", degenerate)
	}

	return dedupPolylines(kept, dupPolicy, mlog)
}

func dedupPolylines(lines []*Polyline, dupPolicy int, mlog *MiniLogger) []*Polyline {
	firstSeen := make(map[string]int, len(lines))
	dead := make([]bool, len(lines))
	dups := 0
	for i, l := range lines {
		key := canonicalLineKey(l.Points)
		if prev, ok := firstSeen[key]; ok {
			dups++
			dead[i] = true
			if dupPolicy == DUP_DROP_BOTH {
				dead[prev] = true
			}
			continue
		}
		firstSeen[key] = i
	}
	if dups > 0 {
		mlog.Verbose(2, "Segment preparation: %d duplicate polyline(s) found\n", dups)
	}
	out := make([]*Polyline, 0, len(lines))
	for i, l := range lines {
		if !dead[i] {
			out = append(out, l)
		}
	}
	return out
}

// canonicalLineKey is direction-insensitive: a polyline and its reverse get
// the same key
func canonicalLineKey(pts []orb.Point) string {
	fwd := lineKey(pts, false)
	rev := lineKey(pts, true)
	if rev < fwd {
		return rev
	}
	return fwd
}

func lineKey(pts []orb.Point, reversed bool) string {
	var sb strings.Builder
	for i := range pts {
		pt := pts[i]
		if reversed {
			pt = pts[len(pts)-1-i]
		}
		sb.WriteString(strconv.FormatFloat(pt[0], 'g', 17, 64))
		sb.WriteByte(',')
		sb.WriteString(strconv.FormatFloat(pt[1], 'g', 17, 64))
		sb.WriteByte(';')
	}
	return sb.String()
}
