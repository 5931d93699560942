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
	"fmt"

	"github.com/paulmach/orb"
)

// Clip: intersect every subject polygon with the union of the clip layer's
// polygons. Each subject feature gets its own reconstruction pass: its
// boundary and the clip boundaries are split against each other, only the
// pieces that lie inside (or on) the other layer survive, and the engine
// reassembles those pieces into the intersection polygons. Shared boundary
// runs appear once from each layer; DUP_KEEP_FIRST collapses them.
func RunClip(subject, clip *VecLayer) (*VecLayer, error) {
	var clipPolys []orb.Polygon
	for _, cf := range clip.Features {
		clipPolys = append(clipPolys, featurePolygons(cf)...)
	}
	if len(clipPolys) == 0 {
		return nil, fmt.Errorf("clip layer %q contains no polygons", clip.Name)
	}
	clipBound := clipPolys[0].Bound()
	for _, cp := range clipPolys[1:] {
		clipBound = clipBound.Union(cp.Bound())
	}

	passes := make([]PassInput, 0, len(subject.Features))
	skipped := 0
	for _, feat := range subject.Features {
		subjPolys := featurePolygons(feat)
		if len(subjPolys) == 0 {
			skipped++
			continue
		}
		subjBound := subjPolys[0].Bound()
		for _, sp := range subjPolys[1:] {
			subjBound = subjBound.Union(sp.Bound())
		}
		if !subjBound.Intersects(clipBound) {
			continue
		}
		lines := clipPassLines(feat, subjPolys, clipPolys, clip)
		if len(lines) == 0 {
			continue
		}
		opts := DefaultPassOptions()
		opts.DupPolicy = DUP_KEEP_FIRST
		opts.Attach = ATTACH_SMALLEST
		opts.AttrPolicy = ATTR_MIN_INDEX
		opts.Simplify = true
		opts.MaskA = subjPolys
		opts.MaskB = clipPolys
		// subjects can be skipped above, so pass indices are assigned
		// densely rather than reusing the subject feature index
		passes = append(passes, PassInput{Idx: len(passes), Lines: lines, Opts: opts})
	}
	if skipped > 0 {
		Log.Verbose(1, "Clip: %d non-polygon subject features ignored.\n", skipped)
	}

	results := RunPasses(passes)

	out := &VecLayer{Name: subject.Name, Fields: subject.Fields}
	for _, polys := range results {
		for _, p := range polys {
			out.Features = append(out.Features, &VecFeature{
				Geom:  p.Polygon(),
				Attrs: p.Attrs,
			})
		}
	}
	Log.Printf("Clip: %d polygons from %d subject features.\n",
		len(out.Features), len(subject.Features))
	return out, nil
}

// clipPassLines prepares the line work for one subject feature: subject and
// clip boundaries mutually split, then filtered to the pieces whose midpoint
// is inside or on the boundary of the other layer. Subject edges keep source
// 0 so ATTR_MIN_INDEX hands the subject's attributes to the output.
func clipPassLines(feat *VecFeature, subjPolys, clipPolys []orb.Polygon, clip *VecLayer) []*Polyline {
	lines := boundaryEdges(feat, 0)
	for _, cf := range clip.Features {
		lines = append(lines, boundaryEdges(cf, 1)...)
	}
	split := SplitPolylines(lines)

	tol := config.Snap
	var kept []*Polyline
	for _, p := range split {
		other := clipPolys
		if p.Source != 0 {
			other = subjPolys
		}
		for i := 0; i+1 < len(p.Points); i++ {
			a, b := p.Points[i], p.Points[i+1]
			mid := orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
			if !insideAnyPolygon(mid, other, tol) && !onAnyBoundary(mid, other, tol) {
				continue
			}
			kept = append(kept, &Polyline{
				Points: []orb.Point{a, b},
				Source: p.Source,
				Attrs:  p.Attrs,
			})
		}
	}
	return kept
}

func onAnyBoundary(pt orb.Point, polys []orb.Polygon, tol float64) bool {
	for _, poly := range polys {
		for _, ring := range poly {
			if pointOnRingBoundary(pt, ring, tol) {
				return true
			}
		}
	}
	return false
}
