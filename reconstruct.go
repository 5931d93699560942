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

// One reconstruction pass, start to finish: segment preparation -> endnode
// graph -> dangling-arc pruning -> face extraction -> hole resolution. A pass
// is a self-contained value; no state survives it and no two passes share
// anything but the read-only inputs
package main

import (
	"github.com/paulmach/orb"
)

// PassOptions carries the per-pass policy knobs. The zero value is NOT usable;
// callers start from DefaultPassOptions.
type PassOptions struct {
	Snap      float64
	Decimals  int
	DupPolicy int
	Attach    int
	FreeHoles int
	// where output attribute records come from (ATTR_* consts); GroupAttrs is
	// the shared record used with ATTR_GROUP
	AttrPolicy int
	GroupAttrs AttrRecord
	// drop output ring vertices collinear with their neighbors (dissolve
	// wants clean merged boundaries, polygonize wants round-trip fidelity)
	Simplify bool
	// When non-nil, a finished polygon is emitted only if a point interior
	// to it (holes avoided) lies inside at least one polygon of MaskA (and
	// of MaskB, when that is non-nil too). Overlay tools use these to
	// discard faces that fall outside the originating geometry, e.g. the
	// region inside a donut hole.
	MaskA []orb.Polygon
	MaskB []orb.Polygon
}

func DefaultPassOptions() PassOptions {
	free := HOLE_FREE_DISCARD
	if config.KeepFreeHoles {
		free = HOLE_FREE_KEEP
	}
	return PassOptions{
		Snap:       config.Snap,
		Decimals:   config.RoundDecimals,
		DupPolicy:  DUP_KEEP_FIRST,
		Attach:     ATTACH_FIRST_MATCH,
		FreeHoles:  free,
		AttrPolicy: ATTR_MAJORITY,
	}
}

// ReconstructPolygons rebuilds the set of simple closed polygon rings implied
// by the given line network and pairs exterior boundaries with their holes.
// Inputs that produce no valid segments propagate as zero output polygons;
// nothing here is fatal.
func ReconstructPolygons(lines []*Polyline, opts PassOptions, mlog *MiniLogger) []*PolygonFeature {
	segs := PrepareSegments(lines, opts.Decimals, opts.DupPolicy, mlog)
	if len(segs) == 0 {
		mlog.Verbose(1, "Reconstruction: no valid segments after preparation\n")
		return nil
	}
	g := BuildTopoGraph(segs, opts.Snap, mlog)
	g.PruneDanglingArcs()
	exteriors, holes := g.ExtractFaces()

	resolved := make([]resolvedExterior, 0, len(exteriors))
	for _, e := range exteriors {
		pts := e.pts
		if opts.Simplify {
			pts = removeCollinear(pts)
		}
		attrs, source := g.ringAttrs(e.segsUsed, opts)
		resolved = append(resolved, resolvedExterior{
			ring: e,
			poly: &PolygonFeature{
				Rings:  []orb.Ring{pts},
				Attrs:  attrs,
				Source: source,
			},
		})
	}
	for i := range holes {
		if opts.Simplify {
			holes[i].pts = removeCollinear(holes[i].pts)
		}
		holes[i].attrs, holes[i].source = g.ringAttrs(holes[i].segsUsed, opts)
	}
	polys := ResolveHoles(resolved, holes, opts.Attach, opts.FreeHoles, mlog)
	if opts.MaskA == nil && opts.MaskB == nil {
		return polys
	}
	kept := polys[:0]
	for _, p := range polys {
		if maskAllows(p, opts) {
			kept = append(kept, p)
			continue
		}
		mlog.Verbose(2, "Reconstruction: polygon of %d ring(s) falls outside the mask, dropped\n",
			len(p.Rings))
	}
	return kept
}

// maskAllows reports whether a finished polygon survives the pass masks.
// Masking runs after hole resolution on purpose: the sample point must avoid
// the polygon's own holes, or a donut's exterior would be tested at a spot
// inside the mask polygon's hole and wrongly discarded.
func maskAllows(p *PolygonFeature, opts PassOptions) bool {
	ip := polygonInteriorPoint(p.Polygon())
	tol := opts.Snap
	if opts.MaskA != nil && !insideAnyPolygon(ip, opts.MaskA, tol) {
		return false
	}
	if opts.MaskB != nil && !insideAnyPolygon(ip, opts.MaskB, tol) {
		return false
	}
	return true
}

// ringAttrs derives the attribute record a reconstructed ring carries forward
// from the features that contributed its boundary.
func (g *TopoGraph) ringAttrs(segsUsed []int, opts PassOptions) (AttrRecord, int) {
	switch opts.AttrPolicy {
	case ATTR_GROUP:
		return opts.GroupAttrs, g.minSource(segsUsed)
	case ATTR_MIN_INDEX:
		src := g.minSource(segsUsed)
		for _, s := range segsUsed {
			if g.segs[s].Source == src {
				return g.segs[s].Attrs, src
			}
		}
		return nil, src
	default: // ATTR_MAJORITY
		// the feature that contributed the most boundary vertices wins; ties
		// go to the smaller source index
		counts := make(map[int]int)
		for _, s := range segsUsed {
			counts[g.segs[s].Source] += len(g.segs[s].Points)
		}
		bestSrc := -1
		bestCount := -1
		for src, cnt := range counts {
			if cnt > bestCount || (cnt == bestCount && src < bestSrc) {
				bestSrc = src
				bestCount = cnt
			}
		}
		for _, s := range segsUsed {
			if g.segs[s].Source == bestSrc {
				return g.segs[s].Attrs, bestSrc
			}
		}
		return nil, bestSrc
	}
}

func (g *TopoGraph) minSource(segsUsed []int) int {
	min := g.segs[segsUsed[0]].Source
	for _, s := range segsUsed[1:] {
		if g.segs[s].Source < min {
			min = g.segs[s].Source
		}
	}
	return min
}
