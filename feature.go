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

// In-memory feature model shared by the reconstruction engine and the tools.
// Winding convention throughout the program: clockwise rings are exterior
// boundaries, counter-clockwise rings are holes
package main

import (
	"github.com/paulmach/orb"
)

// AttrRecord is the attribute payload carried by an input feature and
// inherited by reconstructed polygons.
type AttrRecord map[string]interface{}

func (a AttrRecord) Clone() AttrRecord {
	if a == nil {
		return nil
	}
	out := make(AttrRecord, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// Polyline is an ordered, non-empty sequence of points, plus the index of the
// input feature it came from and that feature's attributes. Once handed to a
// reconstruction pass it is owned by that pass; callers must not mutate it
// until the pass completes.
type Polyline struct {
	Points []orb.Point
	Source int
	Attrs  AttrRecord
	Hole   bool // ring-orientation flag inherited from the source format
}

func (p *Polyline) FirstPoint() orb.Point {
	return p.Points[0]
}

func (p *Polyline) LastPoint() orb.Point {
	return p.Points[len(p.Points)-1]
}

func (p *Polyline) Bound() orb.Bound {
	return orb.LineString(p.Points).Bound()
}

// IsRing reports whether the polyline closes onto itself within tol
func (p *Polyline) IsRing(tol float64) bool {
	return len(p.Points) > 1 && nearlyEqual(p.FirstPoint(), p.LastPoint(), tol)
}

// Clone copies the polyline including its vertices. Passes work on clones so
// that the caller's geometry survives splitting and rounding untouched.
func (p *Polyline) Clone() *Polyline {
	pts := make([]orb.Point, len(p.Points))
	copy(pts, p.Points)
	return &Polyline{
		Points: pts,
		Source: p.Source,
		Attrs:  p.Attrs,
		Hole:   p.Hole,
	}
}

// PolygonFeature is one exterior ring (clockwise) plus zero or more hole rings
// (counter-clockwise), with the attribute record the reconstruction derived
// for it.
type PolygonFeature struct {
	Rings  []orb.Ring
	Attrs  AttrRecord
	Source int
}

func (pf *PolygonFeature) Exterior() orb.Ring {
	return pf.Rings[0]
}

func (pf *PolygonFeature) AddHole(r orb.Ring) {
	pf.Rings = append(pf.Rings, r)
}

func (pf *PolygonFeature) Polygon() orb.Polygon {
	return orb.Polygon(pf.Rings)
}
