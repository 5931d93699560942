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

// Polygonize: rebuild the areal coverage implied by a tangle of lines. One
// reconstruction pass over the entire input layer, all line work thrown into
// a single planar graph.
func RunPolygonize(input *VecLayer) (*VecLayer, error) {
	var lines []*Polyline
	for i, feat := range input.Features {
		lines = append(lines, featurePolylines(feat, i)...)
	}
	Log.Verbose(1, "Polygonize: %d features exploded into %d polylines.\n",
		len(input.Features), len(lines))

	opts := DefaultPassOptions()
	polys := ReconstructPolygons(lines, opts, nil)

	out := &VecLayer{Name: input.Name, Fields: input.Fields}
	for _, p := range polys {
		out.Features = append(out.Features, &VecFeature{
			Geom:  p.Polygon(),
			Attrs: p.Attrs,
		})
	}
	Log.Printf("Polygonize: built %d polygons from %d input features.\n",
		len(out.Features), len(input.Features))
	return out, nil
}
