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
	"sort"

	"github.com/paulmach/orb"
)

// Dissolve: remove interior boundaries between polygons that share a value
// of the -f= field (or between all polygons when no field is given). Each
// group is an independent reconstruction pass; shared edges occur twice with
// opposite orientation and cancel under DUP_DROP_BOTH, so only the group's
// outline survives into the graph.
func RunDissolve(input *VecLayer) (*VecLayer, error) {
	field := config.DissolveField
	if field != "" {
		known := false
		for _, f := range input.Fields {
			if f == field {
				known = true
				break
			}
		}
		if !known {
			return nil, fmt.Errorf("dissolve field %q not found in input layer", field)
		}
	}

	groups := make(map[string][]*VecFeature)
	for _, feat := range input.Features {
		key := ""
		if field != "" {
			key = attrString(feat.Attrs[field])
		}
		groups[key] = append(groups[key], feat)
	}
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	Log.Verbose(1, "Dissolve: %d features in %d groups.\n", len(input.Features), len(keys))

	passes := make([]PassInput, 0, len(keys))
	for idx, key := range keys {
		feats := groups[key]
		var lines []*Polyline
		var mask []orb.Polygon
		for i, feat := range feats {
			lines = append(lines, boundaryEdges(feat, i)...)
			mask = append(mask, featurePolygons(feat)...)
		}
		opts := DefaultPassOptions()
		opts.DupPolicy = DUP_DROP_BOTH
		opts.Attach = ATTACH_SMALLEST
		opts.AttrPolicy = ATTR_GROUP
		opts.Simplify = true
		opts.MaskA = mask
		if field != "" {
			opts.GroupAttrs = AttrRecord{field: feats[0].Attrs[field]}
		}
		passes = append(passes, PassInput{Idx: idx, Lines: lines, Opts: opts})
	}

	results := RunPasses(passes)

	out := &VecLayer{Name: input.Name}
	if field != "" {
		out.Fields = []string{field}
	}
	for _, polys := range results {
		for _, p := range polys {
			out.Features = append(out.Features, &VecFeature{
				Geom:  p.Polygon(),
				Attrs: p.Attrs,
			})
		}
	}
	Log.Printf("Dissolve: %d polygons out of %d groups.\n", len(out.Features), len(keys))
	return out, nil
}
