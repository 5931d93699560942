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

// Vector layer I/O: GeoJSON via orb, ESRI Shapefile via go-shp. The engine
// itself never touches files; everything meets it as an in-memory VecLayer
package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	shp "github.com/jonas-p/go-shp"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

type VecFeature struct {
	Geom  orb.Geometry
	Attrs AttrRecord
}

type VecLayer struct {
	Name     string
	Fields   []string
	Features []*VecFeature
}

func ReadVectorLayer(path string) (*VecLayer, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return readGeoJSON(path)
	case ".shp":
		return readShapefile(path)
	default:
		return nil, fmt.Errorf("unsupported input format %q (expected .shp, .geojson or .json)", filepath.Ext(path))
	}
}

func WriteVectorLayer(path string, layer *VecLayer) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".geojson", ".json":
		return writeGeoJSON(path, layer)
	case ".shp":
		return writeShapefile(path, layer)
	default:
		return fmt.Errorf("unsupported output format %q (expected .shp, .geojson or .json)", filepath.Ext(path))
	}
}

func readGeoJSON(path string) (*VecLayer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, fmt.Errorf("couldn't parse %s as GeoJSON: %v", path, err)
	}
	layer := &VecLayer{Name: layerName(path)}
	fieldSet := make(map[string]bool)
	for _, f := range fc.Features {
		if f.Geometry == nil {
			continue
		}
		attrs := AttrRecord(f.Properties)
		for k := range attrs {
			fieldSet[k] = true
		}
		layer.Features = append(layer.Features, &VecFeature{
			Geom:  f.Geometry,
			Attrs: attrs,
		})
	}
	layer.Fields = sortedKeys(fieldSet)
	return layer, nil
}

func writeGeoJSON(path string, layer *VecLayer) error {
	fc := geojson.NewFeatureCollection()
	for _, feat := range layer.Features {
		f := geojson.NewFeature(feat.Geom)
		if feat.Attrs != nil {
			f.Properties = geojson.Properties(feat.Attrs)
		}
		fc.Append(f)
	}
	data, err := json.Marshal(fc)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func readShapefile(path string) (*VecLayer, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	layer := &VecLayer{Name: layerName(path)}
	fields := r.Fields()
	for _, f := range fields {
		layer.Fields = append(layer.Fields, f.String())
	}
	for r.Next() {
		n, s := r.Shape()
		var geom orb.Geometry
		switch shape := s.(type) {
		case *shp.Polygon:
			geom = polygonFromParts(shape.Points, shape.Parts)
		case *shp.PolyLine:
			geom = polylineFromParts(shape.Points, shape.Parts)
		case *shp.Point:
			geom = orb.Point{shape.X, shape.Y}
		case *shp.PolygonZ, *shp.PolygonM, *shp.PolyLineZ, *shp.PolyLineM,
			*shp.PointZ, *shp.PointM:
			// the engine is strictly planar; pretending the Z/M didn't exist
			// would silently produce wrong geometry
			return nil, fmt.Errorf("%s: measured/3-D shapes are not supported, record %d", path, n)
		default:
			return nil, fmt.Errorf("%s: unsupported shape type %T in record %d", path, s, n)
		}
		attrs := make(AttrRecord, len(fields))
		for k, f := range fields {
			attrs[f.String()] = strings.TrimRight(r.ReadAttribute(n, k), "\x00 ")
		}
		layer.Features = append(layer.Features, &VecFeature{Geom: geom, Attrs: attrs})
	}
	return layer, nil
}

// polygonFromParts groups shapefile rings into polygons by winding: a
// clockwise ring opens a new polygon, counter-clockwise rings are holes of
// the most recent one (the shapefile convention matches ours)
func polygonFromParts(points []shp.Point, parts []int32) orb.Geometry {
	var polys orb.MultiPolygon
	var current orb.Polygon
	for _, ring := range splitShpParts(points, parts) {
		if ring.Orientation() == orb.CW || current == nil {
			if current != nil {
				polys = append(polys, current)
			}
			current = orb.Polygon{ring}
		} else {
			current = append(current, ring)
		}
	}
	if current != nil {
		polys = append(polys, current)
	}
	if len(polys) == 1 {
		return polys[0]
	}
	return polys
}

func polylineFromParts(points []shp.Point, parts []int32) orb.Geometry {
	rings := splitShpParts(points, parts)
	if len(rings) == 1 {
		return orb.LineString(rings[0])
	}
	var mls orb.MultiLineString
	for _, r := range rings {
		mls = append(mls, orb.LineString(r))
	}
	return mls
}

func splitShpParts(points []shp.Point, parts []int32) []orb.Ring {
	var out []orb.Ring
	for i := range parts {
		start := int(parts[i])
		end := len(points)
		if i+1 < len(parts) {
			end = int(parts[i+1])
		}
		ring := make(orb.Ring, 0, end-start)
		for _, p := range points[start:end] {
			ring = append(ring, orb.Point{p.X, p.Y})
		}
		if len(ring) > 0 {
			out = append(out, ring)
		}
	}
	return out
}

func writeShapefile(path string, layer *VecLayer) error {
	if err := writeShpRecords(path, layer); err != nil {
		return err
	}
	// go-shp strips the ".shp" suffix, dot included, before appending "dbf",
	// so the attribute table lands at <base>dbf where readers (go-shp's own
	// included) look for <base>.dbf. Move it where it belongs.
	base := strings.TrimSuffix(path, filepath.Ext(path))
	if _, err := os.Stat(base + "dbf"); err == nil {
		return os.Rename(base+"dbf", base+".dbf")
	}
	return nil
}

func writeShpRecords(path string, layer *VecLayer) error {
	var shapeType shp.ShapeType = shp.POLYGON
	for _, feat := range layer.Features {
		switch feat.Geom.(type) {
		case orb.LineString, orb.MultiLineString:
			shapeType = shp.POLYLINE
		}
		break
	}
	w, err := shp.Create(path, shapeType)
	if err != nil {
		return err
	}
	defer w.Close()

	fields := make([]shp.Field, 0, len(layer.Fields))
	fieldIdx := make(map[string]int, len(layer.Fields))
	for i, name := range layer.Fields {
		fields = append(fields, shp.StringField(name, 120))
		fieldIdx[name] = i
	}
	w.SetFields(fields)

	row := 0
	for _, feat := range layer.Features {
		parts := geometryToShpParts(feat.Geom)
		if len(parts) == 0 {
			continue
		}
		if shapeType == shp.POLYGON {
			poly := shp.Polygon(*shp.NewPolyLine(parts))
			w.Write(&poly)
		} else {
			w.Write(shp.NewPolyLine(parts))
		}
		for key, item := range feat.Attrs {
			col, ok := fieldIdx[key]
			if !ok {
				continue
			}
			if err := w.WriteAttribute(row, col, attrString(item)); err != nil {
				return err
			}
		}
		row++
	}
	return nil
}

func geometryToShpParts(g orb.Geometry) [][]shp.Point {
	var parts [][]shp.Point
	appendRing := func(pts []orb.Point) {
		part := make([]shp.Point, len(pts))
		for i, p := range pts {
			part[i] = shp.Point{X: p[0], Y: p[1]}
		}
		parts = append(parts, part)
	}
	switch geom := g.(type) {
	case orb.Polygon:
		for _, ring := range geom {
			appendRing(ring)
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			for _, ring := range poly {
				appendRing(ring)
			}
		}
	case orb.LineString:
		appendRing(geom)
	case orb.MultiLineString:
		for _, ls := range geom {
			appendRing(ls)
		}
	}
	return parts
}

func attrString(item interface{}) string {
	switch v := item.(type) {
	case string:
		return v
	case float64:
		return fmt.Sprintf("%f", v)
	case int:
		return fmt.Sprintf("%d", v)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}

func layerName(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// featurePolylines explodes a feature's geometry into the engine's polyline
// form. Polygon rings keep their position as a hole flag.
func featurePolylines(f *VecFeature, source int) []*Polyline {
	var out []*Polyline
	addRing := func(pts []orb.Point, hole bool) {
		if len(pts) < 2 {
			return
		}
		cp := make([]orb.Point, len(pts))
		copy(cp, pts)
		out = append(out, &Polyline{Points: cp, Source: source, Attrs: f.Attrs, Hole: hole})
	}
	switch geom := f.Geom.(type) {
	case orb.LineString:
		addRing(geom, false)
	case orb.MultiLineString:
		for _, ls := range geom {
			addRing(ls, false)
		}
	case orb.Ring:
		addRing(geom, false)
	case orb.Polygon:
		for i, ring := range geom {
			addRing(ring, i > 0)
		}
	case orb.MultiPolygon:
		for _, poly := range geom {
			for i, ring := range poly {
				addRing(ring, i > 0)
			}
		}
	}
	return out
}

// featurePolygons lists a feature's polygons, for containment masks
func featurePolygons(f *VecFeature) []orb.Polygon {
	switch geom := f.Geom.(type) {
	case orb.Polygon:
		return []orb.Polygon{geom}
	case orb.MultiPolygon:
		return []orb.Polygon(geom)
	case orb.Ring:
		return []orb.Polygon{{geom}}
	}
	return nil
}

// boundaryEdges explodes a feature's polygon boundaries into individual
// two-point segments, the granularity dissolve and clip select and de-dup at
func boundaryEdges(f *VecFeature, source int) []*Polyline {
	var out []*Polyline
	for _, poly := range featurePolygons(f) {
		for ri, ring := range poly {
			for i := 0; i+1 < len(ring); i++ {
				if ring[i] == ring[i+1] {
					continue
				}
				out = append(out, &Polyline{
					Points: []orb.Point{ring[i], ring[i+1]},
					Source: source,
					Attrs:  f.Attrs,
					Hole:   ri > 0,
				})
			}
		}
	}
	return out
}
