package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// PathGeometry is the tagged storm-path variant: a PathPoint for single-
// observation storms, a PathLine for everything else.
type PathGeometry interface {
	WKT() string
	isPathGeometry()
}

// Point is a bare coordinate, used for an observation's location.
type Point struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// WKT renders the point as well-known text, e.g. "POINT(-94.8 28)".
func (p Point) WKT() string {
	return fmt.Sprintf("POINT(%s %s)", formatCoord(p.Lon), formatCoord(p.Lat))
}

// TrackVertex is one path vertex: a coordinate plus the wind and pressure
// measures at that observation. Missing measures render as NULL tokens so the
// path string stays column-aligned with the observation table.
type TrackVertex struct {
	Lon           float64 `json:"lon"`
	Lat           float64 `json:"lat"`
	MaxWindKnots  *int    `json:"max_wind_knots"`
	MinPressureMB *int    `json:"min_pressure_mb"`
}

func (v TrackVertex) token() string {
	return fmt.Sprintf("%s %s %s %s",
		formatCoord(v.Lon), formatCoord(v.Lat),
		formatMeasure(v.MaxWindKnots), formatMeasure(v.MinPressureMB))
}

// PathPoint is the path of a storm with exactly one observation.
type PathPoint struct {
	Vertex TrackVertex `json:"vertex"`
}

func (p PathPoint) WKT() string {
	return "POINT(" + p.Vertex.token() + ")"
}

func (PathPoint) isPathGeometry() {}

// PathLine is the path of a storm with two or more observations, connecting
// every vertex in chronological order.
type PathLine struct {
	Vertices []TrackVertex `json:"vertices"`
}

func (l PathLine) WKT() string {
	tokens := make([]string, len(l.Vertices))
	for i, v := range l.Vertices {
		tokens[i] = v.token()
	}
	return "LINESTRING(" + strings.Join(tokens, ",") + ")"
}

func (PathLine) isPathGeometry() {}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatMeasure(v *int) string {
	if v == nil {
		return "NULL"
	}
	return strconv.Itoa(*v)
}
