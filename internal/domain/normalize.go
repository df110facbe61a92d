package domain

import (
	"fmt"
	"time"
)

// Missing-value sentinels reserved by the HURDAT2 format. These are explicit
// placeholders in the source, not computed thresholds.
const (
	WindMissing     = -99
	PressureMissing = -999
)

// Normalize converts extracted headers and observations into the final typed
// record sets. It decodes the coded columns, converts sentinels to nil,
// composes UTC timestamps, and derives each storm's start time and path
// geometry from its observations in source order. Any failure aborts the
// whole run; there is no partial output.
func Normalize(headers []Header, raws []RawObservation) ([]Storm, []Observation, error) {
	observations := make([]Observation, 0, len(raws))
	byEvent := make(map[string][]int, len(headers))
	for _, raw := range raws {
		obs, err := normalizeObservation(raw)
		if err != nil {
			return nil, nil, err
		}
		byEvent[raw.EventID] = append(byEvent[raw.EventID], len(observations))
		observations = append(observations, obs)
	}

	seen := make(map[string]bool, len(headers))
	for _, h := range headers {
		if seen[h.EventID] {
			return nil, nil, &MalformedRecordError{
				Line:   h.Line,
				Field:  "event_id",
				Value:  h.EventID,
				Reason: "duplicate event id",
			}
		}
		seen[h.EventID] = true
	}

	storms := make([]Storm, 0, len(headers))
	for _, h := range headers {
		indexes := byEvent[h.EventID]
		if len(indexes) == 0 {
			return nil, nil, &MalformedRecordError{
				Line:   h.Line,
				Field:  "event_id",
				Value:  h.EventID,
				Reason: "storm has no observations",
			}
		}
		if len(indexes) != h.DeclaredPointCount {
			return nil, nil, &MalformedRecordError{
				Line:   h.Line,
				Field:  "declared_point_count",
				Value:  h.EventID,
				Reason: fmt.Sprintf("header declares %d observations, found %d", h.DeclaredPointCount, len(indexes)),
			}
		}

		storms = append(storms, Storm{
			EventID:   h.EventID,
			Basin:     h.Basin,
			Name:      h.Name,
			StartTime: observations[indexes[0]].PointTime,
			Path:      derivePath(observations, indexes),
		})
	}

	return storms, observations, nil
}

func normalizeObservation(raw RawObservation) (Observation, error) {
	value := fmt.Sprintf("%s-%s-%sT%s:%s:00.000Z", raw.Year, raw.Month, raw.Day, raw.Hour, raw.Minute)
	pointTime, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return Observation{}, &TimestampError{EventID: raw.EventID, Line: raw.Line, Value: value, Err: err}
	}

	identifier, err := DecodeIdentifier(raw.Identifier)
	if err != nil {
		return Observation{}, annotateCodeError(err, raw)
	}
	status, err := DecodeStatus(raw.Status)
	if err != nil {
		return Observation{}, annotateCodeError(err, raw)
	}

	return Observation{
		EventID:       raw.EventID,
		PointTime:     pointTime.UTC(),
		Identifier:    identifier,
		Status:        status,
		Latitude:      raw.Latitude,
		Longitude:     raw.Longitude,
		Location:      Point{Lon: raw.Longitude, Lat: raw.Latitude},
		MaxWindKnots:  nullable(raw.MaxWindKnots, WindMissing),
		MinPressureMB: nullable(raw.MinPressureMB, PressureMissing),
		NE34:          nullable(raw.NE34, PressureMissing),
		SE34:          nullable(raw.SE34, PressureMissing),
		SW34:          nullable(raw.SW34, PressureMissing),
		NW34:          nullable(raw.NW34, PressureMissing),
		NE50:          nullable(raw.NE50, PressureMissing),
		SE50:          nullable(raw.SE50, PressureMissing),
		SW50:          nullable(raw.SW50, PressureMissing),
		NW50:          nullable(raw.NW50, PressureMissing),
		NE64:          nullable(raw.NE64, PressureMissing),
		SE64:          nullable(raw.SE64, PressureMissing),
		SW64:          nullable(raw.SW64, PressureMissing),
		NW64:          nullable(raw.NW64, PressureMissing),
	}, nil
}

// derivePath builds the storm's path geometry from its observations in
// chronological source order: a PathPoint for a single observation, a
// PathLine for more.
func derivePath(observations []Observation, indexes []int) PathGeometry {
	vertices := make([]TrackVertex, len(indexes))
	for i, idx := range indexes {
		obs := observations[idx]
		vertices[i] = TrackVertex{
			Lon:           obs.Longitude,
			Lat:           obs.Latitude,
			MaxWindKnots:  obs.MaxWindKnots,
			MinPressureMB: obs.MinPressureMB,
		}
	}
	if len(vertices) == 1 {
		return PathPoint{Vertex: vertices[0]}
	}
	return PathLine{Vertices: vertices}
}

func nullable(v, sentinel int) *int {
	if v == sentinel {
		return nil
	}
	value := v
	return &value
}

func annotateCodeError(err error, raw RawObservation) error {
	if codeErr, ok := err.(*UnknownCodeError); ok {
		codeErr.EventID = raw.EventID
		codeErr.Line = raw.Line
	}
	return err
}
