package domain

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// headerFieldCount distinguishes the two line shapes: a header splits into
// exactly 4 comma fields (id, name, point count, trailing empty).
const headerFieldCount = 4

// observationFieldCount is the minimum comma fields an observation line must
// carry: date, time, identifier, status, lat, lon, wind, pressure, 12 radii.
const observationFieldCount = 20

// Extract walks a HURDAT2 file line by line and splits it into ordered header
// and observation sequences. Each observation is linked to the most recently
// seen header; the link is purely positional, carried by a current-header
// accumulator threaded through the scan. Any malformed line fails the whole
// file with *MalformedRecordError.
func Extract(r io.Reader) ([]Header, []RawObservation, error) {
	var (
		headers      []Header
		observations []RawObservation
		current      *Header
	)

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		fields := strings.Split(text, ",")
		if len(fields) == headerFieldCount {
			h, err := parseHeader(fields, line)
			if err != nil {
				return nil, nil, err
			}
			headers = append(headers, h)
			current = &headers[len(headers)-1]
			continue
		}

		if current == nil {
			return nil, nil, &MalformedRecordError{
				Line:   line,
				Reason: "observation before first storm header",
			}
		}
		obs, err := parseObservation(fields, current.EventID, line)
		if err != nil {
			return nil, nil, err
		}
		observations = append(observations, obs)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("scan source: %w", err)
	}

	return headers, observations, nil
}

func parseHeader(fields []string, line int) (Header, error) {
	id := fields[0]
	if len(id) != 8 {
		return Header{}, &MalformedRecordError{
			Line:   line,
			Field:  "event_id",
			Value:  id,
			Reason: "event id must be 8 characters",
		}
	}

	count, err := strconv.Atoi(strings.TrimSpace(fields[2]))
	if err != nil {
		return Header{}, &MalformedRecordError{
			Line:   line,
			Field:  "declared_point_count",
			Value:  fields[2],
			Reason: "not an integer",
			Err:    err,
		}
	}

	return Header{
		EventID:            id,
		Basin:              id[0:2],
		StormNum:           id[2:4],
		Year:               id[4:8],
		Name:               strings.TrimLeft(fields[1], " "),
		DeclaredPointCount: count,
		Line:               line,
	}, nil
}

func parseObservation(fields []string, eventID string, line int) (RawObservation, error) {
	if len(fields) < observationFieldCount {
		return RawObservation{}, &MalformedRecordError{
			Line:   line,
			Reason: fmt.Sprintf("observation has %d fields, want at least %d", len(fields), observationFieldCount),
		}
	}

	date := fields[0]
	if len(date) < 8 {
		return RawObservation{}, &MalformedRecordError{
			Line:   line,
			Field:  "date",
			Value:  date,
			Reason: "date must be 8 characters (YYYYMMDD)",
		}
	}
	hour, minute, err := sliceClock(fields[1], line)
	if err != nil {
		return RawObservation{}, err
	}

	lat, err := parseHemisphere(fields[4], "latitude", 'S', line)
	if err != nil {
		return RawObservation{}, err
	}
	lon, err := parseHemisphere(fields[5], "longitude", 'W', line)
	if err != nil {
		return RawObservation{}, err
	}

	// wind, pressure, then the twelve radii in source column order.
	var ints [14]int
	names := [14]string{
		"max_wind_knots", "min_pressure_mb",
		"ne_34kt", "se_34kt", "sw_34kt", "nw_34kt",
		"ne_50kt", "se_50kt", "sw_50kt", "nw_50kt",
		"ne_64kt", "se_64kt", "sw_64kt", "nw_64kt",
	}
	for i := range ints {
		field := fields[6+i]
		v, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return RawObservation{}, &MalformedRecordError{
				Line:   line,
				Field:  names[i],
				Value:  field,
				Reason: "not an integer",
				Err:    err,
			}
		}
		ints[i] = v
	}

	return RawObservation{
		EventID:       eventID,
		Year:          date[0:4],
		Month:         date[4:6],
		Day:           date[6:8],
		Hour:          hour,
		Minute:        minute,
		Identifier:    lastChars(fields[2], 1),
		Status:        lastChars(fields[3], 2),
		Latitude:      lat,
		Longitude:     lon,
		MaxWindKnots:  ints[0],
		MinPressureMB: ints[1],
		NE34:          ints[2],
		SE34:          ints[3],
		SW34:          ints[4],
		NW34:          ints[5],
		NE50:          ints[6],
		SE50:          ints[7],
		SW50:          ints[8],
		NW50:          ints[9],
		NE64:          ints[10],
		SE64:          ints[11],
		SW64:          ints[12],
		NW64:          ints[13],
		Line:          line,
	}, nil
}

// sliceClock takes the HHMM time field: the hour is the first two non-space
// characters, the minute the last two characters.
func sliceClock(field string, line int) (hour, minute string, err error) {
	stripped := strings.TrimLeft(field, " ")
	if len(stripped) < 4 {
		return "", "", &MalformedRecordError{
			Line:   line,
			Field:  "time",
			Value:  field,
			Reason: "time must be 4 digits (HHMM)",
		}
	}
	return stripped[0:2], field[len(field)-2:], nil
}

// parseHemisphere parses a coordinate field like " 28.0N" or " 94.8W": the
// leading number is the magnitude, the trailing letter the hemisphere, and
// the southern/western hemisphere negates.
func parseHemisphere(field, name string, negating byte, line int) (float64, error) {
	if len(field) < 2 {
		return 0, &MalformedRecordError{
			Line:   line,
			Field:  name,
			Value:  field,
			Reason: "coordinate too short",
		}
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(field[:len(field)-1]), 64)
	if err != nil {
		return 0, &MalformedRecordError{
			Line:   line,
			Field:  name,
			Value:  field,
			Reason: "not a decimal number",
			Err:    err,
		}
	}
	if field[len(field)-1] == negating {
		v = -v
	}
	return v, nil
}

func lastChars(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[len(s)-n:]
}
