// Package domain models NOAA HURDAT2 best-track data.
//
// # Data Source
//
// HURDAT2 ("hurricane database, second generation") files are published by the
// National Hurricane Center at https://www.nhc.noaa.gov/data/, one file per
// ocean basin (Atlantic, Northeast/Central Pacific). Each file interleaves two
// line shapes:
//
//	AL092023,          IDA,     39,
//	20230826, 1200,  , TS,  16.5N,  78.9W,  35, 1006,  60, ...
//
// A line that splits into exactly 4 comma fields is a storm header; every
// other line is an observation belonging to the most recent header. Headers
// carry an 8-character event id (<basin:2><storm number:2><year:4>), the storm
// name padded with leading spaces, and the number of observation lines that
// follow.
//
// # Observation Conventions
//
// Observations are 20 fixed-position comma fields:
//
//	date     YYYYMMDD in field 0
//	time     HHMM UTC in field 1 (synoptic hours plus landfall specials)
//	record   single-letter record identifier in field 2, blank when routine
//	status   two-letter system status in field 3
//	lat/lon  decimal degrees with a trailing hemisphere letter, e.g. "28.0N",
//	         " 94.8W"; S and W hemispheres negate the value
//	wind     maximum sustained wind in knots, -99 when not recorded
//	pressure minimum central pressure in mb, -999 when not recorded
//	radii    twelve maximum wind extents in nautical miles: three thresholds
//	         (34, 50, 64 kt) by four quadrants (NE, SE, SW, NW), -999 when
//	         not recorded
//
// Sentinels are reserved placeholders, not measurements: -99 and -999 decode
// to nil, never to zero.
//
// # Code Tables
//
// The record identifier and status columns are coded. Both tables are fixed
// process-wide constants exported as reference rows for the storage layer; see
// [DecodeIdentifier] and [DecodeStatus]. A handful of two-letter statuses that
// appear only in the Pacific file (ET, TY, ST, PT) are documented as invalid
// upstream and decode to missing rather than to a guessed classification.
//
// # Geometry
//
// Each observation yields a POINT location. Each storm yields a path: a POINT
// when it has a single observation, otherwise a LINESTRING through every
// observation coordinate in chronological order. Path vertices carry the wind
// and pressure values as trailing measure tokens (NULL when missing) so that
// consumers parsing the path string keep columnar correspondence with the
// observation table.
package domain
