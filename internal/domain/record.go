package domain

import "time"

// Header is a raw storm header line as extracted from a HURDAT2 file.
// StormNum and Year duplicate slices of EventID and exist only to carry the
// parsed pieces through extraction; they are not part of the output model.
type Header struct {
	EventID            string
	Basin              string
	StormNum           string
	Year               string
	Name               string
	DeclaredPointCount int

	// Line is the 1-based source line number, kept for diagnostics.
	Line int
}

// RawObservation is one observation line after positional field extraction,
// before code decoding and sentinel conversion. Integer fields still hold the
// -99/-999 sentinels at this stage.
type RawObservation struct {
	EventID    string
	Year       string
	Month      string
	Day        string
	Hour       string
	Minute     string
	Identifier string // raw single-letter record identifier code
	Status     string // raw two-letter status code
	Latitude   float64
	Longitude  float64

	MaxWindKnots  int
	MinPressureMB int

	NE34 int
	SE34 int
	SW34 int
	NW34 int
	NE50 int
	SE50 int
	SW50 int
	NW50 int
	NE64 int
	SE64 int
	SW64 int
	NW64 int

	Line int
}

// Storm is the normalized per-storm summary record.
type Storm struct {
	EventID   string       `db:"event_id" json:"event_id"`
	Basin     string       `db:"basin" json:"basin"`
	Name      string       `db:"name" json:"name"`
	StartTime time.Time    `db:"start_time" json:"start_time"`
	Path      PathGeometry `json:"path"`
}

// Observation is the normalized per-report record. Nil pointers mean the
// source carried a missing-value sentinel (or a blank/invalid code).
type Observation struct {
	EventID    string    `db:"event_id" json:"event_id"`
	PointTime  time.Time `db:"point_time" json:"point_time"`
	Identifier *int      `db:"identifier" json:"identifier"`
	Status     *int      `db:"status" json:"status"`
	Latitude   float64   `db:"latitude" json:"latitude"`
	Longitude  float64   `db:"longitude" json:"longitude"`
	Location   Point     `json:"location"`

	MaxWindKnots  *int `db:"max_wind_knots" json:"max_wind_knots"`
	MinPressureMB *int `db:"min_pressure_mb" json:"min_pressure_mb"`

	NE34 *int `db:"ne_34kt_radii_max_nm" json:"ne_34kt_radii_max_nm"`
	SE34 *int `db:"se_34kt_radii_max_nm" json:"se_34kt_radii_max_nm"`
	SW34 *int `db:"sw_34kt_radii_max_nm" json:"sw_34kt_radii_max_nm"`
	NW34 *int `db:"nw_34kt_radii_max_nm" json:"nw_34kt_radii_max_nm"`
	NE50 *int `db:"ne_50kt_radii_max_nm" json:"ne_50kt_radii_max_nm"`
	SE50 *int `db:"se_50kt_radii_max_nm" json:"se_50kt_radii_max_nm"`
	SW50 *int `db:"sw_50kt_radii_max_nm" json:"sw_50kt_radii_max_nm"`
	NW50 *int `db:"nw_50kt_radii_max_nm" json:"nw_50kt_radii_max_nm"`
	NE64 *int `db:"ne_64kt_radii_max_nm" json:"ne_64kt_radii_max_nm"`
	SE64 *int `db:"se_64kt_radii_max_nm" json:"se_64kt_radii_max_nm"`
	SW64 *int `db:"sw_64kt_radii_max_nm" json:"sw_64kt_radii_max_nm"`
	NW64 *int `db:"nw_64kt_radii_max_nm" json:"nw_64kt_radii_max_nm"`
}

// CodeRow is one reference-table entry for a coded column.
type CodeRow struct {
	CodeID      int    `db:"code_id" json:"code_id"`
	Description string `db:"description" json:"description"`
}
