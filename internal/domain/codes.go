package domain

// Record identifier and status code points, in reference-table order.
const (
	IdentifierClosestApproach = 0
	IdentifierGenesis         = 1
	IdentifierIntensityPeak   = 2
	IdentifierLandfall        = 3
	IdentifierMinPressure     = 4
	IdentifierRapidChange     = 5
	IdentifierStatusChange    = 6
	IdentifierTrackDetail     = 7
	IdentifierMaxWind         = 8

	StatusTropicalDepression    = 0
	StatusTropicalStorm         = 1
	StatusHurricane             = 2
	StatusExtratropical         = 3
	StatusSubtropicalDepression = 4
	StatusSubtropicalStorm      = 5
	StatusLow                   = 6
	StatusTropicalWave          = 7
	StatusDisturbance           = 8
)

var recordIdentifiers = map[string]int{
	"C": IdentifierClosestApproach,
	"G": IdentifierGenesis,
	"I": IdentifierIntensityPeak,
	"L": IdentifierLandfall,
	"P": IdentifierMinPressure,
	"R": IdentifierRapidChange,
	"S": IdentifierStatusChange,
	"T": IdentifierTrackDetail,
	"W": IdentifierMaxWind,
}

var identifierDescriptions = []string{
	IdentifierClosestApproach: "closest approach to a coast, not followed by a landfall",
	IdentifierGenesis:         "genesis",
	IdentifierIntensityPeak:   "an intensity peak in terms of both pressure and wind",
	IdentifierLandfall:        "landfall",
	IdentifierMinPressure:     "minimum central pressure",
	IdentifierRapidChange:     "additional detail on intensity of cyclone when rapid changes are underway",
	IdentifierStatusChange:    "change in status of the system",
	IdentifierTrackDetail:     "provides additional detail on the track (position) of the cyclone",
	IdentifierMaxWind:         "maximum sustained wind speed",
}

var stormStatuses = map[string]int{
	"TD": StatusTropicalDepression,
	"TS": StatusTropicalStorm,
	"HU": StatusHurricane,
	"EX": StatusExtratropical,
	"SD": StatusSubtropicalDepression,
	"SS": StatusSubtropicalStorm,
	"LO": StatusLow,
	"WV": StatusTropicalWave,
	"DB": StatusDisturbance,
}

var statusDescriptions = []string{
	StatusTropicalDepression:    "tropical cyclone of tropical depression intensity (<34 knots)",
	StatusTropicalStorm:         "tropical cyclone of tropical storm intensity (34-63 knots)",
	StatusHurricane:             "tropical cyclone of hurricane intensity (>= 64 knots)",
	StatusExtratropical:         "extratropical cyclone of any intensity",
	StatusSubtropicalDepression: "subtropical cyclone of subtropical depression intensity (<34 knots)",
	StatusSubtropicalStorm:      "subtropical cyclone of subtropical storm intensity (>= 34 knots)",
	StatusLow:                   "low that is neither a tropical cyclone, a subtropical cyclone, nor an extratropical cyclone",
	StatusTropicalWave:          "a tropical wave",
	StatusDisturbance:           "disturbance of any intensity",
}

// statusMissing lists the status codes that decode to missing: the blank
// column plus four codes the NHC documents as invalid Pacific-file artifacts.
// ET may mean EX and ST may mean SS, but guessing would fabricate data.
var statusMissing = map[string]bool{
	"":   true,
	"  ": true,
	"ET": true,
	"TY": true,
	"ST": true,
	"PT": true,
}

// DecodeIdentifier maps a raw record-identifier code to its code point.
// A blank code returns (nil, nil); an unknown code returns *UnknownCodeError.
func DecodeIdentifier(code string) (*int, error) {
	if code == "" || code == " " {
		return nil, nil
	}
	id, ok := recordIdentifiers[code]
	if !ok {
		return nil, &UnknownCodeError{Kind: "identifier", Code: code}
	}
	return &id, nil
}

// DecodeStatus maps a raw status code to its code point. Blank and documented
// invalid codes return (nil, nil); anything else unknown returns
// *UnknownCodeError.
func DecodeStatus(code string) (*int, error) {
	if statusMissing[code] {
		return nil, nil
	}
	id, ok := stormStatuses[code]
	if !ok {
		return nil, &UnknownCodeError{Kind: "status", Code: code}
	}
	return &id, nil
}

// IdentifierTable returns the record-identifier reference rows in code order.
func IdentifierTable() []CodeRow {
	return codeRows(identifierDescriptions)
}

// StatusTable returns the status reference rows in code order.
func StatusTable() []CodeRow {
	return codeRows(statusDescriptions)
}

func codeRows(descriptions []string) []CodeRow {
	rows := make([]CodeRow, len(descriptions))
	for id, desc := range descriptions {
		rows[id] = CodeRow{CodeID: id, Description: desc}
	}
	return rows
}
