package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func normalizeSample(t *testing.T, lines ...string) ([]Storm, []Observation) {
	t.Helper()
	headers, raws, err := Extract(sampleFile(lines...))
	require.NoError(t, err)
	storms, observations, err := Normalize(headers, raws)
	require.NoError(t, err)
	return storms, observations
}

func TestNormalize_SingleObservationStorm(t *testing.T) {
	storms, observations := normalizeSample(t, idaHeader, idaLanding)
	require.Len(t, storms, 1)
	require.Len(t, observations, 1)

	s := storms[0]
	assert.Equal(t, "AL092023", s.EventID)
	assert.Equal(t, "AL", s.Basin)
	assert.Equal(t, "IDA", s.Name)
	assert.Equal(t, time.Date(2023, 8, 26, 12, 0, 0, 0, time.UTC), s.StartTime)

	require.IsType(t, PathPoint{}, s.Path)
	assert.Equal(t, "POINT(-78.9 16.5 65 985)", s.Path.WKT())

	o := observations[0]
	assert.Equal(t, time.Date(2023, 8, 26, 12, 0, 0, 0, time.UTC), o.PointTime)
	assert.Equal(t, intPtr(IdentifierLandfall), o.Identifier)
	assert.Equal(t, intPtr(StatusHurricane), o.Status)
	assert.Equal(t, 16.5, o.Latitude)
	assert.Equal(t, -78.9, o.Longitude)
	assert.Equal(t, "POINT(-78.9 16.5)", o.Location.WKT())
	assert.Equal(t, intPtr(65), o.MaxWindKnots)
	assert.Equal(t, intPtr(985), o.MinPressureMB)
	assert.Equal(t, intPtr(60), o.NE34)
	assert.Equal(t, intPtr(10), o.NW64)
}

func TestNormalize_MultiObservationStorm(t *testing.T) {
	storms, observations := normalizeSample(t, unnamedHeader, unnamedObs1, unnamedObs2)
	require.Len(t, storms, 1)
	require.Len(t, observations, 2)

	s := storms[0]
	require.IsType(t, PathLine{}, s.Path)
	line := s.Path.(PathLine)
	assert.Len(t, line.Vertices, 2)
	assert.Equal(t, "LINESTRING(-105.5 12.4 30 1007,-106 12.9 35 NULL)", s.Path.WKT())
	assert.Equal(t, observations[0].PointTime, s.StartTime)
}

func TestNormalize_Sentinels(t *testing.T) {
	_, observations := normalizeSample(t, unnamedHeader, unnamedObs1, unnamedObs2)

	first, second := observations[0], observations[1]

	// -999 pressure/radii and -99 wind are missing, never numeric zero.
	assert.Equal(t, intPtr(30), first.MaxWindKnots)
	assert.Equal(t, intPtr(1007), first.MinPressureMB)
	assert.Nil(t, first.NE34)
	assert.Nil(t, first.SW64)

	assert.Nil(t, second.MaxWindKnots)
	assert.Nil(t, second.MinPressureMB)
}

func TestNormalize_CodeDecoding(t *testing.T) {
	_, observations := normalizeSample(t, unnamedHeader, unnamedObs1, unnamedObs2)

	// blank identifier is missing, "S" is a status change
	assert.Nil(t, observations[0].Identifier)
	assert.Equal(t, intPtr(IdentifierStatusChange), observations[1].Identifier)

	assert.Equal(t, intPtr(StatusTropicalDepression), observations[0].Status)
	assert.Equal(t, intPtr(StatusTropicalStorm), observations[1].Status)
}

func TestNormalize_InvalidPacificStatusIsMissing(t *testing.T) {
	line := strings.Replace(unnamedObs1, " TD,", " ET,", 1)
	_, observations := normalizeSample(t, strings.Replace(unnamedHeader, "      2,", "      1,", 1), line)

	require.Len(t, observations, 1)
	assert.Nil(t, observations[0].Status)
}

func TestNormalize_UnknownStatusCode(t *testing.T) {
	headers, raws, err := Extract(sampleFile(
		strings.Replace(unnamedHeader, "      2,", "      1,", 1),
		strings.Replace(unnamedObs1, " TD,", " ZZ,", 1),
	))
	require.NoError(t, err)

	_, _, err = Normalize(headers, raws)
	require.Error(t, err)

	var unknown *UnknownCodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "status", unknown.Kind)
	assert.Equal(t, "ZZ", unknown.Code)
	assert.Equal(t, "EP052019", unknown.EventID)
}

func TestNormalize_UnknownIdentifierCode(t *testing.T) {
	headers, raws, err := Extract(sampleFile(
		idaHeader,
		strings.Replace(idaLanding, " L,", " Q,", 1),
	))
	require.NoError(t, err)

	_, _, err = Normalize(headers, raws)
	require.Error(t, err)

	var unknown *UnknownCodeError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "identifier", unknown.Kind)
}

func TestNormalize_InvalidTimestamp(t *testing.T) {
	headers, raws, err := Extract(sampleFile(
		idaHeader,
		strings.Replace(idaLanding, "20230826,", "20231341,", 1),
	))
	require.NoError(t, err)

	_, _, err = Normalize(headers, raws)
	require.Error(t, err)

	var tsErr *TimestampError
	require.ErrorAs(t, err, &tsErr)
	assert.Equal(t, "AL092023", tsErr.EventID)
	assert.Contains(t, tsErr.Value, "2023-13-41")
}

func TestNormalize_DeclaredCountMismatch(t *testing.T) {
	headers, raws, err := Extract(sampleFile(unnamedHeader, unnamedObs1))
	require.NoError(t, err)

	_, _, err = Normalize(headers, raws)
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "declares 2 observations, found 1")
}

func TestNormalize_StormWithoutObservations(t *testing.T) {
	headers, raws, err := Extract(sampleFile(idaHeader, idaLanding, unnamedHeader))
	require.NoError(t, err)

	_, _, err = Normalize(headers, raws)
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "no observations")
}

func TestNormalize_DuplicateEventID(t *testing.T) {
	headers, raws, err := Extract(sampleFile(idaHeader, idaLanding, idaHeader, idaLanding))
	require.NoError(t, err)

	_, _, err = Normalize(headers, raws)
	require.Error(t, err)

	var malformed *MalformedRecordError
	require.ErrorAs(t, err, &malformed)
	assert.Contains(t, err.Error(), "duplicate event id")
}

func TestNormalize_Idempotent(t *testing.T) {
	run := func() ([]Storm, []Observation) {
		return normalizeSample(t,
			idaHeader, idaLanding,
			unnamedHeader, unnamedObs1, unnamedObs2,
		)
	}

	storms1, observations1 := run()
	storms2, observations2 := run()

	assert.Empty(t, cmp.Diff(storms1, storms2))
	assert.Empty(t, cmp.Diff(observations1, observations2))
}

func TestNormalize_OrderPreserved(t *testing.T) {
	_, observations := normalizeSample(t, unnamedHeader, unnamedObs1, unnamedObs2)

	require.Len(t, observations, 2)
	assert.True(t, observations[0].PointTime.Before(observations[1].PointTime))
}
