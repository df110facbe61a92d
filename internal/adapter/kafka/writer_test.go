package kafka

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/good-kiwi/hurdat2-etl/internal/domain"
)

func intPtr(v int) *int { return &v }

func TestSerializeStorm(t *testing.T) {
	start := time.Date(2023, 8, 26, 12, 0, 0, 0, time.UTC)
	storm := domain.Storm{
		EventID:   "AL092023",
		Basin:     "AL",
		Name:      "IDA",
		StartTime: start,
		Path: domain.PathPoint{Vertex: domain.TrackVertex{
			Lon: -78.9, Lat: 16.5, MaxWindKnots: intPtr(65), MinPressureMB: intPtr(985),
		}},
	}

	msg, err := serializeStorm(storm)
	require.NoError(t, err)

	assert.Equal(t, []byte("AL092023"), msg.Key)
	assert.Contains(t, string(msg.Value), `"path":"POINT(-78.9 16.5 65 985)"`)
	assert.Contains(t, string(msg.Value), `"name":"IDA"`)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, "record_type", msg.Headers[0].Key)
	assert.Equal(t, []byte("storm"), msg.Headers[0].Value)
}

func TestSerializeObservation(t *testing.T) {
	obs := domain.Observation{
		EventID:      "AL092023",
		PointTime:    time.Date(2023, 8, 26, 12, 0, 0, 0, time.UTC),
		Status:       intPtr(domain.StatusHurricane),
		Latitude:     16.5,
		Longitude:    -78.9,
		Location:     domain.Point{Lon: -78.9, Lat: 16.5},
		MaxWindKnots: intPtr(65),
	}

	msg, err := serializeObservation(obs)
	require.NoError(t, err)

	assert.Equal(t, []byte("AL092023"), msg.Key)
	assert.Contains(t, string(msg.Value), `"max_wind_knots":65`)
	// missing sentinel fields serialize as explicit nulls, not zeros
	assert.Contains(t, string(msg.Value), `"min_pressure_mb":null`)
	require.Len(t, msg.Headers, 1)
	assert.Equal(t, []byte("observation"), msg.Headers[0].Value)
}

func TestSerializeCodeRow(t *testing.T) {
	row := domain.CodeRow{CodeID: 3, Description: "landfall"}

	msg, err := serializeCodeRow(row, recordTypeIdentifier)
	require.NoError(t, err)

	assert.Equal(t, []byte("3"), msg.Key)
	assert.JSONEq(t, `{"code_id":3,"description":"landfall"}`, string(msg.Value))
	assert.Equal(t, []byte("identifier_code"), msg.Headers[0].Value)
}
