package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestampLocalWallClock(t *testing.T) {
	ts, err := ParseTimestamp("2025-03-01 18:30:05")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 3, 1, 18, 30, 5, 0, time.Local), ts)
}

func TestParseTimestampRFC3339(t *testing.T) {
	ts, err := ParseTimestamp("2025-03-01T18:30:05Z")
	require.NoError(t, err)

	assert.True(t, ts.Equal(time.Date(2025, 3, 1, 18, 30, 5, 0, time.UTC)))
}

func TestParseTimestampRejectsGarbage(t *testing.T) {
	_, err := ParseTimestamp("yesterday")
	assert.Error(t, err)

	_, err = ParseTimestamp("")
	assert.Error(t, err)
}

func TestMoodRecordsFromBackend(t *testing.T) {
	body := `[
		{"id": 1, "user_id": 1, "score": 0.5, "magnitude": 0.6, "timestamp": "2025-03-01 08:00:00"},
		{"id": 2, "user_id": 1, "score": -0.25, "timestamp": "2025-03-02T09:15:00"}
	]`

	var records []MoodRecord
	require.NoError(t, json.Unmarshal([]byte(body), &records))

	require.Len(t, records, 2)
	assert.Equal(t, 0.5, records[0].Score)
	require.NotNil(t, records[0].Magnitude)
	assert.Equal(t, 0.6, *records[0].Magnitude)
	assert.Nil(t, records[1].Magnitude)
	assert.Equal(t, time.Date(2025, 3, 2, 9, 15, 0, 0, time.Local), records[1].Timestamp)
}
