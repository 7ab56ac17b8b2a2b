package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		input   string
		minutes int
		wantErr bool
	}{
		{"PT2H30M", 150, false},
		{"PT45M", 45, false},
		{"PT3H", 180, false},
		{"PT", 0, false},
		{"PT0H0M", 0, false},
		{"PT12H5M", 725, false},
		{"2H30M", 0, true},
		{"PT2H30", 0, true},
		{"garbage", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			minutes, err := ParseISODuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.minutes, minutes)
			}
		})
	}
}

func TestDuration_Minutes(t *testing.T) {
	assert.Equal(t, 150, NewEncodedDuration("PT2H30M").Minutes())
	assert.Equal(t, 95, NewMinutesDuration(95).Minutes())

	// Unparseable encodings normalize to zero rather than erroring
	assert.Equal(t, 0, NewEncodedDuration("bogus").Minutes())
	assert.Equal(t, 0, Duration{}.Minutes())
}

func TestDuration_MarshalJSON_PreservesNativeEncoding(t *testing.T) {
	encoded, err := json.Marshal(NewEncodedDuration("PT2H30M"))
	require.NoError(t, err)
	assert.Equal(t, `"PT2H30M"`, string(encoded))

	minutes, err := json.Marshal(NewMinutesDuration(150))
	require.NoError(t, err)
	assert.Equal(t, `150`, string(minutes))
}

func TestDuration_UnmarshalJSON_RoundTrips(t *testing.T) {
	var fromString Duration
	require.NoError(t, json.Unmarshal([]byte(`"PT1H5M"`), &fromString))
	assert.Equal(t, DurationEncoded, fromString.Kind)
	assert.Equal(t, 65, fromString.Minutes())

	var fromNumber Duration
	require.NoError(t, json.Unmarshal([]byte(`65`), &fromNumber))
	assert.Equal(t, DurationMinutes, fromNumber.Kind)
	assert.Equal(t, 65, fromNumber.Minutes())

	var invalid Duration
	assert.Error(t, json.Unmarshal([]byte(`true`), &invalid))
}
