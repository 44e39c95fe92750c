package feature

import (
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthString(t *testing.T) {
	feat := NewGrowth("linear")
	expected := "growth_linear"
	assert.Equal(t, expected, feat.String())
}

func TestGrowthGet(t *testing.T) {
	feat := NewGrowth("linear")

	testData := map[string]struct {
		label     string
		expVal    string
		expExists bool
	}{
		"unknown": {
			label: "unknown",
		},
		"capitalized": {
			label:     "NAME",
			expVal:    "linear",
			expExists: true,
		},
		"exact match": {
			label:     "name",
			expVal:    "linear",
			expExists: true,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			val, exists := feat.Get(td.label)
			assert.Equal(t, td.expExists, exists, "exists")
			assert.Equal(t, td.expVal, val, "value")
		})
	}
}

func TestGrowthUnmarshalJSON(t *testing.T) {
	feat := Intercept()
	out, err := json.Marshal(feat.Decode())
	require.NoError(t, err)

	var nextFeat Growth
	require.NoError(t, json.Unmarshal(out, &nextFeat))

	assert.Equal(t, feat, &nextFeat)
}

func TestGrowthGenerate(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 0, 4)
	tSeries := []time.Time{start, start.AddDate(0, 0, 2), end, end.AddDate(0, 0, 2)}
	epoch := NewTime("epoch").Generate(tSeries)

	testData := map[string]struct {
		growth   *Growth
		start    time.Time
		end      time.Time
		expected []float64
	}{
		"intercept": {
			growth:   Intercept(),
			start:    start,
			end:      end,
			expected: []float64{1, 1, 1, 1},
		},
		"linear": {
			growth:   Linear(),
			start:    start,
			end:      end,
			expected: []float64{0, 0.5, 1, 1.5},
		},
		"quadratic": {
			growth:   Quadratic(),
			start:    start,
			end:      end,
			expected: []float64{0, 0.25, 1, 2.25},
		},
		"unknown growth": {
			growth: NewGrowth("exponential"),
			start:  start,
			end:    end,
		},
		"empty training window": {
			growth: Linear(),
			start:  start,
			end:    start,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			res := td.growth.Generate(epoch, td.start, td.end)
			if td.expected == nil {
				assert.Nil(t, res)
				return
			}
			assert.InDeltaSlice(t, td.expected, res, 1e-9)
		})
	}
}
