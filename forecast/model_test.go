package forecast

import (
	"bytes"
	"testing"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelJSON(t *testing.T) {
	m := testModel()
	out, err := json.Marshal(m)
	require.NoError(t, err)

	var decoded Model
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.True(t, m.TrainStartTime.Equal(decoded.TrainStartTime))
	assert.True(t, m.TrainEndTime.Equal(decoded.TrainEndTime))
	assert.Equal(t, m.Weights, decoded.Weights)
	assert.Equal(t, *m.Scores, *decoded.Scores)

	f, err := NewFromModel(decoded)
	require.NoError(t, err)
	res, _, err := f.Predict([]time.Time{testTrainEnd})
	require.NoError(t, err)
	assert.InDelta(t, 50+2*weeklySin(testTrainEnd), res[0], 1e-9)
}

func TestFeatureWeightToFeature(t *testing.T) {
	testData := map[string]struct {
		fw       *FeatureWeight
		expected feature.Feature
		expErr   error
	}{
		"growth": {
			fw:       &FeatureWeight{Type: feature.FeatureTypeGrowth, Labels: map[string]string{"name": "linear"}},
			expected: feature.Linear(),
		},
		"changepoint": {
			fw: &FeatureWeight{
				Type:   feature.FeatureTypeChangepoint,
				Labels: map[string]string{"name": "covid", "changepoint_component": "slope"},
			},
			expected: feature.NewChangepoint("covid", feature.ChangepointCompSlope),
		},
		"seasonality": {
			fw: &FeatureWeight{
				Type:   feature.FeatureTypeSeasonality,
				Labels: map[string]string{"name": "epoch_yearly", "fourier_component": "cos", "order": "4"},
			},
			expected: feature.NewSeasonality("epoch_yearly", feature.FourierCompCos, 4),
		},
		"event": {
			fw:       &FeatureWeight{Type: feature.FeatureTypeEvent, Labels: map[string]string{"name": "carnaval"}},
			expected: feature.NewEvent("carnaval"),
		},
		"nil": {
			expErr: ErrUnknownFeatureType,
		},
		"unknown": {
			fw:     &FeatureWeight{Type: "lag", Labels: map[string]string{"name": "1"}},
			expErr: ErrUnknownFeatureType,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			feat, err := td.fw.ToFeature()
			if td.expErr != nil {
				assert.ErrorIs(t, err, td.expErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, td.expected, feat)
		})
	}
}

func TestModelTablePrint(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, testModel().TablePrint(&buf, "", "  "))

	out := buf.String()
	assert.Contains(t, out, "Forecast:\n")
	assert.Contains(t, out, "  Training Window: 2023-01-01 to 2023-01-11\n")
	assert.Contains(t, out, "  Growth: linear    Log Transform: false\n")
	assert.Contains(t, out, "  MAPE: 0.100    MSE: 4.000    RMSE: 2.000    R2: 0.800\n")
	assert.Contains(t, out, "Weights:\n")
	assert.Contains(t, out, `{"name":"natal"}`)
	assert.Contains(t, out, "40.000")
}
