package main

import (
	"path/filepath"
	"testing"

	forecaster "github.com/aouyang1/ozone-forecaster"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSample(t *testing.T) {
	dir := t.TempDir()

	testData := map[string]struct {
		path   string
		days   int
		expErr error
	}{
		"one year": {
			path: filepath.Join(dir, "modelo_O3_prophet.json"),
			days: 365,
		},
		"no history": {
			path:   filepath.Join(dir, "empty.json"),
			days:   0,
			expErr: errInvalidSampleDays,
		},
	}

	for name, td := range testData {
		t.Run(name, func(t *testing.T) {
			err := writeSample(td.path, td.days)
			if td.expErr != nil {
				assert.ErrorIs(t, err, td.expErr)
				return
			}
			require.NoError(t, err)

			m, err := forecaster.LoadModel(td.path)
			require.NoError(t, err)
			assert.Equal(t, td.days, m.History.Len())

			f, err := forecaster.NewFromModel(m)
			require.NoError(t, err)
			future, err := f.MakeFuture(7)
			require.NoError(t, err)
			res, err := f.Predict(future)
			require.NoError(t, err)
			assert.Equal(t, td.days+7, res.Len())
		})
	}

	err := writeSample(filepath.Join(dir, "missing", "model.json"), 10)
	assert.Error(t, err)
}
