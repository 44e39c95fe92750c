package timedataset

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrNoTrainingData     = errors.New("no training data")
	ErrNonMontonic        = errors.New("time feature is not monotonic")
	ErrDatasetLenMismatch = errors.New("time feature has a different length than observations")
)

// TimeDataset represents a time series storing a slice of time points and values.
// Both must be of the same length.
type TimeDataset struct {
	T []time.Time `json:"t"`
	Y []float64   `json:"y"`
}

// NewUnivariateDataset returns an instance of a TimeDataset given a time and value slice.
// The inputs are copied.
func NewUnivariateDataset(t []time.Time, y []float64) (*TimeDataset, error) {
	td := &TimeDataset{T: t, Y: y}
	if err := td.Validate(); err != nil {
		return nil, err
	}
	return td.Copy(), nil
}

// Validate checks the dataset is non-empty, aligned and strictly increasing in time
func (td *TimeDataset) Validate() error {
	if td == nil || len(td.Y) == 0 {
		return ErrNoTrainingData
	}
	if len(td.T) != len(td.Y) {
		return fmt.Errorf(
			"time feature has length of %d, but values has a length of %d, %w",
			len(td.T), len(td.Y), ErrDatasetLenMismatch,
		)
	}

	for i := 1; i < len(td.T); i++ {
		if !td.T[i].After(td.T[i-1]) {
			return fmt.Errorf("non-monotonic at %d, %w", i, ErrNonMontonic)
		}
	}
	return nil
}

// Len returns the number of observations
func (td *TimeDataset) Len() int {
	if td == nil {
		return 0
	}
	return len(td.Y)
}

func (td *TimeDataset) Copy() *TimeDataset {
	tSeries := make([]time.Time, len(td.T))
	ySeries := make([]float64, len(td.Y))
	copy(tSeries, td.T)
	copy(ySeries, td.Y)
	return &TimeDataset{
		T: tSeries,
		Y: ySeries,
	}
}
