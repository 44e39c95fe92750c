package forecaster

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/aouyang1/ozone-forecaster/forecast"
	"github.com/aouyang1/ozone-forecaster/timedataset"
	"github.com/goccy/go-json"
)

var (
	ErrNoOptionsInModel = errors.New("no options set in model")
	ErrNonDailyHistory  = errors.New("history is not at a daily frequency")
)

// Model is the serialized artifact of a fitted forecaster. The series model produces the point
// estimate while the uncertainty model produces the half width of the band around it. The
// history is optional and is used to extend forecasts back over the observed period.
type Model struct {
	Options     *Options                 `json:"options"`
	Series      forecast.Model           `json:"series_model"`
	Uncertainty forecast.Model           `json:"uncertainty_model"`
	History     *timedataset.TimeDataset `json:"history,omitempty"`
}

// LoadModel reads and decodes a model artifact from disk
func LoadModel(path string) (Model, error) {
	file, err := os.Open(path)
	if err != nil {
		return Model{}, fmt.Errorf("unable to open model file %s, %w", path, err)
	}
	defer file.Close()

	m, err := ReadModel(file)
	if err != nil {
		return Model{}, fmt.Errorf("unable to load model file %s, %w", path, err)
	}
	return m, nil
}

// ReadModel decodes and validates a model artifact
func ReadModel(r io.Reader) (Model, error) {
	var m Model
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return Model{}, fmt.Errorf("unable to decode model, %w", err)
	}
	if err := m.Validate(); err != nil {
		return Model{}, err
	}
	return m, nil
}

// WriteModel encodes the model artifact as indented json
func WriteModel(w io.Writer, m Model) error {
	bytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("unable to encode model, %w", err)
	}
	_, err = w.Write(bytes)
	return err
}

// Validate checks the model can be used for inference
func (m Model) Validate() error {
	if m.Options == nil {
		return ErrNoOptionsInModel
	}
	if m.Series.Options == nil || m.Uncertainty.Options == nil {
		return forecast.ErrNoOptions
	}
	if m.Series.TrainEndTime.IsZero() || m.Uncertainty.TrainEndTime.IsZero() {
		return forecast.ErrUntrainedForecast
	}
	if m.History == nil {
		return nil
	}
	if err := m.History.Validate(); err != nil {
		return fmt.Errorf("invalid history, %w", err)
	}
	if !timedataset.TimeSlice(m.History.T).IsDaily() {
		return ErrNonDailyHistory
	}
	return nil
}

// TablePrint writes a human readable summary of the series and uncertainty models
func (m Model) TablePrint(w io.Writer) error {
	prefix := ""
	indent := "  "
	if _, err := fmt.Fprintf(w, "Forecaster:\n"); err != nil {
		return err
	}
	if m.Options != nil {
		if err := m.Options.TablePrint(w, prefix, indent, 1); err != nil {
			return err
		}
	}
	if m.History != nil && m.History.Len() > 0 {
		ts := timedataset.TimeSlice(m.History.T)
		if _, err := fmt.Fprintf(w, "%sHistory: %d points from %s to %s\n", indent,
			m.History.Len(), ts.StartTime().Format("2006-01-02"), ts.EndTime().Format("2006-01-02")); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "%sSeries:\n", indent); err != nil {
		return err
	}
	if err := m.Series.TablePrint(w, indent+indent, indent); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "%sUncertainty:\n", indent); err != nil {
		return err
	}
	return m.Uncertainty.TablePrint(w, indent+indent, indent)
}
