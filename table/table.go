// Package table turns forecast output into the display table shown to users and its CSV
// download.
package table

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidHorizon    = errors.New("horizon must be at least one day")
	ErrInsufficientData  = errors.New("not enough forecast records for the requested horizon")
	ErrSeriesLenMismatch = errors.New("forecast series have different lengths")
)

// DateLayout is the zero padded day-month-year layout of the date column
const DateLayout = "02-01-2006"

// EstimatePlaces is the number of decimal places estimates are rounded to
const EstimatePlaces = 2

// Labels are the display names of the two table columns
type Labels struct {
	Date     string `json:"date"`
	Estimate string `json:"estimate"`
}

var (
	DefaultLabels = Labels{Date: "Data (Dia/Mês/Ano)", Estimate: "O3 (ug/m3)"}
	EnglishLabels = Labels{Date: "Date (Day/Month/Year)", Estimate: "O3 (µg/m³)"}
)

// Record is a single forecast day. Lower and Upper bound the estimate but are not displayed.
type Record struct {
	Date     time.Time
	Estimate float64
	Lower    float64
	Upper    float64
}

// NewRecords zips aligned forecast series into records
func NewRecords(t []time.Time, estimate, lower, upper []float64) ([]Record, error) {
	if len(estimate) != len(t) || len(lower) != len(t) || len(upper) != len(t) {
		return nil, fmt.Errorf("%d times, %d estimates, %d lower, %d upper, %w",
			len(t), len(estimate), len(lower), len(upper), ErrSeriesLenMismatch)
	}
	records := make([]Record, 0, len(t))
	for i := range t {
		records = append(records, Record{
			Date:     t[i],
			Estimate: estimate[i],
			Lower:    lower[i],
			Upper:    upper[i],
		})
	}
	return records, nil
}

// Row is one line of the display table
type Row struct {
	Index    int
	Date     string
	Estimate float64
}

// EstimateText renders the estimate with exactly two decimals
func (r Row) EstimateText() string {
	return strconv.FormatFloat(r.Estimate, 'f', EstimatePlaces, 64)
}

// Table is the display view of the last N forecast records
type Table struct {
	Labels Labels
	Rows   []Row
}

// Len returns the number of rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Formatter builds display tables. When Cutoff is set only records strictly after it count
// towards the requested horizon.
type Formatter struct {
	Labels Labels
	Cutoff time.Time
}

// NewFormatter returns a formatter using the default labels
func NewFormatter(cutoff time.Time) Formatter {
	return Formatter{Labels: DefaultLabels, Cutoff: cutoff}
}

// Format keeps the last n records, formats their dates, rounds their estimates and indexes the
// rows from 0. The input records are not modified.
func (f Formatter) Format(records []Record, n int) (*Table, error) {
	if n < 1 {
		return nil, fmt.Errorf("%d days, %w", n, ErrInvalidHorizon)
	}
	if len(records) < n {
		return nil, fmt.Errorf("%d records for %d days, %w", len(records), n, ErrInsufficientData)
	}

	tail := records[len(records)-n:]
	if !f.Cutoff.IsZero() && !tail[0].Date.After(f.Cutoff) {
		return nil, fmt.Errorf("%d days after %s is less than %d, %w",
			countAfter(records, f.Cutoff), f.Cutoff.Format(DateLayout), n, ErrInsufficientData)
	}

	labels := f.Labels
	if labels == (Labels{}) {
		labels = DefaultLabels
	}
	tbl := &Table{
		Labels: labels,
		Rows:   make([]Row, 0, n),
	}
	for i, rec := range tail {
		tbl.Rows = append(tbl.Rows, Row{
			Index:    i,
			Date:     rec.Date.Format(DateLayout),
			Estimate: Round(rec.Estimate, EstimatePlaces),
		})
	}
	return tbl, nil
}

func countAfter(records []Record, cutoff time.Time) int {
	var cnt int
	for _, rec := range records {
		if rec.Date.After(cutoff) {
			cnt++
		}
	}
	return cnt
}

// Round rounds v to the given decimal places by scaling, rounding half to even and scaling
// back. 41.005 scales to exactly 4100.5 and becomes 41.00, 0.125 becomes 0.12 and 0.375
// becomes 0.38. Negative zero is returned as zero.
func Round(v float64, places int) float64 {
	scale := math.Pow10(places)
	scaled := v * scale
	if math.IsInf(scaled, 0) || math.IsNaN(scaled) {
		return v
	}
	r := math.RoundToEven(scaled) / scale
	if r == 0 {
		return 0
	}
	return r
}

// FormatNumber writes the shortest decimal text that parses back to v, keeping at least one
// decimal digit so 41 is written as 41.0
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".NI") {
		s += ".0"
	}
	return s
}

// WriteCSV writes the header and one line per row with \n line endings and no index column
func (t *Table) WriteCSV(w io.Writer) error {
	csvWriter := csv.NewWriter(w)
	if err := csvWriter.Write([]string{t.Labels.Date, t.Labels.Estimate}); err != nil {
		return fmt.Errorf("unable to write csv header, %w", err)
	}
	for _, row := range t.Rows {
		if err := csvWriter.Write([]string{row.Date, FormatNumber(row.Estimate)}); err != nil {
			return fmt.Errorf("unable to write csv row %d, %w", row.Index, err)
		}
	}
	csvWriter.Flush()
	return csvWriter.Error()
}

// CSV returns the UTF-8 encoded csv bytes of the table
func (t *Table) CSV() ([]byte, error) {
	var buf bytes.Buffer
	if err := t.WriteCSV(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
