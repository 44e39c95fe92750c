package options

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/aouyang1/ozone-forecaster/feature"
	"github.com/aouyang1/ozone-forecaster/forecast/util"
	"github.com/rickar/cal/v2"
	"github.com/rickar/cal/v2/br"
)

var ErrUnknownHoliday = errors.New("unknown holiday")

// holidays keyed by the event name used for the model features
var holidays = map[string]*cal.Holiday{
	"ano_novo":                 br.AnoNovo,
	"carnaval":                 br.Carnaval,
	"sexta_feira_santa":        br.SextaFeiraSanta,
	"tiradentes":               br.Tiradentes,
	"dia_do_trabalho":          br.Trabalhador,
	"corpus_christi":           br.CorpusChristi,
	"independencia":            br.Independencia,
	"nossa_senhora_aparecida":  br.NossaSenhoraAparecida,
	"finados":                  br.Finados,
	"proclamacao_da_republica": br.Republica,
	"consciencia_negra":        br.ConscienciaNegra,
	"natal":                    br.Natal,
}

// HolidayNames returns the sorted names of all supported holidays
func HolidayNames() []string {
	names := make([]string, 0, len(holidays))
	for name := range holidays {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HolidayOptions models each holiday as an event spanning the holiday date padded by the
// before and after durations. An empty Names list models every supported holiday.
type HolidayOptions struct {
	Enabled   bool          `json:"enabled"`
	Names     []string      `json:"names"`
	DurBefore time.Duration `json:"duration_before"`
	DurAfter  time.Duration `json:"duration_after"`
}

func (h HolidayOptions) names() []string {
	if len(h.Names) == 0 {
		return HolidayNames()
	}
	return h.Names
}

// Validate checks every configured holiday is known
func (h HolidayOptions) Validate() error {
	if !h.Enabled {
		return nil
	}
	for _, name := range h.Names {
		if _, exists := holidays[name]; !exists {
			return fmt.Errorf("%q, %w", name, ErrUnknownHoliday)
		}
	}
	return nil
}

// Windows returns the active windows of a holiday between the start and end times. Dates are
// placed at midnight of the location of the start time.
func (h HolidayOptions) Windows(name string, start, end time.Time) ([]feature.Window, error) {
	hol, exists := holidays[name]
	if !exists {
		return nil, fmt.Errorf("%q, %w", name, ErrUnknownHoliday)
	}

	loc := start.Location()
	var windows []feature.Window
	for year := start.Year(); year <= end.Year(); year++ {
		actual, _ := hol.Calc(year)
		if actual.IsZero() {
			continue
		}
		date := time.Date(actual.Year(), actual.Month(), actual.Day(), 0, 0, 0, 0, loc)
		windows = append(windows, feature.Window{
			Start: date.Add(-h.DurBefore),
			End:   date.AddDate(0, 0, 1).Add(h.DurAfter),
		})
	}
	return windows, nil
}

// GenerateFeatures creates one event mask per configured holiday
func (h HolidayOptions) GenerateFeatures(t []time.Time) (*feature.Set, error) {
	feat := feature.NewSet()
	if !h.Enabled || len(t) == 0 {
		return feat, nil
	}

	start, end := t[0], t[0]
	for _, tPnt := range t {
		if tPnt.Before(start) {
			start = tPnt
		}
		if tPnt.After(end) {
			end = tPnt
		}
	}
	// pad the range so windows reaching into the series from neighbouring years are kept
	start = start.Add(-h.DurAfter - day)
	end = end.Add(h.DurBefore + day)

	for _, name := range h.names() {
		windows, err := h.Windows(name, start, end)
		if err != nil {
			return nil, err
		}
		eventFeat := feature.NewEvent(name)
		feat.Set(eventFeat, eventFeat.Generate(t, windows))
	}
	return feat, nil
}

func (h HolidayOptions) TablePrint(w io.Writer, prefix, indent string, indentGrowth int) error {
	if !h.Enabled {
		_, err := fmt.Fprintf(w, "%s%sHolidays: None\n", prefix, util.IndentExpand(indent, indentGrowth))
		return err
	}
	if _, err := fmt.Fprintf(w, "%s%sHolidays:\n", prefix, util.IndentExpand(indent, indentGrowth)); err != nil {
		return err
	}
	tbl := tabwriter.NewWriter(w, 0, 0, 1, ' ', tabwriter.AlignRight)
	fmt.Fprintf(tbl, "%s%sName\tBefore\tAfter\t\n", prefix, util.IndentExpand(indent, indentGrowth+1))
	for _, name := range h.names() {
		fmt.Fprintf(tbl, "%s%s%s\t%s\t%s\t\n",
			prefix, util.IndentExpand(indent, indentGrowth+1),
			strings.ReplaceAll(name, "_", " "), h.DurBefore, h.DurAfter)
	}
	return tbl.Flush()
}
