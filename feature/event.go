package feature

import (
	"fmt"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// Event feature representing a span of time such as a holiday that is modelled separately
// from the regular trend and seasonality.
type Event struct {
	Name string `json:"name"`
}

// NewEvent creates a new event instance given a name
func NewEvent(name string) *Event {
	return &Event{name}
}

// String returns the string representation of the event feature
func (e Event) String() string {
	return fmt.Sprintf("event_%s", e.Name)
}

// Get returns the value of an arbitrary label and returns the value along with whether
// the label exists
func (e Event) Get(label string) (string, bool) {
	switch strings.ToLower(label) {
	case "name":
		return e.Name, true
	}
	return "", false
}

// Type returns the type of this feature
func (e Event) Type() FeatureType {
	return FeatureTypeEvent
}

// Decode converts the feature into a map of label values
func (e Event) Decode() map[string]string {
	res := make(map[string]string)
	res["name"] = e.Name
	return res
}

// UnmarshalJSON is the custom unmarshalling to convert a map[string]string
// to a event feature
func (e *Event) UnmarshalJSON(data []byte) error {
	var labelStr struct {
		Name string `json:"name"`
	}
	err := json.Unmarshal(data, &labelStr)
	if err != nil {
		return err
	}
	e.Name = labelStr.Name
	return nil
}

// Window is a half open [Start, End) span where an event is active
type Window struct {
	Start time.Time
	End   time.Time
}

// Generate returns a mask that is 1 for every time point inside any of the windows
func (e Event) Generate(t []time.Time, windows []Window) []float64 {
	mask := make([]float64, len(t))
	for i, tPnt := range t {
		for _, w := range windows {
			if (tPnt.Equal(w.Start) || tPnt.After(w.Start)) && tPnt.Before(w.End) {
				mask[i] = 1.0
				break
			}
		}
	}
	return mask
}
