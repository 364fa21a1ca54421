package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Event is an immutable occurrence notice submitted to the pipeline. The type
// field is dot-delimited into three segments (service.resourceType.action);
// segment one is lowercase-only.
type Event struct {
	UUID                               string          `json:"uuid"`
	Tenant                             string          `json:"tenant"`
	User                               string          `json:"user"`
	Source                             string          `json:"source"`
	Type                               string          `json:"type"`
	Subject                            string          `json:"subject"`
	Data                               json.RawMessage `json:"data"`
	SeriesID                           string          `json:"seriesId"`
	SeriesSeqCount                     int64           `json:"seriesSeqCount"`
	Timestamp                          time.Time       `json:"timestamp"`
	DeleteSubscriptionsMatchingSubject bool            `json:"deleteSubscriptionsMatchingSubject"`
	EndSeries                          bool            `json:"endSeries"`
}

var eventTypePattern = regexp.MustCompile(`^[a-z]+\.[a-zA-Z][\w~-]*\.[a-zA-Z][\w~-]*$`)

// ErrMalformedEvent marks events rejected at the boundary. They are dropped
// permanently, never requeued.
var ErrMalformedEvent = errors.New("malformed event")

// DecodeEvent parses an inbound queue envelope and validates it.
func DecodeEvent(body []byte) (Event, error) {
	var ev Event
	if err := json.Unmarshal(body, &ev); err != nil {
		return Event{}, fmt.Errorf("%w: %v", ErrMalformedEvent, err)
	}
	if err := ev.Validate(); err != nil {
		return Event{}, err
	}
	return ev, nil
}

// Validate checks the invariants an event must satisfy to enter the pipeline.
func (e Event) Validate() error {
	if e.Tenant == "" {
		return fmt.Errorf("%w: missing tenant", ErrMalformedEvent)
	}
	if e.Type == "" {
		return fmt.Errorf("%w: missing type", ErrMalformedEvent)
	}
	if !eventTypePattern.MatchString(e.Type) {
		return fmt.Errorf("%w: invalid type %q", ErrMalformedEvent, e.Type)
	}
	if e.UUID == "" {
		return fmt.Errorf("%w: missing uuid", ErrMalformedEvent)
	}
	return nil
}

// TypeSegments splits the event type into its three segments.
func (e Event) TypeSegments() (string, string, string) {
	parts := strings.SplitN(e.Type, ".", 3)
	if len(parts) != 3 {
		return e.Type, "", ""
	}
	return parts[0], parts[1], parts[2]
}
