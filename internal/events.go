package internal

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Event kinds carried in the "type" field of inbound messages
const (
	EventLog     = "log"
	EventMetrics = "metrics"
	EventThought = "thought"
	EventStatus  = "status"
)

// Event is one decoded message from the OSA event stream. The set of
// implementations is closed: LogEvent, MetricsEvent, ThoughtEvent, StatusEvent.
type Event interface {
	EventType() string
	sealed()
}

// LogEvent carries a log line
type LogEvent struct {
	Category  string                 `json:"category"`
	Message   string                 `json:"message"`
	Timestamp string                 `json:"timestamp,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// MetricsEvent carries a partial metrics update
type MetricsEvent struct {
	Metrics MetricsUpdate `json:"metrics"`
}

// ThoughtEvent carries a thought graph node
type ThoughtEvent struct {
	Thought ThoughtPayload `json:"thought"`
}

// ThoughtPayload is the wire form of a thought. The id may be any JSON value.
type ThoughtPayload struct {
	ID      json.RawMessage `json:"id,omitempty"`
	Type    string          `json:"type"`
	Content string          `json:"content"`
}

// StatusEvent carries an opaque system status object
type StatusEvent struct {
	Status map[string]interface{} `json:"status"`
}

func (LogEvent) EventType() string     { return EventLog }
func (MetricsEvent) EventType() string { return EventMetrics }
func (ThoughtEvent) EventType() string { return EventThought }
func (StatusEvent) EventType() string  { return EventStatus }

func (LogEvent) sealed()     {}
func (MetricsEvent) sealed() {}
func (ThoughtEvent) sealed() {}
func (StatusEvent) sealed()  {}

// IDString renders the thought id as text: JSON strings are unquoted, other
// values keep their JSON form.
func (p ThoughtPayload) IDString() string {
	raw := bytes.TrimSpace(p.ID)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

// ThoughtID encodes any value as a thought id
func ThoughtID(v interface{}) json.RawMessage {
	data, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage(fmt.Sprintf("%q", fmt.Sprint(v)))
	}
	return data
}

// DecodeEvent parses one inbound message. Unknown event kinds return a nil
// event and nil error so callers can ignore them.
func DecodeEvent(data []byte) (Event, error) {
	var envelope struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, &ParseError{Source: "transport", Key: "envelope", Err: err}
	}

	var (
		ev  Event
		err error
	)
	switch envelope.Type {
	case EventLog:
		var e LogEvent
		err = json.Unmarshal(data, &e)
		ev = e
	case EventMetrics:
		var e MetricsEvent
		err = json.Unmarshal(data, &e)
		ev = e
	case EventThought:
		var e ThoughtEvent
		err = json.Unmarshal(data, &e)
		ev = e
	case EventStatus:
		var e StatusEvent
		err = json.Unmarshal(data, &e)
		ev = e
	default:
		return nil, nil
	}
	if err != nil {
		return nil, &ParseError{Source: "transport", Key: envelope.Type, Err: err}
	}
	return ev, nil
}

// EncodeEvent serializes an event with its "type" discriminator
func EncodeEvent(ev Event) ([]byte, error) {
	body, err := json.Marshal(ev)
	if err != nil {
		return nil, err
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return nil, err
	}
	typ, _ := json.Marshal(ev.EventType())
	fields["type"] = typ
	return json.Marshal(fields)
}
