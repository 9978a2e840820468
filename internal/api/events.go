package api

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
)

// AnalysisEvent is one element of the analysis SSE stream. The concrete
// types below are the only implementations.
type AnalysisEvent interface {
	// Kind returns the wire tag of the event.
	Kind() string
	isAnalysisEvent()
}

// EventBackfill replays events emitted before the client connected.
type EventBackfill struct {
	Events []AnalysisEvent `json:"-"`
}

// EventThinking marks the agent reasoning before it writes output.
type EventThinking struct{}

// EventTextDelta is a chunk of narrative text.
type EventTextDelta struct {
	Delta string `json:"delta"`
}

// EventToolStart is a tool call. Args is the raw argument object.
type EventToolStart struct {
	Tool string          `json:"tool"`
	Args json.RawMessage `json:"args"`
}

// EventToolOutput is output produced by a running tool.
type EventToolOutput struct {
	Tool   string `json:"tool,omitempty"`
	Output string `json:"output"`
}

// EventToolEnd marks the end of a tool call.
type EventToolEnd struct {
	Tool    string `json:"tool,omitempty"`
	IsError bool   `json:"isError"`
}

// EventComplete carries the finished proposal.
type EventComplete struct {
	Proposal string `json:"proposal"`
}

// EventError reports that the analysis itself failed.
type EventError struct {
	Message string `json:"message"`
}

const (
	KindBackfill   = "backfill"
	KindThinking   = "thinking"
	KindTextDelta  = "text_delta"
	KindToolStart  = "tool_start"
	KindToolOutput = "tool_output"
	KindToolEnd    = "tool_end"
	KindComplete   = "complete"
	KindError      = "error"
)

func (EventBackfill) Kind() string   { return KindBackfill }
func (EventThinking) Kind() string   { return KindThinking }
func (EventTextDelta) Kind() string  { return KindTextDelta }
func (EventToolStart) Kind() string  { return KindToolStart }
func (EventToolOutput) Kind() string { return KindToolOutput }
func (EventToolEnd) Kind() string    { return KindToolEnd }
func (EventComplete) Kind() string   { return KindComplete }
func (EventError) Kind() string      { return KindError }

func (EventBackfill) isAnalysisEvent()   {}
func (EventThinking) isAnalysisEvent()   {}
func (EventTextDelta) isAnalysisEvent()  {}
func (EventToolStart) isAnalysisEvent()  {}
func (EventToolOutput) isAnalysisEvent() {}
func (EventToolEnd) isAnalysisEvent()    {}
func (EventComplete) isAnalysisEvent()   {}
func (EventError) isAnalysisEvent()      {}

// DecodeAnalysisEvent decodes one SSE payload tagged by its "type" field.
// Backfill events are decoded recursively.
func DecodeAnalysisEvent(data []byte) (AnalysisEvent, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(data, &tag); err != nil {
		return nil, fmt.Errorf("failed to decode analysis event: %w", err)
	}

	var (
		event AnalysisEvent
		err   error
	)
	switch tag.Type {
	case KindBackfill:
		event, err = decodeBackfill(data)
	case KindThinking:
		event = EventThinking{}
	case KindTextDelta:
		event, err = decodeVariant[EventTextDelta](data)
	case KindToolStart:
		event, err = decodeVariant[EventToolStart](data)
	case KindToolOutput:
		event, err = decodeVariant[EventToolOutput](data)
	case KindToolEnd:
		event, err = decodeVariant[EventToolEnd](data)
	case KindComplete:
		event, err = decodeVariant[EventComplete](data)
	case KindError:
		event, err = decodeVariant[EventError](data)
	default:
		return nil, fmt.Errorf("unknown analysis event type %q", tag.Type)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s event: %w", tag.Type, err)
	}
	return event, nil
}

func decodeBackfill(data []byte) (EventBackfill, error) {
	var raw struct {
		Events []json.RawMessage `json:"events"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return EventBackfill{}, err
	}
	events := make([]AnalysisEvent, 0, len(raw.Events))
	for i, item := range raw.Events {
		event, err := DecodeAnalysisEvent(item)
		if err != nil {
			return EventBackfill{}, fmt.Errorf("event %d: %w", i, err)
		}
		events = append(events, event)
	}
	return EventBackfill{Events: events}, nil
}

// MarshalAnalysisEvent encodes an event with its "type" tag.
func MarshalAnalysisEvent(event AnalysisEvent) ([]byte, error) {
	if backfill, ok := event.(EventBackfill); ok {
		items := make([]json.RawMessage, 0, len(backfill.Events))
		for _, e := range backfill.Events {
			encoded, err := MarshalAnalysisEvent(e)
			if err != nil {
				return nil, err
			}
			items = append(items, encoded)
		}
		body, err := json.Marshal(map[string][]json.RawMessage{"events": items})
		if err != nil {
			return nil, err
		}
		return withTag("type", KindBackfill, body)
	}
	body, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	return withTag("type", event.Kind(), body)
}

// FormatToolArgs renders a tool argument object as space-separated
// key=value pairs in key order. String values are shown unquoted, anything
// else as compact JSON. Non-object arguments render as "".
func FormatToolArgs(args json.RawMessage) string {
	if len(args) == 0 {
		return ""
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(args, &obj); err != nil || obj == nil {
		return ""
	}

	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+argValue(obj[k]))
	}
	return strings.Join(parts, " ")
}

func argValue(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
