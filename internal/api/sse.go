package api

import (
	"bufio"
	"errors"
	"io"
	"strings"
)

// SSEEvent is one server-sent event.
type SSEEvent struct {
	// Type is the "event:" field, empty for the default event type.
	Type string
	// ID is the last "id:" field seen in the event.
	ID string
	// Data joins the event's "data:" lines with newlines.
	Data string
}

// SSEScanner splits a text/event-stream body into events.
//
//	scanner := NewSSEScanner(body)
//	for scanner.Next() {
//	    handle(scanner.Event())
//	}
//	if err := scanner.Err(); err != nil {
//	    ...
//	}
type SSEScanner struct {
	reader  *bufio.Reader
	current SSEEvent
	err     error
}

// NewSSEScanner returns a scanner reading from r.
func NewSSEScanner(r io.Reader) *SSEScanner {
	return &SSEScanner{reader: bufio.NewReaderSize(r, 64*1024)}
}

// Next advances to the next event that carries data. It returns false at
// end of stream or on a read error; Err tells them apart.
func (s *SSEScanner) Next() bool {
	if s.err != nil {
		return false
	}

	var (
		data    []string
		hasData bool
		pending = SSEEvent{}
	)
	emit := func() bool {
		pending.Data = strings.Join(data, "\n")
		s.current = pending
		return true
	}

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil && line == "" {
			s.err = err
			if errors.Is(err, io.EOF) && hasData {
				return emit()
			}
			return false
		}

		line = strings.TrimRight(line, "\r\n")
		if line == "" {
			if hasData {
				return emit()
			}
			pending = SSEEvent{}
			continue
		}
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, ok := strings.Cut(line, ":")
		if ok {
			value = strings.TrimPrefix(value, " ")
		}
		switch field {
		case "data":
			data = append(data, value)
			hasData = true
		case "event":
			pending.Type = value
		case "id":
			pending.ID = value
		}
	}
}

// Event returns the event read by the last successful Next.
func (s *SSEScanner) Event() SSEEvent {
	return s.current
}

// Err returns the read error that stopped the scanner, or nil on a clean end
// of stream.
func (s *SSEScanner) Err() error {
	if errors.Is(s.err, io.EOF) {
		return nil
	}
	return s.err
}
