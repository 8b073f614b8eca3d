package loader

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/five82/lanes/internal/trace"
)

// lineEvent is one JSON-lines record. Times are nanoseconds; a missing depth
// is derived from nesting.
type lineEvent struct {
	Tid    int64  `json:"tid"`
	Thread string `json:"thread"`
	Name   string `json:"name"`
	Cat    string `json:"cat"`
	Ts     int64  `json:"ts"`
	Dur    int64  `json:"dur"`
	Depth  *int   `json:"depth"`
}

func decodeLines(ctx context.Context, r io.Reader, syms *trace.Symbols) ([]trace.RawEvent, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var raw []trace.RawEvent
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		if lineNo%4096 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		var ev lineEvent
		if err := json.Unmarshal([]byte(line), &ev); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNo, err)
		}
		depth := -1
		if ev.Depth != nil && *ev.Depth >= 0 {
			depth = *ev.Depth
		}
		raw = append(raw, trace.RawEvent{
			ThreadID:   ev.Tid,
			ThreadName: ev.Thread,
			Start:      ev.Ts,
			Duration:   max(ev.Dur, 0),
			Depth:      depth,
			Label:      syms.Intern(ev.Name),
			Kind:       syms.Intern(ev.Cat),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read lines: %w", err)
	}
	return raw, nil
}
