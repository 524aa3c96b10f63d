// Package feed fetches player records from upstream sources for the registry
// sync. A feed returns raw records; the registry decides what to accept.
package feed

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Keys read from each upstream object. The whole object is kept as the
// player's statistics record.
const (
	KeyName  = "PLAYER"
	KeyPrice = "price"
)

// ErrFeedUnavailable is returned when a feed is not configured.
var ErrFeedUnavailable = errors.New("player feed unavailable")

// Record is one upstream player ready to upsert.
type Record struct {
	Name  string
	Stats json.RawMessage
	Price int64
}

// Skip describes an upstream object that could not become a Record.
type Skip struct {
	Index  int
	Name   string
	Reason string
}

// Batch is the result of one fetch.
type Batch struct {
	Records []Record
	Skipped []Skip
}

// PlayerFeed fetches the current player list.
type PlayerFeed interface {
	FetchPlayers(ctx context.Context) (Batch, error)
}

// ParseBatch decodes a JSON array of player objects. Objects without a name
// or with an unusable price are skipped rather than failing the batch.
func ParseBatch(data []byte) (Batch, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return Batch{}, fmt.Errorf("decode player feed: %w", err)
	}
	var b Batch
	for i, raw := range items {
		rec, err := parseRecord(raw)
		if err != nil {
			b.Skipped = append(b.Skipped, Skip{Index: i, Name: rec.Name, Reason: err.Error()})
			continue
		}
		b.Records = append(b.Records, rec)
	}
	return b, nil
}

func parseRecord(raw json.RawMessage) (Record, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return Record{}, errors.New("not an object")
	}
	var name string
	if v, ok := fields[KeyName]; ok {
		_ = json.Unmarshal(v, &name)
	}
	name = strings.TrimSpace(name)
	rec := Record{Name: name, Stats: append(json.RawMessage(nil), bytes.TrimSpace(raw)...)}
	if name == "" {
		return rec, fmt.Errorf("missing %s", KeyName)
	}
	price, err := parsePrice(fields[KeyPrice])
	if err != nil {
		return rec, err
	}
	rec.Price = price
	return rec, nil
}

// parsePrice accepts a JSON number or a numeric string and truncates
// fractional values.
func parsePrice(raw json.RawMessage) (int64, error) {
	if len(raw) == 0 {
		return 0, fmt.Errorf("missing %s", KeyPrice)
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		var num json.Number
		if err := json.Unmarshal(raw, &num); err != nil {
			return 0, fmt.Errorf("invalid %s", KeyPrice)
		}
		text = num.String()
	}
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, 64); err == nil {
		if n < 0 {
			return 0, fmt.Errorf("negative %s", KeyPrice)
		}
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f >= math.MaxInt64 {
		return 0, fmt.Errorf("invalid %s", KeyPrice)
	}
	if f < 0 {
		return 0, fmt.Errorf("negative %s", KeyPrice)
	}
	return int64(f), nil
}
