// Package posts builds the ordered index of published posts and its JSON
// listing artifact.
package posts

import (
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"git.home.luguber.info/inful/blogbuilder/internal/content"
)

// Summary is the listing entry of one post.
type Summary struct {
	Title string
	Date  *time.Time
	Slug  string
}

// Summarize derives a post's listing entry from its metadata.
func Summarize(meta content.Metadata, slug string) Summary {
	return Summary{Title: meta.Title(), Date: meta.Date(), Slug: slug}
}

// Index is the ordered list of post summaries, newest first.
type Index []Summary

// BuildIndex orders summaries by date descending. Posts without a date sort
// after every dated post; equal keys keep their input order.
func BuildIndex(summaries []Summary) Index {
	idx := make(Index, len(summaries))
	copy(idx, summaries)
	sort.SliceStable(idx, func(i, j int) bool {
		a, b := idx[i].Date, idx[j].Date
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.After(*b)
		}
	})
	return idx
}

// Latest returns at most n leading entries.
func (idx Index) Latest(n int) Index {
	if n < 0 || n >= len(idx) {
		return idx
	}
	return idx[:n]
}

type jsonSummary struct {
	Title string     `json:"title"`
	Date  *time.Time `json:"date,omitempty"`
	Slug  string     `json:"slug"`
}

// Serialize encodes the index as a JSON array of {title, date, slug} objects.
// An empty index encodes as [].
func Serialize(idx Index) ([]byte, error) {
	out := make([]jsonSummary, len(idx))
	for i, s := range idx {
		out[i] = jsonSummary(s)
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode post index: %w", err)
	}
	return append(data, '\n'), nil
}

// Deserialize decodes a listing artifact produced by Serialize.
func Deserialize(data []byte) (Index, error) {
	var in []jsonSummary
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("decode post index: %w", err)
	}
	idx := make(Index, len(in))
	for i, s := range in {
		idx[i] = Summary(s)
	}
	return idx, nil
}

// Collector gathers summaries from concurrent workers into fixed slots so the
// result order does not depend on scheduling.
type Collector struct {
	mu    sync.Mutex
	slots []*Summary
}

// NewCollector creates a collector with n slots.
func NewCollector(n int) *Collector {
	return &Collector{slots: make([]*Summary, n)}
}

// Set stores the summary for slot i.
func (c *Collector) Set(i int, s Summary) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slots[i] = &s
}

// Summaries returns the filled slots in slot order.
func (c *Collector) Summaries() []Summary {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Summary, 0, len(c.slots))
	for _, s := range c.slots {
		if s != nil {
			out = append(out, *s)
		}
	}
	return out
}
