package models

import (
	"bytes"
	"encoding/json"
)

// CategoryStats aggregates the catalog by category.
type CategoryStats struct {
	TotalProducts   int            `json:"totalProducts"`
	CountByCategory CategoryCounts `json:"countByCategory"`
}

// CategoryCounts maps a category to its product count and remembers the order
// in which categories were first seen. It encodes as a JSON object in that order.
type CategoryCounts struct {
	keys   []string
	counts map[string]int
}

// Inc adds one to the count of category.
func (c *CategoryCounts) Inc(category string) {
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, ok := c.counts[category]; !ok {
		c.keys = append(c.keys, category)
	}
	c.counts[category]++
}

// MarshalJSON implements json.Marshaler.
func (c CategoryCounts) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range c.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.counts[k])
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
