package repositories

import (
	"fmt"
	"strconv"

	"github.com/google/uuid"
)

// IDGenerator picks the id for a new product. count is the current store size
// and taken reports whether an id is already in use.
type IDGenerator func(count int, taken func(id string) bool) string

// SequentialIDs numbers products count+1, count+2, ... and returns the first free value.
// Without deletes this is exactly count+1.
func SequentialIDs(count int, taken func(id string) bool) string {
	n := count + 1
	for taken(strconv.Itoa(n)) {
		n++
	}
	return strconv.Itoa(n)
}

// UUIDs assigns random version 4 UUIDs.
func UUIDs(_ int, _ func(id string) bool) string {
	return uuid.NewString()
}

// IDGeneratorFor resolves a strategy name to its generator.
func IDGeneratorFor(strategy string) (IDGenerator, error) {
	switch strategy {
	case "", "sequential":
		return SequentialIDs, nil
	case "uuid":
		return UUIDs, nil
	default:
		return nil, fmt.Errorf("unknown id strategy %q", strategy)
	}
}
