package enrich

import (
	"fmt"
	"strconv"
	"strings"
)

// Counter hands out synthetic identifiers for rows without a category id.
//
// Values are strictly increasing for the lifetime of the counter and skip
// every reserved identifier, so a synthesized id never collides with a
// source id, an override or an earlier synthesized id.
type Counter struct {
	last     int64
	reserved map[string]struct{}
	issued   int
}

// NewCounter returns a counter whose first value is floor+1.
func NewCounter(floor int64) *Counter {
	return &Counter{
		last:     floor,
		reserved: make(map[string]struct{}),
	}
}

// NewCounterFromMax seeds a counter from the largest category id. Every id
// must be numeric; an empty set cannot seed anything either.
func NewCounterFromMax(ids []string) (*Counter, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no category ids to seed from", ErrMalformedIdentifier)
	}

	var highest int64
	for i, id := range ids {
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not numeric", ErrMalformedIdentifier, id)
		}
		if i == 0 || n > highest {
			highest = n
		}
	}
	return NewCounter(highest), nil
}

// Reserve marks identifiers as taken.
func (c *Counter) Reserve(ids ...string) {
	for _, id := range ids {
		c.reserved[id] = struct{}{}
	}
}

// Next returns the next free identifier.
func (c *Counter) Next() string {
	for {
		c.last++
		id := strconv.FormatInt(c.last, 10)
		if _, taken := c.reserved[id]; taken {
			continue
		}
		c.reserved[id] = struct{}{}
		c.issued++
		return id
	}
}

// Issued returns how many identifiers Next has produced.
func (c *Counter) Issued() int {
	return c.issued
}
