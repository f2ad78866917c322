package plot

import (
	"encoding/binary"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// SampleCache remembers function values keyed by (function text, x). Plotter
// samples each pixel column once per render; with a cache, repeated renders
// of an unchanged window and function set skip the evaluator.
//
// When the cache holds more than its limit, it is emptied.
type SampleCache struct {
	mu     sync.Mutex
	limit  int
	values map[uint64]float64
	hits   int
	misses int
}

// NewSampleCache creates a cache holding at most limit samples.
func NewSampleCache(limit int) *SampleCache {
	return &SampleCache{limit: limit, values: make(map[uint64]float64)}
}

func sampleKey(text string, x float64) uint64 {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
	d := xxhash.New()
	d.WriteString(text)
	d.Write([]byte{0})
	d.Write(buf[:])
	return d.Sum64()
}

// Lookup returns the cached value of text at x.
func (c *SampleCache) Lookup(text string, x float64) (float64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v, ok := c.values[sampleKey(text, x)]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return v, ok
}

// Store records the value of text at x.
func (c *SampleCache) Store(text string, x float64, v float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.values) >= c.limit {
		c.values = make(map[uint64]float64)
	}
	c.values[sampleKey(text, x)] = v
}

// Stats returns the number of cache hits and misses so far.
func (c *SampleCache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// Len returns the number of cached samples.
func (c *SampleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.values)
}
