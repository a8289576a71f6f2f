package testfixtures

import (
	"fmt"
	"sync"
)

// IDGenerator hands out sequential IDs with a fixed prefix, e.g.
// "booking-1", "booking-2". Deterministic alternative to uuid.NewString.
type IDGenerator struct {
	mu     sync.Mutex
	prefix string
	next   int
}

func NewIDGenerator(prefix string) *IDGenerator {
	return &IDGenerator{prefix: prefix, next: 1}
}

func (g *IDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	id := fmt.Sprintf("%s-%d", g.prefix, g.next)
	g.next++
	return id
}

// NextFunc returns a function suitable for injecting as a service ID source.
func (g *IDGenerator) NextFunc() func() string {
	return g.Next
}
