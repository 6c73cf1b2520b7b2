package llm

import (
	"context"
	"sync"
)

// scriptedClient returns the queued results in order
type scriptedClient struct {
	mu       sync.Mutex
	results  []scriptedResult
	calls    int
	requests []StructuredRequest
	closed   bool
	// block makes each call wait for its context
	block bool
}

type scriptedResult struct {
	text string
	err  error
}

func (c *scriptedClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	c.mu.Lock()
	c.calls++
	c.requests = append(c.requests, req)
	block := c.block
	var r scriptedResult
	if len(c.results) > 0 {
		r = c.results[0]
		c.results = c.results[1:]
	}
	c.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.text, r.err
}

func (c *scriptedClient) Model() string { return "fake-model" }

func (c *scriptedClient) Close() error {
	c.closed = true
	return nil
}
