package extraction

import (
	"context"

	"github.com/jonathan/profile-builder/internal/llm"
)

// fakeClient returns a fixed response and records the request
type fakeClient struct {
	response string
	err      error
	calls    int
	last     llm.StructuredRequest
}

func (f *fakeClient) GenerateStructured(_ context.Context, req llm.StructuredRequest) (string, error) {
	f.calls++
	f.last = req
	return f.response, f.err
}

func (f *fakeClient) Model() string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }
