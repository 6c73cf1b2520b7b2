package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"google.golang.org/api/googleapi"
	"google.golang.org/genai"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// RetryPolicy bounds the attempts made by RetryingClient
type RetryPolicy struct {
	// MaxRetries is the number of attempts after the first; 0 disables retries
	MaxRetries int
	// Timeout caps each attempt; 0 means no per-attempt deadline
	Timeout time.Duration
	// InitialInterval and MaxInterval shape the exponential backoff
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy returns the policy used by the CLI
func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:      DefaultMaxRetries,
		Timeout:         DefaultTimeout,
		InitialInterval: 2 * time.Second,
		MaxInterval:     30 * time.Second,
	}
}

// RetryingClient wraps a Client with per-attempt timeouts and exponential
// backoff on transient failures
type RetryingClient struct {
	next   Client
	policy RetryPolicy
}

// NewRetryingClient wraps next with policy
func NewRetryingClient(next Client, policy RetryPolicy) *RetryingClient {
	if policy.InitialInterval <= 0 {
		policy.InitialInterval = backoff.DefaultInitialInterval
	}
	if policy.MaxInterval <= 0 {
		policy.MaxInterval = backoff.DefaultMaxInterval
	}
	if policy.MaxRetries < 0 {
		policy.MaxRetries = 0
	}
	return &RetryingClient{next: next, policy: policy}
}

// GenerateStructured calls the wrapped client until it succeeds, fails with a
// permanent error or runs out of retries
func (c *RetryingClient) GenerateStructured(ctx context.Context, req StructuredRequest) (string, error) {
	var result string
	attempts := 0

	operation := func() error {
		attempts++
		attemptCtx := ctx
		if c.policy.Timeout > 0 {
			var cancel context.CancelFunc
			attemptCtx, cancel = context.WithTimeout(ctx, c.policy.Timeout)
			defer cancel()
		}

		text, err := c.next.GenerateStructured(attemptCtx, req)
		if err == nil {
			result = text
			return nil
		}
		if ctx.Err() != nil {
			return backoff.Permanent(err)
		}
		if !IsTransient(err) {
			return backoff.Permanent(err)
		}
		return err
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = c.policy.InitialInterval
	b.MaxInterval = c.policy.MaxInterval
	b.MaxElapsedTime = 0

	policy := backoff.WithContext(backoff.WithMaxRetries(b, uint64(c.policy.MaxRetries)), ctx)
	notify := func(err error, wait time.Duration) {
		log.Printf("LLM call attempt %d/%d failed, retrying in %s: %v", attempts, c.policy.MaxRetries+1, wait.Round(time.Millisecond), err)
	}

	if err := backoff.RetryNotify(operation, policy, notify); err != nil {
		if attempts > 1 {
			return "", fmt.Errorf("after %d attempts: %w", attempts, err)
		}
		return "", err
	}
	return result, nil
}

// Model returns the wrapped client's model
func (c *RetryingClient) Model() string {
	return c.next.Model()
}

// Close closes the wrapped client
func (c *RetryingClient) Close() error {
	return c.next.Close()
}

// IsTransient reports whether err is worth retrying: rate limiting, server
// errors, timeouts and dropped connections
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	if errors.Is(err, context.Canceled) {
		return false
	}

	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return transientStatus(gErr.Code)
	}

	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return transientStatus(apiErr.Code)
	}

	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.ResourceExhausted, codes.Unavailable, codes.DeadlineExceeded, codes.Internal, codes.Aborted:
			return true
		case codes.Unknown:
			// Not a gRPC error; fall through to the network checks
		default:
			return false
		}
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var opErr *net.OpError
	return errors.As(err, &opErr)
}

func transientStatus(code int) bool {
	return code == http.StatusTooManyRequests || code == http.StatusRequestTimeout || code >= 500
}
