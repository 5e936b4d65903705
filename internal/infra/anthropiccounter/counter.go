// Package anthropiccounter counts tokens through the Anthropic
// messages.count_tokens endpoint. Counting is diagnostic, not critical-path:
// failures are propagated as service errors and abort the run rather than
// silently zero-filling, and no retry is layered on top of the SDK's own.
package anthropiccounter

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/krishjag/tealeaf/internal/domain"
	"github.com/krishjag/tealeaf/internal/ports"
)

type Counter struct {
	client anthropic.Client
}

type Option func(*[]option.RequestOption)

// WithHTTPClient routes SDK calls through a caller-built client (timeouts,
// transport policy).
func WithHTTPClient(hc *http.Client) Option {
	return func(opts *[]option.RequestOption) {
		*opts = append(*opts, option.WithHTTPClient(hc))
	}
}

// WithBaseURL points the counter at an alternate endpoint. Tests use this
// with a local server.
func WithBaseURL(url string) Option {
	return func(opts *[]option.RequestOption) {
		*opts = append(*opts, option.WithBaseURL(url))
	}
}

func New(apiKey string, opts ...Option) *Counter {
	reqOpts := []option.RequestOption{option.WithAPIKey(apiKey)}
	for _, opt := range opts {
		opt(&reqOpts)
	}
	return &Counter{client: anthropic.NewClient(reqOpts...)}
}

var _ ports.RemoteTokenCounter = (*Counter)(nil)

// Count submits text as a single user message and returns the endpoint's
// input-token figure for it.
func (c *Counter) Count(ctx context.Context, model, text string) (int, error) {
	res, err := c.client.Messages.CountTokens(ctx, anthropic.MessageCountTokensParams{
		Model: anthropic.Model(model),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(text)),
		},
	})
	if err != nil {
		return 0, &domain.OpError{
			Op:   "anthropiccounter.count",
			Kind: domain.KindService,
			Hint: remedyFor(err),
			Err:  fmt.Errorf("count_tokens (model=%s, fault=%s): %w", model, faultOf(err), err),
		}
	}

	n := int(res.InputTokens)
	if n < 0 {
		return 0, &domain.OpError{
			Op:   "anthropiccounter.count",
			Kind: domain.KindService,
			Err:  fmt.Errorf("endpoint returned negative count %d", n),
		}
	}
	return n, nil
}

// faultOf folds SDK and transport errors into the domain fault taxonomy.
// HTTP statuses are only visible here, so the status mapping lives in the
// adapter while chain inspection stays in the domain.
func faultOf(err error) domain.ServiceFault {
	var apiErr *anthropic.Error
	if errors.As(err, &apiErr) {
		switch apiErr.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return domain.FaultAuth
		default:
			return domain.FaultHTTP
		}
	}
	return domain.ClassifyServiceError(err)
}

func remedyFor(err error) string {
	if faultOf(err) == domain.FaultAuth {
		return "check that the API key in the profile's api_key_env variable is valid"
	}
	return ""
}
