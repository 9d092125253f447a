package oracle

import (
	"context"
	"fmt"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/campusflow/campusflow/core"
	"github.com/campusflow/campusflow/core/assistant"
)

var errNoAPIKey = errors.New("oracle API key is required")

type generateFunc func(ctx context.Context, prompt string) (string, error)

// GeminiOracle asks a Gemini model for text. Every call is bounded by a timeout
// and retried at most once, after a jittered pause, when the failure looks transient.
type GeminiOracle struct {
	generate   generateFunc
	timeout    time.Duration
	maxRetries int
	backoff    time.Duration
	logger     core.Logger
}

var _ assistant.Oracle = (*GeminiOracle)(nil)

func NewGeminiOracle(ctx context.Context, conf *core.Config, logger core.Logger) (*GeminiOracle, error) {
	if conf.Oracle.APIKey == "" {
		return nil, errNoAPIKey
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  conf.Oracle.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "creating genai client")
	}

	model := conf.Oracle.Model
	generate := func(ctx context.Context, prompt string) (string, error) {
		resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), nil)
		if err != nil {
			return "", err
		}
		return resp.Text(), nil
	}
	return newOracle(generate, conf.Oracle, logger), nil
}

func newOracle(generate generateFunc, conf core.OracleConfig, logger core.Logger) *GeminiOracle {
	retries := conf.MaxRetries
	if retries > 1 {
		retries = 1
	} else if retries < 0 {
		retries = 0
	}
	return &GeminiOracle{
		generate:   generate,
		timeout:    conf.Timeout,
		maxRetries: retries,
		backoff:    conf.RetryBackoff,
		logger:     logger,
	}
}

func (o *GeminiOracle) Generate(ctx context.Context, prompt string) (string, error) {
	for attempt := 0; ; attempt++ {
		text, err := o.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if ctx.Err() != nil {
			return "", errors.Wrap(ctx.Err(), "generating content")
		}
		if attempt >= o.maxRetries || !isTransient(err) {
			return "", errors.Wrap(err, "generating content")
		}

		wait := o.jitter()
		o.logger.Warn(fmt.Sprintf("oracle: attempt %d failed, retrying in %v: %v", attempt+1, wait, err))
		select {
		case <-ctx.Done():
			return "", errors.Wrap(ctx.Err(), "waiting to retry")
		case <-time.After(wait):
		}
	}
}

func (o *GeminiOracle) attempt(ctx context.Context, prompt string) (string, error) {
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	return o.generate(ctx, prompt)
}

// jitter returns a pause between half and one and a half times the backoff.
func (o *GeminiOracle) jitter() time.Duration {
	if o.backoff <= 0 {
		return 0
	}
	return o.backoff/2 + time.Duration(rand.Int63n(int64(o.backoff)))
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusTooManyRequests || apiErr.Code >= http.StatusInternalServerError
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) {
		return apiErrPtr.Code == http.StatusTooManyRequests || apiErrPtr.Code >= http.StatusInternalServerError
	}
	return false
}
