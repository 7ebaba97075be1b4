package maileroo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/maileroo/maileroo-go-sdk/internal/api"
	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
	"github.com/maileroo/maileroo-go-sdk/internal/config"
	"github.com/maileroo/maileroo-go-sdk/internal/refid"
)

// Limits for GetScheduledEmails.
const (
	MinPage    = 1
	MinPerPage = 1
	MaxPerPage = 100
)

// ScheduledEmails is one page of scheduled messages.
type ScheduledEmails struct {
	Page       int
	PerPage    int
	TotalCount int
	TotalPages int
	Results    []ScheduledEmail
}

// ScheduledEmail is a message waiting for its scheduled_at time.
type ScheduledEmail struct {
	ReferenceID string
	Subject     string
	ScheduledAt string
	// Extra holds any other members returned for the entry, undecoded.
	Extra map[string]json.RawMessage
}

// Client is the Maileroo API client. It holds only immutable configuration
// and is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	ids       *refid.Generator
	timeout   time.Duration
	logger    *slog.Logger
}

// New creates a client authenticated with apiKey.
func New(apiKey string, opts ...Option) (*Client, error) {
	apiKey = strings.TrimSpace(apiKey)
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		baseURL: DefaultBaseURL,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	apiClient, err := api.New(apiKey,
		api.WithBaseURL(cfg.baseURL),
		api.WithHTTPClient(cfg.httpClient),
		api.WithUserAgent(cfg.userAgent),
		api.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		ids:       refid.New(cfg.random),
		timeout:   cfg.timeout,
		logger:    logger,
	}, nil
}

// NewFromEnv creates a client from MAILEROO_* environment variables, after
// loading a .env file from the working directory if present. Options given
// here override the environment.
func NewFromEnv(opts ...Option) (*Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newFromConfig(cfg, opts)
}

// NewFromConfigFile creates a client from a YAML file. MAILEROO_*
// environment variables override values from the file.
func NewFromConfigFile(path string, opts ...Option) (*Client, error) {
	cfg, err := config.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return newFromConfig(cfg, opts)
}

func newFromConfig(cfg *config.Config, opts []Option) (*Client, error) {
	base := []Option{
		WithTimeout(cfg.Timeout),
		WithLogger(cfg.Logger(os.Stderr)),
	}
	if cfg.BaseURL != "" {
		base = append(base, WithBaseURL(cfg.BaseURL))
	}
	return New(cfg.APIKey, append(base, opts...)...)
}

// BaseURL returns the API root the client talks to.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}

// SendBasicEmail sends a message with an HTML and/or plain-text body and
// returns its reference id.
func (c *Client) SendBasicEmail(ctx context.Context, email BasicEmail) (string, error) {
	payload, err := email.build(c.ids)
	if err != nil {
		return "", err
	}

	var id string
	err = c.call(ctx, "send email", func(ctx context.Context) error {
		id, err = c.apiClient.SendEmail(ctx, payload)
		return err
	})
	if err != nil {
		return "", err
	}
	c.logger.DebugContext(ctx, "email accepted", "reference_id", id)
	return id, nil
}

// SendTemplatedEmail sends a message rendered from a stored template and
// returns its reference id.
func (c *Client) SendTemplatedEmail(ctx context.Context, email TemplatedEmail) (string, error) {
	payload, err := email.build(c.ids)
	if err != nil {
		return "", err
	}

	var id string
	err = c.call(ctx, "send templated email", func(ctx context.Context) error {
		id, err = c.apiClient.SendTemplatedEmail(ctx, payload)
		return err
	})
	if err != nil {
		return "", err
	}
	c.logger.DebugContext(ctx, "templated email accepted", "reference_id", id, "template_id", email.TemplateID)
	return id, nil
}

// SendBulkEmails sends a batch and returns the reference ids the API
// reports for it. The batch succeeds or fails as a whole.
func (c *Client) SendBulkEmails(ctx context.Context, batch BulkEmails) ([]string, error) {
	payload, err := batch.build(c.ids)
	if err != nil {
		return nil, err
	}

	var ids []string
	err = c.call(ctx, "send bulk emails", func(ctx context.Context) error {
		ids, err = c.apiClient.SendBulkEmails(ctx, payload)
		return err
	})
	if err != nil {
		return nil, err
	}
	c.logger.DebugContext(ctx, "bulk emails accepted", "messages", len(payload.Messages), "reference_ids", len(ids))
	return ids, nil
}

// DeleteScheduledEmail cancels a scheduled message.
func (c *Client) DeleteScheduledEmail(ctx context.Context, referenceID string) error {
	id, err := refid.Validate("reference_id", referenceID)
	if err != nil {
		return err
	}
	return c.call(ctx, "delete scheduled email", func(ctx context.Context) error {
		return c.apiClient.DeleteScheduledEmail(ctx, id)
	})
}

// GetScheduledEmails lists scheduled messages. page starts at 1 and perPage
// must be between 1 and 100.
func (c *Client) GetScheduledEmails(ctx context.Context, page, perPage int) (*ScheduledEmails, error) {
	if page < MinPage {
		return nil, apierrors.Invalid("page", "must be at least %d, got %d", MinPage, page)
	}
	if perPage < MinPerPage || perPage > MaxPerPage {
		return nil, apierrors.Invalid("per_page", "must be between %d and %d, got %d", MinPerPage, MaxPerPage, perPage)
	}

	var result *api.ScheduledEmailPage
	err := c.call(ctx, "list scheduled emails", func(ctx context.Context) error {
		var err error
		result, err = c.apiClient.ListScheduledEmails(ctx, page, perPage)
		return err
	})
	if err != nil {
		return nil, err
	}
	return scheduledEmailsFromAPI(result), nil
}

// call runs fn under the per-call timeout. Expiry of that timeout becomes a
// *TimeoutError; cancellation by the caller's context is returned wrapping
// ctx.Err(). Neither is reported as an *APIError.
func (c *Client) call(ctx context.Context, op string, fn func(context.Context) error) error {
	callCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	err := fn(callCtx)
	if err == nil {
		return nil
	}

	var apiErr *APIError
	var stateErr *StateError
	if errors.As(err, &apiErr) || errors.As(err, &stateErr) {
		return err
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return fmt.Errorf("%s: %w", op, ctxErr)
	}
	if errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		c.logger.DebugContext(ctx, "maileroo call timed out", "operation", op, "timeout", c.timeout)
		return &TimeoutError{Operation: op, Timeout: c.timeout}
	}
	return err
}

func scheduledEmailsFromAPI(p *api.ScheduledEmailPage) *ScheduledEmails {
	out := &ScheduledEmails{
		Page:       p.Page,
		PerPage:    p.PerPage,
		TotalCount: p.TotalCount,
		TotalPages: p.TotalPages,
		Results:    make([]ScheduledEmail, len(p.Results)),
	}
	for i, r := range p.Results {
		out.Results[i] = ScheduledEmail{
			ReferenceID: r.ReferenceID,
			Subject:     r.Subject,
			ScheduledAt: r.ScheduledAt,
			Extra:       r.Extra,
		}
	}
	return out
}
