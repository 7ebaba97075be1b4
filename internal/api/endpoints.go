package api

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
)

const (
	pathEmails         = "/emails"
	pathEmailsTemplate = "/emails/template"
	pathEmailsBulk     = "/emails/bulk"
	pathScheduled      = "/emails/scheduled"
)

// SendEmail posts a basic (html/plain) message and returns its reference id.
func (c *Client) SendEmail(ctx context.Context, payload any) (string, error) {
	s, err := c.Call(ctx, http.MethodPost, pathEmails, nil, payload)
	if err != nil {
		return "", err
	}
	return s.String("reference_id")
}

// SendTemplatedEmail posts a templated message and returns its reference id.
func (c *Client) SendTemplatedEmail(ctx context.Context, payload any) (string, error) {
	s, err := c.Call(ctx, http.MethodPost, pathEmailsTemplate, nil, payload)
	if err != nil {
		return "", err
	}
	return s.String("reference_id")
}

// SendBulkEmails posts a bulk batch and returns one reference id per message.
func (c *Client) SendBulkEmails(ctx context.Context, payload any) ([]string, error) {
	s, err := c.Call(ctx, http.MethodPost, pathEmailsBulk, nil, payload)
	if err != nil {
		return nil, err
	}
	return s.Strings("reference_ids")
}

// DeleteScheduledEmail cancels a scheduled message by reference id.
func (c *Client) DeleteScheduledEmail(ctx context.Context, referenceID string) error {
	_, err := c.Call(ctx, http.MethodDelete, pathScheduled+"/"+url.PathEscape(referenceID), nil, nil)
	return err
}

// ListScheduledEmails returns one page of scheduled messages.
func (c *Client) ListScheduledEmails(ctx context.Context, page, perPage int) (*ScheduledEmailPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("per_page", strconv.Itoa(perPage))

	s, err := c.Call(ctx, http.MethodGet, pathScheduled, query, nil)
	if err != nil {
		return nil, err
	}
	if err := s.Require("page", "per_page", "total_count", "total_pages", "results"); err != nil {
		return nil, err
	}

	var result ScheduledEmailPage
	if err := s.Object("", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Call performs one exchange and normalizes the envelope. A failure envelope
// becomes *apierrors.APIError; an unreadable one becomes *apierrors.StateError.
func (c *Client) Call(ctx context.Context, method, path string, query url.Values, body any) (*Success, error) {
	resp, err := c.Do(ctx, method, path, query, body)
	if err != nil {
		return nil, err
	}

	outcome, err := DecodeEnvelope(resp.Body)
	if err != nil {
		var stateErr *apierrors.StateError
		if errors.As(err, &stateErr) {
			stateErr.StatusCode = resp.StatusCode
		}
		return nil, err
	}

	switch o := outcome.(type) {
	case *Failure:
		return nil, &apierrors.APIError{
			StatusCode: resp.StatusCode,
			Message:    o.Message,
			RequestID:  resp.RequestID,
		}
	case *Success:
		return o, nil
	default:
		return nil, &apierrors.StateError{Message: "unrecognized envelope", StatusCode: resp.StatusCode}
	}
}
