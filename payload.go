package maileroo

import (
	"fmt"
	"strconv"
	"time"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
	"github.com/maileroo/maileroo-go-sdk/internal/refid"
	"github.com/maileroo/maileroo-go-sdk/internal/validate"
)

// MaxBulkMessages is the largest number of messages in one bulk request.
const MaxBulkMessages = 500

// BasicEmail is a single message with an inline HTML and/or plain-text body.
type BasicEmail struct {
	From    EmailAddress
	To      Recipients
	Cc      Recipients
	Bcc     Recipients
	ReplyTo Recipients

	Subject string
	HTML    string
	Plain   string

	Tracking    *bool
	Tags        map[string]any
	Headers     map[string]any
	Attachments []Attachment

	// ScheduledAt is passed through as-is; see FormatScheduledAt.
	ScheduledAt string
	// ReferenceID is generated when empty.
	ReferenceID string
}

// TemplatedEmail is a single message rendered server-side from a template.
type TemplatedEmail struct {
	From    EmailAddress
	To      Recipients
	Cc      Recipients
	Bcc     Recipients
	ReplyTo Recipients

	Subject      string
	TemplateID   int
	TemplateData map[string]any

	Tracking    *bool
	Tags        map[string]any
	Headers     map[string]any
	Attachments []Attachment

	ScheduledAt string
	ReferenceID string
}

// BulkEmails is a batch of up to MaxBulkMessages messages sharing a subject
// and a body. The body is either HTML/Plain or a TemplateID, never both.
type BulkEmails struct {
	Subject    string
	HTML       string
	Plain      string
	TemplateID int

	Tracking    *bool
	Tags        map[string]any
	Headers     map[string]any
	Attachments []Attachment

	Messages []BulkMessage
}

// BulkMessage is one message of a bulk batch.
type BulkMessage struct {
	From    EmailAddress
	To      Recipients
	Cc      Recipients
	Bcc     Recipients
	ReplyTo Recipients

	TemplateData map[string]any
	ReferenceID  string
}

// ParseTemplateID converts a numeric string such as "2549" into a template id.
func ParseTemplateID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil {
		return 0, apierrors.Invalid("template_id", "%q is not an integer", s)
	}
	if id <= 0 {
		return 0, apierrors.Invalid("template_id", "must be positive, got %d", id)
	}
	return id, nil
}

// FormatScheduledAt renders t in the RFC 3339 form accepted for scheduled_at.
func FormatScheduledAt(t time.Time) string {
	return t.Format(time.RFC3339)
}

type addressing struct {
	From    EmailAddress `json:"from"`
	To      Recipients   `json:"to"`
	Cc      Recipients   `json:"cc,omitzero"`
	Bcc     Recipients   `json:"bcc,omitzero"`
	ReplyTo Recipients   `json:"reply_to,omitzero"`
}

type extras struct {
	Tracking    *bool          `json:"tracking,omitempty"`
	Tags        map[string]any `json:"tags,omitempty"`
	Headers     map[string]any `json:"headers,omitempty"`
	Attachments []Attachment   `json:"attachments,omitempty"`
}

// singlePayload is the body of POST /emails and POST /emails/template.
type singlePayload struct {
	addressing
	Subject      string         `json:"subject"`
	HTML         string         `json:"html,omitempty"`
	Plain        string         `json:"plain,omitempty"`
	TemplateID   int            `json:"template_id,omitempty"`
	TemplateData map[string]any `json:"template_data,omitzero"`
	extras
	ScheduledAt string `json:"scheduled_at,omitempty"`
	ReferenceID string `json:"reference_id"`
}

// bulkPayload is the body of POST /emails/bulk.
type bulkPayload struct {
	Subject    string `json:"subject"`
	HTML       string `json:"html,omitempty"`
	Plain      string `json:"plain,omitempty"`
	TemplateID int    `json:"template_id,omitempty"`
	extras
	Messages []bulkMessagePayload `json:"messages"`
}

type bulkMessagePayload struct {
	addressing
	TemplateData map[string]any `json:"template_data,omitzero"`
	ReferenceID  string         `json:"reference_id"`
}

func (e BasicEmail) build(ids *refid.Generator) (*singlePayload, error) {
	addr, err := buildAddressing("", e.From, e.To, e.Cc, e.Bcc, e.ReplyTo)
	if err != nil {
		return nil, err
	}
	if err := validate.Subject("subject", e.Subject); err != nil {
		return nil, err
	}
	if e.HTML == "" && e.Plain == "" {
		return nil, apierrors.Invalid("html", "at least one of html or plain is required")
	}
	ext, err := buildExtras(e.Tracking, e.Tags, e.Headers, e.Attachments)
	if err != nil {
		return nil, err
	}
	id, err := resolveReferenceID("reference_id", e.ReferenceID, ids)
	if err != nil {
		return nil, err
	}

	return &singlePayload{
		addressing:  addr,
		Subject:     e.Subject,
		HTML:        e.HTML,
		Plain:       e.Plain,
		extras:      ext,
		ScheduledAt: e.ScheduledAt,
		ReferenceID: id,
	}, nil
}

func (e TemplatedEmail) build(ids *refid.Generator) (*singlePayload, error) {
	addr, err := buildAddressing("", e.From, e.To, e.Cc, e.Bcc, e.ReplyTo)
	if err != nil {
		return nil, err
	}
	if err := validate.Subject("subject", e.Subject); err != nil {
		return nil, err
	}
	if e.TemplateID <= 0 {
		return nil, apierrors.Invalid("template_id", "a positive template id is required")
	}
	ext, err := buildExtras(e.Tracking, e.Tags, e.Headers, e.Attachments)
	if err != nil {
		return nil, err
	}
	id, err := resolveReferenceID("reference_id", e.ReferenceID, ids)
	if err != nil {
		return nil, err
	}

	if err := validate.TemplateData("template_data", e.TemplateData); err != nil {
		return nil, err
	}
	data := e.TemplateData
	if data == nil {
		data = map[string]any{}
	}

	return &singlePayload{
		addressing:   addr,
		Subject:      e.Subject,
		TemplateID:   e.TemplateID,
		TemplateData: data,
		extras:       ext,
		ScheduledAt:  e.ScheduledAt,
		ReferenceID:  id,
	}, nil
}

func (b BulkEmails) build(ids *refid.Generator) (*bulkPayload, error) {
	if err := validate.Subject("subject", b.Subject); err != nil {
		return nil, err
	}

	hasBody := b.HTML != "" || b.Plain != ""
	hasTemplate := b.TemplateID != 0
	switch {
	case hasBody && hasTemplate:
		return nil, apierrors.Invalid("template_id", "html/plain and template_id are mutually exclusive")
	case !hasBody && !hasTemplate:
		return nil, apierrors.Invalid("html", "either html/plain or template_id is required")
	case b.TemplateID < 0:
		return nil, apierrors.Invalid("template_id", "must be positive, got %d", b.TemplateID)
	}

	switch n := len(b.Messages); {
	case n == 0:
		return nil, apierrors.Invalid("messages", "at least one message is required")
	case n > MaxBulkMessages:
		return nil, apierrors.Invalid("messages", "must not exceed %d messages, got %d", MaxBulkMessages, n)
	}

	ext, err := buildExtras(b.Tracking, b.Tags, b.Headers, b.Attachments)
	if err != nil {
		return nil, err
	}

	messages := make([]bulkMessagePayload, len(b.Messages))
	for i, m := range b.Messages {
		prefix := fmt.Sprintf("messages[%d].", i)
		addr, err := buildAddressing(prefix, m.From, m.To, m.Cc, m.Bcc, m.ReplyTo)
		if err != nil {
			return nil, err
		}
		if err := validate.TemplateData(prefix+"template_data", m.TemplateData); err != nil {
			return nil, err
		}
		id, err := resolveReferenceID(prefix+"reference_id", m.ReferenceID, ids)
		if err != nil {
			return nil, err
		}
		messages[i] = bulkMessagePayload{
			addressing:   addr,
			TemplateData: m.TemplateData,
			ReferenceID:  id,
		}
	}

	return &bulkPayload{
		Subject:    b.Subject,
		HTML:       b.HTML,
		Plain:      b.Plain,
		TemplateID: b.TemplateID,
		extras:     ext,
		Messages:   messages,
	}, nil
}

func buildAddressing(prefix string, from EmailAddress, to, cc, bcc, replyTo Recipients) (addressing, error) {
	if from.IsZero() {
		return addressing{}, apierrors.Invalid(prefix+"from", "sender address is required")
	}
	checks := []struct {
		field    string
		r        Recipients
		required bool
	}{
		{"to", to, true},
		{"cc", cc, false},
		{"bcc", bcc, false},
		{"reply_to", replyTo, false},
	}
	for _, c := range checks {
		if err := c.r.check(prefix+c.field, c.required); err != nil {
			return addressing{}, err
		}
	}
	return addressing{From: from, To: to, Cc: cc, Bcc: bcc, ReplyTo: replyTo}, nil
}

func buildExtras(tracking *bool, tags, headers map[string]any, attachments []Attachment) (extras, error) {
	if err := validate.ScalarMap("tags", tags); err != nil {
		return extras{}, err
	}
	if err := validate.ScalarMap("headers", headers); err != nil {
		return extras{}, err
	}
	for i, a := range attachments {
		if a.IsZero() {
			return extras{}, apierrors.Invalid(fmt.Sprintf("attachments[%d]", i), "attachment was not constructed")
		}
	}

	ext := extras{Tags: tags, Headers: headers}
	if tracking != nil {
		v := *tracking
		ext.Tracking = &v
	}
	if len(attachments) > 0 {
		ext.Attachments = attachments
	}
	return ext, nil
}

func resolveReferenceID(field, id string, ids *refid.Generator) (string, error) {
	if id == "" {
		generated, err := ids.Generate()
		if err != nil {
			return "", fmt.Errorf("generate reference id: %w", err)
		}
		return generated, nil
	}
	return refid.Validate(field, id)
}
