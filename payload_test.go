package maileroo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/maileroo/maileroo-go-sdk/internal/refid"
)

func seededIDs(t *testing.T) *refid.Generator {
	t.Helper()
	src, err := refid.NewSeededReader(bytes.Repeat([]byte{7}, refid.SeedSize))
	if err != nil {
		t.Fatalf("NewSeededReader() error = %v", err)
	}
	return refid.New(src)
}

func basicEmail(t *testing.T) BasicEmail {
	t.Helper()
	return BasicEmail{
		From:    mustAddress(t, "sender@example.com", "Sender"),
		To:      One(mustAddress(t, "to@example.com", "")),
		Subject: "Hello",
		Plain:   "Hi there",
	}
}

func toJSON(t *testing.T, v any) map[string]any {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	return m
}

func wantInvalid(t *testing.T, err error, field string) {
	t.Helper()
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("error = %v, want *ValidationError", err)
	}
	if !errors.Is(err, ErrInvalidArgument) {
		t.Error("errors.Is(err, ErrInvalidArgument) = false")
	}
	if field != "" && ve.Field != field {
		t.Errorf("Field = %q, want %q", ve.Field, field)
	}
}

func TestBasicEmail_Build(t *testing.T) {
	e := basicEmail(t)
	e.HTML = "<p>Hi</p>"
	e.Cc = Many(mustAddress(t, "cc@example.com", ""))
	e.ReplyTo = One(mustAddress(t, "reply@example.com", ""))
	tracking := false
	e.Tracking = &tracking
	e.Tags = map[string]any{"campaign": "launch", "wave": 2}
	e.Headers = map[string]any{"X-Priority": "1"}
	e.ScheduledAt = "2026-11-01T09:00:00Z"
	e.ReferenceID = "0123456789ABCDEF01234567"

	payload, err := e.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	m := toJSON(t, payload)

	if _, ok := m["to"].(map[string]any); !ok {
		t.Errorf("to = %v, want a single object", m["to"])
	}
	if cc, ok := m["cc"].([]any); !ok || len(cc) != 1 {
		t.Errorf("cc = %v, want a one-element array", m["cc"])
	}
	if _, ok := m["reply_to"].(map[string]any); !ok {
		t.Errorf("reply_to = %v, want a single object", m["reply_to"])
	}
	if _, ok := m["bcc"]; ok {
		t.Error("bcc should be omitted when absent")
	}
	from := m["from"].(map[string]any)
	if from["address"] != "sender@example.com" || from["display_name"] != "Sender" {
		t.Errorf("from = %v", from)
	}
	if m["subject"] != "Hello" || m["html"] != "<p>Hi</p>" || m["plain"] != "Hi there" {
		t.Errorf("body fields = %v / %v / %v", m["subject"], m["html"], m["plain"])
	}
	if m["tracking"] != false {
		t.Errorf("tracking = %v, want false", m["tracking"])
	}
	if m["scheduled_at"] != "2026-11-01T09:00:00Z" {
		t.Errorf("scheduled_at = %v", m["scheduled_at"])
	}
	if m["reference_id"] != "0123456789abcdef01234567" {
		t.Errorf("reference_id = %v, want lowercased", m["reference_id"])
	}
	for _, key := range []string{"attachments", "template_id", "template_data"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s should be omitted", key)
		}
	}
}

func TestBasicEmail_Body(t *testing.T) {
	onlyPlain := basicEmail(t)
	if _, err := onlyPlain.build(seededIDs(t)); err != nil {
		t.Errorf("plain only: build() error = %v", err)
	}

	onlyHTML := basicEmail(t)
	onlyHTML.Plain = ""
	onlyHTML.HTML = "<b>hi</b>"
	if _, err := onlyHTML.build(seededIDs(t)); err != nil {
		t.Errorf("html only: build() error = %v", err)
	}

	neither := basicEmail(t)
	neither.Plain = ""
	_, err := neither.build(seededIDs(t))
	wantInvalid(t, err, "html")
}

func TestBasicEmail_GeneratesReferenceID(t *testing.T) {
	payload, err := basicEmail(t).build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	again, err := basicEmail(t).build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	if len(payload.ReferenceID) != refid.Length || strings.ToLower(payload.ReferenceID) != payload.ReferenceID {
		t.Errorf("ReferenceID = %q, want 24 lowercase hex characters", payload.ReferenceID)
	}
	if payload.ReferenceID != again.ReferenceID {
		t.Errorf("seeded builds differ: %s vs %s", payload.ReferenceID, again.ReferenceID)
	}
}

func TestBasicEmail_ValidationErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BasicEmail)
		field  string
	}{
		{"missing from", func(e *BasicEmail) { e.From = EmailAddress{} }, "from"},
		{"missing to", func(e *BasicEmail) { e.To = Recipients{} }, "to"},
		{"empty to list", func(e *BasicEmail) { e.To = Many() }, "to"},
		{"zero bcc entry", func(e *BasicEmail) { e.Bcc = Many(EmailAddress{}) }, "bcc[0]"},
		{"blank subject", func(e *BasicEmail) { e.Subject = "  " }, "subject"},
		{"long subject", func(e *BasicEmail) { e.Subject = strings.Repeat("s", 256) }, "subject"},
		{"bad tag key", func(e *BasicEmail) { e.Tags = map[string]any{strings.Repeat("k", 129): "v"} }, "tags"},
		{"bad tag type", func(e *BasicEmail) { e.Tags = map[string]any{"k": []string{"v"}} }, "tags"},
		{"bad header value", func(e *BasicEmail) { e.Headers = map[string]any{"X-Long": strings.Repeat("v", 769)} }, "headers"},
		{"zero attachment", func(e *BasicEmail) { e.Attachments = []Attachment{{}} }, "attachments[0]"},
		{"padded reference id", func(e *BasicEmail) { e.ReferenceID = " 0123456789abcdef01234567 " }, "reference_id"},
		{"short reference id", func(e *BasicEmail) { e.ReferenceID = "abc" }, "reference_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := basicEmail(t)
			tt.mutate(&e)
			_, err := e.build(seededIDs(t))
			wantInvalid(t, err, tt.field)
		})
	}
}

func TestBasicEmail_SubjectAndTagLimits(t *testing.T) {
	e := basicEmail(t)
	e.Subject = strings.Repeat("é", 255)
	e.Tags = map[string]any{strings.Repeat("k", 128): strings.Repeat("v", 768)}
	if _, err := e.build(seededIDs(t)); err != nil {
		t.Errorf("build() at limits error = %v", err)
	}
}

func TestBasicEmail_EmptyAttachmentsOmitted(t *testing.T) {
	e := basicEmail(t)
	e.Attachments = []Attachment{}
	payload, err := e.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if _, ok := toJSON(t, payload)["attachments"]; ok {
		t.Error("empty attachments should be omitted")
	}

	a, err := NewAttachment("a.txt", "hi")
	if err != nil {
		t.Fatalf("NewAttachment() error = %v", err)
	}
	e.Attachments = []Attachment{a}
	payload, err = e.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if list, ok := toJSON(t, payload)["attachments"].([]any); !ok || len(list) != 1 {
		t.Errorf("attachments = %v, want one entry", toJSON(t, payload)["attachments"])
	}
}

func templatedEmail(t *testing.T) TemplatedEmail {
	t.Helper()
	return TemplatedEmail{
		From:       mustAddress(t, "sender@example.com", ""),
		To:         Many(mustAddress(t, "a@example.com", ""), mustAddress(t, "b@example.com", "")),
		Subject:    "Your receipt",
		TemplateID: 2549,
	}
}

func TestTemplatedEmail_Build(t *testing.T) {
	e := templatedEmail(t)
	payload, err := e.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	m := toJSON(t, payload)

	if m["template_id"] != float64(2549) {
		t.Errorf("template_id = %v, want 2549", m["template_id"])
	}
	data, ok := m["template_data"].(map[string]any)
	if !ok || len(data) != 0 {
		t.Errorf("template_data = %v, want {}", m["template_data"])
	}
	if to, ok := m["to"].([]any); !ok || len(to) != 2 {
		t.Errorf("to = %v, want two-element array", m["to"])
	}
	for _, key := range []string{"html", "plain"} {
		if _, ok := m[key]; ok {
			t.Errorf("%s should be omitted for templated sends", key)
		}
	}

	e.TemplateData = map[string]any{"name": "Jane", "items": []any{1, 2}}
	payload, err = e.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if got := toJSON(t, payload)["template_data"].(map[string]any)["name"]; got != "Jane" {
		t.Errorf("template_data.name = %v, want Jane", got)
	}

	for name, value := range map[string]any{
		"NaN":      math.NaN(),
		"infinity": math.Inf(-1),
		"channel":  make(chan int),
		"function": func() {},
	} {
		t.Run(name, func(t *testing.T) {
			bad := templatedEmail(t)
			bad.TemplateData = map[string]any{"v": value}
			_, err := bad.build(seededIDs(t))
			wantInvalid(t, err, "template_data")
		})
	}
}

func TestTemplatedEmail_TemplateID(t *testing.T) {
	missing := templatedEmail(t)
	missing.TemplateID = 0
	_, err := missing.build(seededIDs(t))
	wantInvalid(t, err, "template_id")

	negative := templatedEmail(t)
	negative.TemplateID = -4
	_, err = negative.build(seededIDs(t))
	wantInvalid(t, err, "template_id")

	id, err := ParseTemplateID("2549")
	if err != nil {
		t.Fatalf("ParseTemplateID() error = %v", err)
	}
	fromString := templatedEmail(t)
	fromString.TemplateID = id
	payload, err := fromString.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if payload.TemplateID != 2549 {
		t.Errorf("TemplateID = %d, want 2549", payload.TemplateID)
	}
}

func TestParseTemplateID(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{in: "2549", want: 2549},
		{in: "1", want: 1},
		{in: "0", wantErr: true},
		{in: "-3", wantErr: true},
		{in: "", wantErr: true},
		{in: "12a", wantErr: true},
		{in: "25.49", wantErr: true},
		{in: " 7", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTemplateID(tt.in)
			if tt.wantErr {
				wantInvalid(t, err, "template_id")
				return
			}
			if err != nil {
				t.Fatalf("ParseTemplateID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("ParseTemplateID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestFormatScheduledAt(t *testing.T) {
	ts := time.Date(2026, 11, 1, 9, 30, 0, 0, time.UTC)
	if got := FormatScheduledAt(ts); got != "2026-11-01T09:30:00Z" {
		t.Errorf("FormatScheduledAt() = %q", got)
	}
	zone := time.FixedZone("CET", 3600)
	if got := FormatScheduledAt(ts.In(zone)); got != "2026-11-01T10:30:00+01:00" {
		t.Errorf("FormatScheduledAt() = %q", got)
	}
}

func bulkMessages(t *testing.T, n int) []BulkMessage {
	t.Helper()
	from := mustAddress(t, "sender@example.com", "")
	msgs := make([]BulkMessage, n)
	for i := range msgs {
		msgs[i] = BulkMessage{
			From: from,
			To:   One(mustAddress(t, fmt.Sprintf("user%d@example.com", i), "")),
		}
	}
	return msgs
}

func TestBulkEmails_Build(t *testing.T) {
	msgs := bulkMessages(t, 2)
	msgs[0].ReferenceID = "AAAAAAAAAAAAAAAAAAAAAAAA"
	msgs[1].TemplateData = map[string]any{"first_name": "Bo"}

	b := BulkEmails{
		Subject:    "Monthly update",
		TemplateID: 12,
		Tags:       map[string]any{"batch": "nov"},
		Messages:   msgs,
	}
	payload, err := b.build(seededIDs(t))
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}

	m := toJSON(t, payload)
	if m["subject"] != "Monthly update" || m["template_id"] != float64(12) {
		t.Errorf("batch fields = %v / %v", m["subject"], m["template_id"])
	}
	messages := m["messages"].([]any)
	if len(messages) != 2 {
		t.Fatalf("len(messages) = %d, want 2", len(messages))
	}

	first := messages[0].(map[string]any)
	second := messages[1].(map[string]any)
	if first["reference_id"] != "aaaaaaaaaaaaaaaaaaaaaaaa" {
		t.Errorf("messages[0].reference_id = %v", first["reference_id"])
	}
	if id, _ := second["reference_id"].(string); len(id) != refid.Length || id == first["reference_id"] {
		t.Errorf("messages[1].reference_id = %v, want a fresh id", second["reference_id"])
	}
	if _, ok := first["template_data"]; ok {
		t.Error("messages[0].template_data should be omitted")
	}
	if second["template_data"].(map[string]any)["first_name"] != "Bo" {
		t.Errorf("messages[1].template_data = %v", second["template_data"])
	}
	if _, ok := first["to"].(map[string]any); !ok {
		t.Errorf("messages[0].to = %v, want object", first["to"])
	}
}

func TestBulkEmails_BodyGroups(t *testing.T) {
	tests := []struct {
		name    string
		html    string
		plain   string
		tmpl    int
		wantErr bool
	}{
		{name: "html", html: "<p>x</p>"},
		{name: "plain", plain: "x"},
		{name: "html and plain", html: "<p>x</p>", plain: "x"},
		{name: "template", tmpl: 3},
		{name: "template and html", html: "<p>x</p>", tmpl: 3, wantErr: true},
		{name: "template and plain", plain: "x", tmpl: 3, wantErr: true},
		{name: "neither", wantErr: true},
		{name: "negative template", tmpl: -1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := BulkEmails{
				Subject:    "s",
				HTML:       tt.html,
				Plain:      tt.plain,
				TemplateID: tt.tmpl,
				Messages:   bulkMessages(t, 1),
			}
			_, err := b.build(seededIDs(t))
			if tt.wantErr {
				wantInvalid(t, err, "")
				return
			}
			if err != nil {
				t.Errorf("build() error = %v", err)
			}
		})
	}
}

func TestBulkEmails_MessageCount(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, true},
		{1, false},
		{MaxBulkMessages, false},
		{MaxBulkMessages + 1, true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.n), func(t *testing.T) {
			b := BulkEmails{Subject: "s", Plain: "p", Messages: bulkMessages(t, tt.n)}
			payload, err := b.build(seededIDs(t))
			if tt.wantErr {
				wantInvalid(t, err, "messages")
				return
			}
			if err != nil {
				t.Fatalf("build() error = %v", err)
			}
			if len(payload.Messages) != tt.n {
				t.Errorf("len(Messages) = %d, want %d", len(payload.Messages), tt.n)
			}
		})
	}
}

func TestBulkEmails_MessageFieldPaths(t *testing.T) {
	tests := []struct {
		name   string
		mutate func([]BulkMessage)
		field  string
	}{
		{"missing to", func(m []BulkMessage) { m[3].To = Recipients{} }, "messages[3].to"},
		{"missing from", func(m []BulkMessage) { m[1].From = EmailAddress{} }, "messages[1].from"},
		{"bad cc entry", func(m []BulkMessage) { m[2].Cc = Many(EmailAddress{}) }, "messages[2].cc[0]"},
		{"bad reference id", func(m []BulkMessage) { m[0].ReferenceID = "zz" }, "messages[0].reference_id"},
		{"NaN template data", func(m []BulkMessage) { m[2].TemplateData = map[string]any{"n": math.NaN()} }, "messages[2].template_data"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs := bulkMessages(t, 4)
			tt.mutate(msgs)
			b := BulkEmails{Subject: "s", Plain: "p", Messages: msgs}
			_, err := b.build(seededIDs(t))
			wantInvalid(t, err, tt.field)
		})
	}
}

func TestBulkEmails_BatchValidation(t *testing.T) {
	noSubject := BulkEmails{Plain: "p", Messages: bulkMessages(t, 1)}
	_, err := noSubject.build(seededIDs(t))
	wantInvalid(t, err, "subject")

	badHeaders := BulkEmails{
		Subject:  "s",
		Plain:    "p",
		Headers:  map[string]any{"": "v"},
		Messages: bulkMessages(t, 1),
	}
	_, err = badHeaders.build(seededIDs(t))
	wantInvalid(t, err, "headers")
}

func TestBuild_RandomSourceFailure(t *testing.T) {
	ids := refid.New(bytes.NewReader(nil))
	_, err := basicEmail(t).build(ids)
	if err == nil {
		t.Fatal("expected error when the random source is exhausted")
	}
	if errors.Is(err, ErrInvalidArgument) {
		t.Error("random source failure should not be reported as invalid argument")
	}
}
