package maileroo

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/maileroo/maileroo-go-sdk/internal/apierrors"
	"github.com/maileroo/maileroo-go-sdk/internal/mimetypes"
)

// Attachment is a file sent along with a message. Content is held base64
// encoded. The zero value is not a valid attachment.
type Attachment struct {
	fileName    string
	contentType string
	content     string
	inline      bool
}

// AttachmentOption configures attachment construction.
type AttachmentOption func(*attachmentConfig)

type attachmentConfig struct {
	contentType string
	inline      bool
	isBase64    bool
}

// WithContentType sets the MIME type. A blank value keeps the default.
func WithContentType(contentType string) AttachmentOption {
	return func(c *attachmentConfig) {
		c.contentType = contentType
	}
}

// WithInline marks the attachment for inline display, e.g. an image
// referenced from the HTML body.
func WithInline() AttachmentOption {
	return func(c *attachmentConfig) {
		c.inline = true
	}
}

// WithBase64Content declares that the content passed to NewAttachment is
// already base64 encoded.
func WithBase64Content() AttachmentOption {
	return func(c *attachmentConfig) {
		c.isBase64 = true
	}
}

func newAttachmentConfig(opts []AttachmentOption) attachmentConfig {
	var cfg attachmentConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// NewAttachment builds an attachment from in-memory text. Unless
// WithBase64Content is given, content is treated as UTF-8 and encoded.
// The content type defaults to application/octet-stream.
func NewAttachment(fileName, content string, opts ...AttachmentOption) (Attachment, error) {
	cfg := newAttachmentConfig(opts)

	data := []byte(content)
	if cfg.isBase64 {
		decoded, err := base64.StdEncoding.DecodeString(content)
		if err != nil {
			return Attachment{}, apierrors.Invalid("content", "content is not valid base64: %v", err)
		}
		data = decoded
	}
	return buildAttachment(fileName, data, cfg, mimetypes.Fallback)
}

// NewAttachmentFromBytes builds an attachment from raw bytes.
// WithBase64Content is ignored.
func NewAttachmentFromBytes(fileName string, data []byte, opts ...AttachmentOption) (Attachment, error) {
	cfg := newAttachmentConfig(opts)
	return buildAttachment(fileName, data, cfg, mimetypes.Fallback)
}

// NewAttachmentFromFile reads the file at path. The file name is the final
// path element and, unless WithContentType is given, the content type is
// inferred from the extension.
func NewAttachmentFromFile(path string, opts ...AttachmentOption) (Attachment, error) {
	return attachmentFromFile(path, mimetypes.Default, opts)
}

func attachmentFromFile(path string, types mimetypes.Table, opts []AttachmentOption) (Attachment, error) {
	cfg := newAttachmentConfig(opts)

	info, err := os.Stat(path)
	if err != nil {
		return Attachment{}, apierrors.Invalid("path", "cannot read attachment %q: %v", path, err)
	}
	if !info.Mode().IsRegular() {
		return Attachment{}, apierrors.Invalid("path", "attachment %q is not a regular file", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Attachment{}, apierrors.Invalid("path", "cannot read attachment %q: %v", path, err)
	}
	name := filepath.Base(path)
	return buildAttachment(name, data, cfg, types.ForFile(name))
}

func buildAttachment(fileName string, data []byte, cfg attachmentConfig, defaultType string) (Attachment, error) {
	if fileName == "" {
		return Attachment{}, apierrors.Invalid("file_name", "file name is required")
	}
	if len(data) == 0 {
		return Attachment{}, apierrors.Invalid("content", "attachment %q has no content", fileName)
	}

	contentType := strings.TrimSpace(cfg.contentType)
	if contentType == "" {
		contentType = defaultType
	}

	return Attachment{
		fileName:    fileName,
		contentType: contentType,
		content:     base64.StdEncoding.EncodeToString(data),
		inline:      cfg.inline,
	}, nil
}

// FileName returns the attachment's file name.
func (a Attachment) FileName() string { return a.fileName }

// ContentType returns the MIME type.
func (a Attachment) ContentType() string { return a.contentType }

// Content returns the base64-encoded content.
func (a Attachment) Content() string { return a.content }

// Inline reports whether the attachment is displayed inline.
func (a Attachment) Inline() bool { return a.inline }

// IsZero reports whether a was never constructed.
func (a Attachment) IsZero() bool { return a.fileName == "" }

type attachmentJSON struct {
	FileName    string `json:"file_name"`
	ContentType string `json:"content_type"`
	Content     string `json:"content"`
	Inline      bool   `json:"inline"`
}

// MarshalJSON encodes the attachment in its wire form.
func (a Attachment) MarshalJSON() ([]byte, error) {
	return json.Marshal(attachmentJSON{
		FileName:    a.fileName,
		ContentType: a.contentType,
		Content:     a.content,
		Inline:      a.inline,
	})
}
