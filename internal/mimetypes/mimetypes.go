// Package mimetypes maps file extensions to MIME content types using a fixed
// table, so attachment content types do not depend on the host's mime.types.
package mimetypes

import (
	"path/filepath"
	"strings"
)

// Fallback is used for unknown or missing extensions.
const Fallback = "application/octet-stream"

// Table maps a lowercase extension without the leading dot to a content type.
// Tables are read-only after construction.
type Table map[string]string

// Default is the table used for attachments read from disk.
var Default = Table{
	// text
	"txt":  "text/plain",
	"text": "text/plain",
	"log":  "text/plain",
	"csv":  "text/csv",
	"tsv":  "text/tab-separated-values",
	"htm":  "text/html",
	"html": "text/html",
	"css":  "text/css",
	"md":   "text/markdown",
	"ics":  "text/calendar",
	"vcf":  "text/vcard",
	"xml":  "application/xml",
	"json": "application/json",
	"yaml": "application/yaml",
	"yml":  "application/yaml",
	"js":   "text/javascript",
	"rtf":  "application/rtf",

	// images
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"webp": "image/webp",
	"svg":  "image/svg+xml",
	"ico":  "image/vnd.microsoft.icon",
	"tif":  "image/tiff",
	"tiff": "image/tiff",
	"heic": "image/heic",
	"avif": "image/avif",

	// documents
	"pdf":  "application/pdf",
	"doc":  "application/msword",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"xls":  "application/vnd.ms-excel",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"ppt":  "application/vnd.ms-powerpoint",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"odt":  "application/vnd.oasis.opendocument.text",
	"ods":  "application/vnd.oasis.opendocument.spreadsheet",
	"odp":  "application/vnd.oasis.opendocument.presentation",
	"epub": "application/epub+zip",

	// archives
	"zip": "application/zip",
	"gz":  "application/gzip",
	"tar": "application/x-tar",
	"7z":  "application/x-7z-compressed",
	"rar": "application/vnd.rar",
	"bz2": "application/x-bzip2",

	// audio and video
	"mp3":  "audio/mpeg",
	"wav":  "audio/wav",
	"ogg":  "audio/ogg",
	"m4a":  "audio/mp4",
	"mp4":  "video/mp4",
	"mov":  "video/quicktime",
	"avi":  "video/x-msvideo",
	"webm": "video/webm",
	"mpeg": "video/mpeg",

	// mail
	"eml": "message/rfc822",
	"msg": "application/vnd.ms-outlook",

	// fonts
	"ttf":   "font/ttf",
	"otf":   "font/otf",
	"woff":  "font/woff",
	"woff2": "font/woff2",
}

// Lookup returns the content type for ext, with or without a leading dot,
// compared case-insensitively. Unknown extensions yield Fallback.
func (t Table) Lookup(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "" {
		return Fallback
	}
	if ct, ok := t[ext]; ok {
		return ct
	}
	return Fallback
}

// ForFile returns the content type for the extension of name.
func (t Table) ForFile(name string) string {
	return t.Lookup(filepath.Ext(name))
}
