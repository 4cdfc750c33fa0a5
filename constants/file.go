package constants

import "strings"

// FileFormat is the coarse input kind the pipeline prepares for.
type FileFormat string

const (
	PDF   FileFormat = "PDF"
	IMAGE FileFormat = "IMAGE"
)

// AllowedExtensions holds the file extensions the pipeline accepts.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"webp": {},
	"bmp":  {},
	"tiff": {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MapExtToFormat maps a file extension (with or without dot) to its format.
// Returns "" for extensions outside AllowedExtensions.
func MapExtToFormat(ext string) FileFormat {
	norm := NormalizeExt(ext)
	if _, ok := AllowedExtensions[norm]; !ok {
		return ""
	}
	if norm == "pdf" {
		return PDF
	}
	return IMAGE
}

// MapMIMEToFormat maps a declared MIME hint to its format. Returns "" when
// the MIME type is not one the pipeline handles.
func MapMIMEToFormat(mime string) FileFormat {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "application/pdf":
		return PDF
	case "image/png", "image/jpeg", "image/webp", "image/bmp", "image/tiff":
		return IMAGE
	default:
		return ""
	}
}

// ResolveHint interprets a caller-supplied format hint, either a file
// extension or a MIME type, and returns the format together with an
// extension suitable for staging the bytes on disk. Both return values are
// empty when the hint is not supported.
func ResolveHint(hint string) (FileFormat, string) {
	norm := NormalizeExt(hint)
	if f := MapExtToFormat(norm); f != "" {
		return f, norm
	}
	f := MapMIMEToFormat(hint)
	if f == "" {
		return "", ""
	}
	if f == PDF {
		return PDF, "pdf"
	}
	if i := strings.LastIndexByte(hint, '/'); i >= 0 {
		if sub := NormalizeExt(hint[i+1:]); MapExtToFormat(sub) == IMAGE {
			return IMAGE, sub
		}
	}
	return IMAGE, "png"
}
