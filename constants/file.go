package constants

import "strings"

// File formats understood by the text extractor.
const (
	PDF   = "PDF"
	IMAGE = "IMAGE"
	TXT   = "TXT"
	EMAIL = "EMAIL"
)

// AllowedExtensions holds the default allowed file extensions for document imports.
var AllowedExtensions = map[string]struct{}{
	"pdf":  {},
	"jpg":  {},
	"jpeg": {},
	"png":  {},
	"txt":  {},
	"eml":  {},
}

// NormalizeExt lowercases and trims the dot from a file extension.
func NormalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
}

// MapExtToFormat returns the format for an extension, or "" when unsupported.
func MapExtToFormat(ext string) string {
	switch NormalizeExt(ext) {
	case "pdf":
		return PDF
	case "jpg", "jpeg", "png":
		return IMAGE
	case "txt":
		return TXT
	case "eml":
		return EMAIL
	default:
		return ""
	}
}
