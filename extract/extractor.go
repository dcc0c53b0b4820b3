// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package extract

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// Artifact is one opaque input to the extraction pipeline: a byte blob with a
// filename hint and an optional declared content type. Artifacts are immutable
// once received and live for the duration of a single request.
type Artifact struct {
	Name        string
	Data        []byte
	ContentType string
}

// Format identifies a supported extraction format.
type Format int

const (
	FormatUnknown Format = iota
	FormatText
	FormatPDF
	FormatDocx
	FormatImage
	FormatEML
)

// DetectFormat returns the extraction format for a filename based on its
// extension (case-insensitive). Unknown extensions map to FormatUnknown.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt":
		return FormatText
	case ".pdf":
		return FormatPDF
	case ".docx":
		return FormatDocx
	case ".png", ".jpg", ".jpeg":
		return FormatImage
	case ".eml":
		return FormatEML
	default:
		return FormatUnknown
	}
}

// Extract converts an artifact into plain text, dispatching on the detected
// format. Unknown formats fail with ErrUnsupportedFormat carrying the rejected
// extension.
func Extract(a *Artifact) (string, error) {
	switch DetectFormat(a.Name) {
	case FormatText:
		return extractText(a.Data)
	case FormatPDF:
		return extractPDF(a.Data)
	case FormatDocx:
		return extractDocx(a.Data)
	case FormatImage:
		return extractImage(a.Data)
	case FormatEML:
		return extractEML(a.Data)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, strings.ToLower(filepath.Ext(a.Name)))
	}
}

// extractText decodes the bytes as UTF-8.
func extractText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", ErrDecode
	}
	return string(data), nil
}
