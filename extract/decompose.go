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
	"bytes"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jhillyerd/enmime"
)

// Attachment is a file attachment decomposed from a .eml container and
// materialized in transient storage. The caller that requested decomposition
// owns the files and must remove them on every exit path.
type Attachment struct {
	Filename    string
	Path        string
	ContentType string
}

// Decompose parses a .eml container and yields every attachment part in
// container order. Each attachment's bytes are written to a uniquely named
// file under dir so the attachment can be re-read and fed through Extract
// like a directly uploaded file. Parts without a declared filename get a
// synthesized "attachment-<uuid><ext>" name, with the extension derived from
// the declared content type (".bin" when the type maps to none).
func Decompose(emlData []byte, dir string) ([]Attachment, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(emlData))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	var attachments []Attachment
	for _, part := range env.Attachments {
		filename := part.FileName
		if filename == "" {
			filename = "attachment-" + uuid.NewString() + extensionForType(part.ContentType)
		}

		path := filepath.Join(dir, uuid.NewString())
		if err := os.WriteFile(path, part.Content, 0600); err != nil {
			return nil, fmt.Errorf("writing attachment %s: %w", filename, err)
		}

		attachments = append(attachments, Attachment{
			Filename:    filename,
			Path:        path,
			ContentType: part.ContentType,
		})
	}

	return attachments, nil
}

// extensionForType maps a MIME content type to a file extension, defaulting
// to a generic binary extension.
func extensionForType(contentType string) string {
	exts, err := mime.ExtensionsByType(contentType)
	if err != nil || len(exts) == 0 {
		return ".bin"
	}
	return exts[0]
}
