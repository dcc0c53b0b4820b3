package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jhillyerd/enmime"
)

// extractEML renders a .eml message as text: a header block of From, To,
// Subject and Date (missing headers rendered empty), a blank line, then the
// message body. The plain-text body part is preferred; when only an HTML part
// exists it is returned raw, prefixed with a marker.
func extractEML(data []byte) (string, error) {
	env, err := enmime.ReadEnvelope(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	body := env.Text
	if body == "" && env.HTML != "" {
		body = "HTML Email: " + env.HTML
	}

	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\n", env.GetHeader("From"))
	fmt.Fprintf(&b, "To: %s\n", env.GetHeader("To"))
	fmt.Fprintf(&b, "Subject: %s\n", env.GetHeader("Subject"))
	fmt.Fprintf(&b, "Date: %s\n", env.GetHeader("Date"))
	b.WriteString("\n")
	b.WriteString(body)

	return b.String(), nil
}
