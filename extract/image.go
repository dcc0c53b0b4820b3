package extract

import (
	"fmt"

	"github.com/otiai10/gosseract/v2"
)

// extractImage runs optical character recognition on the image and returns the
// recognized text verbatim. An image with no recognizable text yields an empty
// string, which is not an error.
func extractImage(data []byte) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := client.SetImageFromBytes(data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	return text, nil
}
