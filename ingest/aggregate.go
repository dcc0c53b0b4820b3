package ingest

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/poiesic/mailsift/extract"
)

// Request carries the raw inputs of a single email processing call.
// Any combination of body text, an uploaded email file, and supplementary
// attachments is accepted, as long as at least one of them yields text.
type Request struct {
	// Body is plain email text supplied directly by the caller.
	Body string

	// Primary is the uploaded email file, typically a .eml container but
	// any supported document format is accepted.
	Primary *extract.Artifact

	// Attachments are supplementary files uploaded alongside the email.
	Attachments []*extract.Artifact
}

// attachmentSection is the outcome of extracting one attachment.
type attachmentSection struct {
	name string
	text string
	ok   bool
}

// render returns the aggregate-text section for this attachment. Attachments
// that could not be extracted are annotated rather than dropped, so the
// classifier still sees that they were present.
func (s attachmentSection) render() string {
	if !s.ok {
		return fmt.Sprintf("[Attachment: %s - Could not extract text]", s.name)
	}
	return fmt.Sprintf("[Attachment: %s]\n%s", s.name, s.text)
}

// buildAggregate assembles the full text of the request: the direct body
// first, then the primary email file, then its embedded attachments, then the
// supplementary attachments. Sections are separated by blank lines.
//
// Failures to extract attachment content are annotated in place. Failures on
// the primary file itself, and failures to re-read decomposed attachment
// files, are returned as errors.
func (p *Pipeline) buildAggregate(req *Request, tmpDir string) (string, []string, error) {
	var sections []string
	var names []string

	if req.Body != "" {
		sections = append(sections, req.Body)
	}

	if req.Primary != nil {
		text, err := extract.Extract(req.Primary)
		if err != nil {
			return "", nil, fmt.Errorf("extracting %s: %w", req.Primary.Name, err)
		}
		sections = append(sections, text)

		if extract.DetectFormat(req.Primary.Name) == extract.FormatEML {
			embedded, err := p.extractEmbedded(req.Primary.Data, tmpDir)
			if err != nil {
				return "", nil, err
			}
			for _, section := range embedded {
				sections = append(sections, section.render())
				names = append(names, section.name)
			}
		}
	}

	for _, section := range p.extractConcurrently(req.Attachments) {
		sections = append(sections, section.render())
		names = append(names, section.name)
	}

	text := strings.Join(sections, "\n\n")
	if text == "" {
		return "", nil, ErrNoContent
	}
	return text, names, nil
}

// extractEmbedded decomposes a .eml container into attachment files under
// tmpDir and extracts each one in container order.
func (p *Pipeline) extractEmbedded(emlData []byte, tmpDir string) ([]attachmentSection, error) {
	attachments, err := extract.Decompose(emlData, tmpDir)
	if err != nil {
		return nil, fmt.Errorf("decomposing email: %w", err)
	}

	sections := make([]attachmentSection, 0, len(attachments))
	for _, attachment := range attachments {
		data, err := os.ReadFile(attachment.Path)
		if err != nil {
			return nil, fmt.Errorf("reading attachment %s: %w", attachment.Filename, err)
		}

		artifact := &extract.Artifact{
			Name:        attachment.Filename,
			Data:        data,
			ContentType: attachment.ContentType,
		}
		sections = append(sections, p.extractOne(artifact))
	}
	return sections, nil
}

// extractConcurrently extracts the supplementary attachments on the worker
// pool, preserving upload order in the returned slice.
func (p *Pipeline) extractConcurrently(artifacts []*extract.Artifact) []attachmentSection {
	sections := make([]attachmentSection, len(artifacts))

	var wg sync.WaitGroup
	for i, artifact := range artifacts {
		wg.Add(1)
		task := func() {
			defer wg.Done()
			sections[i] = p.extractOne(artifact)
		}
		if err := p.extractPool.Submit(task); err != nil {
			// Pool saturated or released, extract on the calling goroutine
			task()
		}
	}
	wg.Wait()

	return sections
}

// extractOne extracts a single attachment, folding any extraction failure
// into an annotated section.
func (p *Pipeline) extractOne(artifact *extract.Artifact) attachmentSection {
	text, err := extract.Extract(artifact)
	if err != nil {
		p.logger.Warn("could not extract attachment text",
			"attachment", artifact.Name, "err", err)
		return attachmentSection{name: artifact.Name, ok: false}
	}
	return attachmentSection{name: artifact.Name, text: text, ok: true}
}
