package server

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/poiesic/mailsift/core"
	"github.com/poiesic/mailsift/extract"
	"github.com/poiesic/mailsift/ingest"
)

// emailView is the wire representation of a stored record for listings.
// Embedding vectors stay server-side.
type emailView struct {
	Id             core.ID                   `json:"id"`
	Email          string                    `json:"email"`
	Classification core.ClassificationResult `json:"classification"`
	SimilarEmails  []core.SimilarEmail       `json:"similar_emails"`
	ReceiverEmail  string                    `json:"receiver_email"`
	Attachments    []string                  `json:"attachments"`
	CreatedAt      time.Time                 `json:"created_at"`
}

func viewOf(record *core.EmailRecord) emailView {
	return emailView{
		Id:             record.Id,
		Email:          record.Contents,
		Classification: record.Classification,
		SimilarEmails:  emptyIfNilSimilar(record.SimilarEmails),
		ReceiverEmail:  record.ReceiverAddress,
		Attachments:    emptyIfNil(record.AttachmentNames),
		CreatedAt:      record.CreatedAt,
	}
}

// handleProcessEmail accepts an email as multipart form data and runs it
// through the processing pipeline. Any combination of email_body (text),
// email_file (file), and attachments (files) is accepted.
func (s *Server) handleProcessEmail(c *gin.Context) {
	req := &ingest.Request{Body: c.PostForm("email_body")}

	if header, err := c.FormFile("email_file"); err == nil {
		artifact, err := readUpload(header)
		if err != nil {
			handleError(c, NewAppError(http.StatusBadRequest, "Could not read email file", err))
			return
		}
		req.Primary = artifact
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["attachments"] {
			artifact, err := readUpload(header)
			if err != nil {
				handleError(c, NewAppError(http.StatusBadRequest, "Could not read attachment", err))
				return
			}
			req.Attachments = append(req.Attachments, artifact)
		}
	}

	result, err := s.pipeline.Process(c.Request.Context(), req)
	if err != nil {
		s.logger.Error("error processing email", "err", err)
		handleError(c, err)
		return
	}

	record := result.Record
	c.JSON(http.StatusOK, gin.H{
		"classification": record.Classification,
		"similar_emails": emptyIfNilSimilar(record.SimilarEmails),
		"receiver_email": record.ReceiverAddress,
		"created_at":     record.CreatedAt,
		"attachments":    emptyIfNil(record.AttachmentNames),
	})
}

type configureRequest struct {
	AssistantID string `json:"assistant_id" binding:"required"`
}

// handleConfigure swaps the assistant identity used for classification.
func (s *Server) handleConfigure(c *gin.Context) {
	var req configureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleError(c, NewAppError(http.StatusBadRequest, "Invalid request body", err))
		return
	}

	s.classifier.SetAssistantID(req.AssistantID)
	s.logger.Info("assistant reconfigured", "assistant_id", req.AssistantID)

	c.JSON(http.StatusOK, gin.H{
		"status":       "configured",
		"assistant_id": req.AssistantID,
	})
}

// handleListEmails returns the most recently processed emails.
func (s *Server) handleListEmails(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "100"))
	if err != nil || limit < 1 {
		handleError(c, NewAppError(http.StatusBadRequest, "Invalid limit", err))
		return
	}

	records, err := s.repository.GetRecentEmailRecords(c.Request.Context(), limit)
	if err != nil {
		handleError(c, err)
		return
	}

	views := make([]emailView, 0, len(records))
	for _, record := range records {
		views = append(views, viewOf(record))
	}

	c.JSON(http.StatusOK, gin.H{
		"emails": views,
		"count":  len(views),
	})
}

// handleStats returns storage statistics.
func (s *Server) handleStats(c *gin.Context) {
	count, err := s.repository.CountEmailRecords(c.Request.Context())
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_emails": count,
	})
}

// readUpload loads an uploaded file into an extraction artifact.
func readUpload(header *multipart.FileHeader) (*extract.Artifact, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}

	return &extract.Artifact{
		Name:        header.Filename,
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func handleError(c *gin.Context, err error) {
	appErr := MapError(err)
	c.JSON(appErr.Code, gin.H{"error": appErr.Message})
}

func emptyIfNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func emptyIfNilSimilar(s []core.SimilarEmail) []core.SimilarEmail {
	if s == nil {
		return []core.SimilarEmail{}
	}
	return s
}
