package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name:    "same content produces same ID",
			content: "loan modification request",
		},
		{
			name:    "empty string",
			content: "",
		},
		{
			name:    "long content",
			content: "Dear servicer, I am writing to request a modification of my mortgage terms following a change in employment",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)

			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("payoff quote request")
	id2 := IDFromContent("escrow analysis request")

	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content")
	}
}

func TestEmailRecordMUS_RoundTrip(t *testing.T) {
	record := EmailRecord{
		Id:       42,
		Contents: "hello\n\n[Attachment: statement.pdf]\naccount summary",
		Classification: ClassificationResult{
			RequestIntents: []RequestIntent{
				{Intent: "loan_modification", Reasoning: "sender asks for new terms", ConfidenceScore: 0.9},
				{Intent: "forbearance", Reasoning: "hardship mentioned", ConfidenceScore: 0.4},
			},
			SubRequests: []SubRequest{
				{SubRequest: "payment_deferral", Reasoning: "asks to skip a payment"},
			},
		},
		SimilarEmails:   []SimilarEmail{{Contents: "prior email", Score: 0.81}},
		ReceiverAddress: "x9k2ab@loanservice.com",
		AttachmentNames: []string{"statement.pdf", "photo.png"},
		Vector:          []float32{0.1, -0.5, 0.25},
		ContentHash:     IDFromContent("hello"),
	}
	record.CreatedAt = record.CreatedAt.UTC()
	record.InsertedAt = record.InsertedAt.UTC()
	record.UpdatedAt = record.UpdatedAt.UTC()

	buf := make([]byte, EmailRecordMUS.Size(record))
	n := EmailRecordMUS.Marshal(record, buf)
	if n != len(buf) {
		t.Fatalf("Marshal wrote %d bytes, Size reported %d", n, len(buf))
	}

	got, rn, err := EmailRecordMUS.Unmarshal(buf)
	if err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if rn != len(buf) {
		t.Errorf("Unmarshal consumed %d bytes, expected %d", rn, len(buf))
	}
	if got.Id != record.Id || got.Contents != record.Contents {
		t.Errorf("round trip mismatch: got %+v", got)
	}
	if len(got.Classification.RequestIntents) != 2 || got.Classification.RequestIntents[0].Intent != "loan_modification" {
		t.Errorf("classification round trip mismatch: %+v", got.Classification)
	}
	if len(got.SimilarEmails) != 1 || got.SimilarEmails[0].Score != 0.81 {
		t.Errorf("similar emails round trip mismatch: %+v", got.SimilarEmails)
	}
	if len(got.Vector) != 3 || got.Vector[1] != -0.5 {
		t.Errorf("vector round trip mismatch: %+v", got.Vector)
	}
	if got.ContentHash != record.ContentHash {
		t.Errorf("content hash round trip mismatch")
	}
}

func TestEmailRecordMUS_Truncated(t *testing.T) {
	record := EmailRecord{Contents: "short", ReceiverAddress: "a@b.c"}
	buf := make([]byte, EmailRecordMUS.Size(record))
	EmailRecordMUS.Marshal(record, buf)

	_, _, err := EmailRecordMUS.Unmarshal(buf[:2])
	if err == nil {
		t.Errorf("expected error unmarshaling truncated record")
	}
}
