package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/mailsift/ai"
)

const sampleClassificationJSON = `{
  "request_intents": [
    {"intent": "Payment Deferral", "reasoning": "Borrower asks to postpone payments", "confidence_score": 0.91},
    {"intent": "Hardship Assistance", "reasoning": "Mentions job loss", "confidence_score": 0.74}
  ],
  "sub_requests": [
    {"sub_request": "Forbearance Plan", "reasoning": "Explicitly requests a pause"}
  ]
}`

func TestParseClassificationPayload_BareJSON(t *testing.T) {
	result, err := parseClassificationPayload(sampleClassificationJSON)
	require.NoError(t, err)

	require.Len(t, result.RequestIntents, 2)
	assert.Equal(t, "Payment Deferral", result.RequestIntents[0].Intent)
	assert.InDelta(t, 0.91, result.RequestIntents[0].ConfidenceScore, 1e-9)
	require.Len(t, result.SubRequests, 1)
	assert.Equal(t, "Forbearance Plan", result.SubRequests[0].SubRequest)
}

func TestParseClassificationPayload_Fenced(t *testing.T) {
	text := "Here is the classification you asked for:\n\n```json\n" +
		sampleClassificationJSON + "\n```\n\nLet me know if you need anything else."

	result, err := parseClassificationPayload(text)
	require.NoError(t, err)
	assert.Len(t, result.RequestIntents, 2)
}

func TestParseClassificationPayload_FirstFenceWins(t *testing.T) {
	text := "```json\n" + sampleClassificationJSON + "\n```\n" +
		"```json\n{\"request_intents\": [], \"sub_requests\": []}\n```"

	result, err := parseClassificationPayload(text)
	require.NoError(t, err)
	assert.Len(t, result.RequestIntents, 2)
}

func TestParseClassificationPayload_UnterminatedFence(t *testing.T) {
	_, err := parseClassificationPayload("```json\n{\"request_intents\": []}")
	assert.ErrorIs(t, err, ai.ErrInvalidPayload)
}

func TestParseClassificationPayload_NotJSON(t *testing.T) {
	_, err := parseClassificationPayload("I could not classify this email.")
	assert.ErrorIs(t, err, ai.ErrInvalidPayload)
}

func TestParseClassificationPayload_EmptyLists(t *testing.T) {
	result, err := parseClassificationPayload(`{"request_intents": [], "sub_requests": []}`)
	require.NoError(t, err)
	assert.Empty(t, result.RequestIntents)
	assert.Empty(t, result.SubRequests)
}
