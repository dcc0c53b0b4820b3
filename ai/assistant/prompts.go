package assistant

const classificationPromptTemplate = `You are an AI assistant that classifies loan servicing request emails. ` +
	`For the given email content, provide the top 3 most relevant request intents, along with reasoning and a confidence score (0-1) for each. ` +
	`Also, extract sub-request types (features) present in the email and justify why they are relevant. ` +
	`Use the provided dataset file for reference. Format the response as a JSON object with 'request_intents' ` +
	`containing a list of dictionaries (each with 'intent', 'reasoning', and 'confidence_score'), ` +
	`and 'sub_requests' containing a list of dictionaries (each with 'sub_request' and 'reasoning').`

// buildClassificationPrompt appends the email content to the instruction text.
func buildClassificationPrompt(emailBody string) string {
	return classificationPromptTemplate + "\n\nEmail Content:\n" + emailBody
}
