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


package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/poiesic/mailsift/ai"
	"github.com/poiesic/mailsift/core"
)

// Classifier implements ai.Classifier against the OpenAI Assistants API.
// Each classification creates a thread, posts the email as a message, runs
// the configured assistant, and polls the run until it finishes.
type Classifier struct {
	host         string
	apiKey       string
	pollInterval time.Duration
	pollTimeout  time.Duration
	client       *http.Client
	logger       *slog.Logger

	mu          sync.RWMutex
	assistantID string
}

type thread struct {
	ID string `json:"id"`
}

type run struct {
	ID        string `json:"id"`
	Status    string `json:"status"`
	LastError *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"last_error"`
}

type messageText struct {
	Value string `json:"value"`
}

type messageContent struct {
	Type string       `json:"type"`
	Text *messageText `json:"text"`
}

type message struct {
	Role    string           `json:"role"`
	Content []messageContent `json:"content"`
}

type messageList struct {
	Data []message `json:"data"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &Classifier{
		host:         config.APIHost,
		apiKey:       config.APIKey,
		assistantID:  config.AssistantID,
		pollInterval: config.PollInterval,
		pollTimeout:  config.PollTimeout,
		client:       &http.Client{},
		logger:       slog.Default().With("component", "assistant-classifier"),
	}, nil
}

// NewClassifier creates a new classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// SetAssistantID replaces the assistant identity used for subsequent
// classifications. Calls already in flight keep the identity they started with.
func (c *Classifier) SetAssistantID(id string) {
	c.mu.Lock()
	c.assistantID = id
	c.mu.Unlock()
	c.logger.Info("assistant identity updated", "assistant_id", id)
}

// AssistantID returns the identity currently used for classification.
func (c *Classifier) AssistantID() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.assistantID
}

// ClassifyEmail classifies the email text by running the configured assistant
// and parsing its JSON reply.
func (c *Classifier) ClassifyEmail(ctx context.Context, text string) (*core.ClassificationResult, error) {
	assistantID := c.AssistantID()

	var th thread
	if err := c.doJSON(ctx, http.MethodPost, "/threads", struct{}{}, &th); err != nil {
		return nil, fmt.Errorf("creating thread: %w", err)
	}

	msg := map[string]string{
		"role":    "user",
		"content": buildClassificationPrompt(text),
	}
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+th.ID+"/messages", msg, nil); err != nil {
		return nil, fmt.Errorf("posting message: %w", err)
	}

	var r run
	body := map[string]string{"assistant_id": assistantID}
	if err := c.doJSON(ctx, http.MethodPost, "/threads/"+th.ID+"/runs", body, &r); err != nil {
		return nil, fmt.Errorf("starting run: %w", err)
	}

	if err := c.waitForRun(ctx, th.ID, &r); err != nil {
		return nil, err
	}

	reply, err := c.latestAssistantReply(ctx, th.ID)
	if err != nil {
		return nil, err
	}

	result, err := parseClassificationPayload(reply)
	if err != nil {
		c.logger.Warn("unparseable assistant reply", "thread_id", th.ID, "err", err)
		return nil, err
	}

	c.logger.Debug("email classified",
		"thread_id", th.ID,
		"intents", len(result.RequestIntents),
		"sub_requests", len(result.SubRequests))
	return result, nil
}

// waitForRun polls the run at the configured interval until it reaches a
// terminal state or the poll timeout elapses.
func (c *Classifier) waitForRun(ctx context.Context, threadID string, r *run) error {
	deadline := time.Now().Add(c.pollTimeout)
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		switch r.Status {
		case "completed":
			return nil
		case "failed", "cancelled", "expired":
			detail := r.Status
			if r.LastError != nil {
				detail = fmt.Sprintf("%s: %s", r.Status, r.LastError.Message)
			}
			return fmt.Errorf("%w: run %s %s", ai.ErrBackendFailure, r.ID, detail)
		}

		if time.Now().After(deadline) {
			return fmt.Errorf("%w: run %s still %s after %s",
				ai.ErrClassificationTimeout, r.ID, r.Status, c.pollTimeout)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := c.doJSON(ctx, http.MethodGet, "/threads/"+threadID+"/runs/"+r.ID, nil, r); err != nil {
			return fmt.Errorf("polling run: %w", err)
		}
	}
}

// latestAssistantReply fetches the newest message on the thread and returns
// its text content.
func (c *Classifier) latestAssistantReply(ctx context.Context, threadID string) (string, error) {
	var list messageList
	path := "/threads/" + threadID + "/messages?order=desc&limit=1"
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &list); err != nil {
		return "", fmt.Errorf("listing messages: %w", err)
	}

	if len(list.Data) == 0 {
		return "", fmt.Errorf("%w: no messages on thread %s", ai.ErrEmptyResponse, threadID)
	}
	for _, content := range list.Data[0].Content {
		if content.Type == "text" && content.Text != nil {
			return content.Text.Value, nil
		}
	}
	return "", fmt.Errorf("%w: no text content on thread %s", ai.ErrEmptyResponse, threadID)
}

// doJSON performs a JSON round trip against the assistants API. A nil out
// discards the response body.
func (c *Classifier) doJSON(ctx context.Context, method, path string, in, out any) error {
	var reqBody io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.host+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("OpenAI-Beta", "assistants=v2")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ai.ErrBackendFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %s %s returned %d: %s",
			ai.ErrBackendFailure, method, path, resp.StatusCode, snippet)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ai.ErrBackendFailure, err)
	}
	return nil
}
