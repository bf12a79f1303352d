// Package gemini is a minimal client for the generative-text upstream
// behind the AI assistant. One request per question, no retry, no backoff,
// no per-key health tracking: a key is picked uniformly at random from the
// configured pool for simple load distribution.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

// systemPreamble is sent ahead of every user question. It describes the
// host app so the assistant can answer product questions.
const systemPreamble = `You are the built-in assistant of the ChitChat messaging app. ChitChat is a WhatsApp-style messenger where:

- users register with an email address only (it must be on the allowed domain, by default @gmail.com)
- every user gets a unique 9-digit number starting with "73"
- the unique number is shared with friends to start a conversation
- the chats page lists conversations and has a floating button to start a new one
- in settings users can change their avatar, the theme (light/dark/system) and view their unique number
- conversations can be given custom private names
- every user may ask the assistant 3 questions per 5 hours

Answer helpfully and concisely, about the app or any general topic.`

// ErrUpstream covers every failure mode of the upstream call: transport
// errors, non-2xx statuses and malformed payloads are deliberately not
// distinguished.
var ErrUpstream = errors.New("assistant upstream failure")

type Client struct {
	keys    []string
	model   string
	baseURL string
	httpc   *http.Client
}

func New(keys []string, model string) *Client {
	return &Client{
		keys:    keys,
		model:   model,
		baseURL: defaultBaseURL,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

// NewWithBaseURL is used by tests to point the client at a fake upstream.
func NewWithBaseURL(keys []string, model, baseURL string) *Client {
	c := New(keys, model)
	c.baseURL = baseURL
	return c
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generationConfig struct {
	Temperature     float64 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float64 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Generate sends one question and returns the single candidate answer.
func (c *Client) Generate(ctx context.Context, question string) (string, error) {
	if len(c.keys) == 0 {
		return "", fmt.Errorf("%w: no API keys configured", ErrUpstream)
	}
	key := c.keys[rand.IntN(len(c.keys))]

	body, err := json.Marshal(generateRequest{
		Contents: []content{{
			Parts: []part{
				{Text: systemPreamble},
				{Text: question},
			},
		}},
		GenerationConfig: generationConfig{
			Temperature:     0.7,
			TopK:            1,
			TopP:            1,
			MaxOutputTokens: 1000,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", c.baseURL, c.model, key)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidate", ErrUpstream)
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
