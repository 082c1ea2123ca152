// Package ollama implements completion.Provider against a local Ollama
// server's /api/chat endpoint. It needs no credential and is meant for
// running the agent offline.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/conversation"
	"github.com/papercomputeco/arenito/pkg/prompt"
)

const (
	// Name is the canonical provider name.
	Name = "ollama"

	// DefaultBaseURL is the standard local Ollama address.
	DefaultBaseURL = "http://localhost:11434"

	// DefaultModel is used when Options.Model is empty.
	DefaultModel = "llama3.2"

	defaultTimeout = 2 * time.Minute
)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatOptions struct {
	Temperature *float64 `json:"temperature,omitempty"`
	TopP        *float64 `json:"top_p,omitempty"`
	TopK        *int     `json:"top_k,omitempty"`
	NumPredict  int      `json:"num_predict,omitempty"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
	Stream   bool          `json:"stream"`
	Options  *chatOptions  `json:"options,omitempty"`
}

type chatResponse struct {
	Message chatMessage `json:"message"`
	Done    bool        `json:"done"`
	Error   string      `json:"error"`
}

// Config configures the Ollama provider.
type Config struct {
	BaseURL    string
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Provider calls Ollama's chat endpoint once per turn.
type Provider struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates an Ollama provider.
func New(cfg Config) *Provider {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Provider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// Name
func (p *Provider) Name() string { return Name }

// RequiresCredential is false; Ollama is unauthenticated.
func (p *Provider) RequiresCredential() bool { return false }

// Complete sends the prompt as a non-streaming chat request.
func (p *Provider) Complete(ctx context.Context, req completion.Request) (string, error) {
	model := req.Options.Model
	if model == "" {
		model = DefaultModel
	}

	payload, err := json.Marshal(chatRequest{
		Model:    model,
		Messages: toMessages(req.Prompt),
		Stream:   false,
		Options:  toOptions(req.Options),
	})
	if err != nil {
		return "", completion.NewProviderError(Name, fmt.Errorf("marshal request: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/chat", bytes.NewReader(payload))
	if err != nil {
		return "", completion.NewProviderError(Name, fmt.Errorf("create request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(httpReq)
	if err != nil {
		return "", completion.NewProviderError(Name, fmt.Errorf("send request: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", completion.NewProviderError(Name, fmt.Errorf("read response: %w", err))
	}

	if resp.StatusCode != http.StatusOK {
		return "", completion.NewProviderError(Name, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var result chatResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return "", completion.NewProviderError(Name, fmt.Errorf("unmarshal response: %w", err))
	}
	if result.Error != "" {
		return "", completion.NewProviderError(Name, errors.New(result.Error))
	}

	return completion.Finalize(Name, result.Message.Content)
}

// toMessages puts the instruction first as a system message and renames the
// model role to Ollama's "assistant".
func toMessages(p prompt.Prompt) []chatMessage {
	messages := make([]chatMessage, 0, len(p.Turns)+1)
	if p.Instruction != "" {
		messages = append(messages, chatMessage{Role: "system", Content: p.Instruction})
	}
	for _, t := range p.Turns {
		role := "user"
		if t.Role == conversation.RoleModel {
			role = "assistant"
		}
		messages = append(messages, chatMessage{Role: role, Content: t.Text})
	}
	return messages
}

func toOptions(opts completion.Options) *chatOptions {
	if opts.Temperature == nil && opts.TopP == nil && opts.TopK == nil && opts.MaxOutputTokens == 0 {
		return nil
	}
	return &chatOptions{
		Temperature: opts.Temperature,
		TopP:        opts.TopP,
		TopK:        opts.TopK,
		NumPredict:  opts.MaxOutputTokens,
	}
}
