// Package gemini implements completion.Provider on the Gemini API through
// google.golang.org/genai.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/papercomputeco/arenito/pkg/completion"
	"github.com/papercomputeco/arenito/pkg/conversation"
	"github.com/papercomputeco/arenito/pkg/prompt"
)

const (
	// Name is the canonical provider name.
	Name = "gemini"

	// DefaultModel is used when Options.Model is empty.
	DefaultModel = "gemini-2.0-flash-exp"

	defaultTimeout = 60 * time.Second
)

// Config configures the Gemini provider.
type Config struct {
	// BaseURL overrides the Gemini API endpoint. Empty uses the SDK default.
	BaseURL string

	// Timeout bounds a single completion call. Zero uses 60s.
	Timeout time.Duration

	// HTTPClient is shared by every call. Nil uses a fresh client.
	HTTPClient *http.Client
}

// Provider calls Gemini generateContent once per turn.
type Provider struct {
	baseURL    string
	timeout    time.Duration
	httpClient *http.Client
}

// New creates a Gemini provider.
func New(cfg Config) *Provider {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}

	return &Provider{
		baseURL:    cfg.BaseURL,
		timeout:    timeout,
		httpClient: httpClient,
	}
}

// Name
func (p *Provider) Name() string { return Name }

// RequiresCredential is always true: the Gemini API authenticates by key.
func (p *Provider) RequiresCredential() bool { return true }

// Complete sends the prompt to Gemini. The SDK client is built per call so
// the credential is never cached past the request that resolved it; the
// underlying http.Client and its connection pool are shared.
func (p *Provider) Complete(ctx context.Context, req completion.Request) (string, error) {
	if req.APIKey == "" {
		return "", completion.NewProviderError(Name, errors.New("missing API key"))
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	cc := &genai.ClientConfig{
		APIKey:     req.APIKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: p.httpClient,
	}
	if p.baseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: p.baseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return "", completion.NewProviderError(Name, fmt.Errorf("create client: %w", err))
	}

	model := req.Options.Model
	if model == "" {
		model = DefaultModel
	}

	resp, err := client.Models.GenerateContent(ctx, model, toContents(req.Prompt.Turns), toConfig(req.Prompt, req.Options))
	if err != nil {
		return "", &completion.ProviderError{
			Provider: Name,
			Message:  diagnostic(err),
			Err:      err,
		}
	}
	if resp == nil {
		return "", completion.NewProviderError(Name, errors.New("no response"))
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", completion.NewProviderError(Name,
			fmt.Errorf("prompt blocked: %s", resp.PromptFeedback.BlockReason))
	}

	return completion.Finalize(Name, resp.Text())
}

// toContents maps conversation turns onto Gemini contents. Gemini uses the
// same role names as the conversation package.
func toContents(turns []conversation.Turn) []*genai.Content {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		var role genai.Role = genai.RoleUser
		if t.Role == conversation.RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return contents
}

func toConfig(p prompt.Prompt, opts completion.Options) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{}

	if p.Instruction != "" {
		cfg.SystemInstruction = genai.NewContentFromText(p.Instruction, genai.RoleUser)
	}
	if opts.Temperature != nil {
		cfg.Temperature = genai.Ptr(float32(*opts.Temperature))
	}
	if opts.TopP != nil {
		cfg.TopP = genai.Ptr(float32(*opts.TopP))
	}
	if opts.TopK != nil {
		cfg.TopK = genai.Ptr(float32(*opts.TopK))
	}
	if opts.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = int32(opts.MaxOutputTokens)
	}

	return cfg
}

// diagnostic extracts the provider's own message from SDK errors.
func diagnostic(err error) string {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return fmt.Sprintf("%d %s: %s", apiErr.Code, apiErr.Status, apiErr.Message)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil && apiErrPtr.Message != "" {
		return fmt.Sprintf("%d %s: %s", apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message)
	}
	return err.Error()
}
