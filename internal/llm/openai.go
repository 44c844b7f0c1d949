package llm

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

// Defaults for the OpenAI chat-completions endpoint.
const (
	DefaultBaseURL     = "https://api.openai.com/v1"
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.2
	DefaultTimeout     = 60 * time.Second

	systemPrompt = "You are a helpful assistant."

	// maxErrorBody bounds how much of an error response is kept in StatusError.
	maxErrorBody = 512
)

// OpenAIClient calls an OpenAI-compatible chat-completions endpoint.
type OpenAIClient struct {
	apiKey      string
	baseURL     string
	model       string
	temperature float64
	httpClient  *http.Client
}

// OpenAIOption configures an OpenAIClient.
type OpenAIOption func(*OpenAIClient)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) OpenAIOption {
	return func(o *OpenAIClient) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithBaseURL points the client at another OpenAI-compatible API root.
func WithBaseURL(url string) OpenAIOption {
	return func(o *OpenAIClient) {
		if url != "" {
			o.baseURL = strings.TrimRight(url, "/")
		}
	}
}

// WithModel sets the model identifier sent with each request.
func WithModel(model string) OpenAIOption {
	return func(o *OpenAIClient) {
		if model != "" {
			o.model = model
		}
	}
}

// WithTemperature sets the sampling temperature.
func WithTemperature(t float64) OpenAIOption {
	return func(o *OpenAIClient) {
		o.temperature = t
	}
}

// NewOpenAI creates a client authenticating with apiKey.
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAIClient {
	o := &OpenAIClient{
		apiKey:      apiKey,
		baseURL:     DefaultBaseURL,
		model:       DefaultModel,
		temperature: DefaultTemperature,
		httpClient:  &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Model returns the model identifier in use.
func (o *OpenAIClient) Model() string {
	return o.model
}

// sdkOptions pins every setting the SDK would otherwise read from the
// environment, and disables its retries.
func (o *OpenAIClient) sdkOptions() []option.RequestOption {
	return []option.RequestOption{
		option.WithAPIKey(o.apiKey),
		option.WithBaseURL(o.baseURL + "/"),
		option.WithHTTPClient(o.httpClient),
		option.WithMaxRetries(0),
	}
}

// GenerateText implements TextGenerator with a single chat completion.
func (o *OpenAIClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.sdkOptions()...)

	completion, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
		Temperature: openai.Float(o.temperature),
	})
	if err != nil {
		return "", mapSDKError(err)
	}
	if len(completion.Choices) == 0 {
		return "", remoteErr("chat response has no choices", nil)
	}

	return strings.TrimSpace(completion.Choices[0].Message.Content), nil
}

// mapSDKError converts SDK failures into errors matching ErrRemoteGeneration.
// HTTP status failures become *StatusError.
func mapSDKError(err error) error {
	var apiErr *openai.Error
	if errors.As(err, &apiErr) {
		msg := strings.TrimSpace(apiErr.Message)
		if msg == "" {
			msg = strings.TrimSpace(apiErr.RawJSON())
		}
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}
		return &StatusError{StatusCode: apiErr.StatusCode, Body: msg}
	}
	return remoteErr("chat completion request", err)
}
