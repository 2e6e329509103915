package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gynmultiverse/concierge/backend/internal/config"
	"github.com/gynmultiverse/concierge/backend/internal/model/chat"
)

// Request carries one provider turn: the composed system prompt, the prior
// conversation snapshot, and the new user query with its routing metadata.
type Request struct {
	SystemPrompt string
	History      []chat.Message
	Query        string
	Context      string
	UserID       string
	Role         string
}

// Gateway is one remote reply strategy. Implementations are resolved once
// from configuration; a Send error means "fall through to the local tier".
type Gateway interface {
	Kind() string
	Send(ctx context.Context, req Request) (string, error)
}

// NewGateway resolves the configured gateway strategy. It returns (nil, nil)
// when no remote endpoint is configured at all, in which case the router
// uses the local fallback directly.
func NewGateway(ctx context.Context, cfg config.AIConfig) (Gateway, error) {
	if cfg.HTTPGatewayEnabled() {
		client := &http.Client{Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second}
		switch cfg.GatewayProtocol {
		case config.ProtocolOpenAI:
			return &openAIGateway{endpoint: cfg.GatewayURL, model: cfg.Model, apiKey: cfg.APIKey, client: client}, nil
		case config.ProtocolGeneric:
			return &genericGateway{endpoint: cfg.GatewayURL, client: client}, nil
		default:
			return nil, fmt.Errorf("unresolved gateway protocol %q", cfg.GatewayProtocol)
		}
	}

	if cfg.ArkEnabled() {
		return newArkGateway(ctx, cfg)
	}

	return nil, nil
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

func conversation(req Request) []wireMessage {
	msgs := make([]wireMessage, 0, len(req.History)+1)
	for _, m := range req.History {
		msgs = append(msgs, wireMessage{Role: m.Role, Content: m.Content})
	}
	return append(msgs, wireMessage{Role: chat.RoleUser, Content: req.Query})
}

// openAIGateway speaks the OpenAI-compatible chat completions shape (Open
// WebUI and friends). The system prompt travels as the first message.
type openAIGateway struct {
	endpoint string
	model    string
	apiKey   string
	client   *http.Client
}

func (g *openAIGateway) Kind() string { return "openai" }

func (g *openAIGateway) Send(ctx context.Context, req Request) (string, error) {
	msgs := append([]wireMessage{{Role: chat.RoleSystem, Content: req.SystemPrompt}}, conversation(req)...)
	payload := map[string]any{
		"model":    g.model,
		"messages": msgs,
		"stream":   false,
	}

	var parsed struct {
		Choices []struct {
			Message wireMessage `json:"message"`
		} `json:"choices"`
	}
	headers := map[string]string{"Authorization": "Bearer " + g.apiKey}
	if err := postJSON(ctx, g.client, g.endpoint+"/chat/completions", headers, payload, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("gateway returned no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}

// genericGateway speaks the concierge AI service shape; the service composes
// its own prompt from the routing metadata.
type genericGateway struct {
	endpoint string
	client   *http.Client
}

func (g *genericGateway) Kind() string { return "generic" }

func (g *genericGateway) Send(ctx context.Context, req Request) (string, error) {
	payload := map[string]any{
		"messages": conversation(req),
		"context":  req.Context,
		"userId":   req.UserID,
		"role":     req.Role,
	}

	var parsed struct {
		Response string `json:"response"`
	}
	if err := postJSON(ctx, g.client, g.endpoint+"/chat", nil, payload, &parsed); err != nil {
		return "", err
	}
	if parsed.Response == "" {
		return "", fmt.Errorf("gateway returned an empty response")
	}
	return parsed.Response, nil
}

func postJSON(ctx context.Context, client *http.Client, url string, headers map[string]string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	for key, value := range headers {
		httpReq.Header.Set(key, value)
	}

	resp, err := client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("gateway call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("gateway status %d: %s", resp.StatusCode, bytes.TrimSpace(snippet))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
