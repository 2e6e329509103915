package ai

import (
	"context"
	"fmt"
	"strings"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/compose"
	"github.com/cloudwego/eino/schema"

	"github.com/gynmultiverse/concierge/backend/internal/config"
	"github.com/gynmultiverse/concierge/backend/internal/model/chat"
)

// arkGateway runs turns through a compiled eino chain over the Ark chat
// model. Used when Ark credentials are configured and no HTTP gateway is.
type arkGateway struct {
	chain compose.Runnable[map[string]any, *schema.Message]
}

func newArkGateway(ctx context.Context, cfg config.AIConfig) (*arkGateway, error) {
	chatModel, err := cfg.NewArkChatModel(ctx)
	if err != nil {
		return nil, fmt.Errorf("create ark chat model: %w", err)
	}

	promptTemplate := prompt.FromMessages(
		schema.FString,
		schema.SystemMessage("{system}"),
		schema.MessagesPlaceholder("history", true),
		schema.UserMessage("{query}"),
	)

	chain := compose.NewChain[map[string]any, *schema.Message]()
	chain.AppendChatTemplate(promptTemplate)
	chain.AppendChatModel(chatModel)

	runnable, err := chain.Compile(ctx)
	if err != nil {
		return nil, fmt.Errorf("compile chat chain: %w", err)
	}

	return &arkGateway{chain: runnable}, nil
}

func (g *arkGateway) Kind() string { return "ark" }

func (g *arkGateway) Send(ctx context.Context, req Request) (string, error) {
	history := make([]*schema.Message, 0, len(req.History))
	for _, msg := range req.History {
		switch msg.Role {
		case chat.RoleUser:
			history = append(history, schema.UserMessage(msg.Content))
		case chat.RoleAssistant:
			history = append(history, schema.AssistantMessage(msg.Content, nil))
		}
	}

	response, err := g.chain.Invoke(ctx, map[string]any{
		"system":  req.SystemPrompt,
		"history": history,
		"query":   req.Query,
	})
	if err != nil {
		return "", fmt.Errorf("run ark chain: %w", err)
	}
	if response == nil || strings.TrimSpace(response.Content) == "" {
		return "", fmt.Errorf("ark returned an empty message")
	}
	return response.Content, nil
}
