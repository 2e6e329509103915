package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/ark"
	"github.com/cloudwego/eino/components/model"
)

// Config aggregates every subsystem's configuration.
type Config struct {
	Server  ServerConfig
	AI      AIConfig
	Cache   CacheConfig
	Records RecordsConfig
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	ai, err := loadAIConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:  server,
		AI:      ai,
		Cache:   loadCacheConfig(),
		Records: loadRecordsConfig(),
	}, nil
}

// ServerConfig describes the HTTP listener.
type ServerConfig struct {
	Addr string
}

func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// Allow ":8080" or "127.0.0.1:8080" directly.
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

// Gateway protocols supported by the provider router. The protocol is
// resolved once here, never re-sniffed per call.
const (
	ProtocolOpenAI  = "openai"
	ProtocolGeneric = "generic"
)

// AIConfig describes the remote AI gateway and the optional Ark model.
type AIConfig struct {
	GatewayURL      string
	GatewayProtocol string
	Model           string
	APIKey          string
	TimeoutSeconds  int

	ArkAPIKey    string
	ArkAccessKey string
	ArkSecretKey string
	ArkModel     string
	ArkBaseURL   string
	ArkRegion    string
}

// HTTPGatewayEnabled reports whether an HTTP gateway endpoint is configured.
func (c AIConfig) HTTPGatewayEnabled() bool {
	return c.GatewayURL != ""
}

// ArkEnabled reports whether the Ark credentials and model are present.
func (c AIConfig) ArkEnabled() bool {
	return c.ArkModel != "" && (c.ArkAPIKey != "" || (c.ArkAccessKey != "" && c.ArkSecretKey != ""))
}

// NewArkChatModel builds an Ark chat model instance from the configuration.
func (c AIConfig) NewArkChatModel(ctx context.Context) (model.ChatModel, error) {
	if !c.ArkEnabled() {
		return nil, fmt.Errorf("ark credentials or model missing: provide ARK_API_KEY + ARK_MODEL or an AK/SK pair")
	}

	return ark.NewChatModel(ctx, &ark.ChatModelConfig{
		BaseURL:   c.ArkBaseURL,
		Region:    c.ArkRegion,
		APIKey:    c.ArkAPIKey,
		AccessKey: c.ArkAccessKey,
		SecretKey: c.ArkSecretKey,
		Model:     c.ArkModel,
	})
}

func loadAIConfig() (AIConfig, error) {
	timeout := 30
	if override, err := parseOptionalIntEnv("AI_TIMEOUT_SECONDS"); err != nil {
		return AIConfig{}, err
	} else if override != nil && *override > 0 {
		timeout = *override
	}

	gatewayURL := strings.TrimRight(strings.TrimSpace(os.Getenv("AI_SERVICE_URL")), "/")

	protocol := strings.ToLower(strings.TrimSpace(os.Getenv("AI_GATEWAY_PROTOCOL")))
	switch protocol {
	case "", ProtocolOpenAI, ProtocolGeneric:
	default:
		return AIConfig{}, fmt.Errorf("invalid AI_GATEWAY_PROTOCOL value %q", protocol)
	}
	if protocol == "" && gatewayURL != "" {
		// Port 3000 is the Open WebUI deployment, which speaks the
		// OpenAI-compatible chat completions shape.
		if strings.Contains(gatewayURL, ":3000") {
			protocol = ProtocolOpenAI
		} else {
			protocol = ProtocolGeneric
		}
	}

	return AIConfig{
		GatewayURL:      gatewayURL,
		GatewayProtocol: protocol,
		Model:           getEnvOrDefault("AI_MODEL", "qwen2.5:1.5b"),
		APIKey:          getEnvOrDefault("OPENAI_API_KEY", "sk-placeholder"),
		TimeoutSeconds:  timeout,
		ArkAPIKey:       strings.TrimSpace(os.Getenv("ARK_API_KEY")),
		ArkAccessKey:    strings.TrimSpace(os.Getenv("ARK_ACCESS_KEY")),
		ArkSecretKey:    strings.TrimSpace(os.Getenv("ARK_SECRET_KEY")),
		ArkModel:        strings.TrimSpace(os.Getenv("ARK_MODEL")),
		ArkBaseURL:      getEnvOrDefault("ARK_BASE_URL", "https://ark.cn-beijing.volces.com/api/v3"),
		ArkRegion:       getEnvOrDefault("ARK_REGION", "cn-beijing"),
	}, nil
}

// CacheConfig describes the durable local transcript cache.
type CacheConfig struct {
	Dir string
}

func loadCacheConfig() CacheConfig {
	return CacheConfig{Dir: getEnvOrDefault("CACHE_DIR", "data/cache")}
}

// RecordsConfig describes the remote record store used for best-effort
// transcript persistence.
type RecordsConfig struct {
	URL           string
	AdminIdentity string
	AdminPassword string
	Collection    string
}

// Enabled reports whether remote persistence should be attempted at all.
func (c RecordsConfig) Enabled() bool {
	return c.URL != ""
}

func loadRecordsConfig() RecordsConfig {
	return RecordsConfig{
		URL:           strings.TrimRight(strings.TrimSpace(os.Getenv("POCKETBASE_URL")), "/"),
		AdminIdentity: strings.TrimSpace(os.Getenv("POCKETBASE_ADMIN_EMAIL")),
		AdminPassword: strings.TrimSpace(os.Getenv("POCKETBASE_ADMIN_PASSWORD")),
		Collection:    getEnvOrDefault("CHAT_COLLECTION", "chat_messages"),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
