package config

import "testing"

func TestLoadResolvesGatewayProtocol(t *testing.T) {
	t.Setenv("AI_SERVICE_URL", "http://localhost:3000/api")
	t.Setenv("AI_GATEWAY_PROTOCOL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.GatewayProtocol != ProtocolOpenAI {
		t.Fatalf("expected openai for a :3000 endpoint, got %q", cfg.AI.GatewayProtocol)
	}

	t.Setenv("AI_SERVICE_URL", "http://ai.internal:8000")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.GatewayProtocol != ProtocolGeneric {
		t.Fatalf("expected generic for other endpoints, got %q", cfg.AI.GatewayProtocol)
	}

	t.Setenv("AI_GATEWAY_PROTOCOL", "openai")
	cfg, err = Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.GatewayProtocol != ProtocolOpenAI {
		t.Fatalf("expected explicit protocol to win, got %q", cfg.AI.GatewayProtocol)
	}
}

func TestLoadRejectsInvalidProtocol(t *testing.T) {
	t.Setenv("AI_SERVICE_URL", "http://ai.internal:8000")
	t.Setenv("AI_GATEWAY_PROTOCOL", "soap")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown protocol")
	}
}

func TestLoadTrimsTrailingSlashes(t *testing.T) {
	t.Setenv("AI_SERVICE_URL", "http://ai.internal:8000/")
	t.Setenv("AI_GATEWAY_PROTOCOL", "generic")
	t.Setenv("POCKETBASE_URL", "http://pb.internal:8090/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load err: %v", err)
	}
	if cfg.AI.GatewayURL != "http://ai.internal:8000" {
		t.Fatalf("expected trimmed gateway URL, got %q", cfg.AI.GatewayURL)
	}
	if cfg.Records.URL != "http://pb.internal:8090" {
		t.Fatalf("expected trimmed records URL, got %q", cfg.Records.URL)
	}
}
