package ai

import (
	"strings"
	"testing"

	"github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
)

func testKnowledge() knowledge.Store {
	return knowledge.NewMemoryStore(knowledge.Seed())
}

func TestComposeSystemPromptOwner(t *testing.T) {
	got := ComposeSystemPrompt("owner", "Dashboard", testKnowledge())

	if !strings.Contains(got, "'Dashboard' context") {
		t.Fatalf("expected context in preamble, got %q", got)
	}
	if !strings.Contains(got, "[PROJECT KNOWLEDGE]") {
		t.Fatal("expected knowledge section")
	}
	if !strings.Contains(got, "System Owner") {
		t.Fatalf("expected owner directive, got %q", got)
	}
}

func TestComposeSystemPromptUnknownRoleNeverErrors(t *testing.T) {
	got := ComposeSystemPrompt("astronaut", "", testKnowledge())

	if !strings.Contains(got, "'General' context") {
		t.Fatalf("expected General default context, got %q", got)
	}
	if !strings.Contains(got, "helpful assistant") {
		t.Fatalf("expected generic directive for unknown role, got %q", got)
	}
}

func TestComposeSystemPromptIsDeterministic(t *testing.T) {
	kb := testKnowledge()
	first := ComposeSystemPrompt("teacher", "School", kb)
	second := ComposeSystemPrompt("teacher", "School", kb)
	if first != second {
		t.Fatal("expected identical output for identical input")
	}
}

func TestComposeSystemPromptRoleDirectives(t *testing.T) {
	kb := testKnowledge()
	for role, marker := range map[string]string{
		"student":        "assisting a Student",
		"teacher":        "assisting a Teacher",
		"parent":         "assisting a Parent",
		"individual":     "assisting an Individual User",
		"wellness_coach": "Wellness Coach",
	} {
		got := ComposeSystemPrompt(role, "General", kb)
		if !strings.Contains(got, marker) {
			t.Fatalf("role %q: expected %q in prompt", role, marker)
		}
	}
}

func TestComposeSystemPromptNilKnowledge(t *testing.T) {
	got := ComposeSystemPrompt("owner", "General", nil)
	if !strings.Contains(got, "No role-specific knowledge available.") {
		t.Fatalf("expected placeholder snapshot, got %q", got)
	}
}
