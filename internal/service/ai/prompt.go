package ai

import (
	"fmt"
	"strings"

	"github.com/gynmultiverse/concierge/backend/internal/model/knowledge"
)

// ComposeSystemPrompt builds the deterministic system instruction for a
// turn: a shared preamble naming the context, the serialized knowledge
// snapshot for the role, then a role-specific behavioral directive. Unknown
// roles get the generic directive; this never fails.
func ComposeSystemPrompt(role, contextLabel string, kb knowledge.Store) string {
	if contextLabel == "" {
		contextLabel = "General"
	}

	snapshot := "No role-specific knowledge available."
	if kb != nil {
		if snap, ok := kb.ForRole(role); ok {
			snapshot = snap.Render()
		}
	}

	base := fmt.Sprintf("You are the Concierge AI for the '%s' context.\n\n[PROJECT KNOWLEDGE]\n%s\n\n[INSTRUCTIONS]", contextLabel, snapshot)

	switch strings.ToLower(strings.TrimSpace(role)) {
	case "owner":
		return base + " You are assisting the System Owner. You have comprehensive knowledge of the project, including development, production, error handling, and handovers. Act as a senior technical partner. You are responsible for helping the owner with EVERYTHING in the application, from code debugging to deployment strategies."
	case "student":
		return base + " You are assisting a Student. Focus on learning, searching for knowledge, wellness, course planning, and academic success."
	case "teacher":
		return base + " You are assisting a Teacher. Focus on pedagogy, student tracking, and classroom management."
	case "parent":
		return base + " You are assisting a Parent. Focus on student well-being, progress monitoring, and school communication."
	case "individual":
		return base + " You are assisting an Individual User. Focus on project management, creativity, and personal productivity."
	case "wellness_coach":
		return base + " You are a Wellness Coach. Focus on health, fitness, and mental well-being."
	default:
		return base + " You are a helpful assistant."
	}
}
