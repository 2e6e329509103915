package knowledge

import (
	"fmt"
	"strings"
)

// Snapshot captures what the assistant is allowed to assume about the
// platform for a given user role. It is injected verbatim into the system
// prompt, so keep entries short and declarative.
type Snapshot struct {
	Role    string   `json:"role"`
	Title   string   `json:"title"`
	Summary string   `json:"summary"`
	Modules []string `json:"modules"`
}

// Render serializes the snapshot for prompt injection.
func (s Snapshot) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Audience: %s (%s)\n", s.Title, s.Role)
	b.WriteString(s.Summary)
	if len(s.Modules) > 0 {
		b.WriteString("\nAvailable modules: ")
		b.WriteString(strings.Join(s.Modules, ", "))
	}
	return b.String()
}

// Seed provides the default role knowledge shipped with the platform.
func Seed() []Snapshot {
	return []Snapshot{
		{
			Role:    "owner",
			Title:   "System Owner",
			Summary: "Full administrative visibility: deployment status, error logs, tenant management, billing, and project handover material.",
			Modules: []string{"Admin Panel", "Platform Settings", "Reports", "CRM", "Finance"},
		},
		{
			Role:    "student",
			Title:   "Student",
			Summary: "Enrolled courses, assignments, grades, learning resources, and personal wellness tracking.",
			Modules: []string{"Academics", "Resources", "Wellness", "Communication"},
		},
		{
			Role:    "teacher",
			Title:   "Teacher",
			Summary: "Class rosters, gradebook, lesson planning tools, attendance, and student progress tracking.",
			Modules: []string{"Gradebook", "Lesson Planner", "Attendance", "School"},
		},
		{
			Role:    "parent",
			Title:   "Parent",
			Summary: "Child progress overviews, school communication channels, tuition and invoice management.",
			Modules: []string{"Academics", "Finances", "Communication"},
		},
		{
			Role:    "individual",
			Title:   "Individual User",
			Summary: "Personal projects, creative tools, skill development, and an asset library for uploads.",
			Modules: []string{"Projects", "Learn", "Asset Library"},
		},
		{
			Role:    "wellness_coach",
			Title:   "Wellness Coach",
			Summary: "Daily wellness logs covering steps, sleep and mood, plus coaching tips and summaries.",
			Modules: []string{"Wellness", "Activities"},
		},
	}
}
