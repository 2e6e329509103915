// Package intel is the local fallback intelligence: a deterministic keyword
// rule engine that always produces a reply with zero network dependency. It
// is the last tier of the provider chain, which is what keeps the chat
// usable fully offline.
package intel

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
)

var wellnessTips = []string{
	"Drink a glass of water right after waking up to jumpstart your metabolism.",
	"Take a 5-minute stretch break for every hour of desk work.",
	"Try the 4-7-8 breathing technique to reduce stress.",
	"Aim for 30 minutes of moderate activity today.",
}

// Responder answers queries from keyword rules and injected data sources.
type Responder struct {
	wellness WellnessSource
	business BusinessSource
	pick     func(n int) int
}

// Option adjusts responder behavior.
type Option func(*Responder)

// WithTipPicker substitutes the random tip selection, for tests.
func WithTipPicker(pick func(n int) int) Option {
	return func(r *Responder) { r.pick = pick }
}

// New builds a responder over the supplied sources. Either source may be
// nil; the affected rules then degrade to their no-data answers.
func New(wellness WellnessSource, business BusinessSource, opts ...Option) *Responder {
	r := &Responder{
		wellness: wellness,
		business: business,
		pick:     rand.Intn,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Process returns a best-effort reply for query. It never fails and never
// touches the network; the error return exists only to satisfy the fallback
// contract of the provider router.
func (r *Responder) Process(_ context.Context, query, contextLabel, userID, role string) (string, error) {
	q := strings.ToLower(query)

	if reply, ok := r.roleReply(q, role); ok {
		return reply, nil
	}
	if contextLabel == "Wellness Coach" {
		return r.wellnessReply(q, userID), nil
	}
	if reply, ok := r.generalReply(q); ok {
		return reply, nil
	}

	return "I'm processing your request... (Simulated AI Response: I understand you are asking about '" + query +
		"'. As an AI Assistant, I can help you navigate the platform or retrieve data. Please be more specific if you need a report.)", nil
}

func (r *Responder) roleReply(q, role string) (string, bool) {
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}

	switch role {
	case "owner":
		switch {
		case contains("error", "debug", "fix"):
			return "As the Owner, you have full system access. I recommend checking the 'Admin Panel' for system logs or the 'Type Safety Report' for code issues.", true
		case contains("deploy", "production"):
			return "For production deployment, ensure all environment variables are set in the server dashboard. I can help you verify the build status.", true
		case contains("handover", "transfer"):
			return "For project handovers, please ensure all documentation in the 'docs/' folder is up to date and that the 'CREDENTIALS.md' file is securely shared.", true
		}
	case "student":
		switch {
		case contains("learn", "study", "homework"):
			return "I can help you plan your study schedule. Have you checked your upcoming assignments in the 'Academics' tab?", true
		case contains("search", "find", "resource"):
			return "I can help you find learning resources. Try asking specifically for 'math videos' or 'history articles'.", true
		case contains("wellness", "health", "stress"):
			return "Your well-being is important. Check the 'Wellness' tab for mood tracking and relaxation exercises.", true
		case contains("course", "class"):
			return "You can view all your enrolled courses in the 'Academics' > 'Courses' section.", true
		}
	case "teacher":
		switch {
		case contains("lesson", "plan"):
			return "I can assist with lesson planning. Visit the 'Lesson Planner' to use the AI generator.", true
		case contains("grade", "assess"):
			return "Need to enter grades? The 'Gradebook' is ready. I can also help generate rubrics.", true
		case contains("student", "track"):
			return "You can track student progress and attendance in the 'School' section.", true
		}
	case "parent":
		switch {
		case contains("child", "progress", "grade"):
			return "You can view your child's latest grades and assignments in the 'Academics' overview.", true
		case contains("pay", "bill", "tuition"):
			return "Tuition payments and invoices can be managed in the 'Finances' section.", true
		case contains("contact", "message"):
			return "You can message teachers directly through the 'Communication' hub.", true
		}
	case "individual":
		switch {
		case contains("project", "create"):
			return "Ready to create? Go to the 'Projects' dashboard to start a new design, video, or document.", true
		case contains("learn", "skill"):
			return "Explore new skills in the 'Learn' section to enhance your creative toolkit.", true
		case contains("asset", "file"):
			return "Your 'Asset Library' holds all your uploads and brand materials.", true
		}
	}
	return "", false
}

func (r *Responder) wellnessReply(q, userID string) string {
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}

	if contains("status", "how am i", "summary") {
		if r.wellness == nil {
			return "I don't see any wellness data for today yet. Try logging your steps or sleep!"
		}
		log, ok := r.wellness.TodayLog(userID)
		if !ok {
			return "I don't see any wellness data for today yet. Try logging your steps or sleep!"
		}
		return fmt.Sprintf("Here is your wellness summary for today:\n"+
			"- **Steps**: %d (Goal: 10,000)\n"+
			"- **Sleep**: %dh %dm\n"+
			"- **Mood**: %s\n"+
			"Keep up the good work!", log.Steps, log.SleepMinutes/60, log.SleepMinutes%60, log.Mood)
	}

	if contains("sleep") && r.wellness != nil {
		logs := r.wellness.Logs(userID)
		if len(logs) > 0 {
			total := 0
			for _, l := range logs {
				total += l.SleepMinutes
			}
			avg := total / len(logs)
			verdict := "You're getting good rest!"
			if avg < 420 {
				verdict = "Try to get a bit more rest for better recovery."
			}
			return fmt.Sprintf("Your average sleep over the last %d days is **%dh %dm**. %s",
				len(logs), avg/60, avg%60, verdict)
		}
	}

	if contains("advice", "tip") {
		return "💡 **Wellness Tip**: " + wellnessTips[r.pick(len(wellnessTips))]
	}

	return "I can help you track your **steps**, **sleep**, and **mood**. Ask me for a summary or advice!"
}

func (r *Responder) generalReply(q string) (string, bool) {
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(q, w) {
				return true
			}
		}
		return false
	}

	switch {
	case contains("revenue", "forecast", "money"):
		if r.business != nil {
			return fmt.Sprintf("Based on the CRM forecast, the total projected revenue for the upcoming quarter is **$%d**.", r.business.ProjectedRevenue()), true
		}
	case contains("deal", "pipeline"):
		if r.business != nil {
			count, value := r.business.ActiveDeals()
			return fmt.Sprintf("There are currently **%d active deals** in the pipeline with a total potential value of **$%d**.", count, value), true
		}
	case contains("student", "grade", "performance"):
		return "To check student performance, please visit the **Academics** tab. I can fetch specific grades if you provide a student ID.", true
	case contains("attendance"):
		return "Attendance records are available in the **Attendance** module. You can view daily stats and individual records there.", true
	case contains("user", "count"):
		if r.business != nil {
			if users, ok := r.business.UserCount(); ok {
				return fmt.Sprintf("The platform currently has **%d registered users** across all roles.", users), true
			}
		}
		return "I couldn't access the user directory at the moment.", true
	case contains("help", "what can you do"):
		return "I am the **Concierge AI**. I can assist with:\n" +
			"- **Business Insights**: Revenue, deals, and forecasts.\n" +
			"- **Wellness**: Your personal health stats and advice.\n" +
			"- **System Info**: User counts and platform status.\n" +
			"- **Navigation**: Guide you to specific modules.\n\n" +
			"Just ask me a question!", true
	}
	return "", false
}
