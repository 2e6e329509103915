package intel_test

import (
	"context"
	"strings"
	"testing"

	"github.com/gynmultiverse/concierge/backend/internal/service/intel"
)

func TestProcessOwnerRules(t *testing.T) {
	r := intel.New(nil, nil)

	reply, err := r.Process(context.Background(), "How do I debug this error?", "General", "u1", "owner")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if !strings.Contains(reply, "Admin Panel") {
		t.Fatalf("expected owner debugging answer, got %q", reply)
	}
}

func TestProcessStudentWellnessRule(t *testing.T) {
	r := intel.New(nil, nil)

	reply, err := r.Process(context.Background(), "I'm feeling a lot of stress lately", "General", "u1", "student")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if !strings.Contains(reply, "Wellness") {
		t.Fatalf("expected wellness pointer for student, got %q", reply)
	}
}

func TestProcessWellnessSummary(t *testing.T) {
	wellness := intel.NewMemoryWellnessSource()
	wellness.AddLog("u1", intel.WellnessLog{Date: "2026-08-30", Steps: 8200, SleepMinutes: 432, Mood: "good"})
	r := intel.New(wellness, nil)

	reply, err := r.Process(context.Background(), "give me a summary", "Wellness Coach", "u1", "user")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if !strings.Contains(reply, "8200") || !strings.Contains(reply, "7h 12m") {
		t.Fatalf("expected steps and sleep in summary, got %q", reply)
	}
}

func TestProcessWellnessNoData(t *testing.T) {
	r := intel.New(intel.NewMemoryWellnessSource(), nil)

	reply, err := r.Process(context.Background(), "summary please", "Wellness Coach", "nobody", "user")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if !strings.Contains(reply, "don't see any wellness data") {
		t.Fatalf("expected no-data answer, got %q", reply)
	}
}

func TestProcessWellnessTipIsDeterministicWithPicker(t *testing.T) {
	r := intel.New(nil, nil, intel.WithTipPicker(func(int) int { return 0 }))

	reply, err := r.Process(context.Background(), "any tip for me?", "Wellness Coach", "u1", "user")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if !strings.Contains(reply, "Wellness Tip") || !strings.Contains(reply, "glass of water") {
		t.Fatalf("expected first tip, got %q", reply)
	}
}

func TestProcessBusinessRules(t *testing.T) {
	business := &intel.MemoryBusinessSource{Revenue: 125000, DealCount: 4, DealValue: 60000, Users: 812}
	r := intel.New(nil, business)

	reply, _ := r.Process(context.Background(), "what is the revenue forecast?", "General", "u1", "owner-ops")
	if !strings.Contains(reply, "$125000") {
		t.Fatalf("expected revenue answer, got %q", reply)
	}

	reply, _ = r.Process(context.Background(), "show me the pipeline", "General", "u1", "user")
	if !strings.Contains(reply, "4 active deals") {
		t.Fatalf("expected deals answer, got %q", reply)
	}

	reply, _ = r.Process(context.Background(), "how many users do we have", "General", "u1", "user")
	if !strings.Contains(reply, "812 registered users") {
		t.Fatalf("expected user count answer, got %q", reply)
	}
}

func TestProcessDefaultFallbackEchoesQuery(t *testing.T) {
	r := intel.New(nil, nil)

	reply, err := r.Process(context.Background(), "quantum entanglement", "General", "u1", "user")
	if err != nil {
		t.Fatalf("Process err: %v", err)
	}
	if !strings.Contains(reply, "quantum entanglement") {
		t.Fatalf("expected fallback to echo the query, got %q", reply)
	}
}
