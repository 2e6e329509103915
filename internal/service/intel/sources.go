package intel

import "sync"

// WellnessLog is one day of tracked wellness data for a user.
type WellnessLog struct {
	Date         string `json:"date"`
	Steps        int    `json:"steps"`
	SleepMinutes int    `json:"sleepMinutes"`
	Mood         string `json:"mood"`
}

// WellnessSource supplies wellness data for the coaching persona.
type WellnessSource interface {
	TodayLog(userID string) (WellnessLog, bool)
	Logs(userID string) []WellnessLog
}

// BusinessSource supplies CRM and platform stats for the admin persona.
type BusinessSource interface {
	ProjectedRevenue() int
	ActiveDeals() (count, value int)
	UserCount() (int, bool)
}

// MemoryWellnessSource is an in-memory WellnessSource for offline operation
// and tests.
type MemoryWellnessSource struct {
	mu   sync.RWMutex
	logs map[string][]WellnessLog
}

// NewMemoryWellnessSource returns an empty in-memory source.
func NewMemoryWellnessSource() *MemoryWellnessSource {
	return &MemoryWellnessSource{logs: make(map[string][]WellnessLog)}
}

// AddLog appends a log for userID. The newest log counts as "today".
func (s *MemoryWellnessSource) AddLog(userID string, log WellnessLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs[userID] = append(s.logs[userID], log)
}

// TodayLog returns the newest log for userID.
func (s *MemoryWellnessSource) TodayLog(userID string) (WellnessLog, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	logs := s.logs[userID]
	if len(logs) == 0 {
		return WellnessLog{}, false
	}
	return logs[len(logs)-1], true
}

// Logs returns every log recorded for userID.
func (s *MemoryWellnessSource) Logs(userID string) []WellnessLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]WellnessLog(nil), s.logs[userID]...)
}

// MemoryBusinessSource is a static BusinessSource seeded at startup.
type MemoryBusinessSource struct {
	Revenue   int
	DealCount int
	DealValue int
	Users     int
}

// ProjectedRevenue returns the projected quarterly revenue.
func (s *MemoryBusinessSource) ProjectedRevenue() int { return s.Revenue }

// ActiveDeals returns the open pipeline count and total value.
func (s *MemoryBusinessSource) ActiveDeals() (int, int) { return s.DealCount, s.DealValue }

// UserCount returns the registered user total.
func (s *MemoryBusinessSource) UserCount() (int, bool) { return s.Users, s.Users > 0 }
