package health

// Service encapsulates health-related checks.
type Service struct {
	aiEnabled bool
}

// NewService constructs a new health service. aiEnabled reports whether a
// completion credential was configured at startup.
func NewService(aiEnabled bool) *Service {
	return &Service{aiEnabled: aiEnabled}
}

// Status returns the health payload.
func (s *Service) Status() map[string]bool {
	return map[string]bool{"ok": true, "ai_enabled": s.aiEnabled}
}
