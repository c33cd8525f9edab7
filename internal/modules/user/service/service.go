package service

import (
	"github.com/reshetovitsme/discord-thread-digest/internal/modules/user/domain"
	"github.com/samber/lo"
)

// Service handles command authorization
type Service struct {
	allowedUsers []string
}

// New creates a new user service. An empty allow list lets every human user in.
func New(allowedUsers []string) *Service {
	return &Service{allowedUsers: allowedUsers}
}

// IsAuthorized checks if a user may run commands
func (s *Service) IsAuthorized(user domain.User) bool {
	if user.Bot {
		return false
	}
	if len(s.allowedUsers) == 0 {
		return true // No restrictions
	}
	return lo.Contains(s.allowedUsers, user.ID)
}
