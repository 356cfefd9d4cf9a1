package services

import (
	"fmt"
	"log"
	"strings"

	"clubportal/internal/authz"
	"clubportal/internal/models"
	"clubportal/internal/repositories"
)

type MemberService interface {
	CreateMember(m *models.Member) error
	GetMemberByID(id int) (*models.Member, error)
	ListMembers(limit, offset int) ([]*models.Member, error)
}

type memberService struct {
	repo   repositories.MemberRepository
	emails EmailService
}

func NewMemberService(repo repositories.MemberRepository, emails EmailService) MemberService {
	return &memberService{repo: repo, emails: emails}
}

func (s *memberService) CreateMember(m *models.Member) error {
	m.Email = strings.ToLower(strings.TrimSpace(m.Email))
	if m.Email == "" {
		return fmt.Errorf("email is required")
	}
	if m.RoleID == 0 {
		m.RoleID = authz.RoleMember
	}
	if m.Status == "" {
		m.Status = models.MemberStatusActive
	}

	if err := s.repo.Create(m); err != nil {
		return err
	}

	if s.emails != nil {
		if err := s.emails.SendWelcomeEmail(m.Email, m.Name); err != nil {
			// warn but do not fail creation
			log.Printf("CreateMember: warning: failed to send welcome email to %s: %v", m.Email, err)
		}
	}
	return nil
}

func (s *memberService) GetMemberByID(id int) (*models.Member, error) {
	return s.repo.GetByID(id)
}

func (s *memberService) ListMembers(limit, offset int) ([]*models.Member, error) {
	return s.repo.List(limit, offset)
}
