package services

import (
	"errors"
	"fmt"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"clubportal/internal/models"
	"clubportal/internal/repositories"
	"clubportal/internal/utils"
)

var (
	ErrVerificationNotFound = errors.New("verification not found")
	ErrAttemptThrottled     = errors.New("attempt throttled")
	ErrCodeExpired          = errors.New("code expired")
	ErrCodeMismatch         = errors.New("code mismatch")
	ErrResendThrottled      = errors.New("resend throttled")
)

// Настройки отправки (троттлинг повторных писем, как и для попыток,
// считается по БД, а не по памяти процесса).
const (
	maxResendsPerWindow = 3
	resendWindow        = 10 * time.Minute
)

type LoginService interface {
	// RequestCode шлёт код на почту и возвращает session_id для подтверждения.
	RequestCode(email string) (string, error)
	// Verify проверяет код; при успехе возвращает запись и сессионный токен.
	// Запись здесь НЕ удаляется — это отдельный шаг Consume.
	Verify(sessionID, code string) (*models.LoginVerification, string, error)
	// Consume удаляет запись после успешного Verify, чтобы код нельзя
	// было погасить дважды.
	Consume(sessionID string) error
}

type loginService struct {
	verifRepo  repositories.LoginVerificationRepository
	memberRepo repositories.MemberRepository
	emails     EmailService
	sessions   SessionService
	gen        CodeGenerator

	codeTTL  time.Duration
	cooldown time.Duration
	now      func() time.Time
}

func NewLoginService(
	verifRepo repositories.LoginVerificationRepository,
	memberRepo repositories.MemberRepository,
	emails EmailService,
	sessions SessionService,
	gen CodeGenerator,
	codeTTL, cooldown time.Duration,
) LoginService {
	return &loginService{
		verifRepo:  verifRepo,
		memberRepo: memberRepo,
		emails:     emails,
		sessions:   sessions,
		gen:        gen,
		codeTTL:    codeTTL,
		cooldown:   cooldown,
		now:        time.Now,
	}
}

func (s *loginService) RequestCode(email string) (string, error) {
	member, err := s.memberRepo.GetByEmail(email)
	if err != nil {
		return "", err
	}
	if member == nil {
		// не раскрываем, существует ли участник: отдаём session_id-пустышку,
		// подтверждение по нему честно упадёт с ErrVerificationNotFound
		log.Printf("[login][request] unknown email, decoy session issued")
		return utils.NewVerificationSessionID(), nil
	}

	// Троттлинг отправок: не чаще 3/10мин
	since := s.now().Add(-resendWindow)
	cnt, err := s.verifRepo.CountRecentByMember(member.ID, since)
	if err != nil {
		return "", err
	}
	if cnt >= maxResendsPerWindow {
		return "", ErrResendThrottled
	}

	code, err := s.gen.Generate()
	if err != nil {
		return "", err
	}

	sentAt := s.now()
	v := &models.LoginVerification{
		SessionID:     utils.NewVerificationSessionID(),
		MemberID:      member.ID,
		CodeHash:      code.Hashed,
		Attempts:      0,
		LastAttemptAt: sentAt,
		ExpiresAt:     sentAt.Add(s.codeTTL),
	}
	if err := s.verifRepo.Create(v); err != nil {
		return "", err
	}

	if err := s.emails.SendLoginCodeEmail(member.Email, code.Readable); err != nil {
		return "", fmt.Errorf("send login code: %w", err)
	}

	log.Printf("[login][request] code sent member_id=%d session_id=%s", member.ID, v.SessionID)
	return v.SessionID, nil
}

func (s *loginService) Verify(sessionID, code string) (*models.LoginVerification, string, error) {
	now := s.now()

	// Чистка протухших записей — попутная, не условие корректности:
	// срок конкретной записи всё равно перепроверяется ниже.
	if _, err := s.verifRepo.DeleteExpired(now); err != nil {
		log.Printf("[login][verify] expired sweep failed: %v", err)
	}

	v, err := s.verifRepo.GetBySessionID(sessionID)
	if err != nil {
		return nil, "", err
	}
	if v == nil {
		return nil, "", ErrVerificationNotFound
	}

	// Кулдаун между попытками: троттлинг перебора, попытку не считаем.
	if v.Attempts > 0 && now.Sub(v.LastAttemptAt) < s.cooldown {
		return nil, "", ErrAttemptThrottled
	}

	if !now.Before(v.ExpiresAt) {
		return nil, "", ErrCodeExpired
	}

	if err := bcrypt.CompareHashAndPassword([]byte(v.CodeHash), []byte(code)); err != nil {
		attempts, incErr := s.verifRepo.RecordFailedAttempt(v.SessionID, now)
		if incErr != nil {
			// не сообщаем об успехе, если не смогли записать попытку
			log.Printf("[login][verify] record attempt failed session_id=%s: %v", v.SessionID, incErr)
			return nil, "", incErr
		}
		log.Printf("[login][verify] code mismatch session_id=%s attempts=%d", v.SessionID, attempts)
		return nil, "", ErrCodeMismatch
	}

	token, err := s.sessions.Issue(v.MemberID)
	if err != nil {
		return nil, "", err
	}
	log.Printf("[login][verify] OK member_id=%d session_id=%s", v.MemberID, v.SessionID)
	return v, token, nil
}

func (s *loginService) Consume(sessionID string) error {
	deleted, err := s.verifRepo.DeleteBySessionID(sessionID)
	if err != nil {
		return err
	}
	if !deleted {
		// запись уже погашена параллельным запросом или сметена чисткой
		return ErrVerificationNotFound
	}
	return nil
}
