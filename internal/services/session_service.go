package services

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"clubportal/internal/models"
	"clubportal/internal/repositories"
)

// SessionCookieName — фиксированное имя cookie с сессионным токеном.
const SessionCookieName = "club_session"

// MinJWTSecretLen — минимальная длина ключа подписи; проверяется один раз
// при создании сервиса (то есть при старте процесса).
const MinJWTSecretLen = 32

var ErrSecretTooShort = errors.New("jwt secret too short")

type SessionClaims struct {
	MemberID int `json:"member_id"`
	jwt.RegisteredClaims
}

type SessionService interface {
	// Issue подписывает долгоживущий сессионный токен для участника.
	Issue(memberID int) (string, error)
	// Resolve достаёт токен из Authorization (Bearer) или cookie и
	// возвращает личность участника. Отсутствующий, битый или просроченный
	// токен — это НЕ ошибка, а обычный аноним: (nil, nil). Ошибка
	// возвращается только при отказе хранилища.
	Resolve(r *http.Request) (*models.Identity, error)
}

type sessionService struct {
	secret     []byte
	ttl        time.Duration
	memberRepo repositories.MemberRepository
	now        func() time.Time
}

func NewSessionService(secret string, ttl time.Duration, memberRepo repositories.MemberRepository) (SessionService, error) {
	if len(secret) < MinJWTSecretLen {
		return nil, ErrSecretTooShort
	}
	return &sessionService{
		secret:     []byte(secret),
		ttl:        ttl,
		memberRepo: memberRepo,
		now:        time.Now,
	}, nil
}

func (s *sessionService) Issue(memberID int) (string, error) {
	now := s.now()
	claims := &SessionClaims{
		MemberID: memberID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

func (s *sessionService) Resolve(r *http.Request) (*models.Identity, error) {
	tokenStr := tokenFromRequest(r)
	if tokenStr == "" {
		return nil, nil
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		// защита: принимаем только HMAC (HS256 и т.п.)
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now))
	if err != nil || !token.Valid {
		return nil, nil
	}
	if claims.ExpiresAt == nil || claims.ExpiresAt.Time.Before(s.now()) {
		return nil, nil
	}

	// роль и статус подтягиваем из БД, токен их не несёт
	member, err := s.memberRepo.GetByID(claims.MemberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, nil
	}
	return &models.Identity{MemberID: member.ID, RoleID: member.RoleID, Status: member.Status}, nil
}

// tokenFromRequest — сначала заголовок Authorization, затем cookie.
func tokenFromRequest(r *http.Request) string {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if t := strings.TrimSpace(parts[1]); t != "" {
				return t
			}
		}
		// заголовок есть, но это не "Bearer <token>" — пробуем cookie
	}
	if c, err := r.Cookie(SessionCookieName); err == nil && c.Value != "" {
		return c.Value
	}
	return ""
}
