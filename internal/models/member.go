package models

import "time"

const (
	MemberStatusActive   = "active"
	MemberStatusDisabled = "disabled"
)

type Member struct {
	ID        int       `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	RoleID    int       `json:"role_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity — минимальная проекция участника для обработчиков запросов.
// Роль и статус берём из БД на каждый запрос, а не из токена,
// чтобы они не устаревали на время жизни токена.
type Identity struct {
	MemberID int    `json:"member_id"`
	RoleID   int    `json:"role_id"`
	Status   string `json:"status"`
}

func (i *Identity) Active() bool {
	return i != nil && i.Status == MemberStatusActive
}

type RequestCodeRequest struct {
	Email string `json:"email"`
}

type VerifyCodeRequest struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
}
