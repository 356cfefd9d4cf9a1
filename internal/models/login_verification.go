package models

import "time"

// LoginVerification — одна запись на каждую отправку кода входа.
// Храним только bcrypt-хэш кода (CodeHash), TTL и счётчик попыток.
// SessionID — непрозрачный идентификатор, который уходит клиенту
// и по которому запись ищется при подтверждении.
type LoginVerification struct {
	SessionID     string    `json:"session_id"`
	MemberID      int       `json:"member_id"`
	CodeHash      string    `json:"-"`
	Attempts      int       `json:"attempts"`
	LastAttemptAt time.Time `json:"last_attempt_at"`
	ExpiresAt     time.Time `json:"expires_at"`
}
