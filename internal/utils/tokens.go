package utils

import "github.com/google/uuid"

// NewVerificationSessionID — непрозрачный идентификатор верификационной
// сессии; уходит клиенту вместе с письмом и служит ключом записи в БД.
func NewVerificationSessionID() string {
	return uuid.NewString()
}
