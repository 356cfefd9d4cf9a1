package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"clubportal/internal/models"
)

type LoginVerificationRepository interface {
	Create(v *models.LoginVerification) error
	GetBySessionID(sessionID string) (*models.LoginVerification, error)
	// RecordFailedAttempt — одним атомарным UPDATE: attempts+1 и время
	// попытки; возвращает новое значение attempts.
	RecordFailedAttempt(sessionID string, at time.Time) (int, error)
	// DeleteBySessionID сообщает, была ли запись реально удалена —
	// проигравший из двух одновременных подтверждений получит false.
	DeleteBySessionID(sessionID string) (bool, error)
	DeleteExpired(now time.Time) (int64, error)
	CountRecentByMember(memberID int, since time.Time) (int, error)
}

type loginVerificationRepository struct {
	DB *sql.DB
}

func NewLoginVerificationRepository(db *sql.DB) LoginVerificationRepository {
	return &loginVerificationRepository{DB: db}
}

// Create — создаёт новую запись верификации (каждая отправка — новая строка).
func (r *loginVerificationRepository) Create(v *models.LoginVerification) error {
	const q = `
		INSERT INTO login_verifications (session_id, member_id, code_hash, attempts, last_attempt_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := r.DB.Exec(q, v.SessionID, v.MemberID, v.CodeHash, v.Attempts, v.LastAttemptAt, v.ExpiresAt); err != nil {
		return fmt.Errorf("login_verification create: %w", err)
	}
	return nil
}

func (r *loginVerificationRepository) GetBySessionID(sessionID string) (*models.LoginVerification, error) {
	const q = `
		SELECT session_id, member_id, code_hash, attempts, last_attempt_at, expires_at
		FROM login_verifications
		WHERE session_id = $1
	`
	row := r.DB.QueryRow(q, sessionID)
	var v models.LoginVerification
	if err := row.Scan(&v.SessionID, &v.MemberID, &v.CodeHash, &v.Attempts, &v.LastAttemptAt, &v.ExpiresAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("login_verification get: %w", err)
	}
	return &v, nil
}

func (r *loginVerificationRepository) RecordFailedAttempt(sessionID string, at time.Time) (int, error) {
	const q = `
		UPDATE login_verifications
		SET attempts = attempts + 1, last_attempt_at = $2
		WHERE session_id = $1
		RETURNING attempts
	`
	var attempts int
	if err := r.DB.QueryRow(q, sessionID, at).Scan(&attempts); err != nil {
		return 0, fmt.Errorf("login_verification record attempt: %w", err)
	}
	return attempts, nil
}

func (r *loginVerificationRepository) DeleteBySessionID(sessionID string) (bool, error) {
	res, err := r.DB.Exec(`DELETE FROM login_verifications WHERE session_id = $1`, sessionID)
	if err != nil {
		return false, fmt.Errorf("login_verification delete: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("login_verification delete rows affected: %w", err)
	}
	return n > 0, nil
}

// DeleteExpired — массовая чистка протухших записей.
func (r *loginVerificationRepository) DeleteExpired(now time.Time) (int64, error) {
	res, err := r.DB.Exec(`DELETE FROM login_verifications WHERE expires_at < $1`, now)
	if err != nil {
		return 0, fmt.Errorf("login_verification delete expired: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("login_verification delete expired rows affected: %w", err)
	}
	return n, nil
}

// CountRecentByMember — сколько кодов отправили за последнее окно (для
// троттлинга повторных отправок). При создании last_attempt_at равен времени
// отправки, так что свежие записи попадают в окно.
func (r *loginVerificationRepository) CountRecentByMember(memberID int, since time.Time) (int, error) {
	const q = `
		SELECT COUNT(*)
		FROM login_verifications
		WHERE member_id = $1 AND last_attempt_at >= $2
	`
	var c int
	if err := r.DB.QueryRow(q, memberID, since).Scan(&c); err != nil {
		return 0, fmt.Errorf("login_verification count recent: %w", err)
	}
	return c, nil
}
