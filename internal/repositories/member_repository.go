package repositories

import (
	"database/sql"
	"fmt"
	"strings"

	"clubportal/internal/models"
)

type MemberRepository interface {
	Create(m *models.Member) error
	GetByID(id int) (*models.Member, error)
	GetByEmail(email string) (*models.Member, error)
	List(limit, offset int) ([]*models.Member, error)
}

type memberRepository struct {
	DB *sql.DB
}

func NewMemberRepository(db *sql.DB) MemberRepository {
	return &memberRepository{DB: db}
}

func (r *memberRepository) Create(m *models.Member) error {
	const q = `
		INSERT INTO members (email, name, role_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	if err := r.DB.QueryRow(q, strings.ToLower(m.Email), m.Name, m.RoleID, m.Status).Scan(&m.ID, &m.CreatedAt); err != nil {
		return fmt.Errorf("member create: %w", err)
	}
	return nil
}

func (r *memberRepository) GetByID(id int) (*models.Member, error) {
	const q = `
		SELECT id, email, name, role_id, status, created_at
		FROM members
		WHERE id = $1
	`
	m := &models.Member{}
	if err := r.DB.QueryRow(q, id).Scan(&m.ID, &m.Email, &m.Name, &m.RoleID, &m.Status, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("member get by id: %w", err)
	}
	return m, nil
}

func (r *memberRepository) GetByEmail(email string) (*models.Member, error) {
	const q = `
		SELECT id, email, name, role_id, status, created_at
		FROM members
		WHERE email = $1
	`
	m := &models.Member{}
	if err := r.DB.QueryRow(q, strings.ToLower(strings.TrimSpace(email))).Scan(&m.ID, &m.Email, &m.Name, &m.RoleID, &m.Status, &m.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("member get by email: %w", err)
	}
	return m, nil
}

func (r *memberRepository) List(limit, offset int) ([]*models.Member, error) {
	const q = `
		SELECT id, email, name, role_id, status, created_at
		FROM members
		ORDER BY id
		LIMIT $1 OFFSET $2
	`
	rows, err := r.DB.Query(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("member list: %w", err)
	}
	defer rows.Close()

	var out []*models.Member
	for rows.Next() {
		m := &models.Member{}
		if err := rows.Scan(&m.ID, &m.Email, &m.Name, &m.RoleID, &m.Status, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("member list scan: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}
