package services

import (
	"errors"
	"sync"
	"time"

	"clubportal/internal/models"
)

// fakeClock — детерминированное время для кулдауна и сроков.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fakeVerifRepo struct {
	mu      sync.Mutex
	records map[string]*models.LoginVerification

	failSweep    bool
	failAttempts bool
}

func newFakeVerifRepo() *fakeVerifRepo {
	return &fakeVerifRepo{records: map[string]*models.LoginVerification{}}
}

func (r *fakeVerifRepo) Create(v *models.LoginVerification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *v
	r.records[v.SessionID] = &cp
	return nil
}

func (r *fakeVerifRepo) GetBySessionID(sessionID string) (*models.LoginVerification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	v, ok := r.records[sessionID]
	if !ok {
		return nil, nil
	}
	cp := *v
	return &cp, nil
}

func (r *fakeVerifRepo) RecordFailedAttempt(sessionID string, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAttempts {
		return 0, errors.New("store down")
	}
	v, ok := r.records[sessionID]
	if !ok {
		return 0, errors.New("no rows")
	}
	v.Attempts++
	v.LastAttemptAt = at
	return v.Attempts, nil
}

func (r *fakeVerifRepo) DeleteBySessionID(sessionID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[sessionID]; !ok {
		return false, nil
	}
	delete(r.records, sessionID)
	return true, nil
}

func (r *fakeVerifRepo) DeleteExpired(now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failSweep {
		return 0, errors.New("store down")
	}
	var n int64
	for id, v := range r.records {
		if v.ExpiresAt.Before(now) {
			delete(r.records, id)
			n++
		}
	}
	return n, nil
}

func (r *fakeVerifRepo) CountRecentByMember(memberID int, since time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := 0
	for _, v := range r.records {
		if v.MemberID == memberID && !v.LastAttemptAt.Before(since) {
			c++
		}
	}
	return c, nil
}

type fakeMemberRepo struct {
	mu      sync.Mutex
	members map[int]*models.Member
	err     error
}

func newFakeMemberRepo(members ...*models.Member) *fakeMemberRepo {
	r := &fakeMemberRepo{members: map[int]*models.Member{}}
	for _, m := range members {
		r.members[m.ID] = m
	}
	return r
}

func (r *fakeMemberRepo) Create(m *models.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = len(r.members) + 1
	r.members[m.ID] = m
	return nil
}

func (r *fakeMemberRepo) GetByID(id int) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	return r.members[id], nil
}

func (r *fakeMemberRepo) GetByEmail(email string) (*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, m := range r.members {
		if m.Email == email {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMemberRepo) List(limit, offset int) ([]*models.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Member
	for _, m := range r.members {
		out = append(out, m)
	}
	return out, nil
}

type sentMail struct {
	Email string
	Code  string
}

type fakeEmailService struct {
	mu   sync.Mutex
	sent []sentMail
}

func (s *fakeEmailService) SendLoginCodeEmail(email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, sentMail{Email: email, Code: code})
	return nil
}

func (s *fakeEmailService) SendWelcomeEmail(email, name string) error {
	return nil
}

func (s *fakeEmailService) last() sentMail {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return sentMail{}
	}
	return s.sent[len(s.sent)-1]
}
