package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/trusttrip/booking-service/internal/domain"
	"github.com/trusttrip/booking-service/internal/repository"
)

// memStore is an in-memory repository.Store. WithinTx runs fn directly and
// locking reads record the row they lock.
type memStore struct {
	seq      int
	users    map[string]*domain.User
	projects map[string]*domain.Project
	bookings map[string]*domain.Booking
	payments map[string]*domain.Payment
	reviews  map[string]*domain.Review
	refunds  map[string]*domain.Refund
	txCount  int
	inTx     bool
	locked   []string
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[string]*domain.User{},
		projects: map[string]*domain.Project{},
		bookings: map[string]*domain.Booking{},
		payments: map[string]*domain.Payment{},
		reviews:  map[string]*domain.Review{},
		refunds:  map[string]*domain.Refund{},
	}
}

func (m *memStore) Repos() repository.Repositories {
	return repository.Repositories{
		Users:    memUsers{m},
		Projects: memProjects{m},
		Bookings: memBookings{m},
		Payments: memPayments{m},
		Reviews:  memReviews{m},
		Refunds:  memRefunds{m},
	}
}

func (m *memStore) WithinTx(_ context.Context, fn func(repository.Repositories) error) error {
	m.txCount++
	m.inTx = true
	defer func() { m.inTx = false }()
	return fn(m.Repos())
}

// lock records a row lock; row locks only exist inside a transaction.
func (m *memStore) lock(table, id string) error {
	if !m.inTx {
		return fmt.Errorf("%s %s: FOR UPDATE outside a transaction", table, id)
	}
	m.locked = append(m.locked, table+"/"+id)
	return nil
}

func (m *memStore) wasLocked(table, id string) bool {
	for _, row := range m.locked {
		if row == table+"/"+id {
			return true
		}
	}
	return false
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func stamp(created, updated *time.Time) {
	now := time.Now()
	*created, *updated = now, now
}

// sortedValues returns map values ordered by id for deterministic listings.
func sortedValues[T any](items map[string]*T) []T {
	keys := make([]string, 0, len(items))
	for k := range items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]T, 0, len(keys))
	for _, k := range keys {
		out = append(out, *items[k])
	}
	return out
}

func window[T any](items []T, params repository.ListParams) []T {
	params = params.Normalize()
	start := params.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + params.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

type memUsers struct{ m *memStore }

func (r memUsers) Create(_ context.Context, u *domain.User) error {
	for _, existing := range r.m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return fmt.Errorf("duplicate email")
		}
	}
	u.ID = r.m.nextID("user")
	stamp(&u.CreatedAt, &u.UpdatedAt)
	cp := *u
	r.m.users[u.ID] = &cp
	return nil
}

func (r memUsers) GetByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.m.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r memUsers) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memUsers) filter(f repository.UserFilter) []domain.User {
	var out []domain.User
	for _, u := range sortedValues(r.m.users) {
		if f.Verified != nil && u.Verified != *f.Verified {
			continue
		}
		if f.Search != nil && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), strings.ToLower(*f.Search)) {
			continue
		}
		out = append(out, u)
	}
	return out
}

func (r memUsers) List(_ context.Context, f repository.UserFilter, p repository.ListParams) ([]domain.User, error) {
	return window(r.filter(f), p), nil
}

func (r memUsers) Count(_ context.Context, f repository.UserFilter) (int, error) {
	return len(r.filter(f)), nil
}

func (r memUsers) UpdatePassword(_ context.Context, id, hash string) error {
	u, ok := r.m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.PasswordHash = hash
	return nil
}

func (r memUsers) UpdateRole(_ context.Context, id, role string) error {
	u, ok := r.m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Role = role
	return nil
}

func (r memUsers) UpdateStatus(_ context.Context, id string, status domain.UserStatus) error {
	u, ok := r.m.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	u.Status = status
	return nil
}

type memProjects struct{ m *memStore }

func (r memProjects) Create(_ context.Context, p *domain.Project) error {
	p.ID = r.m.nextID("project")
	stamp(&p.CreatedAt, &p.UpdatedAt)
	cp := *p
	r.m.projects[p.ID] = &cp
	return nil
}

func (r memProjects) GetByID(_ context.Context, id string) (*domain.Project, error) {
	if p, ok := r.m.projects[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r memProjects) filter(f repository.ProjectFilter) []domain.Project {
	var out []domain.Project
	for _, p := range sortedValues(r.m.projects) {
		if f.UserID != nil && p.UserID != *f.UserID {
			continue
		}
		if len(f.Statuses) > 0 {
			match := false
			for _, s := range f.Statuses {
				match = match || p.Status == s
			}
			if !match {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func (r memProjects) List(_ context.Context, f repository.ProjectFilter, params repository.ListParams) ([]domain.Project, error) {
	return window(r.filter(f), params), nil
}

func (r memProjects) Count(_ context.Context, f repository.ProjectFilter) (int, error) {
	return len(r.filter(f)), nil
}

type memBookings struct{ m *memStore }

func (r memBookings) Create(_ context.Context, b *domain.Booking) error {
	b.ID = r.m.nextID("booking")
	stamp(&b.CreatedAt, &b.UpdatedAt)
	cp := *b
	r.m.bookings[b.ID] = &cp
	return nil
}

func (r memBookings) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	if err := r.m.lock("bookings", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r memBookings) GetByID(_ context.Context, id string) (*domain.Booking, error) {
	if b, ok := r.m.bookings[id]; ok {
		cp := *b
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r memBookings) filter(f repository.BookingFilter) []domain.Booking {
	var out []domain.Booking
	for _, b := range sortedValues(r.m.bookings) {
		if f.UserID != nil && b.UserID != *f.UserID {
			continue
		}
		if f.ProjectID != nil && b.ProjectID != *f.ProjectID {
			continue
		}
		if f.Status != nil && b.Status != *f.Status {
			continue
		}
		out = append(out, b)
	}
	return out
}

func (r memBookings) List(_ context.Context, f repository.BookingFilter, p repository.ListParams) ([]domain.Booking, error) {
	return window(r.filter(f), p), nil
}

func (r memBookings) Count(_ context.Context, f repository.BookingFilter) (int, error) {
	return len(r.filter(f)), nil
}

func (r memBookings) UpdateStatus(_ context.Context, id string, status domain.BookingStatus) error {
	b, ok := r.m.bookings[id]
	if !ok {
		return pgx.ErrNoRows
	}
	b.Status = status
	return nil
}

type memPayments struct{ m *memStore }

func (r memPayments) Create(_ context.Context, p *domain.Payment) error {
	p.ID = r.m.nextID("payment")
	stamp(&p.CreatedAt, &p.UpdatedAt)
	cp := *p
	r.m.payments[p.ID] = &cp
	return nil
}

func (r memPayments) GetByIDForUpdate(ctx context.Context, id string) (*domain.Payment, error) {
	if err := r.m.lock("payments", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r memPayments) GetByID(_ context.Context, id string) (*domain.Payment, error) {
	if p, ok := r.m.payments[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r memPayments) GetByTransactionID(_ context.Context, txID string) (*domain.Payment, error) {
	for _, p := range r.m.payments {
		if p.TransactionID == txID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memPayments) filter(f repository.PaymentFilter) []domain.Payment {
	var out []domain.Payment
	for _, p := range sortedValues(r.m.payments) {
		if f.UserID != nil && p.UserID != *f.UserID {
			continue
		}
		if f.ProjectID != nil && p.ProjectID != *f.ProjectID {
			continue
		}
		if f.BookingID != nil && p.BookingID != *f.BookingID {
			continue
		}
		if f.Status != nil && p.Status != *f.Status {
			continue
		}
		out = append(out, p)
	}
	return out
}

func (r memPayments) List(_ context.Context, f repository.PaymentFilter, params repository.ListParams) ([]domain.Payment, error) {
	return window(r.filter(f), params), nil
}

func (r memPayments) Count(_ context.Context, f repository.PaymentFilter) (int, error) {
	return len(r.filter(f)), nil
}

func (r memPayments) UpdateStatus(_ context.Context, id string, status domain.PaymentStatus) error {
	p, ok := r.m.payments[id]
	if !ok {
		return pgx.ErrNoRows
	}
	p.Status = status
	return nil
}

func (r memPayments) SumCompleted(_ context.Context) (float64, error) {
	var total float64
	for _, p := range r.m.payments {
		if p.Status == domain.PaymentStatusCompleted {
			total += p.Amount
		}
	}
	return total, nil
}

type memReviews struct{ m *memStore }

func (r memReviews) Create(_ context.Context, rv *domain.Review) error {
	rv.ID = r.m.nextID("review")
	stamp(&rv.CreatedAt, &rv.UpdatedAt)
	cp := *rv
	r.m.reviews[rv.ID] = &cp
	return nil
}

func (r memReviews) GetByUserAndProject(_ context.Context, userID, projectID string) (*domain.Review, error) {
	for _, rv := range r.m.reviews {
		if rv.UserID == userID && rv.ProjectID == projectID {
			cp := *rv
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memReviews) filter(f repository.ReviewFilter) []domain.Review {
	var out []domain.Review
	for _, rv := range sortedValues(r.m.reviews) {
		if f.UserID != nil && rv.UserID != *f.UserID {
			continue
		}
		if f.ProjectID != nil && rv.ProjectID != *f.ProjectID {
			continue
		}
		if f.MinRating != nil && rv.Rating < *f.MinRating {
			continue
		}
		if f.MaxRating != nil && rv.Rating > *f.MaxRating {
			continue
		}
		out = append(out, rv)
	}
	return out
}

func (r memReviews) List(_ context.Context, f repository.ReviewFilter, p repository.ListParams) ([]domain.Review, error) {
	return window(r.filter(f), p), nil
}

func (r memReviews) Count(_ context.Context, f repository.ReviewFilter) (int, error) {
	return len(r.filter(f)), nil
}

type memRefunds struct{ m *memStore }

func (r memRefunds) Create(_ context.Context, rf *domain.Refund) error {
	rf.ID = r.m.nextID("refund")
	stamp(&rf.CreatedAt, &rf.UpdatedAt)
	cp := *rf
	r.m.refunds[rf.ID] = &cp
	return nil
}

func (r memRefunds) GetByIDForUpdate(ctx context.Context, id string) (*domain.Refund, error) {
	if err := r.m.lock("refunds", id); err != nil {
		return nil, err
	}
	return r.GetByID(ctx, id)
}

func (r memRefunds) GetByID(_ context.Context, id string) (*domain.Refund, error) {
	if rf, ok := r.m.refunds[id]; ok {
		cp := *rf
		return &cp, nil
	}
	return nil, pgx.ErrNoRows
}

func (r memRefunds) GetByPaymentID(_ context.Context, paymentID string) (*domain.Refund, error) {
	for _, rf := range r.m.refunds {
		if rf.PaymentID == paymentID {
			cp := *rf
			return &cp, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r memRefunds) filter(f repository.RefundFilter) []domain.Refund {
	var out []domain.Refund
	for _, rf := range sortedValues(r.m.refunds) {
		if f.UserID != nil && rf.UserID != *f.UserID {
			continue
		}
		if f.Status != nil && rf.Status != *f.Status {
			continue
		}
		out = append(out, rf)
	}
	return out
}

func (r memRefunds) List(_ context.Context, f repository.RefundFilter, p repository.ListParams) ([]domain.Refund, error) {
	return window(r.filter(f), p), nil
}

func (r memRefunds) Count(_ context.Context, f repository.RefundFilter) (int, error) {
	return len(r.filter(f)), nil
}

func (r memRefunds) UpdateStatus(_ context.Context, id string, status domain.RefundStatus, approvedAt *time.Time) error {
	rf, ok := r.m.refunds[id]
	if !ok {
		return pgx.ErrNoRows
	}
	rf.Status = status
	rf.ApprovedAt = approvedAt
	return nil
}

// memSessions is an in-memory RefreshSessions.
type memSessions struct {
	live map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{live: map[string]string{}}
}

func (s *memSessions) Save(_ context.Context, tokenID, userID string, _ time.Duration) error {
	s.live[tokenID] = userID
	return nil
}

func (s *memSessions) Consume(_ context.Context, tokenID string) (string, bool, error) {
	userID, ok := s.live[tokenID]
	delete(s.live, tokenID)
	return userID, ok, nil
}

func (s *memSessions) Revoke(_ context.Context, tokenID string) error {
	delete(s.live, tokenID)
	return nil
}
