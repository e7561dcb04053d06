package memory

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-ParkingService/internal/domain"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/notification"
	"github.com/m04kA/SMC-ParkingService/internal/infra/storage/profile"
)

// NotificationRepository уведомления в памяти
type NotificationRepository struct {
	store *Store
}

func (r *NotificationRepository) Create(_ context.Context, n *domain.Notification) (*domain.Notification, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = s.now()

	c := *n
	s.notifications[n.ID] = &c
	return n, nil
}

func (r *NotificationRepository) ListByUser(_ context.Context, userID uuid.UUID, unreadOnly bool) ([]*domain.Notification, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Notification, 0)
	for _, n := range s.notifications {
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		c := *n
		result = append(result, &c)
	}

	sort.SliceStable(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	return result, nil
}

func (r *NotificationRepository) MarkRead(_ context.Context, id, userID uuid.UUID) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	n, ok := s.notifications[id]
	if !ok || n.UserID != userID {
		return notification.ErrNotificationNotFound
	}
	n.IsRead = true
	return nil
}

// ProfileRepository профили в памяти
type ProfileRepository struct {
	store *Store
}

func (r *ProfileRepository) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.profiles {
		if existing.Email == p.Email {
			return nil, profile.ErrDuplicateEmail
		}
	}

	if p.Role == "" {
		p.Role = domain.RoleUser
	}
	now := s.now()
	p.CreatedAt = now
	p.UpdatedAt = now

	c := *p
	s.profiles[p.ID] = &c
	return p, nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	c := *p
	return &c, nil
}

func (r *ProfileRepository) List(_ context.Context) ([]*domain.Profile, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.Profile, 0, len(s.profiles))
	for _, p := range s.profiles {
		c := *p
		result = append(result, &c)
	}

	sort.Slice(result, func(i, j int) bool { return result[i].Email < result[j].Email })
	return result, nil
}

func (r *ProfileRepository) UpdateRole(_ context.Context, id uuid.UUID, role domain.Role) (*domain.Profile, error) {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.profiles[id]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	p.Role = role
	p.UpdatedAt = s.now()

	c := *p
	return &c, nil
}
