package storage

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go-url-shortener/types"
	"go.uber.org/zap"
)

type memoryLink struct {
	link types.Link
	seq  uint64
}

// InMemoryStorage implements Store using maps guarded by a single RWMutex.
type InMemoryStorage struct {
	links   map[string]*memoryLink // link id -> link
	codes   map[string]string      // short code -> link id, deleted links included
	users   map[string]types.User  // user id -> user
	emails  map[string]string      // email -> user id
	seq     uint64
	mu      sync.RWMutex
	logger  *zap.Logger
	nowFunc func() time.Time
}

var _ Store = (*InMemoryStorage)(nil)

// NewInMemoryStorage creates and returns a new InMemoryStorage instance.
func NewInMemoryStorage(logger *zap.Logger) *InMemoryStorage {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InMemoryStorage{
		links:   make(map[string]*memoryLink),
		codes:   make(map[string]string),
		users:   make(map[string]types.User),
		emails:  make(map[string]string),
		logger:  logger,
		nowFunc: func() time.Time { return time.Now().UTC() },
	}
}

// Migrate is a no-op for the in-memory store.
func (s *InMemoryStorage) Migrate() error { return nil }

// Close is a no-op for the in-memory store.
func (s *InMemoryStorage) Close() error { return nil }

// FindActiveByShortCode returns the non-deleted link with the given code.
func (s *InMemoryStorage) FindActiveByShortCode(ctx context.Context, shortCode string) (types.Link, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("FindActiveByShortCode operation cancelled", zap.String("shortCode", shortCode))
		return types.Link{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		link, ok := s.activeByCode(shortCode)
		if !ok {
			return types.Link{}, ErrShortURLNotFound
		}
		return link, nil
	}
}

// FindActiveByShortCodeAndOwner returns the non-deleted link with the given
// code only when it belongs to ownerID.
func (s *InMemoryStorage) FindActiveByShortCodeAndOwner(ctx context.Context, shortCode, ownerID string) (types.Link, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("FindActiveByShortCodeAndOwner operation cancelled", zap.String("shortCode", shortCode))
		return types.Link{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		link, ok := s.activeByCode(shortCode)
		if !ok || link.OwnerID == nil || *link.OwnerID != ownerID {
			return types.Link{}, ErrShortURLNotFound
		}
		return link, nil
	}
}

// ListActiveByOwner returns a page of the owner's non-deleted links, newest first.
func (s *InMemoryStorage) ListActiveByOwner(ctx context.Context, ownerID string, offset, limit int) ([]types.Link, int64, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("ListActiveByOwner operation cancelled", zap.String("ownerID", ownerID))
		return nil, 0, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		owned := make([]*memoryLink, 0)
		for _, ml := range s.links {
			if ml.link.Active() && ml.link.OwnerID != nil && *ml.link.OwnerID == ownerID {
				owned = append(owned, ml)
			}
		}
		sort.Slice(owned, func(i, j int) bool {
			if !owned[i].link.CreatedAt.Equal(owned[j].link.CreatedAt) {
				return owned[i].link.CreatedAt.After(owned[j].link.CreatedAt)
			}
			return owned[i].seq > owned[j].seq
		})

		total := int64(len(owned))
		if offset < 0 {
			offset = 0
		}
		if offset >= len(owned) {
			return []types.Link{}, total, nil
		}
		end := len(owned)
		if limit > 0 && offset+limit < end {
			end = offset + limit
		}

		page := make([]types.Link, 0, end-offset)
		for _, ml := range owned[offset:end] {
			page = append(page, copyLink(ml.link))
		}
		return page, total, nil
	}
}

// CreateLink inserts a new link, assigning its id and timestamps.
func (s *InMemoryStorage) CreateLink(ctx context.Context, link *types.Link) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("CreateLink operation cancelled", zap.String("shortCode", link.ShortCode))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.codes[link.ShortCode]; exists {
			s.logger.Warn("Attempt to create duplicate short code", zap.String("shortCode", link.ShortCode))
			return ErrShortCodeExists
		}

		if link.ID == "" {
			link.ID = uuid.NewString()
		}
		now := s.nowFunc()
		if link.CreatedAt.IsZero() {
			link.CreatedAt = now
		}
		link.UpdatedAt = now

		s.seq++
		s.links[link.ID] = &memoryLink{link: copyLink(*link), seq: s.seq}
		s.codes[link.ShortCode] = link.ID
		s.logger.Debug("Link created",
			zap.String("shortCode", link.ShortCode),
			zap.String("targetURL", link.TargetURL))
		return nil
	}
}

// SaveLink persists the owner-editable fields of an existing link: its
// target and deletion time. Clicks only move through IncrementClicks.
func (s *InMemoryStorage) SaveLink(ctx context.Context, link *types.Link) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("SaveLink operation cancelled", zap.String("shortCode", link.ShortCode))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		stored, exists := s.links[link.ID]
		if !exists {
			s.logger.Warn("Attempt to save non-existent link", zap.String("id", link.ID))
			return ErrShortURLNotFound
		}

		stored.link.TargetURL = link.TargetURL
		stored.link.DeletedAt = copyTime(link.DeletedAt)
		stored.link.UpdatedAt = s.nowFunc()

		*link = copyLink(stored.link)
		return nil
	}
}

// IncrementClicks adds one to the click counter of an active link.
func (s *InMemoryStorage) IncrementClicks(ctx context.Context, id string) (int64, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("IncrementClicks operation cancelled", zap.String("id", id))
		return 0, ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		stored, exists := s.links[id]
		if !exists || !stored.link.Active() {
			return 0, ErrShortURLNotFound
		}
		stored.link.Clicks++
		stored.link.UpdatedAt = s.nowFunc()
		return stored.link.Clicks, nil
	}
}

// FindUserByID returns the user with the given id.
func (s *InMemoryStorage) FindUserByID(ctx context.Context, id string) (types.User, error) {
	select {
	case <-ctx.Done():
		return types.User{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		user, ok := s.users[id]
		if !ok {
			return types.User{}, ErrUserNotFound
		}
		return user, nil
	}
}

// FindUserByEmail returns the user registered with email.
func (s *InMemoryStorage) FindUserByEmail(ctx context.Context, email string) (types.User, error) {
	select {
	case <-ctx.Done():
		return types.User{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		id, ok := s.emails[email]
		if !ok {
			return types.User{}, ErrUserNotFound
		}
		return s.users[id], nil
	}
}

// CreateUser inserts a new user, rejecting duplicate emails.
func (s *InMemoryStorage) CreateUser(ctx context.Context, user *types.User) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("CreateUser operation cancelled", zap.String("email", user.Email))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if _, exists := s.emails[user.Email]; exists {
			return ErrEmailExists
		}

		if user.ID == "" {
			user.ID = uuid.NewString()
		}
		now := s.nowFunc()
		user.CreatedAt = now
		user.UpdatedAt = now

		stored := *user
		stored.Links = nil
		s.users[user.ID] = stored
		s.emails[user.Email] = user.ID
		s.logger.Debug("User created", zap.String("userID", user.ID))
		return nil
	}
}

// activeByCode must be called with mu held.
func (s *InMemoryStorage) activeByCode(shortCode string) (types.Link, bool) {
	id, ok := s.codes[shortCode]
	if !ok {
		return types.Link{}, false
	}
	ml := s.links[id]
	if !ml.link.Active() {
		return types.Link{}, false
	}
	return copyLink(ml.link), true
}

func copyLink(l types.Link) types.Link {
	if l.OwnerID != nil {
		owner := *l.OwnerID
		l.OwnerID = &owner
	}
	l.DeletedAt = copyTime(l.DeletedAt)
	return l
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
