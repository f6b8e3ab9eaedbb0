// Package services implements shortening, redirects, owner-scoped link
// management and account registration on top of the storage layer.
package services

import (
	"context"
	"errors"
	"fmt"

	"go-url-shortener/storage"
	"go-url-shortener/types"
	"go-url-shortener/urlgen"
	"go-url-shortener/utils"
	"go.uber.org/zap"
)

// DefaultMaxAttempts bounds short code generation per Shorten call.
const DefaultMaxAttempts = 10

// URLService creates short links and resolves them.
type URLService interface {
	// Shorten stores targetURL under a fresh short code. A nil owner creates
	// an anonymous link.
	Shorten(ctx context.Context, targetURL string, owner *types.Identity) (types.ShortenResponse, error)
	// Redirect counts a visit and returns the target of an active short code.
	Redirect(ctx context.Context, shortCode string) (string, error)
}

type urlService struct {
	links       storage.LinkRepository
	users       storage.UserRepository
	baseURL     string
	maxAttempts int
	generate    func(length int) (string, error)
	logger      *zap.Logger
}

// NewURLService returns a URLService. maxAttempts <= 0 uses DefaultMaxAttempts.
func NewURLService(links storage.LinkRepository, users storage.UserRepository, baseURL string, maxAttempts int, logger *zap.Logger) URLService {
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &urlService{
		links:       links,
		users:       users,
		baseURL:     baseURL,
		maxAttempts: maxAttempts,
		generate:    urlgen.Generate,
		logger:      logger,
	}
}

func (s *urlService) Shorten(ctx context.Context, targetURL string, owner *types.Identity) (types.ShortenResponse, error) {
	if targetURL == "" {
		return types.ShortenResponse{}, fmt.Errorf("%w: target URL is required", ErrValidation)
	}

	var (
		ownerID       *string
		ownerResolved bool
	)
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		code, err := s.generate(types.ShortCodeLength)
		if err != nil {
			return types.ShortenResponse{}, internalError("generate short code", err)
		}

		_, err = s.links.FindActiveByShortCode(ctx, code)
		switch {
		case err == nil:
			s.logger.Debug("Short code collision", zap.String("shortCode", code), zap.Int("attempt", attempt))
			continue
		case !errors.Is(err, storage.ErrShortURLNotFound):
			return types.ShortenResponse{}, internalError("check short code", err)
		}

		// the owner is looked up once, after the first free candidate
		if !ownerResolved {
			if ownerID, err = s.resolveOwner(ctx, owner); err != nil {
				return types.ShortenResponse{}, err
			}
			ownerResolved = true
		}

		link := &types.Link{ShortCode: code, TargetURL: targetURL, OwnerID: ownerID}
		err = s.links.CreateLink(ctx, link)
		switch {
		case err == nil:
			s.logger.Info("Short URL created",
				zap.String("shortCode", code),
				zap.Bool("owned", ownerID != nil),
				zap.Int("attempts", attempt))
			return types.ShortenResponse{ShortURL: utils.BuildShortURL(s.baseURL, code)}, nil
		case errors.Is(err, storage.ErrShortCodeExists):
			// lost a race with a concurrent insert or hit a reserved deleted code
			s.logger.Debug("Short code taken on insert", zap.String("shortCode", code), zap.Int("attempt", attempt))
			continue
		default:
			s.logger.Error("Failed to persist link", zap.String("shortCode", code), zap.Error(err))
			return types.ShortenResponse{}, internalError("create link", err)
		}
	}

	s.logger.Warn("Short code generation exhausted", zap.Int("attempts", s.maxAttempts))
	return types.ShortenResponse{}, ErrGenerationExhausted
}

// resolveOwner returns the id to store on a new link. An identity whose user
// no longer exists yields an anonymous link.
func (s *urlService) resolveOwner(ctx context.Context, owner *types.Identity) (*string, error) {
	if owner == nil || owner.ID == "" {
		return nil, nil
	}

	user, err := s.users.FindUserByID(ctx, owner.ID)
	if errors.Is(err, storage.ErrUserNotFound) {
		s.logger.Warn("Owner not found, creating anonymous link", zap.String("ownerID", owner.ID))
		return nil, nil
	}
	if err != nil {
		return nil, internalError("find owner", err)
	}
	return &user.ID, nil
}

func (s *urlService) Redirect(ctx context.Context, shortCode string) (string, error) {
	link, err := s.links.FindActiveByShortCode(ctx, shortCode)
	if errors.Is(err, storage.ErrShortURLNotFound) {
		return "", ErrShortURLNotFound
	}
	if err != nil {
		return "", internalError("find link", err)
	}

	if _, err := s.links.IncrementClicks(ctx, link.ID); err != nil {
		// deleted between lookup and increment
		if errors.Is(err, storage.ErrShortURLNotFound) {
			return "", ErrShortURLNotFound
		}
		return "", internalError("increment clicks", err)
	}
	return link.TargetURL, nil
}
