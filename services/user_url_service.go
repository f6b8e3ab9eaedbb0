package services

import (
	"context"
	"errors"
	"time"

	"go-url-shortener/storage"
	"go-url-shortener/types"
	"go-url-shortener/utils"
	"go.uber.org/zap"
)

// Pagination defaults for ListURLs.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// UserURLService manages the links owned by one authenticated user. A code
// owned by somebody else is reported exactly like a missing one.
type UserURLService interface {
	ListURLs(ctx context.Context, ownerID string, page, limit int) (types.URLPage, error)
	GetURL(ctx context.Context, ownerID, shortCode string) (types.URLView, error)
	UpdateURL(ctx context.Context, ownerID, shortCode, newURL string) (types.URLView, error)
	DeleteURL(ctx context.Context, ownerID, shortCode string) (types.URLView, error)
}

type userURLService struct {
	links   storage.LinkRepository
	baseURL string
	now     func() time.Time
	logger  *zap.Logger
}

func NewUserURLService(links storage.LinkRepository, baseURL string, logger *zap.Logger) UserURLService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &userURLService{
		links:   links,
		baseURL: baseURL,
		now:     func() time.Time { return time.Now().UTC() },
		logger:  logger,
	}
}

func (s *userURLService) ListURLs(ctx context.Context, ownerID string, page, limit int) (types.URLPage, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}

	links, total, err := s.links.ListActiveByOwner(ctx, ownerID, utils.Offset(page, limit), limit)
	if err != nil {
		s.logger.Error("Failed to list links", zap.String("ownerID", ownerID), zap.Error(err))
		return types.URLPage{}, internalError("list links", err)
	}

	data := make([]types.URLView, 0, len(links))
	for _, link := range links {
		data = append(data, s.view(link))
	}
	return types.URLPage{
		TotalEntries: total,
		Page:         page,
		LastPage:     utils.LastPage(total, limit),
		Data:         data,
	}, nil
}

func (s *userURLService) GetURL(ctx context.Context, ownerID, shortCode string) (types.URLView, error) {
	link, err := s.findOwned(ctx, ownerID, shortCode)
	if err != nil {
		return types.URLView{}, err
	}
	return s.view(link), nil
}

func (s *userURLService) UpdateURL(ctx context.Context, ownerID, shortCode, newURL string) (types.URLView, error) {
	link, err := s.findOwned(ctx, ownerID, shortCode)
	if err != nil {
		return types.URLView{}, err
	}

	link.TargetURL = newURL
	if err := s.save(ctx, &link); err != nil {
		return types.URLView{}, err
	}
	s.logger.Info("Updated short URL", zap.String("shortCode", shortCode), zap.String("ownerID", ownerID))
	return s.view(link), nil
}

func (s *userURLService) DeleteURL(ctx context.Context, ownerID, shortCode string) (types.URLView, error) {
	link, err := s.findOwned(ctx, ownerID, shortCode)
	if err != nil {
		return types.URLView{}, err
	}

	deletedAt := s.now()
	link.DeletedAt = &deletedAt
	if err := s.save(ctx, &link); err != nil {
		return types.URLView{}, err
	}
	s.logger.Info("Deleted short URL", zap.String("shortCode", shortCode), zap.String("ownerID", ownerID))
	return s.view(link), nil
}

func (s *userURLService) findOwned(ctx context.Context, ownerID, shortCode string) (types.Link, error) {
	link, err := s.links.FindActiveByShortCodeAndOwner(ctx, shortCode, ownerID)
	if errors.Is(err, storage.ErrShortURLNotFound) {
		return types.Link{}, ErrShortURLNotFound
	}
	if err != nil {
		s.logger.Error("Failed to find link", zap.String("shortCode", shortCode), zap.Error(err))
		return types.Link{}, internalError("find link", err)
	}
	return link, nil
}

func (s *userURLService) save(ctx context.Context, link *types.Link) error {
	err := s.links.SaveLink(ctx, link)
	if errors.Is(err, storage.ErrShortURLNotFound) {
		return ErrShortURLNotFound
	}
	if err != nil {
		s.logger.Error("Failed to save link", zap.String("shortCode", link.ShortCode), zap.Error(err))
		return internalError("save link", err)
	}
	return nil
}

func (s *userURLService) view(link types.Link) types.URLView {
	return types.URLView{
		ID:        link.ID,
		ShortCode: link.ShortCode,
		ShortURL:  utils.BuildShortURL(s.baseURL, link.ShortCode),
		TargetURL: link.TargetURL,
		Clicks:    link.Clicks,
		CreatedAt: link.CreatedAt,
		UpdatedAt: link.UpdatedAt,
		DeletedAt: link.DeletedAt,
	}
}
