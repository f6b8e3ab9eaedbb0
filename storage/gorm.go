package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go-url-shortener/types"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Driver names accepted by Open.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Open returns the Store for driver. The memory driver ignores dsn.
func Open(driver, dsn string, logger *zap.Logger) (Store, error) {
	var dialector gorm.Dialector
	switch driver {
	case DriverMemory:
		return NewInMemoryStorage(logger), nil
	case DriverSQLite:
		dialector = sqlite.Open(withSQLiteForeignKeys(dsn))
	case DriverPostgres:
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", driver, err)
	}

	if driver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		// sqlite allows one writer at a time
		sqlDB.SetMaxOpenConns(1)
	}

	return NewGormStore(db, logger), nil
}

func withSQLiteForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

// GormStore implements Store on top of a relational database.
type GormStore struct {
	db     *gorm.DB
	logger *zap.Logger
}

var _ Store = (*GormStore)(nil)

// NewGormStore wraps an open gorm connection.
func NewGormStore(db *gorm.DB, logger *zap.Logger) *GormStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GormStore{db: db, logger: logger}
}

// Migrate creates or updates the users and links tables.
func (g *GormStore) Migrate() error {
	return g.db.AutoMigrate(&types.User{}, &types.Link{})
}

// Close releases the underlying connection pool.
func (g *GormStore) Close() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (g *GormStore) FindActiveByShortCode(ctx context.Context, shortCode string) (types.Link, error) {
	var link types.Link
	err := g.db.WithContext(ctx).
		Where("short_code = ? AND deleted_at IS NULL", shortCode).
		First(&link).Error
	if err != nil {
		return types.Link{}, translateError(err, ErrShortURLNotFound, ErrShortCodeExists)
	}
	return link, nil
}

func (g *GormStore) FindActiveByShortCodeAndOwner(ctx context.Context, shortCode, ownerID string) (types.Link, error) {
	var link types.Link
	err := g.db.WithContext(ctx).
		Where("short_code = ? AND owner_id = ? AND deleted_at IS NULL", shortCode, ownerID).
		First(&link).Error
	if err != nil {
		return types.Link{}, translateError(err, ErrShortURLNotFound, ErrShortCodeExists)
	}
	return link, nil
}

func (g *GormStore) ListActiveByOwner(ctx context.Context, ownerID string, offset, limit int) ([]types.Link, int64, error) {
	scope := g.db.WithContext(ctx).
		Model(&types.Link{}).
		Where("owner_id = ? AND deleted_at IS NULL", ownerID).
		Session(&gorm.Session{})

	var total int64
	if err := scope.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	links := make([]types.Link, 0)
	if total == 0 {
		return links, 0, nil
	}

	err := scope.
		Order("created_at desc").
		Offset(offset).
		Limit(limit).
		Find(&links).Error
	if err != nil {
		return nil, 0, err
	}
	return links, total, nil
}

func (g *GormStore) CreateLink(ctx context.Context, link *types.Link) error {
	if link.ID == "" {
		link.ID = uuid.NewString()
	}
	err := g.db.WithContext(ctx).Create(link).Error
	if err != nil {
		err = translateError(err, ErrShortURLNotFound, ErrShortCodeExists)
		if errors.Is(err, ErrShortCodeExists) {
			g.logger.Warn("Attempt to create duplicate short code", zap.String("shortCode", link.ShortCode))
		}
		return err
	}
	return nil
}

func (g *GormStore) SaveLink(ctx context.Context, link *types.Link) error {
	now := time.Now().UTC()
	result := g.db.WithContext(ctx).
		Model(&types.Link{}).
		Where("id = ?", link.ID).
		Updates(map[string]interface{}{
			"target_url": link.TargetURL,
			"deleted_at": link.DeletedAt,
			"updated_at": now,
		})
	if result.Error != nil {
		return translateError(result.Error, ErrShortURLNotFound, ErrShortCodeExists)
	}
	if result.RowsAffected == 0 {
		return ErrShortURLNotFound
	}
	link.UpdatedAt = now
	return nil
}

func (g *GormStore) IncrementClicks(ctx context.Context, id string) (int64, error) {
	var clicks int64
	err := g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&types.Link{}).
			Where("id = ? AND deleted_at IS NULL", id).
			UpdateColumns(map[string]interface{}{
				"clicks":     gorm.Expr("clicks + ?", 1),
				"updated_at": time.Now().UTC(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrShortURLNotFound
		}
		return tx.Model(&types.Link{}).
			Select("clicks").
			Where("id = ?", id).
			Scan(&clicks).Error
	})
	if err != nil {
		return 0, translateError(err, ErrShortURLNotFound, ErrShortCodeExists)
	}
	return clicks, nil
}

func (g *GormStore) FindUserByID(ctx context.Context, id string) (types.User, error) {
	var user types.User
	if err := g.db.WithContext(ctx).Where("id = ?", id).First(&user).Error; err != nil {
		return types.User{}, translateError(err, ErrUserNotFound, ErrEmailExists)
	}
	return user, nil
}

func (g *GormStore) FindUserByEmail(ctx context.Context, email string) (types.User, error) {
	var user types.User
	if err := g.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return types.User{}, translateError(err, ErrUserNotFound, ErrEmailExists)
	}
	return user, nil
}

func (g *GormStore) CreateUser(ctx context.Context, user *types.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if err := g.db.WithContext(ctx).Omit("Links").Create(user).Error; err != nil {
		return translateError(err, ErrUserNotFound, ErrEmailExists)
	}
	return nil
}

// translateError maps gorm errors onto the storage sentinels. Errors that are
// already sentinels pass through unchanged.
func translateError(err, notFound, duplicate error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, gorm.ErrDuplicatedKey), isUniqueViolation(err):
		return duplicate
	default:
		return err
	}
}

// isUniqueViolation catches drivers that do not implement error translation.
func isUniqueViolation(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value violates unique constraint")
}
