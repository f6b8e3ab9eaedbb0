// Package types defines the data structures used in the URL shortener service.
package types

import "time"

// ShortCodeLength is the number of characters in every generated short code.
const ShortCodeLength = 6

// Link is a persisted short code to target URL mapping.
type Link struct {
	ID        string    `gorm:"type:varchar(36);primaryKey"`
	ShortCode string    `gorm:"size:6;not null;uniqueIndex"`
	TargetURL string    `gorm:"not null"`
	Clicks    int64     `gorm:"not null;default:0"`
	OwnerID   *string   `gorm:"type:varchar(36);index"`
	CreatedAt time.Time `gorm:"index"`
	UpdatedAt time.Time
	DeletedAt *time.Time `gorm:"index"`
}

// Active reports whether the link has not been soft deleted.
func (l Link) Active() bool {
	return l.DeletedAt == nil
}

// User is a registered account that can own links.
type User struct {
	ID           string `gorm:"type:varchar(36);primaryKey"`
	Email        string `gorm:"not null;uniqueIndex"`
	PasswordHash string `gorm:"not null"`
	Links        []Link `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the caller resolved from a verified bearer token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// ShortenRequest represents the request structure for creating a short URL.
type ShortenRequest struct {
	TargetURL string `json:"targetUrl" validate:"required,url"`
}

// ShortenResponse carries the public short URL.
type ShortenResponse struct {
	ShortURL string `json:"shortUrl"`
}

// Credentials is the body of register and login requests.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}

// LoginResponse wraps the issued token, already prefixed with its scheme.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// UserResponse is the public view of a User.
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateURLRequest changes the target of an owned short code.
type UpdateURLRequest struct {
	ShortCode string `json:"shortCode" validate:"required,len=6,alphanum"`
	NewURL    string `json:"newUrl" validate:"required,url"`
}

// DeleteURLRequest soft deletes an owned short code.
type DeleteURLRequest struct {
	ShortCode string `json:"shortCode" validate:"required,len=6,alphanum"`
}

// ListQuery holds pagination parameters for listing owned links.
type ListQuery struct {
	Page  int `form:"page" validate:"omitempty,min=1"`
	Limit int `form:"limit" validate:"omitempty,min=1,max=100"`
}

// URLView is the owner-facing representation of a Link.
type URLView struct {
	ID        string     `json:"id"`
	ShortCode string     `json:"shortCode"`
	ShortURL  string     `json:"shortUrl"`
	TargetURL string     `json:"targetUrl"`
	Clicks    int64      `json:"clicks"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// URLPage is one page of an owner's links.
type URLPage struct {
	TotalEntries int64     `json:"totalEntries"`
	Page         int       `json:"page"`
	LastPage     int       `json:"lastPage"`
	Data         []URLView `json:"data"`
}
