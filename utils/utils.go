// Package utils provides helper functions for the URL shortener service.
package utils

import "strings"

// BuildShortURL joins the public base URL and a short code.
func BuildShortURL(baseURL, shortCode string) string {
	return strings.TrimRight(baseURL, "/") + "/" + shortCode
}

// LastPage returns the number of pages needed to hold total entries.
// Zero entries yield zero pages.
func LastPage(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// Offset converts a 1-based page into a row offset.
func Offset(page, limit int) int {
	if page < 1 {
		return 0
	}
	return (page - 1) * limit
}
