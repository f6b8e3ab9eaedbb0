package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildShortURL(t *testing.T) {
	tests := []struct {
		name     string
		baseURL  string
		code     string
		expected string
	}{
		{"Plain base", "http://localhost:3000", "aB3dE9", "http://localhost:3000/aB3dE9"},
		{"Trailing slash", "https://sho.rt/", "aB3dE9", "https://sho.rt/aB3dE9"},
		{"Base with path", "https://example.com/s", "Zz0000", "https://example.com/s/Zz0000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, BuildShortURL(tt.baseURL, tt.code))
		})
	}
}

func TestLastPage(t *testing.T) {
	assert.Equal(t, 0, LastPage(0, 10))
	assert.Equal(t, 1, LastPage(1, 10))
	assert.Equal(t, 1, LastPage(10, 10))
	assert.Equal(t, 2, LastPage(15, 10))
	assert.Equal(t, 3, LastPage(21, 10))
	assert.Equal(t, 0, LastPage(5, 0))
}

func TestOffset(t *testing.T) {
	assert.Equal(t, 0, Offset(1, 10))
	assert.Equal(t, 10, Offset(2, 10))
	assert.Equal(t, 0, Offset(0, 10))
}
