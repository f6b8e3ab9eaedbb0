package mocks

import (
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
)

type MockHandler struct {
	mock.Mock
}

func (m *MockHandler) Register(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) Login(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) Shorten(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) Redirect(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) ListURLs(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) GetURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) UpdateURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) DeleteURL(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) HealthCheck(c *gin.Context) {
	m.Called(c)
}

func (m *MockHandler) AuthGate() gin.HandlerFunc {
	args := m.Called()
	return args.Get(0).(gin.HandlerFunc)
}

func (m *MockHandler) OptionalAuthGate() gin.HandlerFunc {
	args := m.Called()
	return args.Get(0).(gin.HandlerFunc)
}
