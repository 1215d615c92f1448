// Package mocks provides testify mocks for the handler interfaces.
package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/philipp01105/sinklog/core"
	"github.com/philipp01105/sinklog/handler"
)

// Handler is a mock implementation of handler.Handler.
type Handler struct {
	mock.Mock
}

// NewHandler creates a mock handler and registers cleanup assertions on t.
func NewHandler(t interface {
	mock.TestingT
	Cleanup(func())
}) *Handler {
	m := &Handler{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

// Name provides a mock function.
func (m *Handler) Name() string {
	return m.Called().String(0)
}

// Level provides a mock function.
func (m *Handler) Level() core.Level {
	return m.Called().Get(0).(core.Level)
}

// SetLevel provides a mock function.
func (m *Handler) SetLevel(level core.Level) error {
	return m.Called(level).Error(0)
}

// Handle provides a mock function.
func (m *Handler) Handle(entry *core.Entry) error {
	return m.Called(entry).Error(0)
}

// Close provides a mock function.
func (m *Handler) Close() error {
	return m.Called().Error(0)
}

var _ handler.Handler = (*Handler)(nil)
