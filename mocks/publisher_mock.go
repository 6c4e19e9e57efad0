package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// PublisherMock is a testify/mock for events.Publisher.
type PublisherMock struct{ mock.Mock }

func (m *PublisherMock) Publish(ctx context.Context, eventType string, payload []byte, key string) error {
	return m.Called(ctx, eventType, payload, key).Error(0)
}

func (m *PublisherMock) Close() error {
	return m.Called().Error(0)
}
