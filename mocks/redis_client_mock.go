package mocks

import (
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

// NewRedisMock returns a real *redis.Client backed by redismock.
// Expectations (ExpectGet/Set/Del) must be met in the order they are declared.
func NewRedisMock() (*redis.Client, redismock.ClientMock) {
	rc, mock := redismock.NewClientMock()
	mock.MatchExpectationsInOrder(true)
	return rc, mock
}
