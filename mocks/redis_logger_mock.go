package mocks

import (
	"time"

	"github.com/Luasgl/P2AULA2/utils/redislog"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
)

// LogClock is the frozen time used by NewRedisLoggerWithMock.
var LogClock = time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

// NewRedisLoggerWithMock constructs a real redislog.Logger over a mocked redis client
// with a frozen clock, so LPUSH payloads are predictable.
func NewRedisLoggerWithMock() (*redislog.Logger, *redis.Client, redismock.ClientMock) {
	rc, mock := redismock.NewClientMock()
	logger := redislog.New(rc, "logs:test", 100, 24*time.Hour,
		redislog.WithClock(func() time.Time { return LogClock }))
	return logger, rc, mock
}
