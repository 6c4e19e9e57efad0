package redislog

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Entry is a structured log object saved into Redis as JSON.
type Entry struct {
	Level   string            `json:"level"`
	Msg     string            `json:"msg"`
	Time    string            `json:"time"`
	Service string            `json:"service,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}

// Logger pushes entries to a Redis LIST (e.g. "logs:padroniza") and trims it to max.
// With a nil client it only mirrors to the standard logger, if mirroring is on.
type Logger struct {
	rdb       *redis.Client
	key       string        // list key
	max       int64         // keep last N entries
	retention time.Duration // optional expire for the list key
	service   string
	mirror    bool
	now       func() time.Time
}

// Option tweaks a Logger at construction.
type Option func(*Logger)

// WithService stamps every entry with the service name.
func WithService(name string) Option { return func(l *Logger) { l.service = name } }

// WithMirror also writes each entry through the standard log package.
func WithMirror() Option { return func(l *Logger) { l.mirror = true } }

// WithClock overrides time.Now for entry timestamps.
func WithClock(now func() time.Time) Option { return func(l *Logger) { l.now = now } }

// New creates a Redis logger backed by a LIST.
func New(rdb *redis.Client, key string, max int64, retention time.Duration, opts ...Option) *Logger {
	l := &Logger{rdb: rdb, key: key, max: max, retention: retention, now: time.Now}
	for _, o := range opts {
		o(l)
	}
	return l
}

// log pushes an entry as JSON -> LPUSH; then LTRIM; then EXPIRE, all in one pipeline.
func (l *Logger) log(ctx context.Context, level, msg string, meta map[string]string) {
	if l == nil {
		return
	}
	if l.mirror {
		log.Printf("[%s] %s%s", level, msg, formatMeta(meta))
	}
	if l.rdb == nil {
		return
	}
	en := Entry{
		Level:   level,
		Msg:     msg,
		Time:    l.now().UTC().Format(time.RFC3339),
		Service: l.service,
		Meta:    meta,
	}
	b, err := json.Marshal(en)
	if err != nil {
		return
	}
	pipe := l.rdb.TxPipeline()
	pipe.LPush(ctx, l.key, b)
	if l.max > 0 {
		pipe.LTrim(ctx, l.key, 0, l.max-1)
	}
	if l.retention > 0 {
		pipe.Expire(ctx, l.key, l.retention)
	}
	_, _ = pipe.Exec(ctx) // logging never fails the caller
}

// formatMeta renders meta as " k=v k=v" with sorted keys.
func formatMeta(meta map[string]string) string {
	if len(meta) == 0 {
		return ""
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%s", k, meta[k])
	}
	return b.String()
}

func (l *Logger) Info(ctx context.Context, msg string, meta map[string]string) {
	l.log(ctx, "info", msg, meta)
}

func (l *Logger) Warn(ctx context.Context, msg string, meta map[string]string) {
	l.log(ctx, "warn", msg, meta)
}

func (l *Logger) Error(ctx context.Context, msg string, meta map[string]string) {
	l.log(ctx, "error", msg, meta)
}
