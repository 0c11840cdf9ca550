package queue

import (
	"crypto/tls"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/hibiken/asynq"
)

// ParseRedisURL turns a Redis address into asynq connection options. A bare
// "host:port" is taken as-is; otherwise the address must be a redis:// or
// rediss:// URL, optionally carrying a password and a database index in the
// path ("redis://:secret@host:6379/2"). The rediss scheme enables TLS.
func ParseRedisURL(raw string) (asynq.RedisClientOpt, error) {
	if !strings.Contains(raw, "://") {
		return asynq.RedisClientOpt{Addr: raw}, nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return asynq.RedisClientOpt{}, fmt.Errorf("invalid redis URL: %w", err)
	}
	if u.Host == "" {
		return asynq.RedisClientOpt{}, fmt.Errorf("redis URL missing host")
	}

	opt := asynq.RedisClientOpt{Addr: u.Host}

	switch u.Scheme {
	case "redis":
	case "rediss":
		opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	default:
		return asynq.RedisClientOpt{}, fmt.Errorf("unsupported redis URL scheme: %s (expected 'redis' or 'rediss')", u.Scheme)
	}

	if u.User != nil {
		if password, ok := u.User.Password(); ok {
			opt.Password = password
		}
	}

	opt.DB, err = dbIndex(u.Path)
	if err != nil {
		return asynq.RedisClientOpt{}, err
	}

	return opt, nil
}

// dbIndex reads the database number from a URL path like "/2".
func dbIndex(path string) (int, error) {
	trimmed := strings.TrimPrefix(path, "/")
	if trimmed == "" {
		return 0, nil
	}

	db, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid database number in redis URL: %s", trimmed)
	}
	return db, nil
}
