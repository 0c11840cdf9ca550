package queue

import (
	"crypto/tls"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRedisURL(t *testing.T) {
	tests := []struct {
		name      string
		redisURL  string
		want      asynq.RedisClientOpt
		wantError bool
	}{
		{
			name:     "simple host:port format (legacy)",
			redisURL: "localhost:6379",
			want: asynq.RedisClientOpt{
				Addr: "localhost:6379",
				DB:   0,
			},
		},
		{
			name:     "redis URL without password",
			redisURL: "redis://localhost:6379",
			want: asynq.RedisClientOpt{
				Addr: "localhost:6379",
				DB:   0,
			},
		},
		{
			name:     "redis URL with password and database number",
			redisURL: "redis://:secretpass@redis.example.com:6379/1",
			want: asynq.RedisClientOpt{
				Addr:     "redis.example.com:6379",
				Password: "secretpass",
				DB:       1,
			},
		},
		{
			name:     "rediss URL enables TLS",
			redisURL: "rediss://:password@secure-redis.example.com:6380/0",
			want: asynq.RedisClientOpt{
				Addr:      "secure-redis.example.com:6380",
				Password:  "password",
				DB:        0,
				TLSConfig: &tls.Config{MinVersion: tls.VersionTLS12},
			},
		},
		{
			name:      "unsupported scheme",
			redisURL:  "http://localhost:6379",
			wantError: true,
		},
		{
			name:      "missing host",
			redisURL:  "redis://",
			wantError: true,
		},
		{
			name:      "bad database number",
			redisURL:  "redis://localhost:6379/notanumber",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRedisURL(tt.redisURL)
			if tt.wantError {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want.Addr, got.Addr)
			assert.Equal(t, tt.want.Password, got.Password)
			assert.Equal(t, tt.want.DB, got.DB)
			if tt.want.TLSConfig != nil {
				require.NotNil(t, got.TLSConfig)
				assert.Equal(t, tt.want.TLSConfig.MinVersion, got.TLSConfig.MinVersion)
			} else {
				assert.Nil(t, got.TLSConfig)
			}
		})
	}
}

func TestSnapshotPayloadRoundTrip(t *testing.T) {
	payload, err := NewSnapshotTask("television", "Heated Rivalry")
	require.NoError(t, err)

	data, err := payload.Marshal()
	require.NoError(t, err)

	got, err := UnmarshalSnapshotPayload(data)
	require.NoError(t, err)
	assert.Equal(t, "television", got.Community)
	assert.Equal(t, "Heated Rivalry", got.Query)
}

func TestSnapshotTaskPayloadIsStable(t *testing.T) {
	// The payload bytes feed asynq's uniqueness key. Two tasks built for
	// the same tracker must be byte-identical, or each enqueue would hold
	// its own uniqueness lock and runs could overlap on the history log.
	first, _, err := SnapshotTask("television", "Heated Rivalry")
	require.NoError(t, err)

	second, _, err := SnapshotTask("television", "Heated Rivalry")
	require.NoError(t, err)

	assert.Equal(t, first.Payload(), second.Payload())
	assert.Equal(t, TypeSnapshot, first.Type())
}

func TestNewSnapshotTaskValidation(t *testing.T) {
	_, err := NewSnapshotTask("", "Heated Rivalry")
	require.Error(t, err)

	_, err = NewSnapshotTask("television", "")
	require.Error(t, err)
}
