// Package redis stores rows in Redis: a set of known users and one list of
// JSON-encoded rows per user.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/alexanderramin/trax/internal/domain"
	"github.com/alexanderramin/trax/internal/rowstore"
	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "trax"

// appendRowScript pushes a row only when the user is registered, so a
// missing user never grows an orphan list.
var appendRowScript = redis.NewScript(`
local users_key = KEYS[1]  -- trax:users
local rows_key = KEYS[2]   -- trax:rows:{user}

if redis.call('SISMEMBER', users_key, ARGV[1]) == 0 then
  return -1
end
return redis.call('RPUSH', rows_key, ARGV[2])
`)

var (
	_ rowstore.Store       = (*Store)(nil)
	_ rowstore.Provisioner = (*Store)(nil)
)

// Options configures the Redis connection.
type Options struct {
	Addr        string
	Password    string
	DB          int
	KeyPrefix   string
	DialTimeout time.Duration
}

// Store implements rowstore.Store using Redis.
type Store struct {
	client *redis.Client
	prefix string
}

// Open connects to Redis and verifies the connection with a ping.
func Open(ctx context.Context, opts Options) (*Store, error) {
	dialTimeout := opts.DialTimeout
	if dialTimeout <= 0 {
		dialTimeout = 5 * time.Second
	}
	client := redis.NewClient(&redis.Options{
		Addr:        opts.Addr,
		Password:    opts.Password,
		DB:          opts.DB,
		DialTimeout: dialTimeout,
	})

	s := &Store{client: client, prefix: opts.KeyPrefix}
	if s.prefix == "" {
		s.prefix = defaultKeyPrefix
	}
	if err := s.Authenticate(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return s, nil
}

// Authenticate pings the server; a wrong password surfaces here.
func (s *Store) Authenticate(ctx context.Context) error {
	err := s.client.Ping(ctx).Err()
	if err == nil {
		return nil
	}
	if isAuthError(err) {
		return fmt.Errorf("%w: %v", domain.ErrAuth, err)
	}
	return fmt.Errorf("%w: connecting to redis: %v", domain.ErrIO, err)
}

func (s *Store) AddUser(ctx context.Context, user string) error {
	if err := s.client.SAdd(ctx, s.usersKey(), user).Err(); err != nil {
		return fmt.Errorf("%w: adding user: %v", domain.ErrIO, err)
	}
	return nil
}

func (s *Store) ListRows(ctx context.Context, user string) ([]domain.RawRow, error) {
	known, err := s.client.SIsMember(ctx, s.usersKey(), user).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: looking up user: %v", domain.ErrIO, err)
	}
	if !known {
		return nil, fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
	}

	values, err := s.client.LRange(ctx, s.rowsKey(user), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("%w: listing rows: %v", domain.ErrIO, err)
	}

	rows := make([]domain.RawRow, 0, len(values))
	for _, v := range values {
		var r domain.RawRow
		if err := json.Unmarshal([]byte(v), &r); err != nil {
			return nil, fmt.Errorf("%w: unmarshal row: %v", domain.ErrMalformedRecord, err)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func (s *Store) AppendRow(ctx context.Context, user string, row domain.RawRow) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("%w: marshal row: %v", domain.ErrIO, err)
	}

	n, err := appendRowScript.Run(ctx, s.client, []string{s.usersKey(), s.rowsKey(user)}, user, string(data)).Int()
	if err != nil {
		return fmt.Errorf("%w: appending row: %v", domain.ErrIO, err)
	}
	if n < 0 {
		return fmt.Errorf("%w: %q", domain.ErrUserNotFound, user)
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) usersKey() string {
	return s.prefix + ":users"
}

func (s *Store) rowsKey(user string) string {
	return fmt.Sprintf("%s:rows:%s", s.prefix, user)
}
