// Package verification provides the Redis-backed verification code store.
package verification

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// CodeRedis stores one-time verification codes keyed by email. Redis's own
// TTL mechanism is the sole source of truth for code liveness: an expired
// code is simply absent, and there is no separate expiry field to check.
type CodeRedis struct {
	client *redis.Client
	prefix string
}

// NewCodeRedis creates a new CodeRedis instance.
func NewCodeRedis(client *redis.Client, prefix string) *CodeRedis {
	return &CodeRedis{
		client: client,
		prefix: prefix,
	}
}

// codeKey returns the Redis key for an email's verification code.
func (r *CodeRedis) codeKey(email string) string {
	return fmt.Sprintf("%s:%s", r.prefix, email)
}

// Set stores the code for the email with the given TTL, unconditionally
// overwriting any previous code. At most one code is live per email;
// concurrent resend requests are last-write-wins.
func (r *CodeRedis) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	return r.client.Set(ctx, r.codeKey(email), code, ttl).Err()
}

// Get returns the live code for the email. A missing key is a normal
// outcome meaning "expired or never issued" and yields ("", nil), not an
// error.
func (r *CodeRedis) Get(ctx context.Context, email string) (string, error) {
	code, err := r.client.Get(ctx, r.codeKey(email)).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return code, nil
}

// Remove deletes the code for the email. Removing an absent key is not an
// error.
func (r *CodeRedis) Remove(ctx context.Context, email string) error {
	return r.client.Del(ctx, r.codeKey(email)).Err()
}
