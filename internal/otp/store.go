// Package otp is a short-lived keyed credential cache backed by Redis.
// Codes expire on their own and are consumed on first successful verify,
// so the store stays bounded and works across instances.
package otp

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aradhyTripathi2309/Stock-Flow-Management-System/internal/redisx"
)

var ErrInvalidCode = errors.New("invalid or expired OTP")

type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Issue generates a fresh code for the email and stores it with a TTL.
// Re-issuing replaces any outstanding code.
func (s *Store) Issue(ctx context.Context, email string) (string, error) {
	code, err := GenerateCode()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf(redisx.KeyOTP, email)
	if err := s.rdb.Set(ctx, key, code, s.ttl).Err(); err != nil {
		return "", err
	}
	return code, nil
}

// consumeScript deletes the key only while it still holds the matched
// code, so a re-issue racing with Verify is never clobbered.
var consumeScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Verify consumes the code on success: a code can be used once.
// A failed attempt leaves the stored code intact until it expires.
func (s *Store) Verify(ctx context.Context, email, code string) error {
	key := fmt.Sprintf(redisx.KeyOTP, email)
	stored, err := s.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return ErrInvalidCode
	}
	if err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(code)) != 1 {
		return ErrInvalidCode
	}
	n, err := consumeScript.Run(ctx, s.rdb, []string{key}, stored).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		// Someone consumed or replaced the code between Get and the script.
		return ErrInvalidCode
	}
	return nil
}

// GenerateCode returns a six digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
