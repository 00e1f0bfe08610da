// Copyright (c) 2026 Setrini Inmobiliaria. All rights reserved.

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/setrini/inmobiliaria/internal/platform/apperr"
	"github.com/setrini/inmobiliaria/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository].
//
// Each session lives under RedisPrefixSession+tokenHash with a TTL, and the
// owning account keeps a set of its token hashes under RedisPrefixUserSet+adminID
// so that RevokeAll can find them.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a Redis-backed [SessionRepository].
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func sessionKey(tokenHash string) string { return constants.RedisPrefixSession + tokenHash }
func adminSetKey(adminID string) string  { return constants.RedisPrefixUserSet + adminID }

/*
Create stores the session and indexes it under its account.

Parameters:
  - context: context.Context
  - session: *Session (ExpiresAt drives the key TTL)

Returns:
  - error: Encoding or Redis failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_encode_failed: %w", err)
	}

	// The account set outlives any single session by at most one TTL.
	_, err = repository.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Set(context, sessionKey(session.TokenHash), payload, ttl)
		pipe.SAdd(context, adminSetKey(session.AdminID), session.TokenHash)
		pipe.Expire(context, adminSetKey(session.AdminID), RefreshTokenTTL)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis_session_create_failed: %w", err)
	}

	return nil
}

/*
Consume reads and deletes the session in one round trip.

Description: GETDEL guarantees that two concurrent refreshes with the same
token cannot both succeed.

Returns:
  - *Session: The consumed session
  - error: apperr.NotFound when absent or expired
*/
func (repository *RedisSessionRepository) Consume(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.GetDel(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_consume_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_decode_failed: %w", err)
	}

	// Stale set members are harmless, so a failure here is not reported.
	_ = repository.client.SRem(context, adminSetKey(session.AdminID), tokenHash).Err()

	return session, nil
}

// RevokeAll deletes every session of the account and the account set itself.
func (repository *RedisSessionRepository) RevokeAll(context context.Context, adminID string) error {
	setKey := adminSetKey(adminID)

	hashes, err := repository.client.SMembers(context, setKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	keys := make([]string, 0, len(hashes)+1)
	for _, hash := range hashes {
		keys = append(keys, sessionKey(hash))
	}
	keys = append(keys, setKey)

	if err := repository.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_session_revoke_all_failed: %w", err)
	}

	return nil
}
