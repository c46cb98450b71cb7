package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

// Session storage is a bijection kept in two places: the global
// token→user hash, and a per-user set of live tokens so logout-all can
// enumerate them. Both sides move together inside one transaction.

const sessionsKey = "sessions"

func userSessionsKey(userID entity.UserID) string {
	return fmt.Sprintf("sessions:%s", userID)
}

// SessionUser resolves a session token to the user holding it.
func (d *DB) SessionUser(ctx context.Context, token string) (entity.UserID, error) {
	id, err := d.kv.HGet(ctx, sessionsKey, token)
	if err != nil {
		if errors.Is(err, kv.ErrNil) {
			return "", apperr.Unauthorized("not logged in")
		}
		return "", storeErr("resolving session token", err)
	}
	return entity.UserID(id), nil
}

// CreateSession binds a fresh token to a user. Token collisions are
// astronomically rare given 32 bytes of entropy, so an existing binding is
// an internal fault rather than a retryable condition.
func (d *DB) CreateSession(ctx context.Context, token string, userID entity.UserID) error {
	exists, err := d.kv.HExists(ctx, sessionsKey, token)
	if err != nil {
		return storeErr("checking session token", err)
	}
	if exists {
		return apperr.New(apperr.CodeInternal, "auth token already exists")
	}
	sessionKey := userSessionsKey(userID)
	err = d.kv.Transaction(ctx, []string{sessionsKey, sessionKey}, func(tx kv.Tx) error {
		tx.HSet(sessionsKey, token, string(userID))
		tx.SAdd(sessionKey, token)
		return nil
	})
	if err != nil {
		return storeErr("storing session", err)
	}
	return nil
}

// ValidateSession checks both directions of the binding: the token must
// resolve to a user and must still be in that user's live-token set. The
// second check rejects tokens whose reverse membership was removed or
// never written.
func (d *DB) ValidateSession(ctx context.Context, token string) error {
	exists, err := d.kv.HExists(ctx, sessionsKey, token)
	if err != nil {
		return storeErr("checking session token", err)
	}
	if !exists {
		return apperr.Unauthorized("not logged in")
	}
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	member, err := d.kv.SIsMember(ctx, userSessionsKey(userID), token)
	if err != nil {
		return storeErr("checking session membership", err)
	}
	if !member {
		return apperr.Unauthorized("auth token does not belong to this user")
	}
	return nil
}

// DeleteSession revokes one token. The token must belong to expected;
// logging out with someone else's token is rejected.
func (d *DB) DeleteSession(ctx context.Context, token string, expected entity.UserID) error {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	if userID != expected {
		return apperr.Unauthorized("auth token does not belong to this user")
	}
	return d.deleteSessionForUser(ctx, token, userID)
}

func (d *DB) deleteSessionForUser(ctx context.Context, token string, userID entity.UserID) error {
	sessionKey := userSessionsKey(userID)
	err := d.kv.Transaction(ctx, []string{sessionsKey, sessionKey}, func(tx kv.Tx) error {
		tx.HDel(sessionsKey, token)
		tx.SRem(sessionKey, token)
		return nil
	})
	if err != nil {
		return storeErr("deleting session", err)
	}
	return nil
}

// DeleteAllSessions revokes every live token of the user owning the given
// token, not just the presented one. Deletion is per token and
// best-effort: a failure aborts the loop but already-deleted tokens stay
// deleted.
func (d *DB) DeleteAllSessions(ctx context.Context, token string) error {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	tokens, err := d.kv.SMembers(ctx, userSessionsKey(userID))
	if err != nil {
		return storeErr("listing user sessions", err)
	}
	for _, t := range tokens {
		if err := d.deleteSessionForUser(ctx, t, userID); err != nil {
			return err
		}
	}
	return nil
}
