// Package db is the transactional consistency layer over the capability
// store. It emulates referential integrity for the user→store→aisle→product
// hierarchy with nothing but single-key hash/set primitives and optimistic
// watch/commit transactions: every entity record and the membership set
// linking it to its parent are kept in lock-step inside one commit, and
// cascading deletes are queued depth-first into a single atomic batch.
package db

import (
	"context"
	"errors"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

// DB bundles every repository over one explicitly injected store handle.
// There is no package-level client; the process entry point owns the
// lifecycle.
type DB struct {
	kv kv.Store
}

func New(store kv.Store) *DB {
	return &DB{kv: store}
}

// storeErr converts capability-store failures into the internal error
// class. A watched-key conflict is transient from the caller's point of
// view: the data is intact, the request simply lost the race.
func storeErr(msg string, err error) error {
	if errors.Is(err, kv.ErrTxFailed) {
		return apperr.Wrap(apperr.CodeInternal, "transaction conflict: "+msg, err)
	}
	return apperr.Internal(msg, err)
}

// txErr classifies an error coming out of a Transaction: typed domain
// errors raised while the body queued writes pass through untouched,
// anything else is a store failure.
func txErr(msg string, err error) error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return err
	}
	return storeErr(msg, err)
}

// verifyPermission is the single ownership check used by every mutating
// operation: the acting user must be the recorded owner.
func verifyPermission(acting, owner entity.UserID) error {
	if acting != owner {
		return apperr.PermissionDenied("user does not have permission to edit this resource")
	}
	return nil
}

// verifyPermissionToken resolves the session token and delegates to
// verifyPermission.
func (d *DB) verifyPermissionToken(ctx context.Context, token string, owner entity.UserID) error {
	acting, err := d.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	return verifyPermission(acting, owner)
}
