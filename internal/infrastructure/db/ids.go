package db

import (
	"context"
	"strconv"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/pkg/apperr"
	"github.com/groceryhub/grocery-api/pkg/helpers"
)

// The id allocator combines a per-kind monotonic counter with a per-kind
// random salt through a one-way hash. Ids are unique for as long as the
// counter strictly increases and the salt is stable, are never reused
// after deletion, and do not leak creation order. Counter and salt live in
// the store so they survive restarts.

const (
	nextUserIDKey    = "next_user_id"
	nextStoreIDKey   = "next_store_id"
	nextAisleIDKey   = "next_aisle_id"
	nextProductIDKey = "next_product_id"

	userIDSaltKey    = "user_id_salt"
	storeIDSaltKey   = "store_id_salt"
	aisleIDSaltKey   = "aisle_id_salt"
	productIDSaltKey = "product_id_salt"
)

func (d *DB) nextID(ctx context.Context, counterKey, saltKey string) (string, error) {
	n, err := d.kv.Incr(ctx, counterKey)
	if err != nil {
		return "", storeErr("incrementing id counter", err)
	}
	salt, err := d.idSalt(ctx, saltKey)
	if err != nil {
		return "", err
	}
	id := helpers.Hash(strconv.FormatInt(n, 10), salt)
	if id == "" {
		// Existential contract of the allocator, not a reachable path.
		return "", apperr.New(apperr.CodeInternal, "creation of hashed id failed, can't be")
	}
	return id, nil
}

// idSalt returns the persisted salt for an id kind, creating it on first
// use.
func (d *DB) idSalt(ctx context.Context, saltKey string) (string, error) {
	exists, err := d.kv.Exists(ctx, saltKey)
	if err != nil {
		return "", storeErr("checking id salt", err)
	}
	if exists {
		salt, err := d.kv.Get(ctx, saltKey)
		if err != nil {
			return "", storeErr("reading id salt", err)
		}
		return salt, nil
	}
	salt, err := helpers.NewSalt()
	if err != nil {
		return "", apperr.Internal("generating id salt", err)
	}
	if err := d.kv.Set(ctx, saltKey, salt); err != nil {
		return "", storeErr("storing id salt", err)
	}
	return salt, nil
}

func (d *DB) nextUserID(ctx context.Context) (entity.UserID, error) {
	id, err := d.nextID(ctx, nextUserIDKey, userIDSaltKey)
	return entity.UserID(id), err
}

func (d *DB) nextStoreID(ctx context.Context) (entity.StoreID, error) {
	id, err := d.nextID(ctx, nextStoreIDKey, storeIDSaltKey)
	return entity.StoreID(id), err
}

func (d *DB) nextAisleID(ctx context.Context) (entity.AisleID, error) {
	id, err := d.nextID(ctx, nextAisleIDKey, aisleIDSaltKey)
	return entity.AisleID(id), err
}

func (d *DB) nextProductID(ctx context.Context) (entity.ProductID, error) {
	id, err := d.nextID(ctx, nextProductIDKey, productIDSaltKey)
	return entity.ProductID(id), err
}
