package db

import (
	"context"
	"fmt"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
)

const (
	storeFieldName  = "name"
	storeFieldOwner = "owner_id"
)

func storeKey(storeID entity.StoreID) string {
	return fmt.Sprintf("store:%s", storeID)
}

func userStoresKey(userID entity.UserID) string {
	return fmt.Sprintf("stores:%s", userID)
}

func (d *DB) storeOwner(ctx context.Context, storeID entity.StoreID) (entity.UserID, error) {
	owner, err := d.kv.HGet(ctx, storeKey(storeID), storeFieldOwner)
	if err != nil {
		return "", storeErr("reading store owner", err)
	}
	return entity.UserID(owner), nil
}

// CreateStore writes the store record and the owner's membership entry in
// one transaction; neither is observable without the other.
func (d *DB) CreateStore(ctx context.Context, token string, name string) (entity.Store, error) {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return entity.Store{}, err
	}
	storeID, err := d.nextStoreID(ctx)
	if err != nil {
		return entity.Store{}, err
	}
	key := storeKey(storeID)
	membershipKey := userStoresKey(userID)
	err = d.kv.Transaction(ctx, []string{key, membershipKey}, func(tx kv.Tx) error {
		tx.HSet(key, storeFieldName, name)
		tx.HSet(key, storeFieldOwner, string(userID))
		tx.SAdd(membershipKey, string(storeID))
		return nil
	})
	if err != nil {
		return entity.Store{}, txErr("creating store", err)
	}
	return entity.Store{ID: storeID, Name: name, Aisles: []entity.Aisle{}}, nil
}

// RenameStore is a single-field write on a single key; no transaction
// needed.
func (d *DB) RenameStore(ctx context.Context, token string, storeID entity.StoreID, newName string) error {
	owner, err := d.storeOwner(ctx, storeID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	if err := d.kv.HSet(ctx, storeKey(storeID), storeFieldName, newName); err != nil {
		return storeErr("renaming store", err)
	}
	return nil
}

// GetStore returns the store with its full aisle/product tree. Children
// come from unordered sets; callers sort by weight.
func (d *DB) GetStore(ctx context.Context, token string, storeID entity.StoreID) (entity.Store, error) {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return entity.Store{}, err
	}
	owner, err := d.storeOwner(ctx, storeID)
	if err != nil {
		return entity.Store{}, err
	}
	if err := verifyPermission(userID, owner); err != nil {
		return entity.Store{}, err
	}
	name, err := d.kv.HGet(ctx, storeKey(storeID), storeFieldName)
	if err != nil {
		return entity.Store{}, storeErr("reading store name", err)
	}
	aisles, err := d.aislesInStore(ctx, storeID)
	if err != nil {
		return entity.Store{}, err
	}
	return entity.Store{ID: storeID, Name: name, Aisles: aisles}, nil
}

// ListStores is the shallow listing: ids and display names only.
func (d *DB) ListStores(ctx context.Context, token string) ([]entity.StoreLight, error) {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return nil, err
	}
	ids, err := d.kv.SMembers(ctx, userStoresKey(userID))
	if err != nil {
		return nil, storeErr("listing stores", err)
	}
	out := make([]entity.StoreLight, 0, len(ids))
	for _, id := range ids {
		name, err := d.kv.HGet(ctx, storeKey(entity.StoreID(id)), storeFieldName)
		if err != nil {
			return nil, storeErr("reading store name", err)
		}
		out = append(out, entity.StoreLight{ID: entity.StoreID(id), Name: name})
	}
	return out, nil
}

// DeleteStore cascades over every aisle and product below the store. The
// whole purge (child records, membership sets, the store record and the
// owner's membership entry) is queued depth-first and committed as one
// atomic batch, so a partial cascade is never observable.
func (d *DB) DeleteStore(ctx context.Context, token string, storeID entity.StoreID) error {
	owner, err := d.storeOwner(ctx, storeID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	key := storeKey(storeID)
	membershipKey := userStoresKey(owner)
	err = d.kv.Transaction(ctx, []string{key, membershipKey}, func(tx kv.Tx) error {
		if err := d.purgeAislesInStore(ctx, tx, storeID); err != nil {
			return err
		}
		tx.SRem(membershipKey, string(storeID))
		tx.Del(key)
		return nil
	})
	if err != nil {
		return txErr("deleting store", err)
	}
	return nil
}

// DeleteAllUserStores removes every store of the token's user, one cascade
// per store.
func (d *DB) DeleteAllUserStores(ctx context.Context, token string) error {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return err
	}
	ids, err := d.kv.SMembers(ctx, userStoresKey(userID))
	if err != nil {
		return storeErr("listing stores", err)
	}
	for _, id := range ids {
		if err := d.DeleteStore(ctx, token, entity.StoreID(id)); err != nil {
			return err
		}
	}
	return nil
}
