package db

import (
	"context"
	"fmt"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
)

const (
	aisleFieldName   = "name"
	aisleFieldWeight = "sort_weight"
	aisleFieldOwner  = "owner_id"
	aisleFieldStore  = "store_id"
)

func aisleKey(aisleID entity.AisleID) string {
	return fmt.Sprintf("aisle:%s", aisleID)
}

func aislesInStoreKey(storeID entity.StoreID) string {
	return fmt.Sprintf("aisles_in_store:%s", storeID)
}

func (d *DB) aisleOwner(ctx context.Context, aisleID entity.AisleID) (entity.UserID, error) {
	owner, err := d.kv.HGet(ctx, aisleKey(aisleID), aisleFieldOwner)
	if err != nil {
		return "", storeErr("reading aisle owner", err)
	}
	return entity.UserID(owner), nil
}

// aislesInStore expands each aisle with its products. Set order is
// arbitrary; display order is the caller's concern.
func (d *DB) aislesInStore(ctx context.Context, storeID entity.StoreID) ([]entity.Aisle, error) {
	ids, err := d.kv.SMembers(ctx, aislesInStoreKey(storeID))
	if err != nil {
		return nil, storeErr("listing aisles", err)
	}
	out := make([]entity.Aisle, 0, len(ids))
	for _, id := range ids {
		aisleID := entity.AisleID(id)
		key := aisleKey(aisleID)
		name, err := d.kv.HGet(ctx, key, aisleFieldName)
		if err != nil {
			return nil, storeErr("reading aisle name", err)
		}
		weight, err := d.kv.HGet(ctx, key, aisleFieldWeight)
		if err != nil {
			return nil, storeErr("reading aisle weight", err)
		}
		products, err := d.productsInAisle(ctx, aisleID)
		if err != nil {
			return nil, err
		}
		out = append(out, entity.Aisle{
			ID:         aisleID,
			Name:       name,
			SortWeight: parseWeight(weight),
			Products:   products,
		})
	}
	return out, nil
}

// nextAisleWeight places a new aisle after its siblings: the first child
// gets weight 0, later ones the current max plus one. The read happens
// before the create transaction opens, so concurrent creates against the
// same store can tie; ordering is eventual, not strict.
func (d *DB) nextAisleWeight(ctx context.Context, storeID entity.StoreID) (float64, error) {
	aisles, err := d.aislesInStore(ctx, storeID)
	if err != nil {
		return 0, err
	}
	if len(aisles) == 0 {
		return 0, nil
	}
	max := aisles[0].SortWeight
	for _, a := range aisles[1:] {
		if a.SortWeight > max {
			max = a.SortWeight
		}
	}
	return max + 1, nil
}

// CreateAisle creates an aisle under a store. Ownership is inherited from
// the store's owner at creation time and recorded on the aisle; it is
// never recomputed.
func (d *DB) CreateAisle(ctx context.Context, token string, storeID entity.StoreID, name string) (entity.Aisle, error) {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return entity.Aisle{}, err
	}
	owner, err := d.storeOwner(ctx, storeID)
	if err != nil {
		return entity.Aisle{}, err
	}
	if err := verifyPermission(userID, owner); err != nil {
		return entity.Aisle{}, err
	}
	aisleID, err := d.nextAisleID(ctx)
	if err != nil {
		return entity.Aisle{}, err
	}
	weight, err := d.nextAisleWeight(ctx, storeID)
	if err != nil {
		return entity.Aisle{}, err
	}
	key := aisleKey(aisleID)
	membershipKey := aislesInStoreKey(storeID)
	err = d.kv.Transaction(ctx, []string{key, membershipKey}, func(tx kv.Tx) error {
		tx.HSetMultiple(key, map[string]string{
			aisleFieldName:   name,
			aisleFieldWeight: formatWeight(weight),
			aisleFieldOwner:  string(userID),
			aisleFieldStore:  string(storeID),
		})
		tx.SAdd(membershipKey, string(aisleID))
		return nil
	})
	if err != nil {
		return entity.Aisle{}, txErr("creating aisle", err)
	}
	return entity.Aisle{ID: aisleID, Name: name, SortWeight: weight, Products: []entity.Product{}}, nil
}

func (d *DB) RenameAisle(ctx context.Context, token string, aisleID entity.AisleID, newName string) error {
	owner, err := d.aisleOwner(ctx, aisleID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	if err := d.kv.HSet(ctx, aisleKey(aisleID), aisleFieldName, newName); err != nil {
		return storeErr("renaming aisle", err)
	}
	return nil
}

// DeleteAisle purges the aisle's products first, then the aisle record and
// its entry in the store membership set, all in one commit.
func (d *DB) DeleteAisle(ctx context.Context, token string, aisleID entity.AisleID) error {
	owner, err := d.aisleOwner(ctx, aisleID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	key := aisleKey(aisleID)
	storeID, err := d.kv.HGet(ctx, key, aisleFieldStore)
	if err != nil {
		return storeErr("reading aisle parent", err)
	}
	membershipKey := aislesInStoreKey(entity.StoreID(storeID))
	err = d.kv.Transaction(ctx, []string{key, membershipKey}, func(tx kv.Tx) error {
		if err := d.purgeProductsInAisle(ctx, tx, aisleID); err != nil {
			return err
		}
		tx.SRem(membershipKey, string(aisleID))
		tx.Del(key)
		return nil
	})
	if err != nil {
		return txErr("deleting aisle", err)
	}
	return nil
}

// purgeAislesInStore queues the removal of every aisle below storeID,
// descending into products first. It only grows the pending batch; the
// caller owns the commit.
func (d *DB) purgeAislesInStore(ctx context.Context, tx kv.Tx, storeID entity.StoreID) error {
	membershipKey := aislesInStoreKey(storeID)
	ids, err := d.kv.SMembers(ctx, membershipKey)
	if err != nil {
		return storeErr("listing aisles for purge", err)
	}
	for _, id := range ids {
		aisleID := entity.AisleID(id)
		if err := d.purgeProductsInAisle(ctx, tx, aisleID); err != nil {
			return err
		}
		tx.Del(aisleKey(aisleID))
		tx.Del(productsInAisleKey(aisleID))
	}
	tx.Del(membershipKey)
	return nil
}

// editAisleWeight queues a weight update after checking ownership; part of
// a batched reorder.
func (d *DB) editAisleWeight(ctx context.Context, tx kv.Tx, token string, item entity.ItemWeight) error {
	aisleID := entity.AisleID(item.ID)
	owner, err := d.aisleOwner(ctx, aisleID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	tx.HSet(aisleKey(aisleID), aisleFieldWeight, formatWeight(item.SortWeight))
	return nil
}
