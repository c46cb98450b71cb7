package db

import (
	"context"
	"fmt"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
)

const (
	productFieldName   = "name"
	productFieldQty    = "quantity"
	productFieldWeight = "sort_weight"
	productFieldState  = "state"
	productFieldUnit   = "unit"
	productFieldOwner  = "owner_id"
	productFieldAisle  = "aisle_id"
)

func productKey(productID entity.ProductID) string {
	return fmt.Sprintf("product:%s", productID)
}

func productsInAisleKey(aisleID entity.AisleID) string {
	return fmt.Sprintf("products_in_aisle:%s", aisleID)
}

func (d *DB) productOwner(ctx context.Context, productID entity.ProductID) (entity.UserID, error) {
	owner, err := d.kv.HGet(ctx, productKey(productID), productFieldOwner)
	if err != nil {
		return "", storeErr("reading product owner", err)
	}
	return entity.UserID(owner), nil
}

func (d *DB) productsInAisle(ctx context.Context, aisleID entity.AisleID) ([]entity.Product, error) {
	ids, err := d.kv.SMembers(ctx, productsInAisleKey(aisleID))
	if err != nil {
		return nil, storeErr("listing products", err)
	}
	out := make([]entity.Product, 0, len(ids))
	for _, id := range ids {
		productID := entity.ProductID(id)
		key := productKey(productID)
		name, err := d.kv.HGet(ctx, key, productFieldName)
		if err != nil {
			return nil, storeErr("reading product name", err)
		}
		qty, err := d.kv.HGet(ctx, key, productFieldQty)
		if err != nil {
			return nil, storeErr("reading product quantity", err)
		}
		state, err := d.kv.HGet(ctx, key, productFieldState)
		if err != nil {
			return nil, storeErr("reading product state", err)
		}
		unit, err := d.kv.HGet(ctx, key, productFieldUnit)
		if err != nil {
			return nil, storeErr("reading product unit", err)
		}
		weight, err := d.kv.HGet(ctx, key, productFieldWeight)
		if err != nil {
			return nil, storeErr("reading product weight", err)
		}
		out = append(out, entity.Product{
			ID:         productID,
			Name:       name,
			Quantity:   parseInt(qty),
			Done:       parseBool(state),
			Unit:       entity.ParseUnit(parseInt(unit)),
			SortWeight: parseWeight(weight),
		})
	}
	return out, nil
}

// nextProductWeight mirrors aisle placement: first product 0, then current
// max plus one. Same pre-watch read caveat as aisles.
func (d *DB) nextProductWeight(ctx context.Context, aisleID entity.AisleID) (float64, error) {
	products, err := d.productsInAisle(ctx, aisleID)
	if err != nil {
		return 0, err
	}
	if len(products) == 0 {
		return 0, nil
	}
	max := products[0].SortWeight
	for _, p := range products[1:] {
		if p.SortWeight > max {
			max = p.SortWeight
		}
	}
	return max + 1, nil
}

// CreateProduct creates a product under an aisle, owner inherited from the
// aisle. New products start with quantity 1, unit count, not done.
func (d *DB) CreateProduct(ctx context.Context, token string, aisleID entity.AisleID, name string) (entity.Product, error) {
	userID, err := d.SessionUser(ctx, token)
	if err != nil {
		return entity.Product{}, err
	}
	owner, err := d.aisleOwner(ctx, aisleID)
	if err != nil {
		return entity.Product{}, err
	}
	if err := verifyPermission(userID, owner); err != nil {
		return entity.Product{}, err
	}
	productID, err := d.nextProductID(ctx)
	if err != nil {
		return entity.Product{}, err
	}
	weight, err := d.nextProductWeight(ctx, aisleID)
	if err != nil {
		return entity.Product{}, err
	}
	key := productKey(productID)
	membershipKey := productsInAisleKey(aisleID)
	err = d.kv.Transaction(ctx, []string{key, membershipKey}, func(tx kv.Tx) error {
		tx.HSetMultiple(key, map[string]string{
			productFieldName:   name,
			productFieldQty:    formatInt(1),
			productFieldWeight: formatWeight(weight),
			productFieldState:  formatBool(false),
			productFieldUnit:   formatInt(int(entity.UnitCount)),
			productFieldOwner:  string(userID),
			productFieldAisle:  string(aisleID),
		})
		tx.SAdd(membershipKey, string(productID))
		return nil
	})
	if err != nil {
		return entity.Product{}, txErr("creating product", err)
	}
	return entity.Product{
		ID:         productID,
		Name:       name,
		Quantity:   1,
		Done:       false,
		Unit:       entity.UnitCount,
		SortWeight: weight,
	}, nil
}

// EditProduct applies a partial update. Validation of "at least one field"
// happens at the application boundary; here nil fields are simply skipped.
func (d *DB) EditProduct(ctx context.Context, token string, productID entity.ProductID, patch entity.EditProduct) error {
	owner, err := d.productOwner(ctx, productID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	fields := make(map[string]string, 4)
	if patch.Name != nil {
		fields[productFieldName] = *patch.Name
	}
	if patch.Quantity != nil {
		fields[productFieldQty] = formatInt(*patch.Quantity)
	}
	if patch.Unit != nil {
		fields[productFieldUnit] = formatInt(int(*patch.Unit))
	}
	if patch.Done != nil {
		fields[productFieldState] = formatBool(*patch.Done)
	}
	if err := d.kv.HSetMultiple(ctx, productKey(productID), fields); err != nil {
		return storeErr("editing product", err)
	}
	return nil
}

// DeleteProduct removes the record and its membership entry in one commit.
func (d *DB) DeleteProduct(ctx context.Context, token string, productID entity.ProductID) error {
	owner, err := d.productOwner(ctx, productID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	key := productKey(productID)
	aisleID, err := d.kv.HGet(ctx, key, productFieldAisle)
	if err != nil {
		return storeErr("reading product parent", err)
	}
	membershipKey := productsInAisleKey(entity.AisleID(aisleID))
	err = d.kv.Transaction(ctx, []string{key, membershipKey}, func(tx kv.Tx) error {
		tx.SRem(membershipKey, string(productID))
		tx.Del(key)
		return nil
	})
	if err != nil {
		return txErr("deleting product", err)
	}
	return nil
}

// purgeProductsInAisle queues deletion of every product record below the
// aisle plus the membership set itself; the caller commits.
func (d *DB) purgeProductsInAisle(ctx context.Context, tx kv.Tx, aisleID entity.AisleID) error {
	membershipKey := productsInAisleKey(aisleID)
	ids, err := d.kv.SMembers(ctx, membershipKey)
	if err != nil {
		return storeErr("listing products for purge", err)
	}
	for _, id := range ids {
		tx.Del(productKey(entity.ProductID(id)))
	}
	tx.Del(membershipKey)
	return nil
}

// editProductWeight queues a weight update after checking ownership; part
// of a batched reorder.
func (d *DB) editProductWeight(ctx context.Context, tx kv.Tx, token string, item entity.ItemWeight) error {
	productID := entity.ProductID(item.ID)
	owner, err := d.productOwner(ctx, productID)
	if err != nil {
		return err
	}
	if err := d.verifyPermissionToken(ctx, token, owner); err != nil {
		return err
	}
	tx.HSet(productKey(productID), productFieldWeight, formatWeight(item.SortWeight))
	return nil
}
