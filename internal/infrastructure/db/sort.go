package db

import (
	"context"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/kv"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

// ChangeSortWeights applies a drag-and-drop reorder: one field write per
// item, all queued into a single commit watching every touched record.
// Each item is permission-checked individually before its write is queued;
// any failure aborts the whole batch.
func (d *DB) ChangeSortWeights(ctx context.Context, token string, edit entity.EditWeight) error {
	if !edit.HasAtLeastAField() {
		return apperr.InvalidParams("at least a field must be present")
	}
	watch := make([]string, 0, len(edit.Aisles)+len(edit.Products))
	for _, item := range edit.Aisles {
		watch = append(watch, aisleKey(entity.AisleID(item.ID)))
	}
	for _, item := range edit.Products {
		watch = append(watch, productKey(entity.ProductID(item.ID)))
	}
	err := d.kv.Transaction(ctx, watch, func(tx kv.Tx) error {
		for _, item := range edit.Aisles {
			if err := d.editAisleWeight(ctx, tx, token, item); err != nil {
				return err
			}
		}
		for _, item := range edit.Products {
			if err := d.editProductWeight(ctx, tx, token, item); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return txErr("changing sort weights", err)
	}
	return nil
}
