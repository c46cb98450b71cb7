package application

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/internal/infrastructure/db"
	"github.com/groceryhub/grocery-api/pkg/apperr"
)

// ListService exposes the store/aisle/product operations. Every call
// validates the session token before the repositories see it, so a revoked
// or tampered token never reaches a mutation.
type ListService struct {
	DB     *db.DB
	Logger *logrus.Logger
}

func NewListService(database *db.DB, logger *logrus.Logger) *ListService {
	return &ListService{DB: database, Logger: logger}
}

func (s *ListService) CreateStore(ctx context.Context, token, name string) (entity.Store, error) {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return entity.Store{}, err
	}
	return s.DB.CreateStore(ctx, token, name)
}

func (s *ListService) RenameStore(ctx context.Context, token string, storeID entity.StoreID, newName string) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.RenameStore(ctx, token, storeID, newName)
}

// GetStore returns the full tree, aisles and products sorted for display
// by weight with name as tie-break.
func (s *ListService) GetStore(ctx context.Context, token string, storeID entity.StoreID) (entity.Store, error) {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return entity.Store{}, err
	}
	store, err := s.DB.GetStore(ctx, token, storeID)
	if err != nil {
		return entity.Store{}, err
	}
	entity.SortAisles(store.Aisles)
	for i := range store.Aisles {
		entity.SortProducts(store.Aisles[i].Products)
	}
	return store, nil
}

func (s *ListService) ListStores(ctx context.Context, token string) ([]entity.StoreLight, error) {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return nil, err
	}
	return s.DB.ListStores(ctx, token)
}

func (s *ListService) DeleteStore(ctx context.Context, token string, storeID entity.StoreID) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	if err := s.DB.DeleteStore(ctx, token, storeID); err != nil {
		return err
	}
	s.Logger.WithField("store_id", storeID).Debug("store deleted")
	return nil
}

func (s *ListService) CreateAisle(ctx context.Context, token string, storeID entity.StoreID, name string) (entity.Aisle, error) {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return entity.Aisle{}, err
	}
	return s.DB.CreateAisle(ctx, token, storeID, name)
}

func (s *ListService) RenameAisle(ctx context.Context, token string, aisleID entity.AisleID, newName string) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.RenameAisle(ctx, token, aisleID, newName)
}

func (s *ListService) DeleteAisle(ctx context.Context, token string, aisleID entity.AisleID) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.DeleteAisle(ctx, token, aisleID)
}

func (s *ListService) CreateProduct(ctx context.Context, token string, aisleID entity.AisleID, name string) (entity.Product, error) {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return entity.Product{}, err
	}
	return s.DB.CreateProduct(ctx, token, aisleID, name)
}

// EditProduct applies a partial update; a patch with no field set is a
// validation failure before any store access.
func (s *ListService) EditProduct(ctx context.Context, token string, productID entity.ProductID, patch entity.EditProduct) error {
	if !patch.HasAtLeastAField() {
		return apperr.InvalidParams("at least a field must be present")
	}
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.EditProduct(ctx, token, productID, patch)
}

func (s *ListService) DeleteProduct(ctx context.Context, token string, productID entity.ProductID) error {
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.DeleteProduct(ctx, token, productID)
}

// ChangeSortWeight persists a drag-and-drop reorder across aisles and
// products as one atomic batch.
func (s *ListService) ChangeSortWeight(ctx context.Context, token string, edit entity.EditWeight) error {
	if !edit.HasAtLeastAField() {
		return apperr.InvalidParams("at least a field must be present")
	}
	if err := s.DB.ValidateSession(ctx, token); err != nil {
		return err
	}
	return s.DB.ChangeSortWeights(ctx, token, edit)
}
