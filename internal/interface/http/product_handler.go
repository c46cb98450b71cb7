package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/groceryhub/grocery-api/internal/application"
	"github.com/groceryhub/grocery-api/internal/domain/entity"
	"github.com/groceryhub/grocery-api/pkg/response"
	"github.com/groceryhub/grocery-api/pkg/validation"
)

type ProductHandler struct {
	Service *application.ListService
	Logger  *logrus.Logger
}

func NewProductHandler(service *application.ListService, logger *logrus.Logger) *ProductHandler {
	return &ProductHandler{Service: service, Logger: logger}
}

type editProductRequest struct {
	Name     *string `json:"name" binding:"omitempty,min=1,max=128"`
	Quantity *int    `json:"quantity" binding:"omitempty,min=1"`
	Unit     *int    `json:"unit" binding:"omitempty,min=0,max=2"`
	Done     *bool   `json:"is_done"`
}

// Create POST /api/aisles/:id/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	product, err := h.Service.CreateProduct(c.Request.Context(), authToken(c), entity.AisleID(c.Param("id")), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, product, "product created")
}

// Edit PUT /api/products/:id: partial update, at least one field required.
func (h *ProductHandler) Edit(c *gin.Context) {
	var req editProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	patch := entity.EditProduct{Name: req.Name, Quantity: req.Quantity, Done: req.Done}
	if req.Unit != nil {
		unit := entity.ParseUnit(*req.Unit)
		patch.Unit = &unit
	}
	if err := h.Service.EditProduct(c.Request.Context(), authToken(c), entity.ProductID(c.Param("id")), patch); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product updated")
}

// Delete DELETE /api/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	if err := h.Service.DeleteProduct(c.Request.Context(), authToken(c), entity.ProductID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "product deleted")
}

// Sort PUT /api/sort_weight: one atomic batch covering aisles and products
// from a drag-and-drop reorder.
func (h *ProductHandler) Sort(c *gin.Context) {
	var edit entity.EditWeight
	if err := c.ShouldBindJSON(&edit); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.ChangeSortWeight(c.Request.Context(), authToken(c), edit); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "sort order updated")
}
