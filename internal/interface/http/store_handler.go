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

type StoreHandler struct {
	Service *application.ListService
	Logger  *logrus.Logger
}

func NewStoreHandler(service *application.ListService, logger *logrus.Logger) *StoreHandler {
	return &StoreHandler{Service: service, Logger: logger}
}

type nameRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
}

// Create POST /api/stores
func (h *StoreHandler) Create(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	store, err := h.Service.CreateStore(c.Request.Context(), authToken(c), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, store, "store created")
}

// List GET /api/stores
func (h *StoreHandler) List(c *gin.Context) {
	stores, err := h.Service.ListStores(c.Request.Context(), authToken(c))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, stores, "stores listed")
}

// Get GET /api/stores/:id: the full tree, sorted for display.
func (h *StoreHandler) Get(c *gin.Context) {
	store, err := h.Service.GetStore(c.Request.Context(), authToken(c), entity.StoreID(c.Param("id")))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, store, "store fetched")
}

// Rename PUT /api/stores/:id
func (h *StoreHandler) Rename(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.RenameStore(c.Request.Context(), authToken(c), entity.StoreID(c.Param("id")), req.Name); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "store renamed")
}

// Delete DELETE /api/stores/:id: cascades through aisles and products.
func (h *StoreHandler) Delete(c *gin.Context) {
	if err := h.Service.DeleteStore(c.Request.Context(), authToken(c), entity.StoreID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "store deleted")
}
