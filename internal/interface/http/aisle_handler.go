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

type AisleHandler struct {
	Service *application.ListService
	Logger  *logrus.Logger
}

func NewAisleHandler(service *application.ListService, logger *logrus.Logger) *AisleHandler {
	return &AisleHandler{Service: service, Logger: logger}
}

// Create POST /api/stores/:id/aisles: the new aisle lands last in display
// order.
func (h *AisleHandler) Create(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	aisle, err := h.Service.CreateAisle(c.Request.Context(), authToken(c), entity.StoreID(c.Param("id")), req.Name)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, aisle, "aisle created")
}

// Rename PUT /api/aisles/:id
func (h *AisleHandler) Rename(c *gin.Context) {
	var req nameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	if err := h.Service.RenameAisle(c.Request.Context(), authToken(c), entity.AisleID(c.Param("id")), req.Name); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "aisle renamed")
}

// Delete DELETE /api/aisles/:id: products inside go with it.
func (h *AisleHandler) Delete(c *gin.Context) {
	if err := h.Service.DeleteAisle(c.Request.Context(), authToken(c), entity.AisleID(c.Param("id"))); err != nil {
		writeError(c, err)
		return
	}
	response.Success[any](c, http.StatusOK, nil, "aisle deleted")
}
