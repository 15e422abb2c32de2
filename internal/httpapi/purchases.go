package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type purchaseHandler struct {
	svc    PurchaseService
	logger *log.Entry
}

func (h *purchaseHandler) list(c *gin.Context) {
	purchases, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, purchases)
}

func (h *purchaseHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	purchase, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (h *purchaseHandler) create(c *gin.Context) {
	var in domain.PurchaseCreate
	if !bindJSON(c, &in) {
		return
	}
	purchase, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/purchases/%d", purchase.ID))
	c.JSON(http.StatusCreated, purchase)
}

func (h *purchaseHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in domain.PurchaseUpdate
	if !bindJSON(c, &in) {
		return
	}
	purchase, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, purchase)
}

func (h *purchaseHandler) delete(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Status(http.StatusNoContent)
}
