package httpapi

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

type customerHandler struct {
	svc    CustomerService
	logger *log.Entry
}

func (h *customerHandler) list(c *gin.Context) {
	customers, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *customerHandler) get(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.svc.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) create(c *gin.Context) {
	var in domain.CustomerCreate
	if !bindJSON(c, &in) {
		return
	}
	customer, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.Header("Location", fmt.Sprintf("/api/customers/%d", customer.ID))
	c.JSON(http.StatusCreated, customer)
}

func (h *customerHandler) update(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var in domain.CustomerUpdate
	if !bindJSON(c, &in) {
		return
	}
	customer, err := h.svc.Update(c.Request.Context(), id, in)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *customerHandler) delete(c *gin.Context) {
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

func (h *customerHandler) birthdayCelebrants(c *gin.Context) {
	on, err := parseBirthday(c.Query("date"))
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}
	customers, err := h.svc.BirthdayCelebrants(c.Request.Context(), on)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, customers)
}

func (h *customerHandler) recentBuyers(c *gin.Context) {
	days, err := queryDays(c)
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}
	buyers, err := h.svc.RecentBuyers(c.Request.Context(), days)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, buyers)
}

func (h *customerHandler) popularCategories(c *gin.Context) {
	customerID, err := queryCustomerID(c)
	if err != nil {
		respondInvalid(c, err.Error())
		return
	}
	categories, err := h.svc.PopularCategories(c.Request.Context(), customerID)
	if err != nil {
		respondServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
