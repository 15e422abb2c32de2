package httpapi

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vladislavdragonenkov/shop/internal/domain"
)

// pathID разбирает :id; при ошибке сразу отвечает 400.
func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondInvalid(c, fmt.Sprintf("invalid id %q", c.Param("id")))
		return 0, false
	}
	return id, true
}

// bindJSON декодирует тело запроса; при ошибке сразу отвечает 400.
func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondInvalid(c, "malformed request body: "+err.Error())
		return false
	}
	return true
}

// parseBirthday принимает YYYY-MM-DD или MM-DD; год для сравнения не важен.
// Для MM-DD берётся високосный год, чтобы 02-29 оставалась допустимой датой.
func parseBirthday(raw string) (domain.Date, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return domain.Date{}, fmt.Errorf("date is required")
	}
	if t, err := time.Parse(domain.DateLayout, raw); err == nil {
		return domain.DateOf(t), nil
	}
	if t, err := time.Parse("01-02", raw); err == nil {
		return domain.NewDate(2000, t.Month(), t.Day()), nil
	}
	return domain.Date{}, fmt.Errorf("date must be YYYY-MM-DD or MM-DD, got %q", raw)
}

// queryDays читает days; отсутствие параметра означает 0.
func queryDays(c *gin.Context) (int, error) {
	raw := strings.TrimSpace(c.Query("days"))
	if raw == "" {
		return 0, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("days must be an integer, got %q", raw)
	}
	return days, nil
}

// queryCustomerID читает customer_id (или customerId для старых клиентов).
func queryCustomerID(c *gin.Context) (int64, error) {
	raw := strings.TrimSpace(c.Query("customer_id"))
	if raw == "" {
		raw = strings.TrimSpace(c.Query("customerId"))
	}
	if raw == "" {
		return 0, fmt.Errorf("customer_id is required")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("customer_id must be a positive integer, got %q", raw)
	}
	return id, nil
}
