package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HealthHandler struct {
	vendors VendorHealther
}

func NewHealthHandler(vendors VendorHealther) *HealthHandler {
	return &HealthHandler{
		vendors: vendors,
	}
}

// Show GET RouteGroup + HealthRoute. Состояние каждого вендора независимо;
// 503 если недоступны все.
func (h *HealthHandler) Show(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	health := h.vendors.Health(reqCtx)

	vendors := make(map[string]string, len(health))
	healthy := 0
	for name, err := range health {
		if err == nil {
			vendors[name] = "ok"
			healthy++
			continue
		}
		vendors[name] = err.Error()
	}

	status := http.StatusOK
	if healthy == 0 && len(health) > 0 {
		status = http.StatusServiceUnavailable
	}
	c.JSON(status, gin.H{"vendors": vendors})
}
