package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/invoicely-api/internal/application/seed"
	"github.com/sangkips/invoicely-api/internal/presentation/http/dto/response"
)

// SeedHandler exposes the demo data scheduler
type SeedHandler struct {
	scheduler *seed.Scheduler
}

// NewSeedHandler creates a new seed handler
func NewSeedHandler(scheduler *seed.Scheduler) *SeedHandler {
	return &SeedHandler{scheduler: scheduler}
}

// GetStatus returns the scheduler counters
func (h *SeedHandler) GetStatus(c *gin.Context) {
	response.OK(c, "Seed status retrieved", h.scheduler.Status())
}
