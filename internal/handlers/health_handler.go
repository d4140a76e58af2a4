package handlers

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
)

// MemoryStats is the subset of runtime.MemStats reported by /health.
type MemoryStats struct {
	Alloc      uint64 `json:"alloc"`
	TotalAlloc uint64 `json:"totalAlloc"`
	Sys        uint64 `json:"sys"`
	HeapAlloc  uint64 `json:"heapAlloc"`
	NumGC      uint32 `json:"numGC"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status    string      `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	Uptime    float64     `json:"uptime"`
	Memory    MemoryStats `json:"memory"`
}

// HealthHandler reports liveness; it needs no auth and adds no delay.
type HealthHandler struct {
	started time.Time
	now     func() time.Time
}

func NewHealthHandler(started time.Time) *HealthHandler {
	return &HealthHandler{started: started, now: time.Now}
}

func (h *HealthHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/health", h.HandleHealth)
}

func (h *HealthHandler) HandleHealth(c *fiber.Ctx) error {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	now := h.now()
	return c.JSON(HealthResponse{
		Status:    "healthy",
		Timestamp: now.UTC(),
		Uptime:    now.Sub(h.started).Seconds(),
		Memory: MemoryStats{
			Alloc:      ms.Alloc,
			TotalAlloc: ms.TotalAlloc,
			Sys:        ms.Sys,
			HeapAlloc:  ms.HeapAlloc,
			NumGC:      ms.NumGC,
		},
	})
}
