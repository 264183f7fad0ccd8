package http

import (
	"net/http"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/clock"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/cron"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/sse"
)

type HealthHandler interface {
	Health(w http.ResponseWriter, r *http.Request)
}

type healthHandlerImpl struct {
	scheduler *cron.Scheduler
	hub       *sse.Hub
	clock     clock.Clock
}

func NewHealthHandler(scheduler *cron.Scheduler, hub *sse.Hub, clk clock.Clock) HealthHandler {
	return &healthHandlerImpl{scheduler: scheduler, hub: hub, clock: clk}
}

type HealthResponse struct {
	Status        string           `json:"status"`
	Time          string           `json:"time"`
	Jobs          []cron.JobStatus `json:"jobs"`
	SSEClients    int              `json:"sse_clients"`
	DroppedEvents uint64           `json:"dropped_events"`
}

// Health reports scheduler job state and live SSE subscribers
func (h *healthHandlerImpl) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status: "ok",
		Time:   h.clock.Now().Format(time.RFC3339),
	}
	if h.scheduler != nil {
		resp.Jobs = h.scheduler.Status()
	}
	if h.hub != nil {
		resp.SSEClients = h.hub.TotalSubscribers()
		resp.DroppedEvents = h.hub.Dropped()
	}
	response.Success(w, resp)
}
