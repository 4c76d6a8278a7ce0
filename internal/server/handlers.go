package server

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/railtix/railtix/internal/metrics"
	"github.com/railtix/railtix/internal/service"
	"github.com/railtix/railtix/internal/ticket"
)

// SeedSource produces the tickets the seed endpoint loads. The default
// generates the demo set starting today; tests inject a fixed date.
type SeedSource func() []ticket.Ticket

// DemoSeedSource returns the built-in demo window starting at the
// current local day. This is the only place "now" enters the system.
func DemoSeedSource(days, slotsPerDay int) SeedSource {
	return func() []ticket.Ticket {
		return ticket.DemoSet(time.Now(), days, slotsPerDay)
	}
}

// Handler serves the ticket API.
type Handler struct {
	query   *service.QueryService
	loader  *service.Loader
	seed    SeedSource
	metrics *metrics.Metrics
	log     *zap.Logger
}

// NewHandler wires the API handler.
func NewHandler(query *service.QueryService, loader *service.Loader, seed SeedSource, m *metrics.Metrics, log *zap.Logger) *Handler {
	return &Handler{
		query:   query,
		loader:  loader,
		seed:    seed,
		metrics: m,
		log:     log,
	}
}

// Register mounts the API routes.
func (h *Handler) Register(r gin.IRouter) {
	r.GET("/api/tickets", h.getTickets)
	r.POST("/api/tickets/seed", h.seedTickets)
}

type queryResponse struct {
	Message string          `json:"message"`
	Count   int             `json:"count"`
	Data    []ticket.Ticket `json:"data"`
}

type seedResponse struct {
	Message       string `json:"message"`
	InsertedCount int    `json:"insertedCount"`
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

const missingParamsMessage = "Missing required parameters: from, to, date"

func (h *Handler) getTickets(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")
	date := c.Query("date")

	if from == "" || to == "" || date == "" {
		h.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
		c.JSON(http.StatusBadRequest, errorResponse{Message: missingParamsMessage})
		return
	}

	tickets, err := h.query.Tickets(c.Request.Context(), from, to, date)
	if err != nil {
		var verr *service.ValidationError
		if errors.As(err, &verr) {
			h.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			c.JSON(http.StatusBadRequest, errorResponse{Message: missingParamsMessage})
			return
		}
		h.metrics.QueriesTotal.WithLabelValues(metrics.OutcomeError).Inc()
		h.log.Error("ticket query failed",
			zap.String("from", from),
			zap.String("to", to),
			zap.String("date", date),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Failed to fetch tickets",
			Error:   err.Error(),
		})
		return
	}

	outcome := metrics.OutcomeOK
	if len(tickets) == 0 {
		outcome = metrics.OutcomeEmpty
	}
	h.metrics.QueriesTotal.WithLabelValues(outcome).Inc()

	c.JSON(http.StatusOK, queryResponse{
		Message: "Tickets fetched successfully",
		Count:   len(tickets),
		Data:    tickets,
	})
}

func (h *Handler) seedTickets(c *gin.Context) {
	tickets := h.seed()

	inserted, err := h.loader.Load(c.Request.Context(), tickets)
	if err != nil {
		h.log.Error("seed load failed",
			zap.Int("inserted", inserted),
			zap.Int("total", len(tickets)),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, errorResponse{
			Message: "Failed to insert tickets.",
			Error:   err.Error(),
		})
		return
	}

	h.metrics.TicketsLoadedTotal.Add(float64(inserted))
	c.JSON(http.StatusOK, seedResponse{
		Message:       "Tickets inserted successfully.",
		InsertedCount: inserted,
	})
}
