// File: handlers/reservations.go
package handlers

import (
	"net/http"

	reservationRepo "innkeeper/database/repository/reservation"
	"innkeeper/models"
	"innkeeper/utils"

	"github.com/gin-gonic/gin"
)

// ReservationHandler exposes the read-only reservation ledger for the host's
// admin tooling.
type ReservationHandler struct {
	Repo reservationRepo.ReservationRepository
}

// NewReservationHandler constructs a ReservationHandler.
func NewReservationHandler(repo reservationRepo.ReservationRepository) *ReservationHandler {
	return &ReservationHandler{Repo: repo}
}

// ListReservations returns reservations, optionally bounded by ?from=...&to=...
// (YYYY-MM-DD, inclusive).
func (h *ReservationHandler) ListReservations(c *gin.Context) {
	from := c.Query("from")
	to := c.Query("to")

	results, err := h.list(c, from, to)
	if err != nil {
		utils.GetLogger().Sugar().Errorw("reservation list failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list reservations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"reservations": results, "count": len(results)})
}

func (h *ReservationHandler) list(c *gin.Context, from, to string) ([]models.Reservation, error) {
	ctx := c.Request.Context()
	if from != "" || to != "" {
		return h.Repo.ListByDateRange(ctx, from, to)
	}
	return h.Repo.ReadAll(ctx)
}
