package handler

import (
	"net/http"
	"strconv"

	"jogoo/internal/repository"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	donationRepo *repository.DonationRepository
}

func NewAdminHandler(donationRepo *repository.DonationRepository) *AdminHandler {
	return &AdminHandler{donationRepo: donationRepo}
}

// ListDonations handles GET /admin/donations?status=&limit=&offset=.
func (h *AdminHandler) ListDonations(c *gin.Context) {
	status := c.Query("status")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	donations, total, err := h.donationRepo.List(status, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list donations"})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"donations": donations,
		"total":     total,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetDonation handles GET /admin/donations/:id.
func (h *AdminHandler) GetDonation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid donation id"})
		return
	}
	d, err := h.donationRepo.GetByID(uint(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "donation not found"})
		return
	}
	c.JSON(http.StatusOK, d)
}

// Totals handles GET /admin/donations/totals.
func (h *AdminHandler) Totals(c *gin.Context) {
	totals, err := h.donationRepo.Totals()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to compute totals"})
		return
	}
	c.JSON(http.StatusOK, totals)
}
