package handlers

import (
	"net/http"
	"time"

	"github.com/Philip2024394/website-massage--sub045/services/booking"
	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/gin-gonic/gin"
)

// CommissionHandler exposes commission reporting for the admin dashboard.
type CommissionHandler struct {
	Lifecycle booking.LifecycleService
}

// NewCommissionHandler builds a CommissionHandler.
func NewCommissionHandler(lifecycle booking.LifecycleService) *CommissionHandler {
	return &CommissionHandler{Lifecycle: lifecycle}
}

// CommissionSummaryHandler aggregates commission totals over an optional
// ?start=RFC3339&end=RFC3339 range.
func (h *CommissionHandler) CommissionSummaryHandler(c *gin.Context) {
	start, err := parseTimeParam(c.Query("start"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid start", err.Error())
		return
	}
	end, err := parseTimeParam(c.Query("end"))
	if err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid end", err.Error())
		return
	}

	summary, err := h.Lifecycle.CommissionSummary(c.Request.Context(), start, end)
	if err != nil {
		utils.JSONError(c, http.StatusInternalServerError, "failed to summarize commissions", err.Error())
		return
	}
	c.JSON(http.StatusOK, summary)
}

func parseTimeParam(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
