package handlers

import (
	"net/http"

	"github.com/Philip2024394/website-massage--sub045/models"
	"github.com/Philip2024394/website-massage--sub045/services/booking"
	"github.com/Philip2024394/website-massage--sub045/utils"

	"github.com/gin-gonic/gin"
)

// SchemaReportHandler runs the booking schema checks against a candidate
// document and returns the full pass/fail list. Diagnostic tooling for
// hunting down dashboards that still write legacy field names.
func SchemaReportHandler(c *gin.Context) {
	var candidate models.Booking
	if err := c.ShouldBindJSON(&candidate); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	report := booking.SchemaValidationReport(&candidate)
	ok := true
	for _, check := range report {
		if !check.OK {
			ok = false
			break
		}
	}
	c.JSON(http.StatusOK, gin.H{"valid": ok, "checks": report})
}
