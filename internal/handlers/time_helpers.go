package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/agenda-citas/internal/httperr"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 15:04"
)

// --------------------------------------------------
// All request dates are read in the single business zone.
// --------------------------------------------------

func parseDate(loc *time.Location, dateStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, dateStr, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date", "date %q must use YYYY-MM-DD", dateStr)
	}
	return t, nil
}

func parseDateTime(loc *time.Location, dateStr, timeStr string) (time.Time, error) {
	t, err := time.ParseInLocation(dateTimeLayout, dateStr+" "+timeStr, loc)
	if err != nil {
		return time.Time{}, httperr.ErrValidation("invalid_date_or_time", "date %q and time %q must use YYYY-MM-DD and HH:MM", dateStr, timeStr)
	}
	return t, nil
}

// parseMonth reads "2006-01".
func parseMonth(loc *time.Location, monthStr string) (int, time.Month, error) {
	t, err := time.ParseInLocation("2006-01", monthStr, loc)
	if err != nil {
		return 0, 0, httperr.ErrValidation("invalid_month", "month %q must use YYYY-MM", monthStr)
	}
	return t.Year(), t.Month(), nil
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Path parameter "+name+" must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}

func parseIDQuery(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Query(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Query parameter "+name+" must be a positive integer.")
		return 0, false
	}
	return uint(id), true
}

func bindError(c *gin.Context, err error) {
	httperr.BadRequest(c, "invalid_request", err.Error())
}
