package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"nemt/internal/service"
)

// CalendarHandler handles HTTP requests for the surcharge calendar.
type CalendarHandler struct {
	calendarService *service.CalendarService
	location        *time.Location
}

// NewCalendarHandler creates a new CalendarHandler.
func NewCalendarHandler(calendarService *service.CalendarService, location *time.Location) *CalendarHandler {
	if location == nil {
		location = time.UTC
	}
	return &CalendarHandler{calendarService: calendarService, location: location}
}

// HolidayResponse is a single holiday.
type HolidayResponse struct {
	Name string `json:"name"`
	Date string `json:"date"`
}

// ClassifyResponse is the HTTP response for classifying a moment.
type ClassifyResponse struct {
	Time        string `json:"time"`
	Holiday     bool   `json:"holiday"`
	HolidayName string `json:"holiday_name,omitempty"`
	Weekend     bool   `json:"weekend"`
	AfterHours  bool   `json:"after_hours"`
}

// GetHolidays handles GET /v1/calendar/holidays
func (h *CalendarHandler) GetHolidays(c *gin.Context) {
	year := time.Now().In(h.location).Year()
	if value := c.Query("year"); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			respondError(c, service.ErrInvalidYear)
			return
		}
		year = parsed
	}

	holidays, err := h.calendarService.Holidays(year)
	if err != nil {
		respondError(c, err)
		return
	}

	response := make([]HolidayResponse, 0, len(holidays))
	for _, holiday := range holidays {
		response = append(response, HolidayResponse{
			Name: holiday.Name,
			Date: holiday.Date(h.location).Format("2006-01-02"),
		})
	}

	respondJSON(c, http.StatusOK, response)
}

// Classify handles GET /v1/calendar/classify
func (h *CalendarHandler) Classify(c *gin.Context) {
	t, err := parseTimeParam(c.Query("time"), h.location, false)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid time"})
		return
	}

	day := h.calendarService.Classify(t)
	respondJSON(c, http.StatusOK, ClassifyResponse{
		Time:        day.Time.Format(time.RFC3339),
		Holiday:     day.Holiday,
		HolidayName: day.HolidayName,
		Weekend:     day.Weekend,
		AfterHours:  day.AfterHours,
	})
}
