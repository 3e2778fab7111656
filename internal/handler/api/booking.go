package api

import (
	"errors"
	"net/http"

	reqdto "multipark-dashboard/internal/handler/dto/request"
	resdto "multipark-dashboard/internal/handler/dto/response"
	"multipark-dashboard/internal/usecase/commands"
	"multipark-dashboard/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	commands commands.BookingCommands
	queries  queries.BookingQueries
}

func NewBookingHandler(cmds commands.BookingCommands, qs queries.BookingQueries) *BookingHandler {
	return &BookingHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary List bookings
// @Description List bookings with optional brand and approval status filters
// @Tags bookings
// @Produce json
// @Param brand query string false "Park brand filter (case-insensitive)"
// @Param status query string false "Approval status filter" Enums(pending, approved)
// @Success 200 {array} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Router /bookings [get]
func (h *BookingHandler) ListBookings(c *gin.Context) {
	var query reqdto.ListBookingsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid filter parameters",
		})
		return
	}

	views, err := h.queries.List(c.Request.Context(), query.ToFilters())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response, err := resdto.FromBookingViews(views)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Get booking
// @Description Get a single booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	view, err := h.queries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	response, err := resdto.FromBookingView(view)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Approve booking
// @Description Approve a single booking; approving an already approved booking is a no-op
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} resdto.ApproveResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/approve [post]
func (h *BookingHandler) ApproveBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid booking ID format",
		})
		return
	}

	result, err := h.commands.Approve(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Booking not found",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromApproveResult(result))
}

// @Summary Approve bookings in bulk
// @Description Approve a set of bookings atomically; fails without side effects when any ID is unknown
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body reqdto.ApproveAllRequest true "Booking IDs to approve"
// @Success 200 {object} resdto.ApproveAllResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/approve [post]
func (h *BookingHandler) ApproveAllBookings(c *gin.Context) {
	var req reqdto.ApproveAllRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	result, err := h.commands.ApproveAll(c.Request.Context(), req.IDs)
	if err != nil {
		var notFound *commands.NotFoundIDsError
		switch {
		case errors.As(err, &notFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error":      "Some bookings were not found",
				"missingIds": notFound.IDs,
			})
		case errors.Is(err, commands.ErrNoBookingIDs):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "No booking IDs provided",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromApproveAllResult(result))
}

// @Summary Dashboard statistics
// @Description Aggregate booking counts, financial totals and approval rate
// @Tags dashboard
// @Produce json
// @Success 200 {object} resdto.StatsResponse
// @Router /dashboard/stats [get]
func (h *BookingHandler) DashboardStats(c *gin.Context) {
	stats, err := h.queries.DashboardStats(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromDashboardStats(stats))
}

// @Summary List brands
// @Description Distinct park brands in first-seen order
// @Tags dashboard
// @Produce json
// @Success 200 {object} resdto.BrandsResponse
// @Router /brands [get]
func (h *BookingHandler) ListBrands(c *gin.Context) {
	brands, err := h.queries.Brands(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.BrandsResponse{Brands: brands})
}

// @Summary Financial summary
// @Description Financial breakdown grouped by brand or payment method
// @Tags dashboard
// @Produce json
// @Param group_by query string false "Grouping key" Enums(brand, payment_method) default(brand)
// @Success 200 {object} resdto.FinancialSummaryResponse
// @Failure 400 {object} map[string]string
// @Router /financial/summary [get]
func (h *BookingHandler) FinancialSummary(c *gin.Context) {
	var query reqdto.FinancialSummaryQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid group_by parameter",
		})
		return
	}

	group := query.ToGroup()
	rows, err := h.queries.FinancialSummary(c.Request.Context(), group)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidFilter):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid group_by parameter",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromFinancialSummary(group, rows))
}
