package httpgin

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"staybook/internal/domain"
	"staybook/internal/domain/refund"
	redisrepo "staybook/internal/repository/redis"
	"staybook/internal/service"
	"staybook/internal/service/booking"
	"staybook/internal/service/property"
	"staybook/internal/service/user"
)

func NewRouter(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
	logger *slog.Logger,
	middlewares ...gin.HandlerFunc,
) *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery(), LoggingMiddleware(logger), RequestIDMiddleware(), CORS())
	for _, m := range middlewares {
		if m != nil {
			r.Use(m)
		}
	}

	// Swagger UI
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// health
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/properties", handleCreateProperty(svcs))
	r.GET("/properties/:id", handleGetProperty(svcs))
	r.GET("/properties/:id/availability", handleGetAvailability(svcs))
	r.GET("/properties/:id/bookings", handleListPropertyBookings(svcs))

	r.POST("/users", handleCreateUser(svcs))
	r.GET("/users/:id", handleGetUser(svcs))

	r.POST("/bookings", handleCreateBooking(svcs, idem))
	r.GET("/bookings/:id", handleGetBooking(svcs))
	r.POST("/bookings/:id/cancel", handleCancelBooking(svcs))

	return r
}

// --- Handlers with Swagger annotations ---

// @Summary  Create property
// @Param    req body  CreatePropertyRequest true "payload"
// @Success  201 {object} PropertyResponse
// @Failure  400 {object} ErrorResponse
// @Router   /properties [post]
func handleCreateProperty(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreatePropertyRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		p, err := svcs.Property.Create(c.Request.Context(), property.CreateParams{
			Title:             req.Title,
			Description:       req.Description,
			MaxGuests:         req.MaxGuests,
			BasePricePerNight: req.BasePricePerNight,
		})
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, toPropertyResponse(p))
	}
}

// @Summary  Get property summary
// @Param    id  path  string  true  "Property ID"
// @Success  200  {object}  property.Summary
// @Failure  404  {object}  ErrorResponse
// @Router   /properties/{id} [get]
func handleGetProperty(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		summary, err := svcs.Property.GetSummary(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 60s
		writeJSONWithCache(c, http.StatusOK, summary, "public, max-age=60", true)
	}
}

// @Summary  Check availability and quote a stay
// @Param    id     path   string  true  "Property ID"
// @Param    start  query  string  true  "check-in (RFC3339)"
// @Param    end    query  string  true  "check-out (RFC3339)"
// @Success  200  {object}  property.Availability
// @Failure  400  {object}  ErrorResponse
// @Router   /properties/{id}/availability [get]
func handleGetAvailability(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		start, err := parseRFC3339(c.Query("start"))
		if err != nil {
			badRequest(c, "invalid start (RFC3339)")
			return
		}
		end, err := parseRFC3339(c.Query("end"))
		if err != nil {
			badRequest(c, "invalid end (RFC3339)")
			return
		}

		avail, err := svcs.Property.CheckAvailability(c.Request.Context(), c.Param("id"), start, end)
		if err != nil {
			respondErr(c, err)
			return
		}
		// ETag + Cache-Control 15s
		writeJSONWithCache(c, http.StatusOK, avail, "public, max-age=15", true)
	}
}

// @Summary  List property bookings
// @Param    id  path  string  true  "Property ID"
// @Success  200  {array}  BookingResponse
// @Router   /properties/{id}/bookings [get]
func handleListPropertyBookings(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		bookings, err := svcs.Booking.ListByProperty(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		writeJSONWithCache(c, http.StatusOK, toBookingResponses(bookings), "public, max-age=15", true)
	}
}

// @Summary  Create user
// @Param    req body  CreateUserRequest true "payload"
// @Success  201 {object} UserResponse
// @Router   /users [post]
func handleCreateUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateUserRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		u, err := svcs.User.Create(c.Request.Context(), req.Name)
		if err != nil {
			respondErr(c, err)
			return
		}

		c.JSON(http.StatusCreated, toUserResponse(u))
	}
}

// @Summary  Get user
// @Param    id  path  string  true  "User ID"
// @Success  200 {object} UserResponse
// @Failure  404 {object} ErrorResponse
// @Router   /users/{id} [get]
func handleGetUser(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := svcs.User.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toUserResponse(u))
	}
}

// @Summary  Create booking (idempotent)
// @Param    req body  CreateBookingRequest true "payload"
// @Header   201 {string} Idempotency-Key "echo"
// @Success  201 {object} BookingResponse
// @Failure  400 {object} ErrorResponse
// @Failure  404 {object} ErrorResponse "property or user not found"
// @Failure  409 {object} ErrorResponse "range unavailable / idem in progress"
// @Failure  429 {object} ErrorResponse "rate limited"
// @Router   /bookings [post]
func handleCreateBooking(
	svcs *service.Services,
	idem *redisrepo.IdempotencyStore,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateBookingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c, err.Error())
			return
		}

		startDate, err := parseRFC3339(req.StartDate)
		if err != nil {
			badRequest(c, "invalid start_date (RFC3339)")
			return
		}
		endDate, err := parseRFC3339(req.EndDate)
		if err != nil {
			badRequest(c, "invalid end_date (RFC3339)")
			return
		}

		idemKey := strings.TrimSpace(c.GetHeader("Idempotency-Key"))
		var idemStorageKey string
		if idem != nil && idemKey != "" {
			idemStorageKey = redisrepo.KeyIdemBooking(req.PropertyID, idemKey)

			if payload, ok, _ := idem.GetResult(
				c.Request.Context(),
				idemStorageKey,
			); ok {
				c.Header("Idempotency-Key", idemKey)
				c.Data(
					http.StatusCreated,
					"application/json; charset=utf-8",
					[]byte(payload),
				)
				return
			}

			locked, err := idem.AcquireLock(
				c.Request.Context(),
				idemStorageKey,
				60*time.Second,
			)
			if err != nil {
				respondErr(c, err)
				return
			}
			if !locked {
				if payload, ok, _ := idem.GetResult(
					c.Request.Context(),
					idemStorageKey,
				); ok {
					c.Header("Idempotency-Key", idemKey)
					c.Data(
						http.StatusCreated,
						"application/json; charset=utf-8",
						[]byte(payload),
					)
					return
				}
				c.Header("Retry-After", "1")
				c.JSON(
					http.StatusConflict,
					ErrorResponse{Error: "idempotency key in progress"},
				)
				return
			}
		}

		b, err := svcs.Booking.Create(c.Request.Context(), booking.CreateParams{
			PropertyID: req.PropertyID,
			GuestID:    req.UserID,
			StartDate:  startDate,
			EndDate:    endDate,
			GuestCount: req.GuestCount,
			RateKey:    "ip:" + c.ClientIP(),
		})
		if err != nil {
			if idemStorageKey != "" && idem != nil {
				_ = idem.Release(c.Request.Context(), idemStorageKey)
			}
			if isRateLimitedErr(err) {
				c.Header("Retry-After", "60")
				c.JSON(
					http.StatusTooManyRequests,
					ErrorResponse{Error: err.Error()},
				)
				return
			}
			respondErr(c, err)
			return
		}

		resp := toBookingResponse(b)

		if idemStorageKey != "" && idem != nil {
			payload, _ := json.Marshal(resp)
			_ = idem.SaveResult(c.Request.Context(), idemStorageKey, string(payload))
			c.Header("Idempotency-Key", idemKey)
		}

		c.JSON(http.StatusCreated, resp)
	}
}

// @Summary  Get booking
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {object} BookingResponse
// @Failure  404 {object} ErrorResponse
// @Router   /bookings/{id} [get]
func handleGetBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svcs.Booking.GetByID(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(b))
	}
}

// @Summary  Cancel booking
// @Param    id  path  string  true  "Booking ID"
// @Success  200 {object} BookingResponse
// @Failure  404 {object} ErrorResponse
// @Failure  409 {object} ErrorResponse "already cancelled"
// @Router   /bookings/{id}/cancel [post]
func handleCancelBooking(svcs *service.Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		b, err := svcs.Booking.Cancel(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondErr(c, err)
			return
		}
		c.JSON(http.StatusOK, toBookingResponse(b))
	}
}

// --- Helpers ---

func badRequest(c *gin.Context, msg string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg})
}

func isRateLimitedErr(err error) bool {
	return err != nil && strings.Contains(err.Error(), "rate limited")
}

func respondErr(c *gin.Context, err error) {
	if err == nil {
		c.Status(http.StatusNoContent)
		return
	}

	var guestCountErr *domain.GuestCountExceededError

	switch {
	// domain validation
	case errors.Is(err, domain.ErrSameDates),
		errors.Is(err, domain.ErrEndBeforeStart),
		errors.Is(err, domain.ErrEmptyTitle),
		errors.Is(err, domain.ErrInvalidMaxGuests),
		errors.Is(err, domain.ErrInvalidBasePrice),
		errors.Is(err, domain.ErrInvalidGuestCount),
		errors.Is(err, domain.ErrEmptyUserID),
		errors.Is(err, domain.ErrEmptyUserName),
		errors.Is(err, refund.ErrInvalidDaysDiff):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: rootMessage(err)})
		return
	case errors.As(err, &guestCountErr):
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: guestCountErr.Error()})
		return
	// domain conflicts
	case errors.Is(err, domain.ErrPropertyUnavailable),
		errors.Is(err, domain.ErrAlreadyCancelled):
		c.JSON(http.StatusConflict, ErrorResponse{Error: rootMessage(err)})
		return
	// booking service
	case errors.Is(err, booking.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "property not found"})
		return
	case errors.Is(err, booking.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	case errors.Is(err, booking.ErrBookingNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "booking not found"})
		return
	// property service
	case errors.Is(err, property.ErrPropertyNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "property not found"})
		return
	// user service
	case errors.Is(err, user.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "user not found"})
		return
	}

	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "internal error"})
}

// rootMessage strips the op-wrapping prefixes so clients see the sentinel
// message itself.
func rootMessage(err error) string {
	for {
		unwrapped := errors.Unwrap(err)
		if unwrapped == nil {
			return err.Error()
		}
		err = unwrapped
	}
}
