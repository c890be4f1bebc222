package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/api/metrics"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// BookingHandler handles HTTP requests for learner test bookings.
type BookingHandler struct {
	service ports.BookingService
}

func NewBookingHandler(service ports.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// Create handles POST /learner-test-bookings.
//
// Learner, instructor and station ids are stored as given; none of them is
// checked for existence. A repeated Idempotency-Key returns the booking the
// first request created with 200 instead of 201, and 409 while that first
// request is still writing.
//
// @Summary      Create a test booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        Idempotency-Key  header    string                false  "Idempotency key to prevent duplicate submissions"
// @Param        body             body      createBookingRequest  true   "Booking details"
// @Success      201              {object}  bookingResponse
// @Success      200              {object}  bookingResponse
// @Failure      400              {object}  errorResponse
// @Failure      409              {object}  errorResponse
// @Failure      422              {object}  errorResponse
// @Router       /learner-test-bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	var req createBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	out, err := h.service.CreateBooking(c.Request().Context(), ports.CreateBookingInput{
		LearnerID:      req.LearnerID,
		InstructorID:   req.InstructorID,
		StationID:      req.StationID,
		TestDate:       req.TestDate,
		Result:         req.Result,
		LicenseCode:    req.LicenseCode,
		BookingDate:    req.BookingDate,
		RegisteredOn:   req.RegisteredOn,
		IdempotencyKey: c.Request().Header.Get("Idempotency-Key"),
	})
	if err != nil {
		return err
	}
	metrics.BookingsCreatedTotal.WithLabelValues(strconv.FormatBool(out.AlreadyExisted)).Inc()

	status := http.StatusCreated
	if out.AlreadyExisted {
		status = http.StatusOK
	}
	return c.JSON(status, toBookingResponse(out.Booking))
}

// List handles GET /learner-test-bookings.
//
// @Summary      List every booking
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  bookingResponse
// @Router       /learner-test-bookings [get]
func (h *BookingHandler) List(c echo.Context) error {
	bookings, err := h.service.ListBookings(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(bookings))
}

// Get handles GET /learner-test-bookings/:booking_id.
//
// @Summary      Get a booking
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Param        booking_id  path      int  true  "Booking id"
// @Success      200         {object}  bookingResponse
// @Failure      404         {object}  errorResponse
// @Router       /learner-test-bookings/{booking_id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	id, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	b, err := h.service.GetBooking(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// ListByLearner handles GET /learner-test-bookings/learner/:learner_id.
//
// @Summary      List the bookings of one learner
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Param        learner_id  path     int  true  "Learner user id"
// @Success      200         {array}  bookingResponse
// @Failure      404         {object} errorResponse
// @Router       /learner-test-bookings/learner/{learner_id} [get]
func (h *BookingHandler) ListByLearner(c echo.Context) error {
	id, err := pathID(c, "learner_id")
	if err != nil {
		return err
	}
	bookings, err := h.service.ListByLearner(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(bookings))
}

// Pending handles GET /learner-test-bookings/pending/:date.
//
// @Summary      Bookings still pending on a date
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Param        date  path     string  true  "Test date (YYYY-MM-DD)"
// @Success      200   {array}  bookingResponse
// @Failure      422   {object} errorResponse
// @Router       /learner-test-bookings/pending/{date} [get]
func (h *BookingHandler) Pending(c echo.Context) error {
	bookings, err := h.service.PendingForDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(bookings))
}

// Completed handles GET /learner-test-bookings/completed/:date.
//
// @Summary      Bookings with a final result on a date
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Param        date  path     string  true  "Test date (YYYY-MM-DD)"
// @Success      200   {array}  bookingResponse
// @Failure      422   {object} errorResponse
// @Router       /learner-test-bookings/completed/{date} [get]
func (h *BookingHandler) Completed(c echo.Context) error {
	bookings, err := h.service.CompletedForDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toBookingList(bookings))
}

// Results handles GET /learner-test-bookings/results/:date.
//
// @Summary      Bookings on a date grouped by result
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Param        date  path      string  true  "Test date (YYYY-MM-DD)"
// @Success      200   {object}  resultsByDateResponse
// @Failure      422   {object}  errorResponse
// @Router       /learner-test-bookings/results/{date} [get]
func (h *BookingHandler) Results(c echo.Context) error {
	rb, err := h.service.ResultsForDate(c.Request().Context(), c.Param("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toResultsResponse(rb))
}

// UpdateResult handles PUT /learner-test-bookings/:booking_id/result.
//
// @Summary      Overwrite the result of a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        booking_id  path      int                  true  "Booking id"
// @Param        body        body      updateResultRequest  true  "New result"
// @Success      200         {object}  updateResultResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Router       /learner-test-bookings/{booking_id}/result [put]
func (h *BookingHandler) UpdateResult(c echo.Context) error {
	id, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	var req updateResultRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.UpdateResult(c.Request().Context(), id, req.Result)
	if err != nil {
		return err
	}
	metrics.BookingResultUpdatesTotal.WithLabelValues(string(b.Result)).Inc()

	return c.JSON(http.StatusOK, updateResultResponse{
		Message:   "Test result updated to " + string(b.Result),
		BookingID: b.ID,
		Result:    string(b.Result),
	})
}

// Update handles PUT /learner-test-bookings/:booking_id.
//
// @Summary      Partially update a booking
// @Tags         bookings
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        booking_id  path      int                   true  "Booking id"
// @Param        body        body      updateBookingRequest  true  "Fields to change"
// @Success      200         {object}  bookingResponse
// @Failure      404         {object}  errorResponse
// @Failure      422         {object}  errorResponse
// @Router       /learner-test-bookings/{booking_id} [put]
func (h *BookingHandler) Update(c echo.Context) error {
	id, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	var req updateBookingRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	b, err := h.service.UpdateBooking(c.Request().Context(), id, toBookingPatch(req))
	if err != nil {
		return err
	}
	if req.Result != nil {
		metrics.BookingResultUpdatesTotal.WithLabelValues(string(b.Result)).Inc()
	}
	return c.JSON(http.StatusOK, toBookingResponse(b))
}

// Delete handles DELETE /learner-test-bookings/:booking_id.
//
// @Summary      Delete a booking
// @Tags         bookings
// @Produce      json
// @Security     BasicAuth
// @Param        booking_id  path      int  true  "Booking id"
// @Success      200         {object}  deletedResponse
// @Failure      404         {object}  errorResponse
// @Router       /learner-test-bookings/{booking_id} [delete]
func (h *BookingHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "booking_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteBooking(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}
