package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

type StationHandler struct {
	service ports.StationService
}

func NewStationHandler(service ports.StationService) *StationHandler {
	return &StationHandler{service: service}
}

// @Summary      Create a station
// @Tags         stations
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createStationRequest  true  "Station"
// @Success      201   {object}  domain.Station
// @Failure      422   {object}  errorResponse
// @Router       /stations [post]
func (h *StationHandler) Create(c echo.Context) error {
	var req createStationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.CreateStation(c.Request().Context(), req.Name, *req.NumGrounds)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, s)
}

// @Summary      List stations
// @Tags         stations
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  domain.Station
// @Router       /stations [get]
func (h *StationHandler) List(c echo.Context) error {
	stations, err := h.service.ListStations(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, stations)
}

// @Summary      Get a station
// @Tags         stations
// @Produce      json
// @Security     BasicAuth
// @Param        station_id  path      int  true  "Station id"
// @Success      200         {object}  domain.Station
// @Failure      404         {object}  errorResponse
// @Router       /stations/{station_id} [get]
func (h *StationHandler) Get(c echo.Context) error {
	id, err := pathID(c, "station_id")
	if err != nil {
		return err
	}
	s, err := h.service.GetStation(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// @Summary      Partially update a station
// @Tags         stations
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        station_id  path      int                   true  "Station id"
// @Param        body        body      updateStationRequest  true  "Fields to change"
// @Success      200         {object}  domain.Station
// @Failure      404         {object}  errorResponse
// @Router       /stations/{station_id} [put]
func (h *StationHandler) Update(c echo.Context) error {
	id, err := pathID(c, "station_id")
	if err != nil {
		return err
	}
	var req updateStationRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	s, err := h.service.UpdateStation(c.Request().Context(), id, domain.StationPatch{
		Name:       req.Name,
		NumGrounds: req.NumGrounds,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, s)
}

// @Summary      Delete a station
// @Tags         stations
// @Produce      json
// @Security     BasicAuth
// @Param        station_id  path      int  true  "Station id"
// @Success      200         {object}  deletedResponse
// @Failure      404         {object}  errorResponse
// @Failure      409         {object}  errorResponse
// @Router       /stations/{station_id} [delete]
func (h *StationHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "station_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteStation(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}
