package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/core/domain"
	"github.com/smartlicense/license-api/internal/core/ports"
)

// ProfileHandler serves the user, instructor and learner profile resources.
type ProfileHandler struct {
	service ports.ProfileService
}

func NewProfileHandler(service ports.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// --- User profiles ---

// CreateUser handles POST /user-profiles.
//
// @Summary      Create a user profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createUserProfileRequest  true  "Profile"
// @Success      201   {object}  domain.UserProfile
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /user-profiles [post]
func (h *ProfileHandler) CreateUser(c echo.Context) error {
	var req createUserProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.CreateUserProfile(c.Request().Context(), toUserProfile(req.UserID, req.userProfileFields))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// @Summary      List user profiles
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  domain.UserProfile
// @Router       /user-profiles [get]
func (h *ProfileHandler) ListUsers(c echo.Context) error {
	profiles, err := h.service.ListUserProfiles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// @Summary      Get a user profile
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  domain.UserProfile
// @Failure      404      {object}  errorResponse
// @Router       /user-profiles/{user_id} [get]
func (h *ProfileHandler) GetUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	p, err := h.service.GetUserProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Replace a user profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int                       true  "User id"
// @Param        body     body      updateUserProfileRequest  true  "Profile"
// @Success      200      {object}  domain.UserProfile
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /user-profiles/{user_id} [put]
func (h *ProfileHandler) UpdateUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req updateUserProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.UpdateUserProfile(c.Request().Context(), id, toUserProfile(id, req.userProfileFields))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Delete a user profile
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  deletedResponse
// @Failure      404      {object}  errorResponse
// @Router       /user-profiles/{user_id} [delete]
func (h *ProfileHandler) DeleteUser(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteUserProfile(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}

// --- Instructor profiles ---

// CreateInstructor handles POST /instructor-profiles. The user profile and the
// station must both exist; a user can hold one instructor profile and inf_nr
// is unique.
//
// @Summary      Create an instructor profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createInstructorProfileRequest  true  "Profile"
// @Success      201   {object}  domain.InstructorProfile
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /instructor-profiles [post]
func (h *ProfileHandler) CreateInstructor(c echo.Context) error {
	var req createInstructorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.CreateInstructorProfile(c.Request().Context(), domain.InstructorProfile{
		UserID:    req.UserID,
		InfNr:     req.InfNr,
		StationID: req.StationID,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// @Summary      List instructor profiles
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  domain.InstructorProfile
// @Router       /instructor-profiles [get]
func (h *ProfileHandler) ListInstructors(c echo.Context) error {
	profiles, err := h.service.ListInstructorProfiles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// @Summary      Get an instructor profile
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  domain.InstructorProfile
// @Failure      404      {object}  errorResponse
// @Router       /instructor-profiles/{user_id} [get]
func (h *ProfileHandler) GetInstructor(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	p, err := h.service.GetInstructorProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Change the inf_nr of an instructor
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int                             true  "User id"
// @Param        body     body      updateInstructorProfileRequest  true  "New inf_nr"
// @Success      200      {object}  domain.InstructorProfile
// @Failure      404      {object}  errorResponse
// @Failure      409      {object}  errorResponse
// @Router       /instructor-profiles/{user_id} [put]
func (h *ProfileHandler) UpdateInstructor(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req updateInstructorProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.UpdateInstructorProfile(c.Request().Context(), id, req.InfNr)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Delete an instructor profile
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  deletedResponse
// @Failure      404      {object}  errorResponse
// @Router       /instructor-profiles/{user_id} [delete]
func (h *ProfileHandler) DeleteInstructor(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteInstructorProfile(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}

// --- Learner profiles ---

// @Summary      Create a learner profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createLearnerProfileRequest  true  "Profile"
// @Success      201   {object}  domain.LearnerProfile
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /learner-profiles [post]
func (h *ProfileHandler) CreateLearner(c echo.Context) error {
	var req createLearnerProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.CreateLearnerProfile(c.Request().Context(), toLearnerProfile(req.UserID, req.learnerProfileFields))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, p)
}

// @Summary      List learner profiles
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  domain.LearnerProfile
// @Router       /learner-profiles [get]
func (h *ProfileHandler) ListLearners(c echo.Context) error {
	profiles, err := h.service.ListLearnerProfiles(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profiles)
}

// @Summary      Get a learner profile
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  domain.LearnerProfile
// @Failure      404      {object}  errorResponse
// @Router       /learner-profiles/{user_id} [get]
func (h *ProfileHandler) GetLearner(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	p, err := h.service.GetLearnerProfile(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Replace a learner profile
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int                          true  "User id"
// @Param        body     body      updateLearnerProfileRequest  true  "Profile"
// @Success      200      {object}  domain.LearnerProfile
// @Failure      404      {object}  errorResponse
// @Router       /learner-profiles/{user_id} [put]
func (h *ProfileHandler) UpdateLearner(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	var req updateLearnerProfileRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	p, err := h.service.UpdateLearnerProfile(c.Request().Context(), id, toLearnerProfile(id, req.learnerProfileFields))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// @Summary      Delete a learner profile
// @Tags         profiles
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path      int  true  "User id"
// @Success      200      {object}  deletedResponse
// @Failure      404      {object}  errorResponse
// @Router       /learner-profiles/{user_id} [delete]
func (h *ProfileHandler) DeleteLearner(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	if err := h.service.DeleteLearnerProfile(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, deleted)
}
