package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/smartlicense/license-api/internal/core/ports"
)

// SecurityHandler serves the recovery question catalog and user answers.
// Answer hashes are never rendered.
type SecurityHandler struct {
	service ports.RecoveryService
}

func NewSecurityHandler(service ports.RecoveryService) *SecurityHandler {
	return &SecurityHandler{service: service}
}

// @Summary      List the security question catalog
// @Tags         security
// @Produce      json
// @Security     BasicAuth
// @Success      200  {array}  domain.SecurityQuestion
// @Router       /security-questions [get]
func (h *SecurityHandler) ListQuestions(c echo.Context) error {
	questions, err := h.service.ListQuestions(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, questions)
}

// @Summary      Get a security question
// @Tags         security
// @Produce      json
// @Security     BasicAuth
// @Param        question_id  path      int  true  "Question id"
// @Success      200          {object}  domain.SecurityQuestion
// @Failure      404          {object}  errorResponse
// @Router       /security-questions/id/{question_id} [get]
func (h *SecurityHandler) GetQuestion(c echo.Context) error {
	id, err := pathID(c, "question_id")
	if err != nil {
		return err
	}
	q, err := h.service.GetQuestion(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, q)
}

// CreateAnswer handles POST /user-security-answers. One answer per user and
// question; a second one is a conflict, there is no overwrite.
//
// @Summary      Record a security answer
// @Tags         security
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        body  body      createAnswerRequest  true  "Answer"
// @Success      201   {object}  messageResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /user-security-answers [post]
func (h *SecurityHandler) CreateAnswer(c echo.Context) error {
	var req createAnswerRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}
	if _, err := h.service.RecordAnswer(c.Request().Context(), req.UserID, req.QuestionID, req.Answer); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: "Answer saved"})
}

// @Summary      List the answers of a user
// @Tags         security
// @Produce      json
// @Security     BasicAuth
// @Param        user_id  path     int  true  "User id"
// @Success      200      {array}  domain.SecurityAnswer
// @Failure      404      {object} errorResponse
// @Router       /user-security-answers/id/{user_id} [get]
func (h *SecurityHandler) ListAnswers(c echo.Context) error {
	id, err := pathID(c, "user_id")
	if err != nil {
		return err
	}
	answers, err := h.service.GetAnswers(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, answers)
}
