package handler

type createAnswerRequest struct {
	UserID     int64  `json:"user_id"     validate:"required,gt=0"`
	QuestionID int64  `json:"question_id" validate:"required,gt=0"`
	Answer     string `json:"answer"      validate:"required"`
}
