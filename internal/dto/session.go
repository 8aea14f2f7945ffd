package dto

// SessionResponse represents a quiz session in the API response
// @Description Current view of one quiz session
type SessionResponse struct {
	ID         string            `json:"id"`
	State      string            `json:"state" example:"READY"`
	Question   *QuestionResponse `json:"question,omitempty"`
	Score      int               `json:"score"`
	Total      int               `json:"total"`
	Answered   bool              `json:"answered"`
	Answer     *AnswerResponse   `json:"answer,omitempty"`
	Percentage *int              `json:"percentage,omitempty"`
	Feedback   string            `json:"feedback,omitempty"`
	Error      string            `json:"error,omitempty"`
}

// QuestionResponse is the question being asked. The correct answer is not
// included until it has been answered.
type QuestionResponse struct {
	Number  int      `json:"number"`
	Total   int      `json:"total"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	IsLast  bool     `json:"is_last"`
}

// AnswerRequest represents a user's answer in the API request
// @Description Request body for answering the current question
type AnswerRequest struct {
	Choice string `json:"choice"`
}

// AnswerResponse is the outcome of one submitted answer
type AnswerResponse struct {
	Choice        string `json:"choice"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
}

// AnswerResultResponse is returned by the answer endpoint
type AnswerResultResponse struct {
	Result  AnswerResponse  `json:"result"`
	Session SessionResponse `json:"session"`
}

// HealthResponse is returned by the liveness probe
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
