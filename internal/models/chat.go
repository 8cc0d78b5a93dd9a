package models

// ChatRequest is the payload for POST /v1/chat.
type ChatRequest struct {
	Message string `json:"message" validate:"required,min=1,max=4000"`
}

// ChatResponse carries the normalized answer text.
type ChatResponse struct {
	Answer string `json:"answer"`
}

// SmartQuestionsResponse carries exactly four suggested questions.
type SmartQuestionsResponse struct {
	Questions []string `json:"questions"`
}
