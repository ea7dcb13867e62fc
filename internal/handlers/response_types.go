package handlers

// Response wrapper types for the HTTP surface

// SuccessResponse represents a generic success response
type SuccessResponse struct {
	Message string `json:"message" example:"Voice Audio Q&A API is running"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error" example:"Something went wrong"`
	Details string `json:"details,omitempty" example:"underlying failure"`
}

// UploadResponse represents the response for a context audio upload
type UploadResponse struct {
	Success       bool   `json:"success" example:"true"`
	FileID        string `json:"fileId" example:"8a66f9b2-91a4-4a9e-b1f7-3c1d49f3a2e0"`
	SessionID     string `json:"sessionId" example:"default_session"`
	Transcription string `json:"transcription" example:"hello world"`
	Message       string `json:"message" example:"Audio uploaded and transcribed successfully"`
}

// AskResponse represents the response for a spoken question
type AskResponse struct {
	Success   bool   `json:"success" example:"true"`
	Question  string `json:"question" example:"what did they say?"`
	Answer    string `json:"answer" example:"They said hello world."`
	AudioFile string `json:"audioFile" example:"response_8a66f9b2.mp3"`
}

// ContextResponse represents the response for a context check
type ContextResponse struct {
	HasContext bool   `json:"hasContext" example:"true"`
	SessionID  string `json:"sessionId" example:"default_session"`
	Preview    string `json:"preview" example:"hello world"`
}
