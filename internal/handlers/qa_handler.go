package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"voiceqa/internal/domains/qa"
	"voiceqa/internal/domains/session"
	"voiceqa/pkg/Logger"
)

const audioFormField = "file"

type QAHandler struct {
	qaService qa.Service
	logger    *Logger.Logger
}

func NewQAHandler(qaService qa.Service, logger *Logger.Logger) *QAHandler {
	return &QAHandler{
		qaService: qaService,
		logger:    logger,
	}
}

// Health reports service liveness
// @Summary Health check
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router / [get]
func (h *QAHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, SuccessResponse{Message: "Voice Audio Q&A API is running"})
}

// CheckContext reports whether the session has an audio context
// @Summary Check session audio context
// @Description Reports whether a transcription is stored for the session and returns a preview of it
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Success 200 {object} ContextResponse
// @Failure 502 {object} ErrorResponse "Session store unavailable"
// @Router /check-context/ [get]
func (h *QAHandler) CheckContext(c *gin.Context) {
	info, err := h.qaService.ContextPreview(c, sessionIDFrom(c))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, ContextResponse{
		HasContext: info.HasContext,
		SessionID:  info.SessionID,
		Preview:    info.Preview,
	})
}

// UploadAudio uploads and transcribes a context audio file
// @Summary Upload audio and transcribe it
// @Description Stores the transcription as the session's audio context for later questions
// @Accept mpfd
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Param file formData file true "Audio file (.mp3, .wav, .m4a, .ogg, .flac)"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} ErrorResponse "Unsupported file type"
// @Failure 502 {object} ErrorResponse "Transcription failed"
// @Router /upload-audio/ [post]
func (h *QAHandler) UploadAudio(c *gin.Context) {
	fileHeader, err := c.FormFile(audioFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}
	defer src.Close()

	res, err := h.qaService.UploadAudio(c, sessionIDFrom(c), fileHeader.Filename, src)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, UploadResponse{
		Success:       true,
		FileID:        res.FileID,
		SessionID:     res.SessionID,
		Transcription: res.Transcription,
		Message:       "Audio uploaded and transcribed successfully",
	})
}

// AskQuestion answers a spoken question against the session context
// @Summary Ask a spoken question
// @Description Transcribes the question, answers it from the session's audio context and synthesizes the answer as speech
// @Accept mpfd
// @Produce json
// @Param X-Session-ID header string false "Session identifier"
// @Param file formData file true "Question audio file"
// @Success 200 {object} AskResponse
// @Failure 400 {object} ErrorResponse "No audio context"
// @Failure 502 {object} ErrorResponse "Collaborator failure"
// @Router /ask-question/ [post]
func (h *QAHandler) AskQuestion(c *gin.Context) {
	fileHeader, err := c.FormFile(audioFormField)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "Invalid request data",
			Details: err.Error(),
		})
		return
	}
	defer src.Close()

	res, err := h.qaService.AskQuestion(c, sessionIDFrom(c), fileHeader.Filename, src)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, AskResponse{
		Success:   true,
		Question:  res.Question,
		Answer:    res.Answer,
		AudioFile: res.AudioFile,
	})
}

// DownloadResponse streams a synthesized response audio file
// @Summary Download synthesized response audio
// @Produce octet-stream
// @Param filename path string true "Response audio filename"
// @Success 200 {file} file "MP3 audio"
// @Failure 404 {object} ErrorResponse "File not found"
// @Router /download-response/{filename} [get]
func (h *QAHandler) DownloadResponse(c *gin.Context) {
	filename := c.Param("filename")
	path, err := h.qaService.ResponsePath(filename)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.Header("Content-Type", "audio/mpeg")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.File(path)
}

func sessionIDFrom(c *gin.Context) string {
	if id := c.GetHeader("X-Session-ID"); id != "" {
		return id
	}
	return session.DefaultSessionID
}

func (h *QAHandler) respondError(c *gin.Context, err error) {
	var depErr *qa.DependencyError
	switch {
	case errors.Is(err, qa.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "File type not supported. Allowed types: " + strings.Join(qa.AllowedExtensions, ", "),
		})
	case errors.Is(err, qa.ErrNoContext):
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "No audio context found. Please upload an audio file first.",
		})
	case errors.Is(err, qa.ErrNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "File not found"})
	case errors.As(err, &depErr):
		h.logger.Errorf("dependency failure: %v", depErr)
		c.JSON(http.StatusBadGateway, ErrorResponse{
			Error:   "Processing failed",
			Details: depErr.Error(),
		})
	default:
		h.logger.Errorf("unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
	}
}
