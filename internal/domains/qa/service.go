// Package qa sequences the upload and question flows: scratch storage,
// transcription, grounded answer generation and speech synthesis.
package qa

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"voiceqa/internal/domains/session"
	"voiceqa/pkg/Logger"
)

var (
	ErrUnsupportedFormat = errors.New("file type not supported")
	ErrNoContext         = errors.New("no audio context found")
	ErrNotFound          = errors.New("response audio not found")
)

// AllowedExtensions is the upload allow-list, matched case-insensitively
// against the filename suffix.
var AllowedExtensions = []string{".mp3", ".wav", ".m4a", ".ogg", ".flac"}

func IsAllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, allowed := range AllowedExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// DependencyError marks a failure in an external collaborator or the
// filesystem, as opposed to a validation failure by the caller.
type DependencyError struct {
	Op  string
	Err error
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Op, e.Err)
}

func (e *DependencyError) Unwrap() error { return e.Err }

type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

type Answerer interface {
	Answer(ctx context.Context, contextText, question string) (string, error)
}

type Synthesizer interface {
	Synthesize(ctx context.Context, text, outputPath string) error
}

type UploadResult struct {
	FileID        string
	SessionID     string
	Transcription string
}

type AnswerResult struct {
	Question  string
	Answer    string
	AudioFile string
}

type ContextInfo struct {
	HasContext bool
	SessionID  string
	Preview    string
}

type Service interface {
	UploadAudio(ctx context.Context, sessionID, filename string, audio io.Reader) (*UploadResult, error)
	AskQuestion(ctx context.Context, sessionID, filename string, audio io.Reader) (*AnswerResult, error)
	ContextPreview(ctx context.Context, sessionID string) (*ContextInfo, error)
	ResponsePath(filename string) (string, error)
}

type Config struct {
	UploadDir         string
	OutputDir         string
	TranscribeTimeout time.Duration
	AnswerTimeout     time.Duration
	SynthesisTimeout  time.Duration
}

const previewLimit = 200

type service struct {
	cfg    Config
	store  session.Store
	stt    Transcriber
	llm    Answerer
	tts    Synthesizer
	logger *Logger.Logger
}

func New(cfg Config, store session.Store, stt Transcriber, llm Answerer, tts Synthesizer, logger *Logger.Logger) Service {
	if cfg.TranscribeTimeout <= 0 {
		cfg.TranscribeTimeout = 30 * time.Second
	}
	if cfg.AnswerTimeout <= 0 {
		cfg.AnswerTimeout = 120 * time.Second
	}
	if cfg.SynthesisTimeout <= 0 {
		cfg.SynthesisTimeout = 30 * time.Second
	}
	return &service{
		cfg:    cfg,
		store:  store,
		stt:    stt,
		llm:    llm,
		tts:    tts,
		logger: logger,
	}
}

// UploadAudio implements Service.
func (s *service) UploadAudio(ctx context.Context, sessionID, filename string, audio io.Reader) (*UploadResult, error) {
	if !IsAllowedExtension(filename) {
		return nil, ErrUnsupportedFormat
	}

	fileID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(filename))
	scratchPath := filepath.Join(s.cfg.UploadDir, fileID+ext)

	if err := saveScratch(scratchPath, audio); err != nil {
		return nil, &DependencyError{Op: "scratch write", Err: err}
	}
	// only the transcription text is retained
	defer removeScratch(scratchPath, s.logger)

	transcription, err := s.transcribe(ctx, scratchPath)
	if err != nil {
		return nil, err
	}

	if err := s.store.Put(ctx, sessionID, transcription); err != nil {
		return nil, &DependencyError{Op: "session store", Err: err}
	}

	s.logger.Infof("stored context for session %s (%d chars, file %s)",
		sessionID, len(transcription), fileID)

	return &UploadResult{
		FileID:        fileID,
		SessionID:     sessionID,
		Transcription: transcription,
	}, nil
}

// AskQuestion implements Service.
func (s *service) AskQuestion(ctx context.Context, sessionID, filename string, audio io.Reader) (*AnswerResult, error) {
	exists, err := s.store.Exists(ctx, sessionID)
	if err != nil {
		return nil, &DependencyError{Op: "session store", Err: err}
	}
	if !exists {
		return nil, ErrNoContext
	}

	questionID := uuid.New().String()
	ext := strings.ToLower(filepath.Ext(filename))
	scratchPath := filepath.Join(s.cfg.UploadDir, "question_"+questionID+ext)

	if err := saveScratch(scratchPath, audio); err != nil {
		return nil, &DependencyError{Op: "scratch write", Err: err}
	}
	defer removeScratch(scratchPath, s.logger)

	questionText, err := s.transcribe(ctx, scratchPath)
	if err != nil {
		return nil, err
	}

	contextText, ok, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, &DependencyError{Op: "session store", Err: err}
	}
	if !ok {
		// context expired between the precondition check and here
		return nil, ErrNoContext
	}

	answerCtx, cancel := context.WithTimeout(ctx, s.cfg.AnswerTimeout)
	defer cancel()
	answerText, err := s.llm.Answer(answerCtx, contextText, questionText)
	if err != nil {
		return nil, &DependencyError{Op: "answer generation", Err: err}
	}

	outputName := "response_" + questionID + ".mp3"
	synthCtx, cancel := context.WithTimeout(ctx, s.cfg.SynthesisTimeout)
	defer cancel()
	if err := s.tts.Synthesize(synthCtx, answerText, filepath.Join(s.cfg.OutputDir, outputName)); err != nil {
		return nil, &DependencyError{Op: "speech synthesis", Err: err}
	}

	s.logger.Infof("answered question for session %s, response %s", sessionID, outputName)

	return &AnswerResult{
		Question:  questionText,
		Answer:    answerText,
		AudioFile: outputName,
	}, nil
}

// ContextPreview implements Service.
func (s *service) ContextPreview(ctx context.Context, sessionID string) (*ContextInfo, error) {
	transcription, ok, err := s.store.Get(ctx, sessionID)
	if err != nil {
		return nil, &DependencyError{Op: "session store", Err: err}
	}

	info := ContextInfo{
		HasContext: ok,
		SessionID:  sessionID,
	}
	if ok {
		preview := []rune(transcription)
		if len(preview) > previewLimit {
			info.Preview = string(preview[:previewLimit]) + "..."
		} else {
			info.Preview = transcription
		}
	}
	return &info, nil
}

// ResponsePath resolves a synthesized response filename to a path under
// the output directory. Traversal outside the directory is a not-found,
// same as a missing file.
func (s *service) ResponsePath(filename string) (string, error) {
	if filename == "" || filename != filepath.Base(filename) {
		return "", ErrNotFound
	}
	path := filepath.Join(s.cfg.OutputDir, filename)
	if _, err := os.Stat(path); err != nil {
		return "", ErrNotFound
	}
	return path, nil
}

func (s *service) transcribe(ctx context.Context, audioPath string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.TranscribeTimeout)
	defer cancel()
	text, err := s.stt.Transcribe(ctx, audioPath)
	if err != nil {
		return "", &DependencyError{Op: "transcription", Err: err}
	}
	return text, nil
}

func saveScratch(path string, audio io.Reader) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, audio); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	return f.Close()
}

func removeScratch(path string, logger *Logger.Logger) {
	if err := os.Remove(path); err != nil {
		logger.Errorf("scratch cleanup %s: %v", path, err)
	}
}
