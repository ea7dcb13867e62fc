package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"voiceqa/internal/handlers"
)

type Dependencies struct {
	QAHandler *handlers.QAHandler
}

func NewServerDependencies(qaHandler *handlers.QAHandler) *Dependencies {
	return &Dependencies{
		QAHandler: qaHandler,
	}
}

// InitializeRoutes wires the HTTP surface. CORS is fully open, acceptable
// for a local demo only.
func InitializeRoutes(router *gin.Engine, deps *Dependencies) {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = []string{"*"}
	router.Use(cors.New(corsCfg))

	h := deps.QAHandler
	router.GET("/", h.Health)
	router.GET("/check-context/", h.CheckContext)
	router.POST("/upload-audio/", h.UploadAudio)
	router.POST("/ask-question/", h.AskQuestion)
	router.GET("/download-response/:filename", h.DownloadResponse)
}
