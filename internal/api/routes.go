package api

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/youruser/coverapp/internal/cover"
)

// NewRouter builds the gin engine with middleware and all routes.
func NewRouter(h *Handler, logger *log.Logger) *gin.Engine {
	r := gin.New()
	r.MaxMultipartMemory = h.cfg.MaxUploadBytes
	r.Use(gin.Recovery(), RequestID(), RequestLogger(logger))
	if len(h.cfg.AllowedOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     h.cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", requestIDHeader},
			ExposeHeaders:    []string{"Content-Disposition", requestIDHeader},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}
	r.Use(LimitBody(h.cfg.MaxUploadBytes))
	RegisterRoutes(r, h)
	return r
}

func RegisterRoutes(r *gin.Engine, h *Handler) {
	api := r.Group("/api")
	{
		api.GET("/health", h.health)
		api.GET("/presets", h.listPresets)
		api.GET("/layout", h.layout)
		api.GET("/canvas", h.canvas)
		api.GET("/qr", h.qr)
		api.POST("/generate-cover", h.generateCover)
		api.POST("/download-part", h.downloadPart)
		for _, k := range cover.Kinds {
			api.POST("/download-"+string(k), h.downloadKind(k))
		}
		api.POST("/add-text", h.addText)
	}

	// paths called by the cover designer UI
	r.GET("/canvas", h.canvas)
	r.POST("/generate-cover/", h.generateCover)
	r.POST("/generate-ai-cover/", h.generateCover)
	r.POST("/download-part/", h.downloadPart)
	for _, k := range cover.Kinds {
		r.POST("/download-"+string(k)+"/", h.downloadKind(k))
	}
	r.POST("/add-text/", h.addText)
}
