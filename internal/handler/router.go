package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/outlinedev/outline/internal/middleware"
)

type RouterDeps struct {
	Auth         *AuthHandler
	Documents    *DocumentHandler
	Editor       *EditorHandler
	Import       *ImportHandler
	Assist       *AssistHandler
	Generator    *GeneratorHandler
	Export       *ExportHandler
	Files        *FileHandler
	JWTSecret    []byte
	AssistWindow time.Duration
}

func RegisterRoutes(api *gin.RouterGroup, deps RouterDeps) {
	api.POST("/auth/register", deps.Auth.Register)
	api.POST("/auth/login", deps.Auth.Login)
	api.POST("/auth/logout", deps.Auth.Logout)

	authGroup := api.Group("")
	authGroup.Use(middleware.JWTAuth(deps.JWTSecret))

	authGroup.GET("/profile", deps.Auth.Profile)
	authGroup.PUT("/profile", deps.Auth.UpdateProfile)

	authGroup.POST("/documents", deps.Documents.Create)
	authGroup.GET("/documents", deps.Documents.List)
	authGroup.GET("/documents/:id", deps.Documents.Get)
	authGroup.PUT("/documents/:id", deps.Documents.Rename)
	authGroup.DELETE("/documents/:id", deps.Documents.Delete)
	authGroup.POST("/documents/import", deps.Import.Upload)

	authGroup.GET("/documents/:id/blocks", deps.Editor.Blocks)
	authGroup.GET("/documents/:id/visible", deps.Editor.Visible)
	authGroup.POST("/documents/:id/blocks/:blockID/insert-after", deps.Editor.InsertAfter)
	authGroup.DELETE("/documents/:id/blocks/:blockID", deps.Editor.DeleteBlock)
	authGroup.PUT("/documents/:id/blocks/:blockID/content", deps.Editor.UpdateContent)
	authGroup.PUT("/documents/:id/blocks/:blockID/type", deps.Editor.ChangeType)
	authGroup.POST("/documents/:id/blocks/:blockID/toggle-checked", deps.Editor.ToggleChecked)
	authGroup.POST("/documents/:id/blocks/:blockID/collapse", deps.Editor.ToggleCollapse)
	authGroup.GET("/documents/:id/blocks/:blockID/chapter", deps.Editor.Chapter)

	authGroup.POST("/documents/:id/slash/open", deps.Editor.SlashOpen)
	authGroup.POST("/documents/:id/slash/key", deps.Editor.SlashKey)
	authGroup.POST("/documents/:id/slash/close", deps.Editor.SlashClose)
	authGroup.GET("/documents/:id/slash", deps.Editor.SlashState)

	authGroup.POST("/documents/:id/selection", deps.Editor.ReportSelection)
	authGroup.DELETE("/documents/:id/selection", deps.Editor.ClearSelection)

	// vendor-backed calls share one rate-limit window
	assistGroup := authGroup.Group("")
	assistGroup.Use(middleware.RateLimit(deps.AssistWindow))
	assistGroup.POST("/documents/:id/blocks/:blockID/suggestion", deps.Assist.Suggest)
	assistGroup.POST("/documents/:id/blocks/:blockID/detection", deps.Assist.Detect)
	assistGroup.POST("/documents/:id/blocks/:blockID/plagiarism", deps.Assist.Plagiarism)
	assistGroup.POST("/documents/:id/blocks/:blockID/speech", deps.Assist.Speak)
	assistGroup.POST("/documents/:id/consult", deps.Assist.Consult)
	assistGroup.POST("/documents/:id/generator/step", deps.Generator.Step)

	authGroup.DELETE("/documents/:id/blocks/:blockID/speech", deps.Assist.StopSpeech)
	authGroup.DELETE("/documents/:id/blocks/:blockID/assist", deps.Assist.Dismiss)
	authGroup.GET("/documents/:id/assist", deps.Assist.Results)

	authGroup.POST("/documents/:id/generator/start", deps.Generator.Start)
	authGroup.POST("/documents/:id/generator/pause", deps.Generator.Pause)
	authGroup.POST("/documents/:id/generator/resume", deps.Generator.Resume)
	authGroup.POST("/documents/:id/generator/reset", deps.Generator.Reset)
	authGroup.POST("/documents/:id/generator/apply", deps.Generator.Apply)
	authGroup.GET("/documents/:id/generator", deps.Generator.Status)
	authGroup.GET("/documents/:id/generator/export", deps.Generator.Export)

	authGroup.GET("/documents/:id/export", deps.Export.Export)

	api.GET("/files/:key", deps.Files.Get)
}
