package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/inventa-shop/unlock-survey-api/internal/application/assessment"
	"github.com/inventa-shop/unlock-survey-api/internal/application/auth"
	"github.com/inventa-shop/unlock-survey-api/internal/application/platform"
	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
	"github.com/inventa-shop/unlock-survey-api/internal/domain/entity"
)

// RouterDeps dependências do router.
type RouterDeps struct {
	AuthUC       *auth.UseCase
	SurveyUC     *survey.UseCase
	AssessmentUC *assessment.UseCase
	PlatformUC   *platform.UseCase
	Limiter      RateLimiter
	Captcha      CaptchaVerifier
	JWTSecret    string
}

// Router registra as rotas da API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC, deps.Limiter, deps.Captcha)
	authGroup.Post("/signup", authHandler.Signup)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/forgot-password", authHandler.ForgotPassword)
	authGroup.Post("/reset-password", authHandler.ResetPassword)
	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)

	// Seller (protegido, papel seller)
	seller := api.Group("/seller", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RoleSeller))
	sellerHandler := NewSellerHandler(deps.SurveyUC, deps.AssessmentUC, deps.AuthUC)
	seller.Get("/home", sellerHandler.Home)
	seller.Get("/steps/:key", sellerHandler.GetStep)
	seller.Post("/steps/:key/answers", sellerHandler.SaveStepAnswers)
	seller.Post("/progress/complete", sellerHandler.CompleteProgress)
	seller.Get("/results", sellerHandler.Results)
	seller.Get("/assessment", sellerHandler.GetAssessment)
	seller.Put("/assessment", sellerHandler.SaveAssessmentDraft)
	seller.Post("/assessment/submit", sellerHandler.SubmitAssessment)

	// Platform (protegido, papel platform)
	plat := api.Group("/platform", AuthMiddleware(deps.JWTSecret), RequireRole(entity.RolePlatform))
	platformHandler := NewPlatformHandler(deps.PlatformUC)
	plat.Get("/sellers", platformHandler.ListSellers)
	plat.Get("/sellers/:id/results", platformHandler.SellerResults)
	plat.Patch("/sellers/:id/received-return", platformHandler.SetReceivedReturn)
	plat.Patch("/sellers/:id/visibility", platformHandler.SetVisibility)
	plat.Get("/sellers/:id/answers.csv", platformHandler.AnswersCSV)
	plat.Get("/sellers/:id/assessment.csv", platformHandler.AssessmentCSV)
	plat.Get("/sellers/:id/report.pdf", platformHandler.ResultsPDF)
}
