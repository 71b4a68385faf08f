package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/inventa-shop/unlock-survey-api/internal/application/assessment"
	"github.com/inventa-shop/unlock-survey-api/internal/application/auth"
	"github.com/inventa-shop/unlock-survey-api/internal/application/platform"
	"github.com/inventa-shop/unlock-survey-api/internal/application/survey"
	"github.com/inventa-shop/unlock-survey-api/internal/infrastructure/captcha"
	"github.com/inventa-shop/unlock-survey-api/internal/infrastructure/email"
	infrapdf "github.com/inventa-shop/unlock-survey-api/internal/infrastructure/pdf"
	"github.com/inventa-shop/unlock-survey-api/internal/infrastructure/postgres"
	httpRouter "github.com/inventa-shop/unlock-survey-api/internal/interfaces/http"
	"github.com/inventa-shop/unlock-survey-api/internal/ratelimit"
	"github.com/inventa-shop/unlock-survey-api/pkg/config"
	"github.com/inventa-shop/unlock-survey-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("carregar configuração: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicação")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexão ao PostgreSQL")
	}
	defer pool.Close()

	// Fluxos de auth rodam fora do escopo RLS de seller: o usuário ainda não
	// está autenticado nesses caminhos, então os repositórios usam o pool direto.
	userRepo := postgres.NewUserRepository(pool)
	resetRepo := postgres.NewPasswordResetRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	emailSender := email.NewSender(cfg.Email, log)
	authUC := auth.NewUseCase(userRepo, resetRepo, emailSender, cfg, log)

	surveyUC := survey.NewUseCase(txRunner, cfg.Survey)
	assessmentUC := assessment.NewUseCase(txRunner.Assessment())

	pdfRenderer := infrapdf.NewMarotoReportRenderer()
	platformUC := platform.NewUseCase(txRunner, pdfRenderer, log)

	limiter := ratelimit.NewFixedWindowLimiter(
		cfg.RateLimit.RedisAddr, cfg.RateLimit.RedisPassword,
		5, time.Hour, log,
	)
	if limiter == nil {
		log.Warn().Msg("rate limit desativado (REDIS_ADDR vazio)")
	}
	captchaVerifier := captcha.NewVerifier(cfg.Captcha.TurnstileSecret)
	if !captchaVerifier.Enabled() {
		log.Warn().Msg("verificação Turnstile desativada (TURNSTILE_SECRET_KEY vazio)")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	// Swagger UI local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Unlock Survey API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:       authUC,
		SurveyUC:     surveyUC,
		AssessmentUC: assessmentUC,
		PlatformUC:   platformUC,
		Limiter:      limiter,
		Captcha:      captchaVerifier,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("sinal de desligamento recebido, encerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("encerramento do servidor")
	}

	log.Info().Msg("aplicação parada")
}
