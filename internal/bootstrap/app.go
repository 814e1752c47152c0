package bootstrap

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/locvowork/employee_api_gateway/internal/config"
	"github.com/locvowork/employee_api_gateway/internal/export"
	"github.com/locvowork/employee_api_gateway/internal/handler"
	"github.com/locvowork/employee_api_gateway/internal/httpclient"
	"github.com/locvowork/employee_api_gateway/internal/logger"
	"github.com/locvowork/employee_api_gateway/internal/service"
	"github.com/locvowork/employee_api_gateway/internal/upstream"
)

type App struct {
	Echo *echo.Echo
}

// requestValidator plugs go-playground/validator into echo's Validate hook.
type requestValidator struct {
	validate *validator.Validate
}

func (rv *requestValidator) Validate(i interface{}) error {
	return rv.validate.Struct(i)
}

func NewApp() *App {
	return &App{
		Echo: echo.New(),
	}
}

func (a *App) Initialize(ctx context.Context) error {
	// Load environment configuration
	if err := config.LoadEnvConfig(); err != nil {
		return fmt.Errorf("failed to load env config: %w", err)
	}

	// Initialize logging
	logger.InitLogging(config.DefaultEnvConfig.LOG_FILE_PATH)
	logger.InfoLog(ctx, "Environment variables loaded successfully")

	// Shared outbound HTTP client
	httpCfg := httpclient.DefaultConfig()
	httpCfg.Timeout = config.DefaultEnvConfig.HTTP_TIMEOUT
	httpCfg.DialTimeout = config.DefaultEnvConfig.HTTP_DIAL_TIMEOUT
	httpCfg.IdleConnTimeout = config.DefaultEnvConfig.HTTP_IDLE_CONN_TIMEOUT
	httpCfg.MaxIdleConns = config.DefaultEnvConfig.HTTP_MAX_IDLE_CONNS
	httpCfg.MaxIdleConnsPerHost = config.DefaultEnvConfig.HTTP_MAX_IDLE_CONNS_PER_HOST

	// Upstream client and services
	client := upstream.NewClient(upstream.Config{
		BaseURL:      config.DefaultEnvConfig.UPSTREAM_BASE_URL,
		MaxAttempts:  config.DefaultEnvConfig.RETRY_MAX_ATTEMPTS,
		InitialDelay: config.DefaultEnvConfig.RETRY_INITIAL_DELAY,
		HTTPClient:   httpclient.New(httpCfg),
	})
	empSvc := service.NewEmployeeService(client)

	// Export layout falls back to the built-in roster columns when the
	// configured file is absent or broken.
	layout, err := export.LoadLayout(config.DefaultEnvConfig.EXPORT_LAYOUT_PATH)
	if err != nil {
		logger.WarnLog(ctx, "Using default export layout: %v", err)
		layout = export.DefaultLayout()
	}

	empHandler := handler.NewEmployeeHandler(empSvc, export.NewRosterExporter(layout))

	a.Echo.Validator = &requestValidator{validate: validator.New()}

	// Register Middlewares
	a.RegisterMiddlewares()

	// Register Routes
	a.RegisterRoutes(empHandler)

	return nil
}

func (a *App) RegisterMiddlewares() {
	a.Echo.Use(middleware.Logger())
	a.Echo.Use(middleware.Recover())
	a.Echo.Use(middleware.CORS())
}

func (a *App) RegisterRoutes(empHandler *handler.EmployeeHandler) {
	g := a.Echo.Group("/api/v1/employees")
	g.GET("", empHandler.GetAllHandler)
	g.GET("/search/:name", empHandler.SearchHandler)
	g.GET("/highestSalary", empHandler.HighestSalaryHandler)
	g.GET("/topTenHighestEarningEmployeeNames", empHandler.TopEarnersHandler)
	g.GET("/export", empHandler.ExportHandler)
	g.GET("/:id", empHandler.GetHandler)
	g.POST("", empHandler.CreateHandler)
	g.DELETE("/:id", empHandler.DeleteHandler)
}

func (a *App) Run() error {
	return a.Echo.Start(":" + config.DefaultEnvConfig.APP_PORT)
}
