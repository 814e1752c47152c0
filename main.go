package main

import (
	"context"

	"github.com/locvowork/employee_api_gateway/internal/bootstrap"
	"github.com/locvowork/employee_api_gateway/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		panic(err)
	}

	logger.InfoLog(ctx, "Starting employee api gateway")
	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Server stopped: %v", err)
		panic(err)
	}
}
