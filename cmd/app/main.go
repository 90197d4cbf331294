package main

import (
	"bookingdesk/config"
	"bookingdesk/di"
	"bookingdesk/shared/logger"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
