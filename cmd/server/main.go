package main

import (
	"github.com/ss-immigration/application_service/config"
	"github.com/ss-immigration/application_service/internal/api"
)

func main() {
	cfg := config.LoadConfig()
	api.StartServer(cfg)
}
