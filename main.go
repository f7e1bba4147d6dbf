package main

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"storeit/api"
	"storeit/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	a, err := api.NewRouter(cfg)
	if err != nil {
		panic(err)
	}

	zap.L().Info("Server starting", zap.Int("port", cfg.Port))

	err = a.Router.Run(fmt.Sprintf(":%d", cfg.Port))
	if err != nil {
		panic(err)
	}
}
