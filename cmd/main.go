package main

import (
	"github.com/gin-gonic/gin"
	"github.com/sulphite1011/LMS-by-Hamad/internal/app"
	"github.com/sulphite1011/LMS-by-Hamad/internal/config"
)

func main() {
	gin.SetMode(gin.ReleaseMode)
	cfg := config.MustLoad()
	app.Run(cfg)
}
