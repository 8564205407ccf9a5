package main

import (
	"io/fs"
	stdLog "log"

	"github.com/Astemirdum/driver-rating/rating/app"
	"github.com/Astemirdum/driver-rating/rating/config"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

//	@title			Driver rating API
//	@version		1.0
//	@description	Ratings of drivers keyed by license plate.
//	@BasePath		/
func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		stdLog.Fatal("load envs from .env ", err)
	}
	cfg := config.NewConfig()

	app.Run(cfg)
}
