package main

import (
	"github.com/greenbasket/order-svc/internal/app"
	"github.com/greenbasket/order-svc/internal/config"
)

func main() {
	config.MustInit()
	app.MustNewApp().Run()
}
