package main

import (
	_ "github.com/joho/godotenv/autoload" // Autoload .env file.

	"github.com/dancecash/dancecash-api/cmd/app"
)

// @contact.name   dance.cash
// @contact.url    https://dance.cash
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Bearer token
func main() {
	if err := app.Start(); err != nil {
		panic(err)
	}
}
