// File: cmd/service/main.go
// @title        QuantEdgeB API
// @version      1.0
// @description  Authentication, email verification and Whop subscription verification backend for QuantEdgeB.
// @host         localhost:8080
// @BasePath     /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import "log"

func main() {
	if err := run(); err != nil {
		log.Print(err)
		exitFunc(1)
	}
}
