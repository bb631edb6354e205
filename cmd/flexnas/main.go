// filepath: cmd/flexnas/main.go
package main

import (
	"flexnas/internal/cli"

	// Import docs for Swagger
	_ "flexnas/docs"
)

// @title FlexNAS Management API
// @version 1.0.0
// @description REST API for managing users, shares, backups, quotas, settings and file-sharing protocols of a NAS appliance.
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and a JWT token.

func main() {
	cli.Execute()
}
