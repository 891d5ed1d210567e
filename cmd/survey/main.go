// Command survey serves the QA market survey API.
//
//go:generate swag init -g internal/survey/http/router.go -d ../../ -o ../../api/survey --outputTypes go
package main

import (
	"log"

	"github.com/aussiebroadwan/qasurvey/internal/survey/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
