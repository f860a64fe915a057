package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"johar-connect/internal/app"
	"johar-connect/internal/config"
	"johar-connect/internal/storage"
)

const (
	colorGreen = "\033[32m"
	colorRed   = "\033[31m"
	colorCyan  = "\033[36m"
	colorReset = "\033[0m"
)

func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	email := os.Getenv("SMOKE_EMAIL")
	if email == "" {
		email = "tourist@example.com"
	}
	password := os.Getenv("SMOKE_PASSWORD")
	if password == "" {
		password = "password123"
	}

	store := storage.NewMemoryStore()
	nav := &recordingNavigator{}
	a, err := app.New(ctx, cfg, store, logger, nav)
	if err != nil {
		log.Fatal(err)
	}
	h := &harness{app: a, store: store, nav: nav, loginPath: cfg.LoginPath, email: email, password: password}

	fmt.Printf("%s[Backend]%s %s\n\n", colorCyan, colorReset, a.API.BaseURL())
	results := runScenarios(ctx, h, defaultScenarios())

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%sFAIL%s %s: %v\n", colorRed, colorReset, r.Scenario.Name, r.Err)
			fmt.Printf("     esperado: %s\n", r.Scenario.ExpectedBehavior)
			continue
		}
		fmt.Printf("%sOK%s   %s\n", colorGreen, colorReset, r.Scenario.Name)
	}

	fmt.Println("==== Resumen ====")
	fmt.Printf("%d/%d escenarios correctos\n", len(results)-failed, len(results))
	if failed > 0 {
		os.Exit(1)
	}
}
