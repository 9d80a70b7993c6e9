package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/pedidos/internal/config"
	"github.com/MrJamesThe3rd/pedidos/internal/http/auth"
)

// token mints a bearer token for the API with the configured AUTH_JWT_SECRET.
func main() {
	_ = godotenv.Load()

	subject := flag.String("subject", "", "who the token is for, e.g. the shop name")
	ttl := flag.Duration("ttl", 30*24*time.Hour, "token lifetime")

	flag.Parse()

	if *subject == "" {
		fmt.Fprintln(os.Stderr, "missing -subject")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	verifier := auth.NewVerifier(cfg.Auth.JWTSecret, cfg.Auth.Issuer)
	if verifier == nil {
		slog.Error("AUTH_JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := verifier.Issue(*subject, *ttl)
	if err != nil {
		slog.Error("failed to issue token", "error", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
