// Command fireauth-demo exercises the fireauth client against a live
// Firebase project: it creates a throwaway account, inspects its
// profile, rotates its credentials, and optionally deletes it again.
//
// Configuration comes from the environment (a .env file is honoured);
// FIREBASE_API_KEY is the only required setting.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"

	"github.com/aussiebroadwan/fireauth/pkg/fireauth"
	"github.com/aussiebroadwan/fireauth/pkg/idtoken"
	"github.com/aussiebroadwan/fireauth/pkg/idx"
	"github.com/aussiebroadwan/fireauth/pkg/slogx"
)

func main() {
	deleteAfter := flag.Bool("delete", false, "delete the demo account before exiting")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using process environment")
	}

	cfg := loadConfig()
	if cfg.APIKey == "" {
		log.Fatal("FIREBASE_API_KEY is not set")
	}

	logger := slogx.New(slogx.Config{
		Service: "fireauth-demo",
		Env:     cfg.Env,
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
	})

	client, err := fireauth.NewClient(fireauth.Config{
		APIKey:         cfg.APIKey,
		Locale:         cfg.Locale,
		ConnectTimeout: cfg.ConnectTimeout,
		RequestTimeout: cfg.RequestTimeout,
		Logger:         logger,
	})
	if err != nil {
		log.Fatalf("failed to initialize client: %v", err)
	}

	ctx := slogx.WithContext(context.Background(), logger)
	if err := run(ctx, client, cfg, *deleteAfter); err != nil {
		logger.Error("demo failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, client *fireauth.Client, cfg demoConfig, deleteAfter bool) error {
	logger := slogx.FromContext(ctx)

	email := cfg.Email
	password := cfg.Password
	if email == "" {
		email = fmt.Sprintf("demo-%s@example.com", strings.ToLower(idx.New().String()))
	}
	if password == "" {
		password = idx.New().String()
	}

	session, err := client.SignUpWithEmailPassword(ctx, email, password)
	if err != nil {
		return fmt.Errorf("sign up: %w", err)
	}
	logger.Info("signed up", "email", email)

	if cfg.ProjectID != "" {
		verifier, err := idtoken.NewVerifier(cfg.ProjectID)
		if err != nil {
			return fmt.Errorf("build verifier: %w", err)
		}
		defer verifier.Close()

		claims, err := verifier.Verify(session.AccessToken())
		if err != nil {
			return fmt.Errorf("verify id token: %w", err)
		}
		logger.Info("id token verified", "user_id", claims.UserID)
	} else if claims, err := idtoken.Decode(session.AccessToken()); err == nil {
		logger.Info("id token decoded", "user_id", claims.UserID)
	}

	session, err = session.UpdateProfile(ctx, "Demo Account", "")
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}

	session, user, err := session.GetUserData(ctx)
	if err != nil {
		return fmt.Errorf("lookup account: %w", err)
	}
	logger.Info("account looked up",
		"local_id", user.LocalID,
		"display_name", user.DisplayName,
		"created_at", user.CreatedAt,
	)

	session, err = session.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("refresh tokens: %w", err)
	}
	logger.Info("token pair refreshed", "expires_in", session.Tokens().ExpiresIn)

	if !deleteAfter {
		logger.Info("leaving demo account in place", "email", email)
		return nil
	}

	if err := session.DeleteAccount(ctx); err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	logger.Info("demo account deleted", "email", email)
	return nil
}
