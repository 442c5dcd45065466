package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/roamstay/hotel-booking-backend/pkg/jwt"
)

// Development tool that mints an identity token for exercising the API.
// Production tokens come from the identity provider.
func main() {
	userID := flag.String("user-id", "", "User UUID (random if omitted)")
	name := flag.String("name", "Test Guest", "Display name claim")
	email := flag.String("email", "guest@example.com", "Email claim")
	secret := flag.String("secret", "", "Signing secret (defaults to JWT_SECRET)")
	ttl := flag.Duration("ttl", time.Hour, "Token lifetime")
	flag.Parse()

	_ = godotenv.Load()

	signingSecret := *secret
	if signingSecret == "" {
		signingSecret = os.Getenv("JWT_SECRET")
	}
	if signingSecret == "" {
		fmt.Fprintln(os.Stderr, "signing secret is required (use -secret or JWT_SECRET)")
		os.Exit(1)
	}

	id := uuid.New()
	if *userID != "" {
		parsed, err := uuid.Parse(*userID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid user id %q: %v\n", *userID, err)
			os.Exit(1)
		}
		id = parsed
	}

	service := jwt.NewService(signingSecret, *ttl)
	token, err := service.GenerateToken(id, *name, *email)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to generate token: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("user_id: %s\n", id)
	fmt.Printf("expires: %s\n", time.Now().Add(*ttl).UTC().Format(time.RFC3339))
	fmt.Println(token)
}
