package main

import (
	"fmt"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Mints HS256 tokens for local testing against a dev server.
// Usage: go run scripts/gentoken.go <secret>
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: gentoken <jwt-secret>")
		os.Exit(1)
	}
	secret := []byte(os.Args[1])

	users := map[string]string{
		"11111111-1111-1111-1111-111111111111": "employer@example.com",
		"22222222-2222-2222-2222-222222222222": "seeker@example.com",
	}

	for sub, email := range users {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
			"sub":   sub,
			"email": email,
			"exp":   time.Now().Add(24 * time.Hour).Unix(),
		})
		signed, err := token.SignedString(secret)
		if err != nil {
			fmt.Println("Error:", err)
			continue
		}
		fmt.Printf("User: %s\nEmail: %s\nToken: %s\n\n", sub, email, signed)
	}
}
