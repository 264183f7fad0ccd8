// Command devicetoken mints long-lived access tokens for scanner devices and
// admin consoles. It signs with JWT_SECRET_KEY, read from the environment or .env.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cmlabs-hris/hris-attendance-go/internal/domain/auth"
	"github.com/cmlabs-hris/hris-attendance-go/internal/pkg/jwt"
	"github.com/joho/godotenv"
)

func main() {
	subject := flag.String("subject", "", "device or operator id, stored in the sub claim")
	role := flag.String("role", string(auth.RoleScanner), "admin, scanner or viewer")
	ttl := flag.String("ttl", "720h", "token lifetime")
	flag.Parse()

	if err := run(*subject, *role, *ttl); err != nil {
		fmt.Fprintln(os.Stderr, "devicetoken:", err)
		os.Exit(1)
	}
}

func run(subject, roleName, ttl string) error {
	if subject == "" {
		return auth.ErrSubjectRequired
	}
	role, ok := auth.ParseRole(roleName)
	if !ok {
		return fmt.Errorf("%w: %q", auth.ErrInvalidRole, roleName)
	}
	if _, err := time.ParseDuration(ttl); err != nil {
		return fmt.Errorf("invalid ttl: %w", err)
	}

	_ = godotenv.Load()
	secret := os.Getenv("JWT_SECRET_KEY")
	if secret == "" {
		return fmt.Errorf("JWT_SECRET_KEY is required")
	}

	svc, err := jwt.NewJWTService(secret, ttl)
	if err != nil {
		return err
	}
	token, expiresAt, err := svc.GenerateAccessToken(subject, role)
	if err != nil {
		return err
	}

	fmt.Println(token)
	fmt.Fprintf(os.Stderr, "role=%s subject=%s expires=%s\n", role, subject, time.Unix(expiresAt, 0).Format(time.RFC3339))
	return nil
}
