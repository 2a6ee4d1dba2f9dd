// Command token mints a signed bearer token for local testing of the API.
//
//	go run ./cmd/token -user org-1 -role organizer
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"eventlottery/config"
	"eventlottery/internal/adapters/auth"
	"eventlottery/internal/domain"
)

func main() {
	userID := flag.String("user", "", "user id placed in the subject claim")
	email := flag.String("email", "", "optional email claim")
	roles := flag.String("role", domain.RoleEntrant, "comma-separated roles (organizer, entrant)")
	ttl := flag.Duration("ttl", 24*time.Hour, "token lifetime")
	flag.Parse()

	if *userID == "" {
		fmt.Fprintln(os.Stderr, "-user is required")
		os.Exit(2)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if cfg.JWTSecret == "" {
		fmt.Fprintln(os.Stderr, "JWT_SECRET is not set")
		os.Exit(1)
	}

	token, err := auth.NewJWTIssuer(cfg.JWTSecret).Issue(*userID, *email, splitRoles(*roles), *ttl)
	if err != nil {
		fmt.Fprintf(os.Stderr, "issue token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(token)
}

func splitRoles(s string) []string {
	var out []string
	for _, r := range strings.Split(s, ",") {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}
