// hashgen prints a bcrypt hash for the shared password together with the
// INSERT statement that provisions it. The server never writes the auth
// table; this tool is the out-of-band path.
//
//	go run ./cmd/hashgen -username trip -password 'secret here'
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/iliyamo/trip-planner/internal/auth"
)

func main() {
	username := flag.String("username", "trip", "shared account username")
	password := flag.String("password", "", "password to hash (required)")
	cost := flag.Int("cost", auth.DefaultCost, "bcrypt cost factor")
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "usage: hashgen -password <password> [-username <name>] [-cost 10]")
		os.Exit(2)
	}

	hash, err := auth.HashPassword(*password, *cost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(hash)
	fmt.Println()
	fmt.Printf("INSERT INTO auth (username, password_hash) VALUES ('%s', '%s');\n", *username, hash)
}
