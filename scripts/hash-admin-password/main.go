// Command hash-admin-password produces the argon2id hash expected in
// ADMIN_PASSWORD_HASH. Run it once when provisioning the operator login:
//
//	go run ./scripts/hash-admin-password -format json
//
// The password is read from the ADMIN_PASSWORD environment variable or
// the -password flag; prefer the environment variable so the plaintext
// stays out of shell history.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/partsdesk/partsdesk/internal/auth"
)

type output struct {
	Hash string `json:"hash"`
	Env  string `json:"env"`
}

func main() {
	var (
		password = flag.String("password", os.Getenv("ADMIN_PASSWORD"), "Password to hash (prefer ADMIN_PASSWORD env)")
		format   = flag.String("format", "plain", "Output format: plain or json")
	)
	flag.Parse()

	if *password == "" {
		fmt.Fprintln(os.Stderr, "a password is required: set ADMIN_PASSWORD or pass -password")
		os.Exit(1)
	}
	if len(*password) < 12 {
		fmt.Fprintln(os.Stderr, "password must be at least 12 characters")
		os.Exit(1)
	}

	hash, err := auth.HashPassword(*password)
	if err != nil {
		fmt.Fprintln(os.Stderr, "hash password:", err)
		os.Exit(1)
	}

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(output{Hash: hash, Env: "ADMIN_PASSWORD_HASH"}); err != nil {
			fmt.Fprintln(os.Stderr, "encode output:", err)
			os.Exit(1)
		}
	case "plain":
		fmt.Println(hash)
	default:
		fmt.Fprintln(os.Stderr, "unknown format:", *format)
		os.Exit(1)
	}
}
