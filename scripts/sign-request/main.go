// Command sign-request computes the signature headers for a storefront
// request, for testing protected endpoints with curl:
//
//	API_SECRET=... go run ./scripts/sign-request -body '{"email":"a@b.co"}'
//
// It prints x-timestamp and x-signature values valid for the next five
// minutes. GET requests sign an empty body.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/partsdesk/partsdesk/internal/auth"
)

func main() {
	var (
		secret = flag.String("secret", os.Getenv("API_SECRET"), "Shared signing secret (prefer API_SECRET env)")
		body   = flag.String("body", "", "Request body to sign; empty for GET requests")
	)
	flag.Parse()

	if *secret == "" {
		fmt.Fprintln(os.Stderr, "a secret is required: set API_SECRET or pass -secret")
		os.Exit(1)
	}

	timestamp := strconv.FormatInt(time.Now().UnixMilli(), 10)
	signature := auth.Sign(*secret, []byte(*body), timestamp)

	fmt.Printf("x-timestamp: %s\n", timestamp)
	fmt.Printf("x-signature: %s\n", signature)
}
