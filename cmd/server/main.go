// Analysis HTTP service: accepts dataset uploads and serves aggregate and
// comparison results as JSON or rendered reports.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"armbench/adapters/httpapi"
	"armbench/internal/config"
)

func main() {
	godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	server := httpapi.NewServer(cfg)
	if err := server.Start(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
