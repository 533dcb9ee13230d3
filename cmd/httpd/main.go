package main

import (
	"fmt"
	"os"

	"github.com/PWalkow/ElasticsearchBundle/internal/bootstrap"
)

func main() {
	if err := bootstrap.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start service: %v\n", err)
		os.Exit(1)
	}
}
