// cmd/digest/main.go
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"reddit-digest/internal/app"
	"reddit-digest/internal/prompt"
)

func main() {
	os.Exit(run())
}

func run() int {
	application, err := app.Initialize()
	if err != nil {
		log.Printf("Failed to initialize application: %v", err)
		return 1
	}

	log.SetPrefix(fmt.Sprintf("[%s] ", application.RunID[:8]))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	query, err := prompt.New(os.Stdin, os.Stdout).ReadQuery()
	if err != nil {
		log.Printf("Aborted: %v", app.Classify(err, app.KindInput))
		return 1
	}

	result, err := application.Run(ctx, query)
	if err != nil {
		log.Printf("Aborted: %v", err)
		return 1
	}

	if len(result.Sentences) == 0 {
		log.Println("No matching discussion found to summarize")
	}

	for _, sentence := range result.Sentences {
		fmt.Println(sentence)
	}

	return 0
}
