package main

import (
	"context"
	"log"
	"os"

	"github.com/certifyai/certify/internal/agent"
	"github.com/certifyai/certify/internal/analyst"
	"github.com/certifyai/certify/internal/server"
	"github.com/certifyai/certify/internal/vault"
	"github.com/google/generative-ai-go/genai"
	"github.com/joho/godotenv"
	"google.golang.org/api/option"
)

func main() {
	// Load .env from the working directory, then the project root
	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../../.env"); err != nil {
			log.Printf("Warning: No .env file found, using environment variables")
		}
	}

	ctx := context.Background()

	store, err := vault.NewFromEnv(ctx)
	if err != nil {
		log.Fatalf("Failed to initialize vault: %v", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("Warning: failed to close vault: %v", err)
		}
	}()
	log.Println("Vault initialized")

	geminiClient, err := initGemini(ctx)
	if err != nil {
		log.Fatal("Failed to initialize Gemini:", err)
	}
	defer func() {
		if err := geminiClient.Close(); err != nil {
			log.Printf("Warning: failed to close Gemini client: %v", err)
		}
	}()

	documentAnalyst := analyst.NewGemini(geminiClient, os.Getenv("GEMINI_MODEL"))
	followUpAgent := agent.New(store)

	srv := server.New(documentAnalyst, followUpAgent, store)

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	log.Printf("Server starting on port %s", port)
	if err := srv.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

func initGemini(ctx context.Context) (*genai.Client, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		log.Println("Warning: GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, err
	}

	log.Println("Gemini client initialized")
	return client, nil
}
