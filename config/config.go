package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	MongoURI     string
	Port         string
	GoogleAPIKey string
	JWTSecret    string
)

// LoadConfig loads environment variables from .env file
func LoadConfig() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using default values or system environment variables")
	}

	MongoURI = os.Getenv("MONGO_URI")
	if MongoURI == "" {
		MongoURI = "mongodb://localhost:27017/"
	}

	Port = os.Getenv("PORT")
	if Port == "" {
		Port = "3000"
	}

	GoogleAPIKey = os.Getenv("GOOGLE_API_KEY")
	JWTSecret = os.Getenv("JWT_SECRET")
}
