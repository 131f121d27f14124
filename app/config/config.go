package config

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

type Config struct {
	DB *sql.DB

	// EveningRollBlock is the size of the morning-shift block in the
	// college roll number sequence. Evening-shift sequences start after
	// this block so the two shifts never collide.
	EveningRollBlock int
}

var AppConfig *Config

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	// .env is optional; deployments usually set the variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	host := env("DB_HOST", "localhost")
	port := env("DB_PORT", "5432")
	user := env("DB_USER", "postgres")
	password := env("DB_PASSWORD", "")
	dbname := env("DB_NAME", "campus360")
	sslmode := env("DB_SSLMODE", "disable")

	psqlInfo := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s connect_timeout=60",
		host, port, user, dbname, sslmode)
	if password != "" {
		psqlInfo += " password=" + password
	}
	log.Printf("Connecting to database %s at %s:%s", dbname, host, port)

	db, err := sql.Open("postgres", psqlInfo)
	if err != nil {
		log.Fatal("Failed to open database connection:", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)

	log.Println("Testing database connection...")
	if err = db.Ping(); err != nil {
		log.Printf("Database connection failed: %v", err)
		log.Fatal("Cannot establish database connection")
	}

	rollBlock := 50
	if v := os.Getenv("EVENING_ROLL_BLOCK"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			rollBlock = n
		} else {
			log.Printf("Ignoring invalid EVENING_ROLL_BLOCK value %q", v)
		}
	}

	AppConfig = &Config{
		DB:               db,
		EveningRollBlock: rollBlock,
	}
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

// GetEveningRollBlock returns the configured morning-shift block size
// used when sequencing college roll numbers.
func GetEveningRollBlock() int {
	if AppConfig == nil {
		return 50
	}
	return AppConfig.EveningRollBlock
}
