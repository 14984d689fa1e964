package main

import (
	"log"
	"os"
	"strconv"

	_ "github.com/lib/pq"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"

	"betatrack/internal/database"
	"betatrack/internal/report"
)

func init() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println(".env file not found, relying on actual environment variables")
	}
}

func main() {
	// Initialize database
	dbParams := database.ConnectionParams{
		Host:     os.Getenv("DB_HOST"),
		Port:     os.Getenv("DB_PORT"),
		User:     os.Getenv("DB_USER"),
		Password: os.Getenv("DB_PASSWORD"),
		DBName:   os.Getenv("DB_NAME"),
		SSLMode:  os.Getenv("DB_SSLMODE"),
	}

	db, err := database.New(dbParams)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize Telegram bot
	botToken := os.Getenv("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN not set in environment")
	}
	chatID, err := strconv.ParseInt(os.Getenv("TELEGRAM_CHAT_ID"), 10, 64)
	if err != nil {
		log.Fatalf("TELEGRAM_CHAT_ID not set or invalid: %v", err)
	}

	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot: %v", err)
	}

	assetSymbol := os.Getenv("ASSET_SYMBOL")
	if assetSymbol == "" {
		assetSymbol = "AAPL"
	}
	indexSymbol := os.Getenv("INDEX_SYMBOL")
	if indexSymbol == "" {
		indexSymbol = "SPY"
	}

	// Load the latest stored run
	results, err := db.LatestResults(assetSymbol, indexSymbol)
	if err != nil {
		log.Fatalf("Failed to load results from database: %v", err)
	}
	if len(results) == 0 {
		log.Fatalf("No stored results for %s vs %s, run the analyzer first", assetSymbol, indexSymbol)
	}

	message := "```\n" + report.FormatResults(assetSymbol, indexSymbol, results) + "```"

	msg := tgbotapi.NewMessage(chatID, message)
	msg.ParseMode = "Markdown"

	if _, err := bot.Send(msg); err != nil {
		log.Fatalf("Failed to send message to chat %d: %v", chatID, err)
	}

	log.Printf("Report for %s vs %s sent to chat %d (%d channels)",
		assetSymbol, indexSymbol, chatID, len(results))
}
