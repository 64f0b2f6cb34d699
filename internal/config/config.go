package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port     string
	DBDriver string // sqlite | postgres | gorm-sqlite
	DBDSN    string
	LogFile  string
	SeedDemo bool

	// GraphQLURL is the endpoint the scheduled jobs talk to.
	GraphQLURL string

	HeartbeatLog string
	LowStockLog  string
	RemindersLog string
	ReportLog    string

	// RemindersCron is empty by default: reminders run on demand.
	RemindersCron string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func Load() Config {
	port := getenv("PORT", "8000")
	driver := getenv("DB_DRIVER", "sqlite")
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		if driver == "postgres" {
			dsn = "host=localhost user=postgres password=postgres dbname=crm port=5432 sslmode=disable"
		} else {
			dsn = "crm.db" // sqlite file in project root
		}
	}
	seed, _ := strconv.ParseBool(os.Getenv("SEED_DEMO"))

	cfg := Config{
		Port:          port,
		DBDriver:      driver,
		DBDSN:         dsn,
		LogFile:       os.Getenv("LOG_FILE"),
		SeedDemo:      seed,
		GraphQLURL:    getenv("GRAPHQL_URL", "http://localhost:"+port+"/graphql"),
		HeartbeatLog:  getenv("HEARTBEAT_LOG", "/tmp/crm_heartbeat_log.txt"),
		LowStockLog:   getenv("LOW_STOCK_LOG", "/tmp/low_stock_updates_log.txt"),
		RemindersLog:  getenv("REMINDERS_LOG", "/tmp/order_reminders_log.txt"),
		ReportLog:     getenv("REPORT_LOG", "/tmp/crm_report_log.txt"),
		RemindersCron: os.Getenv("REMINDERS_CRON"),
	}
	log.Printf("[config] PORT=%s DB_DRIVER=%s GRAPHQL_URL=%s LOG_FILE=%s", cfg.Port, cfg.DBDriver, cfg.GraphQLURL, cfg.LogFile)
	return cfg
}
