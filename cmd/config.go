package cmd

import "time"

// Config carries everything the application needs at startup. Values come
// from the environment; see cmd/app/main.go for the variable names.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	KafkaHost              string
	KafkaOrderChangedTopic string

	OpenAPIContractPath string

	// SystemActorID is recorded as the acting user on history entries
	// produced by background jobs.
	SystemActorID string

	// NotifyAfter is how long an order may sit pending before the sweep
	// flags it; StaleAfter is how long an in-flight order may go without
	// an update before the watchdog warns.
	NotifyAfter time.Duration
	StaleAfter  time.Duration
}
