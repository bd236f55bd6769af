package cmd

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	LogLevel   string

	// JWTSecret signs the bearer tokens whose subject is recorded as the audit
	// actor. Empty disables tokens.
	JWTSecret string

	StorageURL    string
	StorageKey    string
	StorageBucket string

	// LedgerIntegritySchedule is a six-field cron expression. Empty disables the job.
	LedgerIntegritySchedule string
}
