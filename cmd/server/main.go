package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"os"

	_ "modernc.org/sqlite"

	emailPkg "sportiva/internal/adapters/email"
	web "sportiva/internal/adapters/http"
	"sportiva/internal/adapters/http/perf"
	"sportiva/internal/adapters/storage"
	accountStore "sportiva/internal/adapters/storage/account"
	auditStorePkg "sportiva/internal/adapters/storage/audit"
	gymStorePkg "sportiva/internal/adapters/storage/gym"
	noticeStorePkg "sportiva/internal/adapters/storage/notice"
	outboxStorePkg "sportiva/internal/adapters/storage/outbox"
	trainerStorePkg "sportiva/internal/adapters/storage/trainer"
	"sportiva/internal/application/orchestrators"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// Initialize database with WAL mode, foreign keys, and busy timeout
	dbPath := envOrDefault("SPORTIVA_DB", "sportiva.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("database unreachable: %v", err)
	}

	if err := storage.MigrateDB(db, dbPath); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)

	acctStore := accountStore.NewSQLiteStore(timedDB)
	stores := &web.Stores{
		AccountStore:    acctStore,
		TrainerStore:    trainerStorePkg.NewSQLiteStore(timedDB),
		GymStore:        gymStorePkg.NewSQLiteStore(timedDB),
		MembershipStore: gymStorePkg.NewMembershipSQLiteStore(timedDB),
		NoticeStore:     noticeStorePkg.NewSQLiteStore(timedDB),
		AuditStore:      auditStorePkg.NewSQLiteStore(timedDB),
		OutboxStore:     outboxStorePkg.NewSQLiteStore(timedDB),
	}

	// Seed default admin account if no accounts exist
	adminEmail := envOrDefault("SPORTIVA_ADMIN_EMAIL", "admin@sportiva.com.tr")
	adminPassword := envOrDefault("SPORTIVA_ADMIN_PASSWORD", "change-me-on-first-login")
	seedDeps := orchestrators.CreateAccountDeps{
		AccountStore: acctStore,
		AuditStore:   stores.AuditStore,
	}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, adminEmail, adminPassword); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}

	// Configure email sender
	resendKey := os.Getenv("SPORTIVA_RESEND_KEY")
	emailFrom := envOrDefault("SPORTIVA_RESEND_FROM", "Sportiva <noreply@sportiva.com.tr>")
	if resendKey != "" {
		web.SetEmailSender(emailPkg.NewResendSender(resendKey, emailFrom))
		log.Println("Email sender configured (Resend)")
	} else {
		web.SetEmailSender(emailPkg.NewNoopSender())
		if os.Getenv("SPORTIVA_ENV") == "production" {
			log.Println("WARNING: SPORTIVA_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set SPORTIVA_RESEND_KEY for real delivery)")
		}
	}

	// Background worker that delivers queued outbox emails with retry
	stopOutbox := orchestrators.StartOutboxRetryScheduler(context.Background(), orchestrators.OutboxRetryDeps{
		OutboxStore: stores.OutboxStore,
		EmailSender: web.EmailSender(),
	}, orchestrators.DefaultOutboxRetryConfig())
	defer stopOutbox()

	mux := web.NewMux("static", stores, collector)

	addr := envOrDefault("SPORTIVA_ADDR", ":8080")
	log.Printf("Sportiva %s starting on %s (env=%s, schema=%d)", version, addr, envOrDefault("SPORTIVA_ENV", "development"), storage.LatestSchemaVersion())

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
