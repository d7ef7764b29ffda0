// Package web wires the HTTP surface: routes, handlers and the middleware
// chain.
package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"sportiva/internal/adapters/email"
	"sportiva/internal/adapters/http/middleware"
	"sportiva/internal/adapters/http/perf"
	accountStore "sportiva/internal/adapters/storage/account"
	auditStore "sportiva/internal/adapters/storage/audit"
	gymStore "sportiva/internal/adapters/storage/gym"
	noticeStore "sportiva/internal/adapters/storage/notice"
	outboxStore "sportiva/internal/adapters/storage/outbox"
	trainerStore "sportiva/internal/adapters/storage/trainer"
)

// Stores holds all storage dependencies.
type Stores struct {
	AccountStore    accountStore.Store
	TrainerStore    trainerStore.Store
	GymStore        gymStore.Store
	MembershipStore gymStore.MembershipStore
	NoticeStore     noticeStore.Store
	AuditStore      auditStore.Store
	OutboxStore     outboxStore.Store
}

// loadCSRFKey reads the CSRF secret from SPORTIVA_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("SPORTIVA_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("SPORTIVA_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("SPORTIVA_ENV") == "production" {
		log.Fatal("SPORTIVA_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set SPORTIVA_CSRF_KEY for production.")
	return key
}

// Global stores instance (set by NewMux)
var stores *Stores

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// Global email sender instance (set by SetEmailSender)
var emailSender email.Sender

// EmailSender returns the configured sender for the outbox worker.
func EmailSender() email.Sender { return emailSender }

// SetEmailSender sets the global email sender for the application.
func SetEmailSender(sender email.Sender) {
	emailSender = sender
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, s *Stores, collector *perf.Collector) http.Handler {
	stores = s
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("SPORTIVA_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	csrfKey := loadCSRFKey()

	var trustedOrigins []string
	if v := os.Getenv("SPORTIVA_TRUSTED_ORIGINS"); v != "" {
		trustedOrigins = strings.Split(v, ",")
	}

	// Rate limiter: configurable requests per second per IP
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Outer to inner: Timing -> RateLimit -> Auth -> Guard -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey, trustedOrigins),
		middleware.Guard(middleware.DefaultPathRules),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
