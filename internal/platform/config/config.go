package config

import (
	"os"
	"strconv"
	"time"
)

// DeletePolicy controls who may delete a record.
type DeletePolicy string

const (
	// DeleteAnyActor lets any authenticated user delete any record.
	DeleteAnyActor DeletePolicy = "any-actor"
	// DeleteCreatorOnly restricts deletion to the record's creator.
	DeleteCreatorOnly DeletePolicy = "creator-only"
)

// Server captures process-level configuration.
type Server struct {
	Addr           string
	DatabaseURL    string
	RedisAddr      string
	JWTSigningKey  string
	JWTIssuer      string
	JWTAudience    string
	TokenTTL       time.Duration
	DeletePolicy   DeletePolicy
	AuditQueueSize int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("ROSTERD_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	tokenTTL := 24 * time.Hour
	if raw := os.Getenv("TOKEN_TTL"); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			tokenTTL = d
		}
	}

	deletePolicy := DeleteAnyActor
	if os.Getenv("DELETE_POLICY") == string(DeleteCreatorOnly) {
		deletePolicy = DeleteCreatorOnly
	}

	auditQueueSize := 256
	if raw := os.Getenv("AUDIT_QUEUE_SIZE"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			auditQueueSize = n
		}
	}

	return Server{
		Addr:           addr,
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		JWTSigningKey:  jwtSigningKey,
		JWTIssuer:      "rosterd",
		JWTAudience:    "rosterd-clients",
		TokenTTL:       tokenTTL,
		DeletePolicy:   deletePolicy,
		AuditQueueSize: auditQueueSize,
	}
}
