package config

import (
	"os"
	"strconv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr string
	// SeedDemoData loads the demonstration directory dataset on startup.
	SeedDemoData bool
	// AuditBuffer sizes the audit publisher inbox.
	AuditBuffer int
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("DRUID_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	seed := true
	if v := os.Getenv("DRUID_SEED_DEMO_DATA"); v != "" {
		seed = v == "true"
	}

	auditBuffer := 256
	if v := os.Getenv("DRUID_AUDIT_BUFFER"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			auditBuffer = n
		}
	}

	return Server{
		Addr:         addr,
		SeedDemoData: seed,
		AuditBuffer:  auditBuffer,
	}
}
