package core

import "github.com/hasirciogluhq/pinguino-chat/internal/broadcast"

// Config is the router's construction-time configuration: bind address
// and broadcast capacity.
type Config struct {
	Host     string
	Port     int
	Capacity int
}

// DefaultConfig returns the default bind address and broadcast capacity.
func DefaultConfig() Config {
	return Config{
		Host:     "127.0.0.1",
		Port:     8080,
		Capacity: broadcast.DefaultCapacity,
	}
}
