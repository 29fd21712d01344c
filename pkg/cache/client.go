// Package cache provides the Redis client and JSON cache operations used by the API.
package cache

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"
	"time"

	"geocortex/pkg/logger"

	"github.com/go-redis/redis/v8"
)

// Options describes how to reach Redis.
type Options struct {
	Addr        string
	Password    string
	DB          int
	TLSEnabled  bool
	TLSCertFile string
}

func tlsConfig(opts Options) (*tls.Config, error) {
	if !opts.TLSEnabled {
		return nil, nil
	}
	cfg := &tls.Config{MinVersion: tls.VersionTLS12}
	if opts.TLSCertFile == "" {
		return cfg, nil
	}
	pem, err := os.ReadFile(opts.TLSCertFile)
	if err != nil {
		return nil, fmt.Errorf("failed to read TLS certificate: %w", err)
	}
	pool := x509.NewCertPool()
	if !pool.AppendCertsFromPEM(pem) {
		return nil, fmt.Errorf("no certificates found in %s", opts.TLSCertFile)
	}
	cfg.RootCAs = pool
	return cfg, nil
}

// Connect builds a Redis client and pings it.
func Connect(ctx context.Context, opts Options) (*redis.Client, error) {
	tlsCfg, err := tlsConfig(opts)
	if err != nil {
		logger.GlobalLogger.Errorf("failed to load TLS certificate: %v", err)
		return nil, err
	}

	client := redis.NewClient(&redis.Options{
		Addr:         opts.Addr,
		Password:     opts.Password,
		DB:           opts.DB,
		PoolSize:     10,
		MinIdleConns: 5,
		TLSConfig:    tlsCfg,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	start := time.Now()
	_, err = client.Ping(ctx).Result()
	RecordOperationDuration("ping", start)
	if err != nil {
		IncrementError("ping")
		_ = client.Close()
		logger.GlobalLogger.Errorf("failed to connect to Redis: %v", err)
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	logger.GlobalLogger.Println("Redis connected successfully")
	return client, nil
}

// Close releases the client.
func Close(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		logger.GlobalLogger.Errorf("error closing Redis: %v", err)
		return
	}
	logger.GlobalLogger.Println("Redis connection closed")
}
