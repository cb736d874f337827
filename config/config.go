/*
   Copyright 2025 The DIRPX Authors

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package config loads the runtime configuration from FAULTS_* environment
// variables (and a .env file, when present).
//
// Nesting uses a double underscore:
//
//	FAULTS_PRIMARY__ENV=production
//	FAULTS_DATABASE__HOST=db
//	FAULTS_RESPONSE__INCLUDE_CAUSE=false
package config

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"dirpx.dev/faults/httpx"
	"dirpx.dev/faults/secret"
	"github.com/go-playground/validator/v10"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// Prefix of every environment variable read by Load.
const Prefix = "FAULTS_"

// Environments.
const (
	Development = "development"
	Test        = "test"
	Staging     = "staging"
	Production  = "production"
)

// Config is the root configuration.
type Config struct {
	Primary  Primary        `koanf:"primary" validate:"required"`
	Server   ServerConfig   `koanf:"server" validate:"required"`
	Database DatabaseConfig `koanf:"database" validate:"required"`
	Redis    RedisConfig    `koanf:"redis" validate:"required"`
	Auth     AuthConfig     `koanf:"auth" validate:"required"`
	Logging  LoggingConfig  `koanf:"logging" validate:"required"`
	Tracing  TracingConfig  `koanf:"tracing"`
	Response ResponseConfig `koanf:"response"`
}

// Primary describes the deployment.
type Primary struct {
	Env         string `koanf:"env" validate:"required,oneof=development test staging production"`
	ServiceName string `koanf:"service_name" validate:"required"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Addr         string        `koanf:"addr" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"min=1s"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"min=1s"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"min=1s"`
	// JSONErrors switches failure bodies from text/plain to JSON.
	JSONErrors bool `koanf:"json_errors"`
	// GRPCAddr enables the gRPC listener when set.
	GRPCAddr string `koanf:"grpc_addr"`
}

// DatabaseConfig holds the PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string       `koanf:"host" validate:"required"`
	Port     int          `koanf:"port" validate:"required,min=1,max=65535"`
	User     string       `koanf:"user" validate:"required"`
	Password secret.Value `koanf:"password"`
	Name     string       `koanf:"name" validate:"required"`
	SSLMode  string       `koanf:"ssl_mode" validate:"required,oneof=disable allow prefer require verify-ca verify-full"`
	MaxConns int32        `koanf:"max_conns" validate:"min=1"`
}

// DSN returns the pgx connection string. It contains the password.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password.Reveal(), d.Host, d.Port, d.Name, d.SSLMode)
}

// RedisConfig holds the Redis connection parameters.
type RedisConfig struct {
	Addr       string        `koanf:"addr" validate:"required"`
	Password   secret.Value  `koanf:"password"`
	DB         int           `koanf:"db" validate:"min=0"`
	SessionTTL time.Duration `koanf:"session_ttl" validate:"min=1m"`
}

// AuthConfig holds the token signing settings.
type AuthConfig struct {
	// SigningKey signs HS256 tokens.
	SigningKey secret.Value  `koanf:"signing_key" validate:"required,min=32"`
	Issuer     string        `koanf:"issuer" validate:"required"`
	TokenTTL   time.Duration `koanf:"token_ttl" validate:"min=1m"`
	// Admins are usernames granted the admin scope at login. Comma
	// separated in the environment.
	Admins []string `koanf:"admins" validate:"dive,required"`
}

// TracingConfig controls the OpenTelemetry tracer provider.
type TracingConfig struct {
	// SampleRatio is the share of root traces recorded.
	SampleRatio float64 `koanf:"sample_ratio" validate:"min=0,max=1"`
}

// LoggingConfig controls the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"required,oneof=debug info warn error"`
	Format string `koanf:"format" validate:"required,oneof=json console"`
}

// ResponseConfig is the failure response policy.
type ResponseConfig struct {
	// IncludeCause exposes store and cache causes in response bodies.
	// Unset means "everywhere but production".
	IncludeCause *bool `koanf:"include_cause"`
}

// Default returns the configuration Load starts from. Database host, user
// and name and the auth signing key have no default.
func Default() *Config {
	return &Config{
		Primary: Primary{Env: Development, ServiceName: "faultd"},
		Server: ServerConfig{
			Addr:         ":8080",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Database: DatabaseConfig{Port: 5432, SSLMode: "disable", MaxConns: 10},
		Redis:    RedisConfig{Addr: "localhost:6379", SessionTTL: 24 * time.Hour},
		Auth:     AuthConfig{Issuer: "faultd", TokenTTL: 15 * time.Minute},
		Logging:  LoggingConfig{Level: "info", Format: "json"},
		Tracing:  TracingConfig{SampleRatio: 1},
	}
}

// Load reads FAULTS_* variables over Default and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.ProviderWithValue(Prefix, ".", func(key, value string) (string, any) {
		key = strings.ToLower(strings.TrimPrefix(key, Prefix))
		key = strings.ReplaceAll(key, "__", ".")
		if _, ok := listKeys[key]; ok {
			return key, splitList(value)
		}
		return key, value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("config: load env: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks struct tags. Secret values are validated on their
// revealed content.
func (c *Config) Validate() error {
	v := validator.New()
	v.RegisterCustomTypeFunc(func(f reflect.Value) any {
		if s, ok := f.Interface().(secret.Value); ok {
			return s.Reveal()
		}
		return nil
	}, secret.Value{})
	if err := v.Struct(c); err != nil {
		return fmt.Errorf("config: validate: %w", err)
	}
	return nil
}

// listKeys are read from the environment as comma separated lists.
var listKeys = map[string]struct{}{
	"auth.admins": {},
}

func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// IsProduction reports whether Primary.Env is production.
func (c *Config) IsProduction() bool { return c.Primary.Env == Production }

// ResponseOptions derives the immutable failure response policy.
func (c *Config) ResponseOptions() httpx.Options {
	if c.Response.IncludeCause != nil {
		return httpx.Options{IncludeCause: *c.Response.IncludeCause}
	}
	return httpx.Options{IncludeCause: !c.IsProduction()}
}
