package config

import "time"

// Config is the complete application configuration.
type Config struct {
	Log      LogConfig      `koanf:"log"`
	Input    InputConfig    `koanf:"input"`
	Output   OutputConfig   `koanf:"output"`
	Server   ServerConfig   `koanf:"server"`
	Publish  PublishConfig  `koanf:"publish"`
	GitGraph GitGraphConfig `koanf:"gitgraph"`
}

type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=text json"`
}

// InputConfig selects the source decoder. An empty Format means the format is
// inferred from the input file extension.
type InputConfig struct {
	Format string `koanf:"format" validate:"omitempty,oneof=hcl json yaml"`
}

type OutputConfig struct {
	// Mode is "calls" for the recorded sink calls or "state" for the
	// resulting graph database.
	Mode     string `koanf:"mode" validate:"oneof=calls state"`
	Encoding string `koanf:"encoding" validate:"oneof=json yaml"`
}

type ServerConfig struct {
	Addr            string        `koanf:"addr" validate:"required"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
}

// PublishConfig enables the socket.io broadcaster when URL is set.
type PublishConfig struct {
	URL                string        `koanf:"url" validate:"omitempty,url"`
	Namespace          string        `koanf:"namespace"`
	InsecureSkipVerify bool          `koanf:"insecure_skip_verify"`
	ConnectTimeout     time.Duration `koanf:"connect_timeout" validate:"gt=0"`
}

type GitGraphConfig struct {
	MainBranchName  string `koanf:"main_branch_name" validate:"required"`
	MainBranchOrder int    `koanf:"main_branch_order"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Output: OutputConfig{
			Mode:     "calls",
			Encoding: "json",
		},
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: 5 * time.Second,
		},
		Publish: PublishConfig{
			Namespace:      "/",
			ConnectTimeout: 15 * time.Second,
		},
		GitGraph: GitGraphConfig{
			MainBranchName: "main",
		},
	}
}
