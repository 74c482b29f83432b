package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variables understood by ApplyEnv.
const (
	EnvURI        = "BLOCK_CHAIN_URI"
	EnvPort       = "BLOCK_CHAIN_PORT"
	EnvParaName   = "BLOCK_CHAIN_PARA_NAME"
	EnvPayKey     = "BLOCK_CHAIN_PAY_PRIVATE_KEY"
	EnvSuperAdmin = "BLOCK_CHAIN_SUPER_MANAGER"
	EnvSuperKey   = "BLOCK_CHAIN_SUPER_MANAGER_KEY"
)

// LoadEnv returns Default configuration updated with values from the given
// dotenv files and the process environment (which takes precedence). If no
// files are given, ".env" is used when it exists.
func LoadEnv(files ...string) (Config, error) {
	cfg := Default()
	if err := ApplyEnv(&cfg, files...); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides cfg fields with environment values.
func ApplyEnv(cfg *Config, files ...string) error {
	vars := make(map[string]string)
	if len(files) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			files = []string{".env"}
		} else if !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("can't check .env file: %w", err)
		}
	}
	if len(files) != 0 {
		fileVars, err := godotenv.Read(files...)
		if err != nil {
			return fmt.Errorf("failed to read env files: %w", err)
		}
		vars = fileVars
	}
	lookup := func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := vars[key]
		return v, ok
	}

	if v, ok := lookup(EnvURI); ok && v != "" {
		cfg.Node.Host = v
	}
	if v, ok := lookup(EnvPort); ok && v != "" {
		port, err := strconv.ParseUint(v, 10, 16)
		if err != nil {
			return &Error{Field: EnvPort, Msg: fmt.Sprintf("invalid port %q", v)}
		}
		cfg.Node.Port = uint16(port)
	}
	if v, ok := lookup(EnvParaName); ok {
		cfg.ParaName = v
	}
	if v, ok := lookup(EnvPayKey); ok {
		cfg.ParaPayPrivateKey = v
	}
	if v, ok := lookup(EnvSuperAdmin); ok {
		cfg.SuperManager.Address = v
	}
	if v, ok := lookup(EnvSuperKey); ok {
		cfg.SuperManager.PrivateKey = v
	}
	return nil
}
