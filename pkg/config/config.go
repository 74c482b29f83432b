package config

import (
	"fmt"
	"os"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultHost is the node address used when none is configured.
	DefaultHost = "http://127.0.0.1"
	// DefaultPort is the default Chain33 JSON-RPC port.
	DefaultPort = 8801
)

// Version is the version of the SDK, set at build time.
var Version string

// paraNamePattern matches parallel chain prefixes like "user.p.mychain.".
var paraNamePattern = regexp.MustCompile(`user\.p\.[a-zA-Z\d]*\.`)

// Config is the top level client configuration. It's read-only after
// loading and is shared by all components built from it.
type Config struct {
	Node Node `yaml:"Node"`
	// ParaName is the parallel chain prefix (like "user.p.test."), empty for
	// the main chain.
	ParaName string `yaml:"ParaName"`
	// ParaPayPrivateKey is the key paying fees for parallel chain
	// transactions, delegation is disabled when it's empty.
	ParaPayPrivateKey string       `yaml:"ParaPayPrivateKey"`
	SuperManager      SuperManager `yaml:"SuperManager"`
	Logger            Logger       `yaml:"Logger"`
}

// Node is the RPC node connection settings.
type Node struct {
	Host string `yaml:"Host"`
	Port uint16 `yaml:"Port"`
}

// SuperManager describes the chain manager account. Its address is used as
// a fee payer during EVM gas estimation and its key signs manage executor
// transactions.
type SuperManager struct {
	Address    string `yaml:"Address"`
	PrivateKey string `yaml:"PrivateKey"`
}

// Logger contains logging settings.
type Logger struct {
	LogLevel string `yaml:"LogLevel"`
	LogPath  string `yaml:"LogPath"`
}

// Default returns configuration for a local main chain node.
func Default() Config {
	return Config{
		Node: Node{
			Host: DefaultHost,
			Port: DefaultPort,
		},
	}
}

// LoadFile loads config from the provided path, missing values are taken
// from Default.
func LoadFile(configPath string) (Config, error) {
	configData, err := os.ReadFile(configPath)
	if err != nil {
		return Config{}, fmt.Errorf("unable to read config: %w", err)
	}

	config := Default()
	err = yaml.Unmarshal(configData, &config)
	if err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	err = config.Validate()
	if err != nil {
		return Config{}, err
	}
	return config, nil
}

// Endpoint returns node URL built from host and port.
func (c Config) Endpoint() string {
	host := c.Node.Host
	if host == "" {
		host = DefaultHost
	}
	if !strings.Contains(host, "://") {
		host = "http://" + host
	}
	port := c.Node.Port
	if port == 0 {
		port = DefaultPort
	}
	return strings.TrimRight(host, "/") + ":" + strconv.Itoa(int(port))
}

// IsParaChain tells whether the configuration targets a parallel chain.
func (c Config) IsParaChain() bool {
	return IsParaName(c.ParaName)
}

// Validate checks configuration for consistency.
func (c Config) Validate() error {
	if c.ParaName != "" && !IsParaName(c.ParaName) {
		return ErrMalformedParaName
	}
	if c.ParaPayPrivateKey != "" && c.ParaName == "" {
		return &Error{Field: "ParaPayPrivateKey", Msg: "fee delegation requires parallel chain name"}
	}
	return nil
}

// IsParaName checks whether s has the form of parallel chain prefix.
func IsParaName(s string) bool {
	return s != "" && paraNamePattern.MatchString(s)
}
