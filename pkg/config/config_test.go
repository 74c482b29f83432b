package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, data string) string {
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(data), 0o644))
	return p
}

func TestLoadFile(t *testing.T) {
	p := writeFile(t, "chain33.yml", `
Node:
  Host: http://10.0.0.1
ParaName: user.p.test.
ParaPayPrivateKey: "0xcc38546e9e659d15e6b4893f0ab32a06d103931a8230b0bde71459d2b27d6944"
SuperManager:
  Address: 1CbEVT9RnM5oZhWMj4fxUrJX94VtRotzvs
Logger:
  LogLevel: debug
`)
	cfg, err := LoadFile(p)
	require.NoError(t, err)
	require.Equal(t, "http://10.0.0.1:8801", cfg.Endpoint())
	require.Equal(t, "user.p.test.", cfg.ParaName)
	require.True(t, cfg.IsParaChain())
	require.Equal(t, "1CbEVT9RnM5oZhWMj4fxUrJX94VtRotzvs", cfg.SuperManager.Address)
	require.Equal(t, "debug", cfg.Logger.LogLevel)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	require.Error(t, err)

	p := writeFile(t, "bad.yml", "Node: [")
	_, err = LoadFile(p)
	require.Error(t, err)

	p = writeFile(t, "para.yml", "ParaName: bad-namespace\n")
	_, err = LoadFile(p)
	require.ErrorIs(t, err, ErrMalformedParaName)

	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))
	require.Equal(t, "ParaName", cfgErr.Field)
}

func TestEndpoint(t *testing.T) {
	require.Equal(t, "http://127.0.0.1:8801", Config{}.Endpoint())
	require.Equal(t, "http://node:9000", Config{Node: Node{Host: "node", Port: 9000}}.Endpoint())
	require.Equal(t, "https://node:8801", Config{Node: Node{Host: "https://node/"}}.Endpoint())
}

func TestValidate(t *testing.T) {
	require.NoError(t, Default().Validate())
	require.NoError(t, Config{ParaName: "user.p.abc123."}.Validate())
	require.Error(t, Config{ParaName: "user.p.abc"}.Validate())
	require.Error(t, Config{ParaPayPrivateKey: "0x01"}.Validate())
}

func TestIsParaName(t *testing.T) {
	require.True(t, IsParaName("user.p.test."))
	require.True(t, IsParaName("user.p.."))
	require.False(t, IsParaName(""))
	require.False(t, IsParaName("bad-namespace"))
	require.False(t, IsParaName("user.p.te-st."))
}

func TestLoadEnv(t *testing.T) {
	p := writeFile(t, "test.env", `
BLOCK_CHAIN_URI=http://192.168.1.10
BLOCK_CHAIN_PORT=8901
BLOCK_CHAIN_PARA_NAME=user.p.game.
BLOCK_CHAIN_PAY_PRIVATE_KEY=0xabcd
BLOCK_CHAIN_SUPER_MANAGER=1Manager
BLOCK_CHAIN_SUPER_MANAGER_KEY=0xef01
`)
	t.Setenv(EnvPort, "8902")

	cfg, err := LoadEnv(p)
	require.NoError(t, err)
	require.Equal(t, "http://192.168.1.10:8902", cfg.Endpoint())
	require.Equal(t, "user.p.game.", cfg.ParaName)
	require.Equal(t, "0xabcd", cfg.ParaPayPrivateKey)
	require.Equal(t, SuperManager{Address: "1Manager", PrivateKey: "0xef01"}, cfg.SuperManager)

	t.Setenv(EnvPort, "port")
	_, err = LoadEnv(p)
	var cfgErr *Error
	require.True(t, errors.As(err, &cfgErr))

	_, err = LoadEnv(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
}
