package configuration

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var configYamlV0_1 = `
version: 0.1
log:
  level: debug
  formatter: json
  fields:
    service: hub
http:
  addr: :5000
storage:
  filesystem:
    rootdirectory: /var/lib/localhub
cache:
  ttl: 5s
  pathsinfo: 64
`

func TestParseSimple(t *testing.T) {
	config, err := Parse(bytes.NewReader([]byte(configYamlV0_1)))
	require.NoError(t, err)

	require.Equal(t, MajorMinorVersion(0, 1), config.Version)
	require.Equal(t, Loglevel("debug"), config.Log.Level)
	require.Equal(t, "json", config.Log.Formatter)
	require.Equal(t, ":5000", config.HTTP.Addr)
	require.Equal(t, "filesystem", config.Storage.Type())
	require.Equal(t, "/var/lib/localhub", config.Storage.Parameters()["rootdirectory"])
	require.Equal(t, Duration(5*time.Second), config.Cache.TTL)
	require.Equal(t, 64, config.Cache.PathsInfo)
}

func TestParseDefaults(t *testing.T) {
	in := `
version: 0.1
storage:
  filesystem:
    rootdirectory: /srv/hub
`
	config, err := Parse(bytes.NewReader([]byte(in)))
	require.NoError(t, err)

	require.Equal(t, ":8080", config.HTTP.Addr)
	require.Equal(t, DefaultCacheTTL, config.Cache.TTL)
	require.Equal(t, DefaultPathsInfoSize, config.Cache.PathsInfo)
	require.Equal(t, DefaultSiblingsSize, config.Cache.Siblings)
	require.Equal(t, DefaultSHA256Size, config.Cache.SHA256)
}

func TestParseEnvOverrides(t *testing.T) {
	t.Setenv("LOCALHUB_HTTP_ADDR", ":6000")
	t.Setenv("LOCALHUB_CACHE_TTL", "250ms")
	t.Setenv("LOCALHUB_STORAGE_FILESYSTEM_ROOTDIRECTORY", "/elsewhere")

	config, err := Parse(bytes.NewReader([]byte(configYamlV0_1)))
	require.NoError(t, err)

	require.Equal(t, ":6000", config.HTTP.Addr)
	require.Equal(t, Duration(250*time.Millisecond), config.Cache.TTL)
	require.Equal(t, "/elsewhere", config.Storage.Parameters()["rootdirectory"])
}

func TestParseMissingStorage(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("version: 0.1\n")))
	require.Error(t, err)
}

func TestParseUnsupportedVersion(t *testing.T) {
	_, err := Parse(bytes.NewReader([]byte("version: 9.9\n")))
	require.Error(t, err)
}

func TestParseInvalidLoglevel(t *testing.T) {
	in := `
version: 0.1
log:
  level: noisy
storage:
  filesystem:
    rootdirectory: /srv/hub
`
	_, err := Parse(bytes.NewReader([]byte(in)))
	require.Error(t, err)
}
