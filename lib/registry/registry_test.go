package registry

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testRegistryYAML = `
instances:
  - hostname: cache01
    port: 6379
    unix_socket: /run/redis/6379.sock
    databases:
      - name: Sessions
        db: 0
      - name: jobs
        db: 3
  - hostname: cache02
    port: 6380
namespaces:
  - name: blue
    instances:
      - hostname: blue01
        port: 7379
        unix_socket: /run/blue/redis.sock
        databases:
          - name: jobs
            db: 1
      - hostname: blue02
        unix_socket: /run/blue/redis2.sock
`

func writeRegistry(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func loadTestRegistry(t *testing.T) *Registry {
	t.Helper()
	r, err := Load(writeRegistry(t, "registry.yaml", testRegistryYAML))
	require.NoError(t, err)
	return r
}

func TestResolve(t *testing.T) {
	r := loadTestRegistry(t)

	t.Run("default namespace keeps tcp preference", func(t *testing.T) {
		instances, unix, err := r.Resolve("", false)
		require.NoError(t, err)
		assert.False(t, unix)
		require.Len(t, instances, 2)
		assert.Equal(t, "cache01", instances[0].Hostname)
		assert.Equal(t, "cache02", instances[1].Hostname)
	})

	t.Run("default namespace keeps unix preference", func(t *testing.T) {
		_, unix, err := r.Resolve("", true)
		require.NoError(t, err)
		assert.True(t, unix)
	})

	t.Run("namespace forces unix socket", func(t *testing.T) {
		instances, unix, err := r.Resolve("blue", false)
		require.NoError(t, err)
		assert.True(t, unix)
		require.Len(t, instances, 2)
		assert.Equal(t, Instance{Hostname: "blue01", Port: 7379, UnixSocket: "/run/blue/redis.sock"}, instances[0])
		assert.Equal(t, Instance{Hostname: "blue02", UnixSocket: "/run/blue/redis2.sock"}, instances[1])
	})

	t.Run("unknown namespace is a configuration error", func(t *testing.T) {
		instances, _, err := r.Resolve("green", false)
		require.Error(t, err)
		assert.Nil(t, instances)

		var confErr *ConfigurationError
		require.True(t, errors.As(err, &confErr))
		assert.Contains(t, err.Error(), "green")
	})

	t.Run("returned slice is a copy", func(t *testing.T) {
		instances, _, err := r.Resolve("", false)
		require.NoError(t, err)
		instances[0].Hostname = "changed"

		again, _, err := r.Resolve("", false)
		require.NoError(t, err)
		assert.Equal(t, "cache01", again[0].Hostname)
	})
}

func TestResolveEmptyPartition(t *testing.T) {
	r, err := New(nil, []NamespaceEntry{{Name: "empty"}})
	require.NoError(t, err)

	_, _, err = r.Resolve("", false)
	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))

	_, _, err = r.Resolve("empty", false)
	assert.True(t, errors.As(err, &confErr))
}

func TestLookupDatabase(t *testing.T) {
	r := loadTestRegistry(t)

	db, err := r.LookupDatabase("", "Sessions")
	require.NoError(t, err)
	assert.Equal(t, "cache01", db.Instance.Hostname)
	assert.Equal(t, 0, db.Index)

	db, err = r.LookupDatabase("", "jobs")
	require.NoError(t, err)
	assert.Equal(t, 3, db.Index)

	db, err = r.LookupDatabase("blue", "jobs")
	require.NoError(t, err)
	assert.Equal(t, "blue01", db.Instance.Hostname)
	assert.Equal(t, 1, db.Index)

	// names are case sensitive
	_, err = r.LookupDatabase("", "sessions")
	var dbErr *InvalidDatabaseError
	require.True(t, errors.As(err, &dbErr))
	assert.Equal(t, "sessions", dbErr.Name)
	assert.Equal(t, "Invalid database name: sessions", err.Error())

	_, err = r.LookupDatabase("green", "jobs")
	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
}

func TestInstanceEndpoint(t *testing.T) {
	inst := Instance{Hostname: "cache01", Port: 6379, UnixSocket: "/run/redis.sock"}

	assert.Equal(t, "6379", inst.Endpoint(false))
	assert.Equal(t, "/run/redis.sock", inst.Endpoint(true))
	assert.Equal(t, "cache01:6379", inst.Address(false))
	assert.Equal(t, "/run/redis.sock", inst.Address(true))
	assert.Equal(t, "cache01:6379", inst.String())
}

func TestLoadFormats(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		path := writeRegistry(t, "registry.json", `{"instances": [{"hostname": "localhost", "port": 6379, "databases": [{"name": "main", "db": 2}]}]}`)
		r, err := Load(path)
		require.NoError(t, err)

		db, err := r.LookupDatabase("", "main")
		require.NoError(t, err)
		assert.Equal(t, 2, db.Index)
	})

	t.Run("toml", func(t *testing.T) {
		path := writeRegistry(t, "registry.toml", "[[instances]]\nhostname = \"localhost\"\nport = 6379\n")
		r, err := Load(path)
		require.NoError(t, err)

		instances, _, err := r.Resolve("", false)
		require.NoError(t, err)
		assert.Equal(t, 6379, instances[0].Port)
	})
}

func TestLoadErrors(t *testing.T) {
	testCases := []struct {
		name    string
		file    string
		content string
		errPart string
	}{
		{"missing hostname", "r.yaml", "instances:\n  - port: 6379\n", "no hostname"},
		{"missing endpoints", "r.yaml", "instances:\n  - hostname: a\n", "neither port nor unix_socket"},
		{"invalid port", "r.yaml", "instances:\n  - hostname: a\n    port: 70000\n", "invalid port"},
		{"duplicate namespace", "r.yaml", "namespaces:\n  - name: a\n  - name: a\n", "duplicate namespace"},
		{"unnamed namespace", "r.yaml", "namespaces:\n  - instances: []\n", "namespace without name"},
		{"duplicate database", "r.yaml", "instances:\n  - hostname: a\n    port: 1\n    databases:\n      - name: x\n        db: 0\n  - hostname: b\n    port: 2\n    databases:\n      - name: x\n        db: 1\n", "duplicate database"},
		{"negative database index", "r.yaml", "instances:\n  - hostname: a\n    port: 1\n    databases:\n      - name: x\n        db: -1\n", "negative index"},
		{"malformed yaml", "r.yaml", "instances: [\n", "failed to read registry"},
		{"unsupported extension", "r.ini2", "x", "failed to read registry"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			r, err := Load(writeRegistry(t, tc.file, tc.content))
			require.Error(t, err)
			assert.Nil(t, r)

			var confErr *ConfigurationError
			require.True(t, errors.As(err, &confErr))
			assert.Contains(t, err.Error(), tc.errPart)
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
		var confErr *ConfigurationError
		assert.True(t, errors.As(err, &confErr))
	})

	t.Run("empty path", func(t *testing.T) {
		_, err := Load("")
		var confErr *ConfigurationError
		assert.True(t, errors.As(err, &confErr))
	})
}
