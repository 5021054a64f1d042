package registry

import (
	"github.com/spf13/viper"
)

// --------------------------------------------------------------------------
// File Format
// --------------------------------------------------------------------------

// DatabaseEntry is a logical database hosted by an instance
type DatabaseEntry struct {
	Name string `mapstructure:"name"`
	DB   int    `mapstructure:"db"`
}

// InstanceEntry is an instance as written in the registry file
type InstanceEntry struct {
	Hostname   string          `mapstructure:"hostname"`
	Port       int             `mapstructure:"port"`
	UnixSocket string          `mapstructure:"unix_socket"`
	Databases  []DatabaseEntry `mapstructure:"databases"`
}

// NamespaceEntry groups the instances of one namespace
type NamespaceEntry struct {
	Name      string          `mapstructure:"name"`
	Instances []InstanceEntry `mapstructure:"instances"`
}

// file is the top level structure of the registry file. Lists are used instead
// of maps because viper lower-cases map keys.
type file struct {
	Instances  []InstanceEntry  `mapstructure:"instances"`
	Namespaces []NamespaceEntry `mapstructure:"namespaces"`
}

// --------------------------------------------------------------------------
// Factory Methods
// --------------------------------------------------------------------------

// Load reads and validates the registry file at path. The format is derived
// from the file extension (yaml, yml, json, toml).
func Load(path string) (*Registry, error) {
	if path == "" {
		return nil, NewConfigurationError(nil, "no registry file configured")
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, NewConfigurationError(err, "failed to read registry %s", path)
	}

	var f file
	if err := v.Unmarshal(&f); err != nil {
		return nil, NewConfigurationError(err, "failed to decode registry %s", path)
	}

	r, err := New(f.Instances, f.Namespaces)
	if err != nil {
		return nil, err
	}

	Logger.Debugf("loaded registry %s (%d default instance(s), %d namespace(s))", path, len(r.local.instances), len(r.namespaces))
	return r, nil
}

// New builds a registry from the default partition and the namespaces
func New(instances []InstanceEntry, namespaces []NamespaceEntry) (*Registry, error) {
	local, err := newPartition("", instances)
	if err != nil {
		return nil, err
	}

	r := &Registry{
		local:      local,
		namespaces: make(map[string]partition, len(namespaces)),
	}

	for _, ns := range namespaces {
		if ns.Name == "" {
			return nil, NewConfigurationError(nil, "namespace without name")
		}
		if _, exists := r.namespaces[ns.Name]; exists {
			return nil, NewConfigurationError(nil, "duplicate namespace %q", ns.Name)
		}
		p, err := newPartition(ns.Name, ns.Instances)
		if err != nil {
			return nil, err
		}
		r.namespaces[ns.Name] = p
	}

	return r, nil
}

// newPartition validates the entries of one namespace and indexes its databases
func newPartition(namespace string, entries []InstanceEntry) (partition, error) {
	p := partition{
		instances: make([]Instance, 0, len(entries)),
		databases: make(map[string]Database),
	}

	for i, e := range entries {
		if e.Hostname == "" {
			return partition{}, NewConfigurationError(nil, "instance %d of %s has no hostname", i, describeNamespace(namespace))
		}
		if e.Port == 0 && e.UnixSocket == "" {
			return partition{}, NewConfigurationError(nil, "instance %s of %s has neither port nor unix_socket", e.Hostname, describeNamespace(namespace))
		}
		if e.Port < 0 || e.Port > 65535 {
			return partition{}, NewConfigurationError(nil, "instance %s of %s has invalid port %d", e.Hostname, describeNamespace(namespace), e.Port)
		}

		inst := Instance{
			Hostname:   e.Hostname,
			Port:       e.Port,
			UnixSocket: e.UnixSocket,
		}
		p.instances = append(p.instances, inst)

		for _, db := range e.Databases {
			if db.Name == "" {
				return partition{}, NewConfigurationError(nil, "database without name on instance %s", e.Hostname)
			}
			if db.DB < 0 {
				return partition{}, NewConfigurationError(nil, "database %q has negative index %d", db.Name, db.DB)
			}
			if _, exists := p.databases[db.Name]; exists {
				return partition{}, NewConfigurationError(nil, "duplicate database %q in %s", db.Name, describeNamespace(namespace))
			}
			p.databases[db.Name] = Database{
				Name:     db.Name,
				Instance: inst,
				Index:    db.DB,
			}
		}
	}

	return p, nil
}
