package config

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// ServerConfig describes how to launch the capability server for a run.
type ServerConfig struct {
	Command string            `yaml:"command"`
	Args    []string          `yaml:"args"`
	Env     map[string]string `yaml:"env"`
	WorkDir string            `yaml:"workdir"`
}

type serverFile struct {
	Server ServerConfig `yaml:"server"`
}

// LoadServerConfig reads the capability server definition from a YAML file.
func LoadServerConfig(path string) (ServerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ServerConfig{}, fmt.Errorf("failed to read server config: %w", err)
	}
	return ParseServerConfig(data)
}

// ParseServerConfig parses a capability server definition.
func ParseServerConfig(data []byte) (ServerConfig, error) {
	var file serverFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to parse server config: %w", err)
	}
	if file.Server.Command == "" {
		return ServerConfig{}, fmt.Errorf("server config missing command")
	}
	return file.Server, nil
}

// EnvList renders the env map as KEY=VALUE pairs on top of the
// current process environment, in stable order.
func (s ServerConfig) EnvList() []string {
	if len(s.Env) == 0 {
		return nil
	}
	keys := make([]string, 0, len(s.Env))
	for k := range s.Env {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	env := os.Environ()
	for _, k := range keys {
		env = append(env, k+"="+s.Env[k])
	}
	return env
}
