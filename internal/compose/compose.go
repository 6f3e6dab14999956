// Package compose models the subset of the docker-compose file format the deployment
// artifacts use.
package compose

import (
	"bytes"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// File is a docker-compose.yml document.
type File struct {
	Name     string             `yaml:"name,omitempty"`
	Services map[string]Service `yaml:"services"`
	Volumes  map[string]Volume  `yaml:"volumes,omitempty"`
	Networks map[string]Network `yaml:"networks,omitempty"`
}

// Service is one container definition.
type Service struct {
	Image         string            `yaml:"image,omitempty"`
	Build         *Build            `yaml:"build,omitempty"`
	ContainerName string            `yaml:"container_name,omitempty"`
	Restart       string            `yaml:"restart,omitempty"`
	Ports         []string          `yaml:"ports,omitempty"`
	Environment   map[string]string `yaml:"environment,omitempty"`
	Volumes       []string          `yaml:"volumes,omitempty"`
	DependsOn     []string          `yaml:"depends_on,omitempty"`
	Networks      []string          `yaml:"networks,omitempty"`
}

// Build is the build section of a service.
type Build struct {
	Context    string `yaml:"context"`
	Dockerfile string `yaml:"dockerfile,omitempty"`
}

// Volume declares a named volume.
type Volume struct {
	Driver string `yaml:"driver,omitempty"`
}

// Network declares a named network.
type Network struct {
	Driver string `yaml:"driver,omitempty"`
}

// New returns an empty file for the given project name.
func New(name string) *File {
	return &File{
		Name:     name,
		Services: make(map[string]Service),
	}
}

// AddService adds or replaces a service.
func (f *File) AddService(name string, s Service) {
	if f.Services == nil {
		f.Services = make(map[string]Service)
	}
	f.Services[name] = s
}

// AddVolume declares a named volume with the default driver.
func (f *File) AddVolume(name string) {
	if f.Volumes == nil {
		f.Volumes = make(map[string]Volume)
	}
	f.Volumes[name] = Volume{}
}

// AddNetwork declares a bridge network.
func (f *File) AddNetwork(name string) {
	if f.Networks == nil {
		f.Networks = make(map[string]Network)
	}
	f.Networks[name] = Network{Driver: "bridge"}
}

// Marshal encodes f with two-space indentation. Map keys are sorted, so output is stable.
func (f *File) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(f); err != nil {
		return nil, errors.Wrap(err, "encode compose file")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.Wrap(err, "encode compose file")
	}
	return buf.Bytes(), nil
}

// Parse decodes a compose document.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "decode compose file")
	}
	return &f, nil
}
