// Package bis provides a client for the BIS statistics API and the fixed
// registry of country groups the dashboard can display.
package bis

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

//go:embed groups.yaml
var groupsYAML []byte

// Group is a named, ordered set of reporting countries and the query suffix
// the upstream dataflow expects for it.
type Group struct {
	Name      string   `yaml:"name"`
	Countries []string `yaml:"countries"`
	Suffix    string   `yaml:"suffix"`
}

// QueryURL builds the dataflow CSV URL for this group against the given base.
func (g Group) QueryURL(baseURL string) string {
	return fmt.Sprintf("%s/.%s%s?format=csv",
		strings.TrimSuffix(baseURL, "/"),
		strings.Join(g.Countries, "+"),
		g.Suffix,
	)
}

// Registry maps group names to their definitions. Groups are defined at
// process start and immutable thereafter.
type Registry struct {
	groups      map[string]Group
	order       []string
	defaultName string
}

type groupsFile struct {
	Default string  `yaml:"default"`
	Groups  []Group `yaml:"groups"`
}

// LoadGroups parses the embedded group definitions into a Registry.
func LoadGroups() (*Registry, error) {
	return parseGroups(groupsYAML)
}

func parseGroups(data []byte) (*Registry, error) {
	var file groupsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, eris.Wrap(err, "bis: parse groups")
	}
	if len(file.Groups) == 0 {
		return nil, eris.New("bis: no groups defined")
	}

	r := &Registry{groups: make(map[string]Group, len(file.Groups))}
	for _, g := range file.Groups {
		if g.Name == "" || len(g.Countries) == 0 {
			return nil, eris.Errorf("bis: group %q missing name or countries", g.Name)
		}
		if _, dup := r.groups[g.Name]; dup {
			return nil, eris.Errorf("bis: duplicate group %q", g.Name)
		}
		r.groups[g.Name] = g
		r.order = append(r.order, g.Name)
	}

	r.defaultName = file.Default
	if r.defaultName == "" {
		r.defaultName = r.order[0]
	}
	if _, ok := r.groups[r.defaultName]; !ok {
		return nil, eris.Errorf("bis: default group %q not defined", r.defaultName)
	}

	return r, nil
}

// Get returns a group by name.
func (r *Registry) Get(name string) (Group, error) {
	g, ok := r.groups[name]
	if !ok {
		return Group{}, eris.Errorf("bis: unknown group %q", name)
	}
	return g, nil
}

// Default returns the default group.
func (r *Registry) Default() Group {
	return r.groups[r.defaultName]
}

// All returns all groups in definition order.
func (r *Registry) All() []Group {
	out := make([]Group, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.groups[name])
	}
	return out
}

// Names returns all group names in definition order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
