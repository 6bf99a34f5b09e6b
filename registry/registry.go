// Package registry holds the static agent graph: the root concierge agent
// plus its specialized leaves. The graph is built once at startup from
// configuration, validated eagerly (bad graphs are a fatal
// ConfigurationError, never a runtime surprise) and read-only afterwards,
// so lookups need no locking.
package registry

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/voyagent/voyagent/core"
)

// AgentNode describes one agent in the routing tree. Description is the
// router's classification signal; Keywords are additional routing hints;
// TransferTargets are the ids this agent may hand off to, in declaration
// order (which is also the deterministic tie-break order).
type AgentNode struct {
	ID              string   `yaml:"id" json:"id"`
	Description     string   `yaml:"description" json:"description"`
	Instructions    string   `yaml:"instructions" json:"-"`
	Keywords        []string `yaml:"keywords" json:"keywords,omitempty"`
	Tools           []string `yaml:"tools" json:"tools,omitempty"`
	TransferTargets []string `yaml:"transfer_targets" json:"transfer_targets,omitempty"`
}

// Registry is the immutable agent graph.
type Registry struct {
	rootID string
	nodes  map[string]*AgentNode
	order  []string
}

// graphFile is the on-disk YAML layout.
type graphFile struct {
	Root   string      `yaml:"root"`
	Agents []AgentNode `yaml:"agents"`
}

// New builds and validates a registry from the given nodes. Duplicate ids,
// a missing root or an unresolvable transfer target fail with a
// ConfigurationError.
func New(rootID string, nodes []AgentNode) (*Registry, error) {
	if rootID == "" {
		return nil, core.NewConfigurationError("agent graph has no root")
	}
	r := &Registry{rootID: rootID, nodes: make(map[string]*AgentNode, len(nodes))}
	for i := range nodes {
		n := nodes[i]
		if n.ID == "" {
			return nil, core.NewConfigurationError("agent with empty id at position %d", i)
		}
		if _, dup := r.nodes[n.ID]; dup {
			return nil, core.NewConfigurationError("duplicate agent id %q", n.ID)
		}
		r.nodes[n.ID] = &n
		r.order = append(r.order, n.ID)
	}
	if _, ok := r.nodes[rootID]; !ok {
		return nil, core.NewConfigurationError("root agent %q not declared", rootID)
	}
	for _, id := range r.order {
		for _, target := range r.nodes[id].TransferTargets {
			if _, ok := r.nodes[target]; !ok {
				return nil, core.NewConfigurationError(
					"agent %q declares unknown transfer target %q", id, target)
			}
		}
	}
	return r, nil
}

// Load reads and validates an agent graph from a YAML file.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, core.NewConfigurationError("read agent graph %s: %v", path, err)
	}
	var gf graphFile
	if err := yaml.Unmarshal(data, &gf); err != nil {
		return nil, core.NewConfigurationError("parse agent graph %s: %v", path, err)
	}
	return New(gf.Root, gf.Agents)
}

// Get resolves an agent by id.
func (r *Registry) Get(id string) (*AgentNode, error) {
	n, ok := r.nodes[id]
	if !ok {
		return nil, core.ErrUnknownAgent
	}
	return n, nil
}

// Has reports whether id is declared in the graph.
func (r *Registry) Has(id string) bool {
	_, ok := r.nodes[id]
	return ok
}

// Root returns the root agent of the tree.
func (r *Registry) Root() *AgentNode { return r.nodes[r.rootID] }

// ChildrenOf returns the transfer targets of id in declaration order.
// Unknown ids yield an empty slice.
func (r *Registry) ChildrenOf(id string) []*AgentNode {
	n, ok := r.nodes[id]
	if !ok {
		return nil
	}
	children := make([]*AgentNode, 0, len(n.TransferTargets))
	for _, target := range n.TransferTargets {
		children = append(children, r.nodes[target])
	}
	return children
}

// All returns every node in declaration order.
func (r *Registry) All() []*AgentNode {
	nodes := make([]*AgentNode, 0, len(r.order))
	for _, id := range r.order {
		nodes = append(nodes, r.nodes[id])
	}
	return nodes
}
