package dirview

import (
	"slices"
	"sync"
	"time"

	"github.com/open-control-systems/servus/components/core"
	"github.com/open-control-systems/servus/components/directory"
	"github.com/open-control-systems/servus/components/directory/dircore"
)

// BrowseInterval is how often the model should be refreshed with Run().
const BrowseInterval = time.Millisecond * 100

// Node is a single item of the instance tree.
type Node struct {
	Text     string  `json:"text"`
	Children []*Node `json:"children,omitempty"`
}

// Model is a tree view of the discovered instances.
//
// Remarks:
//   - The root is "Instances for <service>", its children are the instances
//     in the discovery order, the instance children are "key = value" leaves.
//   - Browsing is started by the model if it wasn't started yet, the caller
//     should call Run() every BrowseInterval to refresh the model.
type Model struct {
	dir         *directory.Directory
	ownsBrowser bool

	mu        sync.Mutex
	instances []string
}

// NewModel creates the model and subscribes it to dir.
func NewModel(dir *directory.Directory) *Model {
	m := &Model{dir: dir}

	dir.AddListener(m)

	if !dir.IsBrowsing() {
		m.ownsBrowser = dir.BeginBrowsing(dircore.ScopeAll).OK()
	}

	return m
}

// Run handles the pending instance changes without waiting.
func (m *Model) Run() error {
	return m.dir.Browse(0).Err()
}

// InstanceAdded appends the instance to the tree.
func (m *Model) InstanceAdded(instance string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !slices.Contains(m.instances, instance) {
		m.instances = append(m.instances, instance)
	}
}

// InstanceRemoved removes the instance from the tree.
func (m *Model) InstanceRemoved(instance string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if n := slices.Index(m.instances, instance); n >= 0 {
		m.instances = slices.Delete(m.instances, n, n+1)
	}
}

// Instances returns the instances in the discovery order.
func (m *Model) Instances() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.instances)
}

// Tree returns the current state of the tree.
func (m *Model) Tree() *Node {
	root := &Node{Text: "Instances for " + m.dir.Name()}

	for _, instance := range m.Instances() {
		node := &Node{Text: instance}

		for _, key := range m.dir.InstanceKeys(instance) {
			node.Children = append(node.Children, &Node{
				Text: key + " = " + m.dir.InstanceValue(instance, key),
			})
		}

		root.Children = append(root.Children, node)
	}

	return root
}

// HandleError handles the failed Run() call.
//
// Remarks:
//   - A failed browse session ends, the model restarts it if the model started it,
//     the instances are discovered again from scratch.
func (m *Model) HandleError(err error) {
	core.LogErr.Printf("dirview-model: browse failed: service=%s err=%v\n", m.dir.Name(), err)

	if !m.ownsBrowser || m.dir.IsBrowsing() {
		return
	}

	m.mu.Lock()
	m.instances = nil
	m.mu.Unlock()

	if res := m.dir.BeginBrowsing(dircore.ScopeAll); !res.OK() {
		core.LogWrn.Printf("dirview-model: failed to restart browsing: service=%s res=%s\n",
			m.dir.Name(), res)
	}
}

// Close unsubscribes the model and ends browsing if the model started it.
func (m *Model) Close() error {
	m.dir.RemoveListener(m)

	if m.ownsBrowser {
		m.dir.EndBrowsing()
	}

	return nil
}
