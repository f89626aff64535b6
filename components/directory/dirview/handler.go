package dirview

import (
	"net/http"
	"strings"

	"github.com/open-control-systems/servus/components/directory"
	"github.com/open-control-systems/servus/components/http/htcore"
)

// TreeHandler serves the instance tree over HTTP.
//
// Remarks:
//   - JSON by default, "?format=text" renders the indented text tree.
type TreeHandler struct {
	model *Model
}

// NewTreeHandler is an initialization of TreeHandler.
func NewTreeHandler(model *Model) *TreeHandler {
	return &TreeHandler{model: model}
}

// ServeHTTP implements an HTTP endpoint logic.
func (h *TreeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	tree := h.model.Tree()

	switch r.URL.Query().Get("format") {
	case "", "json":
		htcore.WriteJSON(w, tree)

	case "text":
		var b strings.Builder
		formatNode(&b, tree, 0)
		htcore.WriteText(w, b.String())

	default:
		http.Error(w, "error: unsupported format", http.StatusBadRequest)
	}
}

// SnapshotHandler serves all discovered instances and their values over HTTP.
type SnapshotHandler struct {
	dir *directory.Directory
}

// NewSnapshotHandler is an initialization of SnapshotHandler.
func NewSnapshotHandler(dir *directory.Directory) *SnapshotHandler {
	return &SnapshotHandler{dir: dir}
}

// ServeHTTP implements an HTTP endpoint logic.
func (h *SnapshotHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "error: unsupported method", http.StatusMethodNotAllowed)

		return
	}

	htcore.WriteJSON(w, h.dir.Snapshot())
}

func formatNode(b *strings.Builder, node *Node, depth int) {
	b.WriteString(strings.Repeat("    ", depth))
	b.WriteString(node.Text)
	b.WriteByte('\n')

	for _, child := range node.Children {
		formatNode(b, child, depth+1)
	}
}
