package codec

import (
	"slices"
	"sync"

	"go.creack.net/exprtree/ast"
)

// Tags of the built-in node kinds.
const (
	TagConstant = "Constant"
	TagVariable = "Variable"
	TagOp       = "Op"
)

// Loader rebuilds one node whose tag has already been read from d.
// It must consume exactly the tokens of its own subtree.
type Loader func(d *Decoder) (ast.Node, error)

// Registry maps tags to loaders. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	loaders map[string]Loader
}

// DefaultRegistry is used by decoders created without WithRegistry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns a registry holding the built-in tags.
func NewRegistry() *Registry {
	r := &Registry{loaders: map[string]Loader{}}
	r.Register(TagConstant, loadConstant)
	r.Register(TagVariable, loadVariable)
	r.Register(TagOp, loadOp)
	return r
}

// Register binds tag to fn, replacing any previous binding.
// Registering the same pair again is a no-op.
func (r *Registry) Register(tag string, fn Loader) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaders[tag] = fn
}

// Lookup returns the loader bound to tag.
func (r *Registry) Lookup(tag string) (Loader, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.loaders[tag]
	return fn, ok
}

// Tags returns the registered tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.loaders))
	for tag := range r.loaders {
		tags = append(tags, tag)
	}
	slices.Sort(tags)
	return tags
}
