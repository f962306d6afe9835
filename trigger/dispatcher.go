package trigger

import (
	"context"
	"strings"

	foodfellas "github.com/eliasantony/food-fellas"
	"github.com/eliasantony/food-fellas/log"
)

// Handler consumes one document change. Handlers must be idempotent: the
// dispatcher gives no ordering or exactly-once guarantee across rapid
// consecutive writes to the same document.
type Handler func(ctx context.Context, change foodfellas.DocumentChange) error

type route struct {
	name     string
	segments []string
	handler  Handler
}

// Dispatcher routes document changes to the handlers whose path pattern
// matches, e.g. "recipes/{recipeId}/ratings/{userId}". Each matching handler
// runs independently: a failing handler is logged and does not stop the
// others.
type Dispatcher struct {
	routes []route
	logger log.Logger
}

func NewDispatcher(logger log.Logger) *Dispatcher {
	return &Dispatcher{logger: logger}
}

// Handle registers a handler for a path pattern. name identifies the handler
// in logs.
func (d *Dispatcher) Handle(name, pattern string, h Handler) {
	d.routes = append(d.routes, route{
		name:     name,
		segments: strings.Split(pattern, "/"),
		handler:  h,
	})
}

// Dispatch delivers the change on path to every matching handler.
func (d *Dispatcher) Dispatch(ctx context.Context, path string, before, after foodfellas.Snapshot) {
	segments := strings.Split(path, "/")

	for _, r := range d.routes {
		params, ok := match(r.segments, segments)
		if !ok {
			continue
		}

		change := foodfellas.DocumentChange{
			Path:   path,
			Params: params,
			Before: before,
			After:  after,
		}
		if err := r.handler(ctx, change); err != nil {
			d.logger.Errorf("handler %s failed for %s: %v", r.name, path, err)
		}
	}
}

func match(pattern, segments []string) (map[string]string, bool) {
	if len(pattern) != len(segments) {
		return nil, false
	}

	params := make(map[string]string)
	for i, p := range pattern {
		if strings.HasPrefix(p, "{") && strings.HasSuffix(p, "}") {
			params[p[1:len(p)-1]] = segments[i]
			continue
		}
		if p != segments[i] {
			return nil, false
		}
	}
	return params, true
}
