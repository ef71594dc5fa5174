package dispatch

import (
	"context"
	stdhttp "net/http"

	"github.com/julienschmidt/httprouter"

	"nailbook/pkg/config"
	apperrors "nailbook/pkg/errors"
	nethttp "nailbook/pkg/http"
	"nailbook/pkg/lock"
)

// HandlerFunc serves one action. It returns a complete envelope; any error
// is converted into an error envelope at the boundary.
type HandlerFunc func(ctx context.Context, p Payload) (nethttp.Envelope, error)

type action struct {
	fn       HandlerFunc
	mutating bool
}

// Mux maps action names to handlers. Mutating actions are serialized by the
// process-wide advisory lock; reads run lock-free.
type Mux struct {
	actions map[string]action
	lock    *lock.Advisory
	cfg     *config.Config
}

func NewMux(cfg *config.Config, advisory *lock.Advisory) *Mux {
	return &Mux{
		actions: make(map[string]action),
		lock:    advisory,
		cfg:     cfg,
	}
}

func (m *Mux) Register(name string, mutating bool, fn HandlerFunc) {
	m.actions[name] = action{fn: fn, mutating: mutating}
}

// RegisterRoutes exposes the dispatcher on the root and /api paths, both
// verbs, matching clients that send actions as query strings or JSON bodies.
func (m *Mux) RegisterRoutes(router *httprouter.Router) {
	handle := func(w stdhttp.ResponseWriter, r *stdhttp.Request, _ httprouter.Params) {
		m.serve(w, r)
	}
	router.GET("/", handle)
	router.POST("/", handle)
	router.GET("/api", handle)
	router.POST("/api", handle)
}

func (m *Mux) serve(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	actionName, payload, err := parseRequest(r)
	if err != nil {
		_ = nethttp.WriteError(w, apperrors.InvalidInput("Malformed request payload"))
		return
	}
	if actionName == "" {
		_ = nethttp.WriteError(w, apperrors.MissingField("action"))
		return
	}

	act, ok := m.actions[actionName]
	if !ok {
		m.cfg.Log.Warn("Unknown action requested", "action", actionName)
		_ = nethttp.WriteError(w, apperrors.InvalidInput("Unknown action: "+actionName))
		return
	}

	ctx := r.Context()
	if act.mutating {
		if err := m.lock.Acquire(ctx, m.cfg.LockWait); err != nil {
			_ = nethttp.WriteError(w, err)
			return
		}
		defer m.lock.Release()
	}

	env, err := act.fn(ctx, payload)
	if err != nil {
		_ = nethttp.WriteError(w, err)
		return
	}
	_ = nethttp.WriteEnvelope(w, env)
}
