package router

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/xy-planning-network/trailhead"
	"github.com/xy-planning-network/trailhead/http/middleware"
)

// A Route is a page or form of trailhead: one path and method,
// handled after the Adapters listed in Middlewares.
type Route struct {
	Path        string
	Method      string
	Handler     http.HandlerFunc
	Middlewares []middleware.Adapter
}

// A Router sends requests to the Route they match,
// each passing through ReportPanic, the stack from OnEveryRequest, its group's guard
// and finally the Route's own Middlewares.
type Router struct {
	Env    trailhead.Environment
	stack  []middleware.Adapter
	logReq middleware.Adapter
	mux    *mux.Router
}

// New builds a *Router; logReq logs requests that match no Route.
func New(env trailhead.Environment, logReq middleware.Adapter) *Router {
	if logReq == nil {
		logReq = middleware.NoopAdapter
	}

	return &Router{Env: env, logReq: logReq, mux: mux.NewRouter()}
}

// OnEveryRequest adds adapters to the stack matched requests pass through.
// Routes registered earlier keep the stack they were registered with.
func (rt *Router) OnEveryRequest(adapters ...middleware.Adapter) {
	rt.stack = append(rt.stack, adapters...)
}

// AuthedRoutes registers routes only a signed in user reaches;
// anyone else goes to signInURL.
func (rt *Router) AuthedRoutes(signInURL string, routes []Route, adapters ...middleware.Adapter) {
	rt.HandleRoutes(routes, append(adapters[:len(adapters):len(adapters)], middleware.RequireAuthed(signInURL))...)
}

// UnauthedRoutes registers routes only a signed out browser reaches;
// a signed in user goes to landingURL.
func (rt *Router) UnauthedRoutes(landingURL string, routes []Route, adapters ...middleware.Adapter) {
	rt.HandleRoutes(routes, append(adapters[:len(adapters):len(adapters)], middleware.RequireUnauthed(landingURL))...)
}

// HandleRoutes registers routes open to everyone, after adapters.
func (rt *Router) HandleRoutes(routes []Route, adapters ...middleware.Adapter) {
	for _, route := range routes {
		chain := make([]middleware.Adapter, 0, len(rt.stack)+len(adapters)+len(route.Middlewares))
		chain = append(append(append(chain, rt.stack...), adapters...), route.Middlewares...)

		rt.mux.Handle(route.Path, middleware.Chain(rt.recovered(route.Handler), chain...)).Methods(route.Method)
	}
}

func (rt *Router) Handle(route Route) { rt.HandleRoutes([]Route{route}) }

// HandleNotFound answers requests matching no Route.
func (rt *Router) HandleNotFound(handler http.HandlerFunc) {
	rt.mux.NotFoundHandler = rt.logReq(rt.recovered(handler))
}

// Redirect sends every request for path to the URL to with a 307.
func (rt *Router) Redirect(path, to string) {
	rt.mux.Handle(path, rt.logReq(http.RedirectHandler(to, http.StatusTemporaryRedirect)))
}

// ServeHTTP gzips or deflates responses for clients accepting either.
func (rt *Router) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	handlers.CompressHandler(rt.mux).ServeHTTP(w, r)
}

func (rt *Router) recovered(h http.Handler) http.Handler {
	return middleware.ReportPanic(rt.Env)(h)
}
