// Package contracts holds the small interfaces the application shell uses to
// mount route groups without depending on the dispatch packages themselves.
package contracts

import "github.com/julienschmidt/httprouter"

// RouteRegistrar is implemented by the action dispatcher and the health
// handler. Each registers its own paths on the shared router.
type RouteRegistrar interface {
	RegisterRoutes(*httprouter.Router)
}
