package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	// Prefixes
	RoutePrefixPublic  = "/api/public/"
	RoutePrefixPrivate = "/api/"

	// Public API Routes
	RouteAuthenticate = "/api/public/authenticate"
	RouteVersion      = "/api/public/version"

	// Private API Routes (Authorize middleware, status header on every response)
	RouteUserMe   = "/api/users/me"
	RouteUserByID = "/api/users/{id}"
)
