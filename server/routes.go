package server

import "net/http"

func (s *Server) initRoutes() {
	// Public API
	s.RegisterRouteHandler("POST "+RouteAuthenticate, ChainMiddleware(s.AuthenticateHandler(), s.APIMiddleware()...))
	s.RegisterRouteHandler("GET "+RouteVersion, ChainMiddleware(s.VersionHandler(), s.APIMiddleware()...))

	// Private API
	s.RegisterRouteHandler("GET "+RouteUserMe, ChainMiddleware(s.MeHandler(), s.APIMiddleware(s.Authorize)...))
	s.RegisterRouteHandler("PATCH "+RouteUserByID, ChainMiddleware(s.UpdateUserHandler(), s.APIMiddleware(s.Authorize, s.RequireAdmin)...))

	// Preflight for every API route
	s.RegisterRouteHandler("OPTIONS "+RoutePrefixPrivate, ChainMiddleware(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}, s.APIMiddleware()...))
}
