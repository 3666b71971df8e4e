package config

import "strings"

type Cors struct{}

var _ CorsConfig = Cors{}

type AllowedOrigins map[string]struct{}
type nullValue = struct{}

func (a AllowedOrigins) IsAllowedOrigin(origin string) bool {
	_, ok := a[origin]
	return ok
}

func (a AllowedOrigins) String() string {
	var origins []string
	for k := range a {
		origins = append(origins, k)
	}
	return strings.Join(origins, ", ")
}

// GetAllowedOrigins reads a comma separated CORS_ORIGINS list, "*" when unset.
func (Cors) GetAllowedOrigins() AllowedOrigins {
	origins := AllowedOrigins{}
	for _, o := range strings.Split(GetEnv(corsOriginsVar, "*"), ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins[o] = nullValue{}
		}
	}
	return origins
}

func (Cors) GetAllowedMethods() string {
	return "PUT, GET, POST, DELETE, OPTIONS, PATCH"
}

func (Cors) GetAllowedHeaders() string {
	return "host, content-type, accept, authorization, origin, referer, user-agent, cache-control, x-requested-with"
}

// GetExposedHeaders lists the response headers browsers may read, the status header among them.
func (Cors) GetExposedHeaders() string {
	return "x-documize-version, x-documize-status"
}
