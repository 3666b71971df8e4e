package config

type Config interface {
	EnvConfig
	CorsConfig
	ClientConfig
	TokenConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetVersion() string
	GetRedisAddr() string
	GetAdminEmail() string
	GetAdminPassword() string
	GetEnv() string
}

type CorsConfig interface {
	GetAllowedOrigins() AllowedOrigins
	GetAllowedMethods() string
	GetAllowedHeaders() string
	GetExposedHeaders() string
}

type mainConfig struct {
	EnvVars
	Cors
	Client
	Token
}

func New() Config {
	return mainConfig{}
}
