package config

const EnvPrefix = "MARIGOLD"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "MARIGOLD_APP_ENV"
	EnvPort     = "MARIGOLD_APP_PORT"
	EnvDBDSN    = "MARIGOLD_DB_DSN"
	EnvDBHost   = "MARIGOLD_DB_HOST"
	EnvDBUser   = "MARIGOLD_DB_USER"
	EnvDBName   = "MARIGOLD_DB_NAME"
	EnvRedisURL = "MARIGOLD_REDIS_URL"

	EnvJWTSecret = "MARIGOLD_JWT_SECRET"
	EnvJWTIssuer = "MARIGOLD_JWT_ISSUER"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
