package config

// EnvPrefix is applied by envconfig when resolving variables.
const EnvPrefix = "mandimitra"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "MANDIMITRA_DB_DSN"
	EnvDBHost = "MANDIMITRA_DB_HOST"
	EnvDBUser = "MANDIMITRA_DB_USER"
	EnvDBName = "MANDIMITRA_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
