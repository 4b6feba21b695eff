package config

const (
	EnvPrefix = "alghazaly"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "ALGHAZALY_DB_DSN"
	EnvDBHost = "ALGHAZALY_DB_HOST"
	EnvDBUser = "ALGHAZALY_DB_USER"
	EnvDBName = "ALGHAZALY_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
