package config

const (
	EnvPrefix = "sereneleaf"

	AppEnvDev  = "dev"
	AppEnvProd = "production"

	EnvAppEnv            = "SERENELEAF_APP_ENV"
	EnvPort              = "SERENELEAF_APP_PORT"
	EnvRedisURL          = "SERENELEAF_REDIS_URL"
	EnvRedisAddr         = "SERENELEAF_REDIS_ADDR"
	EnvGCPProjectID      = "SERENELEAF_GCP_PROJECT_ID"
	EnvAnalyticsEnabled  = "SERENELEAF_ANALYTICS_ENABLED"
	EnvAnalyticsTopic    = "SERENELEAF_ANALYTICS_TOPIC"
	EnvShippingThreshold = "SERENELEAF_FREE_SHIPPING_THRESHOLD"
	EnvShippingCost      = "SERENELEAF_SHIPPING_COST"
	EnvTaxRate           = "SERENELEAF_TAX_RATE"
)
