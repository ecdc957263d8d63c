package service

type Config struct {
	DatabaseUri             string  `envconfig:"DATABASE_URI" required:"true"`
	DatabaseMaxConns        int     `envconfig:"DATABASE_MAX_CONNS" default:"10"`
	DatabaseMaxIdleConns    int     `envconfig:"DATABASE_MAX_IDLE_CONNS" default:"5"`
	DatabaseConnMaxLifetime int     `envconfig:"DATABASE_CONN_MAX_LIFETIME" default:"1800"` // 30 minutes
	DatabaseTimeout         int     `envconfig:"DATABASE_TIMEOUT" default:"60"`             // 60 seconds
	SentryDSN               string  `envconfig:"SENTRY_DSN"`
	SentryTracesSampleRate  float64 `envconfig:"SENTRY_TRACES_SAMPLE_RATE"`
	DatadogAgentUrl         string  `envconfig:"DATADOG_AGENT_URL"`
	LogFilePath             string  `envconfig:"LOG_FILE_PATH"`
	JWTSecret               []byte  `envconfig:"JWT_SECRET" required:"true"`
	AdminToken              string  `envconfig:"ADMIN_TOKEN"`
	JWTRefreshTokenExpiry   int     `envconfig:"JWT_REFRESH_EXPIRY" default:"604800"` // in seconds, default 7 days
	JWTAccessTokenExpiry    int     `envconfig:"JWT_ACCESS_EXPIRY" default:"172800"`  // in seconds, default 2 days
	Host                    string  `envconfig:"HOST" default:"localhost:3000"`
	Port                    int     `envconfig:"PORT" default:"3000"`
	DefaultRateLimit        int     `envconfig:"DEFAULT_RATE_LIMIT" default:"10"`
	StrictRateLimit         int     `envconfig:"STRICT_RATE_LIMIT" default:"10"`
	BurstRateLimit          int     `envconfig:"BURST_RATE_LIMIT" default:"1"`
	EnablePrometheus        bool    `envconfig:"ENABLE_PROMETHEUS" default:"false"`
	PrometheusPort          int     `envconfig:"PROMETHEUS_PORT" default:"9092"`
	AllowUserCreation       bool    `envconfig:"ALLOW_USER_CREATION" default:"true"`
	MinPasswordEntropy      int     `envconfig:"MIN_PASSWORD_ENTROPY" default:"0"`
	TimeZone                string  `envconfig:"TIME_ZONE" default:"UTC"` // IANA name, used for month bounds and day buckets
	FileStorageDir          string  `envconfig:"FILE_STORAGE_DIR" default:"media"`
	GCSBucket               string  `envconfig:"GCS_BUCKET"` // when set, receipts go to GCS instead of local disk
	RabbitMQUri             string  `envconfig:"RABBITMQ_URI"`
	RabbitMQTxExchange      string  `envconfig:"RABBITMQ_TX_EXCHANGE" default:"moneybook_transactions"`
}
