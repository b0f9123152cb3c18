package config

type Server struct {
	Env      string   `envconfig:"ENV"       default:"development"`
	LogLevel string   `envconfig:"LOG_LEVEL" default:"info"`
	Port     string   `envconfig:"PORT"      default:"8080"`
	Host     string   `envconfig:"HOST"`
	Shutdown Shutdown `envconfig:"SHUTDOWN"`
}

// Shutdown is split in two: the grace period lets load balancers drain while
// /health reports 503, the cleanup period bounds in-flight requests.
type Shutdown struct {
	CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS" default:"10"`
	GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"   default:"5"`
}

type App struct {
	Name        string      `envconfig:"APP_NAME" default:"seatq"`
	Timezone    string      `envconfig:"TIMEZONE" default:"UTC"`
	CORS        CORS        `envconfig:"CORS"`
	RateLimiter RateLimiter `envconfig:"RATE_LIMITER"`
	// APIKey lets trusted services skip staff auth. Empty disables it.
	APIKey string `envconfig:"API_KEY"`
}

type CORS struct {
	Enable           bool     `envconfig:"ENABLE"`
	AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
	AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
	AllowedMethods   []string `envconfig:"ALLOWED_METHODS"   default:"GET,POST,PATCH,DELETE,OPTIONS"`
	AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"   default:"Authorization,Content-Type,X-API-Key"`
	MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"   default:"300"`
}

type RateLimiter struct {
	Enable        bool `envconfig:"ENABLE"`
	MaxRequests   int  `envconfig:"MAX_REQUESTS"   default:"120"`
	WindowSeconds int  `envconfig:"WINDOW_SECONDS" default:"60"`
}

type Cache struct {
	Redis struct {
		Primary RedisEndpoint `envconfig:"PRIMARY"`
	} `envconfig:"REDIS"`
	// TTL is in seconds.
	TTL int `envconfig:"TTL" default:"60"`
}

type RedisEndpoint struct {
	Host     string `envconfig:"HOST" default:"localhost"`
	Port     string `envconfig:"PORT" default:"6379"`
	Password string `envconfig:"PASSWORD"`
	DB       int    `envconfig:"DB"`
}

type JWT struct {
	AccessSecret     string `envconfig:"ACCESS_SECRET"`
	RefreshSecret    string `envconfig:"REFRESH_SECRET"`
	AccessExpireMin  int    `envconfig:"ACCESS_EXPIRE_MIN"  default:"15"`
	RefreshExpireMin int    `envconfig:"REFRESH_EXPIRE_MIN" default:"10080"`
}

// Admin is the single staff account. PasswordHash comes from cmd/hashpass.
type Admin struct {
	Username     string `envconfig:"USERNAME"`
	PasswordHash string `envconfig:"PASSWORD_HASH"`
}

type Matching struct {
	MaxCommitAttempts        uint   `envconfig:"MAX_COMMIT_ATTEMPTS"        default:"3"`
	RetryBackoffMillis       int    `envconfig:"RETRY_BACKOFF_MILLIS"       default:"10"`
	RebalanceIntervalSeconds int    `envconfig:"REBALANCE_INTERVAL_SECONDS" default:"30"`
	StoreDriver              string `envconfig:"STORE_DRIVER"               default:"postgres"`
}

type Notifier struct {
	MaxPending int `envconfig:"MAX_PENDING" default:"1024"`
}

type Kafka struct {
	Enable        bool     `envconfig:"ENABLE"`
	Brokers       []string `envconfig:"BROKERS"`
	ConsumerGroup string   `envconfig:"CONSUMER_GROUP" default:"seatq"`
	SASL          struct {
		Username string `envconfig:"USERNAME"`
		Password string `envconfig:"PASSWORD"`
	} `envconfig:"SASL"`
	Topics struct {
		SeatingEvents string `envconfig:"SEATING_EVENTS" default:"seating.events"`
		TableStatus   string `envconfig:"TABLE_STATUS"   default:"tables.status"`
	} `envconfig:"TOPICS"`
}

type Postgres struct {
	MaxRetry int `envconfig:"MAX_RETRY" default:"3"`
	// RetryWaitTime is in seconds.
	RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME" default:"2"`
	MigrationTable string           `envconfig:"MIGRATION_TABLE" default:"schema_migrations"`
	AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
	Prefix         string           `envconfig:"PREFIX"`
	Read           PostgresEndpoint `envconfig:"READ"`
	Write          PostgresEndpoint `envconfig:"WRITE"`
}

type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"     default:"5432"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE" default:"UTC"`
	SSLMode  string `envconfig:"SSL_MODE" default:"disable"`
}

type External struct {
	Otel struct {
		Endpoint string `envconfig:"ENDPOINT"`
	} `envconfig:"OTEL"`
	// S3 archives cleared queues. Archiving is off while BucketName is empty.
	S3 struct {
		APIEndpoint     string `envconfig:"API_ENDPOINT"`
		AccessKeyID     string `envconfig:"ACCESS_KEY_ID"`
		SecretAccessKey string `envconfig:"SECRET_ACCESS_KEY"`
		BucketName      string `envconfig:"BUCKET_NAME"`
		PublicDomain    string `envconfig:"PUBLIC_DOMAIN"`
	} `envconfig:"S3"`
}
