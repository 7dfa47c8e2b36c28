package config

// Config represents the complete configuration structure
type Config struct {
	TDA        TDAConfig        `mapstructure:"tda"`
	TokenStore TokenStoreConfig `mapstructure:"token_store"`
	Logging    LoggingConfig    `mapstructure:"logging"`
}

// TDAConfig holds the TD Ameritrade API credentials
type TDAConfig struct {
	ClientID     string `mapstructure:"client_id"`
	RefreshToken string `mapstructure:"refresh_token"`
	// AccountID is the default account used when none is given on the
	// command line.
	AccountID string `mapstructure:"account_id"`
}

// TokenStoreConfig selects where the access token is persisted
type TokenStoreConfig struct {
	// Backend is "file" or "redis"
	Backend  string `mapstructure:"backend"`
	Path     string `mapstructure:"path"`
	RedisURL string `mapstructure:"redis_url"`
	RedisKey string `mapstructure:"redis_key"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}
