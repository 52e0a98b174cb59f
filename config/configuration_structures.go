package config

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// TokenConfig : параметры выдачи пары токенов.
// TTL задаются строками в формате time.ParseDuration,
// access TTL должен быть много меньше refresh TTL
type TokenConfig struct {
	Salt            string `yaml:"salt"`
	SecretLength    int    `yaml:"secret_length"`
	AccessTokenTTL  string `yaml:"access_token_ttl"`
	RefreshTokenTTL string `yaml:"refresh_token_ttl"`
}

// TTL : времена жизни кэшируемых данных, в секундах
type TTL struct {
	AuthenticationCache int `yaml:"authenticationCache"`
}
