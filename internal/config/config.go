package config

import "time"

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	BackendURL  string `env:"BACKEND_URL" envDefault:"http://localhost:8080"`

	Database Database `envPrefix:"DATABASE_"`
	Redis    Redis    `envPrefix:"REDIS_"`
	Razorpay Razorpay `envPrefix:"RAZORPAY_"`
	Gateway  Gateway  `envPrefix:"PG_"`
	JWT      JWT      `envPrefix:"JWT_"`
	SMS      SMS      `envPrefix:"FAST2SMS_"`
	OTP      OTP      `envPrefix:"OTP_"`
}

type Database struct {
	Driver string `env:"DRIVER" envDefault:"mysql"` // mysql, sqlite
	URL    string `env:"URL"`
}

type Redis struct {
	Addr     string `env:"ADDR" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB" envDefault:"0"`
}

type Razorpay struct {
	BaseApiURL string        `env:"BASE_API_URL" envDefault:"https://api.razorpay.com"`
	KeyID      string        `env:"KEY_ID"`
	KeySecret  string        `env:"KEY_SECRET"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"15s"`
}

// Gateway holds the hash-callback payment gateway settings.
type Gateway struct {
	BaseApiURL  string        `env:"API_URL"`
	APIKey      string        `env:"API_KEY"`
	Salt        string        `env:"SALT"`
	Mode        string        `env:"MODE" envDefault:"LIVE"`
	Timeout     time.Duration `env:"TIMEOUT" envDefault:"15s"`
	DefaultCity string        `env:"DEFAULT_CITY" envDefault:"Pune"`
	DefaultZip  string        `env:"DEFAULT_ZIP" envDefault:"411001"`
}

type JWT struct {
	Secret string        `env:"SECRET"`
	TTL    time.Duration `env:"TTL" envDefault:"168h"`
}

type SMS struct {
	BaseApiURL string        `env:"URL" envDefault:"https://www.fast2sms.com/dev/bulkV2"`
	APIKey     string        `env:"API_KEY"`
	Timeout    time.Duration `env:"TIMEOUT" envDefault:"10s"`
}

type OTP struct {
	TTL time.Duration `env:"TTL" envDefault:"5m"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

func (e Environment) IsProduction() bool {
	return e.Name == "production"
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
