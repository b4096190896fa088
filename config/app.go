package config

type App struct {
	Port     string `env:"APP_PORT" default:"8080"`
	MongoURI string `env:"MONGODB_URI,required"`
	DBName   string `env:"MONGODB_DB" default:"library"`
	Env      string `env:"APP_ENV" default:"dev"`
}
