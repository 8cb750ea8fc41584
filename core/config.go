package core

import (
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppName  string
	Env      string // DEV (local; default), TEST, QA, PROD
	Debug    bool
	TestMode bool

	// DataDir holds one delimited text file per collection.
	DataDir      string
	SeedDefaults bool

	RollbarToken string
}

// NewConfig loads configuration from an optional .env file and the environment.
func NewConfig() *Config {
	conf := viper.New()

	// defaults
	conf.SetTypeByDefaultValue(true)
	conf.SetDefault("debug", true)
	conf.SetDefault("appName", "Moyeo")
	conf.SetDefault("dataDir", "data")
	conf.SetDefault("seedDefaults", true)
	conf.SetDefault("rollbarToken", "")

	env := os.Getenv("ENV")
	switch env {
	case "":
		env = "DEV"
	case "TEST":
		conf.SetDefault("testMode", true)
	}
	conf.SetEnvPrefix(env)

	// load .env if it exists (ignore if it does not)
	dotEnvPath := filepath.Join(Getwd(), "config", ".env."+strings.ToLower(env))
	if _, err := os.Stat(dotEnvPath); err == nil {
		if err := godotenv.Load(dotEnvPath); err != nil {
			log.Fatalf("config.godotenv(%s): %v", dotEnvPath, err)
		}
	} else if !os.IsNotExist(err) {
		log.Fatalf("config.os.Stat(%s): %v", dotEnvPath, err)
	}
	conf.AutomaticEnv()

	return &Config{
		AppName:      conf.GetString("appName"),
		Env:          env,
		Debug:        conf.GetBool("debug"),
		TestMode:     conf.GetBool("testMode"),
		DataDir:      conf.GetString("dataDir"),
		SeedDefaults: conf.GetBool("seedDefaults"),
		RollbarToken: conf.GetString("rollbarToken"),
	}
}
