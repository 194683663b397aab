package conf

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Configuration holds all the configuration for mediacommerce.
type Configuration struct {
	SiteURL string `mapstructure:"site_url" json:"site_url"`

	LogLevel string `mapstructure:"log_level" json:"log_level"`

	JWT struct {
		Secret     string `mapstructure:"secret" json:"secret"`
		AdminGroup string `mapstructure:"admin_group" json:"admin_group"`
	} `mapstructure:"jwt" json:"jwt"`

	DB struct {
		Driver      string `mapstructure:"driver" json:"driver"`
		ConnURL     string `mapstructure:"url" json:"url"`
		Namespace   string `mapstructure:"namespace" json:"namespace"`
		Automigrate bool   `mapstructure:"automigrate" json:"automigrate"`
	} `mapstructure:"db" json:"db"`

	API struct {
		Host string `mapstructure:"host" json:"host"`
		Port int    `mapstructure:"port" json:"port"`
	} `mapstructure:"api" json:"api"`

	Payment struct {
		Stripe struct {
			SecretKey     string `mapstructure:"secret_key" json:"secret_key"`
			WebhookSecret string `mapstructure:"webhook_secret" json:"webhook_secret"`
		} `mapstructure:"stripe" json:"stripe"`
		CancelPath string `mapstructure:"cancel_path" json:"cancel_path"`
	} `mapstructure:"payment" json:"payment"`

	Downloads struct {
		Provider     string `mapstructure:"provider" json:"provider"`
		SigningURL   string `mapstructure:"signing_url" json:"signing_url"`
		SigningToken string `mapstructure:"signing_token" json:"signing_token"`
		BaseURL      string `mapstructure:"base_url" json:"base_url"`
		Secret       string `mapstructure:"secret" json:"secret"`
		URLTTL       int    `mapstructure:"url_ttl" json:"url_ttl"`
	} `mapstructure:"downloads" json:"downloads"`
}

// Load will construct the config from the file `config.json`
func Load(configFile string) (*Configuration, error) {
	if err := loadEnvironment(); err != nil {
		return nil, err
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.SetConfigName("config")
		viper.AddConfigPath("./")                    // ./config.[json | toml]
		viper.AddConfigPath("$HOME/.mediacommerce/") // ~/.mediacommerce/config.[json | toml]
	}

	viper.SetEnvPrefix("MEDIA_COMMERCE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	config := new(Configuration)

	if err := viper.Unmarshal(config); err != nil {
		return nil, err
	}

	return applyDefaults(handleNested(config)), nil
}

// a missing .env file is fine, anything else is not
func loadEnvironment() error {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// This is supppper sad. It is b/c the marshal function doesn't work on nested
// values. The overrides work, but the marshal won't discover them.
// see: https://github.com/spf13/viper/issues/190
func handleNested(config *Configuration) *Configuration {
	config.JWT.Secret = viper.GetString("jwt.secret")
	config.JWT.AdminGroup = viper.GetString("jwt.admin_group")

	config.DB.Driver = viper.GetString("db.driver")
	config.DB.ConnURL = viper.GetString("db.url")
	config.DB.Namespace = viper.GetString("db.namespace")
	config.DB.Automigrate = viper.GetBool("db.automigrate")

	config.API.Host = viper.GetString("api.host")
	config.API.Port = viper.GetInt("api.port")

	config.Payment.Stripe.SecretKey = viper.GetString("payment.stripe.secret_key")
	config.Payment.Stripe.WebhookSecret = viper.GetString("payment.stripe.webhook_secret")
	config.Payment.CancelPath = viper.GetString("payment.cancel_path")

	config.Downloads.Provider = viper.GetString("downloads.provider")
	config.Downloads.SigningURL = viper.GetString("downloads.signing_url")
	config.Downloads.SigningToken = viper.GetString("downloads.signing_token")
	config.Downloads.BaseURL = viper.GetString("downloads.base_url")
	config.Downloads.Secret = viper.GetString("downloads.secret")
	config.Downloads.URLTTL = viper.GetInt("downloads.url_ttl")

	return config
}

func applyDefaults(config *Configuration) *Configuration {
	if config.API.Port == 0 {
		config.API.Port = 8080
	}
	if config.JWT.AdminGroup == "" {
		config.JWT.AdminGroup = "admin"
	}
	if config.Payment.CancelPath == "" {
		config.Payment.CancelPath = "/"
	}
	if config.Downloads.URLTTL == 0 {
		config.Downloads.URLTTL = 3600
	}
	return config
}
