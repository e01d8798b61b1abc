package config

import (
	"errors"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

type Config struct {
	App struct {
		Env      string
		Timezone string
	} `mapstructure:"app"`

	Telegram struct {
		Token       string
		AdminChatID int64 `mapstructure:"admin_chat_id"`
		PollTimeout int   `mapstructure:"poll_timeout"`
	} `mapstructure:"telegram"`

	HTTP struct {
		Addr string
	} `mapstructure:"http"`

	Metrics struct {
		Enabled bool
	} `mapstructure:"metrics"`

	Shop struct {
		Currency      string
		WhatsAppPhone string `mapstructure:"whatsapp_phone"`
		Email         string
		EmailSubject  string `mapstructure:"email_subject"`
		Greeting      string
		Closing       string
		ReadyOption   string `mapstructure:"ready_option"`
	} `mapstructure:"shop"`

	Catalog struct {
		Source string
	} `mapstructure:"catalog"`

	Gallery struct {
		Source            string
		BaseURL           string        `mapstructure:"base_url"`
		SlideshowInterval time.Duration `mapstructure:"slideshow_interval"`
	} `mapstructure:"gallery"`

	Reviews struct {
		Display time.Duration
	} `mapstructure:"reviews"`

	Sessions struct {
		IdleTTL time.Duration `mapstructure:"idle_ttl"`
	} `mapstructure:"sessions"`
}

// Load читает YAML-конфиг и накладывает поверх переменные окружения APP_*.
// Если рядом лежит .env, он подгружается в окружение до чтения конфига.
func Load(path string) (Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, err
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	var c Config
	if err := v.ReadInConfig(); err != nil {
		return c, err
	}
	if err := v.Unmarshal(&c); err != nil {
		return c, err
	}
	if c.Telegram.Token == "" {
		c.Telegram.Token = os.Getenv("TELEGRAM_TOKEN")
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.env", "prod")
	v.SetDefault("app.timezone", "Europe/Bucharest")
	v.SetDefault("telegram.poll_timeout", 60)
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("shop.currency", "LEI")
	v.SetDefault("shop.whatsapp_phone", "40760118315")
	v.SetDefault("shop.email", "hello@matteolungu.art")
	v.SetDefault("shop.email_subject", "Comandă Nouă Matteo Lungu Art")
	v.SetDefault("shop.greeting", "Salut Matteo! Vreau să comand:")
	v.SetDefault("shop.closing", "Multumesc!")
	v.SetDefault("shop.ready_option", "Gata Făcut")
	v.SetDefault("catalog.source", "site/index.html")
	v.SetDefault("gallery.source", "site/index.html")
	v.SetDefault("gallery.base_url", "https://matteolungu.art/")
	v.SetDefault("gallery.slideshow_interval", 3*time.Second)
	v.SetDefault("reviews.display", 4*time.Second)
	v.SetDefault("sessions.idle_ttl", 24*time.Hour)
}
