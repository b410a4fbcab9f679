package cmd

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	configadapter "github.com/RRRwang/vxtuisong/internal/adapters/config"
	lunaradapter "github.com/RRRwang/vxtuisong/internal/adapters/lunar"
	"github.com/RRRwang/vxtuisong/internal/adapters/qweather"
	"github.com/RRRwang/vxtuisong/internal/adapters/wechat"
	"github.com/RRRwang/vxtuisong/internal/application"
	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/spf13/viper"
)

type app struct {
	config     domain.Config
	composer   *application.Composer
	dispatcher *application.Dispatcher
	logger     *slog.Logger
	now        func() time.Time
}

func wireApp() (*app, error) {
	config, err := configadapter.Load(viper.New())
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel(),
	}))

	lookupClient := qweather.Client{
		HTTPClient: http.DefaultClient,
		Logger:     logger,
	}
	resolver := qweather.NewResolver(lookupClient, config.WeatherKey)
	resolver.GeoBaseURL = os.Getenv("VXTUISONG_GEO_BASE_URL")
	resolver.WeatherBaseURL = os.Getenv("VXTUISONG_WEATHER_BASE_URL")

	tokens := &wechat.TokenAuthority{
		AppID:     config.AppID,
		AppSecret: config.AppSecret,
		BaseURL:   os.Getenv("VXTUISONG_API_BASE_URL"),
		Logger:    logger,
	}
	sender := &wechat.TemplateMessageSender{
		Tokens:      tokens,
		TemplateID:  config.TemplateID,
		RedirectURL: config.RedirectURL,
		BaseURL:     os.Getenv("VXTUISONG_API_BASE_URL"),
		Logger:      logger,
	}

	return &app{
		config:     config,
		composer:   application.NewComposer(config, resolver, lunaradapter.Converter{}, logger),
		dispatcher: application.NewDispatcher(config.Users, sender, tokens, logger),
		logger:     logger,
		now:        time.Now,
	}, nil
}

func logLevel() slog.Level {
	if os.Getenv("VXTUISONG_DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
