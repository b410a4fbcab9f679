package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	DefaultRedirectURL = "http://weixin.qq.com/download"
	TopColor           = "#FF0000"
)

// DatedEvent is one configured anniversary or birthday: a display name plus
// a date spec, either solar YYYY-MM-DD or lunar-prefixed.
type DatedEvent struct {
	Name string
	Date string
}

// Config holds everything a push run needs. It is loaded and validated by
// the config adapter before any component runs.
type Config struct {
	AppID         string
	AppSecret     string
	WeatherKey    string
	TemplateID    string
	Region        string
	Users         []string
	RedirectURL   string
	Anniversaries []DatedEvent
	Birthdays     []DatedEvent
}

func (c Config) Validate() error {
	var missing []string
	if c.AppID == "" {
		missing = append(missing, "app_id")
	}
	if c.AppSecret == "" {
		missing = append(missing, "app_secret")
	}
	if c.WeatherKey == "" {
		missing = append(missing, "weather_key")
	}
	if c.TemplateID == "" {
		missing = append(missing, "template_id")
	}
	if c.Region == "" {
		missing = append(missing, "region")
	}
	if len(c.Users) == 0 {
		missing = append(missing, "user")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config missing required keys: %s", strings.Join(missing, ", "))
	}

	for _, user := range c.Users {
		if user == "" {
			return errors.New("config contains an empty user entry")
		}
	}

	return nil
}
