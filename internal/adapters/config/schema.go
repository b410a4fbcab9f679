package config

type fileSchema struct {
	AppID         string        `toml:"app_id"`
	AppSecret     string        `toml:"app_secret"`
	WeatherKey    string        `toml:"weather_key"`
	TemplateID    string        `toml:"template_id"`
	Region        string        `toml:"region"`
	User          []string      `toml:"user"`
	RedirectURL   string        `toml:"redirect_url,omitempty"`
	Anniversaries []eventSchema `toml:"anniversaries,omitempty"`
	Birthdays     []eventSchema `toml:"birthdays,omitempty"`
}

type eventSchema struct {
	Name string `toml:"name"`
	Date string `toml:"date"`
}
