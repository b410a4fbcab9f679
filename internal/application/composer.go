package application

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/RRRwang/vxtuisong/internal/ports"
)

const unknownValue = "unknown"

// Composer assembles the daily briefing payload: the five fixed fields plus
// one generated field per configured anniversary and birthday.
type Composer struct {
	config  domain.Config
	weather ports.WeatherProvider
	lunar   domain.LunarConverter
	logger  *slog.Logger
}

func NewComposer(config domain.Config, weather ports.WeatherProvider, lunar domain.LunarConverter, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}

	return &Composer{
		config:  config,
		weather: weather,
		lunar:   lunar,
		logger:  logger,
	}
}

// Compose never fails: an unavailable weather provider degrades the three
// weather fields to a placeholder, and a malformed anniversary or birthday
// date drops only that one entry.
func (c *Composer) Compose(ctx context.Context, today time.Time) domain.Payload {
	payload := make(domain.Payload, 5+len(c.config.Anniversaries)+len(c.config.Birthdays))

	snapshot, err := c.weather.Resolve(ctx, c.config.Region)
	if err != nil {
		c.logger.Error("weather resolution failed, using placeholders",
			"region", c.config.Region, "error", err)
		snapshot = domain.Weather{
			Condition:   unknownValue,
			Temperature: unknownValue,
			WindDir:     unknownValue,
		}
	}

	payload["date"] = entry(fmt.Sprintf("%s %s", today.Format("2006-01-02"), domain.WeekdayName(today)))
	payload["region"] = entry(c.config.Region)
	payload["weather"] = entry(snapshot.Condition)
	payload["temp"] = entry(snapshot.Temperature)
	payload["wind_dir"] = entry(snapshot.WindDir)

	for idx, ann := range c.config.Anniversaries {
		started, err := domain.ParseDateSpec(ann.Date, c.lunar)
		if err != nil {
			c.logger.Warn("skipping anniversary with malformed date",
				"name", ann.Name, "date", ann.Date, "error", err)
			continue
		}

		days := domain.DaysBetween(started, today)
		payload[fmt.Sprintf("anniversary_%d", idx)] = entry(fmt.Sprintf("%s has been %d days", ann.Name, days))
	}

	for idx, bd := range c.config.Birthdays {
		birth, err := domain.ParseDateSpec(bd.Date, c.lunar)
		if err != nil {
			c.logger.Warn("skipping birthday with malformed date",
				"name", bd.Name, "date", bd.Date, "error", err)
			continue
		}

		remaining := domain.DaysBetween(today, domain.NextOccurrence(birth, today))
		status := fmt.Sprintf("%d days remaining", remaining)
		if remaining == 0 {
			status = "today is the birthday!"
		}
		payload[fmt.Sprintf("birthday_%d", idx)] = entry(fmt.Sprintf("%s's birthday %s", bd.Name, status))
	}

	return payload
}

func entry(value string) domain.Field {
	return domain.Field{Value: value, Color: domain.RandomColor()}
}
