package application

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedKeys = []string{"date", "region", "weather", "temp", "wind_dir"}

type stubWeather struct {
	snapshot domain.Weather
	err      error
	calls    int
}

func (s *stubWeather) Resolve(_ context.Context, _ string) (domain.Weather, error) {
	s.calls++
	return s.snapshot, s.err
}

type identityLunar struct{}

func (identityLunar) ToSolar(year, month, day int) (time.Time, error) {
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

func sunnyWeather() *stubWeather {
	return &stubWeather{snapshot: domain.Weather{Condition: "晴", Temperature: "21°C", WindDir: "东南风"}}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestComposeFixedFieldsOnly(t *testing.T) {
	t.Parallel()

	config := domain.Config{Region: "杭州"}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	// 2024-03-15 is a Friday.
	payload := composer.Compose(context.Background(), day(2024, 3, 15))

	require.Len(t, payload, 5)
	for _, key := range fixedKeys {
		assert.Contains(t, payload, key)
	}
	assert.Equal(t, "2024-03-15 星期五", payload["date"].Value)
	assert.Equal(t, "杭州", payload["region"].Value)
	assert.Equal(t, "晴", payload["weather"].Value)
	assert.Equal(t, "21°C", payload["temp"].Value)
	assert.Equal(t, "东南风", payload["wind_dir"].Value)
}

func TestComposeEveryFieldGetsValidColor(t *testing.T) {
	t.Parallel()

	config := domain.Config{
		Region:        "杭州",
		Anniversaries: []domain.DatedEvent{{Name: "在一起", Date: "2020-01-01"}},
		Birthdays:     []domain.DatedEvent{{Name: "小明", Date: "1990-03-15"}},
	}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	payload := composer.Compose(context.Background(), day(2024, 3, 15))

	pattern := regexp.MustCompile(`^#[0-9a-f]{6}$`)
	for key, field := range payload {
		assert.Regexp(t, pattern, field.Color, "field %s", key)
	}
}

func TestComposeWeatherFailureFallsBackToPlaceholders(t *testing.T) {
	t.Parallel()

	provider := &stubWeather{err: domain.ErrWeatherUnavailable}
	composer := NewComposer(domain.Config{Region: "杭州"}, provider, identityLunar{}, nil)

	payload := composer.Compose(context.Background(), day(2024, 3, 15))

	require.Len(t, payload, 5)
	assert.Equal(t, "unknown", payload["weather"].Value)
	assert.Equal(t, "unknown", payload["temp"].Value)
	assert.Equal(t, "unknown", payload["wind_dir"].Value)
	assert.Equal(t, "2024-03-15 星期五", payload["date"].Value)
}

func TestComposeAnniversaryDayCounts(t *testing.T) {
	t.Parallel()

	config := domain.Config{
		Region: "杭州",
		Anniversaries: []domain.DatedEvent{
			{Name: "在一起", Date: "2020-01-01"},
			{Name: "毕业", Date: "2024-03-15"},
		},
	}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	payload := composer.Compose(context.Background(), day(2024, 1, 1))

	assert.Equal(t, "在一起 has been 1461 days", payload["anniversary_0"].Value)
	// A future anniversary yields a negative elapsed count; ordering is the
	// caller's concern, the composer just reports b-a.
	assert.Equal(t, "毕业 has been -74 days", payload["anniversary_1"].Value)
}

func TestComposeBirthdayToday(t *testing.T) {
	t.Parallel()

	config := domain.Config{
		Region:    "杭州",
		Birthdays: []domain.DatedEvent{{Name: "小明", Date: "1990-03-15"}},
	}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	payload := composer.Compose(context.Background(), day(2024, 3, 15))
	assert.Equal(t, "小明's birthday today is the birthday!", payload["birthday_0"].Value)
}

func TestComposeBirthdayRemainingDays(t *testing.T) {
	t.Parallel()

	config := domain.Config{
		Region:    "杭州",
		Birthdays: []domain.DatedEvent{{Name: "小明", Date: "1990-03-15"}},
	}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	// Next occurrence rolls to 2025-03-15, 364 days out.
	payload := composer.Compose(context.Background(), day(2024, 3, 16))
	assert.Equal(t, "小明's birthday 364 days remaining", payload["birthday_0"].Value)
}

func TestComposeSkipsMalformedDateKeepingOthers(t *testing.T) {
	t.Parallel()

	config := domain.Config{
		Region: "杭州",
		Birthdays: []domain.DatedEvent{
			{Name: "小明", Date: "1990-03-15"},
			{Name: "坏日期", Date: "2024-13-40"},
			{Name: "小红", Date: "1992-06-01"},
		},
	}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	payload := composer.Compose(context.Background(), day(2024, 3, 15))

	assert.Contains(t, payload, "birthday_0")
	assert.NotContains(t, payload, "birthday_1")
	assert.Contains(t, payload, "birthday_2", "entries after a malformed one keep their index keys")
	require.Len(t, payload, 7)
}

func TestComposeLunarDateGoesThroughConverter(t *testing.T) {
	t.Parallel()

	config := domain.Config{
		Region:        "杭州",
		Anniversaries: []domain.DatedEvent{{Name: "农历纪念", Date: "r2024-1-1"}},
	}
	composer := NewComposer(config, sunnyWeather(), identityLunar{}, nil)

	// identityLunar maps r2024-1-1 to solar 2024-01-01.
	payload := composer.Compose(context.Background(), day(2024, 1, 11))
	assert.Equal(t, "农历纪念 has been 10 days", payload["anniversary_0"].Value)
}
