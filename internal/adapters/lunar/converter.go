package lunar

import (
	"fmt"
	"time"

	"github.com/6tail/lunar-go/calendar"
	"github.com/RRRwang/vxtuisong/internal/domain"
)

var _ domain.LunarConverter = Converter{}

// Converter maps lunar calendar dates to solar ones via lunar-go.
type Converter struct{}

// ToSolar converts a lunar year/month/day to the solar date it falls on.
// lunar-go panics on out-of-range input, so the conversion is fenced and a
// panic surfaces as an ordinary error.
func (Converter) ToSolar(year, month, day int) (_ time.Time, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("convert lunar date %d-%d-%d: %v", year, month, day, r)
		}
	}()

	solar := calendar.NewLunarFromYmd(year, month, day).GetSolar()
	return time.Date(solar.GetYear(), time.Month(solar.GetMonth()), solar.GetDay(), 0, 0, 0, 0, time.UTC), nil
}
