package ports

import (
	"context"

	"github.com/RRRwang/vxtuisong/internal/domain"
)

type WeatherProvider interface {
	Resolve(ctx context.Context, region string) (domain.Weather, error)
}
