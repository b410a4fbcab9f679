package domain

import "errors"

var (
	ErrRegionNotFound     = errors.New("region not found")
	ErrWeatherUnavailable = errors.New("weather unavailable")
	ErrAuthRejected       = errors.New("wechat credential exchange rejected")
	ErrMalformedDate      = errors.New("malformed date spec")
	ErrLookupExhausted    = errors.New("lookup retries exhausted")
)
