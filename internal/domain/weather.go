package domain

// Weather is the resolved snapshot for a region: condition text, a
// display-ready temperature, and the wind direction.
type Weather struct {
	Condition   string
	Temperature string
	WindDir     string
}
