package domain

import (
	"fmt"
	"math/rand"
)

// Field is one entry of the template message payload: the rendered text and
// the accent color the WeChat client paints it with.
type Field struct {
	Value string `json:"value"`
	Color string `json:"color"`
}

// Payload maps template field names to their entries. Fixed names (date,
// region, weather, temp, wind_dir) and generated names (anniversary_{i},
// birthday_{i}) live in disjoint namespaces, so keys never collide.
type Payload map[string]Field

// RandomColor returns a uniformly random 24-bit RGB color as "#rrggbb".
// It carries no meaning beyond display emphasis.
func RandomColor() string {
	return fmt.Sprintf("#%06x", rand.Intn(0x1000000))
}

// DeliveryOutcome records one recipient's send attempt.
type DeliveryOutcome struct {
	Recipient string
	Succeeded bool
}

// DeliveryReport aggregates a whole dispatch run.
type DeliveryReport struct {
	RunID    string
	Sent     int
	Failed   int
	Outcomes []DeliveryOutcome
}
