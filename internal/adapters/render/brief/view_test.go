package brief

import (
	"strings"
	"testing"

	"github.com/RRRwang/vxtuisong/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPayloadOrdersFixedThenGenerated(t *testing.T) {
	t.Parallel()

	payload := domain.Payload{
		"birthday_1":     {Value: "b1", Color: "#000001"},
		"wind_dir":       {Value: "东南风", Color: "#000002"},
		"anniversary_10": {Value: "a10", Color: "#000003"},
		"date":           {Value: "2024-03-15 星期五", Color: "#000004"},
		"anniversary_2":  {Value: "a2", Color: "#000005"},
		"region":         {Value: "杭州", Color: "#000006"},
		"weather":        {Value: "晴", Color: "#000007"},
		"temp":           {Value: "21°C", Color: "#000008"},
		"birthday_0":     {Value: "b0", Color: "#000009"},
	}

	out := RenderPayload(payload)

	order := []string{"date:", "region:", "weather:", "temp:", "wind_dir:", "anniversary_2:", "anniversary_10:", "birthday_0:", "birthday_1:"}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		require.GreaterOrEqual(t, idx, 0, "missing %s", key)
		assert.Greater(t, idx, last, "%s out of order", key)
		last = idx
	}
}

func TestRenderPayloadEmpty(t *testing.T) {
	t.Parallel()

	out := RenderPayload(domain.Payload{})
	assert.Contains(t, out, "No fields composed.")
}

func TestRenderReportShowsCountsAndMarks(t *testing.T) {
	t.Parallel()

	report := domain.DeliveryReport{
		RunID:  "run-1",
		Sent:   2,
		Failed: 1,
		Outcomes: []domain.DeliveryOutcome{
			{Recipient: "u1", Succeeded: true},
			{Recipient: "u2", Succeeded: false},
			{Recipient: "u3", Succeeded: true},
		},
	}

	out := RenderReport(report)
	assert.Contains(t, out, "u1")
	assert.Contains(t, out, "u2")
	assert.Contains(t, out, "u3")
	assert.Contains(t, out, "2")
	assert.Contains(t, out, "1")
	assert.Contains(t, out, "sent")
	assert.Contains(t, out, "failed")
}
