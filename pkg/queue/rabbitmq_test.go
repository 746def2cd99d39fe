package queue

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClampPriority(t *testing.T) {
	assert.Equal(t, uint8(0), clampPriority(-3))
	assert.Equal(t, uint8(4), clampPriority(4))
	assert.Equal(t, uint8(10), clampPriority(42))
}

func TestTask_JSONFieldNames(t *testing.T) {
	task := Task{
		Type:       TaskTypeLike,
		UserID:     "owner-1",
		ActorID:    "liker-1",
		TargetKind: "video",
		TargetID:   "video-1",
		Priority:   3,
		CreatedAt:  time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}

	raw, err := json.Marshal(task)
	require.NoError(t, err)

	var fields map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &fields))
	assert.Equal(t, "like", fields["type"])
	assert.Equal(t, "owner-1", fields["user_id"])
	assert.Equal(t, "liker-1", fields["actor_id"])
	assert.Equal(t, "video", fields["target_kind"])
}

func TestTask_SubscriptionOmitsTarget(t *testing.T) {
	raw, err := json.Marshal(Task{Type: TaskTypeSubscription, UserID: "channel-1", ActorID: "fan-1"})
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "target_kind")
	assert.NotContains(t, string(raw), "target_id")
}
