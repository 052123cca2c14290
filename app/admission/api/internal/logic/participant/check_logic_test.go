package participant

import (
	"testing"

	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckParticipationStates(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)

	// 无记录返回 NONE，不报错
	check := NewCheckParticipationLogic(userCtx(t, 100), svcCtx)
	resp, err := check.CheckParticipation(&types.CheckParticipationRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
	assert.False(t, resp.HasJoined)
	assert.Equal(t, "NONE", resp.Status)

	join := NewJoinLogic(userCtx(t, 100), svcCtx)
	_, err = join.Join(&types.JoinEventRequest{EventId: int64(event.ID), Role: "volunteer"})
	require.NoError(t, err)

	resp, err = check.CheckParticipation(&types.CheckParticipationRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
	assert.True(t, resp.HasJoined)
	assert.Equal(t, "PENDING", resp.Status)
	assert.Equal(t, "volunteer", resp.Role)
	assert.Greater(t, resp.JoinedAt, int64(0))
}

func TestCheckRejection(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)

	check := NewCheckRejectionLogic(userCtx(t, 100), svcCtx)
	resp, err := check.CheckRejection(&types.CheckRejectionRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
	assert.False(t, resp.IsRejected)

	require.NoError(t, svcCtx.RejectionModel.UpsertTx(t.Context(), svcCtx.DB, &model.RejectionRecord{
		EventID: event.ID,
		UserID:  100,
		AdminID: 1,
		Reason:  "材料不完整",
	}))

	resp, err = check.CheckRejection(&types.CheckRejectionRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
	assert.True(t, resp.IsRejected)
	assert.Equal(t, "材料不完整", resp.Reason)
	assert.Greater(t, resp.RejectedAt, int64(0))
}
