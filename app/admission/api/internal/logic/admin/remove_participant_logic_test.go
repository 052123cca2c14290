package admin

import (
	"testing"

	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveParticipant(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)
	mustJoin(t, svcCtx, event.ID, 100, model.RoleVolunteer)

	l := NewRemoveParticipantLogic(adminCtx(t), svcCtx)
	resp, err := l.RemoveParticipant(&types.RemoveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  100,
		Reason:  "活动调整",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Result)

	// 报名行删除且名额释放
	_, err = svcCtx.ParticipationModel.FindByEventUser(t.Context(), event.ID, 100)
	assert.ErrorIs(t, err, model.ErrParticipationNotFound)

	got, err := svcCtx.EventModel.FindByID(t.Context(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.CurrentVolunteerCount)

	// 与拒绝的区别：不写拒绝名单
	_, err = svcCtx.RejectionModel.FindByEventUser(t.Context(), event.ID, 100)
	assert.ErrorIs(t, err, model.ErrRejectionNotFound)
}

func TestRemoveNotJoined(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)

	l := NewRemoveParticipantLogic(adminCtx(t), svcCtx)
	_, err := l.RemoveParticipant(&types.RemoveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  100,
	})
	assert.True(t, errorx.Is(err, errorx.CodeParticipantNone))
}
