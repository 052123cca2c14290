package admin

import (
	"testing"

	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApproveParticipant(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)
	mustJoin(t, svcCtx, event.ID, 100, model.RoleVolunteer)

	l := NewApproveParticipantLogic(adminCtx(t), svcCtx)
	resp, err := l.ApproveParticipant(&types.ApproveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  100,
	})
	require.NoError(t, err)
	assert.Equal(t, "ACTIVE", resp.Status)

	p, err := svcCtx.ParticipationModel.FindByEventUser(t.Context(), event.ID, 100)
	require.NoError(t, err)
	assert.Equal(t, model.ParticipationStatusActive, p.Status)

	// 审批不动计数器：报名时已占位
	got, err := svcCtx.EventModel.FindByID(t.Context(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(1), got.CurrentVolunteerCount)
}

func TestApproveTwice(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)
	mustJoin(t, svcCtx, event.ID, 100, model.RoleVolunteer)

	l := NewApproveParticipantLogic(adminCtx(t), svcCtx)
	_, err := l.ApproveParticipant(&types.ApproveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  100,
	})
	require.NoError(t, err)

	_, err = l.ApproveParticipant(&types.ApproveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  100,
	})
	assert.True(t, errorx.Is(err, errorx.CodeAlreadyProcessed))
}

func TestApproveNotJoined(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)

	l := NewApproveParticipantLogic(adminCtx(t), svcCtx)
	_, err := l.ApproveParticipant(&types.ApproveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  100,
	})
	assert.True(t, errorx.Is(err, errorx.CodeParticipantNone))
}

func TestApproveEventNotFound(t *testing.T) {
	svcCtx := newTestSvcCtx(t)

	l := NewApproveParticipantLogic(adminCtx(t), svcCtx)
	_, err := l.ApproveParticipant(&types.ApproveParticipantRequest{
		EventId: 9999,
		UserId:  100,
	})
	assert.True(t, errorx.Is(err, errorx.CodeEventNotFound))
}
