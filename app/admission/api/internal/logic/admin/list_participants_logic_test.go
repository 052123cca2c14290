package admin

import (
	"testing"

	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListParticipants(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 0, 0)
	mustJoin(t, svcCtx, event.ID, 1, model.RoleVolunteer)
	mustJoin(t, svcCtx, event.ID, 2, model.RoleVolunteer)
	mustJoin(t, svcCtx, event.ID, 3, model.RoleScholar)

	approve := NewApproveParticipantLogic(adminCtx(t), svcCtx)
	_, err := approve.ApproveParticipant(&types.ApproveParticipantRequest{
		EventId: int64(event.ID),
		UserId:  2,
	})
	require.NoError(t, err)

	l := NewListParticipantsLogic(adminCtx(t), svcCtx)

	// 全量
	resp, err := l.ListParticipants(&types.ListParticipantsRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Total)
	assert.Len(t, resp.List, 3)

	// 按角色过滤
	resp, err = l.ListParticipants(&types.ListParticipantsRequest{
		EventId: int64(event.ID),
		Role:    "scholar",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, int64(3), resp.List[0].UserId)
	assert.Equal(t, "scholar", resp.List[0].Role)

	// 按状态过滤
	resp, err = l.ListParticipants(&types.ListParticipantsRequest{
		EventId: int64(event.ID),
		Status:  "ACTIVE",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.Total)
	assert.Equal(t, int64(2), resp.List[0].UserId)
}

func TestListParticipantsPagination(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 0, 0)
	for i := uint64(1); i <= 5; i++ {
		mustJoin(t, svcCtx, event.ID, i, model.RoleVolunteer)
	}

	l := NewListParticipantsLogic(adminCtx(t), svcCtx)
	resp, err := l.ListParticipants(&types.ListParticipantsRequest{
		EventId:  int64(event.ID),
		Page:     2,
		PageSize: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.Total)
	assert.Len(t, resp.List, 2)
	assert.Equal(t, 2, resp.Page)
}

func TestListParticipantsInvalidFilters(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 0, 0)

	l := NewListParticipantsLogic(adminCtx(t), svcCtx)

	_, err := l.ListParticipants(&types.ListParticipantsRequest{
		EventId: int64(event.ID),
		Role:    "sponsor",
	})
	assert.True(t, errorx.Is(err, errorx.CodeInvalidRole))

	_, err = l.ListParticipants(&types.ListParticipantsRequest{
		EventId: int64(event.ID),
		Status:  "REJECTED",
	})
	assert.True(t, errorx.Is(err, errorx.CodeInvalidParams))
}

func TestListParticipantsEventNotFound(t *testing.T) {
	svcCtx := newTestSvcCtx(t)

	l := NewListParticipantsLogic(adminCtx(t), svcCtx)
	_, err := l.ListParticipants(&types.ListParticipantsRequest{EventId: 9999})
	assert.True(t, errorx.Is(err, errorx.CodeEventNotFound))
}
