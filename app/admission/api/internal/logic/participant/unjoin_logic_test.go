package participant

import (
	"testing"

	"admission-platform/app/admission/api/internal/types"
	"admission-platform/common/errorx"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnjoinReleasesSlot(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 1, 0)

	join := NewJoinLogic(userCtx(t, 100), svcCtx)
	_, err := join.Join(&types.JoinEventRequest{EventId: int64(event.ID)})
	require.NoError(t, err)

	// 满员状态下另一用户被拒
	join2 := NewJoinLogic(userCtx(t, 101), svcCtx)
	_, err = join2.Join(&types.JoinEventRequest{EventId: int64(event.ID)})
	assert.True(t, errorx.Is(err, errorx.CodeEventFull))

	// 退出释放名额
	unjoin := NewUnjoinLogic(userCtx(t, 100), svcCtx)
	resp, err := unjoin.Unjoin(&types.UnjoinEventRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
	assert.Equal(t, "success", resp.Result)

	got, err := svcCtx.EventModel.FindByID(t.Context(), event.ID)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), got.CurrentVolunteerCount)

	// 释放后的名额可被他人使用
	_, err = join2.Join(&types.JoinEventRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
}

func TestUnjoinAllowsRejoin(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)

	join := NewJoinLogic(userCtx(t, 100), svcCtx)
	_, err := join.Join(&types.JoinEventRequest{EventId: int64(event.ID)})
	require.NoError(t, err)

	unjoin := NewUnjoinLogic(userCtx(t, 100), svcCtx)
	_, err = unjoin.Unjoin(&types.UnjoinEventRequest{EventId: int64(event.ID)})
	require.NoError(t, err)

	// 主动退出不进拒绝名单，可重新报名
	_, err = join.Join(&types.JoinEventRequest{EventId: int64(event.ID)})
	require.NoError(t, err)
}

func TestUnjoinNotJoined(t *testing.T) {
	svcCtx := newTestSvcCtx(t)
	event := mustCreateEvent(t, svcCtx, 5, 0)

	l := NewUnjoinLogic(userCtx(t, 100), svcCtx)
	_, err := l.Unjoin(&types.UnjoinEventRequest{EventId: int64(event.ID)})
	assert.True(t, errorx.Is(err, errorx.CodeNotJoined))
}
