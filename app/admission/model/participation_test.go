package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTxDuplicateJoin(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 5, 5)
	ctx := t.Context()

	first := &Participation{
		EventID: event.ID,
		UserID:  100,
		Role:    RoleVolunteer,
		Status:  ParticipationStatusPending,
	}
	require.NoError(t, m.CreateTx(ctx, db, first))

	// 同一 (event, user) 再次报名触发唯一索引
	dup := &Participation{
		EventID: event.ID,
		UserID:  100,
		Role:    RoleScholar,
		Status:  ParticipationStatusPending,
	}
	err := m.CreateTx(ctx, db, dup)
	assert.ErrorIs(t, err, ErrAlreadyJoined)

	// 换用户不受影响
	other := &Participation{
		EventID: event.ID,
		UserID:  101,
		Role:    RoleVolunteer,
		Status:  ParticipationStatusPending,
	}
	require.NoError(t, m.CreateTx(ctx, db, other))
}

func TestPromoteTx(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 5, 5)
	ctx := t.Context()

	require.NoError(t, m.CreateTx(ctx, db, &Participation{
		EventID: event.ID,
		UserID:  200,
		Role:    RoleVolunteer,
		Status:  ParticipationStatusPending,
	}))

	rows, err := m.PromoteTx(ctx, db, event.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	got, err := m.FindByEventUser(ctx, event.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, ParticipationStatusActive, got.Status)
	assert.Equal(t, "ACTIVE", got.StatusText())

	// 已经是 ACTIVE，重复审批返回 0 行
	rows, err = m.PromoteTx(ctx, db, event.ID, 200)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)

	// 不存在的记录同样返回 0 行
	rows, err = m.PromoteTx(ctx, db, event.ID, 9999)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestDeleteTx(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 5, 5)
	ctx := t.Context()

	require.NoError(t, m.CreateTx(ctx, db, &Participation{
		EventID: event.ID,
		UserID:  300,
		Role:    RoleScholar,
		Status:  ParticipationStatusActive,
	}))

	rows, err := m.DeleteTx(ctx, db, event.ID, 300)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	_, err = m.FindByEventUser(ctx, event.ID, 300)
	assert.ErrorIs(t, err, ErrParticipationNotFound)

	// 删除后用户可以重新报名
	require.NoError(t, m.CreateTx(ctx, db, &Participation{
		EventID: event.ID,
		UserID:  300,
		Role:    RoleScholar,
		Status:  ParticipationStatusPending,
	}))
}

func TestFindByEventUserNotFound(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 5, 5)

	_, err := m.FindByEventUser(t.Context(), event.ID, 42)
	assert.ErrorIs(t, err, ErrParticipationNotFound)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 0, 0)
	ctx := t.Context()

	seed := []Participation{
		{EventID: event.ID, UserID: 1, Role: RoleVolunteer, Status: ParticipationStatusPending, JoinedAt: 1000},
		{EventID: event.ID, UserID: 2, Role: RoleVolunteer, Status: ParticipationStatusActive, JoinedAt: 2000},
		{EventID: event.ID, UserID: 3, Role: RoleScholar, Status: ParticipationStatusActive, JoinedAt: 3000},
		{EventID: event.ID, UserID: 4, Role: RoleScholar, Status: ParticipationStatusPending, JoinedAt: 4000},
	}
	for i := range seed {
		require.NoError(t, db.Create(&seed[i]).Error)
	}

	// 不带过滤条件返回全部
	result, err := m.List(ctx, &ListQuery{EventID: event.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(4), result.Total)
	assert.Len(t, result.List, 4)
	// joined_at 倒序
	assert.Equal(t, uint64(4), result.List[0].UserID)

	// 按角色过滤
	result, err = m.List(ctx, &ListQuery{EventID: event.ID, Role: RoleVolunteer})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	// 按状态过滤
	result, err = m.List(ctx, &ListQuery{EventID: event.ID, Status: ParticipationStatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)

	// 角色 + 状态组合
	result, err = m.List(ctx, &ListQuery{
		EventID: event.ID,
		Role:    RoleScholar,
		Status:  ParticipationStatusActive,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.Total)
	assert.Equal(t, uint64(3), result.List[0].UserID)

	// 报名时间范围
	result, err = m.List(ctx, &ListQuery{
		EventID:     event.ID,
		JoinedRange: &TimeRange{Start: 1500, End: 3500},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), result.Total)
}

func TestListPagination(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 0, 0)
	ctx := t.Context()

	for i := 1; i <= 5; i++ {
		require.NoError(t, db.Create(&Participation{
			EventID: event.ID,
			UserID:  uint64(i),
			Role:    RoleVolunteer,
			Status:  ParticipationStatusPending,
			JoinedAt: int64(i * 100),
		}).Error)
	}

	result, err := m.List(ctx, &ListQuery{
		Pagination: Pagination{Page: 2, PageSize: 2},
		EventID:    event.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(5), result.Total)
	assert.Len(t, result.List, 2)
	assert.Equal(t, 2, result.Page)
	// 倒序分页：第二页是 user 3、2
	assert.Equal(t, uint64(3), result.List[0].UserID)
	assert.Equal(t, uint64(2), result.List[1].UserID)
}

func TestCountByEventRole(t *testing.T) {
	db := newTestDB(t)
	m := NewParticipationModel(db)
	event := mustCreateEvent(t, db, 0, 0)
	ctx := t.Context()

	for i := 1; i <= 3; i++ {
		require.NoError(t, db.Create(&Participation{
			EventID: event.ID,
			UserID:  uint64(i),
			Role:    RoleVolunteer,
			Status:  ParticipationStatusPending,
		}).Error)
	}
	require.NoError(t, db.Create(&Participation{
		EventID: event.ID,
		UserID:  10,
		Role:    RoleScholar,
		Status:  ParticipationStatusActive,
	}).Error)

	count, err := m.CountByEventRole(ctx, event.ID, RoleVolunteer)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	count, err = m.CountByEventRole(ctx, event.ID, RoleScholar)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
