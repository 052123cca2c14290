// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package admin

import (
	"context"
	"strings"

	"admission-platform/app/admission/api/internal/logic"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"admission-platform/common/ctxdata"
	"admission-platform/common/errorx"
	"admission-platform/common/messaging"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

type BulkRemoveParticipantsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 批量移出活动
func NewBulkRemoveParticipantsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *BulkRemoveParticipantsLogic {
	return &BulkRemoveParticipantsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// BulkRemoveParticipants 逐个用户独立事务，单个失败不影响其余
// 返回成功数量与逐条失败原因
func (l *BulkRemoveParticipantsLogic) BulkRemoveParticipants(req *types.BulkRemoveParticipantsRequest) (resp *types.BulkRemoveParticipantsResponse, err error) {
	adminID := ctxdata.GetUserIDFromCtx(l.ctx)
	if adminID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 {
		return nil, errorx.ErrInvalidParams("活动ID无效")
	}
	if len(req.UserIds) == 0 {
		return nil, errorx.ErrInvalidParams("用户列表不能为空")
	}
	reason := strings.TrimSpace(req.Reason)

	event, err := l.svcCtx.EventModel.FindByID(l.ctx, uint64(req.EventId))
	if err != nil {
		return nil, logic.ConvertModelError(err)
	}

	actor := l.svcCtx.UserModel.FindActor(l.ctx, uint64(adminID))
	mqActor := messaging.Actor{ID: actor.ID, Name: actor.Name, Avatar: actor.Avatar}

	resp = &types.BulkRemoveParticipantsResponse{
		Failures: []types.BulkRemoveFailure{},
	}

	for _, userID := range req.UserIds {
		if userID <= 0 {
			resp.Failures = append(resp.Failures, types.BulkRemoveFailure{
				UserId: userID,
				Reason: "用户ID无效",
			})
			continue
		}

		removeErr := l.removeOne(uint64(req.EventId), uint64(userID))
		if removeErr != nil {
			l.Errorf("批量移出单条失败: eventId=%d, userId=%d, err=%v", req.EventId, userID, removeErr)
			resp.Failures = append(resp.Failures, types.BulkRemoveFailure{
				UserId: userID,
				Reason: errorx.FromError(removeErr).Message,
			})
			continue
		}

		resp.RemovedCount++
		l.svcCtx.Producer.PublishMemberRemoved(l.ctx, uint64(req.EventId), event.Title, uint64(userID), mqActor, reason)
	}

	return resp, nil
}

// removeOne 单个用户的移出事务
func (l *BulkRemoveParticipantsLogic) removeOne(eventID, userID uint64) error {
	return l.svcCtx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		p, err := l.svcCtx.ParticipationModel.FindByEventUserTx(l.ctx, tx, eventID, userID)
		if err != nil {
			return logic.ConvertModelError(err)
		}

		rows, err := l.svcCtx.ParticipationModel.DeleteTx(l.ctx, tx, eventID, userID)
		if err != nil {
			return errorx.ErrDBError(err)
		}
		if rows == 0 {
			return errorx.ErrAlreadyProcessed()
		}

		return logic.ConvertModelError(l.svcCtx.EventModel.DecrementCount(l.ctx, tx, eventID, p.Role))
	})
}
