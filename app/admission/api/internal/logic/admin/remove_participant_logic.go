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

type RemoveParticipantLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 移出活动（非惩罚性）
func NewRemoveParticipantLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RemoveParticipantLogic {
	return &RemoveParticipantLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RemoveParticipant 移出：删除报名行并释放名额
// 与拒绝的区别：不写拒绝名单，被移出的用户可再次报名
func (l *RemoveParticipantLogic) RemoveParticipant(req *types.RemoveParticipantRequest) (resp *types.RemoveParticipantResponse, err error) {
	adminID := ctxdata.GetUserIDFromCtx(l.ctx)
	if adminID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 || req.UserId <= 0 {
		return nil, errorx.ErrInvalidParams("参数无效")
	}
	reason := strings.TrimSpace(req.Reason)

	var eventTitle string
	err = l.svcCtx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		event, err := l.svcCtx.EventModel.FindByIDTx(l.ctx, tx, uint64(req.EventId))
		if err != nil {
			return logic.ConvertModelError(err)
		}
		eventTitle = event.Title

		p, err := l.svcCtx.ParticipationModel.FindByEventUserTx(l.ctx, tx, uint64(req.EventId), uint64(req.UserId))
		if err != nil {
			return logic.ConvertModelError(err)
		}

		rows, err := l.svcCtx.ParticipationModel.DeleteTx(l.ctx, tx, uint64(req.EventId), uint64(req.UserId))
		if err != nil {
			return errorx.ErrDBError(err)
		}
		if rows == 0 {
			return errorx.ErrAlreadyProcessed()
		}

		return logic.ConvertModelError(l.svcCtx.EventModel.DecrementCount(l.ctx, tx, uint64(req.EventId), p.Role))
	})
	if err != nil {
		l.Errorf("移出失败: eventId=%d, userId=%d, adminId=%d, err=%v", req.EventId, req.UserId, adminID, err)
		return nil, err
	}

	actor := l.svcCtx.UserModel.FindActor(l.ctx, uint64(adminID))
	l.svcCtx.Producer.PublishMemberRemoved(l.ctx, uint64(req.EventId), eventTitle, uint64(req.UserId), messaging.Actor{
		ID:     actor.ID,
		Name:   actor.Name,
		Avatar: actor.Avatar,
	}, reason)

	return &types.RemoveParticipantResponse{Result: "success"}, nil
}
