// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package participant

import (
	"context"

	"admission-platform/app/admission/api/internal/logic"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"admission-platform/common/ctxdata"
	"admission-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

type UnjoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 取消报名（PENDING/ACTIVE 均可退出）
func NewUnjoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *UnjoinLogic {
	return &UnjoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Unjoin 退出活动：删除报名行并释放对应角色名额
// 退出不写拒绝名单，用户可重新报名
func (l *UnjoinLogic) Unjoin(req *types.UnjoinEventRequest) (resp *types.UnjoinEventResponse, err error) {
	userID := ctxdata.GetUserIDFromCtx(l.ctx)
	if userID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 {
		return nil, errorx.ErrInvalidParams("活动ID无效")
	}

	var eventTitle string
	err = l.svcCtx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		p, err := l.svcCtx.ParticipationModel.FindByEventUserTx(l.ctx, tx, uint64(req.EventId), uint64(userID))
		if err != nil {
			return errorx.ErrNotJoined()
		}

		rows, err := l.svcCtx.ParticipationModel.DeleteTx(l.ctx, tx, uint64(req.EventId), uint64(userID))
		if err != nil {
			return errorx.ErrDBError(err)
		}
		if rows == 0 {
			return errorx.ErrNotJoined()
		}

		if err := l.svcCtx.EventModel.DecrementCount(l.ctx, tx, uint64(req.EventId), p.Role); err != nil {
			return logic.ConvertModelError(err)
		}

		if event, err := l.svcCtx.EventModel.FindByIDTx(l.ctx, tx, uint64(req.EventId)); err == nil {
			eventTitle = event.Title
		}
		return nil
	})
	if err != nil {
		l.Errorf("取消报名失败: eventId=%d, userId=%d, err=%v", req.EventId, userID, err)
		return nil, err
	}

	l.svcCtx.Producer.PublishMemberLeft(l.ctx, uint64(req.EventId), eventTitle, uint64(userID))

	return &types.UnjoinEventResponse{Result: "success"}, nil
}
