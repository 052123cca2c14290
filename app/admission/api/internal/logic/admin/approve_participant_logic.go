// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package admin

import (
	"context"

	"admission-platform/app/admission/api/internal/logic"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/ctxdata"
	"admission-platform/common/errorx"
	"admission-platform/common/messaging"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

type ApproveParticipantLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 审批通过报名
func NewApproveParticipantLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ApproveParticipantLogic {
	return &ApproveParticipantLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// ApproveParticipant 将 PENDING 提升为 ACTIVE
// 名额在报名时已占位，审批不再动计数器
func (l *ApproveParticipantLogic) ApproveParticipant(req *types.ApproveParticipantRequest) (resp *types.ApproveParticipantResponse, err error) {
	adminID := ctxdata.GetUserIDFromCtx(l.ctx)
	if adminID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 || req.UserId <= 0 {
		return nil, errorx.ErrInvalidParams("参数无效")
	}

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
		if p.Status != model.ParticipationStatusPending {
			return errorx.ErrAlreadyProcessed()
		}

		rows, err := l.svcCtx.ParticipationModel.PromoteTx(l.ctx, tx, uint64(req.EventId), uint64(req.UserId))
		if err != nil {
			return errorx.ErrDBError(err)
		}
		if rows == 0 {
			// 并发审批：另一请求抢先处理
			return errorx.ErrAlreadyProcessed()
		}
		return nil
	})
	if err != nil {
		l.Errorf("审批失败: eventId=%d, userId=%d, adminId=%d, err=%v", req.EventId, req.UserId, adminID, err)
		return nil, err
	}

	actor := l.svcCtx.UserModel.FindActor(l.ctx, uint64(adminID))
	l.svcCtx.Producer.PublishMemberApproved(l.ctx, uint64(req.EventId), eventTitle, uint64(req.UserId), messaging.Actor{
		ID:     actor.ID,
		Name:   actor.Name,
		Avatar: actor.Avatar,
	})

	return &types.ApproveParticipantResponse{
		Status: model.ParticipationStatusText[model.ParticipationStatusActive],
	}, nil
}
