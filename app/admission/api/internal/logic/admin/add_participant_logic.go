// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package admin

import (
	"context"
	"errors"

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

type AddParticipantLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 手动添加参与者（跳过审批）
func NewAddParticipantLogic(ctx context.Context, svcCtx *svc.ServiceContext) *AddParticipantLogic {
	return &AddParticipantLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// AddParticipant 管理员直接把用户加为 ACTIVE
// 走与报名相同的准入检查：活动开放、不在拒绝名单、名额未满、无重复
func (l *AddParticipantLogic) AddParticipant(req *types.AddParticipantRequest) (resp *types.AddParticipantResponse, err error) {
	adminID := ctxdata.GetUserIDFromCtx(l.ctx)
	if adminID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 || req.UserId <= 0 {
		return nil, errorx.ErrInvalidParams("参数无效")
	}
	role, ok := model.ParseParticipantRole(req.Role)
	if !ok {
		return nil, errorx.ErrInvalidRole()
	}

	var eventTitle string
	err = l.svcCtx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
		event, err := l.svcCtx.EventModel.FindByIDTx(l.ctx, tx, uint64(req.EventId))
		if err != nil {
			return logic.ConvertModelError(err)
		}
		if !event.IsOpen() {
			return errorx.ErrEventClosed()
		}
		eventTitle = event.Title

		rec, err := l.svcCtx.RejectionModel.FindByEventUserTx(l.ctx, tx, uint64(req.EventId), uint64(req.UserId))
		if err == nil {
			return errorx.ErrBlocked(rec.Reason)
		}
		if !errors.Is(err, model.ErrRejectionNotFound) {
			return errorx.ErrDBError(err)
		}

		if err := l.svcCtx.EventModel.IncrementCount(
			l.ctx, tx, uint64(req.EventId), role,
			l.svcCtx.Config.Admission.EnforceCapacity,
		); err != nil {
			return logic.ConvertModelError(err)
		}

		return logic.ConvertModelError(l.svcCtx.ParticipationModel.CreateTx(l.ctx, tx, &model.Participation{
			EventID: uint64(req.EventId),
			UserID:  uint64(req.UserId),
			Role:    role,
			Status:  model.ParticipationStatusActive,
		}))
	})
	if err != nil {
		l.Errorf("手动添加失败: eventId=%d, userId=%d, adminId=%d, err=%v", req.EventId, req.UserId, adminID, err)
		return nil, err
	}

	actor := l.svcCtx.UserModel.FindActor(l.ctx, uint64(adminID))
	l.svcCtx.Producer.PublishMemberApproved(l.ctx, uint64(req.EventId), eventTitle, uint64(req.UserId), messaging.Actor{
		ID:     actor.ID,
		Name:   actor.Name,
		Avatar: actor.Avatar,
	})

	return &types.AddParticipantResponse{
		Status: model.ParticipationStatusText[model.ParticipationStatusActive],
	}, nil
}
