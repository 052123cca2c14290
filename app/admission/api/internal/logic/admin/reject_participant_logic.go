// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package admin

import (
	"context"
	"strings"

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

type RejectParticipantLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 拒绝报名
func NewRejectParticipantLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RejectParticipantLogic {
	return &RejectParticipantLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// RejectParticipant 拒绝：删除报名行、释放名额、写入拒绝名单
// 拒绝名单按 (event, user) 幂等覆盖，之后该用户无法再报名本活动
func (l *RejectParticipantLogic) RejectParticipant(req *types.RejectParticipantRequest) (resp *types.RejectParticipantResponse, err error) {
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

		if err := l.svcCtx.EventModel.DecrementCount(l.ctx, tx, uint64(req.EventId), p.Role); err != nil {
			return logic.ConvertModelError(err)
		}

		return logic.ConvertModelError(l.svcCtx.RejectionModel.UpsertTx(l.ctx, tx, &model.RejectionRecord{
			EventID: uint64(req.EventId),
			UserID:  uint64(req.UserId),
			AdminID: uint64(adminID),
			Reason:  reason,
		}))
	})
	if err != nil {
		l.Errorf("拒绝报名失败: eventId=%d, userId=%d, adminId=%d, err=%v", req.EventId, req.UserId, adminID, err)
		return nil, err
	}

	actor := l.svcCtx.UserModel.FindActor(l.ctx, uint64(adminID))
	l.svcCtx.Producer.PublishMemberRejected(l.ctx, uint64(req.EventId), eventTitle, uint64(req.UserId), messaging.Actor{
		ID:     actor.ID,
		Name:   actor.Name,
		Avatar: actor.Avatar,
	}, reason)

	return &types.RejectParticipantResponse{Result: "success"}, nil
}
