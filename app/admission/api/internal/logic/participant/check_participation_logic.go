// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package participant

import (
	"context"
	"errors"

	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/ctxdata"
	"admission-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type CheckParticipationLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 查询本人报名状态
func NewCheckParticipationLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CheckParticipationLogic {
	return &CheckParticipationLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// CheckParticipation 无记录返回 NONE，不报错
func (l *CheckParticipationLogic) CheckParticipation(req *types.CheckParticipationRequest) (resp *types.CheckParticipationResponse, err error) {
	userID := ctxdata.GetUserIDFromCtx(l.ctx)
	if userID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 {
		return nil, errorx.ErrInvalidParams("活动ID无效")
	}

	p, err := l.svcCtx.ParticipationModel.FindByEventUser(l.ctx, uint64(req.EventId), uint64(userID))
	if err != nil {
		if errors.Is(err, model.ErrParticipationNotFound) {
			return &types.CheckParticipationResponse{HasJoined: false, Status: "NONE"}, nil
		}
		l.Errorf("查询报名状态失败: eventId=%d, userId=%d, err=%v", req.EventId, userID, err)
		return nil, errorx.ErrDBError(err)
	}

	return &types.CheckParticipationResponse{
		HasJoined: true,
		Status:    p.StatusText(),
		Role:      model.RoleText[p.Role],
		JoinedAt:  p.JoinedAt,
	}, nil
}
