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

type CheckRejectionLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 查询本人是否被该活动拒绝
func NewCheckRejectionLogic(ctx context.Context, svcCtx *svc.ServiceContext) *CheckRejectionLogic {
	return &CheckRejectionLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *CheckRejectionLogic) CheckRejection(req *types.CheckRejectionRequest) (resp *types.CheckRejectionResponse, err error) {
	userID := ctxdata.GetUserIDFromCtx(l.ctx)
	if userID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 {
		return nil, errorx.ErrInvalidParams("活动ID无效")
	}

	rec, err := l.svcCtx.RejectionModel.FindByEventUser(l.ctx, uint64(req.EventId), uint64(userID))
	if err != nil {
		if errors.Is(err, model.ErrRejectionNotFound) {
			return &types.CheckRejectionResponse{IsRejected: false}, nil
		}
		l.Errorf("查询拒绝记录失败: eventId=%d, userId=%d, err=%v", req.EventId, userID, err)
		return nil, errorx.ErrDBError(err)
	}

	return &types.CheckRejectionResponse{
		IsRejected: true,
		Reason:     rec.Reason,
		RejectedAt: rec.UpdatedAt,
	}, nil
}
