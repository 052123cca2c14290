// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package participant

import (
	"context"
	"errors"

	"admission-platform/app/admission/api/internal/logic"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/ctxdata"
	"admission-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
	"gorm.io/gorm"
)

type JoinLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 报名活动（进入待审批）
func NewJoinLogic(ctx context.Context, svcCtx *svc.ServiceContext) *JoinLogic {
	return &JoinLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

// Join 报名流程（单事务）：
//  1. 活动存在且开放报名
//  2. 拒绝名单拦截（按活动隔离，带原因）
//  3. 名额计数 +1（上限校验受 EnforceCapacity 控制）
//  4. 写入 PENDING 报名行（唯一索引挡并发重复）
//
// 提交后异步发布报名事件，发布失败不影响报名结果
func (l *JoinLogic) Join(req *types.JoinEventRequest) (resp *types.JoinEventResponse, err error) {
	userID := ctxdata.GetUserIDFromCtx(l.ctx)
	if userID <= 0 {
		return nil, errorx.ErrUnauthorized()
	}
	if req.EventId <= 0 {
		return nil, errorx.ErrInvalidParams("活动ID无效")
	}
	role, ok := model.ParseParticipantRole(req.Role)
	if !ok {
		return nil, errorx.ErrInvalidRole()
	}

	// ==================== 第一步：限流检查 ====================
	if l.svcCtx.JoinLimiter != nil && !l.svcCtx.JoinLimiter.AllowCtx(l.ctx) {
		return nil, errorx.ErrTooManyRequests()
	}

	// ==================== 第二步：熔断保护下的准入事务 ====================
	var eventTitle string
	err = l.svcCtx.JoinBreaker.DoWithFallbackAcceptable(
		func() error {
			return l.svcCtx.DB.WithContext(l.ctx).Transaction(func(tx *gorm.DB) error {
				event, err := l.svcCtx.EventModel.FindByIDTx(l.ctx, tx, uint64(req.EventId))
				if err != nil {
					return logic.ConvertModelError(err)
				}
				if !event.IsOpen() {
					return errorx.ErrEventClosed()
				}
				eventTitle = event.Title

				// 拒绝名单：一旦被拒，该活动永久禁止再报名
				rec, err := l.svcCtx.RejectionModel.FindByEventUserTx(l.ctx, tx, uint64(req.EventId), uint64(userID))
				if err == nil {
					return errorx.ErrBlocked(rec.Reason)
				}
				if !errors.Is(err, model.ErrRejectionNotFound) {
					return errorx.ErrDBError(err)
				}

				// 名额计数先于报名行写入，满员在同一事务内回滚
				if err := l.svcCtx.EventModel.IncrementCount(
					l.ctx, tx, uint64(req.EventId), role,
					l.svcCtx.Config.Admission.EnforceCapacity,
				); err != nil {
					return logic.ConvertModelError(err)
				}

				return logic.ConvertModelError(l.svcCtx.ParticipationModel.CreateTx(l.ctx, tx, &model.Participation{
					EventID: uint64(req.EventId),
					UserID:  uint64(userID),
					Role:    role,
					Status:  model.ParticipationStatusPending,
				}))
			})
		},
		func(err error) error {
			return errorx.New(errorx.CodeServiceUnavailable)
		},
		logic.Acceptable,
	)
	if err != nil {
		l.Errorf("报名失败: eventId=%d, userId=%d, err=%v", req.EventId, userID, err)
		return nil, err
	}

	// ==================== 第三步：事务提交后发布事件 ====================
	l.svcCtx.Producer.PublishMemberJoined(l.ctx, uint64(req.EventId), eventTitle, uint64(userID), role)

	return &types.JoinEventResponse{
		Status: model.ParticipationStatusText[model.ParticipationStatusPending],
	}, nil
}
