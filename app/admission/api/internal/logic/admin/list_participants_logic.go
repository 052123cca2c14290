// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package admin

import (
	"context"

	"admission-platform/app/admission/api/internal/logic"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"admission-platform/app/admission/model"
	"admission-platform/common/errorx"

	"github.com/zeromicro/go-zero/core/logx"
)

type ListParticipantsLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// 参与者列表（分页 + 过滤）
func NewListParticipantsLogic(ctx context.Context, svcCtx *svc.ServiceContext) *ListParticipantsLogic {
	return &ListParticipantsLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *ListParticipantsLogic) ListParticipants(req *types.ListParticipantsRequest) (resp *types.ListParticipantsResponse, err error) {
	if req.EventId <= 0 {
		return nil, errorx.ErrInvalidParams("活动ID无效")
	}

	// 校验活动存在，避免对不存在的活动返回空列表
	if _, err := l.svcCtx.EventModel.FindByID(l.ctx, uint64(req.EventId)); err != nil {
		return nil, logic.ConvertModelError(err)
	}

	var role int8
	if req.Role != "" {
		parsed, ok := model.ParseParticipantRole(req.Role)
		if !ok {
			return nil, errorx.ErrInvalidRole()
		}
		role = parsed
	}

	var status int8
	switch req.Status {
	case "":
	case "PENDING":
		status = model.ParticipationStatusPending
	case "ACTIVE":
		status = model.ParticipationStatusActive
	default:
		return nil, errorx.ErrInvalidParams("状态无效")
	}

	query := &model.ListQuery{
		Pagination: model.Pagination{Page: req.Page, PageSize: req.PageSize},
		EventID:    uint64(req.EventId),
		Role:       role,
		Status:     status,
	}
	if req.JoinedStart > 0 || req.JoinedEnd > 0 {
		query.JoinedRange = &model.TimeRange{Start: req.JoinedStart, End: req.JoinedEnd}
	}

	result, err := l.svcCtx.ParticipationModel.List(l.ctx, query)
	if err != nil {
		l.Errorf("参与者列表查询失败: eventId=%d, err=%v", req.EventId, err)
		return nil, errorx.ErrDBError(err)
	}

	list := make([]types.ParticipantItem, 0, len(result.List))
	for i := range result.List {
		p := &result.List[i]
		actor := l.svcCtx.UserModel.FindActor(l.ctx, p.UserID)
		list = append(list, types.ParticipantItem{
			UserId:   int64(p.UserID),
			Username: actor.Name,
			Avatar:   actor.Avatar,
			Role:     model.RoleText[p.Role],
			Status:   p.StatusText(),
			JoinedAt: p.JoinedAt,
		})
	}

	return &types.ListParticipantsResponse{
		List:     list,
		Total:    result.Total,
		Page:     result.Page,
		PageSize: result.PageSize,
	}, nil
}
