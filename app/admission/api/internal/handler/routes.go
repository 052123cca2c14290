// ============================================================================
// 路由注册
// ============================================================================
//
// 功能说明：
//   集中管理准入服务的 HTTP 路由：
//   - 参与者路由（需登录）
//   - 管理路由（需管理权限）
//   - 中间件应用顺序
//
// 路由命名规范：
//   - RESTful 风格
//   - 资源名使用复数：/events, /participants
//   - 动作使用 HTTP 方法：GET/POST/PUT/DELETE
//
// 中间件执行顺序：
//   RequestID -> [ParticipantAuth | StaffAuth] -> Handler
//
// ============================================================================

package handler

import (
	"net/http"

	"admission-platform/app/admission/api/internal/handler/admin"
	"admission-platform/app/admission/api/internal/handler/participant"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/common/middleware"

	"github.com/zeromicro/go-zero/rest"
)

// RegisterHandlers 注册所有路由
func RegisterHandlers(server *rest.Server, ctx *svc.ServiceContext) {
	// ==================== 全局中间件 ====================
	requestID := middleware.NewRequestIDMiddleware()
	server.Use(func(next http.HandlerFunc) http.HandlerFunc {
		return requestID.Handle(next)
	})

	// ==================== 参与者路由（需登录） ====================
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{ctx.ParticipantAuth},
			[]rest.Route{
				// 报名活动
				{
					Method:  http.MethodPost,
					Path:    "/api/v1/events/:eventId/join",
					Handler: participant.JoinHandler(ctx),
				},
				// 取消报名
				{
					Method:  http.MethodPost,
					Path:    "/api/v1/events/:eventId/unjoin",
					Handler: participant.UnjoinHandler(ctx),
				},
				// 查询本人报名状态
				{
					Method:  http.MethodGet,
					Path:    "/api/v1/events/:eventId/check-participation",
					Handler: participant.CheckParticipationHandler(ctx),
				},
				// 查询本人拒绝记录
				{
					Method:  http.MethodGet,
					Path:    "/api/v1/events/:eventId/check-rejection",
					Handler: participant.CheckRejectionHandler(ctx),
				},
			}...,
		),
	)

	// ==================== 管理路由（需管理权限） ====================
	server.AddRoutes(
		rest.WithMiddlewares(
			[]rest.Middleware{ctx.StaffAuth},
			[]rest.Route{
				// 参与者列表
				{
					Method:  http.MethodGet,
					Path:    "/api/v1/events/:eventId/participants",
					Handler: admin.ListParticipantsHandler(ctx),
				},
				// 手动添加参与者
				{
					Method:  http.MethodPost,
					Path:    "/api/v1/events/:eventId/participants",
					Handler: admin.AddParticipantHandler(ctx),
				},
				// 审批通过
				{
					Method:  http.MethodPut,
					Path:    "/api/v1/events/:eventId/participants/:userId/approve",
					Handler: admin.ApproveParticipantHandler(ctx),
				},
				// 拒绝报名
				{
					Method:  http.MethodPut,
					Path:    "/api/v1/events/:eventId/participants/:userId/reject",
					Handler: admin.RejectParticipantHandler(ctx),
				},
				// 移出活动
				{
					Method:  http.MethodDelete,
					Path:    "/api/v1/events/:eventId/participants/:userId",
					Handler: admin.RemoveParticipantHandler(ctx),
				},
				// 批量移出
				{
					Method:  http.MethodDelete,
					Path:    "/api/v1/events/:eventId/participants",
					Handler: admin.BulkRemoveParticipantsHandler(ctx),
				},
			}...,
		),
	)
}
