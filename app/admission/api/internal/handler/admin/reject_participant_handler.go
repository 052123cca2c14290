// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package admin

import (
	"net/http"

	"admission-platform/app/admission/api/internal/logic/admin"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// 拒绝报名
func RejectParticipantHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RejectParticipantRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := admin.NewRejectParticipantLogic(r.Context(), svcCtx)
		resp, err := l.RejectParticipant(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
