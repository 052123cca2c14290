// Code scaffolded by goctl. Safe to edit.
// goctl 1.9.2

package participant

import (
	"net/http"

	"admission-platform/app/admission/api/internal/logic/participant"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/app/admission/api/internal/types"
	"github.com/zeromicro/go-zero/rest/httpx"
)

// 查询本人报名状态
func CheckParticipationHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CheckParticipationRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := participant.NewCheckParticipationLogic(r.Context(), svcCtx)
		resp, err := l.CheckParticipation(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
