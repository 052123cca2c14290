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

// 手动添加参与者
func AddParticipantHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.AddParticipantRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := admin.NewAddParticipantLogic(r.Context(), svcCtx)
		resp, err := l.AddParticipant(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
