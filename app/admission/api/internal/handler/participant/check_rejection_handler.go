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

// 查询本人拒绝记录
func CheckRejectionHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CheckRejectionRequest
		if err := httpx.Parse(r, &req); err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
			return
		}

		l := participant.NewCheckRejectionLogic(r.Context(), svcCtx)
		resp, err := l.CheckRejection(&req)
		if err != nil {
			httpx.ErrorCtx(r.Context(), w, err)
		} else {
			httpx.OkJsonCtx(r.Context(), w, resp)
		}
	}
}
