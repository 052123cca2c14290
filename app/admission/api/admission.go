package main

import (
	"flag"
	"fmt"

	"admission-platform/app/admission/api/internal/config"
	"admission-platform/app/admission/api/internal/handler"
	"admission-platform/app/admission/api/internal/svc"
	"admission-platform/common/response"

	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/rest"
)

var configFile = flag.String("f", "etc/admission-api.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// ============================================================================
	// 重要：设置全局错误处理器（必须在 server.Start() 之前）
	// ============================================================================
	response.SetupGlobalErrorHandler()
	// ============================================================================

	// 1. 加载配置文件
	var c config.Config
	conf.MustLoad(*configFile, &c)

	// 2. 创建 REST 服务器
	server := rest.MustNewServer(c.RestConf)
	defer server.Stop()

	// 3. 初始化服务上下文
	ctx := svc.NewServiceContext(c)

	// 4. 注册路由处理器
	handler.RegisterHandlers(server, ctx)

	// 5. 启动服务
	fmt.Printf("Starting admission-api server at %s:%d...\n", c.Host, c.Port)
	server.Start()
}

// 活动准入服务 API 入口
// 说明：
//   admission-api 是准入服务的 HTTP 接口层，负责：
//   - 报名 / 取消报名
//   - 审批 / 拒绝 / 移出 / 手动添加
//   - 报名状态与拒绝记录查询
//
// 启动命令：
//   go run admission.go -f etc/admission-api.yaml
//
// 代码生成：
//   cd app/admission/api
//   goctl api go -api desc/admission.api -dir . -style go_zero
//
