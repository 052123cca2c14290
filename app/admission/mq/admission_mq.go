package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"admission-platform/app/admission/mq/consumer"
	"admission-platform/app/admission/mq/internal/config"
	"admission-platform/app/admission/mq/internal/svc"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/zeromicro/go-zero/core/conf"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/sync/errgroup"
)

var configFile = flag.String("f", "etc/admission-mq.yaml", "配置文件路径")

func main() {
	flag.Parse()

	// 加载配置
	var c config.Config
	conf.MustLoad(*configFile, &c)

	// 初始化日志
	logx.MustSetup(logx.LogConf{
		ServiceName: c.Name,
		Mode:        c.Mode,
	})
	defer logx.Close()

	// 创建服务上下文
	svcCtx := svc.NewServiceContext(c)
	defer svcCtx.MsgClient.Close()

	// 注册消费者
	registerConsumers(svcCtx)

	// 监听系统信号
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metricsServer := &http.Server{
		Addr:    c.MetricsAddr,
		Handler: promhttp.Handler(),
	}

	g, gCtx := errgroup.WithContext(ctx)

	// 消息路由
	g.Go(func() error {
		logx.Info("通知分发服务启动中...")
		return svcCtx.MsgClient.Run(gCtx)
	})

	// Prometheus 指标
	g.Go(func() error {
		logx.Infof("指标服务监听 %s/metrics", c.MetricsAddr)
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// 收到信号后关闭指标服务
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return metricsServer.Shutdown(shutdownCtx)
	})

	// 等待 Router 启动
	<-svcCtx.MsgClient.Running()
	logx.Info("通知分发服务已启动")

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logx.Errorf("服务退出: %v", err)
	}
	logx.Info("通知分发服务已关闭")
}

// registerConsumers 注册所有消费者
func registerConsumers(svcCtx *svc.ServiceContext) {
	consumer.NewMemberJoinedConsumer(svcCtx.UserModel, svcCtx.NotificationModel, svcCtx.Email).Subscribe(svcCtx.MsgClient)
	consumer.NewMemberApprovedConsumer(svcCtx.UserModel, svcCtx.NotificationModel, svcCtx.Email).Subscribe(svcCtx.MsgClient)
	consumer.NewMemberRejectedConsumer(svcCtx.UserModel, svcCtx.NotificationModel, svcCtx.Email).Subscribe(svcCtx.MsgClient)
	consumer.NewMemberRemovedConsumer(svcCtx.UserModel, svcCtx.NotificationModel, svcCtx.Email).Subscribe(svcCtx.MsgClient)
	consumer.NewMemberLeftConsumer(svcCtx.UserModel, svcCtx.NotificationModel).Subscribe(svcCtx.MsgClient)

	fmt.Println("✅ 已注册 5 个消费者:")
	fmt.Println("  - admission.member.joined   -> admission-notify-join-pending")
	fmt.Println("  - admission.member.approved -> admission-notify-approved")
	fmt.Println("  - admission.member.rejected -> admission-notify-rejected")
	fmt.Println("  - admission.member.removed  -> admission-notify-removed")
	fmt.Println("  - admission.member.left     -> admission-notify-member-left")
}
