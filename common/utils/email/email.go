package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
)

// Gateway 邮件网关接口
// 所有发送均为尽力而为：失败由调用方记录，不影响已提交的业务事务
type Gateway interface {
	// SendJoinPendingEmail 报名已提交，等待审批
	SendJoinPendingEmail(ctx context.Context, to, name, eventTitle string) error
	// SendApprovalEmail 报名审批通过
	SendApprovalEmail(ctx context.Context, to, name, eventTitle string) error
	// SendRejectionEmail 报名被拒绝（附原因）
	SendRejectionEmail(ctx context.Context, to, name, eventTitle, reason string) error
	// SendRemovalEmail 被移出活动（非惩罚性，附原因）
	SendRemovalEmail(ctx context.Context, to, name, eventTitle, reason string) error
}

type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	FromName string
}

// smtpGateway 基于 SMTP 的邮件网关实现
type smtpGateway struct {
	cfg Config
}

// NewSMTPGateway 创建 SMTP 邮件网关
func NewSMTPGateway(cfg Config) Gateway {
	return &smtpGateway{cfg: cfg}
}

func (g *smtpGateway) SendJoinPendingEmail(ctx context.Context, to, name, eventTitle string) error {
	body := fmt.Sprintf("%s，您好：\r\n\r\n您报名参加「%s」的申请已提交，请耐心等待工作人员审批。", name, eventTitle)
	return g.send(to, fmt.Sprintf("「%s」报名申请已提交", eventTitle), body)
}

func (g *smtpGateway) SendApprovalEmail(ctx context.Context, to, name, eventTitle string) error {
	body := fmt.Sprintf("%s，您好：\r\n\r\n恭喜！您报名参加「%s」的申请已通过审批。", name, eventTitle)
	return g.send(to, fmt.Sprintf("「%s」报名审批通过", eventTitle), body)
}

func (g *smtpGateway) SendRejectionEmail(ctx context.Context, to, name, eventTitle, reason string) error {
	body := fmt.Sprintf("%s，您好：\r\n\r\n很遗憾，您报名参加「%s」的申请未通过审批。", name, eventTitle)
	if reason != "" {
		body += fmt.Sprintf("\r\n原因：%s", reason)
	}
	return g.send(to, fmt.Sprintf("「%s」报名审批结果", eventTitle), body)
}

func (g *smtpGateway) SendRemovalEmail(ctx context.Context, to, name, eventTitle, reason string) error {
	body := fmt.Sprintf("%s，您好：\r\n\r\n您已被移出活动「%s」。如有疑问请联系活动工作人员。", name, eventTitle)
	if reason != "" {
		body += fmt.Sprintf("\r\n原因：%s", reason)
	}
	return g.send(to, fmt.Sprintf("「%s」参与状态变更", eventTitle), body)
}

// send 组装并发送邮件
func (g *smtpGateway) send(toEmail, subject, body string) error {
	cfg := g.cfg

	// header
	header := make(map[string]string)
	header["From"] = fmt.Sprintf("%s <%s>", cfg.FromName, cfg.Username)
	header["To"] = toEmail
	header["Subject"] = subject
	header["Content-Type"] = "text/plain; charset=UTF-8"

	message := ""
	for k, v := range header {
		message += fmt.Sprintf("%s: %s\r\n", k, v)
	}
	message += "\r\n" + body

	auth := smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)

	// SSL端口465需要使用tls连接
	if cfg.Port == 465 {
		tlsConfig := &tls.Config{
			InsecureSkipVerify: true,
			ServerName:         cfg.Host,
		}

		conn, err := tls.Dial("tcp", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port), tlsConfig)
		if err != nil {
			return err
		}

		client, err := smtp.NewClient(conn, cfg.Host)
		if err != nil {
			return err
		}
		defer client.Quit()

		if err = client.Auth(auth); err != nil {
			return err
		}
		if err = client.Mail(cfg.Username); err != nil {
			return err
		}
		if err = client.Rcpt(toEmail); err != nil {
			return err
		}

		w, err := client.Data()
		if err != nil {
			return err
		}
		if _, err = w.Write([]byte(message)); err != nil {
			return err
		}
		return w.Close()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	return smtp.SendMail(addr, auth, cfg.Username, []string{toEmail}, []byte(message))
}
