package service

import (
	"errors"
	"fmt"
	"html"

	"fintrack/config"

	"gopkg.in/gomail.v2"
)

// ErrEmailDisabled 邮件服务未启用
var ErrEmailDisabled = errors.New("邮件服务未启用，请配置 FINTRACK_EMAIL_ENABLED=true")

// Mailer 认证流程使用的邮件发送接口
type Mailer interface {
	SendVerificationEmail(toEmail, name, verifyLink string) error
	SendPasswordResetEmail(toEmail, name, resetLink string) error
}

// EmailService 基于 SMTP 的邮件服务
type EmailService struct {
	cfg  *config.EmailConfig
	send func(m *gomail.Message) error
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{cfg: cfg}
	s.send = s.dialAndSend
	return s
}

// SendVerificationEmail 发送注册邮箱验证邮件，链接 24 小时内有效
func (s *EmailService) SendVerificationEmail(toEmail, name, verifyLink string) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	subject := "【FinTrack】请验证您的邮箱"
	body := s.generateVerificationEmailBody(name, verifyLink)
	return s.sendEmail(toEmail, subject, body)
}

// SendPasswordResetEmail 发送密码重置邮件，链接 1 小时内有效
func (s *EmailService) SendPasswordResetEmail(toEmail, name, resetLink string) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	subject := "【FinTrack】密码重置"
	body := s.generateResetEmailBody(name, resetLink)
	return s.sendEmail(toEmail, subject, body)
}

// SendTestEmail 发送测试邮件
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return ErrEmailDisabled
	}
	subject := "【FinTrack】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— FinTrack</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}

const emailStyle = `
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, %[1]s, %[2]s); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .btn { display: inline-block; background: linear-gradient(135deg, %[1]s, %[2]s); color: white !important; text-decoration: none; padding: 14px 40px; border-radius: 8px; font-weight: 600; margin: 20px 0; }
        .warning { background: #fff3cd; border-left: 4px solid #ffc107; padding: 15px; margin: 20px 0; border-radius: 4px; }
        .warning p { margin: 0; color: #856404; font-size: 14px; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
        .link { word-break: break-all; color: %[1]s; font-size: 12px; }`

// renderActionEmail 带一个按钮链接的通用邮件模板
func renderActionEmail(colorFrom, colorTo, name, intro, button, link, validity, ignoreHint string) string {
	name = html.EscapeString(name)
	link = html.EscapeString(link)
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>%s
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>💰 FinTrack</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>%s</p>
            <p style="text-align: center;">
                <a href="%s" class="btn">%s</a>
            </p>
            <div class="warning">
                <p>⚠️ 此链接有效期为 <strong>%s</strong>，且只能使用一次。</p>
                <p>⚠️ %s</p>
            </div>
            <p>如果按钮无法点击，请复制以下链接到浏览器打开：</p>
            <p class="link">%s</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© FinTrack - 您的个人财务管理助手</p>
        </div>
    </div>
</body>
</html>
`, fmt.Sprintf(emailStyle, colorFrom, colorTo), name, intro, link, button, validity, ignoreHint, link)
}

// generateVerificationEmailBody 生成邮箱验证邮件内容
func (s *EmailService) generateVerificationEmailBody(name, verifyLink string) string {
	return renderActionEmail("#10b981", "#059669", name,
		"感谢您注册 FinTrack！请点击下方按钮验证您的邮箱，验证后即可登录：",
		"验证邮箱", verifyLink, "24 小时", "如果这不是您本人的操作，请忽略此邮件。")
}

// generateResetEmailBody 生成重置邮件内容
func (s *EmailService) generateResetEmailBody(name, resetLink string) string {
	return renderActionEmail("#2563eb", "#1d4ed8", name,
		"我们收到了您的密码重置请求。请点击下方按钮重置您的密码：",
		"重置密码", resetLink, "1 小时", "如果您没有请求重置密码，请忽略此邮件。")
}

// sendEmail 组装并发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	if err := s.send(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}
	return nil
}

func (s *EmailService) dialAndSend(m *gomail.Message) error {
	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	return d.DialAndSend(m)
}
