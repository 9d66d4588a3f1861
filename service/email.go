package service

import (
	"fmt"

	"expensetracker/budget"
	"expensetracker/config"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// Enabled 是否启用邮件
func (s *EmailService) Enabled() bool {
	return s.cfg != nil && s.cfg.Enabled
}

// SendBudgetAlert 发送超出月预算提醒
func (s *EmailService) SendBudgetAlert(toEmail, name string, st budget.Stats) error {
	if !s.Enabled() {
		return fmt.Errorf("email service disabled, set EXPENSE_EMAIL_ENABLED=true")
	}
	subject := "[Expense Tracker] You have exceeded your monthly budget"
	return s.sendEmail(toEmail, subject, s.generateBudgetAlertBody(name, st))
}

// generateBudgetAlertBody 生成超预算提醒内容
func (s *EmailService) generateBudgetAlertBody(name string, st budget.Stats) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; }
        .header { background: linear-gradient(135deg, #ef4444, #b91c1c); color: white; padding: 30px; text-align: center; }
        .content { padding: 30px; color: #333; line-height: 1.8; }
        table { width: 100%%; border-collapse: collapse; }
        td { padding: 8px 0; border-bottom: 1px solid #eee; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header"><h1>Budget alert</h1></div>
        <div class="content">
            <p>Hi <strong>%s</strong>,</p>
            <p>Your spending this month has gone over your %s budget.</p>
            <table>
                <tr><td>Budget</td><td>%.2f</td></tr>
                <tr><td>Spent</td><td>%.2f</td></tr>
                <tr><td>Over by</td><td>%.2f</td></tr>
            </table>
        </div>
        <div class="footer"><p>This message was sent automatically, please do not reply.</p></div>
    </div>
</body>
</html>
`, name, st.Period, st.Budget, st.Spent, -st.Remaining)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("send email: %w", err)
	}
	return nil
}
