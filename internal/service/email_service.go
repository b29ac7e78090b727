package service

import (
	"github.com/venturelab/venturehub/internal/pkg"
	"github.com/venturelab/venturehub/internal/repository/redis"
)

type EmailService struct {
	emailCfg pkg.SMTPConfig
	rds      *redis.EmailCodeRepository
}

func NewEmailService(cfg pkg.SMTPConfig) *EmailService {
	return &EmailService{emailCfg: cfg, rds: &redis.EmailCodeRepository{}}
}

// SendCode 两阶段写码：先 pending，邮件发出去之后才转 confirmed，
// 避免邮件没发出去验证码却已可用。
func (s *EmailService) SendCode(scope, email string) error {
	code, err := pkg.NewVerifyCode(6)
	if err != nil {
		return err
	}
	if err = s.rds.SetPending(scope, email, code); err != nil {
		return err
	}

	subject := "注册验证"
	title := "注册验证码"
	if scope == redis.ScopeReset {
		subject = "重置密码"
		title = "密码重置验证码"
	}
	html := pkg.EmailCodeHTML(subject, code, redis.DefaultEmailCodeTTL)
	if err = pkg.SendEmail(s.emailCfg, email, title, html); err != nil {
		return err
	}

	if err = s.rds.Confirm(scope, email); err != nil {
		_ = s.rds.DeletePending(scope, email)
		return err
	}
	return nil
}

// VerifyCode 校验验证码并一次性删除
func (s *EmailService) VerifyCode(scope, email, code string) (bool, error) {
	val, err := s.rds.GetConfirmed(scope, email)
	if err != nil {
		// 不存在或已过期
		return false, err
	}
	if val != code {
		return false, nil
	}
	if err = s.rds.DeleteConfirmed(scope, email); err != nil {
		return false, err
	}
	return true, nil
}
