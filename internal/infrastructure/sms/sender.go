package sms

import (
	"context"
	"fmt"
	"os"
	"strings"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v4/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
	"go.uber.org/zap"

	"cat_adoption_server/internal/config"
)

// mockSender 本地模式，只写日志
type mockSender struct{}

func (mockSender) Send(_ context.Context, telephone string, templateParam string) error {
	zap.L().Info("【MockSMS】", zap.String("phone", telephone), zap.String("param", templateParam))
	return nil
}

// aliyunSender 阿里云短信实现
type aliyunSender struct {
	client       *dysmsapi20170525.Client
	signName     string
	templateCode string
}

func (s *aliyunSender) Send(_ context.Context, telephone string, templateParam string) error {
	req := &dysmsapi20170525.SendSmsRequest{
		SignName:      tea.String(s.signName),
		TemplateCode:  tea.String(s.templateCode),
		PhoneNumbers:  tea.String(telephone),
		TemplateParam: tea.String(templateParam),
	}
	rsp, err := s.client.SendSmsWithOptions(req, &util.RuntimeOptions{})
	if err != nil {
		return err
	}
	// err 为 nil 时仍需检查业务码
	if rsp.Body != nil && tea.StringValue(rsp.Body.Code) != "OK" {
		return fmt.Errorf("aliyun sms rejected: %s %s", tea.StringValue(rsp.Body.Code), tea.StringValue(rsp.Body.Message))
	}
	return nil
}

// shouldUseMock 未配置真实 AK 或环境变量指定 mock 时使用本地模式
func shouldUseMock(conf config.SmsConfig) bool {
	mode := strings.ToLower(strings.TrimSpace(os.Getenv(config.EnvSmsMode)))
	if mode == "mock" || mode == "local" || mode == "test" {
		return true
	}
	// configs/config.toml 默认是占位字符串
	ak := strings.ToLower(strings.TrimSpace(conf.AccessKeyID))
	ask := strings.ToLower(strings.TrimSpace(conf.AccessKeySecret))
	if ak == "" || ask == "" {
		return true
	}
	return strings.Contains(ak, "your accesskey") || strings.Contains(ask, "your accesskey")
}

// NewSender 根据配置创建短信发送实现
func NewSender(conf config.SmsConfig) (Sender, error) {
	if shouldUseMock(conf) {
		zap.L().Warn("SMS 使用本地 Mock 模式（只写日志，不调用第三方短信）")
		return mockSender{}, nil
	}

	client, err := dysmsapi20170525.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(conf.AccessKeyID),
		AccessKeySecret: tea.String(conf.AccessKeySecret),
		Endpoint:        tea.String("dysmsapi.aliyuncs.com"),
	})
	if err != nil {
		return nil, err
	}
	signName := conf.SignName
	if signName == "" {
		signName = "阿里云短信测试"
	}
	return &aliyunSender{client: client, signName: signName, templateCode: conf.StatusTemplateCode}, nil
}
