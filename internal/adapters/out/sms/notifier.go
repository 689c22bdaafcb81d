// Package sms sends customer notifications through Alibaba Cloud SMS.
//
// Notify hands each message to a goroutine and returns immediately. Provider
// failures are logged and never reach the caller.
package sms

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	openapi "github.com/alibabacloud-go/darabonba-openapi/v2/client"
	dysmsapi20170525 "github.com/alibabacloud-go/dysmsapi-20170525/v5/client"
	util "github.com/alibabacloud-go/tea-utils/v2/service"
	"github.com/alibabacloud-go/tea/tea"
)

const defaultEndpoint = "dysmsapi.aliyuncs.com"

var _ ports.Notifier = (*Notifier)(nil)

type Config struct {
	AccessKeyID     string
	AccessKeySecret string
	Endpoint        string
	SignName        string
	// Templates maps each notification kind to a provider template code.
	// Kinds without a template are not sent.
	Templates map[ports.NotificationKind]string
	// TimeoutMillis bounds connect and read on each request.
	TimeoutMillis int
}

type smsSender interface {
	SendSmsWithOptions(request *dysmsapi20170525.SendSmsRequest, runtime *util.RuntimeOptions) (*dysmsapi20170525.SendSmsResponse, error)
}

type Notifier struct {
	client    smsSender
	signName  string
	templates map[ports.NotificationKind]string
	timeout   int
	logger    *slog.Logger
	wg        sync.WaitGroup
}

func New(cfg Config, logger *slog.Logger) (*Notifier, error) {
	if cfg.AccessKeyID == "" || cfg.AccessKeySecret == "" {
		return nil, errs.NewValueIsRequiredError("sms access key")
	}
	if cfg.SignName == "" {
		return nil, errs.NewValueIsRequiredError("sms sign name")
	}
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}

	client, err := dysmsapi20170525.NewClient(&openapi.Config{
		AccessKeyId:     tea.String(cfg.AccessKeyID),
		AccessKeySecret: tea.String(cfg.AccessKeySecret),
		Endpoint:        tea.String(endpoint),
	})
	if err != nil {
		return nil, fmt.Errorf("create sms client: %w", err)
	}

	return newNotifier(client, cfg, logger), nil
}

// NewDisabled returns a Notifier that only logs what it would have sent.
func NewDisabled(logger *slog.Logger) *Notifier {
	return newNotifier(nil, Config{}, logger)
}

func newNotifier(client smsSender, cfg Config, logger *slog.Logger) *Notifier {
	timeout := cfg.TimeoutMillis
	if timeout <= 0 {
		timeout = 5000
	}
	return &Notifier{
		client:    client,
		signName:  cfg.SignName,
		templates: cfg.Templates,
		timeout:   timeout,
		logger:    logger.With("component", "sms"),
	}
}

func (n *Notifier) Notify(_ context.Context, note ports.Notification) {
	log := n.logger.With("kind", note.Kind, "order_id", note.OrderID.String())

	if n.client == nil {
		log.Info("sms disabled, notification dropped")
		return
	}
	if note.Phone == "" {
		log.Debug("no contact phone, notification skipped")
		return
	}
	template, ok := n.templates[note.Kind]
	if !ok || template == "" {
		log.Debug("no template configured, notification skipped")
		return
	}

	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.send(note, template); err != nil {
			log.Warn("sms notification failed", "error", err)
			return
		}
		log.Debug("sms notification sent")
	}()
}

// Wait blocks until every in-flight notification has finished.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) send(note ports.Notification, template string) error {
	params := note.Params
	if params == nil {
		params = map[string]string{}
	}

	request := &dysmsapi20170525.SendSmsRequest{
		PhoneNumbers:  tea.String(note.Phone),
		SignName:      tea.String(n.signName),
		TemplateCode:  tea.String(template),
		TemplateParam: util.ToJSONString(params),
	}
	runtime := &util.RuntimeOptions{
		ConnectTimeout: tea.Int(n.timeout),
		ReadTimeout:    tea.Int(n.timeout),
	}

	resp, err := n.client.SendSmsWithOptions(request, runtime)
	if err != nil {
		var sdkErr *tea.SDKError
		if errors.As(err, &sdkErr) {
			return fmt.Errorf("sms provider: %s: %s", tea.StringValue(sdkErr.Code), tea.StringValue(sdkErr.Message))
		}
		return err
	}
	if resp == nil || resp.Body == nil {
		return errors.New("sms provider: empty response")
	}
	if code := tea.StringValue(resp.Body.Code); code != "OK" {
		return fmt.Errorf("sms provider rejected: %s: %s", code, tea.StringValue(resp.Body.Message))
	}
	return nil
}
