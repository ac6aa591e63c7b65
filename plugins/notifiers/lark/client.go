package lark

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/imdario/mergo"
	"github.com/patrickmn/go-cache"

	"github.com/goto/oaflow/domain"
	"github.com/goto/oaflow/pkg/log"
)

const (
	DefaultHost = "https://open.larksuite.com"

	tokenPath   = "/open-apis/auth/v3/tenant_access_token/internal/"
	messagePath = "/open-apis/im/v1/messages?receive_id_type=email"

	// tokens are refreshed this long before lark expires them
	tokenExpiryLeeway = 60 * time.Second
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

type response struct {
	Code   int    `json:"code"`
	Msg    string `json:"msg"`
	Token  string `json:"tenant_access_token"`
	Expire int    `json:"expire"`
}

type tokenRequest struct {
	AppID     string `json:"app_id"`
	AppSecret string `json:"app_secret"`
}

type messageRequest struct {
	ReceiveID string `json:"receive_id"`
	MsgType   string `json:"msg_type"`
	Content   string `json:"content"`
}

type LarkWorkspace struct {
	WorkspaceName string `mapstructure:"workspace" validate:"required"`
	ClientID      string `mapstructure:"client_id" validate:"required"`
	ClientSecret  string `mapstructure:"client_secret" validate:"required"`
}

type Config struct {
	Host      string
	Workspace LarkWorkspace
	Messages  domain.NotificationMessages
	// Variables are available to every template unless the notification sets the same key
	Variables map[string]interface{}
}

type Notifier struct {
	host       string
	workspace  LarkWorkspace
	messages   domain.NotificationMessages
	variables  map[string]interface{}
	httpClient HTTPClient
	tokens     *cache.Cache
	logger     log.Logger

	defaultMessageFiles embed.FS
}

//go:embed templates/*
var defaultTemplates embed.FS

func NewNotifier(config *Config, httpClient HTTPClient, logger log.Logger) *Notifier {
	host := strings.TrimSuffix(config.Host, "/")
	if host == "" {
		host = DefaultHost
	}
	return &Notifier{
		host:                host,
		workspace:           config.Workspace,
		messages:            config.Messages,
		variables:           config.Variables,
		httpClient:          httpClient,
		tokens:              cache.New(time.Hour, 10*time.Minute),
		logger:              logger,
		defaultMessageFiles: defaultTemplates,
	}
}

func (n *Notifier) Notify(ctx context.Context, items []domain.Notification) []error {
	errs := make([]error, 0)
	for _, item := range items {
		labels := labelSlice(item.Labels)
		n.logger.Debug(ctx, "sending lark notification", "user", item.User, "type", item.Message.Type, "labels", labels)

		message := item.Message
		variables := make(map[string]interface{}, len(message.Variables)+len(n.variables))
		for k, v := range message.Variables {
			variables[k] = v
		}
		if len(n.variables) > 0 {
			if err := mergo.Merge(&variables, n.variables); err != nil {
				errs = append(errs, fmt.Errorf("%v | error applying default variables: %w", labels, err))
				continue
			}
		}
		message.Variables = variables

		text, err := ParseMessage(message, n.messages, n.defaultMessageFiles)
		if err != nil {
			errs = append(errs, fmt.Errorf("%v | error parsing message: %w", labels, err))
			continue
		}

		if err := n.sendMessage(ctx, item.User, text); err != nil {
			errs = append(errs, fmt.Errorf("%v | error sending message to user:%s in workspace:%s | %w", labels, item.User, n.workspace.WorkspaceName, err))
			continue
		}
	}

	return errs
}

func (n *Notifier) sendMessage(ctx context.Context, email, text string) error {
	content, err := json.Marshal(map[string]string{"text": text})
	if err != nil {
		return err
	}
	data, err := json.Marshal(messageRequest{
		ReceiveID: email,
		MsgType:   "text",
		Content:   string(content),
	})
	if err != nil {
		return err
	}

	token, err := n.tenantAccessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.host+messagePath, bytes.NewBuffer(data))
	if err != nil {
		return err
	}
	req.Header.Add("Authorization", "Bearer "+token)
	req.Header.Add("Content-Type", "application/json")
	_, err = n.sendRequest(req)
	return err
}

func (n *Notifier) tenantAccessToken(ctx context.Context) (string, error) {
	if token, ok := n.tokens.Get(n.workspace.WorkspaceName); ok {
		return token.(string), nil
	}

	data, err := json.Marshal(tokenRequest{
		AppID:     n.workspace.ClientID,
		AppSecret: n.workspace.ClientSecret,
	})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.host+tokenPath, bytes.NewBuffer(data))
	if err != nil {
		return "", err
	}
	req.Header.Add("Content-Type", "application/json")

	result, err := n.sendRequest(req)
	if err != nil {
		return "", fmt.Errorf("error getting tenant access token for workspace: %s - %w", n.workspace.WorkspaceName, err)
	}

	ttl := time.Duration(result.Expire)*time.Second - tokenExpiryLeeway
	if ttl > 0 {
		n.tokens.Set(n.workspace.WorkspaceName, result.Token, ttl)
	}
	return result.Token, nil
}

func (n *Notifier) sendRequest(req *http.Request) (*response, error) {
	resp, err := n.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding lark response with status %d: %w", resp.StatusCode, err)
	}
	if result.Code != 0 {
		return &result, fmt.Errorf("lark error %d: %s", result.Code, result.Msg)
	}
	return &result, nil
}

func getDefaultTemplate(messageType string, defaultTemplateFiles embed.FS) (string, error) {
	content, err := defaultTemplateFiles.ReadFile(fmt.Sprintf("templates/%s.txt", messageType))
	if err != nil {
		return "", fmt.Errorf("error finding default template for message type %s - %w", messageType, err)
	}
	return string(content), nil
}

func ParseMessage(message domain.NotificationMessage, templates domain.NotificationMessages, defaultTemplateFiles embed.FS) (string, error) {
	messageTypeTemplateMap := map[string]string{
		domain.NotificationTypeApproverNotification:        templates.ApproverNotification,
		domain.NotificationTypeApplicationApproved:         templates.ApplicationApproved,
		domain.NotificationTypeApplicationRejected:         templates.ApplicationRejected,
		domain.NotificationTypeApplicationApprovedReadonly: templates.ApplicationApprovedReadonly,
		domain.NotificationTypeApplicationCancelled:        templates.ApplicationCancelled,
		domain.NotificationTypePendingApprovalsReminder:    templates.PendingApprovalsReminder,
	}

	messageBlock, ok := messageTypeTemplateMap[message.Type]
	if !ok {
		return "", fmt.Errorf("template not found for message type %s", message.Type)
	}

	if messageBlock == "" {
		defaultMsgBlock, err := getDefaultTemplate(message.Type, defaultTemplateFiles)
		if err != nil {
			return "", err
		}
		messageBlock = defaultMsgBlock
	}
	t, err := template.New("notification_messages").Parse(messageBlock)
	if err != nil {
		return "", err
	}

	var buff bytes.Buffer
	if err := t.Execute(&buff, message.Variables); err != nil {
		return "", err
	}

	return strings.TrimSpace(buff.String()), nil
}

func labelSlice(labels map[string]string) []string {
	result := make([]string, 0, len(labels))
	for k, v := range labels {
		result = append(result, fmt.Sprintf("%s=%s", k, v))
	}
	sort.Strings(result)
	return result
}
