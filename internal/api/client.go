// Package api 封装与 MoodNest 后端的 HTTP API 交互
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"moodnest-cli/internal/model"
)

// 单个响应体允许读取的最大字节数
const maxBodyBytes = 8 << 20

// Client API 客户端
// baseURL: 例如 http://localhost:3000/api
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient 创建 API 客户端，timeout 为 0 时不设超时
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL 返回后端地址
func (c *Client) BaseURL() string {
	return c.baseURL
}

// StatusError 后端返回非 2xx 状态码
type StatusError struct {
	Method string
	Path   string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Path, e.Code)
	}
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.Code, e.Body)
}

// IsStatus 判断错误是否为指定状态码的 StatusError
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// --- 对话 ---

type chatRequest struct {
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

// ReplyResponse chat 与 agent 接口的统一返回
type ReplyResponse struct {
	Response *string `json:"response"`
	Source   string  `json:"source,omitempty"`
}

// History 获取用户的完整对话记录（按时间顺序）
func (c *Client) History(ctx context.Context, userID int) ([]model.Message, error) {
	var messages []model.Message
	if err := c.get(ctx, "/history", userQuery(userID), &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

// Chat 发送一条用户消息，返回后端回复文本
func (c *Client) Chat(ctx context.Context, userID int, message string) (string, error) {
	return c.reply(ctx, "/chat", chatRequest{UserID: userID, Message: message})
}

// Planner 请求当天计划
func (c *Client) Planner(ctx context.Context) (string, error) {
	return c.reply(ctx, "/agent/planner", struct{}{})
}

// Resource 请求与情绪对应的应对策略
func (c *Client) Resource(ctx context.Context, mood string) (string, error) {
	return c.reply(ctx, "/agent/resource", map[string]string{"mood": mood})
}

func (c *Client) reply(ctx context.Context, path string, body interface{}) (string, error) {
	var resp ReplyResponse
	if err := c.post(ctx, path, body, &resp); err != nil {
		return "", err
	}
	if resp.Response == nil {
		return "", errors.Errorf("POST %s: response field missing", path)
	}
	return *resp.Response, nil
}

// --- 分析与系统 ---

// Analytics 获取情绪打分记录，后端保证按时间升序
func (c *Client) Analytics(ctx context.Context, userID int) ([]model.MoodRecord, error) {
	var records []model.MoodRecord
	if err := c.get(ctx, "/analytics", userQuery(userID), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// System 获取后端运行状态
func (c *Client) System(ctx context.Context) (*model.SystemStatus, error) {
	var status model.SystemStatus
	if err := c.get(ctx, "/system", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// Export 获取用户数据导出文档，原样返回 JSON
func (c *Client) Export(ctx context.Context, userID int) (json.RawMessage, error) {
	var doc json.RawMessage
	if err := c.get(ctx, "/export", userQuery(userID), &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func userQuery(userID int) url.Values {
	return url.Values{"user_id": []string{strconv.Itoa(userID)}}
}

// --- 通用请求封装 ---

func (c *Client) get(ctx context.Context, path string, query url.Values, out interface{}) error {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return errors.Wrapf(err, "build GET %s", path)
	}
	return c.do(req, path, out)
}

func (c *Client) post(ctx context.Context, path string, body interface{}, out interface{}) error {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return errors.Wrapf(err, "encode POST %s", path)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(jsonBody))
	if err != nil {
		return errors.Wrapf(err, "build POST %s", path)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, path, out)
}

func (c *Client) do(req *http.Request, path string, out interface{}) error {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", req.Method, path)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return errors.Wrapf(err, "read %s %s", req.Method, path)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Method: req.Method,
			Path:   path,
			Code:   resp.StatusCode,
			Body:   strings.TrimSpace(string(respBody)),
		}
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return errors.Wrapf(err, "decode %s %s", req.Method, path)
	}
	return nil
}
