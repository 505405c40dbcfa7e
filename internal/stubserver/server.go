// Package stubserver 提供一个内存版的 MoodNest 后端，用于本地演示与测试
package stubserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"moodnest-cli/internal/model"
)

const (
	// historyLimit /history 返回的最近消息条数
	historyLimit = 50
	// exportLimit /export 携带的对话条数上限
	exportLimit = 1000
)

const defaultUserID = 1

// Server 替身后端
type Server struct {
	store   *Store
	replier *Replier
	probe   Probe
	logger  *slog.Logger
	router  *gin.Engine
}

// Option 配置项
type Option func(*Server)

// WithLogger 设置日志
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithProbe 替换主机状态采集
func WithProbe(p Probe) Option {
	return func(s *Server) {
		if p != nil {
			s.probe = p
		}
	}
}

// WithRandom 替换回复挑选方式
func WithRandom(pick func(n int) int) Option {
	return func(s *Server) {
		if pick != nil {
			s.replier.pick = pick
		}
	}
}

// WithClock 替换时钟，影响计划时段与记录时间
func WithClock(now func() time.Time) Option {
	return func(s *Server) {
		if now != nil {
			s.replier.now = now
			s.store.now = now
		}
	}
}

// New 创建替身后端，store 为 nil 时新建
func New(store *Store, opts ...Option) *Server {
	if store == nil {
		store = NewStore()
	}
	s := &Server{
		store:   store,
		replier: &Replier{pick: rand.Intn, now: time.Now},
		probe:   HostProbe,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(s.logger))
	router.Use(cors())
	s.registerRoutes(router)
	s.router = router
	return s
}

// Handler 返回 HTTP 处理器
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) registerRoutes(router *gin.Engine) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	{
		api.GET("/history", s.history)
		api.POST("/chat", s.chat)
		api.POST("/agent/planner", s.planner)
		api.POST("/agent/resource", s.resource)
		api.GET("/analytics", s.analytics)
		api.GET("/system", s.system)
		api.GET("/export", s.export)
	}
}

// Run 监听 addr，ctx 取消后优雅关闭
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("stub server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	s.logger.Info("stub server stopped")
	return nil
}

// userID 读取 user_id 参数，缺省为 1
func userID(c *gin.Context) (int, bool) {
	raw := c.DefaultQuery("user_id", strconv.Itoa(defaultUserID))
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": message})
}

func (s *Server) history(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		badRequest(c, "Invalid user_id")
		return
	}
	c.JSON(http.StatusOK, Messages(s.store.Chats(id, historyLimit)))
}

type chatRequest struct {
	UserID  int    `json:"user_id"`
	Message string `json:"message"`
}

func (s *Server) chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		badRequest(c, "Message is required")
		return
	}
	if req.UserID <= 0 {
		req.UserID = defaultUserID
	}

	reply := s.replier.Chat(req.Message)
	s.store.LogChat(req.UserID, model.RoleUser, req.Message)
	s.store.LogChat(req.UserID, model.RoleModel, reply)

	sentiment := Analyze(req.Message)
	s.store.LogSentiment(req.UserID, sentiment.Score, sentiment.Magnitude)

	c.JSON(http.StatusOK, gin.H{
		"response":  reply,
		"source":    "fallback",
		"sentiment": sentiment,
	})
}

func (s *Server) planner(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"response": s.replier.Plan(), "source": "planner_agent"})
}

type resourceRequest struct {
	Mood string `json:"mood"`
}

func (s *Server) resource(c *gin.Context) {
	var req resourceRequest
	// 空请求体按 general 处理
	_ = c.ShouldBindJSON(&req)
	if req.Mood == "" {
		req.Mood = "general"
	}
	c.JSON(http.StatusOK, gin.H{"response": s.replier.Strategy(req.Mood), "source": "resource_agent"})
}

func (s *Server) analytics(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		badRequest(c, "Invalid user_id")
		return
	}
	records := s.store.Sentiment(id)
	if records == nil {
		records = []SentimentEntry{}
	}
	c.JSON(http.StatusOK, records)
}

func (s *Server) system(c *gin.Context) {
	status, err := s.probe(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "System status unavailable"})
		return
	}
	c.JSON(http.StatusOK, status)
}

// ExportDocument /export 返回的数据
type ExportDocument struct {
	UserID        int              `json:"user_id"`
	ExportedAt    string           `json:"exported_at"`
	Chats         []ChatEntry      `json:"chats"`
	SentimentLogs []SentimentEntry `json:"sentiment_logs"`
}

func (s *Server) export(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		badRequest(c, "Invalid user_id")
		return
	}
	doc := ExportDocument{
		UserID:        id,
		ExportedAt:    s.store.stamp(),
		Chats:         s.store.Chats(id, exportLimit),
		SentimentLogs: s.store.Sentiment(id),
	}
	if doc.Chats == nil {
		doc.Chats = []ChatEntry{}
	}
	if doc.SentimentLogs == nil {
		doc.SentimentLogs = []SentimentEntry{}
	}
	c.JSON(http.StatusOK, doc)
}
