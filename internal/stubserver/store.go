package stubserver

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"moodnest-cli/internal/model"
)

// 与 SQLite CURRENT_TIMESTAMP 一致的时间格式，不带时区
const timestampLayout = "2006-01-02 15:04:05"

// ChatEntry 一条对话记录
type ChatEntry struct {
	ID        string     `json:"id"`
	UserID    int        `json:"user_id"`
	Role      model.Role `json:"role"`
	Content   string     `json:"content"`
	Timestamp string     `json:"timestamp"`
}

// SentimentEntry 一条情绪打分记录
type SentimentEntry struct {
	ID        string  `json:"id"`
	UserID    int     `json:"user_id"`
	Score     float64 `json:"score"`
	Magnitude float64 `json:"magnitude"`
	Timestamp string  `json:"timestamp"`
}

// Store 内存存储，进程退出即丢失
type Store struct {
	mu        sync.RWMutex
	chats     []ChatEntry
	sentiment []SentimentEntry
	now       func() time.Time
}

// NewStore 创建内存存储
func NewStore() *Store {
	return &Store{now: time.Now}
}

func (s *Store) stamp() string {
	return s.now().Format(timestampLayout)
}

// LogChat 追加对话记录
func (s *Store) LogChat(userID int, role model.Role, content string) ChatEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := ChatEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Role:      role,
		Content:   content,
		Timestamp: s.stamp(),
	}
	s.chats = append(s.chats, entry)
	return entry
}

// LogSentiment 追加情绪记录
func (s *Store) LogSentiment(userID int, score, magnitude float64) SentimentEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := SentimentEntry{
		ID:        uuid.NewString(),
		UserID:    userID,
		Score:     score,
		Magnitude: magnitude,
		Timestamp: s.stamp(),
	}
	s.sentiment = append(s.sentiment, entry)
	return entry
}

// Chats 返回用户最近 limit 条对话，按时间升序；limit <= 0 表示全部
func (s *Store) Chats(userID int, limit int) []ChatEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []ChatEntry
	for _, c := range s.chats {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out
}

// Sentiment 返回用户全部情绪记录，按时间升序
func (s *Store) Sentiment(userID int) []SentimentEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []SentimentEntry
	for _, e := range s.sentiment {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out
}

// Messages 转成客户端使用的消息结构
func Messages(entries []ChatEntry) []model.Message {
	out := make([]model.Message, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.Message{Role: e.Role, Content: e.Content})
	}
	return out
}
