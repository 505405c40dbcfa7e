// Package model 定义客户端与后端交换的数据结构
package model

// Role 消息角色
type Role string

const (
	RoleUser  Role = "user"  // 用户发出的消息
	RoleModel Role = "model" // 后端（模型或代理）回复
)

// Message 对话中的一条消息，创建后不再修改
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// IsUser 是否为用户消息
func (m Message) IsUser() bool {
	return m.Role == RoleUser
}
