package model

// SystemStatus 后端 /system 返回的运行状态
type SystemStatus struct {
	Status        string  `json:"status"`
	Platform      string  `json:"platform"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Uptime        string  `json:"uptime,omitempty"`
}

// Online 后端是否报告在线
func (s SystemStatus) Online() bool {
	return s.Status == "online"
}
