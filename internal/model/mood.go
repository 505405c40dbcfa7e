package model

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// 后端时间戳可能出现的格式；无时区标记的按本地时间解析
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
}

// MoodRecord 一条情绪打分记录
type MoodRecord struct {
	Timestamp time.Time `json:"timestamp"`
	Score     float64   `json:"score"`
	Magnitude *float64  `json:"magnitude,omitempty"`
}

type moodRecordWire struct {
	Timestamp string   `json:"timestamp"`
	Score     float64  `json:"score"`
	Magnitude *float64 `json:"magnitude,omitempty"`
}

// UnmarshalJSON 解析后端返回的记录，兼容 SQLite 风格的时间戳
func (r *MoodRecord) UnmarshalJSON(data []byte) error {
	var wire moodRecordWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	ts, err := ParseTimestamp(wire.Timestamp)
	if err != nil {
		return err
	}
	r.Timestamp = ts
	r.Score = wire.Score
	r.Magnitude = wire.Magnitude
	return nil
}

// MarshalJSON 以后端相同的格式输出时间戳
func (r MoodRecord) MarshalJSON() ([]byte, error) {
	return json.Marshal(moodRecordWire{
		Timestamp: r.Timestamp.Format("2006-01-02 15:04:05"),
		Score:     r.Score,
		Magnitude: r.Magnitude,
	})
}

// ParseTimestamp 解析时间戳：RFC 3339 带时区；其余格式视为本地墙钟时间
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	if ts, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return ts, nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", raw)
}
