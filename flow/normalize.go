package flow

import (
	"strconv"
	"strings"
)

// AmountUnit 金额归一化的目标单位。历史上两处清洗逻辑对亿/万采用了
// 相反的换算方向，这里强制调用方显式指定目标单位。
type AmountUnit int

const (
	// UnitYi 以亿为目标单位（资金流水线使用）
	UnitYi AmountUnit = iota
	// UnitWan 以万为目标单位
	UnitWan
)

// ParseAmount 将带亿/万后缀的金额字符串归一化为目标单位的数值。
// 纯数字原样解析，空串、"-"或无法解析的内容返回 0.0。
// 对已归一化的数字串重复调用结果不变。
func ParseAmount(s string, unit AmountUnit) float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" {
		return 0.0
	}

	scale := 1.0
	switch {
	case strings.Contains(s, "亿"):
		s = strings.ReplaceAll(s, "亿", "")
		if unit == UnitWan {
			scale = 10000.0
		}
	case strings.Contains(s, "万"):
		s = strings.ReplaceAll(s, "万", "")
		if unit == UnitYi {
			scale = 1.0 / 10000.0
		}
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0.0
	}
	return v * scale
}

// ParsePercent 去掉百分号后解析百分比字符串，失败返回 0.0
func ParsePercent(s string) float64 {
	s = strings.TrimSpace(strings.ReplaceAll(s, "%", ""))
	if s == "" || s == "-" {
		return 0.0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}
