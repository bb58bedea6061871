package flow

import (
	"strconv"
	"testing"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   string
		unit AmountUnit
		want float64
	}{
		{"亿到亿", "12.5亿", UnitYi, 12.5},
		{"万到亿", "8000万", UnitYi, 0.8},
		{"亿到万", "12.5亿", UnitWan, 125000},
		{"万到万", "8000万", UnitWan, 8000},
		{"纯数字", "3.14", UnitYi, 3.14},
		{"负数带单位", "-2.5亿", UnitYi, -2.5},
		{"带空格", " 6.8亿 ", UnitYi, 6.8},
		{"空串", "", UnitYi, 0.0},
		{"占位横线", "-", UnitYi, 0.0},
		{"非法内容", "abc", UnitYi, 0.0},
		{"单位后非法", "亿", UnitYi, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAmount(tt.in, tt.unit)
			if got != tt.want {
				t.Errorf("ParseAmount(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmountIdempotent(t *testing.T) {
	once := ParseAmount("3.6亿", UnitYi)
	again := ParseAmount(strconv.FormatFloat(once, 'f', -1, 64), UnitYi)
	if once != again {
		t.Errorf("重复归一化结果不一致: %v vs %v", once, again)
	}
}

func TestParsePercent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want float64
	}{
		{"正常百分比", "5.2%", 5.2},
		{"负百分比", "-3.1%", -3.1},
		{"无百分号", "4.7", 4.7},
		{"带空格", " 2.0% ", 2.0},
		{"空串", "", 0.0},
		{"占位横线", "-", 0.0},
		{"非法内容", "abc%", 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParsePercent(tt.in)
			if got != tt.want {
				t.Errorf("ParsePercent(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
