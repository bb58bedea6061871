package flow

import (
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		rec  IndustryRecord
		want string
	}{
		{
			name: "强趋势主攻",
			rec:  IndustryRecord{TrendScore: 90},
			want: SignalOffensive,
		},
		{
			name: "弱趋势退潮",
			rec:  IndustryRecord{TrendScore: 10},
			want: SignalReceding,
		},
		{
			name: "黄金坑潜入",
			rec:  IndustryRecord{TrendScore: 40, MoneyScore: 80, PriceScore: 30, TurnoverScore: 70},
			want: SignalSubmerged,
		},
		{
			name: "低位强异动",
			rec:  IndustryRecord{TrendScore: 65, BigDealConfirmed: true},
			want: SignalActiveMove,
		},
		{
			name: "默认观望",
			rec:  IndustryRecord{TrendScore: 40},
			want: SignalWatch,
		},
		{
			name: "边界85不算主攻",
			rec:  IndustryRecord{TrendScore: 85},
			want: SignalWatch,
		},
		{
			name: "边界25不算退潮",
			rec:  IndustryRecord{TrendScore: 25},
			want: SignalWatch,
		},
		{
			name: "异动区间闭区间下界",
			rec:  IndustryRecord{TrendScore: 50, BigDealConfirmed: true},
			want: SignalActiveMove,
		},
		{
			name: "异动区间闭区间上界",
			rec:  IndustryRecord{TrendScore: 80, BigDealConfirmed: true},
			want: SignalActiveMove,
		},
		{
			name: "异动区间外不触发",
			rec:  IndustryRecord{TrendScore: 81, BigDealConfirmed: true},
			want: SignalWatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(&tt.rec); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

// 多条规则同时满足时必须命中序号最小的一条
func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name string
		rec  IndustryRecord
		want string
	}{
		{
			name: "主攻优先于黄金坑",
			rec:  IndustryRecord{TrendScore: 90, MoneyScore: 80, PriceScore: 30, TurnoverScore: 70},
			want: SignalOffensive,
		},
		{
			name: "退潮优先于黄金坑",
			rec:  IndustryRecord{TrendScore: 20, MoneyScore: 80, PriceScore: 30, TurnoverScore: 70},
			want: SignalReceding,
		},
		{
			name: "黄金坑优先于异动",
			rec:  IndustryRecord{TrendScore: 60, MoneyScore: 80, PriceScore: 30, TurnoverScore: 70, BigDealConfirmed: true},
			want: SignalSubmerged,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(&tt.rec); got != tt.want {
				t.Errorf("Classify() = %s, want %s", got, tt.want)
			}
		})
	}
}

// 换手率全部缺省为0时换手分并列，只要资金/价格条件满足仍可触发黄金坑
func TestClassifyDegenerateTurnover(t *testing.T) {
	records := []IndustryRecord{
		{Industry: "A", NetInflow3D: 50, ChangePct: -1},
		{Industry: "B", NetInflow3D: 10, ChangePct: 2},
		{Industry: "C", NetInflow3D: 5, ChangePct: 3},
		{Industry: "D", NetInflow3D: 1, ChangePct: 4},
	}
	ScoreRecords(records)

	// 四行并列换手分 = (1+2+3+4)/4/4*100 = 62.5 > 60
	if records[0].TurnoverScore != 62.5 {
		t.Fatalf("并列换手分 = %v, want 62.5", records[0].TurnoverScore)
	}
	if records[0].MoneyScore <= 75 || records[0].PriceScore >= 50 {
		t.Fatalf("前置条件不成立: %+v", records[0])
	}
	if got := Classify(&records[0]); got != SignalSubmerged {
		t.Errorf("退化换手分仍应可触发黄金坑, got %s", got)
	}
}
