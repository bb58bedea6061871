package flow

// signalRule 信号判定规则：按声明顺序求值，命中即止
type signalRule struct {
	signal string
	match  func(r *IndustryRecord) bool
}

// 规则优先级从上到下固定：强趋势判定先于潜入/异动判定，
// 同时满足多条时只取最先命中的信号。
var signalRules = []signalRule{
	{
		signal: SignalOffensive,
		match: func(r *IndustryRecord) bool {
			return r.TrendScore > 85
		},
	},
	{
		signal: SignalReceding,
		match: func(r *IndustryRecord) bool {
			return r.TrendScore < 25
		},
	},
	{
		// 黄金坑：钱在进、价没起、散户没动（低换手）
		signal: SignalSubmerged,
		match: func(r *IndustryRecord) bool {
			return r.MoneyScore > 75 && r.PriceScore < 50 && r.TurnoverScore > 60
		},
	},
	{
		// 异动点：价格开始抬头且有大单背书
		signal: SignalActiveMove,
		match: func(r *IndustryRecord) bool {
			return r.TrendScore >= 50 && r.TrendScore <= 80 && r.BigDealConfirmed
		},
	},
}

// Classify 返回该行业的信号标签，无命中时为观望区间
func Classify(r *IndustryRecord) string {
	for _, rule := range signalRules {
		if rule.match(r) {
			return rule.signal
		}
	}
	return SignalWatch
}
