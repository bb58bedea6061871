// Package flow 提供行业资金流趋势的聚合、评分与信号计算
package flow

import (
	"context"
)

// Period 资金流统计周期
type Period string

const (
	PeriodNow Period = "即时"
	Period3D  Period = "3日排行"
	Period5D  Period = "5日排行"
	Period10D Period = "10日排行"
	Period20D Period = "20日排行"
)

// AllPeriods 抓取顺序：即时周期在前，作为合并基准
var AllPeriods = []Period{PeriodNow, Period3D, Period5D, Period10D, Period20D}

// TrailingPeriods 阶段周期（合并时左连接到即时数据上）
var TrailingPeriods = []Period{Period3D, Period5D, Period10D, Period20D}

// 行业信号枚举，五选一
const (
	SignalOffensive  = "资金主攻"
	SignalReceding   = "退潮预警"
	SignalSubmerged  = "黄金坑潜入"
	SignalActiveMove = "低位强异动"
	SignalWatch      = "观望区间"
)

// PeriodRow 单个周期内一个行业的原始指标
type PeriodRow struct {
	Industry        string  `json:"industry"`          // 行业名称
	Index           float64 `json:"index"`             // 行业指数
	ChangePct       float64 `json:"change_pct"`        // 行业-涨跌幅（即时周期）
	StageChangePct  float64 `json:"stage_change_pct"`  // 阶段涨跌幅（3/5/10/20日周期）
	Inflow          float64 `json:"inflow"`            // 流入资金（亿）
	Outflow         float64 `json:"outflow"`           // 流出资金（亿）
	NetInflow       float64 `json:"net_inflow"`        // 净额（亿）
	LeadingStock    string  `json:"leading_stock"`     // 领涨股
	LeadingStockPct float64 `json:"leading_stock_pct"` // 领涨股-涨跌幅
}

// PeriodDataset 单个周期的行业数据集，以行业名称为键
type PeriodDataset map[string]PeriodRow

// IndustryRecord 合并评分后的一行输出
type IndustryRecord struct {
	Industry        string  `json:"industry"`
	Index           float64 `json:"index"`
	ChangePct       float64 `json:"change_pct"`
	NetInflow       float64 `json:"net_inflow"`
	Inflow          float64 `json:"inflow"`
	LeadingStock    string  `json:"leading_stock"`
	LeadingStockPct float64 `json:"leading_stock_pct"`

	NetInflow3D  float64 `json:"net_inflow_3d"`
	ChangePct3D  float64 `json:"change_pct_3d"`
	NetInflow5D  float64 `json:"net_inflow_5d"`
	ChangePct5D  float64 `json:"change_pct_5d"`
	NetInflow10D float64 `json:"net_inflow_10d"`
	ChangePct10D float64 `json:"change_pct_10d"`
	NetInflow20D float64 `json:"net_inflow_20d"`
	ChangePct20D float64 `json:"change_pct_20d"`

	TurnoverRate     float64 `json:"turnover_rate"`
	BigDealConfirmed bool    `json:"big_deal_confirmed"`

	MoneyScore    float64 `json:"money_score"`    // 资金分 [0,100]
	PriceScore    float64 `json:"price_score"`    // 价格分 [0,100]
	TurnoverScore float64 `json:"turnover_score"` // 换手分 [0,100]，换手率越低得分越高
	TrendScore    float64 `json:"trend_score"`    // 趋势得分 = 0.5*资金分 + 0.5*价格分

	Signal string `json:"signal"` // 行业信号
}

// Source 行情数据源。各方法失败时由调用方降级处理，不会中断整条流水线。
type Source interface {
	// FetchIndustryFlow 抓取单个周期的行业资金流数据
	FetchIndustryFlow(ctx context.Context, period Period) (PeriodDataset, error)
	// FetchTurnover 抓取各行业换手率
	FetchTurnover(ctx context.Context) (map[string]float64, error)
	// FetchBigDealBuys 抓取大单买入确认的股票简称集合
	FetchBigDealBuys(ctx context.Context) (map[string]struct{}, error)
}
