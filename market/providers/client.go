package providers

import (
	"context"

	"flowquant/flow"
)

// Client 组合同花顺与东方财富两个数据源，实现 flow.Source
type Client struct {
	ths *THSProvider
	em  *EastmoneyProvider
}

// NewClient 创建默认数据源组合
func NewClient() *Client {
	return &Client{
		ths: NewTHSProvider(),
		em:  NewEastmoneyProvider(),
	}
}

// FetchIndustryFlow 行业资金流走同花顺
func (c *Client) FetchIndustryFlow(ctx context.Context, period flow.Period) (flow.PeriodDataset, error) {
	return c.ths.FetchIndustryFlow(ctx, period)
}

// FetchTurnover 换手率走东方财富
func (c *Client) FetchTurnover(ctx context.Context) (map[string]float64, error) {
	return c.em.FetchTurnover(ctx)
}

// FetchBigDealBuys 大单追踪走同花顺
func (c *Client) FetchBigDealBuys(ctx context.Context) (map[string]struct{}, error) {
	return c.ths.FetchBigDealBuys(ctx)
}
