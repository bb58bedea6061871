package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// EastmoneyProvider 东方财富行业板块客户端，用于补全换手率维度
type EastmoneyProvider struct {
	client *http.Client
}

// NewEastmoneyProvider 创建东方财富客户端
func NewEastmoneyProvider() *EastmoneyProvider {
	return &EastmoneyProvider{
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// FetchTurnover 抓取行业板块列表，返回 行业名称 -> 换手率
func (ep *EastmoneyProvider) FetchTurnover(ctx context.Context) (map[string]float64, error) {
	// f14=板块名称 f8=换手率；fs=m:90+t:2 为行业板块
	url := "https://push2.eastmoney.com/api/qt/clist/get?pn=1&pz=500&po=1&np=1&fltt=2&invt=2&fid=f3&fs=m:90+t:2&fields=f8,f14"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Referer", "https://quote.eastmoney.com/")

	resp, err := ep.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result struct {
		Data struct {
			Diff []struct {
				F8  json.RawMessage `json:"f8"`
				F14 string          `json:"f14"`
			} `json:"diff"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, err
	}

	if len(result.Data.Diff) == 0 {
		return nil, fmt.Errorf("行业板块列表为空")
	}

	turnover := make(map[string]float64, len(result.Data.Diff))
	for _, item := range result.Data.Diff {
		if item.F14 == "" {
			continue
		}
		turnover[item.F14] = parseRawFloat(item.F8)
	}
	return turnover, nil
}

// parseRawFloat 兼容数值或带引号的"-"占位符，解析失败返回0
func parseRawFloat(raw json.RawMessage) float64 {
	s := string(raw)
	if len(s) >= 2 && s[0] == '"' {
		s = s[1 : len(s)-1]
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0.0
	}
	return v
}
