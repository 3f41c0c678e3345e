// 包 client：邮编查询客户端；异步发起请求，成功后把城市与州写入表单字段
package client

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"zip-api/internal/logger"
)

// 表单字段名
const (
	FieldZip   = "zip"
	FieldCity  = "city"
	FieldState = "state"
)

// FieldStore：表单字段的最小读写能力
// 约束：GetIfPresent 仅在字段存在且非空时返回 true；SetIfEmpty 仅在字段为空时写入并返回 true
type FieldStore interface {
	GetIfPresent(name string) (string, bool)
	SetIfEmpty(name, value string) bool
}

// Result：一次请求的最终结果，仅投递一次
// State 为请求停止时所处阶段；传输失败时 State 小于 Done 且 Err 非空
type Result struct {
	State  ReadyState
	Status int
	Body   string
	Err    error
}

// Requester：查询服务的客户端
// 背景：不设超时、不重试；取消仅依赖调用方传入的 ctx
type Requester struct {
	base   string
	client *http.Client

	// OnStateChange：可选，每次阶段推进时回调，用于调试与测试观察
	OnStateChange func(zip string, s ReadyState)
}

// New：base 为 API 基础地址（如 http://localhost:8080/api）；hc 为空时使用 http.DefaultClient
func New(base string, hc *http.Client) *Requester {
	if hc == nil {
		hc = http.DefaultClient
	}
	return &Requester{base: strings.TrimRight(base, "/"), client: hc}
}

// URL：构造查询地址，zip 经 URL 编码
func (r *Requester) URL(zip string) string {
	q := url.Values{}
	q.Set("zip", zip)
	return r.base + "/zip?" + q.Encode()
}

// Fetch：异步发起 GET 请求，返回只投递一次结果的通道
// 约束：通道带缓冲，调用方放弃读取时后台协程仍可退出
func (r *Requester) Fetch(ctx context.Context, zip string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- r.do(ctx, zip)
	}()
	return ch
}

func (r *Requester) do(ctx context.Context, zip string) Result {
	var res Result
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL(zip), nil)
	if err != nil {
		res.Err = err
		return res
	}
	r.advance(&res, zip, Opened)
	resp, err := r.client.Do(req)
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()
	res.Status = resp.StatusCode
	r.advance(&res, zip, HeadersReceived)
	r.advance(&res, zip, Loading)
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Body = string(b)
	r.advance(&res, zip, Done)
	return res
}

func (r *Requester) advance(res *Result, zip string, s ReadyState) {
	res.State = s
	if r.OnStateChange != nil {
		r.OnStateChange(zip, s)
	}
}

// Fill：查询 zip 并按“为空才写”规则填充城市与州
// 返回：解析出的地点与是否执行了填充；未完成或状态码非 200 时静默跳过
func (r *Requester) Fill(ctx context.Context, zip string, fs FieldStore) (Place, bool) {
	res := <-r.Fetch(ctx, zip)
	switch {
	case res.State == Done && res.Status == http.StatusOK:
		p := ParsePlace(res.Body)
		citySet := fs.SetIfEmpty(FieldCity, p.City)
		stateSet := fs.SetIfEmpty(FieldState, p.State)
		logger.L().Debug("zip_fill", "zip", zip, "city", p.City, "state", p.State, "city_set", citySet, "state_set", stateSet)
		return p, true
	default:
		logger.L().Debug("zip_fill_skip", "zip", zip, "state", res.State.String(), "status", res.Status, "err", res.Err)
		return Place{}, false
	}
}

// FillFromField：从表单的 zip 字段读取邮编后调用 Fill；字段为空时不发请求
func (r *Requester) FillFromField(ctx context.Context, fs FieldStore) (Place, bool) {
	zip, ok := fs.GetIfPresent(FieldZip)
	if !ok {
		logger.L().Debug("zip_fill_skip", "reason", "zip_empty")
		return Place{}, false
	}
	return r.Fill(ctx, zip, fs)
}
