package registry

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/shuail0/tradehub-sdk/pkg/tradehub/common"
)

// CatalogSource 目录数据来源 (REST 协作方)
type CatalogSource interface {
	GetTokens(ctx context.Context) ([]common.Token, error)
	GetCoinMapping(ctx context.Context) (map[string]string, error)
	GetUSDValues(ctx context.Context, ids []string) (map[string]float64, error)
}

// Config Registry 配置
type Config struct {
	Source CatalogSource
	Logger *zap.Logger
}

// Registry 代币目录
// 独占持有全部映射表; 重载与读取可并发, 读方看到的是完整快照
type Registry struct {
	source CatalogSource
	log    *zap.Logger

	mu         sync.RWMutex
	tokens     map[string]common.Token // denom -> Token
	poolTokens map[string]common.Token // 池代币 denom -> Token
	wrapperMap map[string]string       // wrapped denom -> source denom
	symbols    map[string]string       // 规范 denom -> 展示符号
	usdValues  map[string]float64      // 规范 denom -> USD 价格
}

// New 创建 Registry
func New(cfg Config) *Registry {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Registry{
		source:     cfg.Source,
		log:        cfg.Logger,
		tokens:     make(map[string]common.Token),
		poolTokens: make(map[string]common.Token),
		wrapperMap: make(map[string]string),
		symbols:    make(map[string]string),
		usdValues:  make(map[string]float64),
	}
}

// ReloadTokens 拉取全量代币列表并整体替换目录
// 传输错误原样上抛, 不做部分更新
func (r *Registry) ReloadTokens(ctx context.Context) (map[string]common.Token, error) {
	list, err := r.source.GetTokens(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload tokens: %w", err)
	}

	tokens := make(map[string]common.Token)
	poolTokens := make(map[string]common.Token)
	symbols := make(map[string]string)
	// 同一规范 denom 下的符号来源: 规范 denom 自己的注册项优先,
	// 其余别名按字典序取最小, 与列表顺序无关
	symbolOwner := make(map[string]string)
	for _, t := range list {
		denom := strings.ToLower(t.Denom)
		t.Denom = denom
		if IsPoolToken(denom) {
			poolTokens[denom] = t
		} else {
			tokens[denom] = t
		}
		canonical := GetCommonDenom(denom)
		owner, claimed := symbolOwner[canonical]
		if !claimed || denom == canonical || (owner != canonical && denom < owner) {
			symbolOwner[canonical] = denom
			symbols[canonical] = t.Symbol
		}
	}

	r.mu.Lock()
	r.tokens = tokens
	r.poolTokens = poolTokens
	r.symbols = symbols
	r.mu.Unlock()

	return copyTokenMap(tokens), nil
}

// ReloadWrapperMap 拉取 wrapped -> source 映射并合并进现有映射
// 合并是并集且原子生效, 重复调用幂等
func (r *Registry) ReloadWrapperMap(ctx context.Context) (map[string]string, error) {
	mapping, err := r.source.GetCoinMapping(ctx)
	if err != nil {
		return nil, fmt.Errorf("reload wrapper map: %w", err)
	}

	r.mu.Lock()
	merged := make(map[string]string, len(r.wrapperMap)+len(mapping))
	for k, v := range r.wrapperMap {
		merged[k] = v
	}
	for k, v := range mapping {
		merged[strings.ToLower(k)] = strings.ToLower(v)
	}
	r.wrapperMap = merged
	result := copyStringMap(merged)
	r.mu.Unlock()

	return result, nil
}

// ReloadUSDValues 批量刷新 USD 价格
// denoms 为空时刷新全部已知非池代币; 缺失或非正的价格保留旧缓存
func (r *Registry) ReloadUSDValues(ctx context.Context, denoms []string) (map[string]float64, error) {
	if denoms == nil {
		denoms = r.nonPoolDenoms()
	}

	// 先按规范 denom 去重, 再翻译为价格服务 id
	seen := make(map[string]struct{})
	idToDenom := make(map[string]string)
	var ids []string
	for _, d := range denoms {
		canonical := GetCommonDenom(strings.ToLower(d))
		if _, ok := seen[canonical]; ok {
			continue
		}
		seen[canonical] = struct{}{}
		id, ok := priceIDs[canonical]
		if !ok {
			id = canonical
		}
		idToDenom[id] = canonical
		ids = append(ids, id)
	}
	sort.Strings(ids)

	prices, err := r.source.GetUSDValues(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("reload usd values: %w", err)
	}

	r.mu.Lock()
	for id, price := range prices {
		denom, ok := idToDenom[id]
		if !ok {
			continue
		}
		if price <= 0 {
			r.log.Debug("skip non-positive price", zap.String("denom", denom), zap.Float64("price", price))
			continue
		}
		r.usdValues[denom] = price
	}
	result := copyFloatMap(r.usdValues)
	r.mu.Unlock()

	return result, nil
}

// GetCommonDenom 历史 denom 规范化, 未收录的 denom 原样返回
func GetCommonDenom(denom string) string {
	if canonical, ok := commonDenomAliases[strings.ToLower(denom)]; ok {
		return canonical
	}
	return strings.ToLower(denom)
}

// GetToken 按 denom 查找代币
func (r *Registry) GetToken(denom string) (common.Token, bool) {
	d := strings.ToLower(denom)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tokens[d]; ok {
		return t, true
	}
	t, ok := r.poolTokens[d]
	return t, ok
}

// GetDecimals 查询精度, 先查普通代币再查池代币
func (r *Registry) GetDecimals(denom string) (int64, bool) {
	d := strings.ToLower(denom)
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tokens[d]; ok {
		return t.Decimals, true
	}
	if t, ok := r.poolTokens[d]; ok {
		return t.Decimals, true
	}
	if t, ok := r.tokens[GetCommonDenom(d)]; ok {
		return t.Decimals, true
	}
	return 0, false
}

// GetSymbol 查询展示符号, 未注册时返回规范 denom 的大写
func (r *Registry) GetSymbol(denom string) string {
	canonical := GetCommonDenom(denom)
	r.mu.RLock()
	symbol, ok := r.symbols[canonical]
	r.mu.RUnlock()
	if ok {
		return symbol
	}
	return strings.ToUpper(canonical)
}

// GetUSDValue 查询缓存的 USD 价格
func (r *Registry) GetUSDValue(denom string) (float64, bool) {
	canonical := GetCommonDenom(denom)
	r.mu.RLock()
	defer r.mu.RUnlock()
	price, ok := r.usdValues[canonical]
	return price, ok
}

// GetTokenName 解析展示名称
// 池代币递归拼出 "{nameA}-{nameB}"; 解析失败退回符号, 不报错
func (r *Registry) GetTokenName(denom string) string {
	d := strings.ToLower(denom)
	if IsPoolToken(d) {
		parts, ok := parsePoolToken(d)
		if !ok {
			r.log.Warn("malformed pool token denom", zap.String("denom", d))
			return r.GetSymbol(d)
		}
		return r.GetTokenName(parts.DenomA) + "-" + r.GetTokenName(parts.DenomB)
	}
	if name, ok := tokenNameOverrides[d]; ok {
		return name
	}
	return r.GetSymbol(d)
}

// GetTokenDesc 解析展示描述
// 池代币渲染 "{weightA}% {nameA} / {weightB}% {nameB}"
func (r *Registry) GetTokenDesc(denom string) string {
	d := strings.ToLower(denom)
	if IsPoolToken(d) {
		parts, ok := parsePoolToken(d)
		if !ok {
			r.log.Warn("malformed pool token denom", zap.String("denom", d))
			return r.GetSymbol(d)
		}
		return fmt.Sprintf("%d%% %s / %d%% %s",
			parts.WeightA, r.GetTokenName(parts.DenomA),
			parts.WeightB, r.GetTokenName(parts.DenomB))
	}
	r.mu.RLock()
	t, ok := r.tokens[d]
	r.mu.RUnlock()
	if ok && t.Name != "" {
		return t.Name
	}
	return r.GetSymbol(d)
}

// GetWrappedToken 查找 denom 的包装代币
// denom 本身是包装代币时直接返回; 是源代币时返回第一个满足链过滤的包装项
func (r *Registry) GetWrappedToken(denom string, blockchain common.Blockchain) (common.Token, bool) {
	d := strings.ToLower(denom)
	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.wrapperMap[d]; ok {
		t, found := r.tokens[d]
		return t, found
	}

	// 遍历按 key 排序, 保证结果稳定
	keys := make([]string, 0, len(r.wrapperMap))
	for k := range r.wrapperMap {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, wrapped := range keys {
		if r.wrapperMap[wrapped] != d {
			continue
		}
		t, found := r.tokens[wrapped]
		if !found {
			continue
		}
		if blockchain == "" || t.Blockchain == blockchain {
			return t, true
		}
	}
	return common.Token{}, false
}

// GetSourceToken 查找 denom 的源代币
// denom 是包装代币时返回映射到的源; 本身是源时返回自身
func (r *Registry) GetSourceToken(denom string) (common.Token, bool) {
	d := strings.ToLower(denom)
	r.mu.RLock()
	defer r.mu.RUnlock()

	if source, ok := r.wrapperMap[d]; ok {
		t, found := r.tokens[source]
		return t, found
	}
	for _, source := range r.wrapperMap {
		if source == d {
			t, found := r.tokens[d]
			return t, found
		}
	}
	return common.Token{}, false
}

// nonPoolDenoms 当前已注册的全部非池代币 denom
func (r *Registry) nonPoolDenoms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	denoms := make([]string, 0, len(r.tokens))
	for d := range r.tokens {
		denoms = append(denoms, d)
	}
	sort.Strings(denoms)
	return denoms
}

func copyTokenMap(src map[string]common.Token) map[string]common.Token {
	dst := make(map[string]common.Token, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyStringMap(src map[string]string) map[string]string {
	dst := make(map[string]string, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}

func copyFloatMap(src map[string]float64) map[string]float64 {
	dst := make(map[string]float64, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
