package parser

import (
	"regexp"
	"strconv"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/quality"
)

// 货币换算常量：100 铜 = 1 银，100 银 = 1 金
const (
	CopperPerSilver = 100
	CopperPerGold   = 100 * CopperPerSilver
)

// itemLinkPattern 物品超链接标记的固定模式
// 格式：|cAARRGGBB|Hitem:<id>:...|h[显示名称]|h|r
// 该格式由客户端生成，与语言环境无关，因此是固定模式而非模板编译
var itemLinkPattern = regexp.MustCompile(`\|c[0-9a-fA-F]{8}\|Hitem:(\d+)[^|]*\|h\[([^\]]+)\]\|h\|r`)

// quantityPattern 物品链接后的 "xN" 数量后缀
var quantityPattern = regexp.MustCompile(`\|h\|rx(\d+)`)

// firstNumberPattern 荣誉解析失败时的兜底：取消息中第一个整数
// 注意：这是一条粗糙规则，可能误取消息中无关的数字（已知弱点，保持与原行为一致）
var firstNumberPattern = regexp.MustCompile(`-?\d+`)

// ItemInfo 物品数据查询结果
type ItemInfo struct {
	Name    string       // 显示名称
	Icon    string       // 图标标识
	Quality quality.Tier // 品质等级
}

// ItemResolver 物品数据查询协作方
//
// 解析器先用完整链接查询；若该链接尚未被缓存，再用裸数字 ID 做第二次查询。
type ItemResolver interface {
	// ResolveLink 按完整物品链接查询
	ResolveLink(link string) (ItemInfo, bool)
	// ResolveID 按裸数字 ID 查询
	ResolveID(id int) (ItemInfo, bool)
}

// LootFact 一次物品拾取的结构化事实
type LootFact struct {
	ItemID   int          // 物品 ID
	Name     string       // 显示名称
	Icon     string       // 图标标识
	Quality  quality.Tier // 品质等级
	Quantity int          // 数量（无 xN 后缀时为 1）
}

// MoneyFact 一次金钱获取的结构化事实
type MoneyFact struct {
	Copper int // 总额（最小货币单位）
}

// HonorFact 一次荣誉获取的结构化事实
type HonorFact struct {
	Points int // 荣誉点数
}

// Parser 聊天事件解析器
//
// 所有模式在 New 中编译一次；解析本身是纯函数，唯一的副作用是
// 通过 ItemResolver 做物品数据查询。解析器从不修改配置或通知状态。
type Parser struct {
	lootPattern   *regexp.Regexp
	goldPattern   *regexp.Regexp
	silverPattern *regexp.Regexp
	copperPattern *regexp.Regexp
	honorPattern  *regexp.Regexp
	items         ItemResolver
}

// New 创建解析器，编译语言包模板
//
// 参数：
//   - loc: 当前语言环境的格式串
//   - items: 物品数据查询协作方
//
// 返回：
//   - *Parser: 解析器实例
//   - error: 任一模板编译失败时返回错误
func New(loc *config.LocaleConfig, items ItemResolver) (*Parser, error) {
	if err := loc.Validate(); err != nil {
		return nil, err
	}

	// 拾取模板锚定行首：其他玩家的拾取行使用不同模板，
	// 锚定后该过滤器只对本地玩家自己的拾取生效，与语言环境无关
	lootPattern, err := CompileTemplate(loc.LootSelf, true)
	if err != nil {
		return nil, err
	}

	goldPattern, err := CompileTemplate(loc.GoldAmount, false)
	if err != nil {
		return nil, err
	}
	silverPattern, err := CompileTemplate(loc.SilverAmount, false)
	if err != nil {
		return nil, err
	}
	copperPattern, err := CompileTemplate(loc.CopperAmount, false)
	if err != nil {
		return nil, err
	}

	honorPattern, err := compileHonorPattern(loc.HonorWord)
	if err != nil {
		return nil, err
	}

	return &Parser{
		lootPattern:   lootPattern,
		goldPattern:   goldPattern,
		silverPattern: silverPattern,
		copperPattern: copperPattern,
		honorPattern:  honorPattern,
		items:         items,
	}, nil
}

// ParseLoot 解析本地玩家的拾取聊天行
//
// 流程：
//  1. 消息匹配拾取模板，不匹配则忽略（高频、非异常，不记日志）
//  2. 从捕获文本中提取物品链接和可选的 xN 数量后缀
//  3. 先按链接、再按裸 ID 查询物品数据；查不到名称或图标则静默丢弃
//
// 返回：
//   - *LootFact: 解析出的拾取事实
//   - bool: 是否产生事实
func (p *Parser) ParseLoot(msg string) (*LootFact, bool) {
	m := p.lootPattern.FindStringSubmatch(msg)
	if m == nil {
		return nil, false
	}
	captured := m[1]

	lm := itemLinkPattern.FindStringSubmatch(captured)
	if lm == nil {
		return nil, false
	}
	link := lm[0]
	itemID, err := strconv.Atoi(lm[1])
	if err != nil {
		return nil, false
	}

	quantity := 1
	if qm := quantityPattern.FindStringSubmatch(captured); qm != nil {
		if n, err := strconv.Atoi(qm[1]); err == nil {
			quantity = n
		}
	}

	info, ok := p.items.ResolveLink(link)
	if !ok {
		// 链接未被缓存时，按裸 ID 做第二次查询
		info, ok = p.items.ResolveID(itemID)
	}
	if !ok || info.Name == "" || info.Icon == "" {
		return nil, false
	}

	return &LootFact{
		ItemID:   itemID,
		Name:     info.Name,
		Icon:     info.Icon,
		Quality:  info.Quality,
		Quantity: quantity,
	}, true
}

// ParseMoney 解析金钱获取聊天行
//
// 三种面额的模板独立匹配（一行可能包含任意子集），未匹配的面额记 0。
// 总额为 0 时不产生事实。
//
// 返回：
//   - *MoneyFact: 以最小货币单位表示的总额
//   - bool: 是否产生事实
func (p *Parser) ParseMoney(msg string) (*MoneyFact, bool) {
	total := 0
	total += matchAmount(p.goldPattern, msg) * CopperPerGold
	total += matchAmount(p.silverPattern, msg) * CopperPerSilver
	total += matchAmount(p.copperPattern, msg)

	if total == 0 {
		return nil, false
	}
	return &MoneyFact{Copper: total}, true
}

// ParseHonor 解析荣誉获取聊天行
//
// 优先捕获紧邻荣誉名词的带符号整数；失败时兜底取消息中第一个整数。
// 消息中没有任何整数时不产生事实。
//
// 返回：
//   - *HonorFact: 荣誉点数
//   - bool: 是否产生事实
func (p *Parser) ParseHonor(msg string) (*HonorFact, bool) {
	if m := p.honorPattern.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return &HonorFact{Points: n}, true
		}
	}

	// 兜底：取第一个整数（已知弱点，见包注释）
	if s := firstNumberPattern.FindString(msg); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return &HonorFact{Points: n}, true
		}
	}

	return nil, false
}

// matchAmount 用面额模板提取数量，未匹配返回 0
func matchAmount(re *regexp.Regexp, msg string) int {
	m := re.FindStringSubmatch(msg)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}
