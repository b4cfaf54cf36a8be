package parser

import (
	"testing"

	"github.com/decker502/lootfeed/pkg/config"
	"github.com/decker502/lootfeed/pkg/quality"
)

// fakeResolver 测试用物品数据查询桩
type fakeResolver struct {
	byLink map[string]ItemInfo
	byID   map[int]ItemInfo
}

func (f *fakeResolver) ResolveLink(link string) (ItemInfo, bool) {
	info, ok := f.byLink[link]
	return info, ok
}

func (f *fakeResolver) ResolveID(id int) (ItemInfo, bool) {
	info, ok := f.byID[id]
	return info, ok
}

// testLink 生成测试用物品链接标记
const testLink = "|cff0070dd|Hitem:12345:0:0:0|h[Sword of Testing]|h|r"

func newTestParser(t *testing.T, resolver ItemResolver) *Parser {
	t.Helper()
	if resolver == nil {
		resolver = &fakeResolver{
			byLink: map[string]ItemInfo{
				testLink: {Name: "Sword of Testing", Icon: "inv_sword_04", Quality: quality.TierRare},
			},
		}
	}
	p, err := New(config.DefaultLocaleConfig(), resolver)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return p
}

// TestCompileTemplate 测试模板到匹配模式的编译
func TestCompileTemplate(t *testing.T) {
	tests := []struct {
		format   string
		anchored bool
		input    string
		want     string // 捕获组内容，空表示不匹配
	}{
		{"You receive loot: %s.", true, "You receive loot: [Apple].", "[Apple]"},
		{"You receive loot: %s.", true, "Bob receives loot: [Apple].", ""},
		// 模板中的正则元字符必须按字面匹配
		{"(%s) received.", true, "([Apple]) received.", "[Apple]"},
		{"%d Gold", false, "You loot 12 Gold", "12"},
	}

	for _, tt := range tests {
		re, err := CompileTemplate(tt.format, tt.anchored)
		if err != nil {
			t.Fatalf("CompileTemplate(%q) error: %v", tt.format, err)
		}
		m := re.FindStringSubmatch(tt.input)
		if tt.want == "" {
			if m != nil {
				t.Errorf("CompileTemplate(%q) matched %q, want no match", tt.format, tt.input)
			}
			continue
		}
		if m == nil {
			t.Errorf("CompileTemplate(%q) did not match %q", tt.format, tt.input)
			continue
		}
		if m[1] != tt.want {
			t.Errorf("CompileTemplate(%q) capture: got %q, want %q", tt.format, m[1], tt.want)
		}
	}
}

// TestParseLoot 测试本地玩家拾取行解析
func TestParseLoot(t *testing.T) {
	p := newTestParser(t, nil)

	fact, ok := p.ParseLoot("You receive loot: " + testLink + ".")
	if !ok {
		t.Fatal("ParseLoot() should yield a fact for own loot line")
	}
	if fact.Name != "Sword of Testing" {
		t.Errorf("Name: got %q, want %q", fact.Name, "Sword of Testing")
	}
	if fact.ItemID != 12345 {
		t.Errorf("ItemID: got %d, want 12345", fact.ItemID)
	}
	if fact.Quality != quality.TierRare {
		t.Errorf("Quality: got %d, want %d", fact.Quality, quality.TierRare)
	}
	if fact.Quantity != 1 {
		t.Errorf("Quantity: got %d, want 1 (no suffix)", fact.Quantity)
	}
}

// TestParseLootQuantitySuffix 测试 xN 数量后缀
func TestParseLootQuantitySuffix(t *testing.T) {
	p := newTestParser(t, nil)

	fact, ok := p.ParseLoot("You receive loot: " + testLink + "x3.")
	if !ok {
		t.Fatal("ParseLoot() should yield a fact")
	}
	if fact.Quantity != 3 {
		t.Errorf("Quantity: got %d, want 3", fact.Quantity)
	}
}

// TestParseLootOtherPlayer 测试他人拾取行不产生事实
func TestParseLootOtherPlayer(t *testing.T) {
	p := newTestParser(t, nil)

	// 他人拾取行使用不同模板，锚定匹配保证不误触发
	if _, ok := p.ParseLoot("Bob receives loot: " + testLink + "."); ok {
		t.Error("ParseLoot() should ignore other players' loot lines")
	}
}

// TestParseLootNoMatch 测试无关消息被忽略
func TestParseLootNoMatch(t *testing.T) {
	p := newTestParser(t, nil)

	tests := []string{
		"",
		"You gain 25 experience.",
		"You receive loot: plain text without a link.",
	}
	for _, msg := range tests {
		if _, ok := p.ParseLoot(msg); ok {
			t.Errorf("ParseLoot(%q) should not yield a fact", msg)
		}
	}
}

// TestParseLootFallbackToID 测试链接未缓存时按裸 ID 二次查询
func TestParseLootFallbackToID(t *testing.T) {
	resolver := &fakeResolver{
		byLink: map[string]ItemInfo{},
		byID: map[int]ItemInfo{
			12345: {Name: "Sword of Testing", Icon: "inv_sword_04", Quality: quality.TierRare},
		},
	}
	p := newTestParser(t, resolver)

	fact, ok := p.ParseLoot("You receive loot: " + testLink + ".")
	if !ok {
		t.Fatal("ParseLoot() should fall back to bare-ID lookup")
	}
	if fact.Name != "Sword of Testing" {
		t.Errorf("Name: got %q, want %q", fact.Name, "Sword of Testing")
	}
}

// TestParseLootUnresolved 测试物品数据查询失败时静默丢弃
func TestParseLootUnresolved(t *testing.T) {
	p := newTestParser(t, &fakeResolver{})

	if _, ok := p.ParseLoot("You receive loot: " + testLink + "."); ok {
		t.Error("ParseLoot() should drop the event when item lookup fails")
	}
}

// TestParseMoney 测试金钱行解析
func TestParseMoney(t *testing.T) {
	p := newTestParser(t, nil)

	tests := []struct {
		msg        string
		wantCopper int
		wantOK     bool
	}{
		// 单一面额
		{"You loot 7 Silver", 700, true},
		{"You loot 3 Copper", 3, true},
		{"You loot 2 Gold", 20000, true},
		// 组合面额
		{"You loot 1 Gold, 23 Silver, 45 Copper", 12345, true},
		{"You loot 5 Silver, 9 Copper", 509, true},
		// 无金额
		{"You loot nothing of value", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		fact, ok := p.ParseMoney(tt.msg)
		if ok != tt.wantOK {
			t.Errorf("ParseMoney(%q): got ok=%v, want %v", tt.msg, ok, tt.wantOK)
			continue
		}
		if ok && fact.Copper != tt.wantCopper {
			t.Errorf("ParseMoney(%q): got %d copper, want %d", tt.msg, fact.Copper, tt.wantCopper)
		}
	}
}

// TestParseHonor 测试荣誉行解析
func TestParseHonor(t *testing.T) {
	p := newTestParser(t, nil)

	tests := []struct {
		msg        string
		wantPoints int
		wantOK     bool
	}{
		// 数字紧邻荣誉名词
		{"You have been awarded 198 Honor Points.", 198, true},
		{"+50 honor", 50, true},
		// 主模式失败，兜底取第一个整数
		{"Estimated Honor: 150", 150, true},
		// 没有任何整数
		{"No honor today.", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		fact, ok := p.ParseHonor(tt.msg)
		if ok != tt.wantOK {
			t.Errorf("ParseHonor(%q): got ok=%v, want %v", tt.msg, ok, tt.wantOK)
			continue
		}
		if ok && fact.Points != tt.wantPoints {
			t.Errorf("ParseHonor(%q): got %d, want %d", tt.msg, fact.Points, tt.wantPoints)
		}
	}
}

// TestParseHonorFirstNumberFallback 测试兜底规则的已知弱点行为
//
// 兜底规则取消息中第一个整数，可能取到无关数字；
// 这里固定该行为，避免被"好心"收紧
func TestParseHonorFirstNumberFallback(t *testing.T) {
	p := newTestParser(t, nil)

	fact, ok := p.ParseHonor("Rank 3 grants bonus Honor-like rewards: 75")
	if !ok {
		t.Fatal("ParseHonor() fallback should yield a fact")
	}
	if fact.Points != 3 {
		t.Errorf("fallback points: got %d, want 3 (first integer in the string)", fact.Points)
	}
}
