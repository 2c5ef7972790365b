// Package subjectid 由科目名称生成稳定的科目标识。
//
// 规则：转小写，连续空白替换为 "_"，去除 [a-z0-9_] 以外的字符，截断为 24 个字符。
// 与前端生成的标识逐字一致，带重音的字母整体被去除。
// 结果为空时退化为 "subject_<毫秒时间戳>"，该分支不保证稳定。
package subjectid

import (
	"fmt"
	"strings"
	"time"
	"unicode"
)

const (
	maxLen         = 24
	fallbackPrefix = "subject_"
)

// Deriver 科目标识生成器，Now 为空时使用 time.Now
type Deriver struct {
	Now func() time.Time
}

// Derive 使用当前时间作为退化分支的生成器
func Derive(name string) string {
	return Deriver{}.Derive(name)
}

// Derive 生成科目标识，保证非空
func (d Deriver) Derive(name string) string {
	if s := Slug(name); s != "" {
		return s
	}
	now := time.Now
	if d.Now != nil {
		now = d.Now
	}
	return fmt.Sprintf("%s%d", fallbackPrefix, now().UnixMilli())
}

// Slug 纯函数部分；名称不含任何可保留字符时返回空串
func Slug(name string) string {
	lower := strings.ToLower(name)

	var b strings.Builder
	b.Grow(len(lower))

	inSpace := false
	for _, r := range lower {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte('_')
				inSpace = true
			}
			continue
		}
		inSpace = false
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' {
			b.WriteRune(r)
		}
	}

	out := b.String()
	if len(out) > maxLen {
		out = out[:maxLen]
	}
	return out
}

// Duplicates 返回出现不止一次的标识（按首次重复出现的顺序）
func Duplicates(ids []string) []string {
	seen := make(map[string]int, len(ids))
	var dups []string
	for _, id := range ids {
		if id == "" {
			continue
		}
		seen[id]++
		if seen[id] == 2 {
			dups = append(dups, id)
		}
	}
	return dups
}
