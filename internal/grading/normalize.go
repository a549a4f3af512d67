package grading

import (
	"strings"
	"unicode/utf8"
)

// 关键术语的最小长度（字符数），低于该长度的词不参与论述题匹配
const keyTermMinLen = 3

// normalize 统一比较口径：去首尾空格并转小写
func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// tokenSet 将文本拆分为小写词集合
func tokenSet(s string) map[string]struct{} {
	fields := strings.Fields(normalize(s))
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

// overlapCount 两个词集合的交集大小
func overlapCount(a, b map[string]struct{}) int {
	n := 0
	for t := range a {
		if _, ok := b[t]; ok {
			n++
		}
	}
	return n
}

// keyTerms 从标准答案中抽取关键术语：按空白切词，保留长度大于 3 的词
func keyTerms(s string) []string {
	var terms []string
	for _, term := range strings.Fields(s) {
		if utf8.RuneCountInString(term) > keyTermMinLen {
			terms = append(terms, term)
		}
	}
	return terms
}

// truncateRunes 按字符数截断（避免切断多字节字符）
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
