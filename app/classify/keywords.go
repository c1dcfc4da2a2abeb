package classify

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	acronymPattern  = regexp.MustCompile(`\b[A-Z]{3,}\b`)
	compoundPattern = regexp.MustCompile(`[가-힣]{2,8}(?:기술|시스템|플랫폼)`)
)

// techVocabulary is the fixed keyword dictionary tested by substring against
// the lowercased article text. Order is significant: matches are emitted in
// vocabulary order so extraction is reproducible.
var techVocabulary = []string{
	"ai", "인공지능", "machine learning", "머신러닝", "deep learning", "딥러닝",
	"chatgpt", "gpt", "llm", "생성형ai", "generative ai", "신경망", "neural network",
	"반도체", "semiconductor", "메모리", "memory", "dram", "nand", "hbm",
	"gpu", "cpu", "npu", "tpu", "fpga", "asic", "칩셋", "chipset",
	"삼성전자", "samsung", "sk하이닉스", "tsmc", "엔비디아", "nvidia",
	"5g", "6g", "lte", "와이파이", "wifi", "블루투스", "bluetooth",
	"클라우드", "cloud", "데이터센터", "data center", "서버", "server",
	"네트워크", "network", "cdn", "api", "sdk",
	"블록체인", "blockchain", "암호화폐", "cryptocurrency", "bitcoin", "비트코인",
	"ethereum", "이더리움", "nft", "defi", "메타버스", "metaverse",
	"자율주행", "autonomous", "전기차", "electric vehicle", "ev", "tesla", "테슬라",
	"배터리", "battery", "리튬", "lithium", "수소", "hydrogen",
	"보안", "security", "해킹", "hacking", "사이버", "cyber", "랜섬웨어", "ransomware",
	"개인정보", "privacy", "데이터보호", "gdpr", "제로트러스트", "zero trust",
	"오픈소스", "open source", "개발자", "developer", "프로그래밍", "programming",
	"python", "javascript", "react", "node.js", "docker", "kubernetes",
}

var stopWords = map[string]bool{
	"기자": true, "뉴스": true, "특파원": true, "오늘": true, "매우": true,
	"기사": true, "사진": true, "영상": true, "제공": true, "입력": true,
	"것": true, "수": true, "등": true, "및": true, "그리고": true,
	"그러나": true, "하지만": true, "지난": true, "이번": true, "관련": true,
	"대한": true, "통해": true, "대해": true, "위해": true,
	"입니다": true, "한다": true, "했다": true, "하였다": true, "에서는": true,
	"에서": true, "이날": true, "라며": true, "다고": true, "였다": true,
	"했다가": true, "하며": true,
	"the": true, "and": true, "for": true, "are": true, "but": true,
	"not": true, "you": true, "all": true, "can": true, "had": true,
	"her": true, "was": true, "one": true, "our": true,
}

// Keywords extracts the bounded keyword set for an article. Vocabulary
// matches come first in dictionary order, then acronym-shaped tokens from
// the original-case text in order of appearance. Stop words and
// single-character tokens are dropped, duplicates collapse
// case-insensitively, and the result is truncated to the configured cap.
func (c *Classifier) Keywords(title, text string) []string {
	if title == "" && text == "" {
		return []string{}
	}

	original := title + " " + text
	lowered := strings.ToLower(original)

	seen := make(map[string]bool)
	keywords := make([]string, 0, c.keywordCap)

	add := func(kw string) {
		if utf8.RuneCountInString(kw) < 2 {
			return
		}
		lower := strings.ToLower(kw)
		if stopWords[lower] || seen[lower] {
			return
		}
		seen[lower] = true
		keywords = append(keywords, kw)
	}

	for _, kw := range techVocabulary {
		if strings.Contains(lowered, kw) {
			add(kw)
		}
	}

	for _, match := range acronymPattern.FindAllString(original, -1) {
		add(match)
	}
	for _, match := range compoundPattern.FindAllString(original, -1) {
		add(match)
	}

	if c.keywordCap > 0 && len(keywords) > c.keywordCap {
		keywords = keywords[:c.keywordCap]
	}

	return keywords
}
