package draft

import "strings"

// keywordRule - (트리거 키워드 집합 → 결과) 쌍
// 슬라이스 순서가 곧 우선순위 (위에서부터 첫 매치 승리)
type keywordRule struct {
	keywords []string
	korean   string
	english  string
}

// pick - 언어 브랜치에 맞는 결과 선택
func (r *keywordRule) pick(lang Language) string {
	if lang == LanguageKorean {
		return r.korean
	}
	return r.english
}

// firstMatch - 우선순위 순서대로 평가해 첫 매치 반환
func firstMatch(rules []keywordRule, text string) (*keywordRule, bool) {
	for i := range rules {
		for _, kw := range rules[i].keywords {
			if strings.Contains(text, kw) {
				return &rules[i], true
			}
		}
	}
	return nil, false
}
