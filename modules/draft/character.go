package draft

import (
	"fmt"
	"math/rand"
	"strings"
)

// CharacterDraft - 캐릭터 초안 필드
type CharacterDraft struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	StylePrompt string `json:"stylePrompt"`
}

// 이름 트리거 (우선순위 순)
var characterNameRules = []keywordRule{
	{keywords: []string{"사이버", "cyber"}, korean: "네오", english: "Neo"},
	{keywords: []string{"판타지", "fantasy", "마법"}, korean: "아리아", english: "Aria"},
	{keywords: []string{"우주", "space", "별"}, korean: "노바", english: "Nova"},
	{keywords: []string{"달", "moon"}, korean: "루나", english: "Luna"},
}

// 이름 기본 풀
var koreanNamePool = []string{"루나", "아리아", "네오", "노바", "제나", "카이", "리나", "소라", "유나", "미카"}
var englishNamePool = []string{"Luna", "Aria", "Neo", "Nova", "Zena", "Kai", "Lina", "Sora", "Yuna", "Mika"}

// 스타일 태그 그룹 (트리거 키워드가 있으면 전체 그룹 추가)
type styleTagRule struct {
	keywords []string
	tags     []string
}

var styleTagRules = []styleTagRule{
	{keywords: []string{"사이버펑크", "cyberpunk"}, tags: []string{"cyberpunk aesthetic", "neon lighting", "futuristic cityscape background", "holographic effects"}},
	{keywords: []string{"판타지", "fantasy"}, tags: []string{"fantasy style", "magical aura", "ethereal lighting", "mystical background"}},
	{keywords: []string{"아이돌", "idol"}, tags: []string{"K-pop idol style", "stage lighting", "glamorous makeup", "trendy fashion"}},
	{keywords: []string{"로파이", "lofi"}, tags: []string{"lofi aesthetic", "warm lighting", "cozy atmosphere", "soft colors"}},
}

// 머리색 트리거
var hairColorRules = []styleTagRule{
	{keywords: []string{"파란", "blue"}, tags: []string{"vibrant blue hair"}},
	{keywords: []string{"보라", "purple"}, tags: []string{"purple gradient hair"}},
	{keywords: []string{"분홍", "pink"}, tags: []string{"pink hair with highlights"}},
}

// 성별 트리거
var femaleKeywords = []string{"여성", "여자", "woman", "girl", "female"}
var maleKeywords = []string{"남성", "남자", "man", "boy", "male"}

// 품질 강화 문구 (항상 마지막에 추가)
var qualityEnhancers = []string{"highly detailed", "professional quality", "8k resolution", "cinematic composition"}

// GenerateCharacterDraft - 프롬프트에서 캐릭터 초안 생성
func GenerateCharacterDraft(prompt string) CharacterDraft {
	return CharacterDraft{
		Name:        GenerateCharacterName(prompt),
		Description: GenerateCharacterDescription(prompt),
		StylePrompt: GenerateStylePrompt(prompt),
	}
}

// GenerateCharacterName - 키워드 트리거 기반 이름 선택, 미매치 시 풀에서 랜덤
func GenerateCharacterName(prompt string) string {
	lang := DetectLanguage(prompt)

	if rule, ok := firstMatch(characterNameRules, prompt); ok {
		return rule.pick(lang)
	}

	if lang == LanguageKorean {
		return koreanNamePool[rand.Intn(len(koreanNamePool))]
	}
	return englishNamePool[rand.Intn(len(englishNamePool))]
}

// GenerateCharacterDescription - 키워드별 템플릿에 원본 프롬프트 보간
func GenerateCharacterDescription(prompt string) string {
	lang := DetectLanguage(prompt)

	if containsAny(prompt, "아이돌", "idol") {
		if lang == LanguageKorean {
			return fmt.Sprintf("가상 아이돌 캐릭터. %s의 컨셉을 가진 AI 생성 캐릭터입니다.", prompt)
		}
		return fmt.Sprintf("Virtual idol character. An AI-generated character with %s concept.", prompt)
	}

	if containsAny(prompt, "사이버", "cyber") {
		if lang == LanguageKorean {
			return "미래 도시를 배경으로 한 사이버펑크 스타일의 캐릭터. 네온 조명과 하이테크 요소가 특징입니다."
		}
		return "Cyberpunk style character set in a futuristic city. Features neon lighting and high-tech elements."
	}

	if lang == LanguageKorean {
		return fmt.Sprintf("%s을 테마로 한 AI 생성 캐릭터입니다.", prompt)
	}
	return fmt.Sprintf("AI-generated character themed around %s.", prompt)
}

// GenerateStylePrompt - 성별 + 머리색 + 스타일 태그 + 품질 강화 문구를 ", "로 결합
// 조립 순서 고정: 성별 디스크립터가 맨 앞, 품질 강화 문구가 맨 뒤
func GenerateStylePrompt(prompt string) string {
	enhancements := []string{}

	// 머리색
	if rule, ok := firstStyleMatch(hairColorRules, prompt); ok {
		enhancements = append(enhancements, rule.tags...)
	} else {
		enhancements = append(enhancements, "stylish colored hair")
	}

	// 스타일 태그 그룹 (첫 매치 그룹만)
	if rule, ok := firstStyleMatch(styleTagRules, prompt); ok {
		enhancements = append(enhancements, rule.tags...)
	}

	// 성별 디스크립터를 맨 앞에
	var gender string
	switch {
	case containsAny(prompt, femaleKeywords...):
		gender = "beautiful young woman"
	case containsAny(prompt, maleKeywords...):
		gender = "handsome young man"
	default:
		gender = "beautiful character"
	}
	enhancements = append([]string{gender}, enhancements...)

	// 품질 강화 문구는 항상 마지막
	enhancements = append(enhancements, qualityEnhancers...)

	return strings.Join(enhancements, ", ")
}

// firstStyleMatch - 스타일 태그 규칙에서 첫 매치 반환
func firstStyleMatch(rules []styleTagRule, text string) (*styleTagRule, bool) {
	for i := range rules {
		if containsAny(text, rules[i].keywords...) {
			return &rules[i], true
		}
	}
	return nil, false
}

// containsAny - 키워드 중 하나라도 포함 여부
func containsAny(text string, keywords ...string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
