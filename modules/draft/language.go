package draft

// Language - 감지된 입력 언어
type Language string

const (
	LanguageKorean  Language = "korean"
	LanguageEnglish Language = "english"
)

// DetectLanguage - 한글 음절 블록(가-힣) 포함 여부로 언어 판별
// 번역이 아니라 출력 문구 선택용
func DetectLanguage(text string) Language {
	for _, r := range text {
		if r >= '가' && r <= '힣' {
			return LanguageKorean
		}
	}
	return LanguageEnglish
}
