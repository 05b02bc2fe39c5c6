package draft

import (
	"math/rand"
	"strings"
)

// TrackDraft - 트랙 초안 필드
type TrackDraft struct {
	Title            string `json:"title"`
	Genre            string `json:"genre"`
	Lyrics           string `json:"lyrics"`
	GenerationPrompt string `json:"generationPrompt"`
}

// 제목 트리거 (우선순위 순)
var trackTitleRules = []keywordRule{
	{keywords: []string{"여름", "summer"}, korean: "한여름 밤의 드라이브", english: "Summer Night Drive"},
	{keywords: []string{"밤", "night"}, korean: "Midnight City", english: "Midnight City"},
	{keywords: []string{"드라이브", "drive"}, korean: "Neon Highway", english: "Neon Highway"},
	{keywords: []string{"사랑", "love"}, korean: "너에게로", english: "To You"},
	{keywords: []string{"별", "star"}, korean: "Starlight", english: "Starlight"},
	{keywords: []string{"비", "rain"}, korean: "Rainy Mood", english: "Rainy Mood"},
}

// 제목 기본 풀
var trackDefaultTitles = []string{"Midnight Glow", "City Lights", "Neon Dreams", "Electric Heart"}

// 장르 테이블 (명시적 장르명 우선, 무드 키워드는 후순위)
type genreRule struct {
	keywords []string
	genre    string
}

var genreRules = []genreRule{
	{keywords: []string{"시티팝", "city pop"}, genre: "city pop"},
	{keywords: []string{"케이팝", "k-pop", "kpop"}, genre: "k-pop"},
	{keywords: []string{"힙합", "hip-hop", "rap"}, genre: "hip-hop"},
	{keywords: []string{"로파이", "lo-fi", "lofi"}, genre: "lo-fi"},
	{keywords: []string{"일렉트로닉", "electronic", "edm"}, genre: "electronic"},
	{keywords: []string{"재즈", "jazz"}, genre: "jazz"},
	{keywords: []string{"록", "rock"}, genre: "rock"},
	{keywords: []string{"알앤비", "r&b"}, genre: "r&b"},
	{keywords: []string{"인디", "indie"}, genre: "indie"},
	// 무드 키워드 폴백
	{keywords: []string{"레트로", "80", "네온"}, genre: "city pop"},
	{keywords: []string{"편안", "chill", "relax"}, genre: "lo-fi"},
	{keywords: []string{"신나는", "upbeat", "dance"}, genre: "pop"},
}

// 장르별 기본 생성 프롬프트
var basePrompts = map[string]string{
	"city pop":   "upbeat city pop, 80s synth, groovy bass, warm analog sound, female vocals, 115-120 BPM, nostalgic retro vibe",
	"k-pop":      "energetic K-pop, catchy hook, powerful vocals, crisp production, dance beat, 125-130 BPM, modern pop sound",
	"pop":        "catchy pop melody, radio-friendly, polished production, uplifting mood, 120 BPM",
	"lo-fi":      "chill lo-fi hip hop, vinyl crackle, mellow piano, relaxing beats, 85 BPM, cozy atmosphere",
	"hip-hop":    "modern hip-hop beat, hard-hitting drums, 808 bass, trap hi-hats, 140 BPM",
	"electronic": "electronic dance music, synthesizers, drop build-up, energetic, 128 BPM",
	"jazz":       "smooth jazz, saxophone melody, soft drums, upright bass, sophisticated harmony",
	"rock":       "rock energy, electric guitars, powerful drums, raw vocals, 130 BPM",
	"r&b":        "smooth R&B, soulful vocals, groovy rhythm, warm production, 95 BPM",
	"indie":      "indie pop, dreamy guitars, atmospheric synths, introspective lyrics, 110 BPM",
}

// 무드 키워드 → 추가 문구 (매치된 순서대로 이어 붙임)
type moodRule struct {
	keywords []string
	suffix   string
}

var moodRules = []moodRule{
	{keywords: []string{"밤", "night"}, suffix: ", nighttime atmosphere, dreamy"},
	{keywords: []string{"여름", "summer"}, suffix: ", summer vibes, bright and warm"},
	{keywords: []string{"슬픈", "sad"}, suffix: ", emotional, melancholic undertones"},
	{keywords: []string{"신나는", "upbeat", "happy"}, suffix: ", uplifting energy, feel-good"},
}

// GenerateTrackDraft - 프롬프트에서 트랙 초안 생성 (네트워크 호출 없음)
func GenerateTrackDraft(prompt string) TrackDraft {
	genre := DetectGenre(prompt)

	return TrackDraft{
		Title:            GenerateTrackTitle(prompt),
		Genre:            genre,
		Lyrics:           GenerateLyrics(prompt, genre),
		GenerationPrompt: GenerateMusicPrompt(prompt, genre),
	}
}

// GenerateTrackTitle - 키워드 트리거 기반 제목 선택
func GenerateTrackTitle(prompt string) string {
	lang := DetectLanguage(prompt)

	if rule, ok := firstMatch(trackTitleRules, prompt); ok {
		return rule.pick(lang)
	}

	return trackDefaultTitles[rand.Intn(len(trackDefaultTitles))]
}

// DetectGenre - 소문자 변환 후 장르 테이블 매칭, 기본값 "pop"
func DetectGenre(prompt string) string {
	lowerPrompt := strings.ToLower(prompt)

	for _, rule := range genreRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lowerPrompt, kw) {
				return rule.genre
			}
		}
	}

	return "pop"
}

// GenerateLyrics - 장르 버킷(city pop / lo-fi / 기본)별 가사 템플릿 선택
func GenerateLyrics(prompt string, genre string) string {
	lang := DetectLanguage(prompt)

	if genre == "city pop" {
		if lang == LanguageKorean {
			return cityPopLyricsKorean
		}
		return cityPopLyricsEnglish
	}

	if genre == "lo-fi" {
		if lang == LanguageKorean {
			return loFiLyricsKorean
		}
		return loFiLyricsEnglish
	}

	if lang == LanguageKorean {
		return defaultLyricsKorean
	}
	return defaultLyricsEnglish
}

// GenerateMusicPrompt - 장르 기본 프롬프트 + 무드 키워드 문구 결합
func GenerateMusicPrompt(prompt string, genre string) string {
	musicPrompt, ok := basePrompts[genre]
	if !ok {
		musicPrompt = basePrompts["pop"]
	}

	for _, rule := range moodRules {
		for _, kw := range rule.keywords {
			if strings.Contains(prompt, kw) {
				musicPrompt += rule.suffix
				break
			}
		}
	}

	return musicPrompt
}

// 가사 템플릿
const cityPopLyricsKorean = `[Verse 1]
네온 불빛 아래 달리는 밤
창문 너머로 스쳐가는 도시
너의 목소리가 라디오처럼
내 마음속에 울려 퍼져

[Chorus]
Tonight, 이 밤이 끝나지 않게
달빛 아래 너와 함께
시간이 멈춘 것처럼
영원히 이 순간 속에`

const cityPopLyricsEnglish = `[Verse 1]
Neon lights guide us through the night
City skyline fading in the rearview
Your voice like a radio melody
Echoing through my heart

[Chorus]
Tonight, don't let this moment end
Under the moonlight with you
Time stands still
Forever in this dream`

const loFiLyricsKorean = `[Verse]
창밖의 빗소리
차 한잔의 온기
오늘도 그렇게
하루가 지나가

[Chorus]
괜찮아, 천천히
이 시간만큼은
나만의 것이니까`

const loFiLyricsEnglish = `[Verse]
Raindrops on my window
Warmth of a coffee cup
Another day passes by
Slowly and gently

[Chorus]
It's okay, take it slow
This moment is mine
And mine alone`

const defaultLyricsKorean = `[Verse 1]
새로운 시작을 알리는 아침
어제와는 다른 오늘이 될 거야
두려움 없이 한 걸음씩
나아가 볼게

[Chorus]
빛나는 내일을 향해
두 팔 벌려 날아올라
이 순간을 느껴봐
We're gonna shine tonight`

const defaultLyricsEnglish = `[Verse 1]
A new morning, a fresh start
Today will be different from yesterday
Step by step without fear
I'll keep moving forward

[Chorus]
Towards a shining tomorrow
Spread your wings and fly
Feel this moment now
We're gonna shine tonight`
