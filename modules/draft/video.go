package draft

import (
	"math/rand"
	"strings"
)

// VideoDraft - 뮤직비디오 초안 필드
type VideoDraft struct {
	Title       string `json:"title"`
	ScenePrompt string `json:"scenePrompt"`
}

// 비디오 제목 트리거 (우선순위 순)
var videoTitleRules = []keywordRule{
	{keywords: []string{"사이버펑크", "cyberpunk"}, korean: "Neon City Nights", english: "Neon City Nights"},
	{keywords: []string{"댄스", "dance"}, korean: "Electric Dance", english: "Electric Dance"},
	{keywords: []string{"드라이브", "drive"}, korean: "Midnight Drive", english: "Midnight Drive"},
	{keywords: []string{"로맨틱", "romantic", "사랑"}, korean: "Love Story", english: "Love Story"},
	{keywords: []string{"파티", "party"}, korean: "Party All Night", english: "Party All Night"},
}

// 비디오 제목 기본 풀
var videoDefaultTitles = []string{"Music Video", "Visual Story", "Dream Sequence", "Motion Art"}

// 씬 시퀀스 (5씬 고정, 트리거 우선순위: cyberpunk → dance → romantic → drive → 기본)
type sceneRule struct {
	keywords []string
	scenes   []string
}

var sceneRules = []sceneRule{
	{
		keywords: []string{"사이버펑크", "cyberpunk", "네온"},
		scenes: []string{
			"Opening: Aerial shot of neon-lit cityscape at night, rain-soaked streets reflecting colorful lights",
			"Scene 1: Character walking through busy streets, neon signs flickering, holographic advertisements",
			"Scene 2: Close-up shots intercut with wide shots of dancing in an underground club with laser lights",
			"Scene 3: Rooftop scene overlooking the city, wind in hair, city lights twinkling below",
			"Ending: Slow-motion shot fading into the neon horizon",
		},
	},
	{
		keywords: []string{"댄스", "dance"},
		scenes: []string{
			"Opening: Silhouette against bright backlight, beat drop reveals full scene",
			"Scene 1: Dynamic dance sequence with dramatic lighting changes",
			"Scene 2: Group formation shots with synchronized movements",
			"Scene 3: Solo spotlight moment with emotional performance",
			"Ending: Freeze frame on powerful pose",
		},
	},
	{
		keywords: []string{"로맨틱", "romantic", "사랑"},
		scenes: []string{
			"Opening: Soft focus morning light, intimate close-ups",
			"Scene 1: Two silhouettes walking together in golden hour light",
			"Scene 2: Montage of tender moments, stolen glances",
			"Scene 3: Dramatic separation scene with rain or sunset",
			"Ending: Reunion or hopeful look into the distance",
		},
	},
	{
		keywords: []string{"드라이브", "drive"},
		scenes: []string{
			"Opening: Dashboard POV, city lights streaming past",
			"Scene 1: Side profile shots through car window, city reflections",
			"Scene 2: Aerial tracking shot of car on highway at night",
			"Scene 3: Interior shots with character singing/lip-syncing",
			"Ending: Car disappearing into the distant highway lights",
		},
	},
}

// 기본 뮤직비디오 구조
var defaultScenes = []string{
	"Opening: Establishing shot setting the mood and location",
	"Scene 1: Introduction of character with medium shots",
	"Scene 2: Performance or narrative development with dynamic camera movement",
	"Scene 3: Climax moment with emotional peak",
	"Ending: Resolution with memorable final image",
}

// 기술 노트 푸터 (빈 줄 + 구분선 뒤에 추가)
var technicalNotes = []string{
	"",
	"---",
	"Technical: Cinematic color grading, smooth transitions between scenes, beat-synced cuts",
}

// GenerateVideoDraft - 프롬프트에서 비디오 초안 생성
func GenerateVideoDraft(prompt string) VideoDraft {
	return VideoDraft{
		Title:       GenerateVideoTitle(prompt),
		ScenePrompt: GenerateScenePrompt(prompt),
	}
}

// GenerateVideoTitle - 키워드 트리거 기반 제목 선택
func GenerateVideoTitle(prompt string) string {
	lang := DetectLanguage(prompt)

	if rule, ok := firstMatch(videoTitleRules, prompt); ok {
		return rule.pick(lang)
	}

	return videoDefaultTitles[rand.Intn(len(videoDefaultTitles))]
}

// GenerateScenePrompt - 씬 시퀀스 선택 후 기술 노트 푸터 결합
func GenerateScenePrompt(prompt string) string {
	scenes := defaultScenes

	for _, rule := range sceneRules {
		if containsAny(prompt, rule.keywords...) {
			scenes = rule.scenes
			break
		}
	}

	lines := append([]string{}, scenes...)
	lines = append(lines, technicalNotes...)

	return strings.Join(lines, "\n")
}
