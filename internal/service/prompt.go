package service

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	LangTurkish = "tr"
	LangEnglish = "en"
)

const (
	maxShortOutput = 700
	shortOutputCut = 680
	maxShortParas  = 2
	promptProvider = "gemini"
)

const (
	promptRulesTR = `Aşağıdaki isteğe ÇOK KISA ve ÖZ yanıt ver. Kurallar:
- SADECE 1 paragraf, maksimum 2-3 cümle.
- Liste/madde işareti kullanma; akıcı düz metin yaz.
- Gevezelik etme; çok kısa ve net ol.
- Sosyal medya için uygun kısa içerik üret.`

	promptRulesEN = `Respond VERY BRIEFLY and CLEARLY. Rules:
- ONLY 1 paragraph, maximum 2-3 sentences.
- Do not use lists or headings.
- No fluff; be extremely concise and concrete.
- Create short social media friendly content.`
)

var (
	forceEnglish = regexp.MustCompile(`\bwrite (it|the answer)? in english\b|\benglish only\b`)
	forceTurkish = regexp.MustCompile(`(türkçe yaz|türkçe cevapla|cevabı türkçe yaz)`)
	turkishChars = regexp.MustCompile(`[çğıöşü]`)
	turkishWords = regexp.MustCompile(`\b(ve|bir|nedir|nasıl|için|hakkında|olarak|çok|daha|ama|fiyat|kadar)\b`)
	englishWords = regexp.MustCompile(`\b(the|and|what|how|why|is|are|with|about)\b`)
	asciiOnly    = regexp.MustCompile(`^[\x00-\x7F\s]+$`)

	bulletPrefix   = regexp.MustCompile(`(?m)^\s*[-*]\s+`)
	numberedPrefix = regexp.MustCompile(`(?m)^\s*\d+\.\s+`)
	headingPrefix  = regexp.MustCompile(`(?m)^#{1,6}\s+`)
	paraBreak      = regexp.MustCompile(`\n{2,}`)
	trailingWord   = regexp.MustCompile(`\s+\S*$`)
)

// detectLang 猜测提示语言，只区分土耳其语和英语；明确要求优先
func detectLang(prompt string) string {
	txt := strings.ToLower(prompt)

	switch {
	case forceEnglish.MatchString(txt):
		return LangEnglish
	case forceTurkish.MatchString(txt):
		return LangTurkish
	case turkishChars.MatchString(txt), turkishWords.MatchString(txt):
		return LangTurkish
	case englishWords.MatchString(txt):
		return LangEnglish
	case asciiOnly.MatchString(txt):
		return LangEnglish
	default:
		return LangTurkish
	}
}

// resolveLang 显式传入 tr/en 时使用，否则自动识别
func resolveLang(prompt, lang string) string {
	if lang == LangTurkish || lang == LangEnglish {
		return lang
	}
	return detectLang(prompt)
}

func buildPrompt(prompt, lang string) string {
	rules := promptRulesTR
	if lang == LangEnglish {
		rules = promptRulesEN
	}
	return rules + "\n\nUSER PROMPT:\n" + prompt
}

// enforceShortOutput 去掉列表和标题标记，最多保留两段，超过 700 字符在词边界截断
func enforceShortOutput(text string) string {
	if text == "" {
		return ""
	}

	t := bulletPrefix.ReplaceAllString(text, "")
	t = numberedPrefix.ReplaceAllString(t, "")
	t = headingPrefix.ReplaceAllString(t, "")

	paras := make([]string, 0, maxShortParas)
	for _, p := range paraBreak.Split(t, -1) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		paras = append(paras, p)
		if len(paras) == maxShortParas {
			break
		}
	}
	t = strings.Join(paras, "\n\n")

	if utf8.RuneCountInString(t) > maxShortOutput {
		t = string([]rune(t)[:shortOutputCut])
		t = trailingWord.ReplaceAllString(t, "") + "…"
	}
	return t
}
