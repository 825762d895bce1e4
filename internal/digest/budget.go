package digest

// Hard output caps. Telegram rejects messages over 4096 characters; 3800
// leaves headroom for markup.
const (
	MaxMessageLen = 3800
	MaxDetailLen  = 2000
)

// enableHint is appended when no summary was produced.
const enableHint = "💡 Set an OpenAI API key to enable the AI weekly brief."

// Truncate cuts s to at most max runes. Not line-aware; a cut may land
// mid-word.
func Truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}

// ComposeFinal builds the deliverable message. With a summary, the brief
// leads and the raw report is demoted to a capped details block; without
// one, the raw report goes out with a hint line. Either way the result is
// capped to MaxMessageLen.
func ComposeFinal(raw, summary string) string {
	if summary == "" {
		return Truncate(raw+"\n\n"+enableHint, MaxMessageLen)
	}
	msg := "🧠 AI Weekly Brief\n" + summary +
		"\n\n—\n📌 Details\n" + Truncate(raw, MaxDetailLen)
	return Truncate(msg, MaxMessageLen)
}
