package features

// #region imports
import (
	"strings"
)

// #endregion

// #region keywords

var businessKeywords = []string{
	"company", "business", "revenue", "profit", "customer",
	"client", "enterprise", "corporate", "sales", "marketing",
}

var technicalKeywords = []string{
	"function", "variable", "algorithm", "database", "system",
	"code", "technical", "engineering", "api", "framework",
}

var personalKeywords = []string{
	"personal", "private", "my", "purchase", "expense",
	"diary", "note", "family", "friend", "home",
}

// #endregion

// #region dialect-markers

// dialectMarkers maps each detectable source dialect to its literal markers.
// Matching is case-sensitive; a dialect counts when any marker appears in the blob.
var dialectMarkers = []struct {
	name    string
	markers []string
}{
	{"python", []string{"def ", "import ", "class "}},
	{"javascript", []string{"function ", "var ", "const "}},
	{"sql", []string{"SELECT ", "INSERT ", "CREATE "}},
	{"json", []string{"{", "\":", "null"}},
	{"csv", []string{",", "header", "row"}},
}

// #endregion

// #region intent-table

// intentStrengths is the fixed utterance intent table. Absent intents score 0.
var intentStrengths = map[string]float64{
	"store":    0.9,
	"save":     0.9,
	"learn":    0.9,
	"analyze":  0.8,
	"organize": 0.8,
	"process":  0.7,
	"search":   0.6,
	"find":     0.6,
}

// #endregion

// #region extract

// Extract turns a (blob, utterance) pair into a Record. Pure; no I/O.
func Extract(blob, utterance string) Record {
	combined := strings.ToLower(blob + " " + utterance)

	return Record{
		LengthNorm:          clamp(float64(len(blob)) / 1000.0),
		Complexity:          complexityScore(blob),
		BusinessIndicators:  indicatorScore(combined, businessKeywords),
		TechnicalIndicators: indicatorScore(combined, technicalKeywords),
		PersonalIndicators:  indicatorScore(combined, personalKeywords),
		LanguageDiversity:   languageDiversity(blob),
		StructureType:       structureType(blob),
		UserIntentStrength:  intentStrength(utterance),
	}
}

// #endregion

// #region indicators

// indicatorScore counts keyword occurrences in the combined lowercase text,
// divided by 10 and clamped.
func indicatorScore(combined string, keywords []string) float64 {
	count := 0
	for _, kw := range keywords {
		count += strings.Count(combined, kw)
	}
	return clamp(float64(count) / 10.0)
}

// #endregion

// #region complexity

// complexityScore is the mean of four normalized signals: blob length,
// brace/bracket count, line count, and unique-token count.
func complexityScore(blob string) float64 {
	if blob == "" {
		return 0
	}
	length := clamp(float64(len(blob)) / 1000.0)
	braces := clamp(float64(strings.Count(blob, "{")+strings.Count(blob, "[")) / 10.0)
	lines := clamp(float64(1+strings.Count(blob, "\n")) / 20.0)

	tokens := strings.Fields(blob)
	unique := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		unique[t] = struct{}{}
	}
	uniqueNorm := clamp(float64(len(unique)) / 100.0)

	return clamp((length + braces + lines + uniqueNorm) / 4.0)
}

// #endregion

// #region diversity

// languageDiversity counts detected dialects out of five, divided by 5.
func languageDiversity(blob string) float64 {
	detected := 0
	for _, d := range dialectMarkers {
		for _, m := range d.markers {
			if strings.Contains(blob, m) {
				detected++
				break
			}
		}
	}
	return float64(detected) / 5.0
}

// #endregion

// #region structure

// structureType applies the ordered structure rules to the blob.
// Rules are case-sensitive except the SQL keyword check, which uppercases first.
func structureType(blob string) Structure {
	if strings.Contains(blob, "{") && strings.Contains(blob, "\"") {
		return StructureJSON
	}
	upper := strings.ToUpper(blob)
	if strings.Contains(upper, "SELECT") || strings.Contains(upper, "INSERT") {
		return StructureSQL
	}
	if strings.Contains(blob, "def ") || strings.Contains(blob, "class ") {
		return StructureCode
	}
	if strings.Contains(blob, ",") && strings.Contains(blob, "\n") {
		return StructureTabular
	}
	return StructureText
}

// #endregion

// #region intent

// intentStrength returns the maximum table weight among intents present
// in the lowercased utterance, else 0.
func intentStrength(utterance string) float64 {
	lower := strings.ToLower(utterance)
	var best float64
	for intent, strength := range intentStrengths {
		if strings.Contains(lower, intent) && strength > best {
			best = strength
		}
	}
	return best
}

// #endregion

// #region helpers

// clamp restricts v to [0, 1].
func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// #endregion
