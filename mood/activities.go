package mood

// Activities holds the fixed suggestion list per category.
var activities = map[Category][]string{
	Negative: {"🧘‍♀️ خذ وقت لنفسك وجرب تمارين التنفس", "☕ اجلس في مكان هادئ مع فنجان قهوة", "📓 عبّر عن مشاعرك في دفتر"},
	Neutral:  {"📚 اقرأ كتاب", "🚶‍♀️ نزهة خفيفة", "🧹 نظف غرفتك"},
	Positive: {"💬 شارك طاقتك", "💪 مارس رياضة", "🧠 تعلم شيء جديد"},
}

// Suggest returns the activity suggestions for a category. The returned slice is a copy.
func Suggest(c Category) []string {
	src := activities[c]
	out := make([]string, len(src))
	copy(out, src)
	return out
}
