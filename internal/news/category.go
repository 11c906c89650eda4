package news

import "strings"

// Category is a topical tag derived from a record's title.
type Category string

const (
	CategoryAdmissions Category = "招生"
	CategoryResearch   Category = "科研"
	CategoryCampus     Category = "校园"
	CategoryEvents     Category = "活动"
	CategoryNotices    Category = "公告"
	CategoryAcademic   Category = "学术"
	CategoryUniversity Category = "大学"
	CategoryOther      Category = "其他"
)

// categoryKeywords is checked in order; the first category with a keyword
// appearing as a substring of the lowercased title wins. Narrow categories
// come before broad ones so "复旦大学举办学术讲座" lands in 活动 via "讲座"
// instead of in 大学 via the school's own name.
var categoryKeywords = []struct {
	category Category
	keywords []string
}{
	{CategoryAdmissions, []string{"招生", "录取", "admissions"}},
	{CategoryResearch, []string{"实验", "发现", "突破", "discovery"}},
	{CategoryCampus, []string{"校园", "校园生活", "campus"}},
	{CategoryEvents, []string{"活动", "讲座", "会议", "event", "forum"}},
	{CategoryNotices, []string{"通知", "公告", "声明", "announcement"}},
	{CategoryAcademic, []string{"研究", "学术", "论文", "science", "research"}},
	{CategoryUniversity, []string{"大学", "学院", "university"}},
}

// Categorize maps a title to a category by substring keyword match.
// Matching is deliberately permissive (substrings, not tokens) to favor
// recall over precision; unmatched titles fall through to 其他.
func Categorize(title string) Category {
	lower := strings.ToLower(title)
	for _, entry := range categoryKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lower, kw) {
				return entry.category
			}
		}
	}
	return CategoryOther
}
