package contentcalendar

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/janhavi-28/SEO-Agent/internal/common/llm"
)

var csvHeader = []string{"week", "platform", "title", "description", "suggested_format"}

// ToCSV flattens a generated calendar into one row per post. Weeks or posts
// of the wrong shape are skipped and missing fields are left blank. A parse
// failure has no calendar to export and returns llm.ErrParseFailure.
func ToCSV(calendar *llm.Result) ([]byte, error) {
	if calendar == nil || calendar.IsParseFailure() {
		return nil, llm.ErrParseFailure
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	weeks, _ := calendar.Object()["weeks"].([]interface{})
	for i, rawWeek := range weeks {
		week, ok := rawWeek.(map[string]interface{})
		if !ok {
			continue
		}
		weekNumber := cell(week["week_number"])
		if weekNumber == "" {
			weekNumber = fmt.Sprint(i + 1)
		}

		posts, _ := week["posts"].([]interface{})
		for _, rawPost := range posts {
			post, ok := rawPost.(map[string]interface{})
			if !ok {
				continue
			}
			row := []string{
				weekNumber,
				cell(post["platform"]),
				cell(post["title"]),
				cell(post["description"]),
				cell(post["suggested_format"]),
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cell(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}
