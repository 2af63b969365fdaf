package board

import "time"

// Normalize converts a loosely typed persisted payload into a valid Document.
// The persisted schema evolved over the product's history, so any field may
// be absent or wrong-typed; missing values are filled with defaults and the
// task status back-reference is re-derived from column membership.
//
// Malformed payloads never fail, they degrade to defaults. The returned flag
// reports that the resolved active-board id differs from the persisted one,
// in which case the caller should schedule a corrective write.
func Normalize(raw map[string]any) (Document, bool) {
	doc := Document{Boards: []Board{}}

	for _, item := range asSlice(raw["boards"]) {
		rawBoard, ok := item.(map[string]any)
		if !ok {
			continue
		}
		doc.Boards = append(doc.Boards, normalizeBoard(rawBoard))
	}

	persisted := asString(raw["activeBoardId"])
	doc.ActiveBoardID = resolveActive(doc.Boards, persisted)

	return doc, doc.ActiveBoardID != persisted
}

// resolveActive prefers the persisted id when it matches a board, then falls
// back to the first board, then to empty.
func resolveActive(boards []Board, persisted string) string {
	if persisted != "" {
		for _, b := range boards {
			if b.ID == persisted {
				return persisted
			}
		}
	}
	if len(boards) > 0 {
		return boards[0].ID
	}
	return ""
}

func normalizeBoard(raw map[string]any) Board {
	b := Board{
		ID:        stringOr(raw["id"], ""),
		Name:      stringOr(raw["name"], UntitledBoardName),
		Columns:   []Column{},
		CreatedAt: timeOr(raw["createdAt"], time.Now()),
	}
	if b.ID == "" {
		b.ID = NewID()
	}
	if theme := normalizeTheme(raw["theme"]); len(theme) > 0 {
		b.Theme = theme
	}
	for _, item := range asSlice(raw["columns"]) {
		rawColumn, ok := item.(map[string]any)
		if !ok {
			continue
		}
		b.Columns = append(b.Columns, normalizeColumn(rawColumn))
	}
	return b
}

func normalizeColumn(raw map[string]any) Column {
	c := Column{
		ID:    stringOr(raw["id"], ""),
		Title: stringOr(raw["title"], "Untitled Column"),
		Tasks: []Task{},
	}
	if c.ID == "" {
		c.ID = NewID()
	}
	if limit, ok := asInt(raw["wipLimit"]); ok {
		c.WIPLimit = &limit
	}
	for _, item := range asSlice(raw["tasks"]) {
		rawTask, ok := item.(map[string]any)
		if !ok {
			continue
		}
		task := normalizeTask(rawTask)
		// Canonical repair of the derived back-reference: membership wins
		// over whatever status was persisted.
		task.Status = c.ID
		c.Tasks = append(c.Tasks, task)
	}
	return c
}

func normalizeTask(raw map[string]any) Task {
	t := Task{
		ID:           stringOr(raw["id"], ""),
		Content:      stringOr(raw["content"], "Untitled Task"),
		Priority:     Priority(asString(raw["priority"])),
		Deadline:     asString(raw["deadline"]),
		Description:  asString(raw["description"]),
		Dependencies: stringsOf(raw["dependencies"]),
		Tags:         stringsOf(raw["tags"]),
		Checklist:    normalizeChecklist(raw["checklist"]),
		CreatedAt:    timeOr(raw["createdAt"], time.Now()),
	}
	if t.ID == "" {
		t.ID = NewID()
	}
	if !t.Priority.Valid() {
		t.Priority = PriorityMedium
	}
	return t
}

func normalizeChecklist(raw any) []ChecklistItem {
	items := []ChecklistItem{}
	for _, item := range asSlice(raw) {
		rawItem, ok := item.(map[string]any)
		if !ok {
			continue
		}
		entry := ChecklistItem{
			ID:        stringOr(rawItem["id"], ""),
			Text:      asString(rawItem["text"]),
			Completed: asBool(rawItem["completed"]),
		}
		if entry.ID == "" {
			entry.ID = NewID()
		}
		items = append(items, entry)
	}
	return items
}

func normalizeTheme(raw any) Theme {
	rawMap, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	theme := Theme{}
	for key, value := range rawMap {
		if s, ok := value.(string); ok && s != "" {
			theme[key] = s
		}
	}
	return theme
}

func asSlice(v any) []any {
	s, _ := v.([]any)
	return s
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}

func stringsOf(v any) []string {
	values := []string{}
	for _, item := range asSlice(v) {
		if s, ok := item.(string); ok {
			values = append(values, s)
		}
	}
	return values
}

func asBool(v any) bool {
	b, _ := v.(bool)
	return b
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case float64:
		return int(n), true
	case int:
		return n, true
	}
	return 0, false
}

// timeOr accepts the timestamp shapes seen in historical documents: RFC3339
// strings and unix-millis numbers.
func timeOr(v any, fallback time.Time) time.Time {
	switch ts := v.(type) {
	case string:
		if parsed, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			return parsed
		}
	case float64:
		if ts > 0 {
			return time.UnixMilli(int64(ts))
		}
	}
	return fallback
}
