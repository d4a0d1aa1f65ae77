package clickup

// Task is the server representation of a task as returned by the
// ClickUp API v2. Only the fields this client reads are mapped.
type Task struct {
	ID           string             `json:"id,omitempty"`
	Name         string             `json:"name,omitempty"`
	Description  string             `json:"description,omitempty"`
	Status       Status             `json:"status,omitempty"`
	OrderIndex   string             `json:"orderindex,omitempty"`
	Parent       string             `json:"parent,omitempty"`
	DueDate      string             `json:"due_date,omitempty"`
	StartDate    string             `json:"start_date,omitempty"`
	TimeEstimate int64              `json:"time_estimate,omitempty"`
	Tags         []Tag              `json:"tags,omitempty"`
	CustomFields []CustomFieldValue `json:"custom_fields,omitempty"`
	URL          string             `json:"url,omitempty"`
}

// Status pairs a status name with its position in the list's flow.
type Status struct {
	Status     string `json:"status,omitempty"`
	OrderIndex int    `json:"orderindex,omitempty"`
	Color      string `json:"color,omitempty"`
	Type       string `json:"type,omitempty"`
}

type List struct {
	ID       string   `json:"id,omitempty"`
	Name     string   `json:"name,omitempty"`
	Space    SpaceRef `json:"space,omitempty"`
	Statuses []Status `json:"statuses,omitempty"`
}

type SpaceRef struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
}

// Field is a list-scoped custom field definition.
type Field struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

type Tag struct {
	Name  string `json:"name,omitempty"`
	TagFg string `json:"tag_fg,omitempty"`
	TagBg string `json:"tag_bg,omitempty"`
}

// CustomFieldValue attaches a value to a custom field by its ID.
type CustomFieldValue struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}
