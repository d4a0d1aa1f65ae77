package draft

import (
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"updraft/internal/clickup"
)

// Service is the remote task service the draft submits to and
// validates against. *clickup.Client satisfies it.
type Service interface {
	GetTask(taskID string) (clickup.Task, bool, error)
	ListTasks(listID string) ([]clickup.Task, error)
	GetListsInSpace(spaceID string) ([]clickup.List, error)
	GetListsInFolder(folderID string) ([]clickup.List, error)
	CreateTask(listID string, body map[string]any) (clickup.Task, error)
	UpdateTask(taskID string, body map[string]any) (clickup.Task, error)
	GetList(listID string) (clickup.List, error)
	GetListStatuses(listID string) ([]clickup.Status, error)
	GetListFields(listID string) ([]clickup.Field, error)
	GetSpaceTags(spaceID string) ([]clickup.Tag, error)
	UploadAttachment(taskID, filename string, attachment io.Reader) error
}

var _ Service = (*clickup.Client)(nil)

// Draft accumulates a task body client-side, validates each field
// against local rules or lazily fetched reference data, and submits
// the whole body on Create or Update. A draft is bound to at most one
// remote task: Create binds the id exactly once, after which only
// Update and AddAttachment touch the remote copy.
//
// Reference data (statuses, custom field ids, space tags) is fetched
// at most once per draft and never invalidated. Not safe for
// concurrent use.
type Draft struct {
	svc    Service
	id     string
	listID string
	body   map[string]any

	customFields []clickup.CustomFieldValue
	watchersAdd  []int
	watchersRem  []int

	statuses         map[int]string
	fields           []clickup.Field
	fieldIDs         map[string]struct{}
	spaceID          string
	spaceTags        []clickup.Tag
	spaceTagsFetched bool

	// StartDateGraceDays is how many days in the past a start date
	// may lie. Defaults to 1.
	StartDateGraceDays int

	now func() time.Time
}

// New returns a draft bound to listID. Both name and listID may be
// empty; the list must be bound by Create time, the name set before.
func New(svc Service, name, listID string) *Draft {
	d := &Draft{
		svc:                svc,
		listID:             listID,
		body:               map[string]any{},
		StartDateGraceDays: 1,
		now:                time.Now,
	}
	if name != "" {
		d.body["name"] = name
	}
	return d
}

// ID is the remote task id, empty until Create succeeds.
func (d *Draft) ID() string {
	return d.id
}

// ListID is the destination list binding.
func (d *Draft) ListID() string {
	return d.listID
}

func (d *Draft) SetName(name string) {
	d.body["name"] = name
}

func (d *Draft) SetDescription(description string) {
	d.body["description"] = description
}

func (d *Draft) SetMarkdownDescription(description string) {
	d.body["markdown_description"] = description
}

// SetAssignees overwrites the assignee set, preserving input order.
func (d *Draft) SetAssignees(ids ...int) {
	d.body["assignees"] = append([]int(nil), ids...)
}

// SetTags overwrites body.tags. AddTag appends instead; the two are
// deliberately independent.
func (d *Draft) SetTags(tags ...string) {
	d.body["tags"] = append([]string(nil), tags...)
}

// SetPriority sets the task priority. When valid is non-empty the
// priority must be a member of it.
func (d *Draft) SetPriority(priority int, valid ...int) error {
	if len(valid) > 0 {
		ok := false
		for _, v := range valid {
			if v == priority {
				ok = true
				break
			}
		}
		if !ok {
			return newValidation("invalid priority %d, valid priorities are %v", priority, valid)
		}
	}
	d.body["priority"] = priority
	return nil
}

// SetStatus accepts a status only if it is one of the bound list's
// statuses, fetching them on first use.
func (d *Draft) SetStatus(status string) error {
	statuses, err := d.FetchStatuses()
	if err != nil {
		return err
	}
	for _, name := range statuses {
		if name == status {
			d.body["status"] = status
			return nil
		}
	}
	return newValidation("invalid status %q for list %s", status, d.listID)
}

// SetDueDate takes milliseconds since epoch; the instant must lie
// strictly in the future. specifyTime marks the due date as carrying
// an exact hour and minute.
func (d *Draft) SetDueDate(millis int64, specifyTime bool) error {
	due := time.UnixMilli(millis)
	if !due.After(d.now()) {
		return newValidation("due date %s must be in the future", due)
	}
	d.body["due_date"] = millis
	d.body["due_date_time"] = specifyTime
	return nil
}

// SetStartDate takes milliseconds since epoch; the instant may lie at
// most StartDateGraceDays days in the past.
func (d *Draft) SetStartDate(millis int64, specifyTime bool) error {
	start := time.UnixMilli(millis)
	grace := time.Duration(d.StartDateGraceDays) * 24 * time.Hour
	if elapsed := d.now().Sub(start); elapsed > grace {
		return newValidation("start date %s is more than %d day(s) in the past", start, d.StartDateGraceDays)
	}
	d.body["start_date"] = millis
	d.body["start_date_time"] = specifyTime
	return nil
}

// SetTimeEstimate takes an estimate in milliseconds.
func (d *Draft) SetTimeEstimate(millis int64) {
	d.body["time_estimate"] = millis
}

func (d *Draft) SetNotifyAll(notify bool) {
	d.body["notify_all"] = notify
}

// SetParent verifies the referenced task exists before linking it.
func (d *Draft) SetParent(taskID string) error {
	ok, err := d.CheckTaskValidity(taskID)
	if err != nil {
		return err
	}
	if !ok {
		return newValidation("invalid parent task id %q", taskID)
	}
	d.body["parent"] = taskID
	return nil
}

// SetLinksTo verifies the referenced task exists before linking it.
func (d *Draft) SetLinksTo(taskID string) error {
	ok, err := d.CheckTaskValidity(taskID)
	if err != nil {
		return err
	}
	if !ok {
		return newValidation("invalid linked task id %q", taskID)
	}
	d.body["links_to"] = taskID
	return nil
}

// AddWatcher queues a watcher id for addition. Watcher sets are
// duplicate-free and ordered.
func (d *Draft) AddWatcher(id int) {
	d.watchersAdd = appendUnique(d.watchersAdd, id)
	d.syncWatchers()
}

// RemoveWatcher queues a watcher id for removal.
func (d *Draft) RemoveWatcher(id int) {
	d.watchersRem = appendUnique(d.watchersRem, id)
	d.syncWatchers()
}

func (d *Draft) syncWatchers() {
	d.body["watchers"] = map[string][]int{
		"add": d.watchersAdd,
		"rem": d.watchersRem,
	}
}

func appendUnique(ids []int, id int) []int {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// AddCustomField appends a {id, value} entry after checking the id
// against the list's field definitions, fetched on first use.
// Entries are append-only: repeated adds for the same id produce
// duplicate entries.
func (d *Draft) AddCustomField(id, value string) error {
	if err := d.fetchFieldIDs(); err != nil {
		return err
	}
	if _, ok := d.fieldIDs[id]; !ok {
		return newValidation("invalid custom field id %q", id)
	}
	d.customFields = append(d.customFields, clickup.CustomFieldValue{ID: id, Value: value})
	d.body["custom_fields"] = append([]clickup.CustomFieldValue(nil), d.customFields...)
	return nil
}

// AddTag appends a tag to body.tags. The space's tags are fetched as
// a precondition but the name is not checked against them; that
// matches upstream behavior.
func (d *Draft) AddTag(name string) error {
	if _, err := d.FetchSpaceTags(); err != nil {
		return err
	}
	tags, _ := d.body["tags"].([]string)
	d.body["tags"] = append(tags, name)
	return nil
}

// Create submits the body to the bound list and binds the returned
// task id. A non-empty listID rebinds the destination first. Legal
// exactly once per draft.
func (d *Draft) Create(listID string) error {
	if listID != "" {
		d.listID = listID
	}
	if d.listID == "" {
		return newState("no list bound")
	}
	if d.id != "" {
		return newState("task already created")
	}
	name, _ := d.body["name"].(string)
	if strings.TrimSpace(name) == "" {
		return newState("task name missing or empty")
	}
	task, err := d.svc.CreateTask(d.listID, d.body)
	if err != nil {
		return wrapRemote("create task", err)
	}
	if task.ID == "" {
		return wrapRemote("create task", errNoID)
	}
	d.id = task.ID
	log.Debug().Str("taskID", d.id).Str("listID", d.listID).Msg("task created")
	return nil
}

// Update resubmits the current body to the created task and returns
// the server's representation.
func (d *Draft) Update() (clickup.Task, error) {
	if d.id == "" {
		return clickup.Task{}, newState("task not created yet")
	}
	task, err := d.svc.UpdateTask(d.id, d.body)
	if err != nil {
		return clickup.Task{}, wrapRemote("update task", err)
	}
	return task, nil
}

// Clear resets the body and custom field entries so the draft can be
// reused as a template. The id, list binding and reference caches
// survive.
func (d *Draft) Clear() {
	d.body = map[string]any{}
	d.customFields = nil
	d.watchersAdd = nil
	d.watchersRem = nil
}

// AddAttachment uploads a file to the created task.
func (d *Draft) AddAttachment(attachment io.Reader, filename string) error {
	if d.id == "" {
		return newState("task not created yet")
	}
	if err := d.svc.UploadAttachment(d.id, filename, attachment); err != nil {
		return wrapRemote("upload attachment", err)
	}
	return nil
}

// CheckTaskValidity probes a task's existence. An empty taskID probes
// the draft's own task. A negative answer is a plain false; an error
// means the probe itself failed.
func (d *Draft) CheckTaskValidity(taskID string) (bool, error) {
	if taskID == "" {
		if d.id == "" {
			return false, newState("no task to check, no id given")
		}
		taskID = d.id
	}
	_, found, err := d.svc.GetTask(taskID)
	if err != nil {
		return false, wrapRemote("check task", err)
	}
	return found, nil
}

// FetchStatuses returns the bound list's statuses keyed by order
// index, fetching them on first call.
func (d *Draft) FetchStatuses() (map[int]string, error) {
	if d.statuses != nil {
		return d.statuses, nil
	}
	if d.listID == "" {
		return nil, newValidation("no list bound, cannot fetch statuses")
	}
	statuses, err := d.svc.GetListStatuses(d.listID)
	if err != nil {
		return nil, wrapRemote("fetch statuses", err)
	}
	d.statuses = make(map[int]string, len(statuses))
	for _, s := range statuses {
		d.statuses[s.OrderIndex] = s.Status
	}
	log.Debug().Int("count", len(d.statuses)).Str("listID", d.listID).Msg("statuses cached")
	return d.statuses, nil
}

// FirstStatus returns the status at order index 0.
func (d *Draft) FirstStatus() (string, error) {
	statuses, err := d.FetchStatuses()
	if err != nil {
		return "", err
	}
	name, ok := statuses[0]
	if !ok {
		return "", newValidation("list %s has no status at order index 0", d.listID)
	}
	return name, nil
}

// FetchCustomFieldDefinitions returns the bound list's custom field
// definitions, fetching them on first call.
func (d *Draft) FetchCustomFieldDefinitions() ([]clickup.Field, error) {
	if err := d.fetchFieldIDs(); err != nil {
		return nil, err
	}
	return d.fields, nil
}

func (d *Draft) fetchFieldIDs() error {
	if d.fieldIDs != nil {
		return nil
	}
	if d.listID == "" {
		return newValidation("no list bound, cannot fetch custom fields")
	}
	fields, err := d.svc.GetListFields(d.listID)
	if err != nil {
		return wrapRemote("fetch custom fields", err)
	}
	d.fields = fields
	d.fieldIDs = make(map[string]struct{}, len(fields))
	for _, f := range fields {
		d.fieldIDs[f.ID] = struct{}{}
	}
	log.Debug().Int("count", len(d.fields)).Str("listID", d.listID).Msg("custom fields cached")
	return nil
}

// CustomFieldIDByName scans the fetched definitions for the first
// field with the given name. The second return reports whether a
// match was found.
func (d *Draft) CustomFieldIDByName(name string) (string, bool, error) {
	fields, err := d.FetchCustomFieldDefinitions()
	if err != nil {
		return "", false, err
	}
	for _, f := range fields {
		if f.Name == name {
			return f.ID, true, nil
		}
	}
	return "", false, nil
}

// FetchSpaceID resolves the id of the space owning the bound list,
// fetching it on first call.
func (d *Draft) FetchSpaceID() (string, error) {
	if d.spaceID != "" {
		return d.spaceID, nil
	}
	if d.listID == "" {
		return "", newValidation("no list bound, cannot resolve space")
	}
	list, err := d.svc.GetList(d.listID)
	if err != nil {
		return "", wrapRemote("fetch space id", err)
	}
	if list.Space.ID == "" {
		return "", wrapRemote("fetch space id", errNoSpace)
	}
	d.spaceID = list.Space.ID
	return d.spaceID, nil
}

// FetchSpaceTags returns the tags defined in the list's space,
// fetching them on first call.
func (d *Draft) FetchSpaceTags() ([]clickup.Tag, error) {
	if d.spaceTagsFetched {
		return d.spaceTags, nil
	}
	spaceID, err := d.FetchSpaceID()
	if err != nil {
		return nil, err
	}
	tags, err := d.svc.GetSpaceTags(spaceID)
	if err != nil {
		return nil, wrapRemote("fetch space tags", err)
	}
	d.spaceTags = tags
	d.spaceTagsFetched = true
	return d.spaceTags, nil
}
