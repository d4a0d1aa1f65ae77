package clickup

import (
	"fmt"
	"io"
	"net/http"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const baseURL = "https://api.clickup.com/api/v2"

// Client talks to the ClickUp API v2. Every request carries the
// caller's token in the Authorization header and a fresh request id.
type Client struct {
	rc *resty.Client
}

func New(token string) *Client {
	return newClient(token, baseURL)
}

func newClient(token, base string) *Client {
	return &Client{
		rc: resty.New().
			SetBaseURL(base).
			SetHeader("Authorization", token),
	}
}

func (c *Client) r() *resty.Request {
	return c.rc.R().SetHeader("X-Request-Id", uuid.NewString())
}

// GetTask probes a task by id. Any non-success response reads as
// "not found"; an error is returned only for transport failure.
func (c *Client) GetTask(taskID string) (Task, bool, error) {
	var task Task
	resp, err := c.r().
		SetResult(&task).
		Get("/task/" + taskID)
	if err != nil {
		return Task{}, false, errors.Wrap(err, "error getting task")
	}
	if resp.IsError() {
		return Task{}, false, nil
	}
	return task, true, nil
}

func (c *Client) ListTasks(listID string) ([]Task, error) {
	var out struct {
		Tasks []Task `json:"tasks"`
	}
	resp, err := c.r().
		SetResult(&out).
		Get("/list/" + listID + "/task")
	if err != nil {
		return nil, errors.Wrap(err, "error getting tasks")
	}
	if resp.IsError() {
		return nil, errors.New(fmt.Sprintf("error getting tasks: %s", resp.Status()))
	}
	return out.Tasks, nil
}

func (c *Client) GetListsInSpace(spaceID string) ([]List, error) {
	return c.getLists("/space/" + spaceID + "/list")
}

func (c *Client) GetListsInFolder(folderID string) ([]List, error) {
	return c.getLists("/folder/" + folderID + "/list")
}

func (c *Client) getLists(path string) ([]List, error) {
	var out struct {
		Lists []List `json:"lists"`
	}
	resp, err := c.r().
		SetResult(&out).
		Get(path)
	if err != nil {
		return nil, errors.Wrap(err, "error getting lists")
	}
	if resp.IsError() {
		return nil, errors.New(fmt.Sprintf("error getting lists: %s", resp.Status()))
	}
	return out.Lists, nil
}

// FindListID resolves a list by name within a space, or within a
// folder when folderID is non-empty.
func (c *Client) FindListID(spaceID, listName, folderID string) (string, error) {
	var (
		lists []List
		err   error
	)
	if folderID == "" {
		lists, err = c.GetListsInSpace(spaceID)
	} else {
		lists, err = c.GetListsInFolder(folderID)
	}
	if err != nil {
		return "", err
	}
	for _, l := range lists {
		if l.Name == listName {
			return l.ID, nil
		}
	}
	if folderID == "" {
		return "", errors.New(fmt.Sprintf("no list named %q in space %s", listName, spaceID))
	}
	return "", errors.New(fmt.Sprintf("no list named %q in folder %s", listName, folderID))
}

func (c *Client) CreateTask(listID string, body map[string]any) (Task, error) {
	var task Task
	resp, err := c.r().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&task).
		Post("/list/" + listID + "/task")
	if err != nil {
		return Task{}, errors.Wrap(err, "error creating task")
	}
	if resp.IsError() {
		return Task{}, errors.New(fmt.Sprintf("error creating task: %s %s", resp.Status(), resp.String()))
	}
	return task, nil
}

func (c *Client) UpdateTask(taskID string, body map[string]any) (Task, error) {
	var task Task
	resp, err := c.r().
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&task).
		Put("/task/" + taskID)
	if err != nil {
		return Task{}, errors.Wrap(err, "error updating task")
	}
	if resp.IsError() {
		return Task{}, errors.New(fmt.Sprintf("error updating task: %s %s", resp.Status(), resp.String()))
	}
	return task, nil
}

func (c *Client) GetList(listID string) (List, error) {
	var list List
	resp, err := c.r().
		SetResult(&list).
		Get("/list/" + listID)
	if err != nil {
		return List{}, errors.Wrap(err, "error getting list")
	}
	if resp.IsError() {
		return List{}, errors.New(fmt.Sprintf("error getting list: %s", resp.Status()))
	}
	return list, nil
}

func (c *Client) GetListStatuses(listID string) ([]Status, error) {
	list, err := c.GetList(listID)
	if err != nil {
		return nil, err
	}
	return list.Statuses, nil
}

func (c *Client) GetListFields(listID string) ([]Field, error) {
	var out struct {
		Fields []Field `json:"fields"`
	}
	resp, err := c.r().
		SetResult(&out).
		Get("/list/" + listID + "/field")
	if err != nil {
		return nil, errors.Wrap(err, "error getting custom fields")
	}
	if resp.IsError() {
		return nil, errors.New(fmt.Sprintf("error getting custom fields: %s", resp.Status()))
	}
	return out.Fields, nil
}

func (c *Client) GetSpaceTags(spaceID string) ([]Tag, error) {
	var out struct {
		Tags []Tag `json:"tags"`
	}
	resp, err := c.r().
		SetResult(&out).
		Get("/space/" + spaceID + "/tag")
	if err != nil {
		return nil, errors.Wrap(err, "error getting space tags")
	}
	if resp.IsError() {
		return nil, errors.New(fmt.Sprintf("error getting space tags: %s", resp.Status()))
	}
	return out.Tags, nil
}

func (c *Client) UploadAttachment(taskID, filename string, attachment io.Reader) error {
	resp, err := c.r().
		SetFileReader("attachment", filename, attachment).
		Post("/task/" + taskID + "/attachment")
	if err != nil {
		return errors.Wrap(err, "error uploading attachment")
	}
	if resp.StatusCode() == http.StatusNotFound {
		return errors.New(fmt.Sprintf("error uploading attachment: task %s not found", taskID))
	}
	if resp.IsError() {
		return errors.New(fmt.Sprintf("error uploading attachment: %s", resp.Status()))
	}
	return nil
}
