package apiclient

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"

	"github.com/valyala/fasthttp"

	"github.com/fastygo/boilerplate/api/transport"
	"github.com/fastygo/boilerplate/domain"
)

// listCache keeps list results per query string until the next successful
// mutation of the same collection. Every invalidation bumps the generation so
// a fetch that overlapped a mutation cannot repopulate the cache.
type listCache[T any] struct {
	mu         sync.Mutex
	generation uint64
	entries    map[string]cachedList[T]
}

type cachedList[T any] struct {
	items []T
	total int
}

func newListCache[T any]() *listCache[T] {
	return &listCache[T]{entries: make(map[string]cachedList[T])}
}

// get returns the cached list for key, or the current generation to hand back
// to put once the list has been fetched.
func (c *listCache[T]) get(key string) ([]T, int, uint64, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return nil, 0, c.generation, false
	}
	return append([]T(nil), entry.items...), entry.total, c.generation, true
}

// put stores a fetched list unless the cache was invalidated since generation.
func (c *listCache[T]) put(generation uint64, key string, items []T, total int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return false
	}
	c.entries[key] = cachedList[T]{items: append([]T(nil), items...), total: total}
	return true
}

func (c *listCache[T]) invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.entries = make(map[string]cachedList[T])
}

func decodeData[T any](resp *Response) (T, error) {
	var out T
	if resp == nil || len(resp.Data) == 0 {
		return out, &Error{Kind: KindUnknown, Message: "response carried no data"}
	}
	if err := json.Unmarshal(resp.Data, &out); err != nil {
		return out, &Error{Kind: KindUnknown, Message: err.Error(), Err: err}
	}
	return out, nil
}

func fetchList[T any](ctx context.Context, c *Client, cache *listCache[T], path, query string) ([]T, int, error) {
	items, total, generation, ok := cache.get(query)
	if ok {
		return items, total, nil
	}
	uri := path
	if query != "" {
		uri += "?" + query
	}
	resp, err := c.Get(ctx, uri)
	if err != nil {
		return nil, 0, err
	}
	items, err = decodeData[[]T](resp)
	if err != nil {
		return nil, 0, err
	}
	total = len(items)
	if resp.Total != nil {
		total = *resp.Total
	}
	cache.put(generation, query, items, total)
	return items, total, nil
}

// TaskQuery narrows a task listing. The zero value lists everything.
type TaskQuery struct {
	Completed *bool
	Priority  domain.Priority
}

func (q TaskQuery) encode() string {
	args := fasthttp.AcquireArgs()
	defer fasthttp.ReleaseArgs(args)
	if q.Completed != nil {
		args.Set("completed", strconv.FormatBool(*q.Completed))
	}
	if q.Priority != "" {
		args.Set("priority", string(q.Priority))
	}
	return string(args.QueryString())
}

// Tasks is a typed view of /tasks.
type Tasks struct {
	client *Client
	lists  *listCache[domain.Task]
}

func NewTasks(client *Client) *Tasks {
	return &Tasks{client: client, lists: newListCache[domain.Task]()}
}

// List returns the matching tasks and their total, served from cache when
// nothing changed since the last identical query.
func (t *Tasks) List(ctx context.Context, q TaskQuery) ([]domain.Task, int, error) {
	return fetchList(ctx, t.client, t.lists, "/tasks", q.encode())
}

func (t *Tasks) Get(ctx context.Context, id string) (*domain.Task, error) {
	resp, err := t.client.Get(ctx, "/tasks/"+id)
	if err != nil {
		return nil, err
	}
	task, err := decodeData[domain.Task](resp)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *Tasks) Create(ctx context.Context, req transport.TaskCreateRequest) (*domain.Task, error) {
	resp, err := t.client.Post(ctx, "/tasks", req)
	if err != nil {
		return nil, err
	}
	t.lists.invalidate()
	task, err := decodeData[domain.Task](resp)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// Update sends only the fields set in req.
func (t *Tasks) Update(ctx context.Context, id string, req transport.TaskUpdateRequest) (*domain.Task, error) {
	resp, err := t.client.Put(ctx, "/tasks/"+id, req)
	if err != nil {
		return nil, err
	}
	t.lists.invalidate()
	task, err := decodeData[domain.Task](resp)
	if err != nil {
		return nil, err
	}
	return &task, nil
}

func (t *Tasks) Delete(ctx context.Context, id string) error {
	if _, err := t.client.Delete(ctx, "/tasks/"+id); err != nil {
		return err
	}
	t.lists.invalidate()
	return nil
}

// Users is a typed view of /users.
type Users struct {
	client *Client
	lists  *listCache[domain.User]
}

func NewUsers(client *Client) *Users {
	return &Users{client: client, lists: newListCache[domain.User]()}
}

func (u *Users) List(ctx context.Context) ([]domain.User, int, error) {
	return fetchList(ctx, u.client, u.lists, "/users", "")
}

func (u *Users) Get(ctx context.Context, id string) (*domain.User, error) {
	resp, err := u.client.Get(ctx, "/users/"+id)
	if err != nil {
		return nil, err
	}
	user, err := decodeData[domain.User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) Create(ctx context.Context, req transport.UserCreateRequest) (*domain.User, error) {
	resp, err := u.client.Post(ctx, "/users", req)
	if err != nil {
		return nil, err
	}
	u.lists.invalidate()
	user, err := decodeData[domain.User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) Update(ctx context.Context, id string, req transport.UserUpdateRequest) (*domain.User, error) {
	resp, err := u.client.Put(ctx, "/users/"+id, req)
	if err != nil {
		return nil, err
	}
	u.lists.invalidate()
	user, err := decodeData[domain.User](resp)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (u *Users) Delete(ctx context.Context, id string) error {
	if _, err := u.client.Delete(ctx, "/users/"+id); err != nil {
		return err
	}
	u.lists.invalidate()
	return nil
}
