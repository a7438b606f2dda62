// Package task serves admin task management and public task delivery.
package task

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/sashkashishka/balakanyna-sub000"
	"github.com/sashkashishka/balakanyna-sub000/middlewares"
	"github.com/sashkashishka/balakanyna-sub000/pkg/cache"
	"github.com/sashkashishka/balakanyna-sub000/pkg/id"
	"github.com/sashkashishka/balakanyna-sub000/pkg/sanitizer"
	"github.com/sashkashishka/balakanyna-sub000/repository"
)

// Error codes of this package.
const (
	CodeTaskNotFound = "TASK_NOT_FOUND"
	CodeTaskConflict = "TASK_CONFLICT"
	CodeInvalidID    = "INVALID_ID"
	CodeInvalidHash  = "INVALID_HASH"
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// Store is satisfied by *repository.Queries.
type Store interface {
	CreateTask(ctx context.Context, p repository.CreateTaskParams) (repository.Task, error)
	TaskByID(ctx context.Context, id int64) (repository.Task, error)
	TaskByHash(ctx context.Context, hash string) (repository.Task, error)
	ListTasks(ctx context.Context, limit, offset int) ([]repository.Task, error)
	DeleteTask(ctx context.Context, id int64) (repository.Task, error)
}

// CacheRecorder counts public lookups; *metrics.Metrics satisfies it.
type CacheRecorder interface {
	CacheHit()
	CacheMiss()
}

type Handler struct {
	tasks    Store
	cache    cache.Cache[repository.Task]
	recorder CacheRecorder
	ttl      time.Duration
}

// Option configures Handler.
type Option func(*Handler)

// WithCacheTTL sets how long a delivered task stays cached. Zero uses the cache default.
func WithCacheTTL(ttl time.Duration) Option {
	return func(h *Handler) {
		h.ttl = ttl
	}
}

// WithCacheRecorder counts cache hits and misses of public lookups.
func WithCacheRecorder(rec CacheRecorder) Option {
	return func(h *Handler) {
		if rec != nil {
			h.recorder = rec
		}
	}
}

func New(tasks Store, c cache.Cache[repository.Task], opts ...Option) *Handler {
	h := &Handler{tasks: tasks, cache: c, recorder: nopRecorder{}}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Routes(r *balakanyna.Router) {
	auth := middlewares.Auth()

	r.Post("/api/admin/task/create", auth, balakanyna.HandlerFunc(h.create))
	r.Get("/api/admin/task/get", auth, balakanyna.HandlerFunc(h.get))
	r.Get("/api/admin/task/list", auth, balakanyna.HandlerFunc(h.list))
	r.Post("/api/admin/task/delete", auth, balakanyna.HandlerFunc(h.delete))

	r.Get("/api/task", balakanyna.HandlerFunc(h.deliver))
}

type createRequest struct {
	Name   string          `json:"name"`
	Type   string          `json:"type"`
	Config json.RawMessage `json:"config"`
}

type deleteRequest struct {
	ID int64 `json:"id"`
}

type listResponse struct {
	Items  []repository.Task `json:"items"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

func (h *Handler) create(c *balakanyna.Context) error {
	var req createRequest
	if err := c.Bind(&req); err != nil {
		return err
	}

	// Task content is served to anonymous clients, so markup is stripped on write.
	name, typ := sanitizer.Text(req.Name), sanitizer.Text(req.Type)
	if name == "" || typ == "" {
		return balakanyna.ErrBadRequest("name and type are required",
			balakanyna.WithErrorCode(balakanyna.CodeInvalidBody))
	}
	config, err := sanitizer.JSON(req.Config)
	if err != nil {
		return balakanyna.ErrBadRequest("config must be valid JSON",
			balakanyna.WithErrorCode(balakanyna.CodeInvalidBody), balakanyna.WithError(err))
	}

	task, err := h.tasks.CreateTask(c.Context(), repository.CreateTaskParams{
		Hash:   c.Hash().Update([]byte(name)),
		Name:   name,
		Type:   typ,
		Config: config,
	})
	if errors.Is(err, repository.ErrConflict) {
		return balakanyna.ErrConflict("task hash already taken, retry",
			balakanyna.WithErrorCode(CodeTaskConflict), balakanyna.WithError(err))
	}
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, task)
}

func (h *Handler) get(c *balakanyna.Context) error {
	taskID := balakanyna.Query[int64](c, "id")
	if taskID <= 0 {
		return balakanyna.ErrBadRequest("id must be a positive integer", balakanyna.WithErrorCode(CodeInvalidID))
	}

	task, err := h.tasks.TaskByID(c.Context(), taskID)
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, task)
}

func (h *Handler) list(c *balakanyna.Context) error {
	limit := balakanyna.QueryDefault(c, "limit", defaultLimit)
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	offset := max(balakanyna.QueryDefault(c, "offset", 0), 0)

	tasks, err := h.tasks.ListTasks(c.Context(), limit, offset)
	if err != nil {
		return err
	}
	if tasks == nil {
		tasks = []repository.Task{}
	}
	return c.JSON(http.StatusOK, listResponse{Items: tasks, Limit: limit, Offset: offset})
}

func (h *Handler) delete(c *balakanyna.Context) error {
	var req deleteRequest
	if err := c.Bind(&req); err != nil {
		return err
	}
	if req.ID <= 0 {
		return balakanyna.ErrBadRequest("id must be a positive integer", balakanyna.WithErrorCode(CodeInvalidID))
	}

	task, err := h.tasks.DeleteTask(c.Context(), req.ID)
	if err != nil {
		return notFound(err)
	}

	if err := h.cache.Delete(c.Context(), cacheKey(task.Hash)); err != nil {
		c.Logger().WarnContext(c.Context(), "task cache eviction failed",
			"hash", task.Hash, "error", err.Error())
	}
	return c.JSON(http.StatusOK, map[string]bool{"ok": true})
}

// deliver serves a task by its public hash through the cache.
func (h *Handler) deliver(c *balakanyna.Context) error {
	hash, err := id.Canonical(c.Query("hash"))
	if err != nil || len(hash) != balakanyna.HashSize {
		return balakanyna.ErrBadRequest("invalid task hash", balakanyna.WithErrorCode(CodeInvalidHash))
	}

	hit := true
	task, err := cache.GetOrSet(c.Context(), h.cache, cacheKey(hash), h.ttl,
		func(ctx context.Context) (repository.Task, error) {
			hit = false
			return h.tasks.TaskByHash(ctx, hash)
		},
	)
	if hit {
		h.recorder.CacheHit()
	} else {
		h.recorder.CacheMiss()
	}
	if err != nil {
		return notFound(err)
	}
	return c.JSON(http.StatusOK, task)
}

func cacheKey(hash string) string {
	return "task:" + hash
}

func notFound(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return balakanyna.ErrNotFound("task not found", balakanyna.WithErrorCode(CodeTaskNotFound))
	}
	return err
}

type nopRecorder struct{}

func (nopRecorder) CacheHit()  {}
func (nopRecorder) CacheMiss() {}
