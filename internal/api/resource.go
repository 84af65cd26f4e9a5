package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/Moayad7/syriacar/internal/models"
)

// Page — одна страница коллекции вместе с нормализованной пагинацией.
type Page[T any] struct {
	Items      []T
	Pagination models.Pagination
}

// listEnvelope — конверт списочных ответов бэкенда.
type listEnvelope[T any] struct {
	Data       []T `json:"data"`
	Pagination struct {
		CurrentPage int `json:"current_page"`
		LastPage    int `json:"last_page"`
		Total       int `json:"total"`
		PerPage     int `json:"per_page"`
	} `json:"pagination"`
}

// itemEnvelope — конверт одиночных ответов ({ data: {...} }).
type itemEnvelope[T any] struct {
	Data T `json:"data"`
}

// List запрашивает одну страницу коллекции path с параметрами
// page/per_page и фильтрами из opts.
//
// Пагинация: серверные current_page/last_page авторитетны; если сервер
// last_page не прислал, TotalPages = ceil(total / per_page), минимум 1.
func List[T any](ctx context.Context, c *Client, path string, opts models.ListOptions) (*Page[T], error) {
	const op = "api/resource/List"

	q := url.Values{}
	if opts.Page > 0 {
		q.Set("page", strconv.Itoa(opts.Page))
	}
	if opts.PerPage > 0 {
		q.Set("per_page", strconv.Itoa(opts.PerPage))
	}
	for k, v := range opts.Filters {
		if k != "" && v != "" {
			q.Set(k, v)
		}
	}

	var env listEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path, q, nil, &env, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	perPage := env.Pagination.PerPage
	if perPage <= 0 {
		perPage = opts.PerPage
	}
	if perPage <= 0 {
		perPage = len(env.Data)
	}

	p := models.Pagination{
		CurrentPage: env.Pagination.CurrentPage,
		TotalPages:  env.Pagination.LastPage,
		TotalItems:  env.Pagination.Total,
		PerPage:     perPage,
	}

	if p.TotalPages < 1 {
		p.TotalPages = 1
		if perPage > 0 && p.TotalItems > 0 {
			p.TotalPages = (p.TotalItems + perPage - 1) / perPage
		}
	}

	if p.CurrentPage < 1 {
		p.CurrentPage = max(opts.Page, 1)
	}
	if p.CurrentPage > p.TotalPages {
		p.CurrentPage = p.TotalPages
	}

	return &Page[T]{Items: env.Data, Pagination: p}, nil
}

// Get возвращает один элемент коллекции.
func Get[T any](ctx context.Context, c *Client, path, id string) (*T, error) {
	const op = "api/resource/Get"

	var env itemEnvelope[T]
	if err := c.do(ctx, http.MethodGet, path+"/"+url.PathEscape(id), nil, nil, &env, false); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &env.Data, nil
}

// Create создаёт элемент (POST path). Требует аутентификации.
func Create[T any](ctx context.Context, c *Client, path string, in any) (*T, error) {
	const op = "api/resource/Create"

	var env itemEnvelope[T]
	if err := c.do(ctx, http.MethodPost, path, nil, in, &env, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &env.Data, nil
}

// Update обновляет элемент (PUT path/{id}). Требует аутентификации.
// Возвращает состояние элемента из ответа сервера.
func Update[T any](ctx context.Context, c *Client, path, id string, patch any) (*T, error) {
	const op = "api/resource/Update"

	var env itemEnvelope[T]
	if err := c.do(ctx, http.MethodPut, path+"/"+url.PathEscape(id), nil, patch, &env, true); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &env.Data, nil
}

// Delete удаляет элемент (DELETE path/{id}). Требует аутентификации.
func Delete(ctx context.Context, c *Client, path, id string) error {
	const op = "api/resource/Delete"

	if err := c.do(ctx, http.MethodDelete, path+"/"+url.PathEscape(id), nil, nil, nil, true); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Resource связывает путь коллекции с типом элемента; list.Controller
// получает его через порт list.Source.
type Resource[T any] struct {
	c    *Client
	path string
}

// NewResource создаёт типизированный доступ к коллекции path
// (например, "/api/cars").
func NewResource[T any](c *Client, path string) *Resource[T] {
	return &Resource[T]{c: c, path: path}
}

func (r *Resource[T]) List(ctx context.Context, opts models.ListOptions) (*Page[T], error) {
	return List[T](ctx, r.c, r.path, opts)
}

func (r *Resource[T]) Get(ctx context.Context, id string) (*T, error) {
	return Get[T](ctx, r.c, r.path, id)
}

func (r *Resource[T]) Create(ctx context.Context, in any) (*T, error) {
	return Create[T](ctx, r.c, r.path, in)
}

func (r *Resource[T]) Update(ctx context.Context, id string, patch any) (*T, error) {
	return Update[T](ctx, r.c, r.path, id, patch)
}

func (r *Resource[T]) Delete(ctx context.Context, id string) error {
	return Delete(ctx, r.c, r.path, id)
}
