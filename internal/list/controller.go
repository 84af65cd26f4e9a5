// list — обобщённый контроллер постраничного списка ресурсов.
//
// Один и тот же контроллер обслуживает cars, users, stores и workshops:
// в исходном приложении каждая страница дублировала fetch/paginate/
// filter-логику с мелкими расхождениями, здесь она сведена в один
// параметризованный тип (поведенческий дрейф между ресурсами был
// багом, а не фичей).
//
// Каждая загрузка получает монотонно растущий порядковый номер;
// применяется только ответ, чей номер совпадает с последним выданным.
// Медленный ранний запрос не может затереть быстрый поздний —
// устаревшие ответы отбрасываются.
//
// Политика ошибок загрузки единая: прежние элементы и пагинация
// остаются на месте (stale-but-present), ошибка доступна в State.Err.
package list

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"

	"github.com/Moayad7/syriacar/internal/api"
	"github.com/Moayad7/syriacar/internal/models"
	"github.com/Moayad7/syriacar/internal/pkg/log"
)

// Item — элемент списка; контроллеру нужен только идентификатор.
type Item interface {
	ItemID() string
}

// Source — порт доступа к коллекции. Реализуется api.Resource[T].
type Source[T Item] interface {
	List(ctx context.Context, opts models.ListOptions) (*api.Page[T], error)
	Update(ctx context.Context, id string, patch any) (*T, error)
	Delete(ctx context.Context, id string) error
}

// State — снимок состояния списка. Возвращается по значению;
// мутировать его бесполезно, владелец состояния — контроллер.
type State[T Item] struct {
	Items      []T
	Pagination models.Pagination
	Filters    map[string]string
	Loading    bool
	Err        error
}

// Controller владеет состоянием одного списочного вида.
// Экземпляр не разделяется между видами. Потокобезопасен.
type Controller[T Item] struct {
	src      Source[T]
	name     string
	pageSize int

	mu    sync.Mutex
	seq   uint64
	state State[T]
}

// NewController создаёт контроллер коллекции name (имя — только для
// логов) с размером страницы pageSize.
func NewController[T Item](src Source[T], name string, pageSize int) *Controller[T] {
	if pageSize <= 0 {
		pageSize = 10
	}

	return &Controller[T]{
		src:      src,
		name:     name,
		pageSize: pageSize,
		state: State[T]{
			Filters:    map[string]string{},
			Pagination: models.Pagination{CurrentPage: 1, TotalPages: 1, PerPage: pageSize},
		},
	}
}

// State возвращает снимок текущего состояния.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.snapshotLocked()
}

// Load запрашивает страницу page с текущими фильтрами и целиком
// заменяет Items и Pagination (полная замена, не дозагрузка).
//
// Ответ, пришедший после того как контроллер выдал более новый номер
// загрузки, отбрасывается молча: состояние уже принадлежит новому
// запросу. Ошибка устаревшего запроса тоже не публикуется.
func (c *Controller[T]) Load(ctx context.Context, page int) error {
	const op = "list/controller/Load"

	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	c.seq++
	seq := c.seq
	opts := models.ListOptions{
		Page:    page,
		PerPage: c.pageSize,
		Filters: maps.Clone(c.state.Filters),
	}
	c.state.Loading = true
	c.mu.Unlock()

	lg := log.From(ctx)
	lg.Debug("list_load",
		slog.String("op", op),
		slog.String("resource", c.name),
		slog.Int("page", page),
		slog.Uint64("seq", seq),
	)

	res, err := c.src.List(ctx, opts)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq != c.seq {
		lg.Debug("list_load_stale_discard",
			slog.String("op", op),
			slog.String("resource", c.name),
			slog.Uint64("seq", seq),
			slog.Uint64("latest", c.seq),
		)

		return nil
	}

	c.state.Loading = false

	if err != nil {
		// Прежняя страница остаётся видимой.
		c.state.Err = err

		lg.Warn("list_load_failed",
			slog.String("op", op),
			slog.String("resource", c.name),
			slog.Int("page", page),
			slog.String("err", err.Error()),
		)

		return fmt.Errorf("%s: %s: %w", op, c.name, err)
	}

	c.state.Err = nil
	c.state.Items = res.Items
	c.state.Pagination = res.Pagination

	return nil
}

// SetPage переходит на страницу page, ограничив её диапазоном
// [1, TotalPages] по последней известной пагинации.
func (c *Controller[T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	if total := c.state.Pagination.TotalPages; total >= 1 && page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}
	c.mu.Unlock()

	return c.Load(ctx, page)
}

// SetFilter ставит (или снимает, при value == "") фильтр key,
// сбрасывает текущую страницу на первую и перезагружает список.
func (c *Controller[T]) SetFilter(ctx context.Context, key, value string) error {
	c.mu.Lock()
	if value == "" {
		delete(c.state.Filters, key)
	} else {
		c.state.Filters[key] = value
	}
	c.state.Pagination.CurrentPage = 1
	c.mu.Unlock()

	return c.Load(ctx, 1)
}

// Remove удаляет элемент на сервере и согласует локальное состояние:
// элемент выбрасывается из Items, TotalItems уменьшается на единицу.
// TotalPages не пересчитывается и перезагрузка не выполняется —
// страница может остаться недозаполненной до следующего Load; уход
// с опустевшей непервой страницы — явная обязанность вызывающего.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	const op = "list/controller/Remove"

	if err := c.src.Delete(ctx, id); err != nil {
		return fmt.Errorf("%s: %s: %w", op, c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Items = slices.DeleteFunc(c.state.Items, func(it T) bool {
		return it.ItemID() == id
	})
	if c.state.Pagination.TotalItems > 0 {
		c.state.Pagination.TotalItems--
	}

	log.From(ctx).Info("list_remove_ok",
		slog.String("op", op),
		slog.String("resource", c.name),
		slog.String("id", id),
	)

	return nil
}

// Update обновляет элемент на сервере и заменяет его на месте
// ответом сервера. Элемент вне текущей страницы просто не трогается.
func (c *Controller[T]) Update(ctx context.Context, id string, patch any) error {
	const op = "list/controller/Update"

	updated, err := c.src.Update(ctx, id, patch)
	if err != nil {
		return fmt.Errorf("%s: %s: %w", op, c.name, err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.state.Items {
		if c.state.Items[i].ItemID() == id {
			c.state.Items[i] = *updated
			break
		}
	}

	log.From(ctx).Info("list_update_ok",
		slog.String("op", op),
		slog.String("resource", c.name),
		slog.String("id", id),
	)

	return nil
}

func (c *Controller[T]) snapshotLocked() State[T] {
	return State[T]{
		Items:      slices.Clone(c.state.Items),
		Pagination: c.state.Pagination,
		Filters:    maps.Clone(c.state.Filters),
		Loading:    c.state.Loading,
		Err:        c.state.Err,
	}
}
