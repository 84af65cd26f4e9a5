package models

// Pagination — метаданные страницы списка.
// Инварианты: CurrentPage ∈ [1, TotalPages]; TotalPages >= 1;
// TotalItems >= 0. Если сервер не прислал last_page, TotalPages
// вычисляется как ceil(TotalItems / PerPage); серверное значение,
// если есть, авторитетно.
type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	PerPage     int
}

// ListOptions — параметры запроса одной страницы коллекции.
// Filters — произвольные пары ключ/значение (search, brand, status...),
// попадающие в query string как есть.
type ListOptions struct {
	Page    int
	PerPage int
	Filters map[string]string
}
