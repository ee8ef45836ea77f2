package content

// DefaultPageSize is the page size the CMS reports for unpaginated collections.
const DefaultPageSize = 25

type Pagination struct {
	Page      int `json:"page"`
	PageSize  int `json:"pageSize"`
	PageCount int `json:"pageCount"`
	Total     int `json:"total"`
}

type Meta struct {
	Pagination Pagination `json:"pagination"`
}

// Envelope is the collection wrapper returned by the CMS for list endpoints.
type Envelope[T any] struct {
	Data []T  `json:"data"`
	Meta Meta `json:"meta"`
}

// EmptyEnvelope is substituted for a list response when the CMS cannot be reached.
func EmptyEnvelope[T any]() Envelope[T] {
	return Envelope[T]{
		Data: []T{},
		Meta: Meta{Pagination: Pagination{Page: 1, PageSize: DefaultPageSize}},
	}
}

// First returns the first element of the collection, or nil when it is empty.
func (e Envelope[T]) First() *T {
	if len(e.Data) == 0 {
		return nil
	}
	v := e.Data[0]
	return &v
}

func (e Envelope[T]) IsEmpty() bool {
	return len(e.Data) == 0
}

type PostsResponse = Envelope[Post]
type PagesResponse = Envelope[Page]
type CategoriesResponse = Envelope[Category]
