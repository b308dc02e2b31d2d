// Package specifications describes repository reads declaratively: a typed
// filter, related-collection includes, ordering, paging, and a tracking flag.
// Specifications carry no persistence code; each repository implementation
// translates them into its store's native query form.
//
// Concrete query shapes are built through the named constructors in this
// package rather than ad hoc by callers, keeping them centrally reviewable
// and testable independent of the storage engine.
package specifications

// Field is the closed set of sortable columns across worldbuilding entities.
type Field string

const (
	FieldName         Field = "name"
	FieldCreatedAt    Field = "created_at"
	FieldChapterOrder Field = "chapter_order"
	FieldTier         Field = "tier"
)

// Sort is one ordering directive. Directives apply in declaration order.
type Sort struct {
	Field      Field
	Descending bool
}

// Include names a related collection to load alongside the entity.
type Include string

const (
	IncludeStories    Include = "stories"
	IncludeCharacters Include = "characters"
	IncludeChapters   Include = "chapters"
	IncludeContent    Include = "content" // chapter prose column, skipped by default reads
)

// Page bounds a list read.
type Page struct {
	Limit  int
	Offset int
}

// Spec is a declarative description of one read query against entity filter F.
// Tracking defaults to true (the caller intends to mutate and save the
// result); read-only specs set it false, which also makes them cache-eligible.
type Spec[F any] struct {
	Filter   F
	Includes []Include
	OrderBy  []Sort
	Page     *Page
	Tracking bool
}

// New returns a tracking Spec for the given filter.
func New[F any](filter F) Spec[F] {
	return Spec[F]{Filter: filter, Tracking: true}
}

// ReadOnly marks the spec non-tracking and returns it.
func (s Spec[F]) ReadOnly() Spec[F] {
	s.Tracking = false
	return s
}

// With appends include directives.
func (s Spec[F]) With(includes ...Include) Spec[F] {
	s.Includes = append(s.Includes, includes...)
	return s
}

// OrderedBy appends an ordering directive.
func (s Spec[F]) OrderedBy(field Field, descending bool) Spec[F] {
	s.OrderBy = append(s.OrderBy, Sort{Field: field, Descending: descending})
	return s
}

// Paged sets skip/take paging.
func (s Spec[F]) Paged(limit, offset int) Spec[F] {
	s.Page = &Page{Limit: limit, Offset: offset}
	return s
}

// HasInclude reports whether the spec asks for the given related collection.
func (s Spec[F]) HasInclude(inc Include) bool {
	for _, i := range s.Includes {
		if i == inc {
			return true
		}
	}
	return false
}
