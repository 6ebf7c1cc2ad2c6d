package service

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"contactly-be/internal/entities"
	"contactly-be/internal/models"
	"contactly-be/internal/validation"
)

// Sort keys accepted by ListOptions.Sort.
const (
	SortName      = "name"
	SortBirthday  = "birthday"
	SortCreatedAt = "createdAt"
)

const (
	OrderAsc  = "asc"
	OrderDesc = "desc"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// ListOptions shapes a contact listing. The zero value returns every
// contact, newest first.
type ListOptions struct {
	Search   string
	Sort     string
	Order    string
	Favorite *bool
	Page     int
	Limit    int
}

// Paginated reports whether a page or page size was requested.
func (o ListOptions) Paginated() bool {
	return o.Page != 0 || o.Limit != 0
}

func (o *ListOptions) normalize() error {
	o.Search = strings.TrimSpace(o.Search)

	switch o.Sort {
	case "", SortName, SortBirthday, SortCreatedAt:
	default:
		return validation.NewError("sort", "sort must be one of name, birthday, createdAt")
	}

	switch o.Order {
	case OrderAsc, OrderDesc:
	case "":
		o.Order = OrderAsc
		if o.Sort == SortCreatedAt {
			o.Order = OrderDesc
		}
	default:
		return validation.NewError("order", "order must be asc or desc")
	}

	if !o.Paginated() {
		return nil
	}
	if o.Page < 0 {
		return validation.NewError("page", "page must be a positive number")
	}
	if o.Limit < 0 || o.Limit > MaxPageSize {
		return validation.NewError("limit", "limit must be between 1 and 100")
	}
	if o.Page == 0 {
		o.Page = 1
	}
	if o.Limit == 0 {
		o.Limit = DefaultPageSize
	}
	return nil
}

// shapeContacts filters, sorts and pages contacts. The input slice is not modified.
func shapeContacts(contacts []*entities.Contact, opts ListOptions) *models.ContactListResponse {
	out := make([]*entities.Contact, 0, len(contacts))
	fold := cases.Fold()
	needle := fold.String(opts.Search)
	for _, c := range contacts {
		if opts.Favorite != nil && c.Favorite != *opts.Favorite {
			continue
		}
		if needle != "" && !strings.Contains(fold.String(c.Name), needle) {
			continue
		}
		out = append(out, c)
	}

	if opts.Sort != "" {
		sortContacts(out, opts.Sort, opts.Order == OrderDesc)
	}

	resp := &models.ContactListResponse{Contacts: out}
	if !opts.Paginated() {
		return resp
	}

	total := len(out)
	totalPages := (total + opts.Limit - 1) / opts.Limit

	// pages past the end are empty
	start := total
	if opts.Page <= totalPages {
		start = (opts.Page - 1) * opts.Limit
	}
	end := min(start+opts.Limit, total)
	resp.Contacts = out[start:end]
	resp.Pagination = &models.Pagination{
		Total:      total,
		Page:       opts.Page,
		TotalPages: totalPages,
	}
	return resp
}

func sortContacts(contacts []*entities.Contact, key string, desc bool) {
	var compare func(a, b *entities.Contact) int

	switch key {
	case SortName:
		coll := collate.New(language.English, collate.IgnoreCase)
		compare = func(a, b *entities.Contact) int {
			return coll.CompareString(a.Name, b.Name)
		}
	case SortBirthday:
		// missing birthdays stay last in both directions
		slices.SortStableFunc(contacts, func(a, b *entities.Contact) int {
			switch {
			case a.Birthday == nil && b.Birthday == nil:
				return 0
			case a.Birthday == nil:
				return 1
			case b.Birthday == nil:
				return -1
			}
			r := a.Birthday.Compare(*b.Birthday)
			if desc {
				r = -r
			}
			return r
		})
		return
	case SortCreatedAt:
		compare = func(a, b *entities.Contact) int {
			return a.CreatedAt.Compare(b.CreatedAt)
		}
	default:
		return
	}

	slices.SortStableFunc(contacts, func(a, b *entities.Contact) int {
		r := compare(a, b)
		if r == 0 {
			r = cmp.Compare(a.ID, b.ID)
		}
		if desc {
			r = -r
		}
		return r
	})
}
