package service

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contactly-be/internal/entities"
	"contactly-be/internal/validation"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sampleContacts() []*entities.Contact {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return []*entities.Contact{
		{ID: "4", Name: "zoe Adams", Birthday: date(1992, 3, 1), CreatedAt: base.Add(4 * time.Hour)},
		{ID: "3", Name: "Émile Zola", Favorite: true, CreatedAt: base.Add(3 * time.Hour)},
		{ID: "2", Name: "bob Brown", Birthday: date(1985, 7, 9), Favorite: true, CreatedAt: base.Add(2 * time.Hour)},
		{ID: "1", Name: "Alice Smith", Birthday: date(1990, 1, 15), CreatedAt: base.Add(time.Hour)},
	}
}

func ids(contacts []*entities.Contact) []string {
	out := make([]string, len(contacts))
	for i, c := range contacts {
		out[i] = c.ID
	}
	return out
}

func TestShapeContacts(t *testing.T) {
	yes, no := true, false

	tests := []struct {
		name string
		opts ListOptions
		want []string
	}{
		{name: "default keeps newest first", opts: ListOptions{}, want: []string{"4", "3", "2", "1"}},
		{name: "name ascending is collated", opts: ListOptions{Sort: SortName}, want: []string{"1", "2", "3", "4"}},
		{name: "name descending", opts: ListOptions{Sort: SortName, Order: OrderDesc}, want: []string{"4", "3", "2", "1"}},
		{name: "birthday ascending, missing last", opts: ListOptions{Sort: SortBirthday}, want: []string{"2", "1", "4", "3"}},
		{name: "birthday descending, missing last", opts: ListOptions{Sort: SortBirthday, Order: OrderDesc}, want: []string{"4", "1", "2", "3"}},
		{name: "createdAt defaults to descending", opts: ListOptions{Sort: SortCreatedAt}, want: []string{"4", "3", "2", "1"}},
		{name: "createdAt ascending", opts: ListOptions{Sort: SortCreatedAt, Order: OrderAsc}, want: []string{"1", "2", "3", "4"}},
		{name: "search is case-insensitive", opts: ListOptions{Search: "  SMITH "}, want: []string{"1"}},
		{name: "search matches substrings", opts: ListOptions{Search: "o"}, want: []string{"4", "3", "2"}},
		{name: "favorites only", opts: ListOptions{Favorite: &yes}, want: []string{"3", "2"}},
		{name: "non-favorites only", opts: ListOptions{Favorite: &no}, want: []string{"4", "1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := tt.opts
			require.NoError(t, opts.normalize())

			resp := shapeContacts(sampleContacts(), opts)
			assert.Equal(t, tt.want, ids(resp.Contacts))
			assert.Nil(t, resp.Pagination)
		})
	}
}

func TestShapeContacts_DoesNotReorderInput(t *testing.T) {
	in := sampleContacts()
	opts := ListOptions{Sort: SortName}
	require.NoError(t, opts.normalize())

	shapeContacts(in, opts)
	assert.Equal(t, []string{"4", "3", "2", "1"}, ids(in))
}

func TestShapeContacts_Pagination(t *testing.T) {
	opts := ListOptions{Limit: 3}
	require.NoError(t, opts.normalize())
	assert.Equal(t, 1, opts.Page)

	resp := shapeContacts(sampleContacts(), opts)
	assert.Equal(t, []string{"4", "3", "2"}, ids(resp.Contacts))
	require.NotNil(t, resp.Pagination)
	assert.Equal(t, 4, resp.Total)
	assert.Equal(t, 2, resp.TotalPages)

	opts = ListOptions{Page: 2, Limit: 3}
	require.NoError(t, opts.normalize())
	resp = shapeContacts(sampleContacts(), opts)
	assert.Equal(t, []string{"1"}, ids(resp.Contacts))

	opts = ListOptions{Page: 5, Limit: 3}
	require.NoError(t, opts.normalize())
	resp = shapeContacts(sampleContacts(), opts)
	assert.Empty(t, resp.Contacts)
	assert.NotNil(t, resp.Contacts)
	assert.Equal(t, 5, resp.Page)

	opts = ListOptions{Page: math.MaxInt, Limit: 100}
	require.NoError(t, opts.normalize())
	require.NotPanics(t, func() { resp = shapeContacts(sampleContacts(), opts) })
	assert.Empty(t, resp.Contacts)
	assert.NotNil(t, resp.Contacts)
	assert.Equal(t, math.MaxInt, resp.Page)
	assert.Equal(t, 1, resp.TotalPages)
}

func TestListOptions_Invalid(t *testing.T) {
	tests := []struct {
		opts  ListOptions
		field string
	}{
		{opts: ListOptions{Sort: "phone"}, field: "sort"},
		{opts: ListOptions{Order: "up"}, field: "order"},
		{opts: ListOptions{Page: -1}, field: "page"},
		{opts: ListOptions{Limit: 500}, field: "limit"},
	}

	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			opts := tt.opts
			err := opts.normalize()

			var vErr *validation.Error
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tt.field, vErr.Field)
		})
	}
}
