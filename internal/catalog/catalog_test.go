package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"
)

func decodeDoc(t *testing.T, d bson.D) courseDoc {
	t.Helper()
	raw, err := bson.Marshal(d)
	require.NoError(t, err)
	var doc courseDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	return doc
}

func TestToCourse_FullDocument(t *testing.T) {
	t.Parallel()

	id := bson.NewObjectID()
	doc := decodeDoc(t, bson.D{
		{Key: "_id", Value: id},
		{Key: "title", Value: "เบเกอรี่เบื้องต้น"},
		{Key: "description", Value: "คอร์สสำหรับมือใหม่"},
		{Key: "price", Value: "2500"},
		{Key: "image", Value: "https://img.example.com/a.jpg"},
		{Key: "link", Value: "https://example.com/enroll"},
		{Key: "status", Value: "open"},
		{Key: "category", Value: "เบเกอรี่"},
		{Key: "keyword", Value: "ขนมปัง, croissant"},
		{Key: "active", Value: true},
	})

	course, active := doc.toCourse()
	require.True(t, active)
	assert.Equal(t, id.Hex(), course.ID)
	assert.Equal(t, "เบเกอรี่เบื้องต้น", course.Title)
	assert.Equal(t, "คอร์สสำหรับมือใหม่", course.Description)
	assert.Equal(t, "2500", course.Price)
	assert.Equal(t, "https://img.example.com/a.jpg", course.ImageURL)
	assert.Equal(t, "https://example.com/enroll", course.Link)
	assert.Equal(t, "open", course.Status)
	assert.Equal(t, "เบเกอรี่", course.Category)
	assert.Equal(t, "ขนมปัง, croissant", course.Keyword)
	assert.True(t, course.HasImage())
	assert.True(t, course.HasLink())
}

func TestToCourse_ActiveStrictness(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		doc    bson.D
		active bool
	}{
		{"boolean true", bson.D{{Key: "active", Value: true}}, true},
		{"boolean false", bson.D{{Key: "active", Value: false}}, false},
		{"string true", bson.D{{Key: "active", Value: "true"}}, false},
		{"number one", bson.D{{Key: "active", Value: 1}}, false},
		{"missing", bson.D{{Key: "name", Value: "x"}}, false},
		{"null", bson.D{{Key: "active", Value: nil}}, false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, active := decodeDoc(t, tt.doc).toCourse()
			assert.Equal(t, tt.active, active)
		})
	}
}

func TestToCourse_MissingFieldsDefaultToEmpty(t *testing.T) {
	t.Parallel()

	doc := decodeDoc(t, bson.D{{Key: "active", Value: true}})

	course, active := doc.toCourse()
	require.True(t, active)
	assert.Empty(t, course.ID)
	assert.Empty(t, course.Title)
	assert.Empty(t, course.Description)
	assert.Empty(t, course.Price)
	assert.Empty(t, course.ImageURL)
	assert.Empty(t, course.Link)
	assert.Empty(t, course.Category)
	assert.False(t, course.HasImage())
	assert.False(t, course.HasLink())
}

func TestKeywords(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		keyword string
		want    []string
	}{
		{"multiple", "ขนมปัง,croissant, cake", []string{"ขนมปัง", "croissant", " cake"}},
		{"single", "เค้ก", []string{"เค้ก"}},
		{"empty yields one empty entry", "", []string{""}},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Course{Keyword: tt.keyword}.Keywords())
		})
	}
}

func TestRawID(t *testing.T) {
	t.Parallel()

	t.Run("string id passes through", func(t *testing.T) {
		t.Parallel()
		doc := decodeDoc(t, bson.D{
			{Key: "_id", Value: "course-42"},
			{Key: "active", Value: true},
		})
		course, _ := doc.toCourse()
		assert.Equal(t, "course-42", course.ID)
	})

	t.Run("numeric id drops", func(t *testing.T) {
		t.Parallel()
		doc := decodeDoc(t, bson.D{
			{Key: "_id", Value: 42},
			{Key: "active", Value: true},
		})
		course, _ := doc.toCourse()
		assert.Empty(t, course.ID)
	})
}

func TestRawPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "1990", "1990"},
		{"int32", int32(2500), "2500"},
		{"int64", int64(10000), "10000"},
		{"double", 149.5, "149.5"},
		{"double whole", 3000.0, "3000"},
		{"boolean drops", true, ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			doc := decodeDoc(t, bson.D{
				{Key: "price", Value: tt.value},
				{Key: "active", Value: true},
			})
			course, _ := doc.toCourse()
			assert.Equal(t, tt.want, course.Price)
		})
	}
}
