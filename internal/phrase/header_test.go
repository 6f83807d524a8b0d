package phrase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsHeader(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		line string
		sep  Separator
		want bool
	}{
		{"plain", "categories;phrase;translation", Semicolon, true},
		{"singular", "category;phrase;translation", Semicolon, true},
		{"mixed case", "Categories;Phrase;TRANSLATION", Semicolon, true},
		{"spaces around separator", "  category ; phrase ;  translation  ", Semicolon, true},
		{"tabs collapse for non-tab separator", "categories;\tphrase;translation", Semicolon, true},
		{"comma", "categories,phrase,translation", Comma, true},
		{"pipe", "categories | phrase | translation", Pipe, true},
		{"tab", "categories\tphrase\ttranslation", Tab, true},
		{"tab with padding", "categories \t phrase\t  translation", Tab, true},
		{"wrong separator", "categories;phrase;translation", Comma, false},
		{"extra column", "categories;phrase;translation;notes", Semicolon, false},
		{"missing column", "categories;phrase", Semicolon, false},
		{"wrong order", "phrase;categories;translation", Semicolon, false},
		{"data row", "Animals;dog;pas", Semicolon, false},
		{"prefix only", "categories;phrase;translations", Semicolon, false},
		{"unknown separator", "categories:phrase:translation", Separator(':'), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsHeader(tt.line, tt.sep))
		})
	}
}
