// Package icons picks a display glyph for elements the oracle left without
// one.
package icons

import (
	_ "embed"
	"strings"
	"sync"
	"unicode"

	"github.com/tatianab/element-mixer/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

type catalog struct {
	Default  string `yaml:"default"`
	Keywords []struct {
		Glyph string   `yaml:"glyph"`
		Words []string `yaml:"words"`
	} `yaml:"keywords"`
	Tags map[string]string `yaml:"tags"`
}

type index struct {
	fallback string
	words    map[string]string
	tags     map[string]string
}

var loadIndex = sync.OnceValue(func() *index {
	var c catalog
	if err := yaml.Unmarshal(catalogYAML, &c); err != nil {
		panic("icons: bad embedded catalog: " + err.Error())
	}
	idx := &index{
		fallback: c.Default,
		words:    make(map[string]string),
		tags:     make(map[string]string, len(c.Tags)),
	}
	for _, k := range c.Keywords {
		for _, w := range k.Words {
			idx.words[models.FoldName(w)] = k.Glyph
		}
	}
	for tag, glyph := range c.Tags {
		idx.tags[models.FoldName(tag)] = glyph
	}
	return idx
})

// Resolve returns the glyph to show for an element. An explicit emoji always
// wins; otherwise the name's words are tried, then its tags.
func Resolve(emoji, name string, tags []string) string {
	if emoji = strings.TrimSpace(emoji); emoji != "" {
		return emoji
	}
	idx := loadIndex()
	words := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if glyph, ok := idx.words[models.FoldName(w)]; ok {
			return glyph
		}
	}
	for _, t := range tags {
		if glyph, ok := idx.tags[models.FoldName(t)]; ok {
			return glyph
		}
	}
	return idx.fallback
}
