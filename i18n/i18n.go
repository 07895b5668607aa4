// Translation of report labels and units.
//
// Message files are YAML documents of this shape, one language per document:
//
//   language: de
//   messages:
//     "(Unknown)": "(Unbekannt)"
//     "%d-bit": "%d-Bit"
//
// Keys are the English texts, which double as fmt format strings.  A key with no translation for
// the selected language renders as itself, so English needs no message file at all.

package i18n

import (
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
	"gopkg.in/yaml.v3"
)

type Translator interface {
	Translate(key string, args ...any) string
}

// MT: Constant after initialization; immutable
var (
	ErrNoLanguage = errors.New("Message file has no language")
)

//go:embed catalogs/*.yaml
var builtin embed.FS

type messageFile struct {
	Language string            `yaml:"language"`
	Messages map[string]string `yaml:"messages"`
}

// Catalog holds messages for any number of languages.  It is not safe to add messages to a
// catalog that is concurrently used by a Printer obtained from it.
type Catalog struct {
	builder   *catalog.Builder
	languages map[language.Tag]bool
}

func NewCatalog() *Catalog {
	return &Catalog{
		builder:   catalog.NewBuilder(catalog.Fallback(language.English)),
		languages: make(map[language.Tag]bool),
	}
}

// BuiltinCatalog returns a catalog holding the message files compiled into the program.
func BuiltinCatalog() (*Catalog, error) {
	c := NewCatalog()
	entries, err := fs.ReadDir(builtin, "catalogs")
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		f, err := builtin.Open(path.Join("catalogs", e.Name()))
		if err != nil {
			return nil, err
		}
		err = c.Load(f)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("Builtin catalog %s: %w", e.Name(), err)
		}
	}
	return c, nil
}

// Load adds all the YAML documents in the input to the catalog.  A later message for the same
// language and key replaces an earlier one.
func (c *Catalog) Load(input io.Reader) error {
	dec := yaml.NewDecoder(input)
	for {
		var mf messageFile
		err := dec.Decode(&mf)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("Parsing message file: %w", err)
		}
		if mf.Language == "" {
			return ErrNoLanguage
		}
		tag, err := language.Parse(mf.Language)
		if err != nil {
			return fmt.Errorf("Message file language %q: %w", mf.Language, err)
		}
		for key, msg := range mf.Messages {
			if err := c.builder.SetString(tag, key, msg); err != nil {
				return fmt.Errorf("Message %q for %s: %w", key, tag, err)
			}
		}
		c.languages[tag] = true
	}
}

// LoadDir loads every *.yaml and *.yml file in dir, in name order.
func (c *Catalog) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, e := range entries {
		ext := filepath.Ext(e.Name())
		if e.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		fn := filepath.Join(dir, e.Name())
		f, err := os.Open(fn)
		if err != nil {
			return err
		}
		err = c.Load(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", fn, err)
		}
	}
	return nil
}

// Languages returns the languages with at least one message, sorted by tag.
func (c *Catalog) Languages() []string {
	names := make([]string, 0, len(c.languages))
	for tag := range c.languages {
		names = append(names, tag.String())
	}
	sort.Strings(names)
	return names
}

// Printer returns a Translator for the language best matching lang.  An empty or unparseable lang
// selects English.
func (c *Catalog) Printer(lang string) Translator {
	tag := language.English
	if lang = strings.TrimSpace(lang); lang != "" {
		// POSIX locale names like pt_BR.UTF-8
		lang, _, _ = strings.Cut(lang, ".")
		if t, err := language.Parse(strings.ReplaceAll(lang, "_", "-")); err == nil {
			tag = t
		}
	}
	return &printer{message.NewPrinter(tag, message.Catalog(c.builder))}
}

type printer struct {
	p *message.Printer
}

func (p *printer) Translate(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}

type english struct{}

func (english) Translate(key string, args ...any) string {
	if len(args) == 0 {
		return key
	}
	return fmt.Sprintf(key, args...)
}

// English is the identity translation.
var English Translator = english{}
