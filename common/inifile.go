// User defaults, read from ~/.benchres:
//
//   [display]
//   language=de
//   report=complete
//   catalog-dir=/usr/share/benchres/catalogs
//
//   [logging]
//   level=info
//
// Command line options take precedence over the defaults.

package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	ini "github.com/lars-t-hansen/ini"

	"benchres/status"
)

// MT: Constant after initialization
var (
	p                 = ini.NewParser()
	display           = p.AddSection("display")
	DisplayLanguage   = display.AddString("language")
	DisplayReport     = display.AddString("report")
	DisplayCatalogDir = display.AddString("catalog-dir")
	logging           = p.AddSection("logging")
	LoggingLevel      = logging.AddString("level")
)

type Defaults struct {
	store *ini.Store
}

// DefaultsFile is ~/.benchres, or "" if there is no home directory.
func DefaultsFile() string {
	home := os.Getenv("HOME")
	if home == "" {
		return ""
	}
	return path.Join(path.Clean(home), ".benchres")
}

// LoadDefaults reads the named defaults file.  A missing file, or an empty name, gives empty
// defaults and no error.
func LoadDefaults(fn string) (*Defaults, error) {
	if fn == "" {
		return &Defaults{}, nil
	}
	input, err := os.Open(fn)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Defaults{}, nil
		}
		return nil, err
	}
	defer input.Close()
	d, err := ParseDefaults(input)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	return d, nil
}

func ParseDefaults(input io.Reader) (*Defaults, error) {
	store, err := p.Parse(input)
	if err != nil {
		return nil, err
	}
	return &Defaults{store: store}, nil
}

func (d *Defaults) Has(f *ini.Field) bool {
	return d != nil && d.store != nil && f.Present(d.store)
}

// Apply sets *sp from the field if *sp is empty and the field is present, expanding environment
// variables in the value.
func (d *Defaults) Apply(sp *string, f *ini.Field) bool {
	if *sp != "" || !d.Has(f) {
		return false
	}
	*sp = os.ExpandEnv(f.StringVal(d.store))
	return true
}

// ApplyLogging sets the level of Log from the defaults.  Apply command line options after this.
func (d *Defaults) ApplyLogging() error {
	var level string
	if !d.Apply(&level, LoggingLevel) {
		return nil
	}
	l, err := status.ParseLevel(level)
	if err != nil {
		return err
	}
	Log.SetLevel(l)
	return nil
}
