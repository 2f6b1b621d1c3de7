package content

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"
)

//go:embed pack/*.yaml
var embedded embed.FS

// File names a content pack is read from.
const (
	FlavorsFile   = "flavors.yaml"
	NamesFile     = "names.yaml"
	BlessingsFile = "blessings.yaml"
	CursesFile    = "curses.yaml"
	DecoysFile    = "decoys.yaml"
)

// ErrIntegrity is matched by every IntegrityError.
var ErrIntegrity = errors.New("content integrity")

// IntegrityError reports a record that cannot be used to build a letter.
// Index is -1 when the error concerns the whole file.
type IntegrityError struct {
	File   string
	Index  int
	Reason string
}

func (e *IntegrityError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.File, e.Reason)
	}
	return fmt.Sprintf("%s[%d]: %s", e.File, e.Index, e.Reason)
}

func (e *IntegrityError) Unwrap() error { return ErrIntegrity }

// Default returns the pack compiled into the binary.
func Default() (*Pack, error) {
	sub, err := fs.Sub(embedded, "pack")
	if err != nil {
		return nil, err
	}
	return Load(sub)
}

// FromDir loads a pack from a directory on disk.
func FromDir(dir string) (*Pack, error) {
	return Load(os.DirFS(dir))
}

// Load reads and validates the five pack files from fsys.
func Load(fsys fs.FS) (*Pack, error) {
	p := &Pack{}
	if err := decode(fsys, FlavorsFile, &p.Flavors); err != nil {
		return nil, err
	}
	if err := decode(fsys, NamesFile, &p.Names); err != nil {
		return nil, err
	}
	if err := decode(fsys, BlessingsFile, &p.Blessings); err != nil {
		return nil, err
	}
	if err := decode(fsys, CursesFile, &p.Curses); err != nil {
		return nil, err
	}
	if err := decode(fsys, DecoysFile, &p.Decoys); err != nil {
		return nil, err
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func decode[T any](fsys fs.FS, name string, out *[]T) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// Validate checks every record of the pack.
func (p *Pack) Validate() error {
	if len(p.Flavors) == 0 {
		return &IntegrityError{File: FlavorsFile, Index: -1, Reason: "no flavors"}
	}
	if len(p.Names) == 0 {
		return &IntegrityError{File: NamesFile, Index: -1, Reason: "no names"}
	}
	for i, n := range p.Names {
		if strings.TrimSpace(n.FirstName) == "" {
			return &IntegrityError{File: NamesFile, Index: i, Reason: "empty first name"}
		}
	}
	groups := []struct {
		file  string
		stubs []TestimonialStub
	}{
		{BlessingsFile, p.Blessings},
		{CursesFile, p.Curses},
		{DecoysFile, p.Decoys},
	}
	for _, g := range groups {
		if len(g.stubs) == 0 {
			return &IntegrityError{File: g.file, Index: -1, Reason: "no entries"}
		}
		for i, s := range g.stubs {
			if reason := validateStub(s); reason != "" {
				return &IntegrityError{File: g.file, Index: i, Reason: reason}
			}
		}
	}
	return nil
}

func validateStub(s TestimonialStub) string {
	if len(s.Targets) == 0 {
		return "no targets"
	}
	words := Words(s.Message)
	for _, t := range s.Targets {
		if t < 0 || t >= len(words) {
			return fmt.Sprintf("target %d out of range (%d words)", t, len(words))
		}
	}
	token := words[s.Targets[0]]
	if strings.ContainsAny(token, "{}") {
		return fmt.Sprintf("target %q is a placeholder", token)
	}
	for _, r := range token {
		if !unicode.IsLetter(r) {
			return fmt.Sprintf("target %q is not alphabetic", token)
		}
	}
	return ""
}

// Open loads the pack from dir, or the embedded pack when dir is empty.
func Open(dir string) (*Pack, error) {
	if dir == "" {
		return Default()
	}
	return FromDir(dir)
}
