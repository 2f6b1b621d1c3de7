// Package views holds the templ components of the web frontend. Edit the
// .templ files and run `templ generate`; the *_templ.go files are generated.
package views

import (
	"fmt"
	"strconv"

	"chainmail/internal/viewmodel"
)

//go:generate templ generate

func itoa32(n int32) string { return strconv.FormatInt(int64(n), 10) }

// fraction formats a 0..1 value for data attributes.
func fraction(v float64) string { return strconv.FormatFloat(v, 'f', 4, 64) }

func debugLine(s viewmodel.Session) string {
	return fmt.Sprintf("%s pool=%d words=%d", s.State, s.PoolSize, len(s.Words))
}
