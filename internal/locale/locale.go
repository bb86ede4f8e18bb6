// Package locale reads the user's language preferences from the environment.
package locale

import (
	"strings"

	"github.com/hupe1980/whitedew/internal/arena"
)

// LookupFunc has the signature of os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// languageVars are consulted in order; the first non-empty one wins.
var languageVars = [...]string{"LANGUAGE", "LC_ALL", "LANG"}

// PreferredLanguages returns the user's languages, most preferred first.
//
// The first non-empty variable among LANGUAGE, LC_ALL and LANG is split on
// ':' with empty entries dropped. Underscores become dashes (pt_BR -> pt-BR);
// case is kept. The strings are allocated from a.
func PreferredLanguages(a arena.Allocator, lookup LookupFunc) ([]*arena.String, error) {
	for _, key := range languageVars {
		val, ok := lookup(key)
		if !ok || val == "" {
			continue
		}

		var langs []*arena.String
		for part := range strings.SplitSeq(val, ":") {
			if part == "" {
				continue
			}
			s := arena.NewString(a)
			if err := s.Reserve(len(part)); err != nil {
				return nil, err
			}
			for _, r := range part {
				if r == '_' {
					r = '-'
				}
				if err := s.PushRune(r); err != nil {
					return nil, err
				}
			}
			langs = append(langs, s)
		}
		return langs, nil
	}
	return nil, nil
}

// Negotiate picks the best of supported for the preferences in langs.
//
// A POSIX codeset or modifier ("pt-BR.UTF-8", "de-AT@euro") is dropped
// first. Then a case-insensitive exact match wins, otherwise the primary
// language subtag is compared ("de-AT" matches "de"). Preferences are tried
// in order. If nothing matches, fallback is returned.
func Negotiate(langs []*arena.String, supported []string, fallback string) string {
	for _, l := range langs {
		tag := l.String()
		if i := strings.IndexAny(tag, ".@"); i >= 0 {
			tag = tag[:i]
		}
		for _, s := range supported {
			if strings.EqualFold(tag, s) {
				return s
			}
		}
		primary, _, _ := strings.Cut(tag, "-")
		for _, s := range supported {
			if strings.EqualFold(primary, s) {
				return s
			}
		}
	}
	return fallback
}
