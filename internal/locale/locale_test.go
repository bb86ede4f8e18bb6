package locale

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/whitedew/internal/arena"
)

func env(vars map[string]string) LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func strs(langs []*arena.String) []string {
	out := make([]string, len(langs))
	for i, l := range langs {
		out[i] = l.String()
	}
	return out
}

func TestPreferredLanguages(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
		want []string
	}{
		{"language list", map[string]string{"LANGUAGE": "pt_BR:de::en", "LANG": "fr_FR.UTF-8"}, []string{"pt-BR", "de", "en"}},
		{"empty language falls through", map[string]string{"LANGUAGE": "", "LC_ALL": "ko_KR.UTF-8"}, []string{"ko-KR.UTF-8"}},
		{"lang only", map[string]string{"LANG": "en_US"}, []string{"en-US"}},
		{"only separators", map[string]string{"LANGUAGE": "::"}, nil},
		{"nothing set", map[string]string{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := arena.NewOwned(arena.ChunkSize)
			require.NoError(t, err)
			defer h.Close()

			langs, err := PreferredLanguages(h, env(tt.vars))
			require.NoError(t, err)
			if tt.want == nil {
				assert.Empty(t, langs)
				return
			}
			assert.Equal(t, tt.want, strs(langs))
		})
	}

	t.Run("allocation failure", func(t *testing.T) {
		var a arena.Arena
		_, err := PreferredLanguages(&a, env(map[string]string{"LANG": "en"}))
		assert.ErrorIs(t, err, arena.ErrAllocationFailed)
	})
}

func TestNegotiate(t *testing.T) {
	supported := []string{"en", "de", "pt-BR"}

	tests := []struct {
		name string
		vars map[string]string
		want string
	}{
		{"region with codeset", map[string]string{"LANG": "pt_BR.UTF-8"}, "pt-BR"},
		{"codeset and modifier", map[string]string{"LANG": "de_AT.UTF-8@euro"}, "de"},
		{"modifier only", map[string]string{"LANG": "de_DE@euro"}, "de"},
		{"case insensitive", map[string]string{"LANGUAGE": "PT_br"}, "pt-BR"},
		{"primary subtag", map[string]string{"LANGUAGE": "de_CH"}, "de"},
		{"first supported preference", map[string]string{"LANGUAGE": "ko:pt_BR:de"}, "pt-BR"},
		{"unsupported", map[string]string{"LANG": "C.UTF-8"}, "en"},
		{"region only of a supported tag", map[string]string{"LANG": "pt_PT.UTF-8"}, "en"},
		{"nothing set", map[string]string{}, "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, err := arena.NewOwned(arena.ChunkSize)
			require.NoError(t, err)
			defer h.Close()

			langs, err := PreferredLanguages(h, env(tt.vars))
			require.NoError(t, err)
			assert.Equal(t, tt.want, Negotiate(langs, supported, "en"))
		})
	}
}
