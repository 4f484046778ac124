package locale

import (
	"embed"
	"fmt"
	"path"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/rostart/rostart/internal/errdefs"
	"golang.org/x/exp/maps"
	"gopkg.in/yaml.v3"
)

// DefaultLanguage is used when neither config nor the desktop provide one.
const DefaultLanguage = "en"

//go:embed bundles/*.yaml
var bundleFS embed.FS

var names = map[string]string{
	"tr": "Türkçe",
	"en": "English",
	"de": "Deutsch",
}

var (
	bundles    map[string]*Bundle
	loadErr    error
	loadBundle sync.Once
)

func load() (map[string]*Bundle, error) {
	loadBundle.Do(func() {
		bundles, loadErr = decodeAll()
	})
	return bundles, loadErr
}

func decodeAll() (map[string]*Bundle, error) {
	entries, err := bundleFS.ReadDir("bundles")
	if err != nil {
		return nil, fmt.Errorf("read bundles: %w", err)
	}

	out := make(map[string]*Bundle, len(entries))
	for _, entry := range entries {
		code := strings.TrimSuffix(entry.Name(), path.Ext(entry.Name()))
		data, err := bundleFS.ReadFile(path.Join("bundles", entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read bundle %s: %w", code, err)
		}

		var b Bundle
		if err := yaml.Unmarshal(data, &b); err != nil {
			return nil, fmt.Errorf("decode bundle %s: %w", code, err)
		}
		out[code] = &b
	}
	return out, nil
}

// Lookup returns the bundle for code.
func Lookup(code string) (*Bundle, bool) {
	all, err := load()
	if err != nil {
		return nil, false
	}
	b, ok := all[code]
	return b, ok
}

// Has reports whether code resolves to a bundle.
func Has(code string) bool {
	_, ok := Lookup(code)
	return ok
}

// Available lists every language code with a bundle, sorted.
func Available() []string {
	all, err := load()
	if err != nil {
		return nil
	}
	codes := maps.Keys(all)
	sort.Strings(codes)
	return codes
}

// Name returns the native display name of code, falling back to the upper
// cased code.
func Name(code string) string {
	if n, ok := names[code]; ok {
		return n
	}
	return strings.ToUpper(code)
}

// Normalize reduces a POSIX locale such as "tr_TR.UTF-8" to its language code.
func Normalize(raw string) string {
	raw = strings.TrimSpace(raw)
	if i := strings.IndexAny(raw, "_.@-"); i >= 0 {
		raw = raw[:i]
	}
	return strings.ToLower(raw)
}

// Validate checks that every shipped bundle decodes and that no label is empty.
func Validate() error {
	all, err := load()
	if err != nil {
		return err
	}
	for _, code := range Available() {
		var missing []string
		collectEmpty(reflect.ValueOf(*all[code]), "", &missing)
		if len(missing) > 0 {
			return errdefs.NewCustomError(errdefs.ErrTypeIncompleteBundle,
				fmt.Sprintf("bundle %s is missing: %s", code, strings.Join(missing, ", ")))
		}
	}
	return nil
}

func collectEmpty(v reflect.Value, prefix string, missing *[]string) {
	switch v.Kind() {
	case reflect.String:
		if strings.TrimSpace(v.String()) == "" {
			*missing = append(*missing, prefix)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			key := strings.Split(t.Field(i).Tag.Get("yaml"), ",")[0]
			collectEmpty(v.Field(i), join(prefix, key), missing)
		}
	case reflect.Map:
		if v.Len() == 0 {
			*missing = append(*missing, prefix)
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			collectEmpty(iter.Value(), join(prefix, iter.Key().String()), missing)
		}
	}
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}
