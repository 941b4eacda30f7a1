package core

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"addon-installer/internal/types"
)

// PruneTranslations removes translation files of the given modules whose
// language is not in languages. An empty languages list keeps everything.
// It returns the removed file paths.
func PruneTranslations(modules []types.ModuleUnit, languages []string) ([]string, error) {
	if len(languages) == 0 {
		return nil, nil
	}
	keep := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		keep[lang] = struct{}{}
	}
	var removed []string
	for _, module := range modules {
		dir := filepath.Join(module.Path, types.TranslationDir)
		entries, err := os.ReadDir(dir)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return removed, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read translations of " + module.Name).
				WithCause(err)
		}
		for _, entry := range entries {
			if entry.IsDir() || filepath.Ext(entry.Name()) != types.TranslationExt {
				continue
			}
			if _, ok := keep[LanguageOf(entry.Name())]; ok {
				continue
			}
			path := filepath.Join(dir, entry.Name())
			if err := os.Remove(path); err != nil {
				return removed, errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg("failed to remove translation " + path).
					WithCause(err)
			}
			removed = append(removed, path)
		}
	}
	return removed, nil
}

// LanguageOf returns the language code of a translation file name, the part
// before the first dot ("fr_CA.po" -> "fr_CA").
func LanguageOf(fileName string) string {
	lang, _, _ := strings.Cut(fileName, ".")
	return lang
}
