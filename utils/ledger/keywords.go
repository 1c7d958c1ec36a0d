package ledger

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed keywords.yaml
var defaultKeywordsYAML []byte

// Keywords is the predicate table behind table classification and column roles. New bank
// layouts are supported by extending the YAML, not by adding branches.
type Keywords struct {
	Accept []string     `yaml:"accept"`
	Reject []string     `yaml:"reject"`
	Roles  RoleKeywords `yaml:"roles"`
}

type RoleKeywords struct {
	Date        []string `yaml:"date"`
	Description []string `yaml:"description"`
	Credit      []string `yaml:"credit"`
	Debit       []string `yaml:"debit"`
	Balance     []string `yaml:"balance"`
}

// DefaultKeywords returns the embedded vocabulary.
func DefaultKeywords() *Keywords {
	kw, err := ParseKeywords(defaultKeywordsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded keywords.yaml: %v", err))
	}
	return kw
}

// LoadKeywords reads a vocabulary file, or the embedded one when path is empty.
func LoadKeywords(path string) (*Keywords, error) {
	if path == "" {
		return DefaultKeywords(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read keywords file: %w", err)
	}
	return ParseKeywords(data)
}

// ParseKeywords decodes and validates a YAML vocabulary.
func ParseKeywords(data []byte) (*Keywords, error) {
	var kw Keywords
	if err := yaml.Unmarshal(data, &kw); err != nil {
		return nil, fmt.Errorf("decode keywords: %w", err)
	}

	for _, list := range []*[]string{
		&kw.Accept, &kw.Reject,
		&kw.Roles.Date, &kw.Roles.Description, &kw.Roles.Credit, &kw.Roles.Debit, &kw.Roles.Balance,
	} {
		*list = lowerAll(*list)
	}

	if len(kw.Accept) == 0 {
		return nil, fmt.Errorf("keywords: accept list is empty")
	}
	if len(kw.Roles.Credit) == 0 || len(kw.Roles.Debit) == 0 {
		return nil, fmt.Errorf("keywords: credit and debit vocabularies are required")
	}
	return &kw, nil
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// containsAny matches a case-insensitive substring.
func containsAny(cell string, tokens []string) bool {
	c := strings.ToLower(cell)
	for _, t := range tokens {
		if strings.Contains(c, t) {
			return true
		}
	}
	return false
}

// startsWordAny matches a case-insensitive token that begins a word of cell, so "visa"
// rejects "VISA Débito" but not "Revisado".
func startsWordAny(cell string, tokens []string) bool {
	c := strings.ToLower(cell)
	for _, t := range tokens {
		for off := 0; off < len(c); {
			i := strings.Index(c[off:], t)
			if i < 0 {
				break
			}
			i += off
			if i == 0 {
				return true
			}
			if r, _ := utf8.DecodeLastRuneInString(c[:i]); !unicode.IsLetter(r) && !unicode.IsDigit(r) {
				return true
			}
			off = i + 1
		}
	}
	return false
}
