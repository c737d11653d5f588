package harness

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"go/parser"
	"go/token"
	"strings"

	"github.com/voicefoundry-au-solutionconsultants/omilia-utils/pkg/unit"
)

// Lang identifies a source language.
type Lang string

const (
	LangGo     Lang = "go"
	LangCEL    Lang = "cel"
	LangNative Lang = "native"
)

// ParseLang accepts go, cel and the empty string, which means go.
func ParseLang(s string) (Lang, error) {
	switch l := Lang(strings.ToLower(strings.TrimSpace(s))); l {
	case "":
		return LangGo, nil
	case LangGo, LangCEL:
		return l, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownLang, s)
}

// Source is unit source text plus its identity.
type Source struct {
	// Name identifies the unit in errors and logs. Empty names are replaced
	// by a digest prefix.
	Name string
	// Kind is the declared result kind; empty means unit.KindAuto.
	Kind unit.Kind
	Lang Lang
	Text string
}

// digest keys the handle cache by language, kind, name and text.
func digest(src Source) string {
	sum := sha256.Sum256([]byte(strings.Join([]string{string(src.Lang), string(src.Kind), src.Name, src.Text}, "\x00")))
	return hex.EncodeToString(sum[:])
}

// isFileForm reports whether text starts with a package clause.
func isFileForm(text string) bool {
	_, err := parser.ParseFile(token.NewFileSet(), "", text, parser.PackageClauseOnly)
	return err == nil
}
