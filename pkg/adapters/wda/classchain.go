package wda

import (
	"strings"

	"github.com/aretw0/screenwalk/pkg/domain"
)

var elementTypes = map[domain.ElementKind]string{
	domain.KindAny:            "XCUIElementTypeAny",
	domain.KindButton:         "XCUIElementTypeButton",
	domain.KindCell:           "XCUIElementTypeCell",
	domain.KindTextField:      "XCUIElementTypeTextField",
	domain.KindSwitch:         "XCUIElementTypeSwitch",
	domain.KindTable:          "XCUIElementTypeTable",
	domain.KindCollectionView: "XCUIElementTypeCollectionView",
	domain.KindMenuItem:       "XCUIElementTypeMenuItem",
	domain.KindStaticText:     "XCUIElementTypeStaticText",
	domain.KindOther:          "XCUIElementTypeOther",
}

// ClassChain renders a selector as an XCUITest class chain query.
// Identifiers match either the accessibility identifier or the label.
func ClassChain(sel domain.Selector) string {
	var parts []string
	for s := &sel; s != nil; s = s.Within {
		parts = append(parts, segment(*s))
	}
	var b strings.Builder
	for i := len(parts) - 1; i >= 0; i-- {
		if b.Len() > 0 {
			b.WriteByte('/')
		}
		b.WriteString("**/")
		b.WriteString(parts[i])
	}
	return b.String()
}

func segment(sel domain.Selector) string {
	typ, ok := elementTypes[sel.Kind]
	if !ok {
		typ = elementTypes[domain.KindAny]
	}
	if sel.ID == "" {
		return typ
	}
	q := quote(sel.ID)
	return typ + "[`name == " + q + " OR label == " + q + "`]"
}

func quote(s string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(s) + `"`
}

func kindOf(elementType string) domain.ElementKind {
	for k, t := range elementTypes {
		if t == elementType && k != domain.KindAny {
			return k
		}
	}
	return domain.KindOther
}
