package schemas

import (
	"fmt"

	"github.com/totegamma/tptech"
)

// documentNames is the fixed mapping from content domain to document file name.
var documentNames = map[tptech.ContentDomain]string{
	tptech.DomainHome:     "home",
	tptech.DomainBlog:     "blog",
	tptech.DomainServices: "services",
	tptech.DomainSettings: "settings",
	tptech.DomainContact:  "contact",
	tptech.DomainNotFound: "404",
}

// Pair identifies one content document.
type Pair struct {
	Locale tptech.Locale
	Domain tptech.ContentDomain
}

func (p Pair) String() string {
	return p.Locale.String() + "/" + p.Domain.String()
}

// Pairs enumerates every (locale, domain) document that must exist.
func Pairs() []Pair {
	pairs := make([]Pair, 0, len(tptech.Locales)*len(tptech.Domains))
	for _, l := range tptech.Locales {
		for _, d := range tptech.Domains {
			pairs = append(pairs, Pair{Locale: l, Domain: d})
		}
	}
	return pairs
}

// DocumentName returns the file stem of a domain's document.
func DocumentName(d tptech.ContentDomain) (string, bool) {
	name, ok := documentNames[d]
	return name, ok
}

// DocumentPath returns the slash-separated path of the document for a pair, e.g. "vi/404.json".
func DocumentPath(l tptech.Locale, d tptech.ContentDomain) (string, error) {
	if !l.Valid() {
		return "", fmt.Errorf("unsupported locale %q", l)
	}
	name, ok := documentNames[d]
	if !ok {
		return "", fmt.Errorf("unknown content domain %q", d)
	}
	return string(l) + "/" + name + ".json", nil
}
