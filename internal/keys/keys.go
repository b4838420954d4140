// Package keys builds canonical composite identifiers for entity tuples.
//
// Every relation owns a fixed positional order of identifier kinds
// (location, then client ISP, then transit ISP, absent kinds omitted),
// so the resulting key depends on the relation and the tuple values only,
// never on the order in which a caller happened to pass them.
package keys

import (
	"errors"
	"fmt"
	"strings"
)

// Separator joins tuple members. Identifiers must not contain it.
const Separator = "|"

var (
	ErrMissingIdentifier = errors.New("missing identifier for relation")
	ErrInvalidIdentifier = errors.New("identifier contains key separator")
	ErrUnknownRelation   = errors.New("unknown relation")
)

type Kind uint8

const (
	LocationKind Kind = iota
	ClientISPKind
	TransitISPKind
)

func (k Kind) String() string {
	switch k {
	case LocationKind:
		return "location"
	case ClientISPKind:
		return "client_isp"
	case TransitISPKind:
		return "transit_isp"
	default:
		return "unknown"
	}
}

// Tuple carries the identifiers of one entity or join. Unused members stay empty.
type Tuple struct {
	LocationID   string
	ClientISPID  string
	TransitISPID string
}

// ID returns the identifier of kind k.
func (t Tuple) ID(k Kind) string {
	switch k {
	case LocationKind:
		return t.LocationID
	case ClientISPKind:
		return t.ClientISPID
	case TransitISPKind:
		return t.TransitISPID
	default:
		return ""
	}
}

type Relation uint8

const (
	Location Relation = iota
	ClientISP
	TransitISP
	LocationClient
	ClientTransit
	LocationClientTransit
)

type relationDef struct {
	name  string
	kinds []Kind
}

// relations is indexed by Relation; kinds are listed in canonical order.
var relations = [...]relationDef{
	Location:              {name: "LOCATION", kinds: []Kind{LocationKind}},
	ClientISP:             {name: "CLIENT_ISP", kinds: []Kind{ClientISPKind}},
	TransitISP:            {name: "TRANSIT_ISP", kinds: []Kind{TransitISPKind}},
	LocationClient:        {name: "LOCATION_CLIENT_ISP", kinds: []Kind{LocationKind, ClientISPKind}},
	ClientTransit:         {name: "CLIENT_ISP_TRANSIT_ISP", kinds: []Kind{ClientISPKind, TransitISPKind}},
	LocationClientTransit: {name: "LOCATION_CLIENT_ISP_TRANSIT_ISP", kinds: []Kind{LocationKind, ClientISPKind, TransitISPKind}},
}

// Relations lists every known relation.
func Relations() []Relation {
	return []Relation{Location, ClientISP, TransitISP, LocationClient, ClientTransit, LocationClientTransit}
}

func (r Relation) Valid() bool { return int(r) < len(relations) }

func (r Relation) Name() string {
	if !r.Valid() {
		return "UNKNOWN"
	}
	return relations[r].name
}

func (r Relation) String() string { return r.Name() }

// Kinds returns a copy of the relation's canonical kind order.
func (r Relation) Kinds() []Kind {
	if !r.Valid() {
		return nil
	}
	return append([]Kind(nil), relations[r].kinds...)
}

func (r Relation) Arity() int {
	if !r.Valid() {
		return 0
	}
	return len(relations[r].kinds)
}

// Key joins the tuple members the relation needs in canonical order.
// Members the relation does not use are ignored.
func (r Relation) Key(t Tuple) (string, error) {
	if !r.Valid() {
		return "", fmt.Errorf("%w: %d", ErrUnknownRelation, r)
	}

	kinds := relations[r].kinds
	if len(kinds) == 1 {
		return checkID(r, kinds[0], t.ID(kinds[0]))
	}

	var b strings.Builder
	for i, k := range kinds {
		id, err := checkID(r, k, t.ID(k))
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString(Separator)
		}
		b.WriteString(id)
	}
	return b.String(), nil
}

// MustKey is Key for call sites that already validated the tuple; a violation is a programming error.
func (r Relation) MustKey(t Tuple) string {
	key, err := r.Key(t)
	if err != nil {
		panic(err)
	}
	return key
}

// Split is the inverse of Key.
func (r Relation) Split(key string) (Tuple, error) {
	if !r.Valid() {
		return Tuple{}, fmt.Errorf("%w: %d", ErrUnknownRelation, r)
	}
	kinds := relations[r].kinds
	parts := strings.Split(key, Separator)
	if len(parts) != len(kinds) {
		return Tuple{}, fmt.Errorf("%w: %s expects %d members, got %q", ErrMissingIdentifier, r, len(kinds), key)
	}

	var t Tuple
	for i, k := range kinds {
		if parts[i] == "" {
			return Tuple{}, fmt.Errorf("%w: %s has empty %s in %q", ErrMissingIdentifier, r, k, key)
		}
		switch k {
		case LocationKind:
			t.LocationID = parts[i]
		case ClientISPKind:
			t.ClientISPID = parts[i]
		case TransitISPKind:
			t.TransitISPID = parts[i]
		}
	}
	return t, nil
}

func checkID(r Relation, k Kind, id string) (string, error) {
	if id == "" {
		return "", fmt.Errorf("%w: %s requires %s", ErrMissingIdentifier, r, k)
	}
	if strings.Contains(id, Separator) {
		return "", fmt.Errorf("%w: %s %q", ErrInvalidIdentifier, k, id)
	}
	return id, nil
}
