package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// UndefinedOffice labels employees without an office in the office list and
// in office filtering.
const UndefinedOffice = "Undefined office"

// What the sort comparator sees for an absent and a null office.
const (
	rawUndefined = "undefined"
	rawNull      = "null"
)

// Employee is one directory record as served by the upstream HR API.
// Office is nil when the field is absent or null; OfficeNull tells the two
// apart.
type Employee struct {
	Email              string  `json:"email" validate:"required"`
	Name               string  `json:"name" validate:"required"`
	Office             *string `json:"office,omitempty"`
	ImagePortraitURL   string  `json:"imagePortraitUrl,omitempty"`
	ImageWallOfLeetURL string  `json:"imageWallOfLeetUrl,omitempty"`
	LinkedIn           string  `json:"linkedIn,omitempty"`
	GitHub             string  `json:"gitHub,omitempty"`
	Twitter            string  `json:"twitter,omitempty"`

	OfficeNull bool `json:"-"`
}

func (e *Employee) UnmarshalJSON(b []byte) error {
	type plain Employee
	var aux struct {
		plain
		Office json.RawMessage `json:"office"`
	}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	*e = Employee(aux.plain)

	raw := bytes.TrimSpace(aux.Office)
	switch {
	case len(raw) == 0:
	case bytes.Equal(raw, []byte(rawNull)):
		e.OfficeNull = true
	default:
		var office string
		if err := json.Unmarshal(raw, &office); err != nil {
			return fmt.Errorf("office: %w", err)
		}
		e.Office = &office
	}
	return nil
}

// OfficeLabel is the office used for the office list and office filters.
func (e Employee) OfficeLabel() string {
	if e.Office == nil || *e.Office == "" {
		return UndefinedOffice
	}
	return *e.Office
}

// OfficeSortKey is the stringified raw office: "undefined" when absent and
// "null" when null. Unlike OfficeLabel it keeps an empty office as "".
func (e Employee) OfficeSortKey() string {
	if e.Office == nil {
		if e.OfficeNull {
			return rawNull
		}
		return rawUndefined
	}
	return *e.Office
}

// OfficeText is the office as shown on a card; empty when missing.
func (e Employee) OfficeText() string {
	if e.Office == nil {
		return ""
	}
	return *e.Office
}

type LinkKind string

const (
	LinkLinkedIn LinkKind = "LinkedIn"
	LinkGitHub   LinkKind = "GitHub"
	LinkTwitter  LinkKind = "Twitter"
)

type Link struct {
	Kind LinkKind
	URL  string
}

// Links returns the outbound profile links for the fields that are present.
func (e Employee) Links() []Link {
	var out []Link
	if e.LinkedIn != "" {
		out = append(out, Link{Kind: LinkLinkedIn, URL: "https://www.linkedin.com" + e.LinkedIn})
	}
	if e.GitHub != "" {
		out = append(out, Link{Kind: LinkGitHub, URL: "https://github.com/" + e.GitHub})
	}
	if e.Twitter != "" {
		out = append(out, Link{Kind: LinkTwitter, URL: "https://twitter.com/" + e.Twitter})
	}
	return out
}

// Link returns the URL of the given kind, or "" when the field is absent.
func (e Employee) Link(kind LinkKind) string {
	for _, l := range e.Links() {
		if l.Kind == kind {
			return l.URL
		}
	}
	return ""
}

func (e Employee) HasPortrait() bool {
	return strings.TrimSpace(e.ImagePortraitURL) != ""
}

// Ptr is a small helper for building records with an office in code and tests.
func Ptr(s string) *string {
	return &s
}
