// Package vcard renders contacts as vCard 3.0 (RFC 2426) text.
package vcard

import (
	"strings"

	"contactly-be/internal/entities"
)

var escaper = strings.NewReplacer(
	`\`, `\\`,
	`,`, `\,`,
	`;`, `\;`,
	"\r\n", `\n`,
	"\n", `\n`,
)

func escape(s string) string {
	return escaper.Replace(s)
}

// Encode returns the vCard of c with CRLF line endings.
func Encode(c *entities.Contact) string {
	return encode(c, true)
}

// EncodeCompact is Encode without the NOTE and CATEGORIES lines.
func EncodeCompact(c *entities.Contact) string {
	return encode(c, false)
}

func encode(c *entities.Contact, full bool) string {
	var b strings.Builder
	line := func(parts ...string) {
		for _, p := range parts {
			b.WriteString(p)
		}
		b.WriteString("\r\n")
	}

	line("BEGIN:VCARD")
	line("VERSION:3.0")

	family, given := splitName(c.Name)
	line("N:", escape(family), ";", escape(given), ";;;")
	line("FN:", escape(c.Name))

	if c.Phone != "" {
		line("TEL;TYPE=CELL:", escape(c.Phone))
	}
	if c.Email != "" {
		line("EMAIL;TYPE=INTERNET:", escape(c.Email))
	}
	if c.Address != nil && !c.Address.IsZero() {
		line("ADR;TYPE=HOME:;;",
			escape(c.Address.Street), ";",
			escape(c.Address.City), ";",
			escape(c.Address.State), ";",
			escape(c.Address.PostalCode), ";")
	}
	if c.Birthday != nil {
		line("BDAY:", c.Birthday.Format("2006-01-02"))
	}
	if full && c.Notes != "" {
		line("NOTE:", escape(c.Notes))
	}
	if full && len(c.Tags) > 0 {
		tags := make([]string, len(c.Tags))
		for i, t := range c.Tags {
			tags[i] = escape(t)
		}
		line("CATEGORIES:", strings.Join(tags, ","))
	}

	line("END:VCARD")
	return b.String()
}

// splitName treats the last word as the family name.
func splitName(name string) (family, given string) {
	fields := strings.Fields(name)
	switch len(fields) {
	case 0:
		return "", ""
	case 1:
		return "", fields[0]
	}
	return fields[len(fields)-1], strings.Join(fields[:len(fields)-1], " ")
}
