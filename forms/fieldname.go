package forms

import (
	"strconv"
	"strings"
)

const (
	maxSlugLength  = 50
	idSuffixLength = 6
)

// slugify lowercases s and collapses every run of characters outside [a-z0-9]
// into a single hyphen, with no leading or trailing hyphen. The result is cut
// to max runes.
func slugify(s string, max int) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	n := 0
	prev := false
	for _, r := range s {
		if n >= max {
			break
		}
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prev = false
			n++
		default:
			if !prev && b.Len() > 0 {
				b.WriteByte('-')
				prev = true
				n++
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

// idFragment keeps the lowercase alphanumerics of id, cut to max characters
// when max > 0.
func idFragment(id string, max int) string {
	var b strings.Builder
	for _, r := range strings.ToLower(id) {
		if max > 0 && b.Len() >= max {
			break
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Slug returns the hyphenated lowercase form of s used for field names and
// option values.
func Slug(s string) string {
	return slugify(s, maxSlugLength)
}

func joinName(slug, suffix string) string {
	switch {
	case slug == "":
		return suffix
	case suffix == "":
		return slug
	}
	return slug + "-" + suffix
}

// FieldName derives the form field name of q: the slugged question text,
// capped at 50 characters, followed by the first six characters of its id.
// An empty label yields the id fragment alone.
func FieldName(q Question) string {
	name := joinName(slugify(q.Text, maxSlugLength), idFragment(q.ID, idSuffixLength))
	if name == "" {
		return "question"
	}
	return name
}

// reserved holds the names used by the fixed fields of every submission.
var reserved = map[string]bool{
	KeyName: true, KeyEmail: true, KeyPhone: true, KeyContact: true,
	FormNameField: true, HoneypotField: true,
}

// fieldNames derives names for a whole question set. Questions whose short
// names collide fall back to the full id; identical ids get the first unused
// positional suffix. The result is indexed like qs.
func fieldNames(qs []Question) []string {
	names := make([]string, len(qs))
	count := make(map[string]int, len(qs))
	for i, q := range qs {
		names[i] = FieldName(q)
		count[names[i]]++
	}
	taken := make(map[string]bool, len(qs))
	for i, q := range qs {
		if count[names[i]] > 1 || reserved[names[i]] {
			names[i] = joinName(slugify(q.Text, maxSlugLength), idFragment(q.ID, 0))
		}
		if taken[names[i]] || reserved[names[i]] {
			base := names[i]
			for n := 2; ; n++ {
				cand := base + "-" + strconv.Itoa(n)
				if !taken[cand] && !reserved[cand] {
					names[i] = cand
					break
				}
			}
		}
		taken[names[i]] = true
	}
	return names
}
