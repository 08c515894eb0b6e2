package router

import "strings"

type segment struct {
	literal string
	param   string
}

func compile(pattern string) []segment {
	parts := split(Normalize(pattern))
	segments := make([]segment, len(parts))
	for i, p := range parts {
		if name, ok := paramName(p); ok {
			segments[i] = segment{param: name}
			continue
		}
		segments[i] = segment{literal: p}
	}
	return segments
}

// paramName reports whether p is a ":name" segment. Names are word
// characters only; anything else is matched literally.
func paramName(p string) (string, bool) {
	if len(p) < 2 || p[0] != ':' {
		return "", false
	}
	name := p[1:]
	for _, c := range name {
		if !(c == '_' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z') {
			return "", false
		}
	}
	return name, true
}

func split(location string) []string {
	return strings.Split(strings.TrimPrefix(location, "/"), "/")
}

func match(segments []segment, parts []string) (map[string]string, bool) {
	if len(segments) != len(parts) {
		return nil, false
	}
	params := map[string]string{}
	for i, seg := range segments {
		if seg.param != "" {
			if parts[i] == "" {
				return nil, false
			}
			params[seg.param] = parts[i]
			continue
		}
		if seg.literal != parts[i] {
			return nil, false
		}
	}
	return params, true
}
