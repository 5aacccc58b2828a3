package core

import "strings"

// ResolveColumns binds each role to the first header cell that contains one
// of its candidate substrings, compared case-insensitively. A column may
// satisfy more than one role. Every role must resolve or the whole header is
// rejected with a *MissingColumnsError.
func ResolveColumns(header []string, roles []RoleSpec) (ColumnMap, error) {
	lowered := make([]string, len(header))
	for i, h := range header {
		lowered[i] = strings.ToLower(strings.TrimSpace(h))
	}

	cols := make(ColumnMap, len(roles))
	var missing []string

	for _, spec := range roles {
		idx := findColumn(lowered, spec.Candidates)
		if idx < 0 {
			missing = append(missing, spec.Label)
			continue
		}
		cols[spec.Role] = idx
	}

	if len(missing) > 0 {
		return nil, &MissingColumnsError{Roles: missing, Header: header}
	}
	return cols, nil
}

// findColumn returns the index of the first header containing any candidate.
func findColumn(lowered []string, candidates []string) int {
	for i, h := range lowered {
		for _, c := range candidates {
			if strings.Contains(h, strings.ToLower(c)) {
				return i
			}
		}
	}
	return -1
}

// MaxIndex returns the highest resolved column index, or -1 when empty.
func (m ColumnMap) MaxIndex() int {
	maxIdx := -1
	for _, idx := range m {
		if idx > maxIdx {
			maxIdx = idx
		}
	}
	return maxIdx
}
