package mapping

import "strings"

// remapDescriptor rewrites the class names inside a JVM type descriptor,
// e.g. "(La;I)Lb;" with a->x, b->y becomes "(Lx;I)Ly;".
// Anything that is not an object type is copied as is.
func remapDescriptor(desc string, mapClass func(string) string) string {
	if !strings.ContainsRune(desc, 'L') {
		return desc
	}

	var sb strings.Builder
	sb.Grow(len(desc))
	for i := 0; i < len(desc); i++ {
		ch := desc[i]
		sb.WriteByte(ch)
		if ch != 'L' {
			continue
		}
		end := strings.IndexByte(desc[i:], ';')
		if end < 0 {
			// malformed, leave the rest untouched
			sb.WriteString(desc[i+1:])
			break
		}
		sb.WriteString(mapClass(desc[i+1 : i+end]))
		sb.WriteByte(';')
		i += end
	}
	return sb.String()
}

// validDescriptor does a shallow syntax check of a field or method descriptor.
func validDescriptor(desc string) bool {
	if desc == "" {
		return false
	}
	if desc[0] == '(' {
		end := strings.IndexByte(desc, ')')
		if end < 0 {
			return false
		}
		args := desc[1:end]
		for len(args) > 0 {
			n := typeLen(args)
			if n == 0 {
				return false
			}
			args = args[n:]
		}
		ret := desc[end+1:]
		return ret == "V" || (ret != "" && typeLen(ret) == len(ret))
	}
	return typeLen(desc) == len(desc)
}

// typeLen returns length of the first field type in s, or 0 if it is malformed.
func typeLen(s string) int {
	i := 0
	for i < len(s) && s[i] == '[' {
		i++
	}
	if i == len(s) {
		return 0
	}
	switch s[i] {
	case 'B', 'C', 'D', 'F', 'I', 'J', 'S', 'Z':
		return i + 1
	case 'L':
		end := strings.IndexByte(s[i:], ';')
		if end <= 1 {
			return 0
		}
		return i + end + 1
	}
	return 0
}
