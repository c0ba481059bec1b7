package printing

import "strings"

const (
	separator  = '/'
	escapeMark = '\\'
)

// Path is an accumulated path of directory names, as built up along the
// transitions of a walk. Every name is followed by a separator.
type Path struct {
	b strings.Builder
}

// Enter appends a directory name and a separator to the [Path].
func (p *Path) Enter(name string) {
	p.b.WriteString(name)
	p.b.WriteByte(separator)
}

// Exit truncates the [Path] back to the path of the parent directory. A
// separator that is immediately preceded by an escape marker is treated as
// part of a name, not as a boundary between two names.
func (p *Path) Exit() {
	s := p.b.String()

	i := len(s) - 1
	for i > 0 {
		i--
		if s[i] == separator {
			if i < 1 {
				break
			}
			if s[i-1] != escapeMark {
				break
			}
			i -= 2
		}
	}

	p.b.Reset()
	if i >= 0 {
		p.b.WriteString(s[:i+1])
	}
}

// String returns the current [Path].
func (p *Path) String() string {
	return p.b.String()
}
