package resolve

// flagList is an append-only flag sequence with set-backed membership: a
// flag already present is ignored, keeping its first position. Shared
// dependencies between features therefore contribute each flag once.
type flagList struct {
	flags []string
	seen  map[string]bool
}

func newFlagList() *flagList {
	return &flagList{seen: make(map[string]bool)}
}

func (l *flagList) add(flags ...string) {
	for _, f := range flags {
		if l.seen[f] {
			continue
		}
		l.seen[f] = true
		l.flags = append(l.flags, f)
	}
}
