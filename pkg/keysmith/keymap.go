package keysmith

// KeyMap resolves abstract keys to backend-specific codes for one session.
//
// Named keys go through the backend's static platform table. Unicode keys
// are first resolved layout-natively (a key+modifier combination the active
// layout actually maps to the character, preferred because the resulting
// event is indistinguishable from a real keystroke and cooperates with
// IME-sensitive applications) and only then through the backend's
// Unicode-fallback mode. Results are cached per layout generation; a layout
// change observed on the backend invalidates the cache wholesale.
type KeyMap struct {
	backend    Backend
	cache      map[rune]ResolvedCode
	generation uint64
}

// NewKeyMap returns an empty map bound to one backend.
func NewKeyMap(b Backend) *KeyMap {
	return &KeyMap{
		backend:    b,
		cache:      make(map[rune]ResolvedCode),
		generation: b.LayoutGeneration(),
	}
}

// Resolve maps an abstract key to its backend code. It fails with
// *UnsupportedKeyError when the key has no resolution on this platform and
// layout, and with *LayoutQueryError when the layout query itself fails.
func (m *KeyMap) Resolve(k Key) (ResolvedCode, error) {
	if named, ok := k.IsNamed(); ok {
		code, ok := m.backend.NamedKeyCode(named)
		if !ok {
			return ResolvedCode{}, &UnsupportedKeyError{Key: k}
		}
		return code, nil
	}

	r, _ := k.IsUnicode()
	m.checkGeneration()

	if code, ok := m.cache[r]; ok {
		return code, nil
	}

	code, ok, err := m.backend.LayoutMapping(r)
	if err != nil {
		return ResolvedCode{}, &LayoutQueryError{Err: err}
	}
	if !ok {
		code, ok, err = m.backend.FallbackMapping(r)
		if err != nil {
			return ResolvedCode{}, &LayoutQueryError{Err: err}
		}
		if !ok {
			return ResolvedCode{}, &UnsupportedKeyError{Key: k}
		}
	}
	m.cache[r] = code
	return code, nil
}

// checkGeneration drops all cached entries when the backend reports a
// layout change. Layout guessing beyond this is deliberately not attempted;
// the backend's notification is authoritative.
func (m *KeyMap) checkGeneration() {
	if gen := m.backend.LayoutGeneration(); gen != m.generation {
		m.cache = make(map[rune]ResolvedCode)
		m.generation = gen
	}
}

// CacheSize returns the number of cached Unicode resolutions.
func (m *KeyMap) CacheSize() int {
	return len(m.cache)
}
