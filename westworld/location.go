package westworld

// Location is where an agent currently is.
type Location int

const (
	Shack Location = iota
	Goldmine
	Bank
	Saloon
)

func (l Location) String() string {
	switch l {
	case Shack:
		return "shack"
	case Goldmine:
		return "goldmine"
	case Bank:
		return "bank"
	case Saloon:
		return "saloon"
	default:
		return "unknown"
	}
}

// MarshalText encodes the location by name.
func (l Location) MarshalText() ([]byte, error) { return []byte(l.String()), nil }
