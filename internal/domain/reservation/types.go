package reservation

import "fmt"

type Status uint8

const (
	StatusPending Status = iota + 1
	StatusConfirmed
	StatusReleased
	StatusExpired
)

var statusNames = map[Status]string{
	StatusPending:   "pending",
	StatusConfirmed: "confirmed",
	StatusReleased:  "released",
	StatusExpired:   "expired",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

func (s Status) IsValid() bool {
	_, ok := statusNames[s]
	return ok
}

// IsTerminal: confirmed, released and expired reservations never transition again.
func (s Status) IsTerminal() bool {
	return s.IsValid() && s != StatusPending
}

func ParseStatus(raw string) (Status, error) {
	for s, name := range statusNames {
		if name == raw {
			return s, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}
