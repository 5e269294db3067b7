package protocol

import "fmt"

// Kind classifies a protocol-level failure, independent of the Go error type
// that carries it — mirrors the status-code taxonomy the device firmware
// reports at offset 0x22 of every response.
type Kind int

const (
	Unknown Kind = iota
	NetworkTimeout
	AuthenticationFailed
	ConnectionClosed
	DeviceOffline
	CommandNotSupported
	StorageFull
	DataValidation
	Authorization
	SendError
	WriteError
	ReadError
	SSIDNotFound
)

func (k Kind) String() string {
	switch k {
	case NetworkTimeout:
		return "NetworkTimeout"
	case AuthenticationFailed:
		return "AuthenticationFailed"
	case ConnectionClosed:
		return "ConnectionClosed"
	case DeviceOffline:
		return "DeviceOffline"
	case CommandNotSupported:
		return "CommandNotSupported"
	case StorageFull:
		return "StorageFull"
	case DataValidation:
		return "DataValidation"
	case Authorization:
		return "Authorization"
	case SendError:
		return "SendError"
	case WriteError:
		return "WriteError"
	case ReadError:
		return "ReadError"
	case SSIDNotFound:
		return "SSIDNotFound"
	default:
		return "Unknown"
	}
}

// statusKinds maps the firmware status code at offset 0x22 to an error Kind.
var statusKinds = map[uint16]Kind{
	0xFFFF: AuthenticationFailed,
	0xFFFE: ConnectionClosed,
	0xFFFD: DeviceOffline,
	0xFFFC: CommandNotSupported,
	0xFFFB: StorageFull,
	0xFFFA: DataValidation,
	0xFFF9: Authorization,
	0xFFF8: SendError,
	0xFFF7: WriteError,
	0xFFF6: ReadError,
	0xFFF5: SSIDNotFound,
}

// KindFromStatus maps a non-zero response status code to its error Kind.
// Callers are expected to have already checked status != 0.
func KindFromStatus(status uint16) Kind {
	if k, ok := statusKinds[status]; ok {
		return k
	}
	return Unknown
}

// DeviceError is the error type returned by every protocol-level operation
// that fails. It wraps the triggering Kind plus an optional underlying cause.
type DeviceError struct {
	Kind   Kind
	Status uint16 // raw firmware status code, 0 if not status-derived
	Msg    string
	Cause  error
}

func (e *DeviceError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("broadlink: %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("broadlink: %s: %s", e.Kind, e.Msg)
}

func (e *DeviceError) Unwrap() error {
	return e.Cause
}

// Is makes DeviceError comparable by Kind via errors.Is(err, protocol.NetworkTimeout-shaped sentinel).
func (e *DeviceError) Is(target error) bool {
	other, ok := target.(*DeviceError)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}

// NewError builds a DeviceError of the given kind.
func NewError(kind Kind, msg string, cause error) *DeviceError {
	return &DeviceError{Kind: kind, Msg: msg, Cause: cause}
}

// NewStatusError builds a DeviceError from a non-zero response status code.
func NewStatusError(status uint16) *DeviceError {
	kind := KindFromStatus(status)
	return &DeviceError{Kind: kind, Status: status, Msg: fmt.Sprintf("device returned status 0x%04X", status)}
}
