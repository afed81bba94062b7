package docker

import "fmt"

// Runtime backends selectable by configuration.
const (
	ModeSDK = "sdk"
	ModeCLI = "cli"
)

// Factory creates a Client for a host address. An empty address means the local default.
type Factory func(address string) (Client, error)

// NewFactory returns the Factory for the given backend mode.
// binary is only used by the cli backend.
func NewFactory(mode, binary string) (Factory, error) {
	switch mode {
	case ModeSDK, "":
		return NewClient, nil
	case ModeCLI:
		if binary == "" {
			return nil, fmt.Errorf("cli mode requires a runtime binary")
		}
		return func(address string) (Client, error) {
			return NewCLIClient(binary, address, nil), nil
		}, nil
	default:
		return nil, fmt.Errorf("unknown runtime mode %q (want %q or %q)", mode, ModeSDK, ModeCLI)
	}
}
