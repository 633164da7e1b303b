package i3ipc

import "github.com/wagiedev/i3ipc-go/internal/config"

// Dialer opens connections to the IPC socket.
// Implement this to route connections elsewhere, for example through a
// proxy or an in-memory pipe in tests.
//
// The default implementation is a net.Dialer on the "unix" network.
// Custom dialers can be injected via WithDialer.
type Dialer = config.Dialer
