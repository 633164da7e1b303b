// Package discovery resolves the path of the window manager's IPC socket.
//
// The Discoverer interface locates the socket once, at client construction:
//
//	discoverer := discovery.NewDiscoverer(&discovery.Config{
//	    SocketPath: "",      // Optional explicit path
//	    Helper:     "i3",    // Binary asked for --get-socketpath
//	    Logger:     slog.Default(),
//	})
//	path, err := discoverer.Discover(ctx)
//
// Discovery searches in the following order:
//  1. Explicit path in Config.SocketPath (if provided)
//  2. The I3SOCK environment variable
//  3. The SWAYSOCK environment variable
//  4. The output of "<helper> --get-socketpath"
//
// Environment paths that do not exist on disk are skipped. An explicit path
// is returned as-is since a custom dialer may not use the filesystem.
package discovery
