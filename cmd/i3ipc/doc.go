// Command i3ipc talks to the IPC socket of i3 or sway.
//
//	i3ipc msg -t get_tree
//	i3ipc msg 'workspace 2; focus left'
//	i3ipc subscribe window workspace
//	i3ipc types
//	i3ipc socket
//	i3ipc mcp
//
// Settings are read from ~/.config/i3ipc/config.toml unless --config names
// another file. The --socket and --log-level flags override the file.
package main
