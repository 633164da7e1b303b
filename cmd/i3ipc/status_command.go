package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	i3ipc "github.com/wagiedev/i3ipc-go"
)

// statusSnapshot is what the status command gathers in one pass.
type statusSnapshot struct {
	Socket       string `json:"socket"`
	Version      any    `json:"version"`
	BindingState any    `json:"binding_state"`
	Workspaces   any    `json:"workspaces"`
	Outputs      any    `json:"outputs"`
}

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show window manager version, mode, outputs and workspaces",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return ctx.withClient(cmd, func(reqCtx context.Context, client i3ipc.Client) error {
				snap, err := gatherStatus(reqCtx, client)
				if err != nil {
					return err
				}

				if jsonOutput {
					return writeJSON(cmd, snap)
				}

				fmt.Fprint(cmd.OutOrStdout(), renderStatus(snap))

				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print JSON instead of tables")

	return cmd
}

func gatherStatus(ctx context.Context, client i3ipc.Client) (*statusSnapshot, error) {
	snap := &statusSnapshot{Socket: client.SocketPath()}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		snap.Version, err = client.GetVersion(gctx)

		return err
	})

	g.Go(func() (err error) {
		snap.BindingState, err = client.GetBindingState(gctx)

		return err
	})

	g.Go(func() (err error) {
		snap.Workspaces, err = client.GetWorkspaces(gctx)

		return err
	})

	g.Go(func() (err error) {
		snap.Outputs, err = client.GetOutputs(gctx)

		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snap, nil
}

func renderStatus(snap *statusSnapshot) string {
	version := stringField(snap.Version, "human_readable")
	mode := stringField(snap.BindingState, "name")

	out := fmt.Sprintf("Socket:  %s\nVersion: %s\nMode:    %s\n\n", snap.Socket, version, mode)

	outputRows := make([][]string, 0)
	for _, o := range objects(snap.Outputs) {
		outputRows = append(outputRows, []string{
			stringField(o, "name"),
			yesNo(o["active"]),
			stringField(o, "current_workspace"),
			rectString(o["rect"]),
		})
	}

	out += renderTable([]string{"Output", "Active", "Workspace", "Geometry"}, outputRows, nil) + "\n"

	wsRows := make([][]string, 0)
	for _, ws := range objects(snap.Workspaces) {
		num := ""
		if n, ok := ws["num"].(float64); ok && n >= 0 {
			num = strconv.Itoa(int(n))
		}

		wsRows = append(wsRows, []string{
			num,
			stringField(ws, "name"),
			stringField(ws, "output"),
			yesNo(ws["focused"]),
			yesNo(ws["visible"]),
			yesNo(ws["urgent"]),
		})
	}

	out += renderTable(
		[]string{"Num", "Workspace", "Output", "Focused", "Visible", "Urgent"},
		wsRows,
		[]columnAlignment{alignRight},
	) + "\n"

	return out
}

// objects returns the JSON objects in a decoded list, skipping other values.
func objects(v any) []map[string]any {
	list, _ := v.([]any)

	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}

	return out
}

func stringField(v any, key string) string {
	obj, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	switch val := obj[key].(type) {
	case string:
		return val
	case nil:
		return ""
	default:
		return fmt.Sprint(val)
	}
}

func yesNo(v any) string {
	if b, _ := v.(bool); b {
		return "yes"
	}

	return "no"
}

func rectString(v any) string {
	r, ok := v.(map[string]any)
	if !ok {
		return ""
	}

	num := func(key string) int {
		f, _ := r[key].(float64)

		return int(f)
	}

	return fmt.Sprintf("%dx%d+%d+%d", num("width"), num("height"), num("x"), num("y"))
}
