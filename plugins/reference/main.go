package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	pluginrpc "weft/internal/modules/plugin/adapter/out/rpc"

	"github.com/hashicorp/go-plugin"
)

type graphDoc struct {
	Nodes []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"nodes"`
	Edges []struct {
		Source string `json:"source"`
		Target string `json:"target"`
		Kind   string `json:"type"`
	} `json:"edges"`
}

type server struct{}

func (s *server) GetMetadata(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.Metadata, error) {
	return &pluginrpc.Metadata{
		Name:         "reference",
		Version:      "1.0.0",
		Capabilities: []string{"command", "export", "fullscreen_tty"},
	}, nil
}

func (s *server) ListCommands(_ context.Context, _ *pluginrpc.Empty) (*pluginrpc.ListCommandsResponse, error) {
	return &pluginrpc.ListCommandsResponse{Commands: []pluginrpc.CommandDescriptor{
		{ID: "echo", Title: "Echo", Description: "Echoes provided input", Kind: "command", TimeoutMS: 2000},
		{ID: "export-dot", Title: "Export DOT", Description: "Renders graph.json as a Graphviz digraph", Kind: "export", TimeoutMS: 3000},
		{ID: "tty-pager", Title: "TTY Pager", Description: "Prepares a pager over the generated manifest", Kind: "fullscreen_tty", TimeoutMS: 1500},
	}}, nil
}

func (s *server) Execute(_ context.Context, in *pluginrpc.ExecuteRequest) (*pluginrpc.ExecuteResponse, error) {
	switch in.CommandID {
	case "echo":
		if strings.TrimSpace(in.InputJSON) == "" {
			return &pluginrpc.ExecuteResponse{Stdout: "echo", OutputJSON: `{"echo":""}`, ExitCode: 0}, nil
		}
		return &pluginrpc.ExecuteResponse{Stdout: in.InputJSON, OutputJSON: fmt.Sprintf(`{"echo":%q}`, in.InputJSON), ExitCode: 0}, nil
	case "export-dot":
		return exportDOT(in)
	default:
		return nil, fmt.Errorf("unknown command: %s", in.CommandID)
	}
}

func exportDOT(in *pluginrpc.ExecuteRequest) (*pluginrpc.ExecuteResponse, error) {
	raw, err := os.ReadFile(filepath.Join(in.Context.OutDir, "graph.json"))
	if err != nil {
		return &pluginrpc.ExecuteResponse{Stderr: fmt.Sprintf("read graph.json: %v", err), ExitCode: 1}, nil
	}
	doc := graphDoc{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return &pluginrpc.ExecuteResponse{Stderr: fmt.Sprintf("decode graph.json: %v", err), ExitCode: 1}, nil
	}
	var b strings.Builder
	b.WriteString("digraph weft {\n")
	for _, node := range doc.Nodes {
		fmt.Fprintf(&b, "  %q [label=%q];\n", node.ID, node.Title)
	}
	for _, edge := range doc.Edges {
		fmt.Fprintf(&b, "  %q -> %q [label=%q];\n", edge.Source, edge.Target, edge.Kind)
	}
	b.WriteString("}\n")
	summary, _ := json.Marshal(map[string]int{"nodes": len(doc.Nodes), "edges": len(doc.Edges)})
	return &pluginrpc.ExecuteResponse{Stdout: b.String(), OutputJSON: string(summary), ExitCode: 0}, nil
}

func (s *server) PrepareTTY(_ context.Context, in *pluginrpc.PrepareTTYRequest) (*pluginrpc.PrepareTTYResponse, error) {
	if in.CommandID != "tty-pager" {
		return nil, fmt.Errorf("unknown tty command: %s", in.CommandID)
	}
	manifestPath := filepath.Join(in.Context.OutDir, "manifest.json")
	return &pluginrpc.PrepareTTYResponse{
		Argv: []string{"/bin/sh", "-lc", fmt.Sprintf("cat %q", manifestPath)},
		Cwd:  in.Context.Cwd,
		Env: map[string]string{
			"WEFT_PLUGIN": "reference",
		},
	}, nil
}

func main() {
	plugin.Serve(&plugin.ServeConfig{
		HandshakeConfig: pluginrpc.HandshakeConfig,
		Plugins:         pluginrpc.PluginMap(&server{}),
		GRPCServer:      plugin.DefaultGRPCServer,
	})
}
