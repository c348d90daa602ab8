// Command test-tools drives every hwmon-mcp tool once and reports the result.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type step struct {
	name string
	tool string
	args map[string]any
	// wantError marks calls the server must reject.
	wantError bool
}

var steps = []step{
	{name: "fresh snapshot", tool: "get_snapshot", args: map[string]any{"fresh": true}},
	{name: "dashboard", tool: "get_dashboard", args: map[string]any{}},
	{name: "generator state", tool: "get_generator_state", args: map[string]any{}},
	{name: "switch to stress", tool: "control_generator", args: map[string]any{"action": "set_load", "mode": "stress"}},
	{name: "raise ambient", tool: "control_generator", args: map[string]any{"action": "set_ambient", "value": 35.0}},
	{name: "poll under stress", tool: "get_snapshot", args: map[string]any{"fresh": true}},
	{name: "cpu temperature history", tool: "get_history", args: map[string]any{"component": "cpu", "metric": "temperature"}},
	{name: "memory temperature history", tool: "get_history", args: map[string]any{"component": "memory", "metric": "temperature"}, wantError: true},
	{name: "unknown load mode", tool: "control_generator", args: map[string]any{"action": "set_load", "mode": "turbo"}, wantError: true},
	{name: "recent snapshots", tool: "get_recent_snapshots", args: map[string]any{"limit": 5}},
	{name: "window stats", tool: "get_window_stats", args: map[string]any{}},
	{name: "export", tool: "export_snapshots", args: map[string]any{"limit": 2}},
	{name: "reset", tool: "control_generator", args: map[string]any{"action": "reset"}},
}

func main() {
	server := flag.String("server", "", "path to the hwmon-mcp binary")
	timeout := flag.Duration("timeout", 30*time.Second, "overall timeout")
	flag.Parse()

	_ = godotenv.Load()

	fmt.Println("🧪 Testing MCP Server and Tool Calling")
	fmt.Println("=======================================")

	serverPath := *server
	if serverPath == "" {
		serverPath = findServerBinary()
	}
	if serverPath == "" {
		log.Fatal("❌ MCP server binary not found. Run: go build -o hwmon-mcp ./cmd/hwmon-mcp")
	}
	fmt.Println("✅ MCP server binary found:", serverPath)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	cmd := exec.Command(serverPath)
	cmd.Env = os.Environ()
	if os.Getenv("HWMON_SEED") == "" {
		cmd.Env = append(cmd.Env, "HWMON_SEED=42")
	}
	cmd.Stderr = os.Stderr

	client := mcp.NewClient(&mcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)

	session, err := client.Connect(ctx, &mcp.CommandTransport{Command: cmd}, nil)
	if err != nil {
		log.Fatalf("❌ Failed to connect to MCP server: %v", err)
	}
	defer session.Close()
	fmt.Println("✅ Connected to MCP server")

	listResult, err := session.ListTools(ctx, nil)
	if err != nil {
		log.Fatalf("❌ Failed to list tools: %v", err)
	}
	fmt.Printf("\n  Found %d tools:\n", len(listResult.Tools))
	for _, tool := range listResult.Tools {
		fmt.Printf("  - %s\n", tool.Name)
	}

	failed := 0
	for i, st := range steps {
		fmt.Printf("\n✓ Step %d: %s (%s)\n", i+1, st.name, st.tool)
		res, err := session.CallTool(ctx, &mcp.CallToolParams{Name: st.tool, Arguments: st.args})
		switch {
		case err != nil:
			fmt.Printf("  ❌ call failed: %v\n", err)
			failed++
		case res.IsError != st.wantError:
			fmt.Printf("  ❌ IsError = %v, want %v\n", res.IsError, st.wantError)
			preview(res)
			failed++
		default:
			fmt.Println("  ✅ ok")
			preview(res)
		}
	}

	fmt.Println("\n=======================================")
	if failed > 0 {
		fmt.Printf("❌ %d of %d steps failed\n", failed, len(steps))
		os.Exit(1)
	}
	fmt.Println("✅ All MCP tool calling tests complete!")
	fmt.Println("\n💡 To test interactively, run: go run ./cmd/mcp-client ./hwmon-mcp")
}

func preview(res *mcp.CallToolResult) {
	for _, content := range res.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			text := v.Text
			if len(text) > 200 {
				text = text[:200] + "..."
			}
			fmt.Printf("    %s\n", text)
		default:
			fmt.Printf("    [%T]\n", content)
		}
	}
}

func findServerBinary() string {
	candidates := []string{
		"./hwmon-mcp",
		"../../hwmon-mcp",
		"../../../hwmon-mcp",
	}
	for _, p := range candidates {
		if abs, err := filepath.Abs(p); err == nil {
			if _, err := os.Stat(abs); err == nil {
				return abs
			}
		}
	}
	return ""
}
