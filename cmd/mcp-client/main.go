// Command mcp-client is an interactive shell for the hwmon-mcp tool server.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func main() {
	flag.Parse()
	args := flag.Args()

	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: mcp-client <server-command> [<args>]")
		fmt.Fprintln(os.Stderr, "Example: mcp-client ./hwmon-mcp")
		os.Exit(2)
	}

	ctx := context.Background()

	// Start the server as a subprocess
	cmd := exec.Command(args[0], args[1:]...)
	transport := &mcp.CommandTransport{Command: cmd}

	// Create MCP client
	client := mcp.NewClient(&mcp.Implementation{
		Name:    "hwmonitor-client",
		Version: "1.0.0",
	}, nil)

	// Connect to the server
	session, err := client.Connect(ctx, transport, nil)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer session.Close()

	fmt.Println("Connected to the hardware monitor MCP server!")
	fmt.Println("Available commands:")
	fmt.Println("  /tools                     - List available tools")
	fmt.Println("  /snapshot [fresh]          - Latest snapshot with checks and flags")
	fmt.Println("  /dashboard                 - Dashboard cards")
	fmt.Println("  /state                     - Generator settings")
	fmt.Println("  /load <normal|gaming|stress>")
	fmt.Println("  /ambient <celsius>")
	fmt.Println("  /interval <seconds>")
	fmt.Println("  /reset | /pause | /resume")
	fmt.Println("  /history <cpu|gpu|memory> <temperature|usage> [samples]")
	fmt.Println("  /recent [n]                - Recorded snapshot summaries")
	fmt.Println("  /stats                     - Aggregates over the recorded window")
	fmt.Println("  /export [n]                - Full recorded payloads")
	fmt.Println("  /exit                      - Exit the client")
	fmt.Println()

	// Interactive REPL
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		parts := strings.Fields(input)

		switch parts[0] {
		case "/exit":
			fmt.Println("Goodbye!")
			return

		case "/tools":
			listTools(ctx, session)

		case "/snapshot":
			callTool(ctx, session, "get_snapshot", map[string]any{
				"fresh": len(parts) > 1 && parts[1] == "fresh",
			})

		case "/dashboard":
			callTool(ctx, session, "get_dashboard", map[string]any{})

		case "/state":
			callTool(ctx, session, "get_generator_state", map[string]any{})

		case "/load":
			if len(parts) < 2 {
				fmt.Println("usage: /load <normal|gaming|stress>")
				continue
			}
			callTool(ctx, session, "control_generator", map[string]any{
				"action": "set_load",
				"mode":   parts[1],
			})

		case "/ambient", "/interval":
			if len(parts) < 2 {
				fmt.Printf("usage: %s <value>\n", parts[0])
				continue
			}
			v, err := strconv.ParseFloat(parts[1], 64)
			if err != nil {
				fmt.Printf("not a number: %s\n", parts[1])
				continue
			}
			action := "set_ambient"
			if parts[0] == "/interval" {
				action = "set_interval"
			}
			callTool(ctx, session, "control_generator", map[string]any{
				"action": action,
				"value":  v,
			})

		case "/reset", "/pause", "/resume":
			callTool(ctx, session, "control_generator", map[string]any{
				"action": strings.TrimPrefix(parts[0], "/"),
			})

		case "/history":
			if len(parts) < 3 {
				fmt.Println("usage: /history <component> <metric> [samples]")
				continue
			}
			args := map[string]any{
				"component": parts[1],
				"metric":    parts[2],
			}
			if len(parts) > 3 {
				if n, err := strconv.Atoi(parts[3]); err == nil {
					args["samples"] = n
				}
			}
			callTool(ctx, session, "get_history", args)

		case "/recent", "/export":
			args := map[string]any{}
			if len(parts) > 1 {
				if n, err := strconv.Atoi(parts[1]); err == nil {
					args["limit"] = n
				}
			}
			name := "get_recent_snapshots"
			if parts[0] == "/export" {
				name = "export_snapshots"
			}
			callTool(ctx, session, name, args)

		case "/stats":
			callTool(ctx, session, "get_window_stats", map[string]any{})

		default:
			fmt.Printf("unknown command %q, try /tools\n", parts[0])
		}
	}

	if err := scanner.Err(); err != nil {
		log.Printf("Scanner error: %v", err)
	}
}

func listTools(ctx context.Context, session *mcp.ClientSession) {
	fmt.Println("Available Tools:")
	for tool, err := range session.Tools(ctx, nil) {
		if err != nil {
			log.Printf("Error listing tools: %v", err)
			return
		}
		fmt.Printf("  - %s: %s\n", tool.Name, tool.Description)
	}
	fmt.Println()
}

func callTool(ctx context.Context, session *mcp.ClientSession, toolName string, args map[string]any) {
	result, err := session.CallTool(ctx, &mcp.CallToolParams{
		Name:      toolName,
		Arguments: args,
	})
	if err != nil {
		log.Printf("Error calling tool: %v", err)
		return
	}

	printResult(result)
}

func printResult(result *mcp.CallToolResult) {
	if result.IsError {
		fmt.Printf("❌ Error: ")
	} else {
		fmt.Printf("✅ Result: ")
	}

	// Try to pretty-print the content
	for _, content := range result.Content {
		switch v := content.(type) {
		case *mcp.TextContent:
			fmt.Println(v.Text)
		default:
			// Try JSON marshaling for other types
			jsonData, err := json.MarshalIndent(content, "", "  ")
			if err != nil {
				fmt.Printf("%+v\n", content)
			} else {
				fmt.Println(string(jsonData))
			}
		}
	}
	fmt.Println()
}
