package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"strings"
	"testing"

	"github.com/ironsheep/image-fill-mcp/internal/runner"
)

// wireMessage decodes any line the server writes: responses and
// notifications.
type wireMessage struct {
	ID     interface{}     `json:"id"`
	Method string          `json:"method"`
	Params json.RawMessage `json:"params"`
	Result json.RawMessage `json:"result"`
	Error  *MCPError       `json:"error"`
}

// serveLines feeds requests to Serve and returns every line written back.
func serveLines(t *testing.T, s *Server, requests ...string) []wireMessage {
	t.Helper()
	var out bytes.Buffer
	in := strings.NewReader(strings.Join(requests, "\n") + "\n")
	if err := s.Serve(context.Background(), in, &out); err != nil {
		t.Fatalf("Serve failed: %v", err)
	}

	var msgs []wireMessage
	for _, line := range strings.Split(strings.TrimSpace(out.String()), "\n") {
		if line == "" {
			continue
		}
		var m wireMessage
		if err := json.Unmarshal([]byte(line), &m); err != nil {
			t.Fatalf("server wrote invalid JSON %q: %v", line, err)
		}
		msgs = append(msgs, m)
	}
	return msgs
}

// fillResult extracts the runner summary from a tools/call result.
func fillResult(t *testing.T, raw json.RawMessage) runner.Result {
	t.Helper()
	var wrapped struct {
		Content []struct {
			Type string `json:"type"`
			Text string `json:"text"`
		} `json:"content"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		t.Fatalf("invalid tools/call result: %v", err)
	}
	if len(wrapped.Content) != 1 || wrapped.Content[0].Type != "text" {
		t.Fatalf("unexpected content: %+v", wrapped.Content)
	}
	var res runner.Result
	if err := json.Unmarshal([]byte(wrapped.Content[0].Text), &res); err != nil {
		t.Fatalf("invalid fill summary: %v", err)
	}
	return res
}

func TestServe_FillSession(t *testing.T) {
	imgPath := createTestImageFile(t, 12, 5, color.RGBA{40, 90, 200, 255})

	call, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      3,
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name": "image_fill",
			"arguments": map[string]interface{}{
				"path":       imgPath,
				"tolerance":  0.05,
				"frame_freq": 7,
				"seeds": []map[string]interface{}{
					{"x": 6, "y": 2, "picker": map[string]interface{}{"type": "negative"}},
				},
			},
		},
	})

	msgs := serveLines(t, New(),
		`{"jsonrpc":"2.0","id":1,"method":"initialize"}`,
		`{"jsonrpc":"2.0","method":"notifications/initialized"}`,
		`{"jsonrpc":"2.0","id":2,"method":"tools/list"}`,
		string(call),
		`{"jsonrpc":"2.0","id":4,"method":"ping"}`,
	)

	// initialize, tools/list, fill notification, fill response, ping
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5: %+v", len(msgs), msgs)
	}

	var toolsList struct {
		Tools []Tool `json:"tools"`
	}
	if err := json.Unmarshal(msgs[1].Result, &toolsList); err != nil {
		t.Fatalf("invalid tools/list result: %v", err)
	}
	if len(toolsList.Tools) != len(GetToolDefinitions()) {
		t.Errorf("tools/list: got %d tools, want %d", len(toolsList.Tools), len(GetToolDefinitions()))
	}

	note := msgs[2]
	if note.Method != "notifications/message" || note.ID != nil {
		t.Fatalf("expected a log notification before the fill response, got %+v", note)
	}
	if !strings.Contains(string(note.Params), "painted 60 pixels") {
		t.Errorf("notification should report the fill: %s", note.Params)
	}

	fill := msgs[3]
	if fill.ID != float64(3) || fill.Error != nil {
		t.Fatalf("fill response: id %v error %v", fill.ID, fill.Error)
	}
	res := fillResult(t, fill.Result)
	if res.PixelsFilled != 60 {
		t.Errorf("pixels_filled: got %d, want 60", res.PixelsFilled)
	}
	if res.FrameCount != 60/7+1 {
		t.Errorf("frame_count: got %d, want %d", res.FrameCount, 60/7+1)
	}
	if res.Mode != "bfs" || res.Seeds != 1 {
		t.Errorf("summary: got mode %s seeds %d", res.Mode, res.Seeds)
	}

	if msgs[4].ID != float64(4) || msgs[4].Error != nil {
		t.Errorf("ping after fill: got %+v", msgs[4])
	}
}

func TestServe_ErrorsKeepTheSessionAlive(t *testing.T) {
	imgPath := createTestImageFile(t, 4, 4, color.RGBA{0, 0, 0, 255})

	badFill, _ := json.Marshal(map[string]interface{}{
		"jsonrpc": "2.0",
		"id":      "fill-1",
		"method":  "tools/call",
		"params": map[string]interface{}{
			"name": "image_fill",
			"arguments": map[string]interface{}{
				"path":      imgPath,
				"tolerance": -1,
				"seeds": []map[string]interface{}{
					{"x": 0, "y": 0, "picker": map[string]interface{}{"type": "negative"}},
				},
			},
		},
	})

	msgs := serveLines(t, New(),
		`{not json`,
		string(badFill),
		`{"jsonrpc":"2.0","id":5,"method":"resources/list"}`,
		`{"jsonrpc":"2.0","id":6,"method":"tools/call","params":"oops"}`,
		`{"jsonrpc":"2.0","id":7,"method":"ping"}`,
	)
	if len(msgs) != 5 {
		t.Fatalf("got %d messages, want 5: %+v", len(msgs), msgs)
	}

	tests := []struct {
		name     string
		msg      wireMessage
		wantID   interface{}
		wantCode int
	}{
		{"malformed line", msgs[0], nil, codeParseError},
		{"invalid job", msgs[1], "fill-1", codeToolFailed},
		{"unknown method", msgs[2], float64(5), codeMethodNotFound},
		{"bad tools/call params", msgs[3], float64(6), codeInvalidParams},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.msg.ID != tt.wantID {
				t.Errorf("ID: got %v, want %v", tt.msg.ID, tt.wantID)
			}
			if tt.msg.Error == nil || tt.msg.Error.Code != tt.wantCode {
				t.Fatalf("error: got %+v, want code %d", tt.msg.Error, tt.wantCode)
			}
		})
	}

	if data, _ := msgs[1].Error.Data.(string); !strings.Contains(data, "tolerance") {
		t.Errorf("invalid job error should name the tolerance: %q", data)
	}
	if msgs[4].Error != nil || msgs[4].ID != float64(7) {
		t.Errorf("ping after errors: got %+v", msgs[4])
	}
}

func TestServe_StopsWhenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	in := strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"ping"}` + "\n")
	err := New().Serve(ctx, in, &out)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
	if out.Len() != 0 {
		t.Errorf("no response expected after cancellation, got %q", out.String())
	}
}

func TestHandleRequest_Notifications(t *testing.T) {
	s := New()
	for _, method := range []string{"notifications/initialized", "notifications/cancelled"} {
		if resp := s.handleRequest(context.Background(), &MCPRequest{JSONRPC: "2.0", Method: method}); resp != nil {
			t.Errorf("%s should not be answered, got %+v", method, resp)
		}
	}
}

func TestHandleInitialize(t *testing.T) {
	s := New()
	resp := s.handleInitialize(&MCPRequest{JSONRPC: "2.0", ID: "init-1"})

	if resp.ID != "init-1" || resp.Error != nil {
		t.Fatalf("got id %v error %v", resp.ID, resp.Error)
	}
	result := resp.Result.(map[string]interface{})

	if result["protocolVersion"] != protocolVersion {
		t.Errorf("protocolVersion: got %v", result["protocolVersion"])
	}
	caps := result["capabilities"].(map[string]interface{})
	if _, ok := caps["logging"]; !ok {
		t.Error("logging capability must be declared since fills send notifications/message")
	}
	info := result["serverInfo"].(map[string]interface{})
	if info["name"] != "image-fill-mcp" || info["version"] != Version {
		t.Errorf("serverInfo: got %v", info)
	}
	if instr, _ := result["instructions"].(string); !strings.Contains(instr, "image_fill") {
		t.Errorf("instructions should describe the fill workflow: %q", instr)
	}
}

func TestErrorResponse_OmitsEmptyData(t *testing.T) {
	s := New()
	data, err := json.Marshal(s.errorResponse(1, codeMethodNotFound, "Method not found: x", ""))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if strings.Contains(string(data), `"data"`) {
		t.Errorf("empty data should be omitted: %s", data)
	}
}
