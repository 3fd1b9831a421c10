package status_poller

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/fatih/color"
)

type Renderer interface {
	Render(state ConnectionState)
}

type errorPayload struct {
	Message   string `json:"message"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
}

type terminalRenderer struct {
	mu           sync.Mutex
	out          io.Writer
	connected    *color.Color
	disconnected *color.Color
	muted        *color.Color
}

func (r *terminalRenderer) Render(state ConnectionState) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if state.Connected {
		r.connected.Fprintln(r.out, "✅ Backend Connected")
	} else {
		r.disconnected.Fprintln(r.out, "❌ Backend Disconnected")
	}
	if state.Detail != "" {
		fmt.Fprintf(r.out, "   %s\n", state.Detail)
	}
	appStatus := "Offline"
	if state.Connected {
		appStatus = "Online"
	}
	fmt.Fprintf(r.out, "   App status: %s\n", appStatus)
	r.muted.Fprintf(r.out, "   Last updated: %s\n", state.LastCheckedAt.Local().Format(time.DateTime))

	if payload := rawPayload(state); payload != nil {
		b, err := json.MarshalIndent(payload, "   ", "  ")
		if err == nil {
			r.muted.Fprintf(r.out, "   %s\n", b)
		}
	}
}

// rawPayload is what the operator sees for debugging: the health response, or the error behind a failed probe.
func rawPayload(state ConnectionState) any {
	if state.Health != nil {
		return state.Health
	}
	if state.Err == nil {
		return nil
	}
	kind := "error"
	var probeErr *ProbeError
	if errors.As(state.Err, &probeErr) {
		kind = string(probeErr.Kind)
	}
	return errorPayload{
		Message:   state.Detail,
		Type:      kind,
		Timestamp: state.LastCheckedAt.UTC().Format(time.RFC3339Nano),
	}
}

// NewTerminalRenderer writes state changes to out; colors are dropped when colored is false.
func NewTerminalRenderer(out io.Writer, colored bool) Renderer {
	r := &terminalRenderer{
		out:          out,
		connected:    color.New(color.FgGreen, color.Bold),
		disconnected: color.New(color.FgRed, color.Bold),
		muted:        color.New(color.FgHiBlack),
	}
	if !colored {
		r.connected.DisableColor()
		r.disconnected.DisableColor()
		r.muted.DisableColor()
	}
	return r
}
