package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"swift-assist-be/pkg/executor"
	"swift-assist-be/pkg/nlu/sentiment"

	nluprocessor "swift-assist-be/pkg/nlu/processor"

	"github.com/fatih/color"
)

// consoleControl mimics one tracking input (or button) on a terminal.
type consoleControl struct {
	label string
	value string
}

func (c *consoleControl) Focus()              { color.HiBlack("   [ui] focus %s", c.label) }
func (c *consoleControl) SelectAll()          {}
func (c *consoleControl) Clear()              { c.value = "" }
func (c *consoleControl) AppendText(s string) { c.value += s }
func (c *consoleControl) Commit()             { color.HiBlack("   [ui] %s = %q", c.label, c.value) }
func (c *consoleControl) Value() string       { return c.value }
func (c *consoleControl) Enabled() bool       { return true }
func (c *consoleControl) Click() error {
	color.HiBlack("   [ui] click %s", c.label)
	return nil
}
func (c *consoleControl) PressEnter() error {
	color.HiBlack("   [ui] press Enter in %s", c.label)
	return nil
}
func (c *consoleControl) Highlight(d time.Duration) {
	color.HiBlack("   [ui] highlight %s for %v", c.label, d)
}

// consoleSurface stands in for the hosting page.
type consoleSurface struct {
	input  *consoleControl
	button *consoleControl
	route  string
}

func (s *consoleSurface) Find(selector string) (executor.Control, bool) {
	if strings.Contains(selector, "button") {
		return s.button, true
	}
	if strings.Contains(selector, "input") || strings.Contains(selector, "tracking") {
		return s.input, true
	}
	return nil, false
}

func (s *consoleSurface) SubmitForm(selector string) bool { return false }
func (s *consoleSurface) Route() string                   { return s.route }
func (s *consoleSurface) SetHash(route string) {
	s.route = route
	color.HiBlack("   [ui] navigate to %s", route)
}
func (s *consoleSurface) Origin() string { return "https://swiftdelivery.example" }
func (s *consoleSurface) Open(url string, newTab bool) error {
	color.HiBlack("   [ui] open %s (newTab=%v)", url, newTab)
	return nil
}

func main() {
	color.Cyan("🚚 SwiftAssist conversation simulator")
	color.Cyan("Type a message, or 'quit' to exit.\n")

	proc := nluprocessor.New(sentiment.New(sentiment.DefaultConfig()), nil, nil)

	surface := &consoleSurface{
		input:  &consoleControl{label: "tracking input"},
		button: &consoleControl{label: "search button"},
		route:  "/",
	}

	cfg := executor.DefaultConfig()
	cfg.ActionDelay = 50 * time.Millisecond
	cfg.TypeDelay = 5 * time.Millisecond
	cfg.PreSubmitDelay = 0
	cfg.PostSubmitDelay = 0

	exec := executor.New(cfg, surface, nil, func(ev executor.Event) {
		color.Magenta("   [event] %s tracking=%s %s", ev.Type, ev.TrackingID, ev.Message)
	}, nil)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		if text == "quit" || text == "exit" {
			break
		}

		result := proc.ProcessMessage(context.Background(), text, "simulator")

		color.Green("intent: %s (%.2f)  navigate=%v", result.Intent, result.Confidence, result.ShouldNavigate)
		if result.OriginalIntent != result.Intent {
			color.Green("base intent: %s", result.OriginalIntent)
		}
		if len(result.Entities.TrackingIDs) > 0 {
			color.Green("tracking ids: %v", result.Entities.TrackingIDs)
		}
		color.Yellow("sentiment: %s (%s)", result.Sentiment.Primary, result.Sentiment.Reason)
		if result.ContextualTracking && result.RecentTracking != nil {
			color.Yellow("contextual reference to %s", result.RecentTracking.TrackingID)
		}

		if len(result.Actions) > 0 {
			color.Blue("executing %d action(s)...", len(result.Actions))
			batch := exec.ExecuteActions(context.Background(), result.Actions, "simulator")
			if batch.Queued {
				color.Blue("executor busy, batch queued")
			}
			for _, res := range batch.Results {
				if res.Success {
					color.Blue("   %T -> %s", res.Action, res.State)
				} else {
					color.Red("   %T failed: %v", res.Action, res.Err)
				}
			}
		}

		color.White("suggestions: %s", strings.Join(result.FollowUps, " | "))
		fmt.Println()
	}
}
